package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/bloglite/backend/internal/audit"
	"github.com/emilythestrangee/bloglite/backend/internal/auth"
	"github.com/emilythestrangee/bloglite/backend/internal/logger"
	"github.com/emilythestrangee/bloglite/backend/internal/models"
)

type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// Register creates a user and its self-follow edge in one transaction.
func (s *IdentityService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	l := logger.Ctx(ctx)

	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)

	switch {
	case email == "":
		return nil, validationError("You have to enter an email address")
	case username == "":
		return nil, validationError("You have to enter a username")
	case req.Password == "":
		return nil, validationError("You have to enter a password")
	}

	exists, err := s.exists(ctx, "email = ?", email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validationError("Email exists")
	}

	exists, err = s.exists(ctx, "username = ?", username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validationError("Username already exists")
	}

	if req.Password != req.ConfirmPassword {
		return nil, validationError("Passwords don't match")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		l.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		self := models.Follow{FollowerID: user.ID, FollowedID: user.ID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&self).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationError("Username or email already exists")
		}
		l.Error().Err(err).Str(logger.FieldUsername, username).Msg("failed to create user")
		return nil, storeError("create user", err)
	}

	audit.Log(ctx, audit.ActionRegister, user.ID, "user registered")
	return &user, nil
}

// Authenticate checks username and password.
func (s *IdentityService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := findUserByUsername(ctx, s.db, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			audit.LogWithDetail(ctx, audit.ActionLoginFailed, 0, username, "login failed: user not found")
		}
		return nil, err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		audit.LogWithDetail(ctx, audit.ActionLoginFailed, user.ID, username, "login failed: wrong password")
		return nil, newError(ErrAuth, "Password is incorrect")
	}

	audit.Log(ctx, audit.ActionLogin, user.ID, "user logged in")
	return user, nil
}

// Logout records the logout of the current principal. It is a no-op for
// anonymous requests.
func (s *IdentityService) Logout(ctx context.Context) {
	if p, ok := PrincipalFrom(ctx); ok {
		audit.Log(ctx, audit.ActionLogout, p.UserID, "user logged out")
	}
}

// Current returns the user behind the request principal.
func (s *IdentityService) Current(ctx context.Context) (*models.User, error) {
	p, err := requirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	return s.UserByID(ctx, p.UserID)
}

// UserByID loads a user; used to resolve session cookies and bearer tokens.
func (s *IdentityService) UserByID(ctx context.Context, id uint) (*models.User, error) {
	return findUserByID(ctx, s.db, id)
}

func (s *IdentityService) exists(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, storeError("check user exists", err)
	}
	return count > 0, nil
}
