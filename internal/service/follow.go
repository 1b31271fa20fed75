package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/bloglite/backend/internal/audit"
	"github.com/emilythestrangee/bloglite/backend/internal/logger"
	"github.com/emilythestrangee/bloglite/backend/internal/models"
)

// FollowService maintains the directed follow graph.
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// EnsureSelfFollow creates the user -> user edge if it does not exist yet.
func (s *FollowService) EnsureSelfFollow(ctx context.Context, userID uint) error {
	edge := models.Follow{FollowerID: userID, FollowedID: userID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error
	if err != nil {
		return storeError("ensure self follow", err)
	}
	return nil
}

// Follow adds the edge principal -> target and returns the target.
func (s *FollowService) Follow(ctx context.Context, targetUsername string) (*models.User, error) {
	l := logger.Ctx(ctx)

	p, err := requirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	target, err := findUserByUsername(ctx, s.db, targetUsername)
	if err != nil {
		return nil, err
	}

	following, err := s.IsFollowing(ctx, p.UserID, target.ID)
	if err != nil {
		return nil, err
	}
	if following {
		return nil, newError(ErrAlreadyFollowing, "You already follow this user!")
	}

	edge := models.Follow{FollowerID: p.UserID, FollowedID: target.ID}
	if err := s.db.WithContext(ctx).Create(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(ErrAlreadyFollowing, "You already follow this user!")
		}
		l.Error().Err(err).
			Uint("follower_id", p.UserID).
			Uint("followed_id", target.ID).
			Msg("failed to follow user")
		return nil, storeError("create follow", err)
	}

	audit.LogWithDetail(ctx, audit.ActionFollow, p.UserID, target.Username, "user followed")
	return target, nil
}

// Unfollow removes the edge principal -> target and returns the target. The
// self edge cannot be removed.
func (s *FollowService) Unfollow(ctx context.Context, targetUsername string) (*models.User, error) {
	l := logger.Ctx(ctx)

	p, err := requirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	target, err := findUserByUsername(ctx, s.db, targetUsername)
	if err != nil {
		return nil, err
	}

	if target.ID == p.UserID {
		return nil, validationError("You can't unfollow yourself")
	}

	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", p.UserID, target.ID).
		Delete(&models.Follow{})
	if result.Error != nil {
		l.Error().Err(result.Error).
			Uint("follower_id", p.UserID).
			Uint("followed_id", target.ID).
			Msg("failed to unfollow user")
		return nil, storeError("delete follow", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, newError(ErrNotFollowing, "You don't follow this user!")
	}

	audit.LogWithDetail(ctx, audit.ActionUnfollow, p.UserID, target.Username, "user unfollowed")
	return target, nil
}

// IsFollowing reports whether the edge follower -> followed exists.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, storeError("check follow", err)
	}
	return count > 0, nil
}

// ListFollowers returns the users with an edge to username, oldest edge first.
func (s *FollowService) ListFollowers(ctx context.Context, username string) ([]models.User, error) {
	user, err := findUserByUsername(ctx, s.db, username)
	if err != nil {
		return nil, err
	}

	var users []models.User
	err = s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", user.ID).
		Order("follows.created_at ASC").
		Order("follows.follower_id ASC").
		Find(&users).Error
	if err != nil {
		return nil, storeError("list followers", err)
	}
	return users, nil
}

// ListFollowing returns the users username has an edge to, oldest edge first.
func (s *FollowService) ListFollowing(ctx context.Context, username string) ([]models.User, error) {
	user, err := findUserByUsername(ctx, s.db, username)
	if err != nil {
		return nil, err
	}

	var users []models.User
	err = s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", user.ID).
		Order("follows.created_at ASC").
		Order("follows.followed_id ASC").
		Find(&users).Error
	if err != nil {
		return nil, storeError("list following", err)
	}
	return users, nil
}

// Counts returns the follower and following totals for userID.
func (s *FollowService) Counts(ctx context.Context, userID uint) (models.FollowCounts, error) {
	var counts models.FollowCounts
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&counts.Followers).Error; err != nil {
		return counts, storeError("count followers", err)
	}
	if err := db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&counts.Following).Error; err != nil {
		return counts, storeError("count following", err)
	}
	return counts, nil
}
