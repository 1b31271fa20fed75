package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/bloglite/backend/internal/auth"
	"github.com/emilythestrangee/bloglite/backend/internal/logger"
	"github.com/emilythestrangee/bloglite/backend/internal/models"
	"github.com/emilythestrangee/bloglite/backend/internal/response"
	"github.com/emilythestrangee/bloglite/backend/internal/service"
)

const (
	UserKey       = "user"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Auth resolves the caller from the session cookie or a bearer token.
type Auth struct {
	sessions *Sessions
	tokens   *auth.TokenManager
	users    *service.IdentityService
}

func NewAuth(sessions *Sessions, tokens *auth.TokenManager, users *service.IdentityService) *Auth {
	return &Auth{
		sessions: sessions,
		tokens:   tokens,
		users:    users,
	}
}

// Identify attaches the principal to the request context when the caller is
// signed in. Anonymous requests pass through untouched.
func (a *Auth) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := a.resolve(c)
		if !ok {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		user, err := a.users.UserByID(ctx, id)
		switch {
		case err == nil:
			c.Set(UserKey, user)
			c.Set(logger.FieldUserID, user.ID)
			c.Set(logger.FieldUsername, user.Username)
			c.Request = c.Request.WithContext(service.WithPrincipal(ctx, service.Principal{
				UserID:   user.ID,
				Username: user.Username,
			}))
		case errors.Is(err, service.ErrNotFound):
			// The account is gone; forget it.
			a.sessions.SignOut(c)
		default:
			l := logger.Ctx(ctx)
			l.Warn().Err(err).Uint(logger.FieldUserID, id).Msg("failed to load session user")
		}

		c.Next()
	}
}

// RequireAuth aborts with 401 unless Identify attached a principal.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := service.PrincipalFrom(c.Request.Context()); !ok {
			response.Unauthorized(c, "Please log in to access this page", a.sessions.Commit(c)...)
			c.Abort()
			return
		}
		c.Next()
	}
}

// A bearer header takes precedence over the cookie.
func (a *Auth) resolve(c *gin.Context) (uint, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" {
		return a.sessions.UserID(c)
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		return 0, false
	}

	claims, err := a.tokens.Validate(strings.TrimPrefix(header, BearerPrefix))
	if err != nil {
		l := logger.Ctx(c.Request.Context())
		l.Debug().Err(err).Msg("rejected bearer token")
		return 0, false
	}
	return claims.UserID, true
}

// CurrentUser returns the user attached by Identify.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(UserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
