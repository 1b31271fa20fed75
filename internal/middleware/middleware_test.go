package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/bloglite/backend/internal/auth"
	"github.com/emilythestrangee/bloglite/backend/internal/config"
	"github.com/emilythestrangee/bloglite/backend/internal/database"
	"github.com/emilythestrangee/bloglite/backend/internal/models"
	"github.com/emilythestrangee/bloglite/backend/internal/response"
	"github.com/emilythestrangee/bloglite/backend/internal/service"
)

type harness struct {
	router   *gin.Engine
	sessions *Sessions
	tokens   *auth.TokenManager
	user     *models.User
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := database.New(config.DatabaseConfig{
		Driver:   "sqlite",
		FilePath: filepath.Join(t.TempDir(), "bloglite.db"),
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	identity := service.NewIdentityService(store.GetDB())
	user, err := identity.Register(context.Background(), models.RegisterRequest{
		Email: "a@x", Username: "a", Password: "p", ConfirmPassword: "p",
	})
	require.NoError(t, err)

	h := &harness{
		sessions: NewSessions(NewSessionStore(config.AuthConfig{SessionKey: "k", SessionMaxAge: 60})),
		tokens:   auth.NewTokenManager("secret", time.Hour),
		user:     user,
	}
	a := NewAuth(h.sessions, h.tokens, identity)

	r := gin.New()
	r.Use(a.Identify())
	r.POST("/signin", func(c *gin.Context) {
		h.sessions.SignIn(c, user.ID)
		h.sessions.Flash(c, response.FlashSuccess, "hello")
		response.Success(c, nil, h.sessions.Commit(c)...)
	})
	r.GET("/me", a.RequireAuth(), func(c *gin.Context) {
		p, _ := service.PrincipalFrom(c.Request.Context())
		assert.Equal(t, CurrentUser(c).ID, p.UserID)
		response.Success(c, gin.H{"username": p.Username}, h.sessions.Commit(c)...)
	})
	h.router = r
	return h
}

func (h *harness) serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.router.ServeHTTP(rr, req)
	return rr
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	h := newHarness(t)

	rr := h.serve(httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Please log in")
	assert.Empty(t, rr.Result().Cookies())
}

func TestSessionCookieSignsIn(t *testing.T) {
	h := newHarness(t)

	rr := h.serve(httptest.NewRequest(http.MethodPost, "/signin", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"message":"hello"`)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookies[0])
	rr = h.serve(req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"a"`)
	// The flash was consumed by the first response.
	assert.NotContains(t, rr.Body.String(), "hello")
}

func TestBearerToken(t *testing.T) {
	h := newHarness(t)

	token, err := h.tokens.Generate(h.user.ID, h.user.Username)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	assert.Equal(t, http.StatusOK, h.serve(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthHeaderKey, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, h.serve(req).Code)

	other := auth.NewTokenManager("other", time.Hour)
	forged, err := other.Generate(h.user.ID, h.user.Username)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+forged)
	assert.Equal(t, http.StatusUnauthorized, h.serve(req).Code)
}

func TestTokenForDeletedUser(t *testing.T) {
	h := newHarness(t)

	token, err := h.tokens.Generate(h.user.ID+1, "ghost")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	assert.Equal(t, http.StatusUnauthorized, h.serve(req).Code)
}
