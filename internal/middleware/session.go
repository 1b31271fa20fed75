package middleware

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/emilythestrangee/bloglite/backend/internal/config"
	"github.com/emilythestrangee/bloglite/backend/internal/logger"
	"github.com/emilythestrangee/bloglite/backend/internal/response"
)

const (
	SessionName    = "bloglite_session"
	sessionUserKey = "user_id"
)

func init() {
	gob.Register(response.Notice{})
}

// NewSessionStore returns the cookie store backing browser sessions.
func NewSessionStore(cfg config.AuthConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.SessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	}
	return store
}

// Sessions wraps the cookie session of a request. Changes are buffered on the
// session and written once by Commit, right before the response body.
type Sessions struct {
	store sessions.Store
}

func NewSessions(store sessions.Store) *Sessions {
	return &Sessions{store: store}
}

func (s *Sessions) session(c *gin.Context) *sessions.Session {
	// An undecodable cookie yields a fresh session alongside the error.
	sess, err := s.store.Get(c.Request, SessionName)
	if err != nil {
		l := logger.Ctx(c.Request.Context())
		l.Debug().Err(err).Msg("discarding invalid session cookie")
	}
	return sess
}

// UserID returns the signed-in user id, if any.
func (s *Sessions) UserID(c *gin.Context) (uint, bool) {
	id, ok := s.session(c).Values[sessionUserKey].(uint)
	return id, ok && id != 0
}

func (s *Sessions) SignIn(c *gin.Context, userID uint) {
	s.session(c).Values[sessionUserKey] = userID
}

func (s *Sessions) SignOut(c *gin.Context) {
	delete(s.session(c).Values, sessionUserKey)
}

// Flash queues a notice for the next response.
func (s *Sessions) Flash(c *gin.Context, category, message string) {
	s.session(c).AddFlash(response.Notice{Category: category, Message: message})
}

// Commit pops the pending notices and writes the session cookie.
func (s *Sessions) Commit(c *gin.Context) []response.Notice {
	sess := s.session(c)

	var notices []response.Notice
	for _, f := range sess.Flashes() {
		if n, ok := f.(response.Notice); ok {
			notices = append(notices, n)
		}
	}

	if sess.IsNew && len(sess.Values) == 0 {
		return notices
	}
	if err := sess.Save(c.Request, c.Writer); err != nil {
		l := logger.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("failed to save session")
	}
	return notices
}
