package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/bloglite/backend/internal/auth"
	"github.com/emilythestrangee/bloglite/backend/internal/models"
	"github.com/emilythestrangee/bloglite/backend/internal/service"
)

type AuthHandler struct {
	responder
	identity *service.IdentityService
	tokens   *auth.TokenManager
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.ok(c, form("login", "username", "password"))
}

// Login authenticates the user, starts a cookie session and returns a bearer
// token for clients that do not keep cookies.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, "Invalid login form")
		return
	}

	user, err := h.identity.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.signIn(c, user, "Logged in!", false)
}

// SignupForm handles GET /signup.
func (h *AuthHandler) SignupForm(c *gin.Context) {
	h.ok(c, form("signup", "email", "username", "password", "password1"))
}

// Signup registers a new user and signs them in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, "Invalid signup form")
		return
	}

	user, err := h.identity.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.signIn(c, user, "Account created!", true)
}

// Logout clears the session. Bearer tokens stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.identity.Logout(c.Request.Context())
	h.sessions.SignOut(c)
	h.flash(c, "Successfully logged out!")
	h.ok(c, gin.H{"logged_out": true})
}

func (h *AuthHandler) signIn(c *gin.Context, user *models.User, notice string, created bool) {
	token, err := h.tokens.Generate(user.ID, user.Username)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.sessions.SignIn(c, user.ID)
	h.flash(c, notice)

	resp := models.AuthResponse{Token: token, User: *user}
	if created {
		h.created(c, resp)
		return
	}
	h.ok(c, resp)
}
