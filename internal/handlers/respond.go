package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/bloglite/backend/internal/logger"
	"github.com/emilythestrangee/bloglite/backend/internal/middleware"
	"github.com/emilythestrangee/bloglite/backend/internal/response"
	"github.com/emilythestrangee/bloglite/backend/internal/service"
)

// responder writes the envelope and drains the session's flash notices into it.
type responder struct {
	sessions *middleware.Sessions
}

func (r responder) ok(c *gin.Context, data interface{}) {
	response.Success(c, data, r.sessions.Commit(c)...)
}

func (r responder) created(c *gin.Context, data interface{}) {
	response.Created(c, data, r.sessions.Commit(c)...)
}

func (r responder) flash(c *gin.Context, message string) {
	r.sessions.Flash(c, response.FlashSuccess, message)
}

// fail maps a service error onto a status code. Failures the client can act on
// are flashed as well.
func (r responder) fail(c *gin.Context, err error) {
	status, code := statusFor(err)
	msg := service.Message(err)

	if status >= http.StatusInternalServerError {
		l := logger.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("request failed")
	} else {
		r.sessions.Flash(c, response.FlashError, msg)
	}

	response.Error(c, status, code, msg, r.sessions.Commit(c)...)
}

func (r responder) badRequest(c *gin.Context, msg string) {
	r.sessions.Flash(c, response.FlashError, msg)
	response.BadRequest(c, msg, r.sessions.Commit(c)...)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, service.ErrAuth):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, service.ErrAlreadyFollowing):
		return http.StatusConflict, "ALREADY_FOLLOWING"
	case errors.Is(err, service.ErrNotFollowing):
		return http.StatusConflict, "NOT_FOLLOWING"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// form describes the fields a POST to the same path accepts.
func form(name string, fields ...string) gin.H {
	return gin.H{"form": name, "fields": fields}
}

func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
