package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Response is the envelope every endpoint replies with.
type Response struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Messages []Notice    `json:"messages,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Notice is a one-shot flash message.
type Notice struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Success sends a 200 response.
func Success(c *gin.Context, data interface{}, messages ...Notice) {
	c.JSON(http.StatusOK, Response{
		Success:  true,
		Data:     data,
		Messages: messages,
	})
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}, messages ...Notice) {
	c.JSON(http.StatusCreated, Response{
		Success:  true,
		Data:     data,
		Messages: messages,
	})
}

// Error sends an error response.
func Error(c *gin.Context, statusCode int, code, message string, messages ...Notice) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
		Messages: messages,
	})
}

func BadRequest(c *gin.Context, message string, messages ...Notice) {
	Error(c, http.StatusBadRequest, "BAD_REQUEST", message, messages...)
}

func Unauthorized(c *gin.Context, message string, messages ...Notice) {
	Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message, messages...)
}

func Forbidden(c *gin.Context, message string, messages ...Notice) {
	Error(c, http.StatusForbidden, "FORBIDDEN", message, messages...)
}

func NotFound(c *gin.Context, message string, messages ...Notice) {
	Error(c, http.StatusNotFound, "NOT_FOUND", message, messages...)
}

func Conflict(c *gin.Context, message string, messages ...Notice) {
	Error(c, http.StatusConflict, "CONFLICT", message, messages...)
}

func InternalError(c *gin.Context, message string, messages ...Notice) {
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, messages...)
}
