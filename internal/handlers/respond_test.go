package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emilythestrangee/bloglite/backend/internal/service"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{&service.Error{Kind: service.ErrValidation, Msg: "x"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{&service.Error{Kind: service.ErrAuth, Msg: "x"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{&service.Error{Kind: service.ErrForbidden, Msg: "x"}, http.StatusForbidden, "FORBIDDEN"},
		{&service.Error{Kind: service.ErrNotFound, Msg: "x"}, http.StatusNotFound, "NOT_FOUND"},
		{&service.Error{Kind: service.ErrAlreadyFollowing, Msg: "x"}, http.StatusConflict, "ALREADY_FOLLOWING"},
		{&service.Error{Kind: service.ErrNotFollowing, Msg: "x"}, http.StatusConflict, "NOT_FOLLOWING"},
		{fmt.Errorf("%w: boom", service.ErrStore), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{fmt.Errorf("unexpected"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		status, code := statusFor(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}
