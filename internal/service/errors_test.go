package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := validationError("Email exists")
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Email exists", Message(err))

	cause := errors.New("disk full")
	err = storeError("create post", cause)
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Something went wrong, please try again", Message(err))
}
