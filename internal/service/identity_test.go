package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/bloglite/backend/internal/models"
)

func TestRegisterCreatesUserWithSelfEdge(t *testing.T) {
	f := newFixture(t)

	u := f.register(t, "a")

	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "p", u.PasswordHash)
	assert.Equal(t, [][2]uint{{u.ID, u.ID}}, f.edges(t))
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a")

	tests := []struct {
		name string
		req  models.RegisterRequest
		msg  string
	}{
		{"duplicate email", models.RegisterRequest{Email: "a@x", Username: "other", Password: "p", ConfirmPassword: "p"}, "Email exists"},
		{"duplicate username", models.RegisterRequest{Email: "new@x", Username: "a", Password: "p", ConfirmPassword: "p"}, "Username already exists"},
		{"password mismatch", models.RegisterRequest{Email: "b@x", Username: "b", Password: "p", ConfirmPassword: "q"}, "Passwords don't match"},
		{"empty email", models.RegisterRequest{Username: "b", Password: "p", ConfirmPassword: "p"}, "You have to enter an email address"},
		{"empty username", models.RegisterRequest{Email: "b@x", Password: "p", ConfirmPassword: "p"}, "You have to enter a username"},
		{"empty password", models.RegisterRequest{Email: "b@x", Username: "b"}, "You have to enter a password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.identity.Register(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.msg, Message(err))
		})
	}

	var count int64
	require.NoError(t, f.db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	a := f.register(t, "a")

	u, err := f.identity.Authenticate(context.Background(), "a", "p")
	require.NoError(t, err)
	assert.Equal(t, a.ID, u.ID)

	_, err = f.identity.Authenticate(context.Background(), "nobody", "p")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.identity.Authenticate(context.Background(), "a", "wrong")
	assert.ErrorIs(t, err, ErrAuth)
	assert.Equal(t, "Password is incorrect", Message(err))
}

func TestCurrent(t *testing.T) {
	f := newFixture(t)
	a := f.register(t, "a")

	u, err := f.identity.Current(as(a))
	require.NoError(t, err)
	assert.Equal(t, "a", u.Username)

	_, err = f.identity.Current(context.Background())
	assert.ErrorIs(t, err, ErrAuth)

	// Logout is idempotent and safe without a principal.
	f.identity.Logout(as(a))
	f.identity.Logout(as(a))
	f.identity.Logout(context.Background())
}
