package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("p")
	require.NoError(t, err)
	assert.NotEqual(t, "p", hash)

	assert.NoError(t, CheckPassword(hash, "p"))
	assert.ErrorIs(t, CheckPassword(hash, "q"), ErrPasswordMismatch)
}

func TestHashPasswordIsSalted(t *testing.T) {
	h1, err := HashPassword("same")
	require.NoError(t, err)
	h2, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	tok, err := m.Generate(42, "a")
	require.NoError(t, err)

	claims, err := m.Validate(tok)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "a", claims.Username)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	tok, err := m.Generate(1, "a")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := NewTokenManager("one", time.Hour).Generate(1, "a")
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{UserID: 1, Username: "a"}
	claims.Issuer = "bloglite"
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
