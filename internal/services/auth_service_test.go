package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/profile-service/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T, secret string) *AuthService {
	t.Helper()
	s, err := newAuthService(&config.Config{
		AdminUsername:   "admin",
		AdminPassword:   "s3cret",
		JWTSecret:       secret,
		JWTAccessExpiry: 15 * time.Minute,
	}, bcrypt.MinCost)
	require.NoError(t, err)
	return s
}

func TestNewAuthServiceRequiresPassword(t *testing.T) {
	_, err := NewAuthService(&config.Config{AdminUsername: "admin"})
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	s := newTestAuth(t, "")

	assert.True(t, s.Verify("admin", "s3cret"))
	assert.False(t, s.Verify("admin", "wrong"))
	assert.False(t, s.Verify("root", "s3cret"))
	assert.False(t, s.Verify("", ""))
}

func TestIssueTokenDisabledWithoutSecret(t *testing.T) {
	s := newTestAuth(t, "")

	assert.False(t, s.TokensEnabled())
	_, err := s.IssueToken("admin")
	assert.ErrorIs(t, err, ErrTokensDisabled)
}

func TestIssueToken(t *testing.T) {
	s := newTestAuth(t, "signing-key")

	signed, err := s.IssueToken("admin")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("signing-key"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	assert.True(t, token.Valid)

	sub, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp.Time, 5*time.Second)
}
