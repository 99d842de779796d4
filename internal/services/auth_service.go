package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/profile-service/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokensDisabled     = errors.New("token issuance is disabled")
)

// AuthService checks the fixed admin credentials that gate every write and,
// when a signing secret is configured, exchanges them for short-lived bearer
// tokens.
type AuthService struct {
	username     string
	passwordHash []byte
	jwtSecret    []byte
	accessExpiry time.Duration
}

func NewAuthService(cfg *config.Config) (*AuthService, error) {
	return newAuthService(cfg, bcrypt.DefaultCost)
}

func newAuthService(cfg *config.Config, cost int) (*AuthService, error) {
	if cfg.AdminPassword == "" {
		return nil, errors.New("admin password is not configured")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	expiry := cfg.JWTAccessExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &AuthService{
		username:     cfg.AdminUsername,
		passwordHash: hash,
		jwtSecret:    []byte(cfg.JWTSecret),
		accessExpiry: expiry,
	}, nil
}

// Verify reports whether username and password match the configured admin.
// The bcrypt comparison always runs so a wrong username costs the same as a
// wrong password.
func (s *AuthService) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	return userOK && passOK
}

func (s *AuthService) TokensEnabled() bool {
	return len(s.jwtSecret) > 0
}

func (s *AuthService) SigningKey() []byte {
	return s.jwtSecret
}

func (s *AuthService) AccessExpiry() time.Duration {
	return s.accessExpiry
}

// IssueToken signs an HS256 access token for an already verified user.
func (s *AuthService) IssueToken(username string) (string, error) {
	if !s.TokensEnabled() {
		return "", ErrTokensDisabled
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(s.accessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
