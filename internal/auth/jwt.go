package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification outcomes the middleware and refresh flow need to tell apart:
// an expired token means the client should refresh, anything else means it
// must re-authenticate.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenManager issues and verifies the two token kinds. Access and refresh
// tokens are signed with distinct secrets so compromise of one does not
// forge the other.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewTokenManager creates a new token manager.
func NewTokenManager(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// GenerateAccessToken produces a short-lived token whose subject is the user
// ID. Signing has no side effects; access tokens are never persisted.
func (m *TokenManager) GenerateAccessToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(m.accessExpiry)),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(m.accessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// GenerateRefreshToken produces a long-lived token for the user. The jti
// claim makes every issued token unique, so one user can hold a row per
// device. The caller is responsible for persisting the returned string.
func (m *TokenManager) GenerateRefreshToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshExpiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.New().String(),
	})

	signed, err := token.SignedString(m.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return signed, nil
}

// VerifyAccessToken checks signature and expiry and returns the subject.
func (m *TokenManager) VerifyAccessToken(token string) (string, error) {
	return m.verify(token, m.accessSecret)
}

// VerifyRefreshToken checks signature and expiry and returns the subject.
func (m *TokenManager) VerifyRefreshToken(token string) (string, error) {
	return m.verify(token, m.refreshSecret)
}

func (m *TokenManager) verify(tokenString string, secret []byte) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %s", ErrTokenExpired, err)
		}
		return "", fmt.Errorf("%w: %s", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	return claims.Subject, nil
}

// AccessTokenExpiry returns the access token lifetime.
func (m *TokenManager) AccessTokenExpiry() time.Duration {
	return m.accessExpiry
}

// RefreshTokenExpiry returns the refresh token lifetime.
func (m *TokenManager) RefreshTokenExpiry() time.Duration {
	return m.refreshExpiry
}
