// Package jwt issues and verifies the signed, time-bounded bearer credentials
// used by the API. Tokens are stateless: nothing is persisted server-side, so
// logout is client-side only and a refreshed token does not revoke its
// predecessor (the old token stays valid until its natural expiry).
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every verification failure: bad signature, malformed
// token, wrong algorithm, expired. Callers never get partial claims.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents the token payload: subject identity + email
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Manager handles JWT operations
type Manager struct {
	secret string
	expiry time.Duration
}

// NewManager creates new JWT manager with the process-wide secret
func NewManager(secret string, expiry time.Duration) *Manager {
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &Manager{secret: secret, expiry: expiry}
}

// Expiry returns the configured validity window
func (m *Manager) Expiry() time.Duration {
	return m.expiry
}

// Generate mints a token for the given identity, valid for the configured
// window (1 hour by default)
func (m *Manager) Generate(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// Verify checks signature integrity and expiry, returning the claims on
// success and ErrInvalidToken on any failure
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Pin the signing method - an attacker-chosen alg never reaches the key
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	// golang-jwt already rejects expired tokens; claims with a missing exp
	// must not pass either
	if claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Subject parses the user id carried in the claims
func (c *Claims) Subject() (uuid.UUID, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
