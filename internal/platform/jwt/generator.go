// Package jwtmw issues and verifies the HS256 bearer tokens used by the API.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names carried in every token.
const (
	ClaimSubject = "sub"
	ClaimEmail   = "email"
	ClaimRole    = "role"
)

// generator signs tokens with a shared HMAC secret.
type generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a signed JWT token carrying the user id, email and role.
func (g *generator) GenerateToken(userID uint, email, role string) (string, error) {
	now := g.now()
	claims := jwt.MapClaims{
		ClaimSubject: userID,
		"exp":        now.Add(g.expiration).Unix(),
		"iat":        now.Unix(),
		ClaimEmail:   email,
		ClaimRole:    role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
