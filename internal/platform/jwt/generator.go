// Package jwtmw issues access tokens and reads them back from requests.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"recipebox/internal/shared/userid"
)

// Generator signs HS256 access tokens.
type Generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *Generator {
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a signed JWT token with standard claims.
func (g *Generator) GenerateToken(userID userid.ID, email string) (string, error) {
	now := g.now()
	claims := jwt.MapClaims{
		"sub":   uint64(userID),
		"exp":   now.Add(g.expiration).Unix(),
		"iat":   now.Unix(),
		"email": email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
