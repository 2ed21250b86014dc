package di

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// JWTSecret returns configured, or a random per-process secret when it is
// empty. Tokens signed with a random secret stop verifying after a restart.
func JWTSecret(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	slog.Warn("JWT_SECRET is not set; using a random secret. Set a strong secret in production.")
	return hex.EncodeToString(buf), nil
}
