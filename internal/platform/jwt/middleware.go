package jwtmw

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"recipebox/internal/shared/userid"
)

// ContextUserID is the gin context key holding the authenticated userid.ID.
const ContextUserID = "userID"

var errMissingSubject = errors.New("token has no usable subject")

// AuthOptional returns a Gin middleware that authenticates the request when it
// carries an "Authorization: Bearer <jwt>" header. Requests without the header
// pass through anonymously; a header with a bad token is rejected with 401.
func AuthOptional(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.Next()
			return
		}
		tokenStr, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		id, err := ParseToken(tokenStr, key)
		if err != nil {
			slog.Warn("rejected access token", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(ContextUserID, id)
		c.Next()
	}
}

// ParseToken verifies an HS256 token and returns its subject.
func ParseToken(tokenStr string, secret []byte) (userid.ID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errMissingSubject
	}
	// JWT numbers are decoded as float64
	sub, ok := claims["sub"].(float64)
	if !ok || sub < 0 || sub != math.Trunc(sub) {
		return 0, errMissingSubject
	}
	return userid.ID(sub), nil
}

// UserIDFrom returns the authenticated user, or nil for anonymous requests.
func UserIDFrom(c *gin.Context) *userid.ID {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return nil
	}
	id, ok := v.(userid.ID)
	if !ok {
		return nil
	}
	return &id
}
