package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"recipebox/internal/platform/http/response"
)

// Limiter decides whether a caller identified by key may proceed.
type Limiter interface {
	Allow(key string) (ok bool, retryAfter time.Duration)
}

// RateLimit rejects requests over the limiter's budget with 429, keyed by
// client IP.
func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retryAfter := l.Allow(c.ClientIP())
		if ok {
			c.Next()
			return
		}
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		response.Message(c, http.StatusTooManyRequests, "Too many requests")
		c.Abort()
	}
}
