// Package response writes the JSON bodies shared by every API handler.
package response

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// MessageResponse is the body of every error and acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// Message writes {"message": msg} with the given status.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, MessageResponse{Message: msg})
}

// Error logs err with the request it belongs to and writes msg. err is never
// sent to the client.
func Error(c *gin.Context, status int, msg string, err error) {
	attrs := []any{
		"status", status,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	}
	if status >= 500 {
		slog.Error(msg, attrs...)
	} else {
		slog.Warn(msg, attrs...)
	}
	c.JSON(status, MessageResponse{Message: msg})
}
