// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// checkTimeout bounds each dependency probe.
const checkTimeout = 2 * time.Second

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

// HealthHandler serves /healthz.
type HealthHandler struct {
	checks map[string]Check
}

// NewHealthHandler returns a handler running checks on every GET.
func NewHealthHandler(checks map[string]Check) *HealthHandler {
	if checks == nil {
		checks = map[string]Check{}
	}
	return &HealthHandler{checks: checks}
}

// Health handles the /healthz endpoint. GET runs every check and answers 503
// naming the failing ones; HEAD and OPTIONS only confirm the process is up.
func (h *HealthHandler) Health(c *gin.Context) {
	// Prevent caching explicitly
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
		return
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	failed := map[string]string{}
	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		err := check(ctx)
		cancel()
		if err != nil {
			slog.Warn("health check failed", "check", name, "error", err)
			failed[name] = "unavailable"
		}
	}

	if len(failed) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": failed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
