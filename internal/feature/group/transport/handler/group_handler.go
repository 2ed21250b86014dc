// Package handler provides the HTTP handlers for the group feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipebox/internal/feature/group/domain/entity"
	"recipebox/internal/feature/group/usecase"
	"recipebox/internal/platform/http/response"
)

// GroupUsecase defines the group queries the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type GroupUsecase interface {
	ListAll(ctx context.Context) ([]entity.Group, error)
	ListForUser(ctx context.Context, rawUserID string) ([]entity.Group, error)
}

// GroupHandler handles HTTP requests for groups.
type GroupHandler struct {
	uc GroupUsecase
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(uc GroupUsecase) *GroupHandler {
	return &GroupHandler{uc: uc}
}

// List handles GET /api/groups.
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.uc.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Error reading groups", err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// ListForUser handles GET /api/groups/user/:userId.
func (h *GroupHandler) ListForUser(c *gin.Context) {
	groups, err := h.uc.ListForUser(c.Request.Context(), c.Param("userId"))
	switch {
	case errors.Is(err, usecase.ErrInvalidUserID):
		response.Message(c, http.StatusBadRequest, "Invalid user id")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "Error reading groups", err)
	default:
		c.JSON(http.StatusOK, groups)
	}
}
