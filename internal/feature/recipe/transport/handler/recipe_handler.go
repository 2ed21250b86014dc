// Package handler provides the HTTP handlers for the recipe feature.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipebox/internal/feature/recipe/domain/entity"
	"recipebox/internal/feature/recipe/transport/http/dto"
	"recipebox/internal/feature/recipe/usecase"
	"recipebox/internal/platform/http/response"
	jwtmw "recipebox/internal/platform/jwt"
	"recipebox/internal/shared/userid"
)

// RecipeUsecase defines the recipe operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type RecipeUsecase interface {
	ListAll(ctx context.Context) ([]entity.Recipe, error)
	Search(ctx context.Context, query string) ([]entity.Recipe, error)
	Get(ctx context.Context, id string) (*entity.Recipe, error)
	ListByUploader(ctx context.Context, uploader userid.ID) ([]entity.Recipe, error)
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Recipe, error)
	Delete(ctx context.Context, id string, requester *userid.ID) error
}

// UserChecker reports whether a user exists.
type UserChecker interface {
	Exists(ctx context.Context, id userid.ID) (bool, error)
}

// RecipeHandler handles HTTP requests for recipes.
type RecipeHandler struct {
	uc    RecipeUsecase
	users UserChecker
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(uc RecipeUsecase, users UserChecker) *RecipeHandler {
	return &RecipeHandler{uc: uc, users: users}
}

// List handles GET /api/recipes.
func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.uc.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Error reading recipes", err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Search handles GET /api/recipes/search/:query.
func (h *RecipeHandler) Search(c *gin.Context) {
	recipes, err := h.uc.Search(c.Request.Context(), c.Param("query"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Error searching recipes", err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Get handles GET /api/recipes/:id.
func (h *RecipeHandler) Get(c *gin.Context) {
	recipe, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, usecase.ErrRecipeNotFound):
		response.Message(c, http.StatusNotFound, "Recipe not found")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "Error reading recipes", err)
	default:
		c.JSON(http.StatusOK, recipe)
	}
}

// ListByUser handles GET /api/users/:id/recipes.
func (h *RecipeHandler) ListByUser(c *gin.Context) {
	id, err := userid.Parse(c.Param("id"))
	if err != nil {
		response.Message(c, http.StatusNotFound, "User not found")
		return
	}
	ok, err := h.users.Exists(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Error reading users", err)
		return
	}
	if !ok {
		response.Message(c, http.StatusNotFound, "User not found")
		return
	}

	recipes, err := h.uc.ListByUploader(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Error reading recipes", err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Create handles POST /api/recipes.
// - malformed JSON or wrongly typed fields yield 400
// - missing name, ingredients or steps yield 400
// - the created recipe is returned with 201
func (h *RecipeHandler) Create(c *gin.Context) {
	var req dto.CreateRecipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	recipe, err := h.uc.Create(c.Request.Context(), usecase.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		Image:       req.Image,
		Time:        req.Time,
		People:      req.People,
		Rating:      req.Rating,
		UploaderID:  req.UploaderID,
	})
	switch {
	case errors.Is(err, usecase.ErrMissingFields):
		response.Message(c, http.StatusBadRequest, "Missing required fields")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "Error saving recipe", err)
	default:
		c.JSON(http.StatusCreated, recipe)
	}
}

// Delete handles DELETE /api/recipes/:id. The requester is the authenticated
// user when a token was presented, otherwise the userId from the body.
func (h *RecipeHandler) Delete(c *gin.Context) {
	requester := jwtmw.UserIDFrom(c)
	if requester == nil {
		var req dto.DeleteRecipeReq
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.Error(c, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		requester = req.UserID
	}

	err := h.uc.Delete(c.Request.Context(), c.Param("id"), requester)
	switch {
	case errors.Is(err, usecase.ErrRecipeNotFound):
		response.Message(c, http.StatusNotFound, "Recipe not found")
	case errors.Is(err, usecase.ErrNotOwner):
		response.Message(c, http.StatusForbidden, "Not authorized to delete this recipe")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "Error deleting recipe", err)
	default:
		response.Message(c, http.StatusOK, "Recipe deleted successfully")
	}
}
