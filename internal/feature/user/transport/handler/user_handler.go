// Package handler provides the HTTP handlers for the user feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipebox/internal/feature/user/domain/entity"
	"recipebox/internal/feature/user/transport/http/dto"
	"recipebox/internal/feature/user/usecase"
	"recipebox/internal/platform/http/response"
	jwtmw "recipebox/internal/platform/jwt"
	"recipebox/internal/shared/userid"
)

// UserUsecase defines the account operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type UserUsecase interface {
	ListAll(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id userid.ID) (*entity.User, error)
	Signup(ctx context.Context, in usecase.SignupInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	ChangePassword(ctx context.Context, id userid.ID, current, newPassword string) error
}

// UserHandler handles HTTP requests for users and authentication.
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List handles GET /api/users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.uc.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Error reading users", err)
		return
	}
	out := make([]dto.UserRes, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserRes(u))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /api/users/:id. A malformed id cannot name a user and
// yields 404 like an unknown one.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := userid.Parse(c.Param("id"))
	if err != nil {
		response.Message(c, http.StatusNotFound, "User not found")
		return
	}
	user, err := h.uc.GetByID(c.Request.Context(), id)
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		response.Message(c, http.StatusNotFound, "User not found")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "Error reading users", err)
	default:
		c.JSON(http.StatusOK, dto.NewUserRes(*user))
	}
}

// Signup handles POST /api/users/signup.
// - missing or malformed fields yield 400
// - an already registered email yields 400
// - the new user is returned with 201
func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.uc.Signup(c.Request.Context(), usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Image:    req.Image,
	})
	switch {
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		response.Message(c, http.StatusBadRequest, "User already exists")
	case errors.Is(err, usecase.ErrPasswordTooLong):
		response.Message(c, http.StatusBadRequest, "Password too long")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "Error creating user", err)
	default:
		slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
		c.JSON(http.StatusCreated, dto.NewUserRes(*user))
	}
}

// Login handles POST /api/users/login. Unknown emails and wrong passwords get
// the same 401 response.
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, token, err := h.uc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		slog.Warn("login failed", "remote_addr", c.ClientIP())
		response.Message(c, http.StatusUnauthorized, "Invalid credentials")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "Error during login", err)
	default:
		slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
		c.JSON(http.StatusOK, dto.LoginRes{UserRes: dto.NewUserRes(*user), Token: token})
	}
}

// ChangePassword handles PUT /api/users/:id/password. When the request is
// authenticated, only the account owner may change the password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, err := userid.Parse(c.Param("id"))
	if err != nil {
		response.Message(c, http.StatusNotFound, "User not found")
		return
	}
	if caller := jwtmw.UserIDFrom(c); caller != nil && *caller != id {
		response.Message(c, http.StatusForbidden, "Not authorized to change this password")
		return
	}

	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err = h.uc.ChangePassword(c.Request.Context(), id, req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		response.Message(c, http.StatusNotFound, "User not found")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		response.Message(c, http.StatusUnauthorized, "Current password is incorrect")
	case errors.Is(err, usecase.ErrPasswordTooLong):
		response.Message(c, http.StatusBadRequest, "Password too long")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "Error updating password", err)
	default:
		response.Message(c, http.StatusOK, "Password updated successfully")
	}
}
