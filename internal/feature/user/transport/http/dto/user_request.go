// Package dto defines data transfer objects for the user HTTP API.
package dto

// SignupReq is the body of POST /api/users/signup.
type SignupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Image    string `json:"image"`
}

// LoginReq is the body of POST /api/users/login.
type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordReq is the body of PUT /api/users/:id/password.
type ChangePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}
