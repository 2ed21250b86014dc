package dto

import (
	"encoding/json"

	"recipebox/internal/feature/user/domain/entity"
	"recipebox/internal/shared/userid"
)

// UserRes is the public view of a user. It has no password field.
type UserRes struct {
	ID     userid.ID         `json:"id"`
	Name   string            `json:"name"`
	Email  string            `json:"email"`
	Image  string            `json:"image"`
	Groups []json.RawMessage `json:"groups"`
}

// LoginRes is the user followed by its access token.
type LoginRes struct {
	UserRes
	Token string `json:"token"`
}

// NewUserRes converts an entity to its public view.
func NewUserRes(u entity.User) UserRes {
	groups := u.Groups
	if groups == nil {
		groups = []json.RawMessage{}
	}
	return UserRes{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image, Groups: groups}
}
