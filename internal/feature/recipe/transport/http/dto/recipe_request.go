// Package dto defines data transfer objects for the recipe HTTP API.
package dto

import (
	"encoding/json"

	"recipebox/internal/shared/userid"
)

// CreateRecipeReq is the body of POST /api/recipes. Required fields are
// checked by the usecase so every missing-field case yields the same message.
type CreateRecipeReq struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Ingredients json.RawMessage `json:"ingredients"`
	Steps       json.RawMessage `json:"steps"`
	Image       string          `json:"image"`
	Time        string          `json:"time"`
	People      *int            `json:"people"`
	Rating      *float64        `json:"rating"`
	UploaderID  *userid.ID      `json:"uploaderId"`
}

// DeleteRecipeReq is the optional body of DELETE /api/recipes/:id.
type DeleteRecipeReq struct {
	UserID *userid.ID `json:"userId"`
}
