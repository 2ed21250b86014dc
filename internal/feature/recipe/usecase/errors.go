// Package usecase implements the business logic for the recipe feature.
package usecase

import "errors"

var (
	// ErrMissingFields is returned when name, ingredients or steps are absent.
	ErrMissingFields = errors.New("missing required fields")

	// ErrRecipeNotFound is returned when no recipe has the requested ID.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrNotOwner is returned when the requester did not upload the recipe.
	ErrNotOwner = errors.New("not the owner of this recipe")
)
