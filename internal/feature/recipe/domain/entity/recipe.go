// Package entity defines the domain entities for the recipe feature.
package entity

import (
	"encoding/json"
	"strings"
	"time"

	"recipebox/internal/shared/rawjson"
	"recipebox/internal/shared/userid"
)

// DefaultImage is used when a recipe is created without an image.
const DefaultImage = "default_recipe.jpg"

// Recipe is a shared recipe as stored in the recipe collection.
//
// A recipe read from storage is written back with its stored object intact:
// keys not modeled here survive, and fields left unchanged keep their stored
// value even when it had another JSON type (for example "people": "4").
type Recipe struct {
	// ID is a UUID assigned at creation.
	ID string `json:"id"`

	Name        string `json:"name"`
	Description string `json:"description"`

	// Ingredients and Steps are kept exactly as the client sent them.
	Ingredients json.RawMessage `json:"ingredients"`
	Steps       json.RawMessage `json:"steps"`

	Time   string  `json:"time"`
	People int     `json:"people"`
	Rating float64 `json:"rating"`
	Image  string  `json:"image"`

	// UploaderID is the owning user. Recipes without an owner cannot be deleted.
	UploaderID *userid.ID `json:"uploaderId"`

	CreatedAt time.Time `json:"createdAt"`

	stored rawjson.Object
}

func (r *Recipe) fields() []rawjson.Field {
	return []rawjson.Field{
		{Key: "id", Value: &r.ID},
		{Key: "name", Value: &r.Name},
		{Key: "description", Value: &r.Description},
		{Key: "ingredients", Value: &r.Ingredients},
		{Key: "steps", Value: &r.Steps},
		{Key: "time", Value: &r.Time},
		{Key: "people", Value: &r.People},
		{Key: "rating", Value: &r.Rating},
		{Key: "image", Value: &r.Image},
		{Key: "uploaderId", Value: &r.UploaderID},
		{Key: "createdAt", Value: &r.CreatedAt},
	}
}

// UnmarshalJSON decodes a stored recipe and remembers its stored object.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var out Recipe
	stored, err := rawjson.Decode(data, out.fields())
	if err != nil {
		return err
	}
	out.stored = stored
	*r = out
	return nil
}

// MarshalJSON writes the recipe over its stored object.
func (r Recipe) MarshalJSON() ([]byte, error) {
	return r.stored.Encode(r.fields())
}

// Matches reports whether lowerQuery occurs in the name or the description,
// ignoring case. lowerQuery must already be lowercased.
func (r Recipe) Matches(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(r.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(r.Description), lowerQuery)
}
