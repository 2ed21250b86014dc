// Package entity defines the domain entities for the user feature.
package entity

import (
	"encoding/json"

	"recipebox/internal/shared/rawjson"
	"recipebox/internal/shared/userid"
)

// DefaultImage is used when a user signs up without an avatar.
const DefaultImage = "default_profile.svg"

// User is a registered user as stored in the user collection. Like recipes,
// users read from storage are written back over their stored object.
type User struct {
	ID    userid.ID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`

	// Password is the bcrypt hash. It is never sent to clients.
	Password string `json:"password"`

	Image string `json:"image"`

	// Groups is written as an empty list at signup. Membership is owned by
	// the group collection and this field is recomputed on every read.
	Groups []json.RawMessage `json:"groups"`

	stored rawjson.Object
}

func (u *User) fields() []rawjson.Field {
	return []rawjson.Field{
		{Key: "id", Value: &u.ID},
		{Key: "name", Value: &u.Name},
		{Key: "email", Value: &u.Email},
		{Key: "password", Value: &u.Password},
		{Key: "image", Value: &u.Image},
		{Key: "groups", Value: &u.Groups},
	}
}

// UnmarshalJSON decodes a stored user and remembers its stored object.
func (u *User) UnmarshalJSON(data []byte) error {
	var out User
	stored, err := rawjson.Decode(data, out.fields())
	if err != nil {
		return err
	}
	out.stored = stored
	*u = out
	return nil
}

// MarshalJSON writes the user over its stored object.
func (u User) MarshalJSON() ([]byte, error) {
	return u.stored.Encode(u.fields())
}
