// Package entity defines the domain entities for the group feature.
package entity

import (
	"encoding/json"

	"recipebox/internal/shared/userid"
)

// Group is a loosely shaped stored group. Fields are kept as raw JSON so that
// records are returned exactly as stored.
type Group map[string]json.RawMessage

// ID returns the raw "id" value and whether the group has one.
func (g Group) ID() (json.RawMessage, bool) {
	raw, ok := g["id"]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

// HasMember reports whether the "users" list contains id. A missing or
// malformed list, and entries that are not user ids, never match.
func (g Group) HasMember(id userid.ID) bool {
	raw, ok := g["users"]
	if !ok {
		return false
	}
	var members []json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return false
	}
	for _, m := range members {
		var member userid.ID
		if isNull(m) || json.Unmarshal(m, &member) != nil {
			continue
		}
		if member == id {
			return true
		}
	}
	return false
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
