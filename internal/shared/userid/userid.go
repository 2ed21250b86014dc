// Package userid defines the identifier type shared by every feature that
// references a user. Identifiers are parsed once at the boundary and compared
// with plain equality afterwards.
package userid

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrInvalid is returned when a value cannot be read as a user identifier.
var ErrInvalid = errors.New("invalid user id")

// ID identifies a user. Users are numbered sequentially starting at 1.
type ID uint64

// Parse reads a decimal user identifier. Signs, whitespace and fractional
// parts are rejected.
func Parse(s string) (ID, error) {
	if s == "" {
		return 0, ErrInvalid
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalid
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrInvalid
	}
	return ID(n), nil
}

// String returns the decimal form of the identifier.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Next returns the identifier that follows the largest one in ids, or 1 when
// ids is empty.
func Next(ids []ID) ID {
	var max ID
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// MarshalJSON encodes the identifier as a JSON number.
func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalJSON accepts a JSON number or a string holding one. Older data files
// and some clients send ids as strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalid
		}
		parsed, err := Parse(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Equal reports whether two optional identifiers are both present and equal.
func Equal(a, b *ID) bool {
	return a != nil && b != nil && *a == *b
}
