// Package usecase implements the business logic for the group feature.
package usecase

import "errors"

// ErrInvalidUserID is returned when a user id in a request is not a
// non-negative decimal integer.
var ErrInvalidUserID = errors.New("invalid user id")
