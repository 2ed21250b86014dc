// Package usecase implements the business logic for the user feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when no user has the requested ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when signing up with an email that is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
	ErrPasswordTooLong = errors.New("password too long")
)
