// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication and account operations.
var (
	// ErrEmailAlreadyExists indicates that a user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates that the provided credentials are incorrect.
	// It is returned for unknown emails too so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInactiveUser is returned when a deactivated account authenticates.
	ErrInactiveUser = errors.New("inactive user")

	// ErrValidation wraps input that fails a business-level check.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when a deposit is not strictly positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)
