package usecase

import "errors"

// Sentinel errors shared by all services. The HTTP layer maps each one
// to a response status, so services wrap these rather than inventing
// their own categories.
var (
	// ErrInvalidInput marks a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a lookup for a player, match or user that does
	// not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized marks a missing, expired or insufficient session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDependencyUnavailable marks a failure in the database or
	// another backing system.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
