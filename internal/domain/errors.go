package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// The more specific errors below wrap it, so errors.Is(err, ErrValidation)
	// identifies every validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when a task item ID is not a positive integer.
	ErrInvalidID = errors.New("invalid ID")
)
