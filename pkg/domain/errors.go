package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrInvalidAmount is returned when a monetary amount is zero, negative or malformed
	ErrInvalidAmount = errors.New("amount must be a positive value with at most two decimal places")
	// ErrUnauthorized is returned when a request carries no valid principal
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is returned when a row changed underneath an update
	ErrConflict = errors.New("resource was modified concurrently")
	// ErrUnavailable is returned when the ledger store fails or times out
	ErrUnavailable = errors.New("ledger store unavailable")
)
