package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create a user with an existing email
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrUnavailable is returned when the backing store cannot be reached.
	// Callers must treat this as a hard failure: an unverifiable revocation
	// check never falls back to "assume valid".
	ErrUnavailable = errors.New("store unavailable")
)
