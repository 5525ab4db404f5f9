package service

import "errors"

// Service-level errors. They propagate to the handler boundary unmodified in
// kind; the handler translates them to HTTP without leaking which check
// failed on authentication paths.
var (
	// ErrTokenAlreadyInvalidated is returned when a token's jti is already on
	// the revocation list. Revocation is terminal for that jti.
	ErrTokenAlreadyInvalidated = errors.New("token has already been invalidated")

	// ErrClaimMissing is returned when a required claim is absent. Missing
	// identity data never falls back to a default authority.
	ErrClaimMissing = errors.New("required claim is missing")

	// ErrUserNotFound is returned when no user matches the credential key
	ErrUserNotFound = errors.New("user not found")

	// ErrUserStatusInvalid is returned when the user's status does not permit
	// authentication
	ErrUserStatusInvalid = errors.New("user status does not allow authentication")

	// ErrCredentialInvalid is returned when the presented secret does not
	// match the stored hash
	ErrCredentialInvalid = errors.New("invalid credentials")

	// ErrUserAlreadyExists is returned when the credential key is already
	// registered
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrForbidden is returned when an authenticated principal does not own
	// the resource it is operating on
	ErrForbidden = errors.New("operation not permitted")

	// ErrValidation is returned when request input fails a domain rule that
	// binding tags cannot express
	ErrValidation = errors.New("validation failed")
)
