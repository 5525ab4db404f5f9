package token

import "errors"

// Codec and key-material errors
var (
	// ErrKeyMaterial is returned when the configured PEM key pair cannot be
	// parsed. It is a fatal startup error.
	ErrKeyMaterial = errors.New("invalid key material")

	// ErrTokenMalformed is returned for structurally invalid token input
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrSignatureInvalid is returned when the signature does not verify
	// against the configured public key
	ErrSignatureInvalid = errors.New("token signature is invalid")

	// ErrTokenExpired is returned when the current time is at or past the
	// token's expiration claim
	ErrTokenExpired = errors.New("token is expired")
)
