package auth

import "errors"

// Verification failures, in the order the checks run. Handlers must not
// leak which one occurred to the client; they exist for server-side logs
// and tests.
var (
	ErrMissingToken     = errors.New("missing bearer token")
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
)

// ErrEmptyPassword is returned when a caller tries to hash an empty string.
var ErrEmptyPassword = errors.New("password must not be empty")
