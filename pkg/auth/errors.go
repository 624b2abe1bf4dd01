package auth

import "errors"

// Sentinel errors for token verification.
var (
	// ErrInvalidToken is returned when a presented token cannot be parsed,
	// carries an unexpected signing method, or fails signature verification.
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrExpiredToken is returned when a presented token is past its
	// expiration time.
	ErrExpiredToken = errors.New("auth: token expired")

	// ErrMissingSecret is returned when an authenticator is constructed
	// without a signing secret.
	ErrMissingSecret = errors.New("auth: missing secret key")

	// ErrUnsupportedAlgorithm is returned when the configured signing
	// algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.New("auth: unsupported signing algorithm")
)
