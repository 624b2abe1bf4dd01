package redis

import "errors"

// Sentinel errors for connection lifecycle failures.
var (
	// ErrEmptyConnectionURL is returned by Open when the URL is empty.
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")

	// ErrFailedToParseURL is returned when the URL is not a valid
	// redis:// or rediss:// connection string.
	ErrFailedToParseURL = errors.New("redis: failed to parse connection URL")

	// ErrConnectionFailed is returned when no connection could be
	// established within the configured retry budget.
	ErrConnectionFailed = errors.New("redis: failed to establish connection")

	// ErrHealthcheckFailed is returned by readiness probes when the
	// server does not answer a ping.
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
