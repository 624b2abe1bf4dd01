package health

import "errors"

var (
	// ErrCheckFailed reports an unhealthy aggregate from Run.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout replaces a probe's error when the evaluation
	// deadline expired before the probe finished.
	ErrCheckTimeout = errors.New("health: check timeout")
)
