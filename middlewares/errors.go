package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// PanicError wraps a value recovered from a panicking handler.
type PanicError struct {
	Value any
	Stack []byte // nil when stack capture is disabled
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// StatusCode reports the HTTP status the default error handler renders
// for a recovered panic.
func (e *PanicError) StatusCode() int {
	return http.StatusInternalServerError
}

// TimeoutError reports a handler that did not finish within its deadline.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

// StatusCode reports the HTTP status the default error handler renders
// for a timed-out request.
func (e *TimeoutError) StatusCode() int {
	return http.StatusGatewayTimeout
}

// AsPanicError extracts the PanicError from an error chain if present.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsPanicError reports whether the error chain contains a PanicError.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

// AsTimeoutError extracts the TimeoutError from an error chain if present.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	var te *TimeoutError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// IsTimeoutError reports whether the error chain contains a TimeoutError.
func IsTimeoutError(err error) bool {
	_, ok := AsTimeoutError(err)
	return ok
}
