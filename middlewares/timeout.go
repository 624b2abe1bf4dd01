package middlewares

import (
	"context"
	"time"

	"github.com/dmitrymomot/anvil/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// timeoutContextKey stores the deadline-bound context in request scope.
type timeoutContextKey struct{}

// Timeout returns middleware that enforces a request timeout. If the
// handler does not complete within the timeout, a TimeoutError is
// returned for the error handler to render as a 504. A non-positive
// timeout falls back to DefaultTimeout.
//
// The handler goroutine keeps running after the deadline. Long-running
// work should watch ctx.Done() on the context from GetTimeoutContext
// and stop early.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()

			c.Set(timeoutContextKey{}, ctx)

			done := make(chan error, 1)
			go func() { done <- next(c) }()

			// Waiting on both channels lets the handler finish normally
			// when the context ends for reasons other than the deadline.
			select {
			case err := <-done:
				return err
			case <-ctx.Done():
			}

			if err := ctx.Err(); err != context.DeadlineExceeded {
				return err
			}

			c.LogWarn("request timeout", "timeout", timeout.String())
			return &TimeoutError{Duration: timeout}
		}
	}
}

// GetTimeoutContext returns the deadline-bound context set by Timeout,
// or the request context when the middleware is not installed.
func GetTimeoutContext(c internal.Context) context.Context {
	if ctx, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return ctx
	}
	return c.Context()
}
