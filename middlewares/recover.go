package middlewares

import (
	"net/http"
	"runtime"

	"github.com/dmitrymomot/anvil/internal"
)

// DefaultStackSize caps how many bytes of stack trace a recovered
// panic carries into the log.
const DefaultStackSize = 4096

// RecoverConfig configures the Recover middleware.
type RecoverConfig struct {
	StackSize         int
	DisablePrintStack bool
}

// capture logs a recovered panic and wraps it for the error handler.
func (cfg *RecoverConfig) capture(c internal.Context, r any) *PanicError {
	if cfg.DisablePrintStack {
		c.LogError("panic recovered", "panic", r)
		return &PanicError{Value: r}
	}

	stack := make([]byte, cfg.StackSize)
	stack = stack[:runtime.Stack(stack, false)]

	c.LogError("panic recovered", "panic", r, "stack", string(stack))
	return &PanicError{Value: r, Stack: stack}
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the stack trace size limit.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack drops stack traces from panic logs.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover returns middleware that recovers from panics.
// It logs the panic and returns a PanicError for the error handler to
// render as a 500. http.ErrAbortHandler propagates untouched so the
// server's own abort path keeps working.
//
// Place Recover outside DBSession: the session middleware rolls back on
// panic and re-raises, and Recover turns what arrives into an error
// response.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{
		StackSize: DefaultStackSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				err = cfg.capture(c, r)
			}()

			return next(c)
		}
	}
}
