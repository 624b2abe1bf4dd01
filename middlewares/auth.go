package middlewares

import (
	"errors"

	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/pkg/auth"
)

// AuthErrorHandler converts a token verification failure into the error
// returned to the client. The request stops here; next is never called.
type AuthErrorHandler func(c internal.Context, err error) error

// AuthenticateConfig configures the Authenticate middleware.
type AuthenticateConfig struct {
	Extractor    internal.Extractor
	OnError      AuthErrorHandler
	extractorSet bool
}

// AuthenticateOption configures AuthenticateConfig.
type AuthenticateOption func(*AuthenticateConfig)

// WithAuthExtractor sets a custom token extractor chain.
// The default reads a Bearer token from the Authorization header.
func WithAuthExtractor(ext internal.Extractor) AuthenticateOption {
	return func(cfg *AuthenticateConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// WithAuthErrorHandler replaces the default invalid-token response.
func WithAuthErrorHandler(fn AuthErrorHandler) AuthenticateOption {
	return func(cfg *AuthenticateConfig) {
		if fn != nil {
			cfg.OnError = fn
		}
	}
}

// Authenticate returns middleware that resolves the caller's identity
// from the request credentials.
//
// It never demands credentials: a request without a token gets
// auth.Anonymous bound into its context and continues, and route-level
// Authorize guards decide what anonymous callers may do. A token that is
// present but fails verification is terminal: the configured error
// handler renders the response (401 with the structured error body by
// default) and the handler never runs.
//
// On success the identity is bound into the request context, readable
// via c.Identity() or auth.IdentityFromContext.
func Authenticate(authenticator *auth.Authenticator, opts ...AuthenticateOption) internal.Middleware {
	cfg := &AuthenticateConfig{
		OnError: defaultAuthErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if !cfg.extractorSet {
		cfg.Extractor = internal.NewExtractor(
			internal.FromBearerToken(),
		)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			token, ok := cfg.Extractor.Extract(c)
			if !ok {
				c.SetContext(auth.WithIdentity(c.Context(), auth.Anonymous))
				return next(c)
			}

			identity, err := authenticator.AuthenticateToken(token)
			if err != nil {
				return cfg.OnError(c, err)
			}

			c.SetContext(auth.WithIdentity(c.Context(), identity))
			return next(c)
		}
	}
}

// defaultAuthErrorHandler maps verification failures to 401 responses.
func defaultAuthErrorHandler(c internal.Context, err error) error {
	if errors.Is(err, auth.ErrExpiredToken) {
		return internal.ErrUnauthorized("token expired", internal.WithError(err))
	}
	return internal.ErrUnauthorized("invalid authentication token", internal.WithError(err))
}
