package auth

import "context"

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the given identity.
// The authentication middleware calls this once per request; application
// code normally only reads the identity back via IdentityFromContext.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity stored in ctx.
// When no identity has been attached the anonymous identity is returned,
// so callers never need to handle a missing value separately.
func IdentityFromContext(ctx context.Context) Identity {
	if identity, ok := ctx.Value(identityKey{}).(Identity); ok {
		return identity
	}
	return Anonymous
}
