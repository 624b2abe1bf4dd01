// Package auth verifies bearer JWTs and resolves them to request identities.
//
// The package separates credential verification from request rejection:
// an [Authenticator] never writes a response or aborts a request. It maps
// whatever it finds to an [Identity] and, for present-but-invalid
// credentials, a sentinel error. The authentication middleware decides
// what to do with that outcome.
//
// # Setup
//
// Configuration follows the usual env-tag convention:
//
//	var cfg auth.Config // JWT_SECRET_KEY, JWT_ALGORITHM, ...
//
//	authenticator, err := auth.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Only HMAC algorithms are supported: HS256 (default), HS384 and HS512.
//
// # Verifying Requests
//
// [Authenticator.Authenticate] inspects the Authorization header:
//
//	identity, err := authenticator.Authenticate(r)
//	switch {
//	case err != nil:
//	    // present but invalid credentials (bad signature, expired, ...)
//	case identity.IsAuthenticated():
//	    // signed-in principal, identity.Subject is the user id
//	default:
//	    // no credentials at all, identity == auth.Anonymous
//	}
//
// A missing header or a non-bearer scheme is not an error: the request is
// simply anonymous. Verification failures are reported with
// [ErrInvalidToken] or [ErrExpiredToken] in the error chain.
//
// # Identity Propagation
//
// The middleware attaches the resolved identity to the request context
// with [WithIdentity]; downstream code reads it back:
//
//	identity := auth.IdentityFromContext(ctx)
//	if identity.IsAdmin() {
//	    // ...
//	}
//
// [IdentityFromContext] returns [Anonymous] when nothing was attached,
// so the result is always usable without a nil or ok check.
//
// # Issuing Tokens
//
// [Authenticator.Issue] mints tokens for login endpoints, fixtures and
// tooling:
//
//	token, err := authenticator.Issue(auth.Identity{Subject: "user-42"}, time.Hour)
package auth
