package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the registered JWT claims plus the
// application's admin flag.
type Claims struct {
	IsAdmin bool `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies bearer tokens and resolves them to identities.
//
// An Authenticator never rejects a request on its own: it reports what it
// found and leaves the decision to the caller. Missing credentials resolve
// to the anonymous identity without error; credentials that are present but
// invalid resolve to the anonymous identity with a sentinel error attached.
type Authenticator struct {
	config Config
	method jwt.SigningMethod
}

// New creates an Authenticator from the given config.
func New(cfg Config) (*Authenticator, error) {
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecret
	}

	var method jwt.SigningMethod
	switch cfg.Algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, ErrUnsupportedAlgorithm
	}

	return &Authenticator{config: cfg, method: method}, nil
}

// Authenticate resolves the request's Authorization header to an identity.
//
// A missing header, a non-bearer scheme, or an empty credential part all
// resolve to the anonymous identity with a nil error: the request simply
// carries no credentials. A bearer token that fails verification resolves
// to the anonymous identity with ErrInvalidToken or ErrExpiredToken.
func (a *Authenticator) Authenticate(r *http.Request) (Identity, error) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return Anonymous, nil
	}
	return a.AuthenticateToken(token)
}

// AuthenticateToken verifies a raw token string and resolves it to an
// identity. Verification failures return the anonymous identity together
// with a sentinel error.
func (a *Authenticator) AuthenticateToken(token string) (Identity, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{a.method.Alg()}),
	}
	if a.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(a.config.Leeway))
	}
	if a.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(a.config.Issuer))
	}
	if a.config.Audience != "" {
		options = append(options, jwt.WithAudience(a.config.Audience))
	}

	parser := jwt.NewParser(options...)
	claims := &Claims{}

	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(a.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Anonymous, errors.Join(ErrExpiredToken, err)
		}
		return Anonymous, errors.Join(ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Anonymous, ErrInvalidToken
	}

	return Identity{Subject: claims.Subject, Admin: claims.IsAdmin}, nil
}

// Issue mints a signed token for the given identity with the given
// lifetime. A non-positive ttl issues a token without an expiration claim.
func (a *Authenticator) Issue(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		IsAdmin: identity.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  identity.Subject,
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   a.config.Issuer,
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	if a.config.Audience != "" {
		claims.Audience = jwt.ClaimStrings{a.config.Audience}
	}

	return jwt.NewWithClaims(a.method, claims).SignedString([]byte(a.config.SecretKey))
}

// bearerToken extracts the credential part of a bearer Authorization
// header value. The scheme comparison is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, credentials, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	credentials = strings.TrimSpace(credentials)
	if credentials == "" {
		return "", false
	}
	return credentials, true
}
