package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/anvil/internal"
)

// DefaultCORSMaxAge is how long browsers may cache preflight answers.
const DefaultCORSMaxAge = 12 * time.Hour

// DefaultCORSConfig allows any origin with the common methods and
// request headers. Override per deployment with the CORS options.
var DefaultCORSConfig = CORSConfig{
	AllowOrigins: []string{"*"},
	AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
	AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	MaxAge:       DefaultCORSMaxAge,
}

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists the permitted origins. "*" permits all, which
	// does not combine with credentials.
	AllowOrigins []string

	// AllowOriginFunc validates origins dynamically. When set it
	// replaces AllowOrigins entirely.
	AllowOriginFunc func(origin string) bool

	// AllowMethods lists the methods advertised on preflight.
	AllowMethods []string

	// AllowHeaders lists the request headers advertised on preflight.
	AllowHeaders []string

	// ExposeHeaders lists response headers scripts may read.
	ExposeHeaders []string

	// AllowCredentials permits cookies and Authorization headers.
	// The allow-origin header then echoes the caller's origin, never "*".
	AllowCredentials bool

	// MaxAge bounds preflight caching. Zero omits the header.
	MaxAge time.Duration
}

// allows reports whether origin may make cross-origin requests.
func (cfg *CORSConfig) allows(origin string, wildcard bool) bool {
	if cfg.AllowOriginFunc != nil {
		return cfg.AllowOriginFunc(origin)
	}
	return wildcard || slices.Contains(cfg.AllowOrigins, origin)
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

// WithAllowOrigins sets the permitted origins.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOrigins = origins
	}
}

// WithAllowOriginFunc sets a dynamic origin validator that replaces
// the static origin list.
func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOriginFunc = fn
	}
}

// WithAllowMethods sets the methods advertised on preflight.
func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowMethods = methods
	}
}

// WithAllowHeaders sets the request headers advertised on preflight.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowHeaders = headers
	}
}

// WithExposeHeaders sets the response headers scripts may read.
func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.ExposeHeaders = headers
	}
}

// WithAllowCredentials permits credentialed requests and switches the
// allow-origin header to echo mode.
func WithAllowCredentials() CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowCredentials = true
	}
}

// WithMaxAge sets the preflight cache duration.
func WithMaxAge(duration time.Duration) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.MaxAge = duration
	}
}

// CORS returns middleware that answers preflight requests and stamps
// cross-origin response headers. Requests without an Origin header, and
// requests from origins the config rejects, pass through untouched; the
// browser enforces the block on its side.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := &CORSConfig{
		AllowOrigins: DefaultCORSConfig.AllowOrigins,
		AllowMethods: DefaultCORSConfig.AllowMethods,
		AllowHeaders: DefaultCORSConfig.AllowHeaders,
		MaxAge:       DefaultCORSConfig.MaxAge,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// The advertised values never change per request, join them once.
	var (
		methods  = strings.Join(cfg.AllowMethods, ", ")
		reqHdrs  = strings.Join(cfg.AllowHeaders, ", ")
		exposed  = strings.Join(cfg.ExposeHeaders, ", ")
		maxAge   = strconv.Itoa(int(cfg.MaxAge.Seconds()))
		wildcard = slices.Contains(cfg.AllowOrigins, "*")
	)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")
			if origin == "" || !cfg.allows(origin, wildcard) {
				return next(c)
			}

			headers := c.Response().Header()
			headers.Add("Vary", "Origin")

			if cfg.AllowCredentials || !wildcard {
				headers.Set("Access-Control-Allow-Origin", origin)
			} else {
				headers.Set("Access-Control-Allow-Origin", "*")
			}
			if cfg.AllowCredentials {
				headers.Set("Access-Control-Allow-Credentials", "true")
			}
			if exposed != "" {
				headers.Set("Access-Control-Expose-Headers", exposed)
			}

			if c.Request().Method != http.MethodOptions {
				return next(c)
			}

			// Preflight: answer here, the handler never runs.
			headers.Add("Vary", "Access-Control-Request-Method")
			headers.Add("Vary", "Access-Control-Request-Headers")
			headers.Set("Access-Control-Allow-Methods", methods)
			headers.Set("Access-Control-Allow-Headers", reqHdrs)
			if cfg.MaxAge > 0 {
				headers.Set("Access-Control-Max-Age", maxAge)
			}

			return c.NoContent(http.StatusNoContent)
		}
	}
}
