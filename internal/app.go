package internal

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/anvil/pkg/health"
	"github.com/dmitrymomot/anvil/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App orchestrates the application lifecycle.
// It manages HTTP routing, middleware, and graceful shutdown.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := anvil.New(
//	    anvil.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Authenticate(authenticator),
//	        middlewares.DBSession(manager),
//	    ),
//	    anvil.WithHandlers(
//	        handlers.NewUsers(repo),
//	    ),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(), // Default: noop logger (before options)
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router for the App.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	app := anvil.New(
//	    anvil.WithHandlers(handlers.NewUsers(repo)),
//	)
//	err := app.Run(":8080",
//	    anvil.Logger(log),
//	    anvil.ShutdownHook(db.Shutdown(pool)),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes configures the router with middleware and handlers.
func (a *App) setupRoutes() {
	// Custom error handlers bypass the middleware chain
	if a.notFoundHandler != nil {
		a.router.NotFound(a.adaptHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.adaptHandler(a.methodNotAllowedHandler))
	}

	// Mount static file handlers
	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	r := &routerAdapter{router: a.router, app: a}

	// Health endpoints register as regular routes so they pass through
	// the global middleware chain, same as any other request.
	if a.healthConfig != nil {
		r.GET(a.healthConfig.livenessPath, adaptHTTPHandler(health.LivenessHandler()))
		r.GET(a.healthConfig.readinessPath, adaptHTTPHandler(health.ReadinessHandler(a.healthConfig.checks)))
	}

	// Register handlers
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// adaptHTTPHandler converts a plain http.HandlerFunc to a HandlerFunc.
func adaptHTTPHandler(h http.HandlerFunc) HandlerFunc {
	return func(c Context) error {
		h(c.Response(), c.Request())
		return nil
	}
}

// handleError handles errors from handlers using the configured error handler.
// Falls back to a JSON error body when no handler is set or the handler
// itself fails.
func (a *App) handleError(c Context, err error) {
	// Check if response has already been written
	if c.Written() {
		return
	}

	if a.errorHandler != nil {
		if handlerErr := a.errorHandler(c, err); handlerErr == nil {
			return
		}
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		// Middleware errors (timeout, recovered panic) carry their own
		// status; anything else is a plain 500.
		status := http.StatusInternalServerError
		message := "internal server error"
		var coded interface{ StatusCode() int }
		if errors.As(err, &coded) {
			status = coded.StatusCode()
			message = strings.ToLower(http.StatusText(status))
		}
		httpErr = NewHTTPError(status, message, WithError(err))
	}
	if httpErr.Code >= http.StatusInternalServerError {
		c.LogError("request failed", slog.String("error", err.Error()))
	}
	_ = c.JSON(httpErr.Code, httpErr.Body())
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
//
// Example:
//
//	anvil.WithReadinessCheck("db", db.Healthcheck(pool))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
