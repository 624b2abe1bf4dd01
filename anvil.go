package anvil

import (
	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It manages HTTP routing, middleware, and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// ResponseWriter wraps http.ResponseWriter with status and size tracking.
	ResponseWriter = internal.ResponseWriter

	// HTTPError is a status-coded error with a structured response body.
	HTTPError = internal.HTTPError

	// HTTPErrorOption customizes an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ErrorBody is the JSON shape rendered for failed requests.
	ErrorBody = internal.ErrorBody

	// Extractor pulls a credential string from a request.
	Extractor = internal.Extractor

	// ExtractorSource is a single place an Extractor looks.
	ExtractorSource = internal.ExtractorSource

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// Default machine-readable error codes, keyed by status.
// Constructors set these; WithErrorCode overrides.
const (
	CodeBadRequest         = internal.CodeBadRequest
	CodeUnauthorized       = internal.CodeUnauthorized
	CodeForbidden          = internal.CodeForbidden
	CodeNotFound           = internal.CodeNotFound
	CodeConflict           = internal.CodeConflict
	CodeUnprocessable      = internal.CodeUnprocessable
	CodeInternal           = internal.CodeInternal
	CodeServiceUnavailable = internal.CodeServiceUnavailable
)

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := anvil.New(
//	    anvil.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Authenticate(authenticator),
//	        middlewares.DBSession(sessions),
//	    ),
//	    anvil.WithHandlers(
//	        handlers.NewUsers(repo),
//	    ),
//	)
//
//	err := app.Run(":8080", anvil.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Context helpers

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not found or type assertion fails.
//
// Example:
//
//	type tenantKey struct{}
//
//	tenant := anvil.ContextValue[string](c, tenantKey{})
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns a typed URL parameter.
// Returns the zero value of T when the parameter is absent or unparsable.
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns a typed query parameter.
// Returns the zero value of T when the parameter is absent or unparsable.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns a typed query parameter, falling back to defaultValue
// when the parameter is absent or unparsable.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault[T](c, name, defaultValue)
}

// Errors

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithErrorCode overrides the machine-readable error code.
func WithErrorCode(code string) HTTPErrorOption {
	return internal.WithErrorCode(code)
}

// WithRequestID stamps the request id onto the error body.
func WithRequestID(id string) HTTPErrorOption {
	return internal.WithRequestID(id)
}

// WithError attaches an underlying cause for logging and errors.Is checks.
// The cause is never rendered to clients.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// WithDetails attaches field-level messages, rendered to clients under
// the "details" key.
func WithDetails(details map[string][]string) HTTPErrorOption {
	return internal.WithDetails(details)
}

// Status-specific error constructors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrConflict(message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnprocessable(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrServiceUnavailable(message, opts...)
}

// IsHTTPError reports whether err is an *HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError returns err as an *HTTPError, or nil when it is not one.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Credential extractors

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

// FromHeader reads a credential from a request header.
func FromHeader(name string) ExtractorSource {
	return internal.FromHeader(name)
}

// FromQuery reads a credential from a query parameter.
func FromQuery(name string) ExtractorSource {
	return internal.FromQuery(name)
}

// FromParam reads a credential from a URL parameter.
func FromParam(name string) ExtractorSource {
	return internal.FromParam(name)
}

// FromBearerToken reads a Bearer token from the Authorization header.
func FromBearerToken() ExtractorSource {
	return internal.FromBearerToken()
}
