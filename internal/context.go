package internal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/anvil/pkg/auth"
	"github.com/dmitrymomot/anvil/pkg/db"
	"github.com/dmitrymomot/anvil/pkg/i18n"
	"github.com/dmitrymomot/anvil/pkg/sanitizer"
	"github.com/dmitrymomot/anvil/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// TranslatorKey is the context key used to store the i18n Translator.
type TranslatorKey struct{}

// LanguageKey is the context key used to store the resolved language string.
type LanguageKey struct{}

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the underlying request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// SetContext replaces the request's context.Context.
	// Middleware uses this to rebind the request after attaching values
	// such as the database session or the authenticated identity.
	SetContext(ctx context.Context)

	// Param returns the URL parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Param(name string) string

	// Query returns the query parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// BindJSON decodes the request body into v, scrubs fields carrying
	// `sanitize` tags, then runs v's own rules when it implements
	// validator.Validatable.
	// Returns an HTTPError with status 422 if the body is not valid JSON
	// or validation fails; field messages land under the body's "details" key.
	BindJSON(v any) error

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with the given status code and no body.
	NoContent(code int) error

	// Redirect sends a redirect response to the given URL.
	Redirect(code int, url string) error

	// Error builds an HTTPError with the given status code and message.
	// The error is returned, not written. Return it from the handler to
	// let the error handler render it.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Identity returns the authenticated identity for this request.
	// Returns the anonymous identity if authentication did not run or
	// the request carried no valid credentials.
	Identity() auth.Identity

	// IsAuthenticated returns true if the request carries an authenticated identity.
	IsAuthenticated() bool

	// DB returns the database session bound to this request.
	// Returns db.ErrNoSession if no session middleware is installed.
	DB() (*db.Session, error)

	// Transactional executes fn within the request's transaction.
	// Joins the transaction already in progress or starts a new one.
	// Equivalent to db.RunInTransaction with db.PropagationRequired.
	Transactional(fn func(ctx context.Context) error) error

	// T translates key using the request's translator.
	// Returns the key unchanged if the i18n middleware is not installed.
	T(key string, placeholders ...i18n.M) string

	// Tn translates key with the plural form selected by n.
	// Returns the key unchanged if the i18n middleware is not installed.
	Tn(key string, n int, placeholders ...i18n.M) string

	// Language returns the language resolved for this request.
	// Returns empty string if the i18n middleware is not installed.
	Language() string

	// Written returns true if the response has been written.
	Written() bool

	// ResponseWriter returns the wrapped response writer for
	// middleware that needs access to status and size.
	ResponseWriter() *ResponseWriter

	// Logger returns the request-scoped logger.
	Logger() *slog.Logger

	// LogDebug logs a debug message with the request context.
	LogDebug(msg string, attrs ...any)

	// LogInfo logs an info message with the request context.
	LogInfo(msg string, attrs ...any)

	// LogWarn logs a warning message with the request context.
	LogWarn(msg string, attrs ...any)

	// LogError logs an error message with the request context.
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key, value any)

	// Get retrieves a value from the request context.
	// Returns nil if the key doesn't exist.
	Get(key any) any
}

// requestContext implements the Context interface.
type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
}

// newContext creates a new context with the response wrapper.
func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger) *requestContext {
	rw := NewResponseWriter(w)

	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		logger:         logger,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) SetContext(ctx context.Context) {
	if ctx == nil {
		return
	}
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	v := c.request.URL.Query().Get(name)
	if v == "" {
		return defaultValue
	}
	return v
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) BindJSON(v any) error {
	if c.request.Body == nil {
		return ErrUnprocessable("request body is empty")
	}
	if err := json.NewDecoder(c.request.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrUnprocessable("request body is empty")
		}
		return ErrUnprocessable("malformed request body", WithError(err))
	}
	// Non-struct targets (maps, slices) skip the sanitize walk.
	if err := sanitizer.SanitizeStruct(v); err != nil && !errors.Is(err, sanitizer.ErrInvalidTarget) {
		return err
	}
	if err := validator.ValidateStruct(v); err != nil {
		if ve := validator.ExtractValidationErrors(err); ve != nil {
			if tr := c.translator(); tr != nil {
				ve.Translate(tr.TranslateMessage)
			}
			return ErrUnprocessable("validation failed", WithError(err), WithDetails(ve.Messages()))
		}
		return err
	}
	return nil
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Identity() auth.Identity {
	return auth.IdentityFromContext(c.request.Context())
}

func (c *requestContext) IsAuthenticated() bool {
	return c.Identity().IsAuthenticated()
}

func (c *requestContext) DB() (*db.Session, error) {
	return db.Current(c.request.Context())
}

func (c *requestContext) Transactional(fn func(ctx context.Context) error) error {
	return db.RunInTransaction(c.request.Context(), db.PropagationRequired, fn)
}

func (c *requestContext) translator() *i18n.Translator {
	if tr, ok := c.Get(TranslatorKey{}).(*i18n.Translator); ok {
		return tr
	}
	return nil
}

func (c *requestContext) T(key string, placeholders ...i18n.M) string {
	if tr := c.translator(); tr != nil {
		return tr.T(key, placeholders...)
	}
	return key
}

func (c *requestContext) Tn(key string, n int, placeholders ...i18n.M) string {
	if tr := c.translator(); tr != nil {
		return tr.Tn(key, n, placeholders...)
	}
	return key
}

func (c *requestContext) Language() string {
	if tr := c.translator(); tr != nil {
		return tr.Language()
	}
	return ""
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}
