package internal_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/pkg/auth"
	"github.com/dmitrymomot/anvil/pkg/db"
	"github.com/dmitrymomot/anvil/pkg/i18n"
)

// testContext is a minimal Context implementation for exercising generic
// helpers without a full app.
type testContext struct {
	params   map[string]string
	request  *http.Request
	response *httptest.ResponseRecorder
	rw       *internal.ResponseWriter
	identity auth.Identity
	values   map[any]any
}

func newTestContext(params map[string]string, queryString string) *testContext {
	target := "/"
	if queryString != "" {
		target = "/?" + queryString
	}
	rec := httptest.NewRecorder()
	return &testContext{
		params:   params,
		request:  httptest.NewRequest(http.MethodGet, target, nil),
		response: rec,
		rw:       internal.NewResponseWriter(rec),
		values:   make(map[any]any),
	}
}

func (c *testContext) Request() *http.Request        { return c.request }
func (c *testContext) Response() http.ResponseWriter { return c.rw }
func (c *testContext) Context() context.Context      { return c.request.Context() }
func (c *testContext) SetContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}
func (c *testContext) Param(name string) string { return c.params[name] }
func (c *testContext) Query(name string) string { return c.request.URL.Query().Get(name) }
func (c *testContext) QueryDefault(name, def string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return def
}
func (c *testContext) Header(name string) string    { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string) { c.rw.Header().Set(name, value) }
func (c *testContext) BindJSON(v any) error {
	return json.NewDecoder(c.request.Body).Decode(v)
}
func (c *testContext) JSON(code int, v any) error {
	c.rw.WriteHeader(code)
	return json.NewEncoder(c.rw).Encode(v)
}
func (c *testContext) String(code int, s string) error {
	c.rw.WriteHeader(code)
	_, err := io.WriteString(c.rw, s)
	return err
}
func (c *testContext) NoContent(code int) error { c.rw.WriteHeader(code); return nil }
func (c *testContext) Redirect(code int, url string) error {
	http.Redirect(c.rw, c.request, url, code)
	return nil
}
func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}
func (c *testContext) Identity() auth.Identity { return c.identity }
func (c *testContext) IsAuthenticated() bool   { return c.identity.IsAuthenticated() }
func (c *testContext) DB() (*db.Session, error) {
	return db.Current(c.request.Context())
}
func (c *testContext) Transactional(fn func(ctx context.Context) error) error {
	return db.RunInTransaction(c.request.Context(), db.PropagationRequired, fn)
}
func (c *testContext) T(key string, placeholders ...i18n.M) string {
	if tr, ok := c.Get(internal.TranslatorKey{}).(*i18n.Translator); ok {
		return tr.T(key, placeholders...)
	}
	return key
}
func (c *testContext) Tn(key string, n int, placeholders ...i18n.M) string {
	if tr, ok := c.Get(internal.TranslatorKey{}).(*i18n.Translator); ok {
		return tr.Tn(key, n, placeholders...)
	}
	return key
}
func (c *testContext) Language() string {
	if tr, ok := c.Get(internal.TranslatorKey{}).(*i18n.Translator); ok {
		return tr.Language()
	}
	return ""
}
func (c *testContext) Written() bool                            { return c.rw.Written() }
func (c *testContext) ResponseWriter() *internal.ResponseWriter { return c.rw }
func (c *testContext) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
func (c *testContext) LogDebug(msg string, attrs ...any) {}
func (c *testContext) LogInfo(msg string, attrs ...any)  {}
func (c *testContext) LogWarn(msg string, attrs ...any)  {}
func (c *testContext) LogError(msg string, attrs ...any) {}
func (c *testContext) Set(key, value any)                { c.values[key] = value }
func (c *testContext) Get(key any) any {
	if v, ok := c.values[key]; ok {
		return v
	}
	return c.request.Context().Value(key)
}
func (c *testContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *testContext) Err() error                  { return c.request.Context().Err() }
func (c *testContext) Value(key any) any           { return c.request.Context().Value(key) }

// Compile-time check that testContext satisfies the Context interface.
var _ internal.Context = (*testContext)(nil)
