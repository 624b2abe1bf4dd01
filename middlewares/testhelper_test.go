package middlewares_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/pkg/auth"
	"github.com/dmitrymomot/anvil/pkg/db"
	"github.com/dmitrymomot/anvil/pkg/i18n"
)

// testContext implements internal.Context the way the real request
// context does: values, identity, and sessions all live on the request
// context, so middleware that rebinds it behaves as in production.
type testContext struct {
	request *http.Request
	rw      *internal.ResponseWriter
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		request: r,
		rw:      internal.NewResponseWriter(w),
	}
}

func (c *testContext) Request() *http.Request        { return c.request }
func (c *testContext) Response() http.ResponseWriter { return c.rw }
func (c *testContext) Context() context.Context      { return c.request.Context() }

func (c *testContext) SetContext(ctx context.Context) {
	if ctx == nil {
		return
	}
	c.request = c.request.WithContext(ctx)
}

func (c *testContext) Param(name string) string { return "" }
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
	c.rw.Header().Set("Content-Type", "application/json; charset=utf-8")
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

func (c *testContext) Identity() auth.Identity {
	return auth.IdentityFromContext(c.request.Context())
}

func (c *testContext) IsAuthenticated() bool { return c.Identity().IsAuthenticated() }

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

func (c *testContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *testContext) Get(key any) any { return c.request.Context().Value(key) }

func (c *testContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *testContext) Err() error                  { return c.request.Context().Err() }
func (c *testContext) Value(key any) any           { return c.request.Context().Value(key) }

var _ internal.Context = (*testContext)(nil)
