package internal_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/anvil/internal"
	"github.com/stretchr/testify/require"
)

type routesFunc func(r internal.Router)

func (f routesFunc) Routes(r internal.Router) { f(r) }

func doRequest(app *internal.App, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) internal.ErrorBody {
	t.Helper()
	var body internal.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestApp_MiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	record := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	app := internal.New(
		internal.WithMiddleware(record("global1"), record("global2")),
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.GET("/ping", func(c internal.Context) error {
				order = append(order, "handler")
				return c.String(http.StatusOK, "pong")
			}, record("route"))
		})),
	)

	rec := doRequest(app, http.MethodGet, "/ping")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"global1", "global2", "route", "handler"}, order)
}

func TestApp_ErrorPropagatesThroughChain(t *testing.T) {
	t.Parallel()

	var seen error
	observer := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			err := next(c)
			seen = err
			return err
		}
	}

	app := internal.New(
		internal.WithMiddleware(observer),
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.GET("/fail", func(c internal.Context) error {
				return internal.ErrConflict("already exists")
			})
		})),
	)

	rec := doRequest(app, http.MethodGet, "/fail")

	require.Error(t, seen, "outer middleware must observe the handler error")
	require.Equal(t, http.StatusConflict, rec.Code)

	body := decodeErrorBody(t, rec)
	require.Equal(t, "CONFLICT", body.ErrorCode)
	require.Equal(t, "already exists", body.Message)
}

func TestApp_MiddlewareShortCircuit(t *testing.T) {
	t.Parallel()

	handlerCalled := false
	deny := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			return internal.ErrUnauthorized("no token")
		}
	}

	app := internal.New(
		internal.WithMiddleware(deny),
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.GET("/secret", func(c internal.Context) error {
				handlerCalled = true
				return c.NoContent(http.StatusOK)
			})
		})),
	)

	rec := doRequest(app, http.MethodGet, "/secret")

	require.False(t, handlerCalled)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "UNAUTHORIZED", decodeErrorBody(t, rec).ErrorCode)
}

func TestApp_GroupMiddlewareScoping(t *testing.T) {
	t.Parallel()

	var hits []string
	tag := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				hits = append(hits, name)
				return next(c)
			}
		}
	}

	app := internal.New(
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.GET("/public", func(c internal.Context) error {
				return c.NoContent(http.StatusOK)
			})
			r.Route("/admin", func(r internal.Router) {
				r.Use(tag("admin-only"))
				r.GET("/users", func(c internal.Context) error {
					return c.NoContent(http.StatusOK)
				})
			})
		})),
	)

	doRequest(app, http.MethodGet, "/public")
	require.Empty(t, hits, "group middleware must not apply outside the group")

	doRequest(app, http.MethodGet, "/admin/users")
	require.Equal(t, []string{"admin-only"}, hits)
}

func TestApp_HealthEndpointsPassThroughMiddleware(t *testing.T) {
	t.Parallel()

	count := 0
	counter := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			count++
			return next(c)
		}
	}

	app := internal.New(
		internal.WithMiddleware(counter),
		internal.WithHealthChecks(),
	)

	rec := doRequest(app, http.MethodGet, "/health/live")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
	require.Equal(t, 1, count, "health endpoints run inside the middleware chain")
}

func TestApp_DefaultErrorHandler_UnknownError(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.GET("/boom", func(c internal.Context) error {
				return errors.New("database exploded")
			})
		})),
	)

	rec := doRequest(app, http.MethodGet, "/boom")

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeErrorBody(t, rec)
	require.Equal(t, "INTERNAL_SERVER_ERROR", body.ErrorCode)
	require.Equal(t, "internal server error", body.Message)
}

func TestApp_CustomErrorHandler(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			return c.String(http.StatusTeapot, "custom: "+err.Error())
		}),
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.GET("/fail", func(c internal.Context) error {
				return errors.New("nope")
			})
		})),
	)

	rec := doRequest(app, http.MethodGet, "/fail")

	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, "custom: nope", rec.Body.String())
}

func TestApp_NotFoundHandler(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithNotFoundHandler(func(c internal.Context) error {
			return c.JSON(http.StatusNotFound, map[string]string{"error_code": "NOT_FOUND", "message": "no such route"})
		}),
	)

	rec := doRequest(app, http.MethodGet, "/nowhere")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", decodeErrorBody(t, rec).ErrorCode)
}

func TestApp_RouteMiddlewarePerRoute(t *testing.T) {
	t.Parallel()

	var guarded bool
	guard := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			guarded = true
			return next(c)
		}
	}

	app := internal.New(
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.GET("/a", func(c internal.Context) error { return c.NoContent(http.StatusOK) }, guard)
			r.GET("/b", func(c internal.Context) error { return c.NoContent(http.StatusOK) })
		})),
	)

	doRequest(app, http.MethodGet, "/b")
	require.False(t, guarded)

	doRequest(app, http.MethodGet, "/a")
	require.True(t, guarded)
}
