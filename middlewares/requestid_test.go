package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/middlewares"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates new request ID when not present", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.RequestID()
		handler := mw(func(c internal.Context) error {
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)

		id := rec.Header().Get("X-Request-ID")
		require.NotEmpty(t, id)
		_, perr := uuid.Parse(id)
		require.NoError(t, perr, "generated ID should be a UUID")
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		t.Parallel()

		existingID := "existing-request-id-123"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", existingID)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.RequestID()
		handler := mw(func(c internal.Context) error {
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.Equal(t, existingID, rec.Header().Get("X-Request-ID"))
	})

	t.Run("GetRequestID returns stored ID", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		var capturedID string
		mw := middlewares.RequestID()
		handler := mw(func(c internal.Context) error {
			capturedID = middlewares.GetRequestID(ctx)
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, capturedID)
		require.Equal(t, capturedID, rec.Header().Get("X-Request-ID"))
	})

	t.Run("uses first matching header when multiple present", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")
		req.Header.Set("X-Correlation-ID", "corr-789")
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.RequestID()
		handler := mw(func(c internal.Context) error {
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("falls back to later header when first missing", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-789")
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.RequestID()
		handler := mw(func(c internal.Context) error {
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.Equal(t, "corr-789", rec.Header().Get("X-Request-ID"))
	})
}

func TestRequestID_CustomOptions(t *testing.T) {
	t.Parallel()

	t.Run("WithRequestIDHeaders uses custom headers in priority order", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Custom-ID", "custom-123")
		req.Header.Set("X-Trace-ID", "trace-456")
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.RequestID(
			middlewares.WithRequestIDHeaders("X-Custom-ID", "X-Trace-ID"),
		)
		handler := mw(func(c internal.Context) error {
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.Equal(t, "custom-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("WithRequestIDGenerator uses custom generator", func(t *testing.T) {
		t.Parallel()

		customID := "custom-generated-id"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.RequestID(
			middlewares.WithRequestIDGenerator(func() string {
				return customID
			}),
		)
		handler := mw(func(c internal.Context) error {
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.Equal(t, customID, rec.Header().Get("X-Request-ID"))
	})

	t.Run("WithRequestIDResponseHeader sets custom response header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.RequestID(
			middlewares.WithRequestIDResponseHeader("X-Custom-Response-ID"),
		)
		handler := mw(func(c internal.Context) error {
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, rec.Header().Get("X-Custom-Response-ID"))
		require.Empty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("multiple options work together", func(t *testing.T) {
		t.Parallel()

		customID := "generated-123"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.RequestID(
			middlewares.WithRequestIDHeaders("X-Trace-ID", "X-Request-ID"),
			middlewares.WithRequestIDGenerator(func() string { return customID }),
			middlewares.WithRequestIDResponseHeader("X-Response-ID"),
		)
		handler := mw(func(c internal.Context) error {
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.Equal(t, customID, rec.Header().Get("X-Response-ID"))
	})
}

func TestGetRequestID_NoMiddleware(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := newTestContext(rec, req)

	require.Empty(t, middlewares.GetRequestID(ctx))
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	t.Run("returns attribute when request ID present", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.RequestID()
		handler := mw(func(c internal.Context) error {
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)

		extractor := middlewares.RequestIDExtractor()
		attr, ok := extractor(ctx.Context())
		require.True(t, ok)
		require.Equal(t, "request_id", attr.Key)
		require.NotEmpty(t, attr.Value.String())
	})

	t.Run("returns false when no request ID in context", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		extractor := middlewares.RequestIDExtractor()
		_, ok := extractor(ctx.Context())
		require.False(t, ok)
	})
}
