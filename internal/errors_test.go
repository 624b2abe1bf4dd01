package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/anvil/internal"
)

func TestNewHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("derives error code from status", func(t *testing.T) {
		t.Parallel()
		err := internal.NewHTTPError(http.StatusNotFound, "not found")
		require.Equal(t, http.StatusNotFound, err.Code)
		require.Equal(t, "not found", err.Message)
		require.Equal(t, internal.CodeNotFound, err.ErrorCode)
	})

	t.Run("unknown status falls back to internal code", func(t *testing.T) {
		t.Parallel()
		err := internal.NewHTTPError(http.StatusTeapot, "short and stout")
		require.Equal(t, internal.CodeInternal, err.ErrorCode)
	})

	t.Run("message doubles as Error()", func(t *testing.T) {
		t.Parallel()
		err := internal.NewHTTPError(http.StatusConflict, "already exists")
		require.Equal(t, "already exists", err.Error())
	})

	t.Run("status accessors", func(t *testing.T) {
		t.Parallel()
		err := internal.NewHTTPError(http.StatusServiceUnavailable, "down")
		require.Equal(t, http.StatusServiceUnavailable, err.StatusCode())
		require.Equal(t, http.StatusText(http.StatusServiceUnavailable), err.StatusText())
	})
}

func TestStatusConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		make     func(string, ...internal.HTTPErrorOption) *internal.HTTPError
		wantCode int
		wantErr  string
	}{
		{"bad request", internal.ErrBadRequest, http.StatusBadRequest, internal.CodeBadRequest},
		{"unauthorized", internal.ErrUnauthorized, http.StatusUnauthorized, internal.CodeUnauthorized},
		{"forbidden", internal.ErrForbidden, http.StatusForbidden, internal.CodeForbidden},
		{"not found", internal.ErrNotFound, http.StatusNotFound, internal.CodeNotFound},
		{"conflict", internal.ErrConflict, http.StatusConflict, internal.CodeConflict},
		{"unprocessable", internal.ErrUnprocessable, http.StatusUnprocessableEntity, internal.CodeUnprocessable},
		{"internal", internal.ErrInternal, http.StatusInternalServerError, internal.CodeInternal},
		{"service unavailable", internal.ErrServiceUnavailable, http.StatusServiceUnavailable, internal.CodeServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.make("boom")
			require.Equal(t, tt.wantCode, err.Code)
			require.Equal(t, tt.wantErr, err.ErrorCode)
			require.Equal(t, "boom", err.Message)
		})
	}
}

func TestHTTPErrorOptions(t *testing.T) {
	t.Parallel()

	t.Run("WithErrorCode overrides the default", func(t *testing.T) {
		t.Parallel()
		err := internal.ErrForbidden("no access", internal.WithErrorCode("PLAN_EXPIRED"))
		require.Equal(t, "PLAN_EXPIRED", err.ErrorCode)
	})

	t.Run("WithRequestID", func(t *testing.T) {
		t.Parallel()
		err := internal.ErrNotFound("gone", internal.WithRequestID("req-123"))
		require.Equal(t, "req-123", err.RequestID)
	})

	t.Run("WithError keeps the cause in the chain", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("pq: connection refused")
		err := internal.ErrInternal("something went wrong", internal.WithError(cause))

		require.ErrorIs(t, err, cause)
		require.Equal(t, cause, err.Unwrap())
	})

	t.Run("WithDetails", func(t *testing.T) {
		t.Parallel()
		details := map[string][]string{"email": {"is required"}}
		err := internal.ErrUnprocessable("validation failed", internal.WithDetails(details))
		require.Equal(t, details, err.Details)
	})
}

func TestHTTPErrorBody(t *testing.T) {
	t.Parallel()

	t.Run("renders code and message", func(t *testing.T) {
		t.Parallel()
		err := internal.ErrConflict("email taken")
		body := err.Body()
		require.Equal(t, internal.CodeConflict, body.ErrorCode)
		require.Equal(t, "email taken", body.Message)
		require.Empty(t, body.RequestID)
		require.Nil(t, body.Details)
	})

	t.Run("includes request id and details when set", func(t *testing.T) {
		t.Parallel()
		err := internal.ErrUnprocessable("validation failed",
			internal.WithRequestID("req-42"),
			internal.WithDetails(map[string][]string{"name": {"too short"}}),
		)
		body := err.Body()
		require.Equal(t, "req-42", body.RequestID)
		require.Equal(t, []string{"too short"}, body.Details["name"])
	})

	t.Run("never renders the underlying error", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("secret: db password rejected")
		err := internal.ErrInternal("something went wrong", internal.WithError(cause))

		raw, marshalErr := json.Marshal(err.Body())
		require.NoError(t, marshalErr)
		require.NotContains(t, string(raw), "secret")
		require.Contains(t, string(raw), "something went wrong")
	})

	t.Run("omits empty optional fields from JSON", func(t *testing.T) {
		t.Parallel()
		raw, err := json.Marshal(internal.ErrBadRequest("nope").Body())
		require.NoError(t, err)
		require.JSONEq(t, `{"error_code":"BAD_REQUEST","message":"nope"}`, string(raw))
	})
}

func TestIsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct HTTPError", func(t *testing.T) {
		t.Parallel()
		err := internal.NewHTTPError(http.StatusNotFound, "not found")
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("wrapped HTTPError", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.NewHTTPError(http.StatusBadRequest, "bad request")
		err := fmt.Errorf("handler failed: %w", httpErr)
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("double-wrapped HTTPError", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.NewHTTPError(http.StatusConflict, "conflict")
		err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", httpErr))
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("unrelated error", func(t *testing.T) {
		t.Parallel()
		err := errors.New("something went wrong")
		require.False(t, internal.IsHTTPError(err))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		require.False(t, internal.IsHTTPError(nil))
	})
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct HTTPError", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.NewHTTPError(http.StatusNotFound, "not found")
		got := internal.AsHTTPError(httpErr)
		require.NotNil(t, got)
		require.Equal(t, http.StatusNotFound, got.Code)
		require.Equal(t, "not found", got.Message)
	})

	t.Run("wrapped HTTPError preserves fields", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.NewHTTPError(http.StatusForbidden, "forbidden",
			internal.WithErrorCode("AUTH_001"),
			internal.WithRequestID("req-7"),
		)
		err := fmt.Errorf("middleware: %w", httpErr)

		got := internal.AsHTTPError(err)
		require.NotNil(t, got)
		require.Equal(t, http.StatusForbidden, got.Code)
		require.Equal(t, "forbidden", got.Message)
		require.Equal(t, "AUTH_001", got.ErrorCode)
		require.Equal(t, "req-7", got.RequestID)
	})

	t.Run("unrelated error returns nil", func(t *testing.T) {
		t.Parallel()
		err := errors.New("plain error")
		require.Nil(t, internal.AsHTTPError(err))
	})

	t.Run("nil returns nil", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(nil))
	})
}
