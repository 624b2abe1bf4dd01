package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/middlewares"
	"github.com/dmitrymomot/anvil/pkg/db"
	"github.com/stretchr/testify/require"
)

func TestTransactional(t *testing.T) {
	t.Parallel()

	t.Run("fails without a session", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.Transactional(db.PropagationRequired)

		handler := mw(func(c internal.Context) error {
			t.Fatal("handler must not run without a session")
			return nil
		})

		err := handler(ctx)
		require.ErrorIs(t, err, db.ErrNoSession)
	})

	t.Run("rejects an unknown propagation", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		session := middlewares.DBSession(db.NewManagerFromPools(nil, nil))
		tx := middlewares.Transactional(db.Propagation(99))

		handler := session(tx(func(c internal.Context) error {
			t.Fatal("handler must not run with an unknown propagation")
			return nil
		}))

		err := handler(ctx)
		require.ErrorIs(t, err, db.ErrUnknownPropagation)
	})

	t.Run("leaves the request context untouched when the boundary fails", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		var sessionCtx context.Context
		capture := func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				sessionCtx = c.Context()
				return next(c)
			}
		}

		session := middlewares.DBSession(db.NewManagerFromPools(nil, nil))
		tx := middlewares.Transactional(db.Propagation(99))

		handler := session(capture(tx(func(c internal.Context) error {
			return nil
		})))

		require.Error(t, handler(ctx))
		require.Equal(t, sessionCtx, ctx.Context(), "a failed boundary must not leak a context upward")
	})
}
