package internal_test

import (
	"testing"

	"github.com/dmitrymomot/anvil/internal"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestContextValue(t *testing.T) {
	t.Parallel()

	t.Run("returns stored value", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(nil, "")
		c.Set(ctxKey{}, "hello")

		require.Equal(t, "hello", internal.ContextValue[string](c, ctxKey{}))
	})

	t.Run("returns zero value for missing key", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(nil, "")

		require.Equal(t, "", internal.ContextValue[string](c, ctxKey{}))
		require.Equal(t, 0, internal.ContextValue[int](c, ctxKey{}))
	})

	t.Run("returns zero value on type mismatch", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(nil, "")
		c.Set(ctxKey{}, 42)

		require.Equal(t, "", internal.ContextValue[string](c, ctxKey{}))
	})
}

func TestParam(t *testing.T) {
	t.Parallel()

	t.Run("string param", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(map[string]string{"slug": "my-post"}, "")
		require.Equal(t, "my-post", internal.Param[string](c, "slug"))
	})

	t.Run("int param", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(map[string]string{"id": "42"}, "")
		require.Equal(t, 42, internal.Param[int](c, "id"))
	})

	t.Run("int64 param", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(map[string]string{"id": "9223372036854775807"}, "")
		require.Equal(t, int64(9223372036854775807), internal.Param[int64](c, "id"))
	})

	t.Run("bool param", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(map[string]string{"active": "true"}, "")
		require.True(t, internal.Param[bool](c, "active"))
	})

	t.Run("invalid int returns zero", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(map[string]string{"id": "abc"}, "")
		require.Equal(t, 0, internal.Param[int](c, "id"))
	})

	t.Run("missing param returns zero", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(nil, "")
		require.Equal(t, "", internal.Param[string](c, "missing"))
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("string query", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(nil, "q=search+term")
		require.Equal(t, "search term", internal.Query[string](c, "q"))
	})

	t.Run("int query", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(nil, "page=3")
		require.Equal(t, 3, internal.Query[int](c, "page"))
	})

	t.Run("float query", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(nil, "ratio=0.75")
		require.Equal(t, 0.75, internal.Query[float64](c, "ratio"))
	})

	t.Run("missing query returns zero", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(nil, "")
		require.Equal(t, 0, internal.Query[int](c, "page"))
	})
}

func TestQueryDefault(t *testing.T) {
	t.Parallel()

	t.Run("returns parsed value when present", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(nil, "limit=50")
		require.Equal(t, 50, internal.QueryDefault(c, "limit", 20))
	})

	t.Run("returns default when missing", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(nil, "")
		require.Equal(t, 20, internal.QueryDefault(c, "limit", 20))
	})

	t.Run("returns default when unparsable", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(nil, "limit=many")
		require.Equal(t, 20, internal.QueryDefault(c, "limit", 20))
	})

	t.Run("bool default", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(nil, "")
		require.True(t, internal.QueryDefault(c, "verbose", true))
	})
}
