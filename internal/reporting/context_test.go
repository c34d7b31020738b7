package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetaFromContext(t *testing.T) {
	t.Parallel()

	t.Run("empty context", func(t *testing.T) {
		t.Parallel()

		meta := MetaFromContext(t.Context())
		require.Empty(t, meta.tags)
		require.Empty(t, meta.extras)
		require.Empty(t, meta.userID)
		require.True(t, meta.startedAt.IsZero())
	})

	t.Run("values accumulate", func(t *testing.T) {
		t.Parallel()

		startedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		ctx := AddTagsToContext(t.Context(), map[string]string{"methodPath": "GET /v1/search"})
		ctx = AddTagsToContext(ctx, map[string]string{"userAgent": "brawltools/0.1.0"})
		ctx = AddExtrasToContext(ctx, map[string]string{"playerId": "42"})
		ctx = SetUserIDInContext(ctx, "user-1")
		ctx = setStartedAtInContext(ctx, startedAt)

		meta := MetaFromContext(ctx)
		require.Equal(t, map[string]string{"methodPath": "GET /v1/search", "userAgent": "brawltools/0.1.0"}, meta.tags)
		require.Equal(t, map[string]string{"playerId": "42"}, meta.extras)
		require.Equal(t, "user-1", meta.userID)
		require.Equal(t, startedAt, meta.startedAt)
	})

	t.Run("parent context is not modified", func(t *testing.T) {
		t.Parallel()

		parent := AddTagsToContext(t.Context(), map[string]string{"a": "1"})
		child := AddTagsToContext(parent, map[string]string{"b": "2"})

		require.Equal(t, map[string]string{"a": "1"}, MetaFromContext(parent).tags)
		require.Equal(t, map[string]string{"a": "1", "b": "2"}, MetaFromContext(child).tags)
	})
}
