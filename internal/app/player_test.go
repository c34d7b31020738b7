package app_test

import (
	"context"
	"testing"

	"github.com/Amund211/brawltools/internal/adapters/cache"
	"github.com/Amund211/brawltools/internal/app"
	"github.com/Amund211/brawltools/internal/domain"
	"github.com/Amund211/brawltools/internal/domaintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPlayerProvider struct {
	t *testing.T

	playerID int
	calls    int
	player   *domain.Player
	err      error
}

func (m *mockPlayerProvider) GetPlayer(ctx context.Context, playerID int) (*domain.Player, error) {
	m.t.Helper()
	require.Equal(m.t, m.playerID, playerID)

	m.calls++
	return m.player, m.err
}

func TestBuildGetPlayerWithCache(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	t.Run("player is fetched once", func(t *testing.T) {
		t.Parallel()

		player := domaintest.NewPlayerBuilder(42).WithName("Boomie").BuildPtr()
		provider := &mockPlayerProvider{t: t, playerID: 42, player: player}
		getPlayer := app.BuildGetPlayerWithCache(cache.NewBasicCache[*domain.Player](), provider)

		for range 3 {
			result, err := getPlayer(ctx, 42)
			require.NoError(t, err)
			require.Equal(t, player, result)
		}
		require.Equal(t, 1, provider.calls)
	})

	t.Run("missing players are cached", func(t *testing.T) {
		t.Parallel()

		provider := &mockPlayerProvider{t: t, playerID: 7}
		getPlayer := app.BuildGetPlayerWithCache(cache.NewBasicCache[*domain.Player](), provider)

		for range 2 {
			result, err := getPlayer(ctx, 7)
			require.NoError(t, err)
			require.Nil(t, result)
		}
		require.Equal(t, 1, provider.calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		provider := &mockPlayerProvider{t: t, playerID: 42, err: assert.AnError}
		getPlayer := app.BuildGetPlayerWithCache(cache.NewBasicCache[*domain.Player](), provider)

		_, err := getPlayer(ctx, 42)
		require.ErrorIs(t, err, assert.AnError)

		provider.err = nil
		provider.player = domaintest.NewPlayerBuilder(42).BuildPtr()
		result, err := getPlayer(ctx, 42)
		require.NoError(t, err)
		require.Equal(t, 42, result.PlayerID)
		require.Equal(t, 2, provider.calls)
	})

	t.Run("invalid player id", func(t *testing.T) {
		t.Parallel()

		provider := &mockPlayerProvider{t: t}
		getPlayer := app.BuildGetPlayerWithCache(cache.NewBasicCache[*domain.Player](), provider)

		for _, playerID := range []int{0, -1} {
			_, err := getPlayer(ctx, playerID)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		}
		require.Zero(t, provider.calls)
	})
}
