package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Amund211/brawltools/internal/adapters/cache"
	"github.com/Amund211/brawltools/internal/domain"
)

// GetPlayer returns nil if the player does not exist
type GetPlayer func(ctx context.Context, playerID int) (*domain.Player, error)

type playerProvider interface {
	GetPlayer(ctx context.Context, playerID int) (*domain.Player, error)
}

func BuildGetPlayerWithCache(playerCache cache.Cache[*domain.Player], provider playerProvider) GetPlayer {
	return func(ctx context.Context, playerID int) (*domain.Player, error) {
		if playerID <= 0 {
			return nil, fmt.Errorf("%w: invalid player id %d", domain.ErrInvalidInput, playerID)
		}

		// Missing players are cached as nil
		player, _, err := cache.GetOrCreate(ctx, playerCache, strconv.Itoa(playerID), func(ctx context.Context) (*domain.Player, error) {
			return provider.GetPlayer(ctx, playerID)
		})
		if err != nil {
			// NOTE: The provider handles its own error reporting
			return nil, fmt.Errorf("failed to cache.GetOrCreate player: %w", err)
		}

		return player, nil
	}
}
