package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Amund211/brawltools/internal/adapters/cache"
	"github.com/Amund211/brawltools/internal/adapters/statsprovider"
	"github.com/Amund211/brawltools/internal/domain"
	"github.com/Amund211/brawltools/internal/logging"
)

// GetPlayerPR returns nil if the player has no PR in the game mode
type GetPlayerPR func(ctx context.Context, playerID int, gameMode domain.GameMode) (*domain.PlayerPR, error)

type GetPRHistory func(ctx context.Context, playerID int, gameMode domain.GameMode, limit int) ([]domain.PRSnapshot, error)

type playerPRProvider interface {
	GetPlayerPR(ctx context.Context, params statsprovider.GetPlayerPRParams) (*domain.PlayerPR, error)
}

type prSnapshotStorer interface {
	StorePRSnapshot(ctx context.Context, snapshot domain.PRSnapshot) error
}

type prHistoryGetter interface {
	GetPRHistory(ctx context.Context, playerID int, gameMode domain.GameMode, limit int) ([]domain.PRSnapshot, error)
}

func getAndPersistPlayerPR(
	ctx context.Context,
	provider playerPRProvider,
	repo prSnapshotStorer,
	nowFunc func() time.Time,
	playerID int,
	gameMode domain.GameMode,
) (*domain.PlayerPR, error) {
	pr, err := provider.GetPlayerPR(ctx, statsprovider.GetPlayerPRParams{
		PlayerID: playerID,
		GameMode: gameMode,
	})
	if err != nil {
		// NOTE: The provider handles its own error reporting
		return nil, fmt.Errorf("could not get player pr: %w", err)
	}
	if pr == nil {
		return nil, nil
	}

	// Ignore cancellations from the request context and try to store the data anyway
	// Take a maximum of 1 second to not block the request for too long
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 1*time.Second)
	defer cancel()
	err = repo.StorePRSnapshot(storeCtx, domain.PRSnapshot{
		PlayerID:  playerID,
		GameMode:  gameMode,
		QueriedAt: nowFunc(),
		PR:        *pr,
	})
	if err != nil {
		// NOTE: The repository handles its own error reporting
		logging.FromContext(ctx).ErrorContext(ctx, "failed to store pr snapshot", "error", err.Error())

		// NOTE: We still return the PR to fulfill the request even though storing failed
	}

	return pr, nil
}

func BuildGetPlayerPRWithCache(
	prCache cache.Cache[*domain.PlayerPR],
	provider playerPRProvider,
	repo prSnapshotStorer,
	nowFunc func() time.Time,
) GetPlayerPR {
	return func(ctx context.Context, playerID int, gameMode domain.GameMode) (*domain.PlayerPR, error) {
		if playerID <= 0 {
			return nil, fmt.Errorf("%w: invalid player id %d", domain.ErrInvalidInput, playerID)
		}
		if !gameMode.Valid() {
			return nil, fmt.Errorf("%w: invalid game mode %d", domain.ErrInvalidInput, gameMode)
		}

		key := fmt.Sprintf("%d:%d", playerID, gameMode)
		pr, _, err := cache.GetOrCreate(ctx, prCache, key, func(ctx context.Context) (*domain.PlayerPR, error) {
			return getAndPersistPlayerPR(ctx, provider, repo, nowFunc, playerID, gameMode)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to cache.GetOrCreate player pr: %w", err)
		}

		return pr, nil
	}
}

func BuildGetPRHistory(repo prHistoryGetter) GetPRHistory {
	return func(ctx context.Context, playerID int, gameMode domain.GameMode, limit int) ([]domain.PRSnapshot, error) {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		history, err := repo.GetPRHistory(ctx, playerID, gameMode, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to get pr history: %w", err)
		}

		return history, nil
	}
}
