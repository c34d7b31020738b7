package app

import (
	"context"
	"fmt"

	"github.com/Amund211/brawltools/internal/adapters/cache"
	"github.com/Amund211/brawltools/internal/adapters/statsprovider"
	"github.com/Amund211/brawltools/internal/domain"
)

type SearchPlayers func(ctx context.Context, searchTerm string, nextToken string) (domain.SearchPlayers, error)

type GetMatchup func(ctx context.Context, entrant1, entrant2 []int, gameMode domain.GameMode, nextToken string) (domain.Matchups, error)

type ListPR func(ctx context.Context, gameMode domain.GameMode, region string, page int) (domain.PRList, error)

type GetPlayerPlacements func(ctx context.Context, playerID int, gameMode domain.GameMode, nextToken string) (domain.PlayerPlacements, error)

type playerSearcher interface {
	SearchPlayers(ctx context.Context, params statsprovider.SearchPlayersParams) (domain.SearchPlayers, error)
}

type matchupProvider interface {
	GetMatchup(ctx context.Context, params statsprovider.GetMatchupParams) (domain.Matchups, error)
}

type prLister interface {
	ListPR(ctx context.Context, params statsprovider.ListPRParams) (domain.PRList, error)
}

type placementsProvider interface {
	GetPlayerPlacements(ctx context.Context, params statsprovider.GetPlayerPlacementsParams) (domain.PlayerPlacements, error)
}

// cached runs create through GetOrCreate and wraps the error with what
func cached[T any](ctx context.Context, c cache.Cache[T], key string, what string, create func(context.Context) (T, error)) (T, error) {
	data, _, err := cache.GetOrCreate(ctx, c, key, create)
	if err != nil {
		var empty T
		return empty, fmt.Errorf("failed to cache.GetOrCreate %s: %w", what, err)
	}
	return data, nil
}

func BuildSearchPlayers(searchCache cache.Cache[domain.SearchPlayers], searcher playerSearcher) SearchPlayers {
	return func(ctx context.Context, searchTerm string, nextToken string) (domain.SearchPlayers, error) {
		if searchTerm == "" {
			return domain.SearchPlayers{}, fmt.Errorf("%w: empty search term", domain.ErrInvalidInput)
		}

		key := fmt.Sprintf("%q:%q", searchTerm, nextToken)
		return cached(ctx, searchCache, key, "player search", func(ctx context.Context) (domain.SearchPlayers, error) {
			return searcher.SearchPlayers(ctx, statsprovider.SearchPlayersParams{
				Query:     searchTerm,
				NextToken: nextToken,
			})
		})
	}
}

func BuildGetMatchup(matchupCache cache.Cache[domain.Matchups], provider matchupProvider) GetMatchup {
	return func(ctx context.Context, entrant1, entrant2 []int, gameMode domain.GameMode, nextToken string) (domain.Matchups, error) {
		if len(entrant1) == 0 || len(entrant2) == 0 {
			return domain.Matchups{}, fmt.Errorf("%w: both entrants are required", domain.ErrInvalidInput)
		}
		if !gameMode.Valid() {
			return domain.Matchups{}, fmt.Errorf("%w: invalid game mode %d", domain.ErrInvalidInput, gameMode)
		}

		key := fmt.Sprintf("%v:%v:%d:%q", entrant1, entrant2, gameMode, nextToken)
		return cached(ctx, matchupCache, key, "matchup", func(ctx context.Context) (domain.Matchups, error) {
			return provider.GetMatchup(ctx, statsprovider.GetMatchupParams{
				Entrant1PlayerIDs: entrant1,
				Entrant2PlayerIDs: entrant2,
				GameMode:          gameMode,
				NextToken:         nextToken,
			})
		})
	}
}

func BuildListPR(prListCache cache.Cache[domain.PRList], lister prLister) ListPR {
	return func(ctx context.Context, gameMode domain.GameMode, region string, page int) (domain.PRList, error) {
		if !gameMode.Valid() {
			return domain.PRList{}, fmt.Errorf("%w: invalid game mode %d", domain.ErrInvalidInput, gameMode)
		}
		if region == "" {
			return domain.PRList{}, fmt.Errorf("%w: region is required", domain.ErrInvalidInput)
		}
		if page < 1 {
			return domain.PRList{}, fmt.Errorf("%w: invalid page %d", domain.ErrInvalidInput, page)
		}

		key := fmt.Sprintf("%d:%q:%d", gameMode, region, page)
		return cached(ctx, prListCache, key, "pr list", func(ctx context.Context) (domain.PRList, error) {
			return lister.ListPR(ctx, statsprovider.ListPRParams{
				Page:     &page,
				GameMode: gameMode,
				Region:   region,
			})
		})
	}
}

func BuildGetPlayerPlacements(placementsCache cache.Cache[domain.PlayerPlacements], provider placementsProvider) GetPlayerPlacements {
	return func(ctx context.Context, playerID int, gameMode domain.GameMode, nextToken string) (domain.PlayerPlacements, error) {
		if playerID <= 0 {
			return domain.PlayerPlacements{}, fmt.Errorf("%w: invalid player id %d", domain.ErrInvalidInput, playerID)
		}
		if !gameMode.Valid() {
			return domain.PlayerPlacements{}, fmt.Errorf("%w: invalid game mode %d", domain.ErrInvalidInput, gameMode)
		}

		key := fmt.Sprintf("%d:%d:%q", playerID, gameMode, nextToken)
		return cached(ctx, placementsCache, key, "player placements", func(ctx context.Context) (domain.PlayerPlacements, error) {
			return provider.GetPlayerPlacements(ctx, statsprovider.GetPlayerPlacementsParams{
				PlayerIDs: []int{playerID},
				GameMode:  gameMode,
				NextToken: nextToken,
			})
		})
	}
}
