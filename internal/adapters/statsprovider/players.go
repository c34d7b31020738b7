package statsprovider

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Amund211/brawltools/internal/domain"
	"github.com/Amund211/brawltools/internal/query"
)

const playerFailureMessage = "Error when fetching player information."

type getPlayerResponse struct {
	Player domain.Player `json:"player"`
}

type getRecentPlayerLegendResponse struct {
	Legend domain.Legend `json:"legend"`
}

func (b *BrawlTools) getSinglePlayer(ctx context.Context, name string, path string) (*domain.Player, error) {
	response, found, err := get[getPlayerResponse](ctx, b, endpoint{
		name:           name,
		path:           path,
		failureMessage: playerFailureMessage,
	}, nil)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return &response.Player, nil
}

// GetPlayer returns nil if no player has the given id
func (b *BrawlTools) GetPlayer(ctx context.Context, playerID int) (*domain.Player, error) {
	if err := requirePositive("playerID", playerID); err != nil {
		return nil, err
	}
	return b.getSinglePlayer(ctx, "GetPlayer", fmt.Sprintf("/player/%d", playerID))
}

// GetSggPlayer looks up a player by their smash.gg player id
func (b *BrawlTools) GetSggPlayer(ctx context.Context, sggPlayerID int) (*domain.Player, error) {
	if err := requirePositive("sggPlayerID", sggPlayerID); err != nil {
		return nil, err
	}
	return b.getSinglePlayer(ctx, "GetSggPlayer", fmt.Sprintf("/player/sgg/%d", sggPlayerID))
}

func (b *BrawlTools) GetCmPlayer(ctx context.Context, cmPlayerID string) (*domain.Player, error) {
	if cmPlayerID == "" {
		return nil, fmt.Errorf("%w: cmPlayerID is required", domain.ErrInvalidInput)
	}
	return b.getSinglePlayer(ctx, "GetCmPlayer", "/player/cm/"+url.PathEscape(cmPlayerID))
}

func (b *BrawlTools) GetBrawlhallaPlayer(ctx context.Context, brawlhallaID int) (*domain.Player, error) {
	if err := requirePositive("brawlhallaID", brawlhallaID); err != nil {
		return nil, err
	}
	return b.getSinglePlayer(ctx, "GetBrawlhallaPlayer", fmt.Sprintf("/player/bhId/%d", brawlhallaID))
}

func (b *BrawlTools) GetPlayerList(ctx context.Context, params GetPlayerListParams) (domain.PlayerList, error) {
	if len(params.PlayerIDs) == 0 && len(params.BrawlhallaIDs) == 0 {
		return domain.PlayerList{}, fmt.Errorf("%w: playerIDs or brawlhallaIDs is required", domain.ErrInvalidInput)
	}

	list, _, err := get[domain.PlayerList](ctx, b, endpoint{
		name:           "GetPlayerList",
		path:           "/players",
		failureMessage: "Error when fetching player list.",
	}, query.Params{
		{Key: "smashIds", Value: joinIDs(params.PlayerIDs)},
		{Key: "bhIds", Value: joinIDs(params.BrawlhallaIDs)},
	})
	if err != nil {
		return domain.PlayerList{}, err
	}
	list.Players = orEmpty(list.Players)
	return list, nil
}

func (b *BrawlTools) GetPlayerTeammates(ctx context.Context, params GetPlayerTeammatesParams) (domain.PlayerTeammates, error) {
	if err := requirePositive("playerID", params.PlayerID); err != nil {
		return domain.PlayerTeammates{}, err
	}

	teammates, _, err := get[domain.PlayerTeammates](ctx, b, endpoint{
		name:           "GetPlayerTeammates",
		path:           "/player/teammate",
		failureMessage: "Error when fetching player teammates.",
	}, query.Params{
		{Key: "playerId", Value: params.PlayerID},
		{Key: "nextToken", Value: params.NextToken},
		{Key: "isOfficial", Value: params.IsOfficial},
		{Key: "maxResults", Value: params.MaxResults},
	})
	if err != nil {
		return domain.PlayerTeammates{}, err
	}
	teammates.Teammates = orEmpty(teammates.Teammates)
	return teammates, nil
}

// GetPlayerPR returns nil if the player has no PR in the game mode
func (b *BrawlTools) GetPlayerPR(ctx context.Context, params GetPlayerPRParams) (*domain.PlayerPR, error) {
	if err := requirePositive("playerID", params.PlayerID); err != nil {
		return nil, err
	}
	if err := requireGameMode(params.GameMode); err != nil {
		return nil, err
	}

	pr, found, err := get[domain.PlayerPR](ctx, b, endpoint{
		name:           "GetPlayerPR",
		path:           "/player/pr",
		failureMessage: "Error when fetching player PR.",
	}, query.Params{
		{Key: "playerId", Value: params.PlayerID},
		{Key: "gameMode", Value: params.GameMode},
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &pr, nil
}

func (b *BrawlTools) GetPlayerPlacements(ctx context.Context, params GetPlayerPlacementsParams) (domain.PlayerPlacements, error) {
	if len(params.PlayerIDs) == 0 {
		return domain.PlayerPlacements{}, fmt.Errorf("%w: playerIDs is required", domain.ErrInvalidInput)
	}
	if err := requireGameMode(params.GameMode); err != nil {
		return domain.PlayerPlacements{}, err
	}

	placements, _, err := get[domain.PlayerPlacements](ctx, b, endpoint{
		name:           "GetPlayerPlacements",
		path:           "/player/placement",
		failureMessage: "Error when fetching player tournament history.",
	}, query.Params{
		{Key: "gameMode", Value: params.GameMode},
		{Key: "isOfficial", Value: params.IsOfficial},
		{Key: "playerIds", Value: joinIDs(params.PlayerIDs)},
		{Key: "nextToken", Value: params.NextToken},
		{Key: "maxResults", Value: params.MaxResults},
	})
	if err != nil {
		return domain.PlayerPlacements{}, err
	}
	placements.Placements = orEmpty(placements.Placements)
	return placements, nil
}

func (b *BrawlTools) GetPlayerMatches(ctx context.Context, params GetPlayerMatchesParams) (domain.PlayerMatches, error) {
	if len(params.PlayerIDs) == 0 {
		return domain.PlayerMatches{}, fmt.Errorf("%w: playerIDs is required", domain.ErrInvalidInput)
	}

	matches, _, err := get[domain.PlayerMatches](ctx, b, endpoint{
		name:           "GetPlayerMatches",
		path:           "/player/match",
		failureMessage: "Error when fetching player tournament matches.",
	}, query.Params{
		{Key: "playerIds", Value: joinIDs(params.PlayerIDs)},
		{Key: "tournamentId", Value: params.TournamentID},
	})
	if err != nil {
		return domain.PlayerMatches{}, err
	}
	matches.Matches = orEmpty(matches.Matches)
	return matches, nil
}

func (b *BrawlTools) GetPlayerLegends(ctx context.Context, params GetPlayerLegendsParams) (domain.PlayerLegends, error) {
	if len(params.PlayerIDs) == 0 {
		return domain.PlayerLegends{}, fmt.Errorf("%w: playerIDs is required", domain.ErrInvalidInput)
	}

	legends, _, err := get[domain.PlayerLegends](ctx, b, endpoint{
		name:           "GetPlayerLegends",
		path:           "/player/legend",
		failureMessage: "Error when fetching player legends.",
	}, query.Params{
		{Key: "playerIds", Value: joinIDs(params.PlayerIDs)},
		{Key: "isOfficial", Value: params.IsOfficial},
		{Key: "year", Value: params.Year},
		{Key: "nextToken", Value: params.NextToken},
		{Key: "maxResults", Value: params.MaxResults},
	})
	if err != nil {
		return domain.PlayerLegends{}, err
	}
	legends.Legends = orEmpty(legends.Legends)
	return legends, nil
}

// GetRecentPlayerLegend returns the legend the player used most recently, or nil
func (b *BrawlTools) GetRecentPlayerLegend(ctx context.Context, playerID int) (*domain.Legend, error) {
	if err := requirePositive("playerID", playerID); err != nil {
		return nil, err
	}

	response, found, err := get[getRecentPlayerLegendResponse](ctx, b, endpoint{
		name:           "GetRecentPlayerLegend",
		path:           fmt.Sprintf("/player/%d/legend", playerID),
		failureMessage: "Error when fetching player legend information.",
	}, nil)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &response.Legend, nil
}

func (b *BrawlTools) SearchPlayers(ctx context.Context, params SearchPlayersParams) (domain.SearchPlayers, error) {
	if params.Query == "" {
		return domain.SearchPlayers{}, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	results, _, err := get[domain.SearchPlayers](ctx, b, endpoint{
		name:           "SearchPlayers",
		path:           "/player/search",
		failureMessage: "Error when searching for players.",
	}, query.Params{
		{Key: "query", Value: params.Query},
		{Key: "nextToken", Value: params.NextToken},
		{Key: "maxResults", Value: params.MaxResults},
	})
	if err != nil {
		return domain.SearchPlayers{}, err
	}
	results.Results = orEmpty(results.Results)
	return results, nil
}

func requirePositive(name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", domain.ErrInvalidInput, name, value)
	}
	return nil
}

func requireGameMode(gameMode domain.GameMode) error {
	if !gameMode.Valid() {
		return fmt.Errorf("%w: unknown game mode %d", domain.ErrInvalidInput, gameMode)
	}
	return nil
}
