package statsprovider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Amund211/brawltools/internal/domain"
	"github.com/Amund211/brawltools/internal/query"
)

func matchupParams(entrant1, entrant2 []int, gameMode domain.GameMode, nextToken string, maxResults *int, isOfficial *bool) query.Params {
	return query.Params{
		{Key: "entrant1PlayerIds", Value: joinIDs(entrant1)},
		{Key: "entrant2PlayerIds", Value: joinIDs(entrant2)},
		{Key: "gameMode", Value: gameMode},
		{Key: "nextToken", Value: nextToken},
		{Key: "maxResults", Value: maxResults},
		{Key: "isOfficial", Value: isOfficial},
	}
}

func emptyMatchups() domain.Matchups {
	return domain.Matchups{Matchups: []domain.Matchup{}}
}

// GetMatchup returns the head to head record of entrant 1 against entrant 2.
//
// The API answers 400 for some matchups it has no data for, so a 400 gives
// an empty result instead of an error. This applies to this endpoint only.
func (b *BrawlTools) GetMatchup(ctx context.Context, params GetMatchupParams) (domain.Matchups, error) {
	if len(params.Entrant1PlayerIDs) == 0 {
		return domain.Matchups{}, fmt.Errorf("%w: entrant1PlayerIDs is required", domain.ErrInvalidInput)
	}
	if err := requireGameMode(params.GameMode); err != nil {
		return domain.Matchups{}, err
	}

	e := endpoint{
		name:           "GetMatchup",
		path:           "/matchup",
		failureMessage: matchupFailureMessage(params.Entrant1PlayerIDs, params.Entrant2PlayerIDs),
	}

	result, err := b.run(ctx, e, matchupParams(
		params.Entrant1PlayerIDs,
		params.Entrant2PlayerIDs,
		params.GameMode,
		params.NextToken,
		params.MaxResults,
		params.IsOfficial,
	))
	if err != nil {
		var queryErr *query.Error
		if errors.As(err, &queryErr) && queryErr.Kind == query.KindStatus && queryErr.StatusCode == http.StatusBadRequest {
			return emptyMatchups(), nil
		}
		return domain.Matchups{}, b.failure(ctx, e, err)
	}

	if result.NotFound() {
		return emptyMatchups(), nil
	}

	matchups, err := decode[domain.Matchups](ctx, e, result.Body)
	if err != nil {
		return domain.Matchups{}, err
	}
	matchups.Matchups = orEmpty(matchups.Matchups)
	return matchups, nil
}

func matchupFailureMessage(entrant1, entrant2 []int) string {
	ids := make([]string, 0, len(entrant1)+len(entrant2))
	for _, id := range entrant1 {
		ids = append(ids, strconv.Itoa(id))
	}
	for _, id := range entrant2 {
		ids = append(ids, strconv.Itoa(id))
	}
	return fmt.Sprintf("Error fetching player matchup %s", strings.Join(ids, ", "))
}

func (b *BrawlTools) GetMatchupPlacements(ctx context.Context, params GetMatchupPlacementsParams) (domain.MatchupPlacements, error) {
	if len(params.Entrant1PlayerIDs) == 0 || len(params.Entrant2PlayerIDs) == 0 {
		return domain.MatchupPlacements{}, fmt.Errorf("%w: entrant1PlayerIDs and entrant2PlayerIDs are required", domain.ErrInvalidInput)
	}
	if err := requireGameMode(params.GameMode); err != nil {
		return domain.MatchupPlacements{}, err
	}

	placements, _, err := get[domain.MatchupPlacements](ctx, b, endpoint{
		name:           "GetMatchupPlacements",
		path:           "/matchup/placement",
		failureMessage: "Error when fetching matchup placements.",
	}, matchupParams(
		params.Entrant1PlayerIDs,
		params.Entrant2PlayerIDs,
		params.GameMode,
		params.NextToken,
		params.MaxResults,
		params.IsOfficial,
	))
	if err != nil {
		return domain.MatchupPlacements{}, err
	}
	placements.Placements = orEmpty(placements.Placements)
	return placements, nil
}

func (b *BrawlTools) GetMatchupMatches(ctx context.Context, params GetMatchupMatchesParams) (domain.MatchupMatches, error) {
	if len(params.Entrant1PlayerIDs) == 0 {
		return domain.MatchupMatches{}, fmt.Errorf("%w: entrant1PlayerIDs is required", domain.ErrInvalidInput)
	}

	matches, _, err := get[domain.MatchupMatches](ctx, b, endpoint{
		name:           "GetMatchupMatches",
		path:           "/matchup/match",
		failureMessage: "Error when fetching matchup matches.",
	}, query.Params{
		{Key: "tournamentId", Value: params.TournamentID},
		{Key: "entrant1PlayerIds", Value: joinIDs(params.Entrant1PlayerIDs)},
		{Key: "entrant2PlayerIds", Value: joinIDs(params.Entrant2PlayerIDs)},
	})
	if err != nil {
		return domain.MatchupMatches{}, err
	}
	matches.Matches = orEmpty(matches.Matches)
	return matches, nil
}
