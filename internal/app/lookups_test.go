package app_test

import (
	"context"
	"testing"

	"github.com/Amund211/brawltools/internal/adapters/cache"
	"github.com/Amund211/brawltools/internal/adapters/statsprovider"
	"github.com/Amund211/brawltools/internal/app"
	"github.com/Amund211/brawltools/internal/domain"
	"github.com/Amund211/brawltools/internal/domaintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCatalog struct {
	t *testing.T

	searchCalls     []statsprovider.SearchPlayersParams
	matchupCalls    []statsprovider.GetMatchupParams
	listPRCalls     []statsprovider.ListPRParams
	placementsCalls []statsprovider.GetPlayerPlacementsParams

	err error
}

func (m *mockCatalog) SearchPlayers(ctx context.Context, params statsprovider.SearchPlayersParams) (domain.SearchPlayers, error) {
	m.searchCalls = append(m.searchCalls, params)
	if m.err != nil {
		return domain.SearchPlayers{}, m.err
	}
	return domain.SearchPlayers{
		Results: []domain.SearchResult{{Player: domaintest.NewPlayerBuilder(1).WithName(params.Query).Build()}},
	}, nil
}

func (m *mockCatalog) GetMatchup(ctx context.Context, params statsprovider.GetMatchupParams) (domain.Matchups, error) {
	m.matchupCalls = append(m.matchupCalls, params)
	if m.err != nil {
		return domain.Matchups{}, m.err
	}
	return domain.Matchups{Matchups: []domain.Matchup{{Matches: [2]int{3, 1}, Games: [2]int{7, 4}}}}, nil
}

func (m *mockCatalog) ListPR(ctx context.Context, params statsprovider.ListPRParams) (domain.PRList, error) {
	m.listPRCalls = append(m.listPRCalls, params)
	if m.err != nil {
		return domain.PRList{}, m.err
	}
	return domain.PRList{Players: []domain.PRPlayer{{PlayerID: 1, PowerRanking: 1}}, TotalPages: 4}, nil
}

func (m *mockCatalog) GetPlayerPlacements(ctx context.Context, params statsprovider.GetPlayerPlacementsParams) (domain.PlayerPlacements, error) {
	m.placementsCalls = append(m.placementsCalls, params)
	if m.err != nil {
		return domain.PlayerPlacements{}, m.err
	}
	return domain.PlayerPlacements{Placements: []domain.Placement{{Placement: 1}}}, nil
}

func TestBuildSearchPlayers(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	t.Run("results are cached per term and token", func(t *testing.T) {
		t.Parallel()

		catalog := &mockCatalog{t: t}
		searchPlayers := app.BuildSearchPlayers(cache.NewBasicCache[domain.SearchPlayers](), catalog)

		result, err := searchPlayers(ctx, "boomie", "")
		require.NoError(t, err)
		require.Equal(t, "boomie", result.Results[0].Player.Name)

		_, err = searchPlayers(ctx, "boomie", "")
		require.NoError(t, err)
		_, err = searchPlayers(ctx, "boomie", "abc")
		require.NoError(t, err)

		require.Equal(t, []statsprovider.SearchPlayersParams{
			{Query: "boomie"},
			{Query: "boomie", NextToken: "abc"},
		}, catalog.searchCalls)
	})

	t.Run("empty term", func(t *testing.T) {
		t.Parallel()

		catalog := &mockCatalog{t: t}
		_, err := app.BuildSearchPlayers(cache.NewBasicCache[domain.SearchPlayers](), catalog)(ctx, "", "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		require.Empty(t, catalog.searchCalls)
	})

	t.Run("errors are returned and not cached", func(t *testing.T) {
		t.Parallel()

		catalog := &mockCatalog{t: t, err: assert.AnError}
		searchPlayers := app.BuildSearchPlayers(cache.NewBasicCache[domain.SearchPlayers](), catalog)

		for range 2 {
			_, err := searchPlayers(ctx, "boomie", "")
			require.ErrorIs(t, err, assert.AnError)
		}
		require.Len(t, catalog.searchCalls, 2)
	})
}

func TestBuildGetMatchup(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	t.Run("matchups are cached", func(t *testing.T) {
		t.Parallel()

		catalog := &mockCatalog{t: t}
		getMatchup := app.BuildGetMatchup(cache.NewBasicCache[domain.Matchups](), catalog)

		for range 2 {
			result, err := getMatchup(ctx, []int{1}, []int{2}, domain.GameModeSingles, "")
			require.NoError(t, err)
			require.Len(t, result.Matchups, 1)
		}

		_, err := getMatchup(ctx, []int{2}, []int{1}, domain.GameModeSingles, "")
		require.NoError(t, err)

		require.Equal(t, []statsprovider.GetMatchupParams{
			{Entrant1PlayerIDs: []int{1}, Entrant2PlayerIDs: []int{2}, GameMode: domain.GameModeSingles},
			{Entrant1PlayerIDs: []int{2}, Entrant2PlayerIDs: []int{1}, GameMode: domain.GameModeSingles},
		}, catalog.matchupCalls)
	})

	t.Run("invalid input", func(t *testing.T) {
		t.Parallel()

		catalog := &mockCatalog{t: t}
		getMatchup := app.BuildGetMatchup(cache.NewBasicCache[domain.Matchups](), catalog)

		_, err := getMatchup(ctx, nil, []int{2}, domain.GameModeSingles, "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = getMatchup(ctx, []int{1}, nil, domain.GameModeSingles, "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = getMatchup(ctx, []int{1}, []int{2}, domain.GameMode(0), "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)

		require.Empty(t, catalog.matchupCalls)
	})
}

func TestBuildListPR(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	t.Run("pages are cached", func(t *testing.T) {
		t.Parallel()

		catalog := &mockCatalog{t: t}
		listPR := app.BuildListPR(cache.NewBasicCache[domain.PRList](), catalog)

		for range 2 {
			result, err := listPR(ctx, domain.GameModeDoubles, "NA", 2)
			require.NoError(t, err)
			require.Equal(t, 4, result.TotalPages)
		}

		require.Len(t, catalog.listPRCalls, 1)
		call := catalog.listPRCalls[0]
		require.Equal(t, domain.GameModeDoubles, call.GameMode)
		require.Equal(t, "NA", call.Region)
		require.NotNil(t, call.Page)
		require.Equal(t, 2, *call.Page)
	})

	t.Run("invalid input", func(t *testing.T) {
		t.Parallel()

		catalog := &mockCatalog{t: t}
		listPR := app.BuildListPR(cache.NewBasicCache[domain.PRList](), catalog)

		_, err := listPR(ctx, domain.GameMode(5), "NA", 1)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = listPR(ctx, domain.GameModeSingles, "", 1)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = listPR(ctx, domain.GameModeSingles, "NA", 0)
		require.ErrorIs(t, err, domain.ErrInvalidInput)

		require.Empty(t, catalog.listPRCalls)
	})
}

func TestBuildGetPlayerPlacements(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	t.Run("placements are cached", func(t *testing.T) {
		t.Parallel()

		catalog := &mockCatalog{t: t}
		getPlacements := app.BuildGetPlayerPlacements(cache.NewBasicCache[domain.PlayerPlacements](), catalog)

		for range 2 {
			result, err := getPlacements(ctx, 42, domain.GameModeSingles, "")
			require.NoError(t, err)
			require.Len(t, result.Placements, 1)
		}

		require.Equal(t, []statsprovider.GetPlayerPlacementsParams{
			{PlayerIDs: []int{42}, GameMode: domain.GameModeSingles},
		}, catalog.placementsCalls)
	})

	t.Run("invalid input", func(t *testing.T) {
		t.Parallel()

		catalog := &mockCatalog{t: t}
		getPlacements := app.BuildGetPlayerPlacements(cache.NewBasicCache[domain.PlayerPlacements](), catalog)

		_, err := getPlacements(ctx, -4, domain.GameModeSingles, "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = getPlacements(ctx, 42, domain.GameMode(0), "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)

		require.Empty(t, catalog.placementsCalls)
	})
}
