package statsprovider

import "github.com/Amund211/brawltools/internal/domain"

// Optional values are pointers or empty strings, and are left out of the query when unset

type GetPlayerListParams struct {
	// Exactly one of PlayerIDs and BrawlhallaIDs should be set
	PlayerIDs     []int
	BrawlhallaIDs []int
}

type GetPlayerTeammatesParams struct {
	PlayerID   int
	NextToken  string
	IsOfficial *bool
	MaxResults *int
}

type GetPlayerPRParams struct {
	PlayerID int
	GameMode domain.GameMode
}

type GetPlayerPlacementsParams struct {
	GameMode   domain.GameMode
	IsOfficial *bool
	PlayerIDs  []int
	NextToken  string
	MaxResults *int
}

type GetPlayerMatchesParams struct {
	PlayerIDs    []int
	TournamentID string
}

type GetPlayerLegendsParams struct {
	PlayerIDs  []int
	IsOfficial *bool
	Year       *int
	NextToken  string
	MaxResults *int
}

type SearchPlayersParams struct {
	Query      string
	NextToken  string
	MaxResults *int
}

type GetMatchupParams struct {
	Entrant1PlayerIDs []int
	Entrant2PlayerIDs []int
	GameMode          domain.GameMode
	NextToken         string
	MaxResults        *int
	IsOfficial        *bool
}

type GetMatchupPlacementsParams struct {
	Entrant1PlayerIDs []int
	Entrant2PlayerIDs []int
	GameMode          domain.GameMode
	NextToken         string
	MaxResults        *int
	IsOfficial        *bool
}

type GetMatchupMatchesParams struct {
	TournamentID      string
	Entrant1PlayerIDs []int
	Entrant2PlayerIDs []int
}

type ListEventsParams struct {
	GameMode   domain.GameMode
	NextToken  string
	MaxResults *int
	IsOfficial *bool
	Year       *int
}

type ListPRParams struct {
	Page       *int
	MaxResults *int
	GameMode   domain.GameMode
	Region     string
	OrderBy    string
}
