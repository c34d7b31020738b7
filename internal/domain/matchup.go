package domain

type Matchup struct {
	// Match and game wins as [entrant1, entrant2]
	Matches  [2]int   `json:"matches"`
	Games    [2]int   `json:"games"`
	Opponent []Player `json:"opponent"`
}

type Matchups struct {
	Matchups  []Matchup `json:"matchups"`
	NextToken string    `json:"nextToken,omitempty"`
}

type MatchupPlacement struct {
	Placements []int      `json:"placements"`
	Tournament Tournament `json:"tournament"`
}

type MatchupPlacements struct {
	Placements []MatchupPlacement `json:"matchupPlacements"`
	NextToken  string             `json:"nextToken,omitempty"`
}

type MatchupMatches struct {
	Matches []Match `json:"matchupMatches"`
}
