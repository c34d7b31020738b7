package domain

type TournamentHost string

const (
	TournamentHostSGG TournamentHost = "SGG"
	TournamentHostCM  TournamentHost = "CM"
)

type Tournament struct {
	ID             string         `json:"id"`
	TournamentName string         `json:"tournamentName"`
	EventName      string         `json:"eventName"`
	Year           int            `json:"year"`
	IsOfficial     bool           `json:"isOfficial"`
	IsTwos         bool           `json:"isTwos"`
	StartTime      int64          `json:"startTime"`
	Host           TournamentHost `json:"host"`
}

type Events struct {
	Tournaments []Tournament `json:"tournaments"`
	NextToken   string       `json:"nextToken,omitempty"`
}

type Placement struct {
	Placement  int        `json:"placement"`
	Tournament Tournament `json:"tournament"`
}

type PlayerPlacements struct {
	Placements []Placement `json:"playerPlacements"`
	NextToken  string      `json:"nextToken,omitempty"`
}

type Match struct {
	MatchID  int        `json:"matchId"`
	Scores   []int      `json:"scores"`
	Legends  [][]string `json:"legends"`
	Maps     []string   `json:"maps"`
	Opponent []Player   `json:"opponent,omitempty"`
}

type PlayerMatches struct {
	Matches []Match `json:"playerMatches"`
}
