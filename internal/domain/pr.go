package domain

import "time"

type GameMode int

const (
	GameModeSingles GameMode = 1
	GameModeDoubles GameMode = 2
)

func (g GameMode) Valid() bool {
	return g == GameModeSingles || g == GameModeDoubles
}

type PRInformation struct {
	Top8         int    `json:"top8"`
	Top32        int    `json:"top32"`
	Gold         int    `json:"gold"`
	Silver       int    `json:"silver"`
	Bronze       int    `json:"bronze"`
	PowerRanking int    `json:"powerRanking"`
	Region       string `json:"region"`
}

type PlayerPR struct {
	Earnings float64       `json:"earnings"`
	PR       PRInformation `json:"pr"`
}

type PRPlayer struct {
	PlayerID     int     `json:"playerId"`
	PlayerName   string  `json:"playerName"`
	Twitter      string  `json:"twitter"`
	Twitch       string  `json:"twitch"`
	Top8         int     `json:"top8"`
	Top32        int     `json:"top32"`
	Gold         int     `json:"gold"`
	Silver       int     `json:"silver"`
	Bronze       int     `json:"bronze"`
	PowerRanking int     `json:"powerRanking"`
	Points       float64 `json:"points"`
	Earnings     float64 `json:"earnings"`
}

type PRList struct {
	Players    []PRPlayer `json:"prPlayers"`
	TotalPages int        `json:"totalPages"`
}

// PRSnapshot is a player's PR as seen at QueriedAt
type PRSnapshot struct {
	PlayerID  int
	GameMode  GameMode
	QueriedAt time.Time
	PR        PlayerPR
}
