package domain

type Player struct {
	PlayerID     int    `json:"playerId"`
	SggPlayerID  int    `json:"sggPlayerId"`
	CmPlayerID   int    `json:"cmPlayerId"`
	BrawlhallaID int    `json:"brawlhallaId"`
	Name         string `json:"name"`
	Twitch       string `json:"twitch"`
	Twitter      string `json:"twitter"`
	Pronoun      string `json:"pronoun"`
	Country      string `json:"country"`
}

type PlayerList struct {
	Players []Player `json:"players"`
}

type Teammate struct {
	Player         Player `json:"player"`
	Games          int    `json:"games"`
	LastTeamedDate int64  `json:"lastTeamedDate"`
}

type PlayerTeammates struct {
	Teammates []Teammate `json:"playerTeammates"`
	NextToken string     `json:"nextToken,omitempty"`
}

type Legend struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type PlayerLegends struct {
	Legends   []Legend `json:"legends"`
	NextToken string   `json:"nextToken,omitempty"`
}

type SearchResult struct {
	Player   Player  `json:"player"`
	PR1v1    int     `json:"pr1v1"`
	PR2v2    int     `json:"pr2v2"`
	Region   string  `json:"region"`
	Top32    int     `json:"top32"`
	Top8     int     `json:"top8"`
	Gold     int     `json:"gold"`
	Silver   int     `json:"silver"`
	Bronze   int     `json:"bronze"`
	Earnings float64 `json:"earnings"`
}

type SearchPlayers struct {
	Results   []SearchResult `json:"searchPlayers"`
	NextToken string         `json:"nextToken,omitempty"`
}
