package domaintest

import (
	"fmt"

	"github.com/Amund211/brawltools/internal/domain"
)

type playerBuilder struct {
	player *domain.Player
}

func (pb *playerBuilder) WithName(name string) *playerBuilder {
	pb.player.Name = name
	return pb
}

func (pb *playerBuilder) WithBrawlhallaID(brawlhallaID int) *playerBuilder {
	pb.player.BrawlhallaID = brawlhallaID
	return pb
}

func (pb *playerBuilder) WithCountry(country string) *playerBuilder {
	pb.player.Country = country
	return pb
}

func (pb *playerBuilder) Build() domain.Player {
	return *pb.player
}

func (pb *playerBuilder) BuildPtr() *domain.Player {
	// Make a copy, so further mutations to the builder don't affect the returned player
	player := pb.Build()
	return &player
}

func NewPlayerBuilder(playerID int) *playerBuilder {
	player := &domain.Player{
		PlayerID: playerID,
		Name:     fmt.Sprintf("player%d", playerID),
	}
	return &playerBuilder{
		player: player,
	}
}
