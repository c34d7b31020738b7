package domaintest

import (
	"time"

	"github.com/Amund211/brawltools/internal/domain"
)

type prSnapshotBuilder struct {
	snapshot *domain.PRSnapshot
}

func (b *prSnapshotBuilder) WithPowerRanking(powerRanking int) *prSnapshotBuilder {
	b.snapshot.PR.PR.PowerRanking = powerRanking
	return b
}

func (b *prSnapshotBuilder) WithEarnings(earnings float64) *prSnapshotBuilder {
	b.snapshot.PR.Earnings = earnings
	return b
}

func (b *prSnapshotBuilder) WithRegion(region string) *prSnapshotBuilder {
	b.snapshot.PR.PR.Region = region
	return b
}

func (b *prSnapshotBuilder) Build() domain.PRSnapshot {
	return *b.snapshot
}

func NewPRSnapshot(playerID int, gameMode domain.GameMode, queriedAt time.Time) *prSnapshotBuilder {
	return &prSnapshotBuilder{
		snapshot: &domain.PRSnapshot{
			PlayerID:  playerID,
			GameMode:  gameMode,
			QueriedAt: queriedAt,
			PR: domain.PlayerPR{
				Earnings: 100,
				PR: domain.PRInformation{
					Top8:         2,
					Top32:        5,
					Gold:         1,
					Silver:       0,
					Bronze:       1,
					PowerRanking: 20,
					Region:       "EU",
				},
			},
		},
	}
}
