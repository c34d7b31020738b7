package prrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Amund211/brawltools/internal/domain"
	"github.com/Amund211/brawltools/internal/reporting"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const maxHistoryLimit = 1000

type Postgres struct {
	db     *sqlx.DB
	schema string

	tracer trace.Tracer
}

func NewPostgres(db *sqlx.DB, schema string) *Postgres {
	tracer := otel.Tracer("brawltools/prrepository/postgres")

	return &Postgres{
		db:     db,
		schema: schema,

		tracer: tracer,
	}
}

type dbPRSnapshot struct {
	PlayerID     int       `db:"player_id"`
	GameMode     int       `db:"game_mode"`
	QueriedAt    time.Time `db:"queried_at"`
	Earnings     float64   `db:"earnings"`
	PowerRanking int       `db:"power_ranking"`
	Region       string    `db:"region"`
	Top8         int       `db:"top8"`
	Top32        int       `db:"top32"`
	Gold         int       `db:"gold"`
	Silver       int       `db:"silver"`
	Bronze       int       `db:"bronze"`
}

func fromDomain(snapshot domain.PRSnapshot) dbPRSnapshot {
	return dbPRSnapshot{
		PlayerID:     snapshot.PlayerID,
		GameMode:     int(snapshot.GameMode),
		QueriedAt:    snapshot.QueriedAt.UTC(),
		Earnings:     snapshot.PR.Earnings,
		PowerRanking: snapshot.PR.PR.PowerRanking,
		Region:       snapshot.PR.PR.Region,
		Top8:         snapshot.PR.PR.Top8,
		Top32:        snapshot.PR.PR.Top32,
		Gold:         snapshot.PR.PR.Gold,
		Silver:       snapshot.PR.PR.Silver,
		Bronze:       snapshot.PR.PR.Bronze,
	}
}

func (e dbPRSnapshot) toDomain() domain.PRSnapshot {
	return domain.PRSnapshot{
		PlayerID:  e.PlayerID,
		GameMode:  domain.GameMode(e.GameMode),
		QueriedAt: e.QueriedAt,
		PR: domain.PlayerPR{
			Earnings: e.Earnings,
			PR: domain.PRInformation{
				Top8:         e.Top8,
				Top32:        e.Top32,
				Gold:         e.Gold,
				Silver:       e.Silver,
				Bronze:       e.Bronze,
				PowerRanking: e.PowerRanking,
				Region:       e.Region,
			},
		},
	}
}

func (e dbPRSnapshot) samePR(other dbPRSnapshot) bool {
	return e.Earnings == other.Earnings &&
		e.PowerRanking == other.PowerRanking &&
		e.Region == other.Region &&
		e.Top8 == other.Top8 &&
		e.Top32 == other.Top32 &&
		e.Gold == other.Gold &&
		e.Silver == other.Silver &&
		e.Bronze == other.Bronze
}

func validateKey(playerID int, gameMode domain.GameMode) error {
	if playerID <= 0 {
		return fmt.Errorf("%w: player id must be positive", domain.ErrInvalidInput)
	}
	if !gameMode.Valid() {
		return fmt.Errorf("%w: unknown game mode %d", domain.ErrInvalidInput, gameMode)
	}
	return nil
}

// StorePRSnapshot stores the snapshot unless the PR is unchanged since the
// latest stored snapshot for the player and game mode
func (p *Postgres) StorePRSnapshot(ctx context.Context, snapshot domain.PRSnapshot) error {
	ctx, span := p.tracer.Start(ctx, "Postgres.StorePRSnapshot")
	defer span.End()

	if err := validateKey(snapshot.PlayerID, snapshot.GameMode); err != nil {
		return err
	}
	if snapshot.QueriedAt.IsZero() {
		return fmt.Errorf("%w: queried at must be set", domain.ErrInvalidInput)
	}

	entry := fromDomain(snapshot)
	extras := map[string]string{
		"playerId":  strconv.Itoa(entry.PlayerID),
		"gameMode":  strconv.Itoa(entry.GameMode),
		"queriedAt": entry.QueriedAt.Format(time.RFC3339),
	}

	txx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("failed to start transaction: %w", err)
		reporting.Report(ctx, err)
		return err
	}
	defer txx.Rollback()

	_, err = txx.ExecContext(ctx, fmt.Sprintf("SET LOCAL search_path TO %s", pq.QuoteIdentifier(p.schema)))
	if err != nil {
		err := fmt.Errorf("failed to set search path: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"schema": p.schema,
		})
		return err
	}

	// Serialize writers for the same player and game mode so the comparison
	// with the latest snapshot holds until commit
	_, err = txx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1, $2)", entry.PlayerID, entry.GameMode)
	if err != nil {
		err := fmt.Errorf("failed to take advisory lock: %w", err)
		reporting.Report(ctx, err, extras)
		return err
	}

	var latest dbPRSnapshot
	err = txx.GetContext(ctx, &latest, `SELECT
		player_id, game_mode, queried_at, earnings, power_ranking, region, top8, top32, gold, silver, bronze
		FROM pr_snapshots
		WHERE player_id = $1 AND game_mode = $2
		ORDER BY queried_at DESC
		LIMIT 1`,
		entry.PlayerID,
		entry.GameMode,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		err := fmt.Errorf("failed to select latest pr snapshot: %w", err)
		reporting.Report(ctx, err, extras)
		return err
	case latest.samePR(entry):
		span.SetAttributes(attribute.Bool("unchanged", true))
		return nil
	}

	_, err = txx.NamedExecContext(ctx, `INSERT INTO pr_snapshots
		(player_id, game_mode, queried_at, earnings, power_ranking, region, top8, top32, gold, silver, bronze)
		VALUES (:player_id, :game_mode, :queried_at, :earnings, :power_ranking, :region, :top8, :top32, :gold, :silver, :bronze)`,
		entry,
	)
	if err != nil {
		err := fmt.Errorf("failed to insert pr snapshot: %w", err)
		reporting.Report(ctx, err, extras)
		return err
	}

	err = txx.Commit()
	if err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err)
		return err
	}

	return nil
}

// GetPRHistory returns up to limit snapshots, newest first
func (p *Postgres) GetPRHistory(ctx context.Context, playerID int, gameMode domain.GameMode, limit int) ([]domain.PRSnapshot, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.GetPRHistory")
	defer span.End()

	if err := validateKey(playerID, gameMode); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxHistoryLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidInput, maxHistoryLimit)
	}

	entries := []dbPRSnapshot{}
	err := p.db.SelectContext(ctx, &entries, fmt.Sprintf(`SELECT
		player_id, game_mode, queried_at, earnings, power_ranking, region, top8, top32, gold, silver, bronze
		FROM %s.pr_snapshots
		WHERE player_id = $1 AND game_mode = $2
		ORDER BY queried_at DESC
		LIMIT $3`,
		pq.QuoteIdentifier(p.schema),
	),
		playerID,
		int(gameMode),
		limit,
	)
	if err != nil {
		err := fmt.Errorf("failed to select pr snapshots: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"playerId": strconv.Itoa(playerID),
			"gameMode": strconv.Itoa(int(gameMode)),
		})
		return nil, err
	}

	history := make([]domain.PRSnapshot, 0, len(entries))
	for _, entry := range entries {
		history = append(history, entry.toDomain())
	}

	return history, nil
}
