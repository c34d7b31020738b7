package prrepository

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/Amund211/brawltools/internal/adapters/database"
	"github.com/Amund211/brawltools/internal/domain"
	"github.com/Amund211/brawltools/internal/domaintest"
)

func newPostgres(t *testing.T, db *sqlx.DB, schemaSuffix string) *Postgres {
	require.NotEmpty(t, schemaSuffix, "schemaSuffix must not be empty")
	schema := fmt.Sprintf("pr_repo_test_%s", schemaSuffix)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db.MustExec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", pq.QuoteIdentifier(schema)))

	migrator := database.NewDatabaseMigrator(db, logger)

	err := migrator.Migrate(t.Context(), schema)
	require.NoError(t, err)

	return NewPostgres(db, schema)
}

func TestValidation(t *testing.T) {
	t.Parallel()

	// Validation happens before the database is touched
	p := NewPostgres(nil, "unused")
	ctx := t.Context()
	now := time.Now()

	err := p.StorePRSnapshot(ctx, domaintest.NewPRSnapshot(0, domain.GameModeSingles, now).Build())
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	err = p.StorePRSnapshot(ctx, domaintest.NewPRSnapshot(1, domain.GameMode(7), now).Build())
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	err = p.StorePRSnapshot(ctx, domaintest.NewPRSnapshot(1, domain.GameModeSingles, time.Time{}).Build())
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = p.GetPRHistory(ctx, 1, domain.GameModeSingles, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = p.GetPRHistory(ctx, 1, domain.GameModeSingles, maxHistoryLimit+1)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping db tests in short mode.")
	}
	t.Parallel()

	db, err := database.NewPostgresDatabase(database.LOCAL_CONNECTION_STRING)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Microsecond)

	requireSnapshotsEqual := func(t *testing.T, expected, actual []domain.PRSnapshot) {
		t.Helper()

		require.Len(t, actual, len(expected))
		for i := range expected {
			require.Equal(t, expected[i].PlayerID, actual[i].PlayerID)
			require.Equal(t, expected[i].GameMode, actual[i].GameMode)
			require.WithinDuration(t, expected[i].QueriedAt, actual[i].QueriedAt, 0)
			require.Equal(t, expected[i].PR, actual[i].PR)
		}
	}

	t.Run("store and get history", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()
		p := newPostgres(t, db, "store_and_get")

		first := domaintest.NewPRSnapshot(42, domain.GameModeSingles, now.Add(-2*time.Hour)).WithPowerRanking(10).Build()
		second := domaintest.NewPRSnapshot(42, domain.GameModeSingles, now.Add(-time.Hour)).WithPowerRanking(8).Build()
		third := domaintest.NewPRSnapshot(42, domain.GameModeSingles, now).WithPowerRanking(5).WithEarnings(1500.5).Build()
		otherMode := domaintest.NewPRSnapshot(42, domain.GameModeDoubles, now).WithPowerRanking(1).Build()
		otherPlayer := domaintest.NewPRSnapshot(43, domain.GameModeSingles, now).Build()

		for _, snapshot := range []domain.PRSnapshot{first, second, third, otherMode, otherPlayer} {
			require.NoError(t, p.StorePRSnapshot(ctx, snapshot))
		}

		history, err := p.GetPRHistory(ctx, 42, domain.GameModeSingles, 10)
		require.NoError(t, err)
		requireSnapshotsEqual(t, []domain.PRSnapshot{third, second, first}, history)

		history, err = p.GetPRHistory(ctx, 42, domain.GameModeSingles, 2)
		require.NoError(t, err)
		requireSnapshotsEqual(t, []domain.PRSnapshot{third, second}, history)

		history, err = p.GetPRHistory(ctx, 42, domain.GameModeDoubles, 10)
		require.NoError(t, err)
		requireSnapshotsEqual(t, []domain.PRSnapshot{otherMode}, history)
	})

	t.Run("unchanged pr is not stored again", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()
		p := newPostgres(t, db, "unchanged")

		first := domaintest.NewPRSnapshot(42, domain.GameModeSingles, now.Add(-time.Hour)).WithPowerRanking(10).Build()
		same := domaintest.NewPRSnapshot(42, domain.GameModeSingles, now).WithPowerRanking(10).Build()

		require.NoError(t, p.StorePRSnapshot(ctx, first))
		require.NoError(t, p.StorePRSnapshot(ctx, same))

		history, err := p.GetPRHistory(ctx, 42, domain.GameModeSingles, 10)
		require.NoError(t, err)
		requireSnapshotsEqual(t, []domain.PRSnapshot{first}, history)
	})

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()

		p := newPostgres(t, db, "empty")

		history, err := p.GetPRHistory(t.Context(), 42, domain.GameModeSingles, 10)
		require.NoError(t, err)
		require.Empty(t, history)
		require.NotNil(t, history)
	})

	t.Run("concurrent writes of the same pr store one row", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()
		p := newPostgres(t, db, "concurrent")

		var wg sync.WaitGroup
		for i := range 10 {
			wg.Go(func() {
				snapshot := domaintest.NewPRSnapshot(42, domain.GameModeSingles, now.Add(time.Duration(i)*time.Second)).WithPowerRanking(3).Build()
				require.NoError(t, p.StorePRSnapshot(ctx, snapshot))
			})
		}
		wg.Wait()

		history, err := p.GetPRHistory(ctx, 42, domain.GameModeSingles, 10)
		require.NoError(t, err)
		require.Len(t, history, 1)
	})
}
