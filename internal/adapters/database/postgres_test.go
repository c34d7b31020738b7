package database

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func TestDB(t *testing.T) {
	t.Parallel()

	t.Run("db name", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "brawltools", DB_NAME)
	})

	t.Run("schema names", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "brawltools", GetSchemaName(false))
		require.Equal(t, "brawltools_test", GetSchemaName(true))
	})

	t.Run("cloudsql connection string", func(t *testing.T) {
		t.Parallel()

		require.Equal(
			t,
			"user=my-user password=my-password database=brawltools host=/cloudsql/project:region:instance",
			GetCloudSQLConnectionString("my-user", "my-password", "/cloudsql/project:region:instance"),
		)
	})

	if testing.Short() {
		t.Skip("skipping db tests in short mode.")
	}

	t.Run("NewPostgresDatabase", func(t *testing.T) {
		t.Parallel()

		db, err := NewPostgresDatabase(LOCAL_CONNECTION_STRING)
		require.NoError(t, err)
		require.NotNil(t, db)
	})

	t.Run("createDatabaseIfNotExists", func(t *testing.T) {
		t.Parallel()

		db, err := sqlx.Connect("postgres", LOCAL_CONNECTION_STRING)
		require.NoError(t, err)

		t.Run("already existing", func(t *testing.T) {
			t.Parallel()

			require.NoError(t, createDatabaseIfNotExists(db, "postgres"))
			require.NoError(t, createDatabaseIfNotExists(db, DB_NAME))
		})

		t.Run("new database", func(t *testing.T) {
			t.Parallel()

			const characters = "abcdefghijklmnopqrstuvwxyz"
			suffix := make([]byte, 10)
			for i := range suffix {
				suffix[i] = characters[rand.IntN(len(characters))]
			}

			err := createDatabaseIfNotExists(db, fmt.Sprintf("zz_random_db_%s", string(suffix)))
			require.NoError(t, err)
		})
	})
}
