//go:build integration

package postgres_test

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/dkovacs/tasknest/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// getTestDB opens the database named by TASKNEST_TEST_DB_URL and ensures the
// schema is current. Tests are skipped when the variable is unset so the
// unit suite stays runnable without a database.
func getTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("TASKNEST_TEST_DB_URL")
	if url == "" {
		t.Skip("TASKNEST_TEST_DB_URL not set - skipping integration test")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	goose.SetBaseFS(postgres.MigrationsFS)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, postgres.MigrationsDir), "failed to migrate test database")

	return db
}

// withTx runs fn inside a transaction that is always rolled back,
// keeping tests isolated from each other.
func withTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin test transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
