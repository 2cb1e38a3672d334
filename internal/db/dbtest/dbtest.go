// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/taigen-app/taigen/internal/db"
)

const memoryDSN = "file::memory:?_pragma=foreign_keys(1)"

// New returns a fresh, fully migrated SQLite database closed at test end.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	conn, err := db.Init("sqlite", memoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(conn) })

	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))
	return conn
}

// InsertUser adds a bare user row and returns its ID.
func InsertUser(t testing.TB, conn *sqlx.DB, id, email string) string {
	t.Helper()

	_, err := conn.Exec(`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, CURRENT_TIMESTAMP)`,
		id, email, "x")
	require.NoError(t, err)
	return id
}
