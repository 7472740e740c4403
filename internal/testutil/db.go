// Package testutil provides fixtures for building complete Seed
// environments in tests: installed engines on disk, project directories,
// a persisted projects file, and an in-memory run-history database.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"
)

// Schema is the run-history schema, kept in sync with the migrations under
// internal/infrastructure/sqlite.
const Schema = `
CREATE TABLE runs (
	id TEXT PRIMARY KEY,
	project_path TEXT NOT NULL,
	engine_version TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	outcome TEXT NOT NULL CHECK (outcome IN ('launched', 'failed'))
);

CREATE INDEX idx_runs_project_started ON runs (project_path, started_at DESC);
CREATE INDEX idx_runs_started ON runs (started_at DESC);
`

// NewTestDB creates an in-memory SQLite database with the runs schema.
// The caller is responsible for closing the database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return db
}
