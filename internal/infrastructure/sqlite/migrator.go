package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/golang-migrate/migrate/v4/database"
)

// migrationTarget adapts an already-open ncruces connection to the
// golang-migrate database.Driver interface. migrate's own sqlite3 driver
// registers the cgo "sqlite3" database/sql driver, which panics alongside
// the ncruces registration of the same name, so it stays unimported.
type migrationTarget struct {
	db     *sql.DB
	locked atomic.Bool
}

var _ database.Driver = (*migrationTarget)(nil)

func newMigrationTarget(db *sql.DB) (*migrationTarget, error) {
	t := &migrationTarget{db: db}
	if err := t.ensureVersionTable(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *migrationTarget) ensureVersionTable() error {
	_, err := t.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version uint64, dirty bool)`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}
	return nil
}

// Open is part of database.Driver but only applies to URL-constructed
// drivers; this one is always built around an existing connection.
func (t *migrationTarget) Open(string) (database.Driver, error) {
	return nil, fmt.Errorf("migration target must be constructed from an open connection")
}

// Close is a no-op: the connection is owned by DB.
func (t *migrationTarget) Close() error {
	return nil
}

func (t *migrationTarget) Lock() error {
	if !t.locked.CompareAndSwap(false, true) {
		return database.ErrLocked
	}
	return nil
}

func (t *migrationTarget) Unlock() error {
	t.locked.Store(false)
	return nil
}

// Run executes one migration script. The ncruces driver handles
// multi-statement scripts in a single Exec.
func (t *migrationTarget) Run(migration io.Reader) error {
	script, err := io.ReadAll(migration)
	if err != nil {
		return fmt.Errorf("reading migration: %w", err)
	}
	if _, err := t.db.Exec(string(script)); err != nil {
		return fmt.Errorf("executing migration: %w", err)
	}
	return nil
}

func (t *migrationTarget) SetVersion(version int, dirty bool) error {
	tx, err := t.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning version update: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM schema_migrations`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clearing schema version: %w", err)
	}
	if version >= 0 || (version == database.NilVersion && dirty) {
		if _, err := tx.Exec(
			`INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`,
			version, dirty,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("writing schema version: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing version update: %w", err)
	}
	return nil
}

func (t *migrationTarget) Version() (int, bool, error) {
	var (
		version int
		dirty   bool
	)
	err := t.db.QueryRow(`SELECT version, dirty FROM schema_migrations LIMIT 1`).Scan(&version, &dirty)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return database.NilVersion, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("reading schema version: %w", err)
	}
	return version, dirty, nil
}

// Drop removes every table except SQLite's own bookkeeping.
func (t *migrationTarget) Drop() error {
	rows, err := t.db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scanning table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating tables: %w", err)
	}

	for _, name := range tables {
		if _, err := t.db.Exec(`DROP TABLE IF EXISTS "` + name + `"`); err != nil {
			return fmt.Errorf("dropping table %s: %w", name, err)
		}
	}
	return nil
}
