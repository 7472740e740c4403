package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nothingTVatYT/Seed/internal/history"
)

// runColumns is the list of columns to select for run queries.
const runColumns = `id, project_path, engine_version, started_at, outcome`

// runRepository implements history.Repository using SQLite.
type runRepository struct {
	db *sql.DB
}

// newRunRepository creates a new runRepository instance.
func newRunRepository(db *sql.DB) *runRepository {
	return &runRepository{db: db}
}

// Ensure runRepository implements history.Repository.
var _ history.Repository = (*runRepository)(nil)

// scanRun scans a row into a RunModel.
func scanRun(scanner interface{ Scan(...any) error }) (*RunModel, error) {
	var model RunModel
	err := scanner.Scan(&model.ID, &model.ProjectPath, &model.EngineVersion, &model.StartedAt, &model.Outcome)
	return &model, err
}

// Record inserts one launch record.
func (r *runRepository) Record(ctx context.Context, rec *history.Record) error {
	model := toRunModel(rec)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, project_path, engine_version, started_at, outcome)
		 VALUES (?, ?, ?, ?, ?)`,
		model.ID, model.ProjectPath, model.EngineVersion, model.StartedAt, model.Outcome,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// ListByProject returns the project's runs, newest first. A limit <= 0 means
// no limit. Ties on started_at break by insertion order.
func (r *runRepository) ListByProject(ctx context.Context, projectPath string, limit int) ([]*history.Record, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE project_path = ? ORDER BY started_at DESC, rowid DESC`
	args := []any{projectPath}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.queryRuns(ctx, query, args...)
}

// ListRecent returns the newest runs across all projects.
func (r *runRepository) ListRecent(ctx context.Context, limit int) ([]*history.Record, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.queryRuns(ctx, query, args...)
}

// LastRun returns the most recent run for the project, or history.ErrNoRuns.
func (r *runRepository) LastRun(ctx context.Context, projectPath string) (*history.Record, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE project_path = ? ORDER BY started_at DESC, rowid DESC LIMIT 1`,
		projectPath,
	)
	model, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, history.ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find last run: %w", err)
	}
	return model.toDomain()
}

// PruneOlderThan deletes runs that started before cutoff and reports how
// many were removed.
func (r *runRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(affected), nil
}

// Close releases any resources held by the repository.
// This is a no-op because the connection is owned by the DB struct.
func (r *runRepository) Close() error {
	return nil
}

func (r *runRepository) queryRuns(ctx context.Context, query string, args ...any) ([]*history.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*history.Record
	for rows.Next() {
		model, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		rec, err := model.toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	return records, nil
}
