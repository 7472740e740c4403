package history

import (
	"context"
	"time"
)

// Repository persists launch records. The sqlite implementation lives in
// internal/infrastructure/sqlite; this interface keeps the domain and the
// lifecycle layer free of storage concerns.
type Repository interface {
	// Record stores one launch attempt.
	Record(ctx context.Context, r *Record) error

	// ListByProject returns a project's records, newest first. limit <= 0
	// means no limit.
	ListByProject(ctx context.Context, projectPath string, limit int) ([]*Record, error)

	// ListRecent returns the newest records across all projects.
	ListRecent(ctx context.Context, limit int) ([]*Record, error)

	// LastRun returns a project's most recent record, or ErrNoRuns.
	LastRun(ctx context.Context, projectPath string) (*Record, error)

	// PruneOlderThan deletes records started before cutoff and returns how
	// many were removed.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// Close releases the underlying storage.
	Close() error
}
