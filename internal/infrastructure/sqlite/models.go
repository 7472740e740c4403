package sqlite

import (
	"fmt"
	"time"

	"github.com/nothingTVatYT/Seed/internal/engine"
	"github.com/nothingTVatYT/Seed/internal/history"
)

// RunModel represents one row of the runs table. Timestamps are stored as
// Unix seconds.
type RunModel struct {
	ID            string
	ProjectPath   string
	EngineVersion string
	StartedAt     int64
	Outcome       string
}

// toRunModel converts a domain record to its database row.
func toRunModel(r *history.Record) *RunModel {
	return &RunModel{
		ID:            r.ID(),
		ProjectPath:   r.ProjectPath(),
		EngineVersion: r.EngineVersion().String(),
		StartedAt:     r.StartedAt().Unix(),
		Outcome:       string(r.Outcome()),
	}
}

// toDomain converts a database row back to a domain record.
func (m *RunModel) toDomain() (*history.Record, error) {
	v, err := engine.ParseVersion(m.EngineVersion)
	if err != nil {
		return nil, fmt.Errorf("run %s has invalid engine version %q: %w", m.ID, m.EngineVersion, err)
	}
	return history.ReconstituteRecord(
		m.ID,
		m.ProjectPath,
		v,
		time.Unix(m.StartedAt, 0).UTC(),
		history.Outcome(m.Outcome),
	), nil
}
