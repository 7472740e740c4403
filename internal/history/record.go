// Package history provides the domain layer for the launch history: what
// was run, with which engine, and whether the process came up.
//
// History is advisory. The lifecycle layer records launches on a
// best-effort basis and never fails an operation because recording failed.
package history

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nothingTVatYT/Seed/internal/engine"
)

// ErrNoRuns is returned by LastRun when a project has never been launched.
var ErrNoRuns = errors.New("no runs recorded")

// Outcome classifies how a launch attempt ended, as far as Seed observes it.
type Outcome string

const (
	// OutcomeLaunched means the engine process started.
	OutcomeLaunched Outcome = "launched"

	// OutcomeFailed means the process failed immediately (binary missing,
	// exec error). Exit codes after a successful start are not tracked.
	OutcomeFailed Outcome = "failed"
)

// IsValid returns true if the outcome is a recognized value.
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeLaunched, OutcomeFailed:
		return true
	default:
		return false
	}
}

// Record is one launch attempt. Fields are unexported; use the constructor
// and getters.
type Record struct {
	id            string
	projectPath   string
	engineVersion engine.Version
	startedAt     time.Time
	outcome       Outcome
}

// NewRecord creates a Record for a launch attempt happening now.
func NewRecord(projectPath string, version engine.Version, outcome Outcome) *Record {
	return &Record{
		id:            uuid.NewString(),
		projectPath:   projectPath,
		engineVersion: version,
		startedAt:     time.Now().UTC(),
		outcome:       outcome,
	}
}

// ReconstituteRecord creates a Record from persisted data.
func ReconstituteRecord(id, projectPath string, version engine.Version, startedAt time.Time, outcome Outcome) *Record {
	return &Record{
		id:            id,
		projectPath:   projectPath,
		engineVersion: version,
		startedAt:     startedAt,
		outcome:       outcome,
	}
}

// ID returns the record's unique identifier.
func (r *Record) ID() string {
	return r.id
}

// ProjectPath returns the path of the launched project.
func (r *Record) ProjectPath() string {
	return r.projectPath
}

// EngineVersion returns the engine version used for the launch.
func (r *Record) EngineVersion() engine.Version {
	return r.engineVersion
}

// StartedAt returns when the launch was attempted, in UTC.
func (r *Record) StartedAt() time.Time {
	return r.startedAt
}

// Outcome returns how the attempt ended.
func (r *Record) Outcome() Outcome {
	return r.outcome
}
