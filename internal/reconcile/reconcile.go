// Package reconcile decides whether a project's pinned engine version is
// currently installed.
//
// Everything here is a pure function over a registry snapshot: no locks, no
// side effects, no caching. The lifecycle layer re-runs these on every
// registry change and on every user action that touches a project's pinned
// version.
package reconcile

import (
	"github.com/nothingTVatYT/Seed/internal/engine"
	"github.com/nothingTVatYT/Seed/internal/project"
)

// Status is the reconciliation verdict for one project.
type Status int

const (
	// StatusUnknown is the initial state before the first evaluation.
	StatusUnknown Status = iota

	// StatusResolving is reserved for registries that answer asynchronously.
	// The synchronous scanner-backed registry never exposes it.
	StatusResolving

	// StatusInstalled means the pinned engine version is installed.
	StatusInstalled

	// StatusMissing means the pinned engine version is not installed.
	StatusMissing
)

// String returns a human-readable form of the status.
func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusResolving:
		return "resolving"
	case StatusInstalled:
		return "installed"
	case StatusMissing:
		return "missing"
	default:
		return "invalid"
	}
}

// IsInstalled reports whether some engine in the snapshot provides the
// project's pinned version. Equality is by version value, never by install
// path or identity; an empty snapshot always reports false.
func IsInstalled(p *project.Project, snapshot []engine.Engine) bool {
	_, ok := ResolveEngine(p, snapshot)
	return ok
}

// ResolveEngine returns the engine in the snapshot providing the project's
// pinned version. When duplicates exist, the first match wins. Callers use
// the result to populate the project's cached back-reference.
func ResolveEngine(p *project.Project, snapshot []engine.Engine) (engine.Engine, bool) {
	want := p.EngineVersion()
	for _, e := range snapshot {
		if e.Version() == want {
			return e, true
		}
	}
	return engine.Engine{}, false
}

// Evaluate maps a project and snapshot to Installed or Missing.
func Evaluate(p *project.Project, snapshot []engine.Engine) Status {
	if IsInstalled(p, snapshot) {
		return StatusInstalled
	}
	return StatusMissing
}
