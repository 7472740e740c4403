package lifecycle

import (
	"fmt"

	"github.com/nothingTVatYT/Seed/internal/engine"
)

// MissingEngineError refuses Run and ClearCache when the project's pinned
// engine version is not installed.
type MissingEngineError struct {
	Project string
	Version engine.Version
}

func (e MissingEngineError) Error() string {
	return fmt.Sprintf("engine %s required by %q is not installed", e.Version, e.Project)
}

// NoEnginesInstalledError refuses the engine-change flow when no engines are
// installed at all. Kept distinct from MissingEngineError and
// EngineNotFoundError: "nothing to pick from" needs its own user-facing
// message, and it is checked before any version is even considered.
type NoEnginesInstalledError struct{}

func (NoEnginesInstalledError) Error() string {
	return "no engines installed"
}

// EngineNotFoundError refuses an engine change to a version that is not in
// the registry.
type EngineNotFoundError struct {
	Version engine.Version
}

func (e EngineNotFoundError) Error() string {
	return fmt.Sprintf("engine %s is not installed", e.Version)
}

// LaunchError wraps an immediate process-start failure, e.g. a missing or
// unrunnable engine binary.
type LaunchError struct {
	Binary string
	Err    error
}

func (e LaunchError) Error() string {
	return fmt.Sprintf("launching %s: %v", e.Binary, e.Err)
}

func (e LaunchError) Unwrap() error {
	return e.Err
}
