package engine

import (
	"path/filepath"
	"time"
)

// BinaryName is the executable every engine install ships. A directory under
// the engines root counts as an installed engine only if it contains this
// binary.
const BinaryName = "seed-engine"

// Engine is one installed engine build. Engines are owned by the Registry;
// consumers receive copies and treat them as read-only.
type Engine struct {
	version     Version
	installPath string
	installedAt time.Time
}

// NewEngine creates an Engine for an install discovered at installPath.
func NewEngine(version Version, installPath string, installedAt time.Time) Engine {
	return Engine{
		version:     version,
		installPath: installPath,
		installedAt: installedAt,
	}
}

// Version returns the release this install provides.
func (e Engine) Version() Version {
	return e.version
}

// InstallPath returns the root directory of the installed build.
func (e Engine) InstallPath() string {
	return e.installPath
}

// BinaryPath returns the path of the engine executable.
func (e Engine) BinaryPath() string {
	return filepath.Join(e.installPath, BinaryName)
}

// InstalledAt returns when the build landed on disk (the binary's mtime).
func (e Engine) InstalledAt() time.Time {
	return e.installedAt
}
