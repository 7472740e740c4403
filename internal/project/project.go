// Package project defines the Project entity, the in-memory store of known
// projects, and the durable persistence source.
//
// A Project is identified by its filesystem path. It pins exactly one engine
// version; whether that version is currently installed is decided by the
// reconcile package, never stored here.
package project

import (
	"errors"
	"path/filepath"

	"github.com/nothingTVatYT/Seed/internal/engine"
)

// Entity validation errors.
var (
	ErrNoPath    = errors.New("project path is required")
	ErrNoVersion = errors.New("project engine version is required")
	ErrNotFound  = errors.New("project not found")
)

// IconFileName is the conventional icon location inside a project directory.
const IconFileName = "icon.png"

// Project is a user-managed unit of work bound to one engine version.
// Fields are unexported; mutation goes through the lifecycle layer, which
// persists after every change.
type Project struct {
	name       string
	path       string // durable identity key
	version    engine.Version
	engine     *engine.Engine // cached resolution against the registry, never authoritative
	isTemplate bool
	arguments  string
}

// New creates a Project rooted at path. An empty name defaults to the
// directory base name.
func New(name, path string, version engine.Version) (*Project, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	if version.IsZero() {
		return nil, ErrNoVersion
	}
	if name == "" {
		name = filepath.Base(path)
	}
	return &Project{
		name:    name,
		path:    path,
		version: version,
	}, nil
}

// Reconstitute creates a Project from persisted data. The engine cache
// starts empty; the lifecycle layer populates it on first reconciliation.
func Reconstitute(name, path string, version engine.Version, isTemplate bool, arguments string) *Project {
	return &Project{
		name:       name,
		path:       path,
		version:    version,
		isTemplate: isTemplate,
		arguments:  arguments,
	}
}

// Name returns the display name. Names are not unique; Path is the key.
func (p *Project) Name() string {
	return p.name
}

// Path returns the project's filesystem location and identity key.
func (p *Project) Path() string {
	return p.path
}

// EngineVersion returns the pinned engine version. Always present.
func (p *Project) EngineVersion() engine.Version {
	return p.version
}

// Engine returns the cached installed-engine resolution, or nil when the
// pinned version was missing at the last reconciliation. Authoritative
// equality is always EngineVersion against the registry; this is a cache.
func (p *Project) Engine() *engine.Engine {
	return p.engine
}

// IsTemplate reports whether the project is flagged as a template.
func (p *Project) IsTemplate() bool {
	return p.isTemplate
}

// Arguments returns the opaque launch argument text.
func (p *Project) Arguments() string {
	return p.arguments
}

// IconPath returns where the project's icon lives if it has one. Derived
// from Path, never persisted.
func (p *Project) IconPath() string {
	return filepath.Join(p.path, IconFileName)
}

// SetEngineVersion repins the project. The engine cache is cleared; callers
// re-resolve against the registry.
func (p *Project) SetEngineVersion(v engine.Version) {
	p.version = v
	p.engine = nil
}

// SetEngine caches the resolved engine. Recomputed on every registry change
// and every SetEngineVersion; nil means the pinned version is not installed.
func (p *Project) SetEngine(e *engine.Engine) {
	p.engine = e
}

// SetTemplate sets the template flag.
func (p *Project) SetTemplate(isTemplate bool) {
	p.isTemplate = isTemplate
}

// SetArguments replaces the launch argument text. The text is opaque; no
// grammar validation happens anywhere in Seed.
func (p *Project) SetArguments(arguments string) {
	p.arguments = arguments
}
