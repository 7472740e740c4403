package testutil

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nothingTVatYT/Seed/internal/engine"
	"github.com/nothingTVatYT/Seed/internal/project"
)

// Workspace is the materialized result of a Builder: a complete Seed
// environment rooted in a test temp directory.
type Workspace struct {
	Root         string
	EnginesDir   string
	ProjectsFile string

	// ProjectPaths maps fixture names to their directories.
	ProjectPaths map[string]string
}

// Path returns the directory of the named project fixture.
func (w *Workspace) Path(name string) string {
	return w.ProjectPaths[name]
}

// Builder accumulates engines and projects and materializes them on disk in
// the correct order: engine installs, project directories, projects file.
type Builder struct {
	t        *testing.T
	root     string
	engines  []string
	projects []projectData
}

// NewBuilder creates a builder rooted in a fresh temp directory.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t, root: t.TempDir()}
}

// WithEngine installs an engine fixture of the given version.
func (b *Builder) WithEngine(version string) *Builder {
	b.engines = append(b.engines, version)
	return b
}

// WithProject adds a project fixture with optional configuration.
func (b *Builder) WithProject(name string, opts ...ProjectOption) *Builder {
	p := defaultProject(name)
	for _, opt := range opts {
		opt(&p)
	}
	b.projects = append(b.projects, p)
	return b
}

// Build materializes all accumulated fixtures.
func (b *Builder) Build() *Workspace {
	b.t.Helper()

	w := &Workspace{
		Root:         b.root,
		EnginesDir:   filepath.Join(b.root, "engines"),
		ProjectsFile: filepath.Join(b.root, "projects.yaml"),
		ProjectPaths: make(map[string]string, len(b.projects)),
	}

	require.NoError(b.t, os.MkdirAll(w.EnginesDir, 0o755))
	for _, version := range b.engines {
		b.installEngine(w.EnginesDir, version)
	}

	entities := make([]*project.Project, 0, len(b.projects))
	for _, p := range b.projects {
		dir := b.materializeProject(p)
		w.ProjectPaths[p.name] = dir
		entities = append(entities, project.Reconstitute(
			p.name, dir, engine.MustParseVersion(p.version), p.template, p.arguments,
		))
	}

	source := project.NewFileSource(w.ProjectsFile)
	require.NoError(b.t, source.Persist(context.Background(), entities))

	return w
}

func (b *Builder) installEngine(enginesDir, version string) {
	b.t.Helper()
	dir := filepath.Join(enginesDir, version)
	require.NoError(b.t, os.MkdirAll(dir, 0o755))
	script := "#!/bin/sh\nexit 0\n"
	require.NoError(b.t, os.WriteFile(filepath.Join(dir, engine.BinaryName), []byte(script), 0o755))
}

func (b *Builder) materializeProject(p projectData) string {
	b.t.Helper()
	dir := filepath.Join(b.root, "projects", p.name)
	require.NoError(b.t, os.MkdirAll(dir, 0o755))

	manifest := fmt.Sprintf("name: %s\nengine: %s\n", p.name, p.version)
	require.NoError(b.t, os.WriteFile(filepath.Join(dir, "project.yaml"), []byte(manifest), 0o644))

	switch {
	case p.icon:
		b.writeIcon(dir)
	case p.brokenIcon:
		require.NoError(b.t, os.WriteFile(filepath.Join(dir, project.IconFileName), []byte("not a png"), 0o644))
	}

	if p.cacheFiles > 0 {
		cacheDir := filepath.Join(dir, ".seed", "cache")
		require.NoError(b.t, os.MkdirAll(cacheDir, 0o755))
		for i := range p.cacheFiles {
			name := filepath.Join(cacheDir, fmt.Sprintf("chunk-%03d.bin", i))
			require.NoError(b.t, os.WriteFile(name, []byte("cached"), 0o644))
		}
	}

	return dir
}

func (b *Builder) writeIcon(dir string) {
	b.t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 1, color.RGBA{G: 255, A: 255})

	f, err := os.Create(filepath.Join(dir, project.IconFileName))
	require.NoError(b.t, err)
	require.NoError(b.t, png.Encode(f, img))
	require.NoError(b.t, f.Close())
}
