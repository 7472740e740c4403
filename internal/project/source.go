package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nothingTVatYT/Seed/internal/engine"
)

// Source loads and persists the durable project list. Persist must be
// atomic: a crash mid-write never leaves a partially written list behind.
type Source interface {
	Load(ctx context.Context) ([]*Project, error)
	Persist(ctx context.Context, projects []*Project) error
}

// documentVersion is bumped when the on-disk shape changes.
const documentVersion = 1

type document struct {
	Version  int      `yaml:"version"`
	Projects []record `yaml:"projects"`
}

type record struct {
	Name      string `yaml:"name"`
	Path      string `yaml:"path"`
	Engine    string `yaml:"engine"`
	Template  bool   `yaml:"template,omitempty"`
	Arguments string `yaml:"arguments,omitempty"`
}

// FileSource persists the project list as a YAML document, written with a
// temp-file-plus-rename so the previous file survives any failed write.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the backing file location.
func (f *FileSource) Path() string {
	return f.path
}

// Load reads the persisted project list. A missing file means no projects
// are registered yet; that is not an error.
func (f *FileSource) Load(ctx context.Context) ([]*Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	if doc.Version > documentVersion {
		return nil, fmt.Errorf("%s: file version %d is newer than this build supports", f.path, doc.Version)
	}

	projects := make([]*Project, 0, len(doc.Projects))
	for _, r := range doc.Projects {
		v, err := engine.ParseVersion(r.Engine)
		if err != nil {
			return nil, fmt.Errorf("%s: project %q: %w", f.path, r.Path, err)
		}
		projects = append(projects, Reconstitute(r.Name, r.Path, v, r.Template, r.Arguments))
	}
	return projects, nil
}

// Persist writes the full project list. Field values and order round-trip
// exactly through Load.
func (f *FileSource) Persist(ctx context.Context, projects []*Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := document{Version: documentVersion, Projects: make([]record, 0, len(projects))}
	for _, p := range projects {
		doc.Projects = append(doc.Projects, record{
			Name:      p.Name(),
			Path:      p.Path(),
			Engine:    p.EngineVersion().String(),
			Template:  p.IsTemplate(),
			Arguments: p.Arguments(),
		})
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling projects: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating projects directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".projects.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, f.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
