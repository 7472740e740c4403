package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the descriptor file every project directory carries.
const ManifestFileName = "project.yaml"

// Manifest is the per-directory project descriptor. It travels with the
// project directory so the engine can identify what it is launching; the
// registry document stays authoritative for lifecycle state.
type Manifest struct {
	Name   string `yaml:"name"`
	Engine string `yaml:"engine,omitempty"`
}

// ReadManifest loads the manifest from a project directory. A missing
// manifest surfaces as os.ErrNotExist so callers can fall back to the
// directory name.
func ReadManifest(dir string) (Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// WriteManifest writes the manifest into a project directory.
func WriteManifest(dir string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
