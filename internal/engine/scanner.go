package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nothingTVatYT/Seed/internal/log"
)

// Scanner discovers installed engines under a root directory.
//
// Expected layout: <root>/<version>/seed-engine. Entries whose name does not
// parse as a version, and directories missing the engine binary, are skipped.
type Scanner struct {
	root string
}

// NewScanner creates a scanner over the engines directory.
func NewScanner(root string) *Scanner {
	return &Scanner{root: root}
}

// Root returns the directory being scanned.
func (s *Scanner) Root() string {
	return s.root
}

// Scan reads the engines directory once and returns every install found.
// A missing root directory means no engines are installed; that is not an
// error.
func (s *Scanner) Scan() ([]Engine, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading engines dir %s: %w", s.root, err)
	}

	var found []Engine
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		version, err := ParseVersion(entry.Name())
		if err != nil {
			log.Debug(log.CatEngine, "skipping non-version dir", "name", entry.Name())
			continue
		}

		installPath := filepath.Join(s.root, entry.Name())
		info, err := os.Stat(filepath.Join(installPath, BinaryName))
		if err != nil || !info.Mode().IsRegular() {
			log.Debug(log.CatEngine, "skipping dir without engine binary", "name", entry.Name())
			continue
		}

		found = append(found, NewEngine(version, installPath, info.ModTime()))
	}
	return found, nil
}
