// Package buildcache manages the per-project engine build cache on disk.
// Engines materialize compiled assets under <project>/.seed/cache; clearing
// it is always safe because the engine rebuilds on next launch.
package buildcache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nothingTVatYT/Seed/internal/log"
)

// Dir returns the build cache directory for a project.
func Dir(projectPath string) string {
	return filepath.Join(projectPath, ".seed", "cache")
}

// Cleaner removes build caches. It implements lifecycle.CacheCleaner.
type Cleaner struct{}

// NewCleaner creates the on-disk cache cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clear deletes the project's build cache directory. A cache that does not
// exist counts as already cleared.
func (Cleaner) Clear(ctx context.Context, projectPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := Dir(projectPath)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clearing build cache for %s: %w", projectPath, err)
	}

	log.Info(log.CatCache, "build cache cleared", "project", projectPath)
	return nil
}

// Size reports the total size in bytes of the project's build cache. A
// missing cache is zero bytes, not an error.
func Size(projectPath string) (int64, error) {
	var total int64
	err := filepath.WalkDir(Dir(projectPath), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("sizing build cache for %s: %w", projectPath, err)
	}
	return total, nil
}
