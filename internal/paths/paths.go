// Package paths resolves the directories and files Seed reads and writes.
//
// All locations derive from two roots: the config directory (settings)
// and the data directory (registry, history, engines, logs). Setting
// SEED_HOME collapses both roots under a single directory, which keeps
// tests hermetic and lets several installations live side by side.
package paths

import (
	"os"
	"path/filepath"
)

// EnvHome is the environment variable that overrides every Seed
// directory when set.
const EnvHome = "SEED_HOME"

// ConfigDir returns the directory holding config.yaml.
//
// Resolution order:
//  1. $SEED_HOME/config
//  2. ~/.config/seed
//  3. .seed (when the home directory cannot be determined)
func ConfigDir() string {
	if root := os.Getenv(EnvHome); root != "" {
		return filepath.Join(root, "config")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".seed"
	}
	return filepath.Join(home, ".config", "seed")
}

// DataDir returns the directory holding Seed's mutable state: the
// project registry, run history, installed engines, and logs.
//
// Resolution order:
//  1. $SEED_HOME/data
//  2. ~/.local/share/seed
//  3. .seed (when the home directory cannot be determined)
func DataDir() string {
	if root := os.Getenv(EnvHome); root != "" {
		return filepath.Join(root, "data")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".seed"
	}
	return filepath.Join(home, ".local", "share", "seed")
}

// DefaultEnginesDir returns the directory scanned for installed engines.
func DefaultEnginesDir() string {
	return filepath.Join(DataDir(), "engines")
}

// DefaultProjectsFile returns the path of the project registry document.
func DefaultProjectsFile() string {
	return filepath.Join(DataDir(), "projects.yaml")
}

// DefaultHistoryDB returns the path of the run-history database.
func DefaultHistoryDB() string {
	return filepath.Join(DataDir(), "history.db")
}

// DefaultLogFile returns the path of the debug log.
func DefaultLogFile() string {
	return filepath.Join(DataDir(), "seed.log")
}

// DefaultConfigFile returns the path of the user-level config file.
func DefaultConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
