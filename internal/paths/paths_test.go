package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedHomeOverridesEveryLocation(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvHome, root)

	require.Equal(t, filepath.Join(root, "config"), ConfigDir())
	require.Equal(t, filepath.Join(root, "data"), DataDir())
	require.Equal(t, filepath.Join(root, "data", "engines"), DefaultEnginesDir())
	require.Equal(t, filepath.Join(root, "data", "projects.yaml"), DefaultProjectsFile())
	require.Equal(t, filepath.Join(root, "data", "history.db"), DefaultHistoryDB())
	require.Equal(t, filepath.Join(root, "data", "seed.log"), DefaultLogFile())
	require.Equal(t, filepath.Join(root, "config", "config.yaml"), DefaultConfigFile())
}

func TestDefaultsDeriveFromHomeDirectory(t *testing.T) {
	t.Setenv(EnvHome, "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, ".config", "seed"), ConfigDir())
	require.Equal(t, filepath.Join(home, ".local", "share", "seed"), DataDir())
}

func TestDerivedPathsShareDataDir(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())

	data := DataDir()
	require.Equal(t, data, filepath.Dir(DefaultEnginesDir()))
	require.Equal(t, data, filepath.Dir(DefaultProjectsFile()))
	require.Equal(t, data, filepath.Dir(DefaultHistoryDB()))
}
