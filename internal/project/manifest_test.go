package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	want := Manifest{Name: "platformer", Engine: "1.2.0"}
	require.NoError(t, WriteManifest(dir, want))

	got, err := ReadManifest(dir)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestReadManifest_Missing(t *testing.T) {
	_, err := ReadManifest(t.TempDir())
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadManifest_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte("name: [unterminated"), 0o644))

	_, err := ReadManifest(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing")
}

func TestWriteManifest_OmitsEmptyEngine(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteManifest(dir, Manifest{Name: "bare"}))

	data, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	require.NoError(t, err)
	require.Contains(t, string(data), "name: bare")
	require.NotContains(t, string(data), "engine")
}
