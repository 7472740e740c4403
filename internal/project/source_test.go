package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/nothingTVatYT/Seed/internal/engine"
)

func TestFileSource_LoadMissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "projects.yaml"))

	projects, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, projects)
}

func TestFileSource_PersistThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed", "projects.yaml")
	src := NewFileSource(path)
	ctx := context.Background()

	in := []*Project{
		Reconstitute("Shooter", "/home/dev/shooter", engine.MustParseVersion("1.2.0"), false, "--fullscreen"),
		Reconstitute("Base Template", "/home/dev/base", engine.MustParseVersion("1.0.0-beta2"), true, ""),
	}
	require.NoError(t, src.Persist(ctx, in))

	out, err := src.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for i := range in {
		require.Equal(t, in[i].Name(), out[i].Name())
		require.Equal(t, in[i].Path(), out[i].Path())
		require.Equal(t, in[i].EngineVersion(), out[i].EngineVersion())
		require.Equal(t, in[i].IsTemplate(), out[i].IsTemplate())
		require.Equal(t, in[i].Arguments(), out[i].Arguments())
	}
}

func TestFileSource_PersistLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	src := NewFileSource(filepath.Join(dir, "projects.yaml"))

	require.NoError(t, src.Persist(context.Background(), []*Project{
		Reconstitute("x", "/p/x", engine.MustParseVersion("1.0.0"), false, ""),
	}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "projects.yaml", entries[0].Name())
}

func TestFileSource_PersistFailureKeepsNothing(t *testing.T) {
	dir := t.TempDir()
	// The parent of the target is a regular file, so the write cannot start.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o644))

	src := NewFileSource(filepath.Join(blocker, "projects.yaml"))
	err := src.Persist(context.Background(), nil)
	require.Error(t, err)
}

func TestFileSource_LoadRejectsNewerFileVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 99\nprojects: []\n"), 0o644))

	_, err := NewFileSource(path).Load(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "newer than this build")
}

func TestFileSource_LoadRejectsCorruptYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	_, err := NewFileSource(path).Load(context.Background())
	require.Error(t, err)
}

func TestFileSource_LoadRejectsBadEngineVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	content := strings.Join([]string{
		"version: 1",
		"projects:",
		"  - name: broken",
		"    path: /p/broken",
		"    engine: not-a-version",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := NewFileSource(path).Load(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "/p/broken")
}

func TestFileSource_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		dir := t.TempDir()
		src := NewFileSource(filepath.Join(dir, "projects.yaml"))
		ctx := context.Background()

		count := rapid.IntRange(0, 8).Draw(r, "count")
		in := make([]*Project, 0, count)
		for i := 0; i < count; i++ {
			version := fmt.Sprintf("%d.%d.%d",
				rapid.IntRange(0, 9).Draw(r, "major"),
				rapid.IntRange(0, 20).Draw(r, "minor"),
				rapid.IntRange(0, 20).Draw(r, "patch"))
			if rapid.Bool().Draw(r, "tagged") {
				version += "-" + rapid.StringMatching(`[a-z][a-z0-9]{0,5}`).Draw(r, "tag")
			}
			in = append(in, Reconstitute(
				rapid.StringMatching(`[A-Za-z0-9 _-]{0,16}`).Draw(r, "name"),
				fmt.Sprintf("/projects/%d-%s", i, rapid.StringMatching(`[a-z]{1,8}`).Draw(r, "slug")),
				engine.MustParseVersion(version),
				rapid.Bool().Draw(r, "template"),
				rapid.StringMatching(`[ -~]{0,24}`).Draw(r, "arguments"),
			))
		}

		require.NoError(t, src.Persist(ctx, in))
		out, err := src.Load(ctx)
		require.NoError(t, err)
		require.Len(t, out, len(in))

		for i := range in {
			require.Equal(t, in[i].Name(), out[i].Name())
			require.Equal(t, in[i].Path(), out[i].Path())
			require.Equal(t, in[i].EngineVersion(), out[i].EngineVersion())
			require.Equal(t, in[i].IsTemplate(), out[i].IsTemplate())
			require.Equal(t, in[i].Arguments(), out[i].Arguments())
		}
	})
}

func TestFileSource_PersistOverwritesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	src := NewFileSource(path)
	ctx := context.Background()

	first := []*Project{Reconstitute("a", "/p/a", engine.MustParseVersion("1.0.0"), false, "")}
	second := []*Project{Reconstitute("b", "/p/b", engine.MustParseVersion("2.0.0"), false, "")}

	require.NoError(t, src.Persist(ctx, first))
	require.NoError(t, src.Persist(ctx, second))

	out, err := src.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "/p/b", out[0].Path())
}
