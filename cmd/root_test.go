package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nothingTVatYT/Seed/internal/app"
	"github.com/nothingTVatYT/Seed/internal/config"
	"github.com/nothingTVatYT/Seed/internal/engine"
	"github.com/nothingTVatYT/Seed/internal/lifecycle"
	"github.com/nothingTVatYT/Seed/internal/project"
	"github.com/nothingTVatYT/Seed/internal/testutil"
)

// testCmdConfig builds a config pointing at a fixture workspace, for tests
// that drive command RunE functions through the package-level cfg.
func testCmdConfig(t *testing.T, ws *testutil.Workspace) config.Config {
	t.Helper()

	c := config.Defaults()
	c.EnginesDir = ws.EnginesDir
	c.ProjectsFile = ws.ProjectsFile
	c.HistoryDB = filepath.Join(t.TempDir(), "history.db")
	c.AutoRefresh = false
	return c
}

func newCmdBackend(t *testing.T, ws *testutil.Workspace) *app.Backend {
	t.Helper()

	b, err := app.NewBackend(testCmdConfig(t, ws))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

// loadPersisted re-reads the registry file after a command closed its
// backend, to check what was actually persisted.
func loadPersisted(t *testing.T, ws *testutil.Workspace) []*project.Project {
	t.Helper()

	loaded, err := project.NewFileSource(ws.ProjectsFile).Load(context.Background())
	require.NoError(t, err)
	return loaded
}

func findByName(projects []*project.Project, name string) *project.Project {
	for _, p := range projects {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

func TestResolveProject_ByPath(t *testing.T) {
	ws := testutil.NewBuilder(t).WithStandardWorkspace().Build()
	b := newCmdBackend(t, ws)

	p, err := resolveProject(b, ws.Path("shooter"))
	require.NoError(t, err)
	require.Equal(t, "shooter", p.Name())
}

func TestResolveProject_ByName(t *testing.T) {
	ws := testutil.NewBuilder(t).WithStandardWorkspace().Build()
	b := newCmdBackend(t, ws)

	p, err := resolveProject(b, "puzzle")
	require.NoError(t, err)
	require.Equal(t, ws.Path("puzzle"), p.Path())
}

func TestResolveProject_RelativePath(t *testing.T) {
	ws := testutil.NewBuilder(t).WithStandardWorkspace().Build()
	b := newCmdBackend(t, ws)

	rel, err := filepath.Rel(ws.Root, ws.Path("shooter"))
	require.NoError(t, err)
	t.Chdir(ws.Root)

	p, err := resolveProject(b, rel)
	require.NoError(t, err)
	require.Equal(t, "shooter", p.Name())
}

func TestResolveProject_Unknown(t *testing.T) {
	ws := testutil.NewBuilder(t).WithStandardWorkspace().Build()
	b := newCmdBackend(t, ws)

	_, err := resolveProject(b, "does-not-exist")
	require.ErrorContains(t, err, "no project registered")
}

func TestPickEngineVersion_DefaultsToNewest(t *testing.T) {
	ws := testutil.NewBuilder(t).WithStandardWorkspace().Build()
	b := newCmdBackend(t, ws)

	v, err := pickEngineVersion(b, "")
	require.NoError(t, err)
	require.Equal(t, engine.MustParseVersion("1.1.0"), v)
}

func TestPickEngineVersion_ExplicitFlag(t *testing.T) {
	ws := testutil.NewBuilder(t).WithStandardWorkspace().Build()
	b := newCmdBackend(t, ws)

	// Pinning to a version that is not installed is allowed; only run and
	// cache operations are gated on it.
	v, err := pickEngineVersion(b, "2.0.0")
	require.NoError(t, err)
	require.Equal(t, engine.MustParseVersion("2.0.0"), v)
}

func TestPickEngineVersion_MalformedFlag(t *testing.T) {
	ws := testutil.NewBuilder(t).WithStandardWorkspace().Build()
	b := newCmdBackend(t, ws)

	_, err := pickEngineVersion(b, "not-a-version")
	require.Error(t, err)
}

func TestPickEngineVersion_NoEnginesInstalled(t *testing.T) {
	ws := testutil.NewBuilder(t).Build()
	b := newCmdBackend(t, ws)

	_, err := pickEngineVersion(b, "")
	var want lifecycle.NoEnginesInstalledError
	require.ErrorAs(t, err, &want)
}

func TestImportCommand_ReadsManifestName(t *testing.T) {
	ws := testutil.NewBuilder(t).WithEngine("1.0.0").Build()
	cfg = testCmdConfig(t, ws)
	t.Cleanup(func() { cfg = config.Config{} })

	dir := filepath.Join(t.TempDir(), "space-shooter")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, project.WriteManifest(dir, project.Manifest{Name: "Space Shooter"}))

	importCmd.SetContext(context.Background())
	require.NoError(t, importCmd.RunE(importCmd, []string{dir}))

	persisted := loadPersisted(t, ws)
	require.Len(t, persisted, 1)
	require.Equal(t, "Space Shooter", persisted[0].Name())
	require.Equal(t, engine.MustParseVersion("1.0.0"), persisted[0].EngineVersion())
}

func TestImportCommand_FallsBackToDirectoryName(t *testing.T) {
	ws := testutil.NewBuilder(t).WithEngine("1.0.0").Build()
	cfg = testCmdConfig(t, ws)
	t.Cleanup(func() { cfg = config.Config{} })

	dir := filepath.Join(t.TempDir(), "bare-project")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	importCmd.SetContext(context.Background())
	require.NoError(t, importCmd.RunE(importCmd, []string{dir}))

	persisted := loadPersisted(t, ws)
	require.Len(t, persisted, 1)
	require.Equal(t, "bare-project", persisted[0].Name())
}

func TestImportCommand_RejectsMissingDirectory(t *testing.T) {
	ws := testutil.NewBuilder(t).WithEngine("1.0.0").Build()
	cfg = testCmdConfig(t, ws)
	t.Cleanup(func() { cfg = config.Config{} })

	importCmd.SetContext(context.Background())
	err := importCmd.RunE(importCmd, []string{filepath.Join(t.TempDir(), "nope")})
	require.ErrorContains(t, err, "checking project directory")
}

func TestNewCommand_CreatesAndRegisters(t *testing.T) {
	ws := testutil.NewBuilder(t).WithEngine("1.0.0").Build()
	cfg = testCmdConfig(t, ws)
	t.Cleanup(func() { cfg = config.Config{} })

	t.Chdir(t.TempDir())
	newCmd.SetContext(context.Background())
	require.NoError(t, newCmd.RunE(newCmd, []string{"fresh-game"}))

	dir, err := filepath.Abs("fresh-game")
	require.NoError(t, err)

	m, err := project.ReadManifest(dir)
	require.NoError(t, err)
	require.Equal(t, "fresh-game", m.Name)
	require.Equal(t, "1.0.0", m.Engine)

	persisted := loadPersisted(t, ws)
	require.Len(t, persisted, 1)
	require.Equal(t, dir, persisted[0].Path())
}

func TestNewCommand_CopiesTemplateDefaults(t *testing.T) {
	ws := testutil.NewBuilder(t).
		WithEngine("1.0.0").
		WithEngine("1.1.0").
		WithProject("starter", testutil.Pinned("1.0.0"), testutil.Template(), testutil.Arguments("--windowed")).
		Build()
	cfg = testCmdConfig(t, ws)
	t.Cleanup(func() { cfg = config.Config{} })

	newTemplateFlag = "starter"
	t.Cleanup(func() { newTemplateFlag = "" })

	t.Chdir(t.TempDir())
	newCmd.SetContext(context.Background())
	require.NoError(t, newCmd.RunE(newCmd, []string{"derived"}))

	created := findByName(loadPersisted(t, ws), "derived")
	require.NotNil(t, created)
	// The template's pin wins over the newest installed engine.
	require.Equal(t, engine.MustParseVersion("1.0.0"), created.EngineVersion())
	require.Equal(t, "--windowed", created.Arguments())
}

func TestNewCommand_RejectsNonTemplate(t *testing.T) {
	ws := testutil.NewBuilder(t).
		WithEngine("1.0.0").
		WithProject("plain", testutil.Pinned("1.0.0")).
		Build()
	cfg = testCmdConfig(t, ws)
	t.Cleanup(func() { cfg = config.Config{} })

	newTemplateFlag = "plain"
	t.Cleanup(func() { newTemplateFlag = "" })

	t.Chdir(t.TempDir())
	newCmd.SetContext(context.Background())
	err := newCmd.RunE(newCmd, []string{"derived"})
	require.ErrorContains(t, err, "not flagged as a template")
}

func TestNewCommand_RejectsExistingDirectory(t *testing.T) {
	ws := testutil.NewBuilder(t).WithEngine("1.0.0").Build()
	cfg = testCmdConfig(t, ws)
	t.Cleanup(func() { cfg = config.Config{} })

	tmp := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmp, "taken"), 0o755))

	t.Chdir(tmp)
	newCmd.SetContext(context.Background())
	err := newCmd.RunE(newCmd, []string{"taken"})
	require.ErrorContains(t, err, "creating project directory")
}
