package launch_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nothingTVatYT/Seed/internal/launch"
	"github.com/nothingTVatYT/Seed/internal/lifecycle"
)

// writeEngineScript installs a fake engine binary that runs the given shell
// body with the project directory as its working directory.
func writeEngineScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "seed-engine")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin
}

func waitForFile(t *testing.T, path string) string {
	t.Helper()
	var content string
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		if err != nil {
			return false
		}
		content = string(data)
		return true
	}, 2*time.Second, 10*time.Millisecond, "engine never wrote %s", path)
	return content
}

func TestExecLauncher_StartsEngineWithProjectAndArguments(t *testing.T) {
	bin := writeEngineScript(t, `echo "$@" > args.txt`)
	projectDir := t.TempDir()

	err := launch.NewExecLauncher().Launch(context.Background(), lifecycle.LaunchSpec{
		EngineBinary: bin,
		ProjectPath:  projectDir,
		Arguments:    "--fullscreen --seed=7",
	})
	require.NoError(t, err)

	got := strings.TrimSpace(waitForFile(t, filepath.Join(projectDir, "args.txt")))
	require.Equal(t, "--project "+projectDir+" --fullscreen --seed=7", got)
}

func TestExecLauncher_EmptyArgumentText(t *testing.T) {
	bin := writeEngineScript(t, `echo "$#" > count.txt`)
	projectDir := t.TempDir()

	err := launch.NewExecLauncher().Launch(context.Background(), lifecycle.LaunchSpec{
		EngineBinary: bin,
		ProjectPath:  projectDir,
	})
	require.NoError(t, err)

	got := strings.TrimSpace(waitForFile(t, filepath.Join(projectDir, "count.txt")))
	require.Equal(t, "2", got, "just --project and the path")
}

func TestExecLauncher_MissingBinary(t *testing.T) {
	projectDir := t.TempDir()

	err := launch.NewExecLauncher().Launch(context.Background(), lifecycle.LaunchSpec{
		EngineBinary: filepath.Join(projectDir, "does-not-exist"),
		ProjectPath:  projectDir,
	})

	var launchErr lifecycle.LaunchError
	require.ErrorAs(t, err, &launchErr)
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.Contains(t, launchErr.Binary, "does-not-exist")
}

func TestExecLauncher_NotExecutable(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "seed-engine")
	require.NoError(t, os.WriteFile(bin, []byte("not a program"), 0o644))

	err := launch.NewExecLauncher().Launch(context.Background(), lifecycle.LaunchSpec{
		EngineBinary: bin,
		ProjectPath:  t.TempDir(),
	})

	var launchErr lifecycle.LaunchError
	require.ErrorAs(t, err, &launchErr)
}

func TestExecLauncher_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := launch.NewExecLauncher().Launch(ctx, lifecycle.LaunchSpec{
		EngineBinary: "/bin/true",
		ProjectPath:  t.TempDir(),
	})
	require.ErrorIs(t, err, context.Canceled)
}
