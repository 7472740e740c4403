package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nothingTVatYT/Seed/internal/watcher"
)

func newTestWatcher(t *testing.T, root string) (*watcher.Watcher, <-chan struct{}) {
	t.Helper()
	w, err := watcher.New(watcher.Config{Root: root, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	changes, err := w.Start()
	require.NoError(t, err)
	return w, changes
}

func TestWatcher_SignalsOnNewInstall(t *testing.T) {
	root := t.TempDir()
	_, changes := newTestWatcher(t, root)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "1.0.0"), 0o755))

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change signal after creating an install dir")
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	root := t.TempDir()
	_, changes := newTestWatcher(t, root)

	// An unpacking install touches the directory many times in a row.
	for i := 0; i < 10; i++ {
		name := filepath.Join(root, fmt.Sprintf("file%d", i))
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("expected one change signal for the burst")
	}

	select {
	case <-changes:
		t.Fatal("burst should coalesce into a single signal")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_SignalsOnRemoval(t *testing.T) {
	root := t.TempDir()
	install := filepath.Join(root, "2.0.0")
	require.NoError(t, os.MkdirAll(install, 0o755))

	_, changes := newTestWatcher(t, root)

	require.NoError(t, os.RemoveAll(install))

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change signal after removing an install dir")
	}
}

func TestWatcher_IgnoresDotfiles(t *testing.T) {
	root := t.TempDir()
	_, changes := newTestWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, ".DS_Store"), []byte("junk"), 0o644))

	select {
	case <-changes:
		t.Fatal("dotfile writes should not signal")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_MissingRootFailsStart(t *testing.T) {
	w, err := watcher.New(watcher.Config{Root: filepath.Join(t.TempDir(), "absent")})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.Error(t, err)
}
