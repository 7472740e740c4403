// Package launch starts engine processes for projects. Launched engines are
// detached into their own process group so they outlive the manager.
package launch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/nothingTVatYT/Seed/internal/lifecycle"
	"github.com/nothingTVatYT/Seed/internal/log"
)

// ExecLauncher launches engine binaries with os/exec. It implements
// lifecycle.Launcher.
type ExecLauncher struct{}

// NewExecLauncher creates the default process launcher.
func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{}
}

// Launch starts the engine binary for the given spec and returns once the
// process is running. Only immediate start failures are reported; the engine
// keeps running after the manager exits. The argument text is split on
// whitespace, nothing more.
func (l *ExecLauncher) Launch(ctx context.Context, spec lifecycle.LaunchSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := os.Stat(spec.EngineBinary); err != nil {
		return lifecycle.LaunchError{Binary: spec.EngineBinary, Err: err}
	}

	args := append([]string{"--project", spec.ProjectPath}, strings.Fields(spec.Arguments)...)

	// #nosec G204 -- binary comes from the engine registry, args from the project record
	cmd := exec.Command(spec.EngineBinary, args...)
	cmd.Dir = spec.ProjectPath
	detach(cmd)

	log.Debug(log.CatLaunch, "starting engine",
		"binary", spec.EngineBinary,
		"project", spec.ProjectPath,
		"args", spec.Arguments)

	if err := cmd.Start(); err != nil {
		return lifecycle.LaunchError{Binary: spec.EngineBinary, Err: err}
	}

	log.Info(log.CatLaunch, "engine started",
		"binary", spec.EngineBinary,
		"project", spec.ProjectPath,
		"pid", cmd.Process.Pid)

	// Reap in the background so the child never zombies while we live.
	go func() {
		err := cmd.Wait()
		switch {
		case err == nil:
			log.Debug(log.CatLaunch, "engine exited", "project", spec.ProjectPath, "pid", cmd.Process.Pid)
		default:
			log.Warn(log.CatLaunch, "engine exited abnormally",
				"project", spec.ProjectPath,
				"pid", cmd.Process.Pid,
				"err", err.Error())
		}
	}()

	return nil
}

// OpenFolder reveals a directory in the platform file manager. It implements
// lifecycle.FolderOpener.
type OpenFolder struct{}

// NewOpenFolder creates the platform folder opener.
func NewOpenFolder() *OpenFolder {
	return &OpenFolder{}
}

// Open launches the file manager on path and does not wait for it.
func (OpenFolder) Open(path string) error {
	name, args := openCommand(path)
	if name == "" {
		return fmt.Errorf("no file manager available on this platform")
	}
	// #nosec G204 -- command name is a platform constant, path comes from the store
	cmd := exec.Command(name, args...)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
