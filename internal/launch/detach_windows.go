//go:build windows

package launch

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// detach starts the child in its own process group so closing the manager
// console never kills a running engine.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP,
	}
}

// openCommand picks the file manager command for this platform.
func openCommand(path string) (string, []string) {
	return "explorer", []string{path}
}
