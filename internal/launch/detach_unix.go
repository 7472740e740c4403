//go:build !windows

package launch

import (
	"os/exec"
	"syscall"
)

// detach puts the child in its own process group so terminal signals sent to
// the manager never reach a running engine.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// openCommand picks the file manager command for this platform.
func openCommand(path string) (string, []string) {
	if _, err := exec.LookPath("xdg-open"); err == nil {
		return "xdg-open", []string{path}
	}
	if _, err := exec.LookPath("open"); err == nil {
		return "open", []string{path}
	}
	return "", nil
}
