//go:build !windows

package workspace

import "golang.org/x/sys/unix"

// processRunning probes pid with signal 0.
func processRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || err == unix.EPERM
}
