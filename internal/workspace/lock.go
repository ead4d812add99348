package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
)

// LockFileName is created in the mod directory while a run owns it.
const LockFileName = ".reslot.lock"

// Lock is a held session lock.
type Lock struct {
	path   string
	logger hclog.Logger
}

// Acquire takes the session lock of modDir. A lock left by a process that
// is no longer running is removed first.
func Acquire(modDir string, logger hclog.Logger) (*Lock, error) {
	lockPath := filepath.Join(modDir, LockFileName)

	if data, err := os.ReadFile(lockPath); err == nil {
		logger.Debug("🔍 Lock file exists, checking if it's stale...")
		contents := strings.TrimSpace(string(data))
		if oldPid, err := strconv.Atoi(contents); err == nil {
			if processRunning(oldPid) {
				logger.Debug("🔒 Lock held by active process", "pid", oldPid)
				return nil, fmt.Errorf("%w: %s (pid %d)", rerrors.ErrSessionLocked, modDir, oldPid)
			}
			logger.Info("🧹 Removing stale lock from dead process", "pid", oldPid)
		} else {
			logger.Info("🧹 Removing invalid lock file (couldn't parse PID)")
		}
		os.Remove(lockPath)
	} else if !os.IsNotExist(err) {
		logger.Info("🧹 Removing unreadable lock file")
		os.Remove(lockPath)
	}

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", rerrors.ErrSessionLocked, modDir)
		}
		return nil, fmt.Errorf("%w: %v", rerrors.ErrInvalidModDir, err)
	}
	defer file.Close()

	pid := os.Getpid()
	if _, err := fmt.Fprintf(file, "%d\n", pid); err != nil {
		os.Remove(lockPath)
		return nil, err
	}

	logger.Debug("🔒 Acquired session lock", "pid", pid, "path", lockPath)
	return &Lock{path: lockPath, logger: logger}, nil
}

// Path is the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the lock file.
func (l *Lock) Release() {
	if err := os.Remove(l.path); err != nil {
		l.logger.Debug("⚠️ Failed to remove lock file", "error", err)
		return
	}
	l.logger.Debug("🔓 Released session lock")
}
