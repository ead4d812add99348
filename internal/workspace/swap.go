package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// BackupSuffix names the folder holding the old mod contents during Swap.
const BackupSuffix = " (Backup)"

// Swap replaces the contents of modDir with those of tempDir and removes
// tempDir. Entries of modDir named in keep survive. The old contents are
// parked in a backup folder first; when a move fails, every moved entry is
// put back and tempDir is left in place.
func Swap(tempDir, modDir string, logger hclog.Logger, keep ...string) error {
	logger.Debug("Replacing mod contents", "source", tempDir, "dest", modDir)

	kept := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		kept[k] = struct{}{}
	}

	incoming, err := entryNames(tempDir, kept)
	if err != nil {
		return err
	}
	outgoing, err := entryNames(modDir, kept)
	if err != nil {
		return err
	}

	backupDir := modDir + BackupSuffix
	if _, err := os.Stat(backupDir); err == nil {
		return fmt.Errorf("backup %s is left from an earlier run", backupDir)
	}
	if err := os.MkdirAll(backupDir, DirPerms); err != nil {
		return fmt.Errorf("failed to create %s: %w", backupDir, err)
	}

	parked, err := moveEntries(outgoing, modDir, backupDir)
	if err != nil {
		restore(logger, parked, backupDir, modDir)
		os.Remove(backupDir)
		return err
	}

	placed, err := moveEntries(incoming, tempDir, modDir)
	if err != nil {
		restore(logger, placed, modDir, tempDir)
		restore(logger, parked, backupDir, modDir)
		os.Remove(backupDir)
		return err
	}

	if err := os.RemoveAll(backupDir); err != nil {
		logger.Warn("⚠️ Failed to remove backup", "dir", backupDir, "error", err)
	}
	if err := os.RemoveAll(tempDir); err != nil {
		logger.Warn("⚠️ Failed to remove scratch output", "dir", tempDir, "error", err)
	}

	logger.Info("✅ Mod contents replaced", "source", tempDir, "dest", modDir)
	return nil
}

func entryNames(dir string, skip map[string]struct{}) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if _, ok := skip[e.Name()]; !ok {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// moveEntries renames names from one directory to another and returns the
// names moved before any failure.
func moveEntries(names []string, from, to string) ([]string, error) {
	var moved []string
	for _, name := range names {
		if err := os.Rename(filepath.Join(from, name), filepath.Join(to, name)); err != nil {
			return moved, fmt.Errorf("failed to move %s: %w", name, err)
		}
		moved = append(moved, name)
	}
	return moved, nil
}

func restore(logger hclog.Logger, names []string, from, to string) {
	if _, err := moveEntries(names, from, to); err != nil {
		logger.Error("❌ Failed to restore entries", "from", from, "to", to, "error", err)
	}
}
