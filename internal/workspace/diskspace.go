package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
)

// FilesSize sums the sizes of the mod files at rels under modDir. Missing
// files count as empty.
func FilesSize(modDir string, rels []string) int64 {
	var total int64
	for _, rel := range rels {
		if info, err := os.Stat(filepath.Join(modDir, filepath.FromSlash(rel))); err == nil {
			total += info.Size()
		}
	}
	return total
}

// CheckDiskSpace verifies that the volume holding dir has room for needed
// bytes. A volume that cannot be queried passes with a warning.
func CheckDiskSpace(dir string, needed int64, logger hclog.Logger) error {
	available, err := availableDiskSpace(dir)
	if err != nil {
		logger.Warn("⚠️ Could not check disk space", "dir", dir, "error", err)
		return nil
	}

	neededMB := float64(needed) / (1024 * 1024)
	availableMB := float64(available) / (1024 * 1024)
	logger.Debug("💾 Disk space check", "needed_mb", fmt.Sprintf("%.2f", neededMB), "available_mb", fmt.Sprintf("%.2f", availableMB))

	if available < needed {
		return fmt.Errorf("%w: need %.2f MB, have %.2f MB in %s", rerrors.ErrInsufficientSpace, neededMB, availableMB, dir)
	}
	return nil
}
