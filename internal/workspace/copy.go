package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
)

// Extras are the mod metadata files carried into a new output directory.
var Extras = []string{"info.toml", "preview.webp"}

// Copier copies mod files into an output directory.
type Copier struct {
	ModDir string
	Logger hclog.Logger
}

// Copy copies ModDir/rel to outputRoot/newRel, creating parent directories.
func (c *Copier) Copy(rel, outputRoot, newRel string) error {
	src := filepath.Join(c.ModDir, filepath.FromSlash(rel))
	dst := filepath.Join(outputRoot, filepath.FromSlash(newRel))
	if err := os.MkdirAll(filepath.Dir(dst), DirPerms); err != nil {
		return fmt.Errorf("%w: %s: %v", rerrors.ErrCopyFailed, newRel, err)
	}
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", rerrors.ErrCopyFailed, rel, err)
	}
	if c.Logger != nil {
		c.Logger.Trace("💾 Copied", "from", rel, "to", newRel)
	}
	return nil
}

// CopyExtras copies the Extras present in modDir to targetDir and returns
// the names copied.
func CopyExtras(modDir, targetDir string) ([]string, error) {
	var copied []string
	for _, name := range Extras {
		src := filepath.Join(modDir, name)
		if info, err := os.Stat(src); err != nil || info.IsDir() {
			continue
		}
		if err := copyFile(src, filepath.Join(targetDir, name)); err != nil {
			return copied, fmt.Errorf("copying %s: %w", name, err)
		}
		copied = append(copied, name)
	}
	return copied, nil
}

// copyFile copies a single file from src to dst
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	sourceInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, sourceInfo.Mode())
}
