// Package workspace manages the directories a reslot run writes to: the
// output directory policy, the session lock and file copies.
package workspace

import (
	"fmt"
	"os"
	"strings"
)

// DirPerms is the mode of directories created for output.
const DirPerms = 0o755

// TempSuffix names the scratch copy that replaces the mod on success.
const TempSuffix = " (Temp)"

// cloneNameMaps is how many mappings make up a clone directory name.
const cloneNameMaps = 4

// Mode selects where a run writes.
type Mode int

const (
	// ModeInPlace writes only config.json into the mod directory.
	ModeInPlace Mode = iota
	// ModeClone writes into a new sibling directory named after the maps.
	ModeClone
	// ModeReplace writes into a temporary sibling swapped over the mod.
	ModeReplace
)

func (m Mode) String() string {
	switch m {
	case ModeInPlace:
		return "in-place"
	case ModeClone:
		return "clone"
	case ModeReplace:
		return "replace"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// TargetDir returns the output directory of a run over modDir. maps are the
// raw mapping arguments; a clone is named "<mod> (c00 c10 c01 c11)".
func TargetDir(modDir string, mode Mode, maps []string) string {
	switch mode {
	case ModeInPlace:
		return modDir
	case ModeClone:
		if len(maps) > cloneNameMaps {
			maps = maps[:cloneNameMaps]
		}
		name := strings.TrimSpace(strings.ReplaceAll(strings.Join(maps, " "), "=", " "))
		return fmt.Sprintf("%s (%s)", modDir, name)
	default:
		return modDir + TempSuffix
	}
}

// Prepare creates dir and its parents.
func Prepare(dir string) error {
	if err := os.MkdirAll(dir, DirPerms); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}
