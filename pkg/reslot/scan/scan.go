// Package scan inspects a mod directory: whether it looks like a mod, which
// files it carries and which fighters and slots they belong to.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
	"github.com/provide-io/reslot/pkg/reslot/fighters"
)

// modRoots are the top-level folders that mark a directory as a mod.
var modRoots = []string{"fighter", "sound", "ui"}

// IsValidMod reports whether dir has at least one mod root folder.
func IsValidMod(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		for _, root := range modRoots {
			if strings.EqualFold(e.Name(), root) {
				return true
			}
		}
	}
	return false
}

// ListModFiles returns every file below the top-level folders of dir as
// forward-slash paths relative to dir, in lexical walk order. Files directly
// in dir (info.toml, config.json) are not part of the list.
func ListModFiles(dir string) ([]string, error) {
	if !IsValidMod(dir) {
		return nil, fmt.Errorf("%w: %s", rerrors.ErrInvalidModDir, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rerrors.ErrInvalidModDir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		top := filepath.Join(dir, e.Name())
		err := filepath.WalkDir(top, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(dir, p)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", top, err)
		}
	}
	return files, nil
}

// Discovery lists fighters and slot names found in a mod.
type Discovery struct {
	Fighters []string
	Slots    []string
}

func (d *Discovery) addFighter(name string) {
	for _, f := range d.Fighters {
		if f == name {
			return
		}
	}
	d.Fighters = append(d.Fighters, name)
}

func (d *Discovery) addSlot(name string) {
	for _, s := range d.Slots {
		if s == name {
			return
		}
	}
	d.Slots = append(d.Slots, name)
}

// Discover finds the fighters of modDir and their slots. With a non-empty
// fighter only that fighter's slots are collected; with an empty one the
// result also offers fighters.All.
//
// Fighter folders are preferred; mods without them are read from UI file
// names, then from sound bank file names.
func Discover(modDir, fighter string) (*Discovery, error) {
	if !IsValidMod(modDir) {
		return nil, fmt.Errorf("%w: %s", rerrors.ErrInvalidModDir, modDir)
	}

	d := &Discovery{}
	fighterDir := filepath.Join(modDir, "fighter")
	uiDir := filepath.Join(modDir, "ui")
	soundDir := filepath.Join(modDir, "sound", "bank")

	var err error
	switch {
	case isDir(fighterDir):
		d.fromFolders(fighterDir, fighter)
	case isDir(uiDir):
		err = d.fromFiles(subdirs(uiDir), fighter)
	case isDir(soundDir):
		err = d.fromFiles(subdirs(soundDir), fighter)
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(d.Fighters)
	if fighter == "" {
		d.Fighters = append(d.Fighters, fighters.All)
	}
	return d, nil
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out
}

// fromFolders reads fighter/<name>/{model,motion}/<part>/<slot>.
func (d *Discovery) fromFolders(fighterDir, fighter string) {
	for _, folder := range subdirs(fighterDir) {
		name := filepath.Base(folder)
		if fighter != "" && name != fighter {
			continue
		}
		if name == "common" {
			continue
		}
		d.addFighter(name)
		for _, group := range []string{"model", "motion"} {
			for _, part := range subdirs(filepath.Join(folder, group)) {
				for _, s := range subdirs(part) {
					d.addSlot(filepath.Base(s))
				}
			}
		}
	}
}

// fromFiles reads "<prefix>_<fighter>_<slot>.<ext>" file names. UI replace
// folders are read through their chara subfolders.
func (d *Discovery) fromFiles(folders []string, fighter string) error {
	for _, folder := range folders {
		base := filepath.Base(folder)
		if base == "replace" || base == "replace_patch" {
			if err := d.fromFiles(subdirs(filepath.Join(folder, "chara")), fighter); err != nil {
				return err
			}
			continue
		}

		err := filepath.WalkDir(folder, func(p string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			name, s, ok := ParseFileName(entry.Name())
			if !ok || (fighter != "" && name != fighter) {
				return nil
			}
			d.addFighter(name)
			d.addSlot(s)
			return nil
		})
		if err != nil {
			return fmt.Errorf("walking %s: %w", folder, err)
		}
	}
	return nil
}

// ParseFileName extracts the fighter and slot from a file name of the form
// "<prefix>_<fighter>_<slot>.<ext>". A slot without the "c" prefix gets one.
func ParseFileName(file string) (fighter, slotName string, ok bool) {
	last := strings.LastIndex(file, "_")
	if last <= 0 {
		return "", "", false
	}
	prev := strings.LastIndex(file[:last], "_")
	if prev < 0 {
		return "", "", false
	}
	fighter = file[prev+1 : last]
	slotName = file[last+1:]
	if dot := strings.Index(slotName, "."); dot >= 0 {
		slotName = slotName[:dot]
	}
	if fighter == "" || slotName == "" {
		return "", "", false
	}
	if !strings.Contains(slotName, "c") {
		slotName = "c" + slotName
	}
	return fighter, slotName, true
}
