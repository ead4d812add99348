// Package ui holds the post-processing steps that touch character-select
// assets: portrait renaming and the character database patch.
package ui

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/provide-io/reslot/pkg/reslot/fighters"
)

// Portrait roots, relative to the mod directory. Files under the patch root
// are moved into the replace root when renamed.
const (
	ReplaceRoot      = "ui/replace"
	ReplacePatchRoot = "ui/replace_patch"
)

// Rename is one portrait moved by RedirectNames.
type Rename struct {
	From string
	To   string
}

// RedirectNames renames the portraits of fighter under targetDir to
// newName, numbering them from start within each folder.
func RedirectNames(targetDir, fighter, newName string, start int) ([]Rename, error) {
	if newName == "" {
		return nil, fmt.Errorf("redirect name is empty")
	}
	keys := fighters.UIKeys(fighter)

	byDir := map[string][]string{}
	var dirs []string
	for _, root := range []string{ReplaceRoot, ReplacePatchRoot} {
		rootDir := filepath.Join(targetDir, filepath.FromSlash(root))
		if info, err := os.Stat(rootDir); err != nil || !info.IsDir() {
			continue
		}
		err := filepath.WalkDir(rootDir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			dir := filepath.Dir(p)
			if _, seen := byDir[dir]; !seen {
				dirs = append(dirs, dir)
			}
			byDir[dir] = append(byDir[dir], d.Name())
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", rootDir, err)
		}
	}

	var renames []Rename
	for _, dir := range dirs {
		names := byDir[dir]
		sort.Strings(names)
		next := start
		for _, name := range names {
			renamed, ok := redirectName(name, keys, newName, next)
			if !ok {
				continue
			}
			next++

			destDir, err := destinationDir(targetDir, dir)
			if err != nil {
				return renames, err
			}
			r := Rename{From: filepath.Join(dir, name), To: filepath.Join(destDir, renamed)}
			if err := move(r.From, r.To); err != nil {
				return renames, err
			}
			renames = append(renames, r)
		}
	}
	return renames, nil
}

// redirectName maps "chara_0_<key>_03.bntx" to "chara_0_<newName>_<NN>.bntx".
func redirectName(name string, keys []string, newName string, n int) (string, bool) {
	for _, key := range keys {
		marker := "_" + key + "_"
		if !strings.Contains(name, marker) {
			continue
		}
		replaced := strings.Replace(name, marker, "_"+newName+"_", 1)
		at := strings.Index(replaced, newName+"_")
		return fmt.Sprintf("%s%s_%02d.bntx", replaced[:at], newName, n), true
	}
	return "", false
}

func destinationDir(targetDir, dir string) (string, error) {
	rel, err := filepath.Rel(targetDir, dir)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ReplacePatchRoot || strings.HasPrefix(rel, ReplacePatchRoot+"/") {
		rel = ReplaceRoot + strings.TrimPrefix(rel, ReplacePatchRoot)
	}
	return filepath.Join(targetDir, filepath.FromSlash(rel)), nil
}

// move renames from to to, copying when a rename is not possible.
func move(from, to string) error {
	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(to), err)
	}
	if err := os.Rename(from, to); err == nil {
		return nil
	}

	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(to)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copying %s: %w", from, err)
	}
	if err := dst.Close(); err != nil {
		return err
	}
	src.Close()
	return os.Remove(from)
}
