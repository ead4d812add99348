// Package catalog holds the read-only view of the base game: the set of known
// vanilla file paths and the directory-info tree with its flat file array.
package catalog

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
)

// resolveCacheSize bounds the number of memoized dir-info lookups.
const resolveCacheSize = 512

// Catalog answers lookups against the vanilla hash set and directory index.
type Catalog struct {
	known    map[string]struct{}
	root     *DirectoryNode
	files    []string
	resolved *lru.Cache[string, *DirectoryNode]
}

// New wraps already parsed catalog data.
func New(known []string, root *DirectoryNode, files []string) *Catalog {
	set := make(map[string]struct{}, len(known))
	for _, k := range known {
		set[k] = struct{}{}
	}
	if root == nil {
		root = NewDirectoryNode("")
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, *DirectoryNode](resolveCacheSize)
	return &Catalog{
		known:    set,
		root:     root,
		files:    files,
		resolved: cache,
	}
}

// Known reports whether path is a vanilla file.
func (c *Catalog) Known(path string) bool {
	_, ok := c.known[path]
	return ok
}

// KnownCount returns the size of the hash set.
func (c *Catalog) KnownCount() int {
	return len(c.known)
}

// FileCount returns the size of the flat file array.
func (c *Catalog) FileCount() int {
	return len(c.files)
}

// FilePath returns the path stored at index i of the file array.
func (c *Catalog) FilePath(i int) (string, bool) {
	if i < 0 || i >= len(c.files) {
		return "", false
	}
	return c.files[i], true
}

// Root returns the top of the directory-info tree.
func (c *Catalog) Root() *DirectoryNode {
	return c.root
}

// Resolve walks dirInfo ("fighter/mario") from the root.
func (c *Catalog) Resolve(dirInfo string) (*DirectoryNode, error) {
	if node, ok := c.resolved.Get(dirInfo); ok {
		return node, nil
	}
	node := c.root
	for _, segment := range strings.Split(strings.Trim(dirInfo, "/"), "/") {
		if segment == "" {
			continue
		}
		next, ok := node.Child(segment)
		if !ok {
			return nil, fmt.Errorf("%w: %s (missing %q)", rerrors.ErrUnknownDirInfo, dirInfo, segment)
		}
		node = next
	}
	c.resolved.Add(dirInfo, node)
	return node, nil
}
