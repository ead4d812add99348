// Package config is the accumulated reassignment configuration written to a
// mod's config.json: new directory-infos, their base redirections, the files
// each new directory-info adds and the two share tables.
package config

import (
	"path"
	"strings"
)

// Section names in serialization order.
const (
	SectionNewDirInfos     = "new-dir-infos"
	SectionNewDirInfosBase = "new-dir-infos-base"
	SectionShareToVanilla  = "share-to-vanilla"
	SectionNewDirFiles     = "new-dir-files"
	SectionShareToAdded    = "share-to-added"
)

// Sections lists every section in the order they are written.
var Sections = []string{
	SectionNewDirInfos,
	SectionNewDirInfosBase,
	SectionShareToVanilla,
	SectionNewDirFiles,
	SectionShareToAdded,
}

// Bucket selects one of the two share tables.
type Bucket string

const (
	BucketVanilla Bucket = SectionShareToVanilla
	BucketAdded   Bucket = SectionShareToAdded
)

// Config is the reassignment configuration.
type Config struct {
	NewDirInfos     *PathSet
	NewDirInfosBase *OrderedMap[string]
	ShareToVanilla  *OrderedMap[*PathSet]
	NewDirFiles     *OrderedMap[*PathSet]
	ShareToAdded    *OrderedMap[*PathSet]
}

// New returns a configuration with five empty sections.
func New() *Config {
	return &Config{
		NewDirInfos:     NewPathSet(),
		NewDirInfosBase: NewOrderedMap[string](),
		ShareToVanilla:  NewOrderedMap[*PathSet](),
		NewDirFiles:     NewOrderedMap[*PathSet](),
		ShareToAdded:    NewOrderedMap[*PathSet](),
	}
}

func ensure(m *OrderedMap[*PathSet], key string) *PathSet {
	if s, ok := m.Get(key); ok {
		return s
	}
	s := NewPathSet()
	m.Set(key, s)
	return s
}

// DirFiles returns the file list of dirInfo, creating it when missing.
func (c *Config) DirFiles(dirInfo string) *PathSet {
	return ensure(c.NewDirFiles, dirInfo)
}

// Shares returns the share table for bucket.
func (c *Config) Shares(bucket Bucket) *OrderedMap[*PathSet] {
	if bucket == BucketAdded {
		return c.ShareToAdded
	}
	return c.ShareToVanilla
}

// AddShare declares that dst resolves to src's data. Self shares are refused.
func (c *Config) AddShare(bucket Bucket, src, dst string) bool {
	if src == dst {
		return false
	}
	return ensure(c.Shares(bucket), src).Add(dst)
}

// SetBase records the donor directory-info a new directory-info inherits.
// The last write for a key wins.
func (c *Config) SetBase(dirInfo, donor string) {
	c.NewDirInfosBase.Set(dirInfo, donor)
}

// isCommonDirInfo matches "fighter/<name>/cmn".
func isCommonDirInfo(key string) bool {
	parts := strings.Split(key, "/")
	return len(parts) == 3 && parts[0] == "fighter" && parts[2] == "cmn"
}

// CommonDirInfo returns the transplant dir-info of fighter.
func CommonDirInfo(fighter string) string {
	return path.Join("fighter", fighter, "cmn")
}

// Normalize moves every fighter's cmn entry to the end of new-dir-files and
// drops legacy ".../camera/<slot>" entries whose ".../<slot>/camera" form
// exists. Running it twice is the same as running it once.
func (c *Config) Normalize() {
	for _, key := range c.NewDirFiles.Keys() {
		if isCommonDirInfo(key) {
			c.NewDirFiles.MoveToEnd(key)
		}
	}

	for _, key := range c.NewDirFiles.Keys() {
		if !strings.Contains(key, "/camera/") || strings.HasSuffix(key, "/camera") {
			continue
		}
		alt := strings.ReplaceAll(key, "/camera/", "/") + "/camera"
		if c.NewDirFiles.Has(alt) {
			c.NewDirFiles.Delete(key)
		}
	}
}
