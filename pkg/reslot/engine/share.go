package engine

import (
	"path"
	"strings"

	"github.com/provide-io/reslot/pkg/reslot/catalog"
	"github.com/provide-io/reslot/pkg/reslot/config"
	"github.com/provide-io/reslot/pkg/reslot/slot"
)

// neverShareExtensions are file types that are not shared once any produced
// file lives in the same directory. Only textures are listed.
var neverShareExtensions = map[string]struct{}{
	".nutexb": {},
}

// addedRoots send shares to the added-file bucket.
var addedRoots = []string{"motion/", "camera/", "sound/bank/fighter"}

// ShareBucket picks the share table for vanilla file p.
func ShareBucket(p string) config.Bucket {
	for _, root := range addedRoots {
		if strings.Contains(p, root) {
			return config.BucketAdded
		}
	}
	return config.BucketVanilla
}

// resolveShares declares every share-slot file as shared into newSlot unless
// the session already produces it.
func (s *Session) resolveShares(files []int, source, newSlot slot.ID) {
	seen := make(map[string]struct{}, len(files))
	under := make(map[string]bool)
	for _, index := range files {
		p, ok := s.index.FilePath(index)
		if !ok || catalog.IsPlaceholder(p) {
			continue
		}
		identity := slot.ReplaceFirstToken(p, source)
		if _, dup := seen[identity]; dup {
			continue
		}
		seen[identity] = struct{}{}

		newPath := slot.ReplaceFirstToken(p, newSlot)
		if s.produced.Contains(newPath) {
			continue
		}
		if _, never := neverShareExtensions[strings.ToLower(path.Ext(p))]; never {
			dir := path.Dir(newPath)
			taken, checked := under[dir]
			if !checked {
				taken = s.producedUnder(dir)
				under[dir] = taken
			}
			if taken {
				continue
			}
		}
		if p == newPath {
			continue
		}
		s.cfg.AddShare(ShareBucket(p), p, newPath)
	}
}

// producedUnder reports whether any produced path contains dir.
func (s *Session) producedUnder(dir string) bool {
	return s.produced.Any(func(p string) bool {
		return strings.Contains(p, dir)
	})
}
