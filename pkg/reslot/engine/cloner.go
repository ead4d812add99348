package engine

import (
	"fmt"

	"github.com/provide-io/reslot/pkg/reslot/catalog"
	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
	"github.com/provide-io/reslot/pkg/reslot/slot"
)

// cloneSlot synthesizes newSlot under dirInfo from the donor source slot,
// then does the same for every child of dirInfo that holds a source slot.
func (s *Session) cloneSlot(dirInfo string, source, newSlot, share slot.ID) error {
	node, err := s.index.Resolve(dirInfo)
	if err != nil {
		return err
	}

	if sourceNode, ok := node.Child(source.String()); ok {
		if err := s.cloneChild(dirInfo, node, sourceNode, source, newSlot, share); err != nil {
			return err
		}
	}

	for _, child := range node.Children() {
		sourceNode, ok := child.Child(source.String())
		if !ok {
			continue
		}
		if err := s.cloneChild(dirInfo+"/"+child.Name, child, sourceNode, source, newSlot, share); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) cloneChild(dirInfo string, parent, sourceNode *catalog.DirectoryNode, source, newSlot, share slot.ID) error {
	shareNode, ok := parent.Child(share.String())
	if !ok {
		return fmt.Errorf("%w: %s/%s", rerrors.ErrUnknownDirInfo, dirInfo, share)
	}

	newPath := dirInfo + "/" + newSlot.String()
	sharePath := dirInfo + "/" + share.String()
	s.cfg.NewDirInfos.Add(newPath)

	files := s.cfg.DirFiles(newPath)
	for _, index := range shareNode.Files {
		p, ok := s.index.FilePath(index)
		if !ok {
			s.logger.Warn("⚠️ File index out of range", "dir_info", sharePath, "index", index)
			continue
		}
		if catalog.IsPlaceholder(p) {
			continue
		}
		files.Add(slot.ReplaceFirstToken(p, newSlot))
	}

	s.resolveShares(shareNode.Files, source, newSlot)

	for _, sub := range sourceNode.ChildNames() {
		s.cfg.SetBase(newPath+"/"+sub, sharePath+"/"+sub)
	}
	s.logger.Trace("🧬 Cloned dir-info", "new", newPath, "share", sharePath, "files", len(shareNode.Files))
	return nil
}
