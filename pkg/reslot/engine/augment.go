package engine

import (
	"github.com/provide-io/reslot/pkg/reslot/catalog"
	"github.com/provide-io/reslot/pkg/reslot/classify"
	"github.com/provide-io/reslot/pkg/reslot/config"
	"github.com/provide-io/reslot/pkg/reslot/slot"
)

// addMissingFiles declares the mod files the loader has to add under the
// target slot: custom files, slot effects, camera animations and transplant
// effects, then the rewritten files that are not vanilla.
func (s *Session) addMissingFiles(reslotted []string, fighter string, target slot.ID, newSlot bool) {
	targetKey := classify.SlotDirInfo(fighter, target)
	targetFiles := s.cfg.DirFiles(targetKey)
	cameraFiles := s.cfg.DirFiles(targetKey + "/camera")
	commonFiles := s.cfg.DirFiles(config.CommonDirInfo(fighter))
	s.cfg.NewDirFiles.Delete(classify.FighterDirInfo(fighter) + "/camera/" + target.String())

	custom := config.NewPathSet()
	effects := config.NewPathSet()
	camera := config.NewPathSet()
	transplant := config.NewPathSet()

	for _, file := range s.modFiles {
		if catalog.IsPlaceholder(file) {
			continue
		}
		switch {
		case classify.IsTransplant(file, fighter):
			transplant.Add(file)
		case classify.IsSlotEffect(file, fighter, target):
			effects.Add(file)
		case !classify.InSlot(file, target):
		case classify.IsCamera(file, fighter, target):
			if classify.IsCameraAnimation(file) {
				camera.Add(file)
			}
		case classify.IsCustom(file, s.index.Known(file)):
			custom.Add(file)
		}
	}

	for _, file := range custom.Items() {
		targetFiles.Add(file)
	}
	for _, file := range effects.Items() {
		targetFiles.Add(file)
	}
	for _, file := range camera.Items() {
		cameraFiles.Add(file)
	}
	for _, file := range transplant.Items() {
		commonFiles.Add(file)
	}

	for _, file := range reslotted {
		switch {
		case classify.IsCamera(file, fighter, target),
			classify.IsTransplant(file, fighter),
			!newSlot && classify.IsEffect(file),
			s.index.Known(file),
			custom.Contains(file):
			continue
		}
		targetFiles.Add(file)
	}
}
