// Package classify maps mod file paths onto asset categories and computes
// the path a file takes when its costume slot changes. Everything here is a
// pure function of the path strings.
package classify

import (
	"fmt"
	"path"
	"strings"

	"github.com/provide-io/reslot/pkg/reslot/catalog"
	"github.com/provide-io/reslot/pkg/reslot/fighters"
	"github.com/provide-io/reslot/pkg/reslot/slot"
)

// Category is the asset family a path belongs to.
type Category int

const (
	CategoryNone Category = iota
	CategoryUI
	CategoryFighter
	CategorySound
	CategoryEffect
	CategoryTransplant
)

func (c Category) String() string {
	switch c {
	case CategoryUI:
		return "ui"
	case CategoryFighter:
		return "fighter"
	case CategorySound:
		return "sound"
	case CategoryEffect:
		return "effect"
	case CategoryTransplant:
		return "transplant"
	default:
		return "none"
	}
}

// UI portrait roots.
var uiRoots = []string{"ui/replace/chara", "ui/replace_patch/chara"}

// Rewrite is the outcome of classifying one path for a slot change.
type Rewrite struct {
	Category Category
	Path     string
}

// Reslot classifies p for fighter and returns its path under target. The
// second result is false when p is not part of the reassignment.
func Reslot(p, fighter string, source, target slot.ID) (Rewrite, bool) {
	if catalog.IsPlaceholder(p) || !strings.Contains(p, source.Digits()) {
		return Rewrite{}, false
	}

	for _, root := range uiRoots {
		if !strings.HasPrefix(p, root) {
			continue
		}
		newPath := strings.ReplaceAll(p, source.Digits()+".bntx", target.Digits()+".bntx")
		for _, key := range fighters.UIKeys(fighter) {
			if strings.Contains(newPath, "_"+key+"_") {
				return Rewrite{Category: CategoryUI, Path: newPath}, true
			}
		}
		return Rewrite{}, false
	}

	switch {
	case strings.HasPrefix(p, FighterRoot(fighter)):
		segment := "/" + source.String() + "/"
		if !strings.Contains(p, segment) {
			return Rewrite{}, false
		}
		return Rewrite{
			Category: CategoryFighter,
			Path:     strings.ReplaceAll(p, segment, "/"+target.String()+"/"),
		}, true
	case strings.HasPrefix(p, fmt.Sprintf("sound/bank/fighter/se_%s_", fighter)),
		strings.HasPrefix(p, fmt.Sprintf("sound/bank/fighter_voice/vc_%s_", fighter)):
		return Rewrite{
			Category: CategorySound,
			Path:     strings.ReplaceAll(p, "_"+source.String(), "_"+target.String()),
		}, true
	case strings.HasPrefix(p, EffectRoot(fighter)):
		category := CategoryEffect
		if IsTransplant(p, fighter) {
			category = CategoryTransplant
		}
		return Rewrite{
			Category: category,
			Path:     strings.ReplaceAll(p, source.Digits(), target.Digits()),
		}, true
	}
	return Rewrite{}, false
}

// FighterDirInfo is the dir-info holding every slot of fighter.
func FighterDirInfo(fighter string) string {
	return "fighter/" + fighter
}

// SlotDirInfo is the dir-info of one slot of fighter.
func SlotDirInfo(fighter string, s slot.ID) string {
	return FighterDirInfo(fighter) + "/" + s.String()
}

// FighterRoot is the model/motion root of fighter.
func FighterRoot(fighter string) string {
	return "fighter/" + fighter + "/"
}

// EffectRoot is the effect root of fighter.
func EffectRoot(fighter string) string {
	return "effect/fighter/" + fighter + "/"
}

// TransplantDir is the effect folder shared by every costume of fighter.
func TransplantDir(fighter string) string {
	return EffectRoot(fighter) + "transplant/"
}

// IsTransplant reports whether p is a transplant effect of fighter.
func IsTransplant(p, fighter string) bool {
	return strings.Contains(p, TransplantDir(fighter))
}

// IsSlotEffect reports whether p is an effect folder entry of fighter's slot.
func IsSlotEffect(p, fighter string, s slot.ID) bool {
	return strings.Contains(p, fmt.Sprintf("%sef_%s_%s", EffectRoot(fighter), fighter, s))
}

// IsEffect reports whether p lives anywhere under an effect root.
func IsEffect(p string) bool {
	return strings.Contains(p, "effect")
}

// CameraDir is the camera animation folder of fighter's slot.
func CameraDir(fighter string, s slot.ID) string {
	return fmt.Sprintf("camera/fighter/%s/%s/", fighter, s)
}

// IsCamera reports whether p is under fighter's slot camera folder.
func IsCamera(p, fighter string, s slot.ID) bool {
	return strings.HasPrefix(p, CameraDir(fighter, s))
}

// CameraAnimationExt is the only camera file type declared to the loader.
const CameraAnimationExt = ".nuanmb"

// IsCameraAnimation reports whether a camera file is an animation.
func IsCameraAnimation(p string) bool {
	return strings.HasSuffix(p, CameraAnimationExt)
}

// InSlot reports whether p has s as a whole path segment.
func InSlot(p string, s slot.ID) bool {
	return strings.Contains(p, "/"+s.String()+"/") || strings.HasSuffix(p, "/"+s.String())
}

// customExtensions are file types always declared as new files.
var customExtensions = map[string]struct{}{
	".nuanmb": {}, ".marker": {}, ".bin": {}, ".tonelabel": {}, ".numatb": {},
	".numdlb": {}, ".nutexb": {}, ".numshb": {}, ".numshexb": {}, ".nus3audio": {},
	".nus3bank": {}, ".nuhlpb": {}, ".xmb": {}, ".kime": {}, ".eff": {},
}

// bodyPartMarkers catch renamed texture variants.
var bodyPartMarkers = []string{"body", "face", "hair", "eye", "brs_", "bust_", "hand_"}

// IsCustom reports whether p has to be declared as a new file. known tells
// whether p is a vanilla path.
func IsCustom(p string, known bool) bool {
	if _, ok := customExtensions[strings.ToLower(path.Ext(p))]; ok {
		return true
	}
	if !known {
		return true
	}
	lower := strings.ToLower(p)
	for _, marker := range bodyPartMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
