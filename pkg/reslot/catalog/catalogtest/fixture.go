// Package catalogtest builds a small vanilla catalog for tests.
package catalogtest

import (
	"fmt"

	"github.com/provide-io/reslot/pkg/reslot/catalog"
)

// Placeholder is a hashed file-array entry present under every fighter slot.
const Placeholder = "0x0f6a1b2c3d"

type builder struct {
	files []string
	known []string
}

func (b *builder) add(path string, known bool) int {
	b.files = append(b.files, path)
	if known {
		b.known = append(b.known, path)
	}
	return len(b.files) - 1
}

// slotFiles returns the vanilla files of one fighter slot dir-info.
func (b *builder) slotFiles(fighter, s string) []int {
	return []int{
		b.add(fmt.Sprintf("fighter/%s/model/body/%s/model.numdlb", fighter, s), true),
		b.add(fmt.Sprintf("fighter/%s/model/body/%s/def_%s_001_col.nutexb", fighter, s, fighter), true),
		b.add(fmt.Sprintf("fighter/%s/motion/body/%s/a00wait1.nuanmb", fighter, s), true),
		b.add(fmt.Sprintf("sound/bank/fighter/se_%s_%s.nus3audio", fighter, s), true),
		b.add(fmt.Sprintf("sound/bank/fighter_voice/vc_%s_%s.nus3audio", fighter, s), true),
		b.add(fmt.Sprintf("fighter/%s/model/face/%s/face_c00_%s.nutexb", fighter, s, fighter), true),
		b.add(Placeholder, false),
	}
}

func (b *builder) fighter(name string) *catalog.DirectoryNode {
	f := catalog.NewDirectoryNode(name)
	camera := catalog.NewDirectoryNode("camera")
	for i := 0; i < 8; i++ {
		s := fmt.Sprintf("c0%d", i)
		slotNode := catalog.NewDirectoryNode(s, b.slotFiles(name, s)...)
		slotNode.AddChild(catalog.NewDirectoryNode("camera",
			b.add(fmt.Sprintf("camera/fighter/%s/%s/j02win1.nuanmb", name, s), true)))
		slotNode.AddChild(catalog.NewDirectoryNode("kirbycopy",
			b.add(fmt.Sprintf("fighter/kirby/model/copy_%s_cap/%s/model.numdlb", name, s), true)))
		f.AddChild(slotNode)

		camera.AddChild(catalog.NewDirectoryNode(s,
			b.add(fmt.Sprintf("camera/fighter/%s/%s/d02final.nuanmb", name, s), true)))
	}
	f.AddChild(camera)
	f.AddChild(catalog.NewDirectoryNode("cmn",
		b.add(fmt.Sprintf("fighter/%s/param/vl.prc", name), true)))
	return f
}

// New returns a catalog with mario and sonic, slots c00-c07 each.
func New() *catalog.Catalog {
	b := &builder{}
	root := catalog.NewDirectoryNode("")
	fighter := root.AddChild(catalog.NewDirectoryNode("fighter"))
	fighter.AddChild(b.fighter("mario"))
	fighter.AddChild(b.fighter("sonic"))

	b.known = append(b.known,
		"effect/fighter/mario/ef_mario.eff",
		"effect/fighter/sonic/ef_sonic.eff",
		"ui/replace/chara/chara_0/chara_0_mario_00.bntx",
	)
	return catalog.New(b.known, root, b.files)
}
