// Package fighters holds the per-fighter lookup tables: multi-character
// groups, UI name keys, assumed share slots and character-select indexes.
package fighters

// All is the pseudo fighter that selects every fighter found in a mod.
const All = "all"

// Group is a set of fighter ids that must be reslotted together.
type Group struct {
	Name      string
	Members   []string
	DBIndexes []int
}

var groups = []Group{
	{Name: "climber", Members: []string{"popo", "nana"}, DBIndexes: []int{17}},
	{Name: "trainer", Members: []string{"ptrainer", "ptrainer_low", "pzenigame", "pfushigisou", "plizardon"}, DBIndexes: []int{38, 39, 40, 41}},
	{Name: "aegis", Members: []string{"element", "eflame", "elight"}, DBIndexes: []int{114, 115, 116, 117, 118}},
}

// GroupOf returns the group fighter belongs to.
func GroupOf(fighter string) (Group, bool) {
	for _, g := range groups {
		for _, m := range g.Members {
			if m == fighter {
				return g, true
			}
		}
	}
	return Group{}, false
}

// Expand returns every fighter that must be processed for fighter.
func Expand(fighter string) []string {
	if g, ok := GroupOf(fighter); ok {
		return append([]string(nil), g.Members...)
	}
	return []string{fighter}
}

// uiKeys maps fighters whose UI images use a different internal name.
var uiKeys = map[string][]string{
	"popo":   {"ice_climber"},
	"nana":   {"ice_climber"},
	"eflame": {"eflame_first", "eflame_only"},
	"elight": {"elight_first", "elight_only"},
}

// UIKeys returns the names used by fighter in character-select image files.
func UIKeys(fighter string) []string {
	if keys, ok := uiKeys[fighter]; ok {
		return append([]string(nil), keys...)
	}
	return []string{fighter}
}

// CharaDBIndexes returns the fixed ui_chara_db rows of a grouped fighter.
// Ungrouped fighters are looked up by name in the index list instead.
func CharaDBIndexes(fighter string) ([]int, bool) {
	if g, ok := GroupOf(fighter); ok {
		return append([]int(nil), g.DBIndexes...), true
	}
	return nil, false
}
