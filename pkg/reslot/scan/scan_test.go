package scan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(f), 0o644))
	}
}

func TestIsValidMod(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, IsValidMod(dir))
	assert.False(t, IsValidMod(filepath.Join(dir, "missing")))

	writeTree(t, dir, "Sound/bank/fighter/se_mario_c00.nus3audio")
	assert.True(t, IsValidMod(dir), "root names are case-insensitive")
}

func TestListModFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"info.toml",
		"fighter/mario/model/body/c00/model.numdlb",
		"effect/fighter/mario/ef_mario_c00.eff",
		"fighter/mario/motion/body/c00/a00wait1.nuanmb",
	)

	files, err := ListModFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"effect/fighter/mario/ef_mario_c00.eff",
		"fighter/mario/model/body/c00/model.numdlb",
		"fighter/mario/motion/body/c00/a00wait1.nuanmb",
	}, files)

	_, err = ListModFiles(t.TempDir())
	assert.True(t, errors.Is(err, rerrors.ErrInvalidModDir))
}

func TestDiscover_FighterFolders(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"fighter/sonic/model/body/c03/model.numdlb",
		"fighter/mario/model/body/c00/model.numdlb",
		"fighter/mario/model/hair/c05/model.numdlb",
		"fighter/mario/motion/body/c01/a00wait1.nuanmb",
		"fighter/common/param/x.prc",
	)

	d, err := Discover(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"mario", "sonic", "all"}, d.Fighters)

	d, err = Discover(dir, "mario")
	require.NoError(t, err)
	assert.Equal(t, []string{"mario"}, d.Fighters)
	assert.Equal(t, []string{"c00", "c05", "c01"}, d.Slots)
}

func TestDiscover_UIFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"ui/replace/chara/chara_0/chara_0_pikachu_02.bntx",
		"ui/replace/chara/chara_3/chara_3_pikachu_04.bntx",
		"ui/replace_patch/chara/chara_0/chara_0_mario_01.bntx",
	)

	d, err := Discover(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"mario", "pikachu", "all"}, d.Fighters)

	d, err = Discover(dir, "pikachu")
	require.NoError(t, err)
	assert.Equal(t, []string{"c02", "c04"}, d.Slots)
}

func TestDiscover_SoundFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"sound/bank/fighter/se_lucas_c06.nus3audio",
		"sound/bank/fighter_voice/vc_lucas_c06.nus3audio",
	)

	d, err := Discover(dir, "lucas")
	require.NoError(t, err)
	assert.Equal(t, []string{"lucas"}, d.Fighters)
	assert.Equal(t, []string{"c06"}, d.Slots)
}

func TestParseFileName(t *testing.T) {
	tests := []struct {
		file    string
		fighter string
		slot    string
		ok      bool
	}{
		{"chara_0_mario_00.bntx", "mario", "c00", true},
		{"se_sonic_c03.nus3audio", "sonic", "c03", true},
		{"vc_ptrainer_low_c01.nus3audio", "low", "c01", true},
		{"model.numdlb", "", "", false},
		{"one_under.txt", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			fighter, s, ok := ParseFileName(tt.file)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.fighter, fighter)
			assert.Equal(t, tt.slot, s)
		})
	}
}
