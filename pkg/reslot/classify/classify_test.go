package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/provide-io/reslot/pkg/reslot/slot"
)

func TestReslot(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		fighter  string
		source   slot.ID
		target   slot.ID
		want     string
		category Category
		ok       bool
	}{
		{
			name: "model slot segment", path: "fighter/mario/model/body/c00/model.numdlb",
			fighter: "mario", source: 0, target: 2,
			want: "fighter/mario/model/body/c02/model.numdlb", category: CategoryFighter, ok: true,
		},
		{
			name: "motion to added slot", path: "fighter/sonic/motion/body/c01/a00wait1.nuanmb",
			fighter: "sonic", source: 1, target: 10,
			want: "fighter/sonic/motion/body/c10/a00wait1.nuanmb", category: CategoryFighter, ok: true,
		},
		{
			name: "fighter path outside slot", path: "fighter/mario/model/body/c01/model.numdlb",
			fighter: "mario", source: 0, target: 2,
		},
		{
			name: "similar fighter id is not matched", path: "fighter/mariod/model/body/c00/model.numdlb",
			fighter: "mario", source: 0, target: 2,
		},
		{
			name: "sound bank", path: "sound/bank/fighter/se_mario_c00.nus3audio",
			fighter: "mario", source: 0, target: 3,
			want: "sound/bank/fighter/se_mario_c03.nus3audio", category: CategorySound, ok: true,
		},
		{
			name: "voice bank", path: "sound/bank/fighter_voice/vc_mario_c00.nus3bank",
			fighter: "mario", source: 0, target: 11,
			want: "sound/bank/fighter_voice/vc_mario_c11.nus3bank", category: CategorySound, ok: true,
		},
		{
			name: "effect digits", path: "effect/fighter/mario/ef_mario_c00.eff",
			fighter: "mario", source: 0, target: 9,
			want: "effect/fighter/mario/ef_mario_c09.eff", category: CategoryEffect, ok: true,
		},
		{
			name: "transplant effect", path: "effect/fighter/mario/transplant/tr_mario_c00.eff",
			fighter: "mario", source: 0, target: 5,
			want: "effect/fighter/mario/transplant/tr_mario_c05.eff", category: CategoryTransplant, ok: true,
		},
		{
			name: "ui portrait", path: "ui/replace/chara/chara_0/chara_0_mario_00.bntx",
			fighter: "mario", source: 0, target: 2,
			want: "ui/replace/chara/chara_0/chara_0_mario_02.bntx", category: CategoryUI, ok: true,
		},
		{
			name: "ui alias for ice climbers", path: "ui/replace_patch/chara/chara_3/chara_3_ice_climber_01.bntx",
			fighter: "popo", source: 1, target: 9,
			want: "ui/replace_patch/chara/chara_3/chara_3_ice_climber_09.bntx", category: CategoryUI, ok: true,
		},
		{
			name: "ui of another fighter", path: "ui/replace/chara/chara_0/chara_0_luigi_00.bntx",
			fighter: "mario", source: 0, target: 2,
		},
		{
			name: "unrelated root", path: "stream;/sound/bgm/bgm_c00.nus3audio",
			fighter: "mario", source: 0, target: 2,
		},
		{
			name: "placeholder", path: "0x00c00dead",
			fighter: "mario", source: 0, target: 2,
		},
		{
			name: "source digits absent", path: "fighter/mario/model/body/c01/model.numdlb",
			fighter: "mario", source: 5, target: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Reslot(tt.path, tt.fighter, tt.source, tt.target)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.want, got.Path)
			assert.Equal(t, tt.category, got.Category)
		})
	}
}

func TestReslot_IdentityIsNotRejected(t *testing.T) {
	got, ok := Reslot("fighter/mario/model/body/c04/model.numdlb", "mario", 4, 4)
	assert.True(t, ok)
	assert.Equal(t, "fighter/mario/model/body/c04/model.numdlb", got.Path)
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsTransplant("effect/fighter/mario/transplant/ef_mario_fire.eff", "mario"))
	assert.False(t, IsTransplant("effect/fighter/mario/ef_mario.eff", "mario"))

	assert.True(t, IsSlotEffect("effect/fighter/mario/ef_mario_c02/model.nutexb", "mario", 2))
	assert.False(t, IsSlotEffect("effect/fighter/mario/ef_mario_c03/model.nutexb", "mario", 2))

	assert.True(t, IsCamera("camera/fighter/mario/c02/motion.nuanmb", "mario", 2))
	assert.False(t, IsCamera("camera/fighter/mario/c03/motion.nuanmb", "mario", 2))
	assert.True(t, IsCameraAnimation("camera/fighter/mario/c02/motion.nuanmb"))
	assert.False(t, IsCameraAnimation("camera/fighter/mario/c02/readme.txt"))

	assert.True(t, InSlot("fighter/mario/model/body/c02/model.numdlb", 2))
	assert.True(t, InSlot("fighter/mario/c02", 2))
	assert.False(t, InSlot("fighter/mario/model/body/c12/model.numdlb", 2))
}

func TestIsCustom(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		known bool
		want  bool
	}{
		{"custom extension", "fighter/mario/model/body/c02/model.numdlb", true, true},
		{"extension is case insensitive", "fighter/mario/model/body/c02/MODEL.NUMDLB", true, true},
		{"unknown path", "fighter/mario/model/body/c02/readme.txt", false, true},
		{"body marker", "fighter/mario/model/body/c02/alp_mario.prc", true, true},
		{"hand marker", "fighter/mario/model/glove/c02/hand_l.prc", true, true},
		{"plain known file", "fighter/mario/model/cap/c02/alp_mario.prc", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCustom(tt.path, tt.known))
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "effect", CategoryEffect.String())
	assert.Equal(t, "transplant", CategoryTransplant.String())
	assert.Equal(t, "none", Category(99).String())
}
