package slot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  ID
	}{
		{"c00", 0},
		{"c02", 2},
		{"C12", 12},
		{"+c10", 10},
		{" 7 ", 7},
		{"c8", 8},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "c", "cx1", "-1", "c999"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, rerrors.ErrInvalidSlot))
		})
	}
}

func TestIDFormatting(t *testing.T) {
	assert.Equal(t, "c00", ID(0).String())
	assert.Equal(t, "c14", ID(14).String())
	assert.Equal(t, "07", ID(7).Digits())
	assert.False(t, ID(7).Added())
	assert.True(t, ID(8).Added())
	assert.Equal(t, ID(6), ID(14).Native())
	assert.Equal(t, ID(2), ID(2).Native())
}

func TestReplaceFirstToken(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		target ID
		want   string
	}{
		{"slot segment", "fighter/mario/model/body/c00/model.numdlb", 10, "fighter/mario/model/body/c10/model.numdlb"},
		{"only first token", "fighter/mario/c01/c02_extra.bin", 12, "fighter/mario/c12/c02_extra.bin"},
		{"no token", "fighter/mario/cmn/param.prc", 9, "fighter/mario/cmn/param.prc"},
		{"added slots are not tokens", "fighter/mario/c12/c03.bin", 9, "fighter/mario/c12/c09.bin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReplaceFirstToken(tt.path, tt.target))
		})
	}
}

func TestParsePairs(t *testing.T) {
	pairs, err := ParsePairs([]string{"c00=c02", "c01:+c10", "c03=", "c00=c04"})
	require.NoError(t, err)
	require.Len(t, pairs, 3)

	assert.Equal(t, Pair{Source: 0, Target: 4}, pairs[0])
	assert.Equal(t, Pair{Source: 1, Target: 10}, pairs[1])
	assert.True(t, pairs[2].Blank)
	assert.Equal(t, "c03=", pairs[2].String())
}

func TestParsePairs_Invalid(t *testing.T) {
	for _, item := range []string{"c00", "x=c01", "c00=zz"} {
		t.Run(item, func(t *testing.T) {
			_, err := ParsePairs([]string{item})
			require.Error(t, err)
			assert.True(t, errors.Is(err, rerrors.ErrInvalidMapping))
		})
	}
}

func TestParseShares(t *testing.T) {
	shares, err := ParseShares([]string{"c00=c00", "c01:c03"})
	require.NoError(t, err)
	assert.Equal(t, map[ID]ID{0: 0, 1: 3}, shares)

	_, err = ParseShares([]string{"c01=c"})
	assert.True(t, errors.Is(err, rerrors.ErrInvalidMapping))
}
