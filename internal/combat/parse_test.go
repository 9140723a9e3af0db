package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/testutil"
)

func mustParse(t *testing.T, text string) *State {
	t.Helper()
	s, err := Parse(text)
	require.NoError(t, err)
	return s
}

func mustParseWith(t *testing.T, text string, opts ParseOptions) *State {
	t.Helper()
	s, err := ParseWithOptions(text, opts)
	require.NoError(t, err)
	return s
}

func TestParse(t *testing.T) {
	s := mustParse(t, testutil.TargetingMap)

	assert.Equal(t, 7, s.Board().W)
	assert.Equal(t, 5, s.Board().H)
	// Unit tiles count as open floor
	assert.Equal(t, 13, s.Board().OpenCount())

	units := s.Units()
	require.Len(t, units, 4)

	// Units come out in reading order of their starting positions
	assert.Equal(t, core.Coordinate{Row: 1, Col: 1}, units[0].Pos)
	assert.Equal(t, core.Elf, units[0].Side)
	assert.Equal(t, core.Coordinate{Row: 1, Col: 4}, units[1].Pos)
	assert.Equal(t, core.Goblin, units[1].Side)
	assert.Equal(t, core.Coordinate{Row: 3, Col: 2}, units[2].Pos)
	assert.Equal(t, core.Coordinate{Row: 3, Col: 5}, units[3].Pos)

	for _, u := range units {
		assert.Equal(t, core.StartingHP, u.HP)
	}
	assert.Equal(t, core.BasePower, s.ElfPower())
	assert.NoError(t, s.VerifyOccupancy())
}

func TestParse_FixtureCounts(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		units     int
		openTiles int
	}{
		{"Targeting", testutil.TargetingMap, 4, 13},
		{"BlockedTargeting", testutil.BlockedTargetingMap, 3, 16},
		{"NearTargeting", testutil.NearTargetingMap, 4, 19},
		{"Combat", testutil.CombatMap, 6, 22},
		{"Movement", testutil.MovementMap, 9, 49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustParse(t, tt.text)
			assert.Len(t, s.Units(), tt.units)
			assert.Equal(t, tt.openTiles, s.Board().OpenCount())
		})
	}
}

func TestParse_TrailingNewline(t *testing.T) {
	plain := mustParse(t, testutil.CombatMap)
	trailing := mustParse(t, testutil.CombatMap+"\n")

	assert.Equal(t, plain.Board().H, trailing.Board().H)
	assert.Equal(t, plain.Render(), trailing.Render())
}

func TestParse_UnevenRows(t *testing.T) {
	// Width follows the longest line; short rows are closed past their end
	s := mustParse(t, "E..\n.G")

	assert.Equal(t, 3, s.Board().W)
	assert.Equal(t, 2, s.Board().H)
	assert.False(t, s.Board().Contains(core.Coordinate{Row: 1, Col: 2}))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"Empty", "", core.ErrEmptyMap},
		{"OnlyNewlines", "\n\n", core.ErrEmptyMap},
		{"UnknownRune", "#####\n#E.x#\n#####", core.ErrUnknownTile},
		{"NoUnits", "###\n#.#\n###", core.ErrNoUnits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_UnknownRunePosition(t *testing.T) {
	_, err := Parse("#####\n#E.x#\n#####")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
	assert.Contains(t, err.Error(), "col 3")
}

func TestParseWithOptions(t *testing.T) {
	s := mustParseWith(t, testutil.CombatMap, ParseOptions{StartingHP: 100, ElfPower: 20})

	for _, u := range s.Units() {
		assert.Equal(t, 100, u.HP)
	}
	assert.Equal(t, 20, s.ElfPower())
	assert.Equal(t, 20, s.AttackPower(core.Elf))
	assert.Equal(t, core.BasePower, s.AttackPower(core.Goblin))
}
