package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
)

func TestPathfinder_Origin(t *testing.T) {
	s := mustParse(t, "#####\n#E..#\n#####")
	pf := newPathfinder(s, core.NewCoordinate(1, 1))

	dist, first, ok := pf.StepsTo(core.NewCoordinate(1, 1))
	require.True(t, ok)
	assert.Equal(t, 0, dist)
	assert.Equal(t, core.NewCoordinate(1, 1), first)
}

func TestPathfinder_Distances(t *testing.T) {
	s := mustParse(t, "#####\n#E..#\n#.#.#\n#...#\n#####")
	pf := newPathfinder(s, core.NewCoordinate(1, 1))

	tests := []struct {
		name string
		dest core.Coordinate
		dist int
	}{
		{"Right", core.NewCoordinate(1, 2), 1},
		{"Down", core.NewCoordinate(2, 1), 1},
		{"FarCorner", core.NewCoordinate(3, 3), 4},
		{"AroundPillar", core.NewCoordinate(2, 3), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, _, ok := pf.StepsTo(tt.dest)
			require.True(t, ok)
			assert.Equal(t, tt.dist, dist)
		})
	}
}

func TestPathfinder_FirstStepTieBreak(t *testing.T) {
	// Open room, unit at the center. Among equal-length paths the first
	// step must read earliest: up beats left beats right beats down.
	s := mustParse(t, "#####\n#...#\n#.E.#\n#...#\n#####")
	pf := newPathfinder(s, core.NewCoordinate(2, 2))

	tests := []struct {
		name  string
		dest  core.Coordinate
		dist  int
		first core.Coordinate
	}{
		{"UpLeftCorner_GoesUp", core.NewCoordinate(1, 1), 2, core.NewCoordinate(1, 2)},
		{"UpRightCorner_GoesUp", core.NewCoordinate(1, 3), 2, core.NewCoordinate(1, 2)},
		{"DownLeftCorner_GoesLeft", core.NewCoordinate(3, 1), 2, core.NewCoordinate(2, 1)},
		{"DownRightCorner_GoesRight", core.NewCoordinate(3, 3), 2, core.NewCoordinate(2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, first, ok := pf.StepsTo(tt.dest)
			require.True(t, ok)
			assert.Equal(t, tt.dist, dist)
			assert.Equal(t, tt.first, first)
		})
	}
}

func TestPathfinder_Unreachable(t *testing.T) {
	s := mustParse(t, "#####\n#E#.#\n#####")
	pf := newPathfinder(s, core.NewCoordinate(1, 1))

	_, _, ok := pf.StepsTo(core.NewCoordinate(1, 3))
	assert.False(t, ok)

	_, _, ok = pf.StepsTo(core.NewCoordinate(0, 0))
	assert.False(t, ok, "walls are never reached")
}

func TestPathfinder_UnitsBlock(t *testing.T) {
	// The goblin plugs the only corridor
	s := mustParse(t, "#####\n#EG.#\n#####")
	pf := newPathfinder(s, core.NewCoordinate(1, 1))

	_, _, ok := pf.StepsTo(core.NewCoordinate(1, 2))
	assert.False(t, ok, "occupied tiles are impassable")
	_, _, ok = pf.StepsTo(core.NewCoordinate(1, 3))
	assert.False(t, ok, "tiles behind a unit are unreachable")
}

func TestPathfinder_RoutesAroundUnits(t *testing.T) {
	s := mustParse(t, "#####\n#EG.#\n#...#\n#####")
	pf := newPathfinder(s, core.NewCoordinate(1, 1))

	dist, first, ok := pf.StepsTo(core.NewCoordinate(1, 3))
	require.True(t, ok)
	assert.Equal(t, 4, dist)
	assert.Equal(t, core.NewCoordinate(2, 1), first)
}
