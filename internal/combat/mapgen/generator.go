// Package mapgen produces random battlefield maps in the text form the
// combat parser accepts.
package mapgen

import (
	"math/rand"
	"strings"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
)

const (
	wallTile   = '#'
	floorTile  = '.'
	elfTile    = 'E'
	goblinTile = 'G'
)

// MapConfig holds configuration for map generation.
type MapConfig struct {
	Width          int
	Height         int
	WallRatio      int // 1 interior wall per N interior tiles
	UnitsPerSide   int
	MinUnitSpacing int
}

// DefaultMapConfig returns a sensible default configuration.
func DefaultMapConfig(w, h, unitsPerSide int) MapConfig {
	return MapConfig{
		Width:          w,
		Height:         h,
		WallRatio:      10,
		UnitsPerSide:   unitsPerSide,
		MinUnitSpacing: 4,
	}
}

// Generator handles map generation with deterministic RNG.
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new map generator.
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap creates a walled battlefield with both factions placed.
func (g *Generator) GenerateMap() string {
	grid := g.emptyGrid()

	g.placeWalls(grid)
	g.placeUnits(grid)

	rows := make([]string, len(grid))
	for i, row := range grid {
		rows[i] = string(row)
	}
	return strings.Join(rows, "\n")
}

// emptyGrid builds an open interior ringed by walls.
func (g *Generator) emptyGrid() [][]byte {
	grid := make([][]byte, g.config.Height)
	for row := range grid {
		grid[row] = make([]byte, g.config.Width)
		for col := range grid[row] {
			if row == 0 || row == g.config.Height-1 || col == 0 || col == g.config.Width-1 {
				grid[row][col] = wallTile
			} else {
				grid[row][col] = floorTile
			}
		}
	}
	return grid
}

func (g *Generator) placeWalls(grid [][]byte) {
	interior := (g.config.Width - 2) * (g.config.Height - 2)
	want := interior / g.config.WallRatio
	placed := 0

	// Use a maximum attempt counter to avoid infinite loops
	maxAttempts := want * 10
	attempts := 0

	for placed < want && attempts < maxAttempts {
		row := 1 + g.rng.Intn(g.config.Height-2)
		col := 1 + g.rng.Intn(g.config.Width-2)

		if grid[row][col] == floorTile {
			grid[row][col] = wallTile
			placed++
		}
		attempts++
	}
}

func (g *Generator) placeUnits(grid [][]byte) {
	var placements []core.Coordinate

	for i := 0; i < g.config.UnitsPerSide*2; i++ {
		tile := byte(elfTile)
		if i%2 == 1 {
			tile = goblinTile
		}

		pos := g.findUnitLocation(grid, placements)
		grid[pos.Row][pos.Col] = tile
		placements = append(placements, pos)
	}
}

func (g *Generator) findUnitLocation(grid [][]byte, existing []core.Coordinate) core.Coordinate {
	maxAttempts := g.config.Width * g.config.Height // Fallback to prevent infinite loops

	for attempts := 0; attempts < maxAttempts; attempts++ {
		row := 1 + g.rng.Intn(g.config.Height-2)
		col := 1 + g.rng.Intn(g.config.Width-2)

		if grid[row][col] != floorTile {
			continue
		}

		// Check minimum distance from units already placed
		pos := core.NewCoordinate(row, col)
		validLocation := true
		for _, other := range existing {
			if pos.DistanceTo(other) < g.config.MinUnitSpacing {
				validLocation = false
				break
			}
		}

		if validLocation {
			return pos
		}
	}

	// Fallback: place anywhere open (shouldn't happen with reasonable configs)
	for row := 1; row < g.config.Height-1; row++ {
		for col := 1; col < g.config.Width-1; col++ {
			if grid[row][col] == floorTile {
				return core.NewCoordinate(row, col)
			}
		}
	}

	panic("Unable to place unit - no open tiles left")
}
