package combat

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
)

// Map characters recognized by Parse.
const (
	wallRune  = '#'
	floorRune = '.'
)

// ParseOptions adjusts the values units are created with. The zero value
// of a field means its default.
type ParseOptions struct {
	// StartingHP is the hit points every unit begins with. Default 200.
	StartingHP int
	// ElfPower is the initial elf attack power. Default 3. Goblin power
	// is always 3.
	ElfPower int
}

// Parse reads a battle map and returns the initial combat state. Rows are
// lines from the top, columns are rune offsets within a line, both zero
// based. Unit tiles count as open floor.
func Parse(text string) (*State, error) {
	return ParseWithOptions(text, ParseOptions{})
}

// ParseWithOptions is Parse with explicit unit values.
func ParseWithOptions(text string, opts ParseOptions) (*State, error) {
	if opts.StartingHP == 0 {
		opts.StartingHP = core.StartingHP
	}
	if opts.ElfPower == 0 {
		opts.ElfPower = core.BasePower
	}

	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil, core.ErrEmptyMap
	}
	lines := strings.Split(text, "\n")

	var (
		floor []core.Coordinate
		units []*core.Unit
		width int
	)
	for row, line := range lines {
		if len(line) > width {
			width = len(line)
		}
		for col, ch := range line {
			pos := core.NewCoordinate(row, col)
			switch ch {
			case wallRune:
				// closed by default
			case floorRune:
				floor = append(floor, pos)
			case 'E', 'G':
				side := core.Elf
				if ch == 'G' {
					side = core.Goblin
				}
				floor = append(floor, pos)
				units = append(units, &core.Unit{
					Pos:  pos,
					HP:   opts.StartingHP,
					Side: side,
				})
			default:
				return nil, fmt.Errorf("row %d, col %d: %w %q", row, col, core.ErrUnknownTile, ch)
			}
		}
	}

	if len(units) == 0 {
		return nil, core.ErrNoUnits
	}

	board := core.NewBoard(width, len(lines), floor)
	return newState(board, units, opts.ElfPower), nil
}
