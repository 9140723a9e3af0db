package combat

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
)

const (
	wallGlyph  = '#'
	floorGlyph = '.'
)

// Render draws the battlefield as the same text form Parse accepts.
func (s *State) Render() string {
	var sb strings.Builder
	sb.Grow((s.board.W + 1) * s.board.H)

	for row := 0; row < s.board.H; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < s.board.W; col++ {
			sb.WriteRune(s.tileRune(row, col))
		}
	}
	return sb.String()
}

// RenderWithHP draws the battlefield with each row's living units listed
// after it in column order, e.g. "#G.E#   G(200), E(197)".
func (s *State) RenderWithHP() string {
	var sb strings.Builder
	sb.Grow((s.board.W + 24) * s.board.H)

	for row := 0; row < s.board.H; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}

		var hps []string
		for col := 0; col < s.board.W; col++ {
			sb.WriteRune(s.tileRune(row, col))
			if u, ok := s.UnitAt(core.NewCoordinate(row, col)); ok {
				hps = append(hps, fmt.Sprintf("%c(%d)", u.Side.Rune(), u.HP))
			}
		}
		if len(hps) > 0 {
			sb.WriteString("   ")
			sb.WriteString(strings.Join(hps, ", "))
		}
	}
	return sb.String()
}

func (s *State) tileRune(row, col int) rune {
	c := core.NewCoordinate(row, col)
	if u, ok := s.UnitAt(c); ok {
		return u.Side.Rune()
	}
	if s.board.Contains(c) {
		return floorGlyph
	}
	return wallGlyph
}
