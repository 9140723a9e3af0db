package renderer

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
)

// -----------------------------------------------------------------------------
// Colour definitions
// -----------------------------------------------------------------------------

var FactionColors = map[core.Faction]color.Color{
	core.Elf:    color.RGBA{50, 200, 50, 255}, // Green
	core.Goblin: color.RGBA{200, 50, 50, 255}, // Red
}

var (
	WallColor   = color.RGBA{80, 80, 80, 255}
	FloorColor  = color.RGBA{170, 170, 170, 255}
	HPTextColor = color.White
)

// -----------------------------------------------------------------------------
// Renderer
// -----------------------------------------------------------------------------

type BoardRenderer struct {
	tileSize    int
	defaultFont font.Face
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(tileSize int, f font.Face) *BoardRenderer {
	return &BoardRenderer{tileSize: tileSize, defaultFont: f}
}

// TileSize returns the edge length of one drawn tile in pixels.
func (br *BoardRenderer) TileSize() int {
	return br.tileSize
}

// Draw renders one battlefield snapshot on the supplied Ebiten screen.
func (br *BoardRenderer) Draw(screen *ebiten.Image, snap combat.Snapshot) {
	units := make(map[core.Coordinate]combat.UnitSnapshot, len(snap.Units))
	for _, u := range snap.Units {
		units[u.Pos] = u
	}

	for row, line := range strings.Split(snap.Grid, "\n") {
		for col, glyph := range line {
			screenX := float64(col * br.tileSize)
			screenY := float64(row * br.tileSize)

			// ---------------------------------------------------------------------
			// Background pass
			// ---------------------------------------------------------------------
			cell := ebiten.NewImage(br.tileSize, br.tileSize)
			u, occupied := units[core.NewCoordinate(row, col)]
			switch {
			case occupied:
				cell.Fill(FactionColors[u.Side])
			case glyph == '#':
				cell.Fill(WallColor)
			default:
				cell.Fill(FloorColor)
			}

			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(screenX, screenY)
			screen.DrawImage(cell, op)

			// ---------------------------------------------------------------------
			// Hit points (units only)
			// ---------------------------------------------------------------------
			if occupied && br.defaultFont != nil {
				hpStr := strconv.Itoa(u.HP)

				// text bounds in pixels
				b := text.BoundString(br.defaultFont, hpStr)
				textW := b.Max.X - b.Min.X
				textH := b.Max.Y - b.Min.Y

				x := int(screenX) + (br.tileSize-textW)/2
				y := int(screenY) + (br.tileSize+textH)/2

				text.Draw(screen, hpStr, br.defaultFont, x, y, HPTextColor)
			}
		}
	}
}
