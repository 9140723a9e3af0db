package renderer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
)

var (
	EngagedColor = color.RGBA{255, 255, 100, 255} // Yellow outline
	WoundedColor = color.RGBA{255, 140, 0, 255}   // Orange outline
)

// EnhancedBoardRenderer layers tactical overlays on the base renderer:
// units in melee contact get an outline, badly wounded units another.
type EnhancedBoardRenderer struct {
	*BoardRenderer

	// Overlay toggles
	showEngaged bool
	showWounded bool

	// Units at or below this HP count as wounded
	woundedThreshold int
}

func NewEnhancedBoardRenderer(tileSize int, f font.Face) *EnhancedBoardRenderer {
	return &EnhancedBoardRenderer{
		BoardRenderer:    NewBoardRenderer(tileSize, f),
		showEngaged:      true,
		showWounded:      true,
		woundedThreshold: 50,
	}
}

func (ebr *EnhancedBoardRenderer) SetShowEngaged(show bool) {
	ebr.showEngaged = show
}

func (ebr *EnhancedBoardRenderer) SetShowWounded(show bool) {
	ebr.showWounded = show
}

func (ebr *EnhancedBoardRenderer) Draw(screen *ebiten.Image, snap combat.Snapshot) {
	// First draw the base board
	ebr.BoardRenderer.Draw(screen, snap)

	// Then draw overlays
	ebr.drawOverlays(screen, snap)
}

func (ebr *EnhancedBoardRenderer) drawOverlays(screen *ebiten.Image, snap combat.Snapshot) {
	units := make(map[core.Coordinate]combat.UnitSnapshot, len(snap.Units))
	for _, u := range snap.Units {
		units[u.Pos] = u
	}

	// Wounded wins when both overlays apply to a unit
	for _, u := range snap.Units {
		if ebr.showWounded && u.HP <= ebr.woundedThreshold {
			ebr.drawTileOutline(screen, u.Pos, WoundedColor)
			continue
		}
		if ebr.showEngaged && engaged(u, units) {
			ebr.drawTileOutline(screen, u.Pos, EngagedColor)
		}
	}
}

// engaged reports whether the unit has an enemy on an adjacent tile.
func engaged(u combat.UnitSnapshot, units map[core.Coordinate]combat.UnitSnapshot) bool {
	for _, n := range u.Pos.Neighbors() {
		if other, ok := units[n]; ok && other.Side != u.Side {
			return true
		}
	}
	return false
}

func (ebr *EnhancedBoardRenderer) drawTileOutline(screen *ebiten.Image, pos core.Coordinate, clr color.Color) {
	x := float32(pos.Col * ebr.tileSize)
	y := float32(pos.Row * ebr.tileSize)
	size := float32(ebr.tileSize)
	vector.StrokeRect(screen, x, y, size, size, 2, clr, false)
}
