package ui

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/config"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/ui/input"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/ui/renderer"
)

// UI configuration functions
func ScreenWidth() int {
	return config.Get().UI.Window.Width
}

func ScreenHeight() int {
	return config.Get().UI.Window.Height
}

func TileSize() int {
	return config.Get().UI.Game.TileSize
}

func RoundInterval() int {
	return config.Get().UI.Game.RoundInterval
}

// Viewer plays back a recorded battle round by round.
type Viewer struct {
	frames        []combat.Snapshot
	boardRenderer *renderer.EnhancedBoardRenderer
	inputHandler  *input.Handler
	defaultFont   font.Face

	// Playback state
	frameIdx   int
	roundTimer int
	paused     bool
	overlays   bool
}

// NewViewer creates an Ebitengine playback instance for the frames.
func NewViewer(frames []combat.Snapshot) (*Viewer, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames to play back")
	}

	v := &Viewer{
		frames:       frames,
		inputHandler: input.NewHandler(),
		defaultFont:  basicfont.Face7x13,
		overlays:     true,
	}
	v.boardRenderer = renderer.NewEnhancedBoardRenderer(TileSize(), v.defaultFont)

	return v, nil
}

// Update applies control input and advances playback.
func (v *Viewer) Update() error {
	v.inputHandler.Update()

	for _, cmd := range v.inputHandler.Commands() {
		switch cmd {
		case input.CommandTogglePause:
			v.paused = !v.paused
		case input.CommandStepForward:
			v.paused = true
			v.advance(1)
		case input.CommandStepBack:
			v.paused = true
			v.advance(-1)
		case input.CommandRestart:
			v.frameIdx = 0
			v.roundTimer = 0
		case input.CommandToggleOverlays:
			v.overlays = !v.overlays
			v.boardRenderer.SetShowEngaged(v.overlays)
			v.boardRenderer.SetShowWounded(v.overlays)
		}
	}

	if frac, ok := v.inputHandler.Seek(); ok {
		v.paused = true
		v.frameIdx = int(frac*float64(len(v.frames)-1) + 0.5)
	}

	if v.paused {
		return nil
	}

	v.roundTimer++
	if v.roundTimer < RoundInterval() {
		return nil
	}
	v.roundTimer = 0
	v.advance(1)

	return nil
}

func (v *Viewer) advance(delta int) {
	v.frameIdx += delta
	if v.frameIdx < 0 {
		v.frameIdx = 0
	}
	if v.frameIdx > len(v.frames)-1 {
		v.frameIdx = len(v.frames) - 1
	}
}

// Draw renders the current frame with a HUD and seek bar.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 50, G: 50, B: 50, A: 255}) // Dark gray background

	snap := v.frames[v.frameIdx]
	v.boardRenderer.Draw(screen, snap)

	elves, goblins := 0, 0
	elfHP, goblinHP := 0, 0
	for _, u := range snap.Units {
		if u.Side == core.Elf {
			elves++
			elfHP += u.HP
		} else {
			goblins++
			goblinHP += u.HP
		}
	}

	roundStr := fmt.Sprintf("Round: %d", snap.Round)
	if snap.Final {
		roundStr += " (final)"
	}
	if v.paused {
		roundStr += " [paused]"
	}
	ebitenutil.DebugPrintAt(screen, roundStr, 5, 5)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Elves: %d units, %d HP", elves, elfHP), 5, 25)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Goblins: %d units, %d HP", goblins, goblinHP), 5, 45)

	v.drawSeekBar(screen)
}

func (v *Viewer) drawSeekBar(screen *ebiten.Image) {
	barX := 5
	barW := ScreenWidth() - 10
	barH := 10
	barY := ScreenHeight() - barH - 5

	bar := ebiten.NewImage(barW, barH)
	bar.Fill(color.RGBA{90, 90, 90, 255})

	if len(v.frames) > 1 {
		fillW := barW * v.frameIdx / (len(v.frames) - 1)
		if fillW > 0 {
			filled := ebiten.NewImage(fillW, barH)
			filled.Fill(color.RGBA{220, 220, 220, 255})
			bar.DrawImage(filled, &ebiten.DrawImageOptions{})
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(barX), float64(barY))
	screen.DrawImage(bar, op)

	v.inputHandler.SetSeekBar(barX, barY, barW, barH)
}

// Layout defines the Ebitengine screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return ScreenWidth(), ScreenHeight()
}
