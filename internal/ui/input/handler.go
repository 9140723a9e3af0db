package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Command is one playback control request read from the keyboard.
type Command int

const (
	CommandNone Command = iota
	CommandTogglePause
	CommandStepForward
	CommandStepBack
	CommandRestart
	CommandToggleOverlays
)

// Handler turns raw keyboard and mouse state into playback commands.
type Handler struct {
	// Mouse state
	mouseX, mouseY int

	// Seek bar geometry, set by the viewer each frame
	barX, barY, barW, barH int

	// Results of the last Update
	commands []Command
	seek     float64
	hasSeek  bool
}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Update() {
	// Update mouse position
	h.mouseX, h.mouseY = ebiten.CursorPosition()

	h.commands = h.commands[:0]
	h.hasSeek = false

	// Handle keyboard input
	h.handleKeyboard()

	// Handle mouse clicks
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.handleLeftClick()
	}
}

func (h *Handler) handleKeyboard() {
	// Space pauses and resumes playback
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		h.commands = append(h.commands, CommandTogglePause)
	}

	// Arrow keys step one round at a time
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		h.commands = append(h.commands, CommandStepForward)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		h.commands = append(h.commands, CommandStepBack)
	}

	// R restarts from round zero
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		h.commands = append(h.commands, CommandRestart)
	}

	// O toggles the tactical overlays
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		h.commands = append(h.commands, CommandToggleOverlays)
	}
}

func (h *Handler) handleLeftClick() {
	// Only clicks on the seek bar mean anything
	if h.barW <= 0 {
		return
	}
	if h.mouseX < h.barX || h.mouseX >= h.barX+h.barW {
		return
	}
	if h.mouseY < h.barY || h.mouseY >= h.barY+h.barH {
		return
	}

	h.seek = float64(h.mouseX-h.barX) / float64(h.barW)
	h.hasSeek = true
}

// SetSeekBar tells the handler where the viewer drew the seek bar.
func (h *Handler) SetSeekBar(x, y, width, height int) {
	h.barX = x
	h.barY = y
	h.barW = width
	h.barH = height
}

// Commands returns the commands read by the last Update.
func (h *Handler) Commands() []Command {
	return h.commands
}

// Seek returns the fraction of the seek bar clicked during the last
// Update, if any.
func (h *Handler) Seek() (float64, bool) {
	return h.seek, h.hasSeek
}
