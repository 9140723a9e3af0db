package main

import (
	"context"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/config"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/ui"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	mapPath := flag.String("map", "", "Path to battlefield map file")
	power := flag.Int("power", 0, "Elf attack power (0 to use config default)")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *mapPath == "" {
		log.Fatal().Msg("A battlefield map is required, pass -map")
	}
	text, err := os.ReadFile(*mapPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *mapPath).Msg("Failed to read map")
	}

	elfPower := *power
	if elfPower == 0 {
		elfPower = cfg.Combat.BasePower
	}
	state, err := combat.ParseWithOptions(string(text), combat.ParseOptions{
		StartingHP: cfg.Combat.StartingHP,
		ElfPower:   elfPower,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse map")
	}

	// Resolve the whole battle up front; the viewer replays the frames
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	recorder := combat.NewRecorder()
	engine := combat.NewEngine(combat.EngineConfig{
		State:    state,
		Logger:   logger,
		Recorder: recorder,
		RoundCap: cfg.Combat.RoundCap,
	})
	out, err := engine.RunToCompletion(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Battle failed")
	}
	logger.Info().
		Int("rounds", out.Rounds).
		Stringer("winner", out.Winner).
		Int("frames", recorder.Len()).
		Msg("Battle resolved, starting playback")

	viewer, err := ui.NewViewer(recorder.Frames())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create viewer")
	}

	ebiten.SetWindowSize(ui.ScreenWidth(), ui.ScreenHeight())
	ebiten.SetWindowTitle(cfg.UI.Window.Title)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal().Err(err).Msg("Viewer exited")
	}
}
