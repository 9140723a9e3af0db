package main

import (
	"context"
	"fmt"
	"log"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/events"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/events/subscribers"
)

const smokeMap = `#######
#.G...#
#...EG#
#.#.#G#
#..G#E#
#.....#
#######`

func main() {
	// Set up logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Create event bus with a logging subscriber
	bus := events.NewEventBus()
	bus.Subscribe(subscribers.NewLoggerSubscriber("integration-test", zlog.Logger, zerolog.InfoLevel))

	// Parse the battle map
	state, err := combat.Parse(smokeMap)
	if err != nil {
		log.Fatalf("Failed to parse map: %v", err)
	}

	// Run a full battle
	recorder := combat.NewRecorder()
	engine := combat.NewEngine(combat.EngineConfig{
		State:    state,
		Logger:   zlog.Logger,
		EventBus: bus,
		Recorder: recorder,
		BattleID: "integration-test-1",
	})

	ctx := context.Background()
	outcome, err := engine.RunToCompletion(ctx)
	if err != nil {
		log.Fatalf("Battle failed: %v", err)
	}

	log.Printf("Battle finished: %s wins after %d rounds with %d HP (score %d)",
		outcome.Winner, outcome.Rounds, outcome.RemainingHP, outcome.Score())
	log.Printf("Recorded %d frames", len(recorder.Frames()))
	fmt.Println(state.RenderWithHP())

	// Run the minimal-power search on a fresh copy of the same map
	base, err := combat.Parse(smokeMap)
	if err != nil {
		log.Fatalf("Failed to parse map: %v", err)
	}

	result, err := combat.SearchMinimalPower(ctx, combat.SearchConfig{
		State:    base,
		Logger:   zlog.Logger,
		EventBus: bus,
		BattleID: "integration-test-2",
	})
	if err != nil {
		log.Fatalf("Power search failed: %v", err)
	}

	log.Printf("Minimal power %d after %d attempts: %d rounds, %d HP (score %d)",
		result.Power, result.Attempts, result.Rounds, result.RemainingHP, result.Score())
	fmt.Println(result.Final.RenderWithHP())
}
