package combat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/events"
)

// DefaultPowerCeiling bounds the power search. Every known map resolves
// far below it; hitting the ceiling means the map itself is hopeless.
const DefaultPowerCeiling = 200

// SearchConfig controls a minimal-power search.
type SearchConfig struct {
	State    *State
	Logger   zerolog.Logger
	EventBus *events.EventBus // optional
	Floor    int              // 0 means start at the state's current power
	Ceiling  int              // 0 means DefaultPowerCeiling
	RoundCap int              // per attempt, 0 means DefaultRoundCap
	BattleID string           // generated when empty
}

// SearchResult is the outcome of the first flawless attempt.
type SearchResult struct {
	Outcome
	Power    int
	Attempts int
	Final    *State
}

// SearchMinimalPower finds the smallest elf attack power at which the
// elves win without a single loss. Powers are tried in ascending order,
// each against a fresh clone of the base state, so the caller's state is
// never touched.
//
// The scan is deliberately linear. Elf survival is not monotonic in
// attack power on every map, so a bisection could report a power whose
// weaker neighbor also works.
func SearchMinimalPower(ctx context.Context, cfg SearchConfig) (SearchResult, error) {
	floor := cfg.Floor
	if floor <= 0 {
		floor = cfg.State.ElfPower()
	}
	ceiling := cfg.Ceiling
	if ceiling <= 0 {
		ceiling = DefaultPowerCeiling
	}
	if floor > ceiling {
		return SearchResult{}, fmt.Errorf("power floor %d above ceiling %d: %w", floor, ceiling, core.ErrNoViablePower)
	}

	searchID := cfg.BattleID
	if searchID == "" {
		searchID = uuid.New().String()
	}

	logger := cfg.Logger.With().Str("component", "power_search").Str("battle_id", searchID).Logger()
	attempts := 0
	for power := floor; power <= ceiling; power++ {
		if err := ctx.Err(); err != nil {
			return SearchResult{}, err
		}
		attempts++

		publish(cfg.EventBus, events.NewPowerAttemptStartedEvent(searchID, power))
		trial := cfg.State.Clone()
		trial.SetElfPower(power)

		engine := NewEngine(EngineConfig{
			State:    trial,
			Logger:   cfg.Logger,
			RoundCap: cfg.RoundCap,
			BattleID: searchID,
		})
		out, err := engine.RunToCompletion(ctx)
		if err != nil {
			return SearchResult{}, fmt.Errorf("attempt at power %d: %w", power, err)
		}

		elfDeaths := trial.Deaths(core.Elf)
		publish(cfg.EventBus, events.NewPowerAttemptFinishedEvent(searchID,
			power, elfDeaths, out.Rounds, out.RemainingHP, out.Winner))
		logger.Debug().
			Int("power", power).
			Int("elf_deaths", elfDeaths).
			Int("rounds", out.Rounds).
			Stringer("winner", out.Winner).
			Msg("Power attempt finished")

		if out.Winner == core.Elf && elfDeaths == 0 {
			publish(cfg.EventBus, events.NewPowerSearchCompletedEvent(searchID, power, attempts, out.Rounds))
			logger.Info().
				Int("power", power).
				Int("attempts", attempts).
				Int("score", out.Score()).
				Msg("Minimal flawless power found")
			return SearchResult{Outcome: out, Power: power, Attempts: attempts, Final: trial}, nil
		}
	}

	return SearchResult{}, fmt.Errorf("searched powers %d..%d: %w", floor, ceiling, core.ErrNoViablePower)
}

func publish(bus *events.EventBus, ev events.Event) {
	if bus != nil {
		bus.Publish(ev)
	}
}
