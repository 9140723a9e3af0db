package combat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/events"
)

// DefaultRoundCap bounds a battle when the caller does not supply a cap.
// Real battles finish within a few dozen rounds; the cap exists so a map
// with mutually unreachable factions cannot spin forever.
const DefaultRoundCap = 10000

// EngineConfig carries everything needed to drive one battle.
type EngineConfig struct {
	State    *State
	Logger   zerolog.Logger
	EventBus *events.EventBus // optional
	Recorder *Recorder        // optional
	RoundCap int              // 0 means DefaultRoundCap
	BattleID string           // generated when empty
}

// Outcome summarizes a finished battle.
type Outcome struct {
	Rounds      int
	RemainingHP int
	Winner      core.Faction
}

// Score is the product of completed rounds and surviving hit points, the
// battle's single-number checksum.
func (o Outcome) Score() int {
	return o.Rounds * o.RemainingHP
}

// Engine resolves one battle round by round. It is not safe for
// concurrent use; a battle is a strictly sequential process.
type Engine struct {
	state    *State
	selector *TargetSelector
	logger   zerolog.Logger
	bus      *events.EventBus
	recorder *Recorder
	roundCap int
	battleID string

	rounds int
	ended  bool
	winner core.Faction
}

// NewEngine creates an engine for the given state. The state is mutated
// in place as rounds run.
func NewEngine(cfg EngineConfig) *Engine {
	battleID := cfg.BattleID
	if battleID == "" {
		battleID = uuid.New().String()
	}
	e := &Engine{
		state:    cfg.State,
		selector: NewTargetSelector(cfg.State),
		logger:   cfg.Logger.With().Str("component", "engine").Str("battle_id", battleID).Logger(),
		bus:      cfg.EventBus,
		recorder: cfg.Recorder,
		roundCap: cfg.RoundCap,
		battleID: battleID,
	}
	if e.roundCap <= 0 {
		e.roundCap = DefaultRoundCap
	}

	stats := e.state.Stats()
	e.publish(events.NewBattleStartedEvent(battleID,
		e.state.board.W, e.state.board.H,
		stats[core.Elf].Alive, stats[core.Goblin].Alive,
		e.state.elfPower))
	if e.recorder != nil {
		e.recorder.Capture(0, false, e.state)
	}
	return e
}

// BattleID returns the engine's battle identifier.
func (e *Engine) BattleID() string {
	return e.battleID
}

// State returns the battle state the engine is driving.
func (e *Engine) State() *State {
	return e.state
}

// Rounds returns the number of fully completed rounds so far.
func (e *Engine) Rounds() int {
	return e.rounds
}

// Ended reports whether the battle is over.
func (e *Engine) Ended() bool {
	return e.ended
}

// Winner returns the winning faction; only meaningful once Ended is true.
func (e *Engine) Winner() core.Faction {
	return e.winner
}

// PlayRound executes one pass over the units in the order fixed at the
// end of the previous round. It returns false once the battle is over.
//
// A pass cut short because an acting unit found no enemies does not count
// as a completed round: effects already applied stay, the counter does
// not move, and the unit list keeps its current order.
func (e *Engine) PlayRound() (bool, error) {
	if e.ended {
		return false, nil
	}

	round := e.rounds + 1
	rlog := e.logger.With().Int("round", round).Logger()
	e.publish(events.NewRoundStartedEvent(e.battleID, round))

	for _, u := range e.state.units {
		if !u.Alive() {
			continue
		}

		dec := e.selector.ChooseMove(u)
		if !dec.EnemiesLeft {
			rlog.Debug().Msg("No enemies remain, battle over mid-round")
			e.finish()
			if e.recorder != nil {
				e.recorder.Capture(e.rounds, true, e.state)
			}
			return false, nil
		}
		if !dec.HasPath {
			// Boxed in: no reachable destination means no adjacent enemy
			// either, so the whole turn is skipped.
			continue
		}

		if dec.Step != u.Pos {
			from := u.Pos
			if err := e.state.moveUnit(u, dec.Step); err != nil {
				return false, err
			}
			e.publish(events.NewUnitMovedEvent(e.battleID, u.Side, from, dec.Step, dec.Goal))
		}

		target := e.selector.ChooseTarget(u)
		if target == nil {
			continue
		}
		if err := e.applyAttack(u, target); err != nil {
			return false, err
		}
	}

	e.rounds++
	e.state.sortUnits()
	if e.recorder != nil {
		e.recorder.Capture(e.rounds, false, e.state)
	}

	stats := e.state.Stats()
	e.publish(events.NewRoundCompletedEvent(e.battleID, e.rounds,
		stats[core.Elf].Alive, stats[core.Goblin].Alive))
	rlog.Debug().
		Int("living_elves", stats[core.Elf].Alive).
		Int("living_goblins", stats[core.Goblin].Alive).
		Msg("Round completed")

	if len(stats) < 2 {
		e.finish()
		return false, nil
	}
	return true, nil
}

// applyAttack deals the attacker's damage to the target and clears it
// from the occupancy index if it dies.
func (e *Engine) applyAttack(attacker, target *core.Unit) error {
	if !attacker.Pos.IsAdjacentTo(target.Pos) || !target.Alive() {
		return fmt.Errorf("attack %s -> %s: %w", attacker, target, core.ErrStateCorrupted)
	}

	damage := e.state.AttackPower(attacker.Side)
	target.HP -= damage
	e.publish(events.NewUnitAttackedEvent(e.battleID, attacker.Side,
		attacker.Pos, target.Pos, damage, target.HP))

	if !target.Alive() {
		if err := e.state.recordDeath(target); err != nil {
			return err
		}
		e.publish(events.NewUnitDiedEvent(e.battleID, target.Side, target.Pos))
	}
	return nil
}

// finish marks the battle over and records the winner.
func (e *Engine) finish() {
	e.ended = true
	for _, u := range e.state.units {
		if u.Alive() {
			e.winner = u.Side
			break
		}
	}
	e.publish(events.NewBattleEndedEvent(e.battleID, e.winner, e.rounds, e.state.TotalRemainingHP()))
}

// RunToCompletion plays rounds until the battle ends and returns the
// outcome. Only fully completed rounds count. The context is checked
// between rounds; the round cap turns a stalemate into ErrRoundLimit.
func (e *Engine) RunToCompletion(ctx context.Context) (Outcome, error) {
	for !e.ended {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		if e.rounds >= e.roundCap {
			return Outcome{}, fmt.Errorf("after %d rounds: %w", e.rounds, core.ErrRoundLimit)
		}
		if _, err := e.PlayRound(); err != nil {
			return Outcome{}, err
		}
	}

	out := Outcome{
		Rounds:      e.rounds,
		RemainingHP: e.state.TotalRemainingHP(),
		Winner:      e.winner,
	}
	e.logger.Info().
		Int("rounds", out.Rounds).
		Int("remaining_hp", out.RemainingHP).
		Stringer("winner", out.Winner).
		Int("score", out.Score()).
		Msg("Battle finished")
	return out, nil
}

func (e *Engine) publish(ev events.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}
