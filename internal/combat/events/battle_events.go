package events

import (
	"time"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
)

// Event type constants
const (
	TypeBattleStarted        = "battle.started"
	TypeBattleEnded          = "battle.ended"
	TypeRoundStarted         = "round.started"
	TypeRoundCompleted       = "round.completed"
	TypeUnitMoved            = "unit.moved"
	TypeUnitAttacked         = "unit.attacked"
	TypeUnitDied             = "unit.died"
	TypePowerAttemptStarted  = "power.attempt_started"
	TypePowerAttemptFinished = "power.attempt_finished"
	TypePowerSearchCompleted = "power.search_completed"
)

// BattleStartedEvent is published when a battle begins.
type BattleStartedEvent struct {
	BaseEvent
	MapWidth  int
	MapHeight int
	Elves     int
	Goblins   int
	ElfPower  int
}

// NewBattleStartedEvent creates a new BattleStartedEvent.
func NewBattleStartedEvent(battleID string, width, height, elves, goblins, elfPower int) *BattleStartedEvent {
	return &BattleStartedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeBattleStarted,
			Time:      time.Now(),
			Battle:    battleID,
		},
		MapWidth:  width,
		MapHeight: height,
		Elves:     elves,
		Goblins:   goblins,
		ElfPower:  elfPower,
	}
}

// BattleEndedEvent is published once per battle, when one faction has no
// living units left.
type BattleEndedEvent struct {
	BaseEvent
	Winner      core.Faction
	Rounds      int
	RemainingHP int
}

// NewBattleEndedEvent creates a new BattleEndedEvent.
func NewBattleEndedEvent(battleID string, winner core.Faction, rounds, remainingHP int) *BattleEndedEvent {
	return &BattleEndedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeBattleEnded,
			Time:      time.Now(),
			Battle:    battleID,
		},
		Winner:      winner,
		Rounds:      rounds,
		RemainingHP: remainingHP,
	}
}

// RoundStartedEvent is published at the beginning of each round. Round
// numbers are one based; a round that ends the battle mid-pass never gets
// a matching RoundCompletedEvent.
type RoundStartedEvent struct {
	BaseEvent
	Round int
}

// NewRoundStartedEvent creates a new RoundStartedEvent.
func NewRoundStartedEvent(battleID string, round int) *RoundStartedEvent {
	return &RoundStartedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeRoundStarted,
			Time:      time.Now(),
			Battle:    battleID,
		},
		Round: round,
	}
}

// RoundCompletedEvent is published after a full pass over the units.
type RoundCompletedEvent struct {
	BaseEvent
	Round        int
	LivingElves  int
	LivingGoblin int
}

// NewRoundCompletedEvent creates a new RoundCompletedEvent.
func NewRoundCompletedEvent(battleID string, round, livingElves, livingGoblins int) *RoundCompletedEvent {
	return &RoundCompletedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeRoundCompleted,
			Time:      time.Now(),
			Battle:    battleID,
		},
		Round:        round,
		LivingElves:  livingElves,
		LivingGoblin: livingGoblins,
	}
}

// UnitMovedEvent is published when a unit steps onto a new tile.
type UnitMovedEvent struct {
	BaseEvent
	Side core.Faction
	From core.Coordinate
	To   core.Coordinate
	Goal core.Coordinate
}

// NewUnitMovedEvent creates a new UnitMovedEvent. Goal is the destination
// tile the unit is walking toward, not the tile it stepped onto.
func NewUnitMovedEvent(battleID string, side core.Faction, from, to, goal core.Coordinate) *UnitMovedEvent {
	return &UnitMovedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeUnitMoved,
			Time:      time.Now(),
			Battle:    battleID,
		},
		Side: side,
		From: from,
		To:   to,
		Goal: goal,
	}
}

// UnitAttackedEvent is published for every landed attack.
type UnitAttackedEvent struct {
	BaseEvent
	Attacker core.Coordinate
	Side     core.Faction
	Target   core.Coordinate
	Damage   int
	TargetHP int
}

// NewUnitAttackedEvent creates a new UnitAttackedEvent. TargetHP is the
// target's hit points after the damage was applied.
func NewUnitAttackedEvent(battleID string, side core.Faction, attacker, target core.Coordinate, damage, targetHP int) *UnitAttackedEvent {
	return &UnitAttackedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeUnitAttacked,
			Time:      time.Now(),
			Battle:    battleID,
		},
		Attacker: attacker,
		Side:     side,
		Target:   target,
		Damage:   damage,
		TargetHP: targetHP,
	}
}

// UnitDiedEvent is published when a unit's hit points drop to zero or below.
type UnitDiedEvent struct {
	BaseEvent
	Side core.Faction
	Pos  core.Coordinate
}

// NewUnitDiedEvent creates a new UnitDiedEvent.
func NewUnitDiedEvent(battleID string, side core.Faction, pos core.Coordinate) *UnitDiedEvent {
	return &UnitDiedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeUnitDied,
			Time:      time.Now(),
			Battle:    battleID,
		},
		Side: side,
		Pos:  pos,
	}
}

// PowerAttemptStartedEvent is published before each replay of the power search.
type PowerAttemptStartedEvent struct {
	BaseEvent
	Power int
}

// NewPowerAttemptStartedEvent creates a new PowerAttemptStartedEvent.
func NewPowerAttemptStartedEvent(searchID string, power int) *PowerAttemptStartedEvent {
	return &PowerAttemptStartedEvent{
		BaseEvent: BaseEvent{
			EventType: TypePowerAttemptStarted,
			Time:      time.Now(),
			Battle:    searchID,
		},
		Power: power,
	}
}

// PowerAttemptFinishedEvent is published after each replay of the power
// search with the attempt's outcome.
type PowerAttemptFinishedEvent struct {
	BaseEvent
	Power       int
	ElfDeaths   int
	Rounds      int
	RemainingHP int
	Winner      core.Faction
}

// NewPowerAttemptFinishedEvent creates a new PowerAttemptFinishedEvent.
func NewPowerAttemptFinishedEvent(searchID string, power, elfDeaths, rounds, remainingHP int, winner core.Faction) *PowerAttemptFinishedEvent {
	return &PowerAttemptFinishedEvent{
		BaseEvent: BaseEvent{
			EventType: TypePowerAttemptFinished,
			Time:      time.Now(),
			Battle:    searchID,
		},
		Power:       power,
		ElfDeaths:   elfDeaths,
		Rounds:      rounds,
		RemainingHP: remainingHP,
		Winner:      winner,
	}
}

// PowerSearchCompletedEvent is published when the search finds the minimal
// loss-free power.
type PowerSearchCompletedEvent struct {
	BaseEvent
	Power    int
	Attempts int
	Rounds   int
}

// NewPowerSearchCompletedEvent creates a new PowerSearchCompletedEvent.
func NewPowerSearchCompletedEvent(searchID string, power, attempts, rounds int) *PowerSearchCompletedEvent {
	return &PowerSearchCompletedEvent{
		BaseEvent: BaseEvent{
			EventType: TypePowerSearchCompleted,
			Time:      time.Now(),
			Battle:    searchID,
		},
		Power:    power,
		Attempts: attempts,
		Rounds:   rounds,
	}
}
