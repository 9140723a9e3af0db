package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/events"
)

// LoggerSubscriber logs battle events to structured logs.
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber.
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier.
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (empty means log all).
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables full-event JSON logging.
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type.
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it.
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("battle_id", event.BattleID()).
		Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.BattleStartedEvent:
		logEvent.
			Int("map_width", e.MapWidth).
			Int("map_height", e.MapHeight).
			Int("elves", e.Elves).
			Int("goblins", e.Goblins).
			Int("elf_power", e.ElfPower)

	case *events.BattleEndedEvent:
		logEvent.
			Stringer("winner", e.Winner).
			Int("rounds", e.Rounds).
			Int("remaining_hp", e.RemainingHP)

	case *events.RoundStartedEvent:
		logEvent.Int("round", e.Round)

	case *events.RoundCompletedEvent:
		logEvent.
			Int("round", e.Round).
			Int("living_elves", e.LivingElves).
			Int("living_goblins", e.LivingGoblin)

	case *events.UnitMovedEvent:
		logEvent.
			Stringer("side", e.Side).
			Stringer("from", e.From).
			Stringer("to", e.To).
			Stringer("goal", e.Goal)

	case *events.UnitAttackedEvent:
		logEvent.
			Stringer("side", e.Side).
			Stringer("attacker", e.Attacker).
			Stringer("target", e.Target).
			Int("damage", e.Damage).
			Int("target_hp", e.TargetHP)

	case *events.UnitDiedEvent:
		logEvent.
			Stringer("side", e.Side).
			Stringer("pos", e.Pos)

	case *events.PowerAttemptStartedEvent:
		logEvent.Int("power", e.Power)

	case *events.PowerAttemptFinishedEvent:
		logEvent.
			Int("power", e.Power).
			Int("elf_deaths", e.ElfDeaths).
			Int("rounds", e.Rounds).
			Int("remaining_hp", e.RemainingHP).
			Stringer("winner", e.Winner)

	case *events.PowerSearchCompletedEvent:
		logEvent.
			Int("power", e.Power).
			Int("attempts", e.Attempts).
			Int("rounds", e.Rounds)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Battle event")
}
