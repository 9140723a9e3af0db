package core

import "errors"

// Sentinel errors shared across the combat packages. Wrap these with
// fmt.Errorf("...: %w", err) to add context; callers match them with
// errors.Is.
var (
	// ErrEmptyMap is returned when the map text contains no lines.
	ErrEmptyMap = errors.New("map text is empty")

	// ErrUnknownTile is returned by the parser for any map character
	// outside the recognized alphabet (wall, floor, unit runes).
	ErrUnknownTile = errors.New("unknown map character")

	// ErrNoUnits is returned when a map places no units at all.
	ErrNoUnits = errors.New("map contains no units")

	// ErrStateCorrupted signals that the occupancy index and the unit
	// list disagree. The battle cannot continue once this is seen.
	ErrStateCorrupted = errors.New("combat state corrupted")

	// ErrRoundLimit is returned when a battle outlives the caller
	// supplied round cap without finishing.
	ErrRoundLimit = errors.New("round limit exceeded")

	// ErrNoViablePower is returned when the power search reaches its
	// ceiling without finding a loss-free outcome.
	ErrNoViablePower = errors.New("no viable attack power within ceiling")
)
