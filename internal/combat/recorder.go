package combat

import (
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
)

// UnitSnapshot is one unit's state frozen at a round boundary.
type UnitSnapshot struct {
	Pos  core.Coordinate
	HP   int
	Side core.Faction
}

// Snapshot freezes the battlefield at a round boundary. Round 0 is the
// parsed starting position; Final marks the cut-short pass that ended
// the battle without counting as a round.
type Snapshot struct {
	Round int
	Final bool
	Grid  string
	Units []UnitSnapshot
}

// Recorder collects a battle's trajectory round by round. Attach one to
// an Engine to replay or compare battles frame by frame.
type Recorder struct {
	frames []Snapshot
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Capture appends a snapshot of the state's living units.
func (r *Recorder) Capture(round int, final bool, s *State) {
	snap := Snapshot{
		Round: round,
		Final: final,
		Grid:  s.Render(),
	}
	for _, u := range s.units {
		if !u.Alive() {
			continue
		}
		snap.Units = append(snap.Units, UnitSnapshot{Pos: u.Pos, HP: u.HP, Side: u.Side})
	}
	r.frames = append(r.frames, snap)
}

// Frames returns the captured snapshots in capture order.
func (r *Recorder) Frames() []Snapshot {
	return r.frames
}

// Len returns the number of captured snapshots.
func (r *Recorder) Len() int {
	return len(r.frames)
}
