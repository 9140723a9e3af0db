package combat

import (
	"fmt"
	"sort"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
)

// State is the mutable snapshot of one battle attempt: the immutable
// board, the unit list, and the occupancy index derived from it.
//
// The occupancy invariant holds at every observable point: the keys of
// occupied are exactly the positions of living units, each mapping to the
// unit standing there. Moves and deaths restore it transactionally, never
// at round end only.
type State struct {
	board    *core.Board
	units    []*core.Unit
	occupied map[core.Coordinate]*core.Unit
	elfPower int
}

// newState builds a State from parsed units. Units are sorted into
// reading order of their starting positions, which fixes the first
// round's acting order.
func newState(board *core.Board, units []*core.Unit, elfPower int) *State {
	s := &State{
		board:    board,
		units:    units,
		occupied: make(map[core.Coordinate]*core.Unit, len(units)),
		elfPower: elfPower,
	}
	s.sortUnits()
	for _, u := range s.units {
		s.occupied[u.Pos] = u
	}
	return s
}

// Board returns the battle's immutable board.
func (s *State) Board() *core.Board {
	return s.board
}

// Units returns the battle's unit list, dead units included, in the
// current acting order. Callers must treat it as read-only.
func (s *State) Units() []*core.Unit {
	return s.units
}

// ElfPower returns the attack power elves currently deal.
func (s *State) ElfPower() int {
	return s.elfPower
}

// SetElfPower overrides the elf attack power. Goblin power never changes.
func (s *State) SetElfPower(power int) {
	s.elfPower = power
}

// AttackPower returns the damage one attack by the given faction deals.
func (s *State) AttackPower(f core.Faction) int {
	if f == core.Elf {
		return s.elfPower
	}
	return core.BasePower
}

// Clone deep-copies the units and the occupancy index so a replay can
// start from the authentic initial layout. The board is shared; it is
// immutable.
func (s *State) Clone() *State {
	c := &State{
		board:    s.board,
		units:    make([]*core.Unit, len(s.units)),
		occupied: make(map[core.Coordinate]*core.Unit, len(s.occupied)),
		elfPower: s.elfPower,
	}
	for i, u := range s.units {
		cu := *u
		c.units[i] = &cu
		if cu.Alive() {
			c.occupied[cu.Pos] = c.units[i]
		}
	}
	return c
}

// UnitAt returns the living unit standing on the tile, if any.
func (s *State) UnitAt(c core.Coordinate) (*core.Unit, bool) {
	u, ok := s.occupied[c]
	return u, ok
}

// IsOpen reports whether the tile is open floor with no living unit on it.
func (s *State) IsOpen(c core.Coordinate) bool {
	if !s.board.Contains(c) {
		return false
	}
	_, taken := s.occupied[c]
	return !taken
}

// openNeighbors returns the neighbors of c, in reading order, that a unit
// could stand on: open floor that is unoccupied or equal to allow (the
// acting unit's own tile, so "stay put" stays a valid destination).
func (s *State) openNeighbors(c, allow core.Coordinate) []core.Coordinate {
	out := make([]core.Coordinate, 0, 4)
	for _, n := range c.Neighbors() {
		if !s.board.Contains(n) {
			continue
		}
		if n == allow || s.IsOpen(n) {
			out = append(out, n)
		}
	}
	return out
}

// moveUnit relocates a living unit and updates the occupancy index in the
// same step. The destination must be open.
func (s *State) moveUnit(u *core.Unit, to core.Coordinate) error {
	if s.occupied[u.Pos] != u {
		return fmt.Errorf("unit %s not indexed at its own position: %w", u, core.ErrStateCorrupted)
	}
	if !s.IsOpen(to) {
		return fmt.Errorf("move %s -> %s onto blocked tile: %w", u.Pos, to, core.ErrStateCorrupted)
	}
	delete(s.occupied, u.Pos)
	u.Pos = to
	s.occupied[to] = u
	return nil
}

// recordDeath clears a freshly dead unit from the occupancy index.
func (s *State) recordDeath(u *core.Unit) error {
	if u.Alive() {
		return fmt.Errorf("recording death of living unit %s: %w", u, core.ErrStateCorrupted)
	}
	if s.occupied[u.Pos] != u {
		return fmt.Errorf("dead unit %s not indexed at its own position: %w", u, core.ErrStateCorrupted)
	}
	delete(s.occupied, u.Pos)
	return nil
}

// sortUnits re-sorts the unit list into reading order of current
// positions. Dead units keep their last position; where they land in the
// order is irrelevant since they never act.
func (s *State) sortUnits() {
	sort.Slice(s.units, func(i, j int) bool {
		return s.units[i].Pos.Less(s.units[j].Pos)
	})
}

// FactionStats summarizes one faction's standing.
type FactionStats struct {
	Alive   int
	TotalHP int
}

// Stats recomputes the per-faction living count and hit point total.
func (s *State) Stats() map[core.Faction]FactionStats {
	stats := make(map[core.Faction]FactionStats, 2)
	for _, u := range s.units {
		if !u.Alive() {
			continue
		}
		fs := stats[u.Side]
		fs.Alive++
		fs.TotalHP += u.HP
		stats[u.Side] = fs
	}
	return stats
}

// Deaths counts the faction's dead units.
func (s *State) Deaths(f core.Faction) int {
	n := 0
	for _, u := range s.units {
		if u.Side == f && !u.Alive() {
			n++
		}
	}
	return n
}

// TotalRemainingHP sums the hit points of all living units.
func (s *State) TotalRemainingHP() int {
	total := 0
	for _, u := range s.units {
		if u.Alive() {
			total += u.HP
		}
	}
	return total
}

// LivingHitPoints returns the hit points of living units in the current
// unit list order.
func (s *State) LivingHitPoints() []int {
	hps := make([]int, 0, len(s.units))
	for _, u := range s.units {
		if u.Alive() {
			hps = append(hps, u.HP)
		}
	}
	return hps
}

// VerifyOccupancy checks the occupancy invariant in both directions and
// returns a wrapped ErrStateCorrupted describing the first mismatch.
func (s *State) VerifyOccupancy() error {
	living := 0
	for _, u := range s.units {
		if !u.Alive() {
			continue
		}
		living++
		if s.occupied[u.Pos] != u {
			return fmt.Errorf("living unit %s missing from occupancy index: %w", u, core.ErrStateCorrupted)
		}
	}
	if living != len(s.occupied) {
		return fmt.Errorf("occupancy index has %d entries for %d living units: %w",
			len(s.occupied), living, core.ErrStateCorrupted)
	}
	return nil
}
