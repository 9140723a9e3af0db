package combat

import (
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
)

// TargetSelector makes the two decisions a unit takes on its turn: which
// tile to walk toward, and which adjacent enemy to strike.
type TargetSelector struct {
	state *State
}

// NewTargetSelector creates a selector bound to one battle's state.
func NewTargetSelector(s *State) *TargetSelector {
	return &TargetSelector{state: s}
}

// MoveDecision is the outcome of the move phase for one unit.
type MoveDecision struct {
	// Step is the tile to step onto; equal to the unit's position when it
	// is already where it wants to be.
	Step core.Coordinate
	// Goal is the chosen destination tile next to an enemy.
	Goal core.Coordinate
	// TargetPos is the position of the enemy the destination belongs to.
	TargetPos core.Coordinate
	// HasPath is false when enemies exist but none of their adjacent
	// tiles is reachable; the unit skips its whole turn.
	HasPath bool
	// EnemiesLeft is false when no living enemy remains anywhere; the
	// battle is over.
	EnemiesLeft bool
}

// moveCandidate orders candidate destinations by (distance, destination,
// enemy position), coordinates in reading order.
type moveCandidate struct {
	distance  int
	goal      core.Coordinate
	targetPos core.Coordinate
	step      core.Coordinate
}

func (c moveCandidate) less(other moveCandidate) bool {
	if c.distance != other.distance {
		return c.distance < other.distance
	}
	if cmp := c.goal.Compare(other.goal); cmp != 0 {
		return cmp < 0
	}
	return c.targetPos.Compare(other.targetPos) < 0
}

// ChooseMove picks the destination for the acting unit: the nearest tile
// adjacent to any living enemy, distance ties broken by reading order of
// the destination. The unit's own tile counts as a candidate when it is
// already adjacent to an enemy, which makes "stay put" a regular outcome
// rather than a special case.
func (ts *TargetSelector) ChooseMove(u *core.Unit) MoveDecision {
	pf := newPathfinder(ts.state, u.Pos)

	var (
		best     moveCandidate
		found    bool
		anyEnemy bool
	)
	for _, enemy := range ts.state.units {
		if enemy.Side == u.Side || !enemy.Alive() {
			continue
		}
		anyEnemy = true
		for _, dest := range ts.state.openNeighbors(enemy.Pos, u.Pos) {
			dist, first, ok := pf.StepsTo(dest)
			if !ok {
				continue
			}
			cand := moveCandidate{distance: dist, goal: dest, targetPos: enemy.Pos, step: first}
			if !found || cand.less(best) {
				best = cand
				found = true
			}
		}
	}

	if !anyEnemy {
		return MoveDecision{}
	}
	if !found {
		return MoveDecision{EnemiesLeft: true}
	}
	return MoveDecision{
		Step:        best.step,
		Goal:        best.goal,
		TargetPos:   best.targetPos,
		HasPath:     true,
		EnemiesLeft: true,
	}
}

// ChooseTarget picks the adjacent living enemy with the lowest hit
// points, ties broken by reading order of position. Returns nil when no
// enemy is adjacent.
func (ts *TargetSelector) ChooseTarget(u *core.Unit) *core.Unit {
	var best *core.Unit
	for _, n := range u.Pos.Neighbors() {
		t, ok := ts.state.UnitAt(n)
		if !ok || t.Side == u.Side {
			continue
		}
		if best == nil || t.HP < best.HP {
			best = t
		}
	}
	return best
}
