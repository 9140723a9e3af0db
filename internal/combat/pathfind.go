package combat

import (
	"container/heap"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
)

// pathStep is the settled answer for one tile: the shortest distance from
// the origin and the first step of the reading-order optimal path there.
type pathStep struct {
	distance int
	first    core.Coordinate
}

// pathNode is one frontier entry during the search.
type pathNode struct {
	steps int
	first core.Coordinate
	pos   core.Coordinate
}

// pathFrontier is a min-heap of frontier entries ordered by
// (steps, first step, position), coordinates in reading order. Expanding
// the smallest entry first is what makes the tie-breaks exact: among
// equal-length paths, the one whose first step reads earliest claims each
// tile.
type pathFrontier []pathNode

func (f pathFrontier) Len() int { return len(f) }

func (f pathFrontier) Less(i, j int) bool {
	if f[i].steps != f[j].steps {
		return f[i].steps < f[j].steps
	}
	if cmp := f[i].first.Compare(f[j].first); cmp != 0 {
		return cmp < 0
	}
	return f[i].pos.Compare(f[j].pos) < 0
}

func (f pathFrontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *pathFrontier) Push(x any) {
	*f = append(*f, x.(pathNode))
}

func (f *pathFrontier) Pop() any {
	old := *f
	n := len(old)
	node := old[n-1]
	*f = old[:n-1]
	return node
}

// Pathfinder answers shortest-path queries for one acting unit against a
// frozen view of the board and occupancy. Constructing it runs a single
// search from the origin; queries afterwards are map lookups.
type Pathfinder struct {
	origin  core.Coordinate
	reached map[core.Coordinate]pathStep
}

// newPathfinder explores every tile reachable from origin. Tiles occupied
// by living units are impassable; the origin itself is passable (the
// acting unit stands there).
func newPathfinder(s *State, origin core.Coordinate) *Pathfinder {
	p := &Pathfinder{
		origin:  origin,
		reached: map[core.Coordinate]pathStep{origin: {distance: 0, first: origin}},
	}

	frontier := &pathFrontier{{steps: 0, first: origin, pos: origin}}
	heap.Init(frontier)

	for frontier.Len() > 0 {
		cur := heap.Pop(frontier).(pathNode)
		for _, n := range cur.pos.Neighbors() {
			if _, seen := p.reached[n]; seen {
				continue
			}
			if !s.IsOpen(n) {
				continue
			}
			first := cur.first
			if cur.pos == origin {
				first = n
			}
			p.reached[n] = pathStep{distance: cur.steps + 1, first: first}
			heap.Push(frontier, pathNode{steps: cur.steps + 1, first: first, pos: n})
		}
	}
	return p
}

// StepsTo returns the shortest-path distance to dest and the first step of
// the reading-order optimal path there. ok is false when dest is
// unreachable. For dest equal to the origin the distance is zero and the
// first step is the origin itself.
func (p *Pathfinder) StepsTo(dest core.Coordinate) (distance int, first core.Coordinate, ok bool) {
	step, ok := p.reached[dest]
	if !ok {
		return 0, core.Coordinate{}, false
	}
	return step.distance, step.first, true
}
