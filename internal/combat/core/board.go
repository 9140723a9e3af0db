package core

// Board is the immutable set of open floor tiles for one battle map.
// Storage is row-major over the map's bounding rectangle; walls and
// anything outside the rectangle are closed. Boards are built once at
// parse time and never mutated afterwards.
type Board struct {
	W, H int
	open []bool
}

// NewBoard creates a board of the given dimensions whose open tiles are
// exactly the coordinates in floor.
func NewBoard(width, height int, floor []Coordinate) *Board {
	b := &Board{
		W:    width,
		H:    height,
		open: make([]bool, width*height),
	}
	for _, c := range floor {
		if b.InBounds(c) {
			b.open[b.idx(c)] = true
		}
	}
	return b
}

func (b *Board) idx(c Coordinate) int {
	return c.Row*b.W + c.Col
}

// InBounds checks whether the coordinate lies inside the bounding rectangle.
func (b *Board) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < b.H && c.Col >= 0 && c.Col < b.W
}

// Contains reports whether the coordinate is open floor.
func (b *Board) Contains(c Coordinate) bool {
	return b.InBounds(c) && b.open[b.idx(c)]
}

// OpenCount returns the number of open floor tiles.
func (b *Board) OpenCount() int {
	n := 0
	for _, o := range b.open {
		if o {
			n++
		}
	}
	return n
}
