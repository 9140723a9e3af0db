package core

import "fmt"

// Coordinate is a position on the battle map. Row counts down from the top
// line of the map text, Col counts right from the start of each line, both
// zero based.
type Coordinate struct {
	Row, Col int
}

// NewCoordinate creates a coordinate from a row and column pair.
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// Compare orders coordinates in reading order: by row first, then by
// column. It returns a negative value when c precedes other, zero when
// they are equal, and a positive value otherwise. Every tie-break in the
// simulator goes through this comparison.
func (c Coordinate) Compare(other Coordinate) int {
	if c.Row != other.Row {
		return c.Row - other.Row
	}
	return c.Col - other.Col
}

// Less reports whether c precedes other in reading order.
func (c Coordinate) Less(other Coordinate) bool {
	return c.Compare(other) < 0
}

// DistanceTo calculates the Manhattan distance to another coordinate.
func (c Coordinate) DistanceTo(other Coordinate) int {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// IsAdjacentTo checks if this coordinate is orthogonally adjacent to another.
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	return c.DistanceTo(other) == 1
}

// Neighbors returns the four orthogonal neighbors in reading order:
// above, left, right, below. Callers rely on this order when scanning
// for ties.
func (c Coordinate) Neighbors() []Coordinate {
	return []Coordinate{
		{Row: c.Row - 1, Col: c.Col},
		{Row: c.Row, Col: c.Col - 1},
		{Row: c.Row, Col: c.Col + 1},
		{Row: c.Row + 1, Col: c.Col},
	}
}

// String returns a string representation of the coordinate.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
