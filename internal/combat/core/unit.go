package core

import "fmt"

// Faction identifies one of the two opposing sides of a battle.
type Faction uint8

const (
	Elf Faction = iota
	Goblin
)

// Combat constants shared by the whole simulator. Goblin damage is always
// BasePower; elf damage starts there and is raised by the power search.
const (
	StartingHP = 200
	BasePower  = 3
)

// Enemy returns the opposing faction.
func (f Faction) Enemy() Faction {
	if f == Elf {
		return Goblin
	}
	return Elf
}

// Rune returns the map character for the faction.
func (f Faction) Rune() rune {
	if f == Elf {
		return 'E'
	}
	return 'G'
}

// String returns a human readable faction name.
func (f Faction) String() string {
	switch f {
	case Elf:
		return "Elf"
	case Goblin:
		return "Goblin"
	default:
		return fmt.Sprintf("Faction(%d)", uint8(f))
	}
}

// Unit is a single combatant. A unit whose hit points drop to zero or
// below is dead; dead units keep their slot in the battle's unit list and
// are skipped, they never act or block movement again.
type Unit struct {
	Pos  Coordinate
	HP   int
	Side Faction
}

// Alive reports whether the unit can still act.
func (u *Unit) Alive() bool {
	return u.HP > 0
}

// String returns a compact description, e.g. "G(131)@(2,5)".
func (u *Unit) String() string {
	return fmt.Sprintf("%c(%d)@%s", u.Side.Rune(), u.HP, u.Pos)
}
