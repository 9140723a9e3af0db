package testutil

// Battlefield fixtures shared across packages. Each map is in the text
// form the combat parser accepts: '#' wall, '.' floor, 'E' elf, 'G'
// goblin.

// TargetingMap exercises the basic move choice: the elf has two goblins
// in range and must walk toward the reading-order nearest one.
const TargetingMap = `#######
#E..G.#
#...#.#
#.G.#G#
#######`

// FarTargetingMap routes the elf down a winding corridor to the only
// goblin on the map.
const FarTargetingMap = `#######
#.....#
#..E..#
#.....#
#..####
#.....#
#..##.#
#####.#
#...G.#
#######`

// BlockedTargetingMap walls the top elf off from the nearest enemy so
// it must route around the obstacle.
const BlockedTargetingMap = `#######
#.E...#
#..##.#
#E##..#
#G....#
#######`

// NearTargetingMap puts an enemy directly adjacent; the elf must stay
// put rather than walk toward a farther one.
const NearTargetingMap = `#######
#.EG..#
#..G..#
#..#..#
#G....#
#######`

// MovementMap is a pure maneuvering battlefield: eight goblins converge
// on a lone elf over the first three rounds.
const MovementMap = `#########
#G..G..G#
#.......#
#.......#
#G..E..G#
#.......#
#.......#
#G..G..G#
#########`

// CombatMap is the fully-worked reference battle: goblins win after 47
// rounds with 590 hit points left.
const CombatMap = `#######
#.G...#
#...EG#
#.#.#G#
#..G#E#
#.....#
#######`

// ElfWinMap is the one reference battle the elves win at base power.
const ElfWinMap = `#######
#G..#E#
#E#E.E#
#G.##.#
#...#E#
#...E.#
#######`

// DenseMap packs six elves against three goblins, the only battle beside
// ElfWinMap the elves take at base power.
const DenseMap = `#######
#E..EG#
#.#G.E#
#E.##E#
#G..#.#
#..E#.#
#######`

// SplitMap separates the elves into two corners.
const SplitMap = `#######
#E.G#.#
#.#G..#
#G.#.G#
#G..#.#
#...E.#
#######`

// CorridorMap forces the fight through narrow passages.
const CorridorMap = `#######
#.E...#
#.#..G#
#.###.#
#E#G#G#
#...#G#
#######`

// WideMap is the large open battlefield needing the highest boost of
// any reference battle.
const WideMap = `#########
#G......#
#.E.#...#
#..##..G#
#...##..#
#...#...#
#.G...G.#
#.....G.#
#########`
