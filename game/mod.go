// Package game implements the rules of the garden: a two-player board where
// species are seeded, the environment is tended and every action is followed
// by a deterministic ecological tick.
package game

type StateHash uint64

type PlayerID int

const (
	Player0 PlayerID = 0
	Player1 PlayerID = 1
)

// Opponent returns the other player.
func (p PlayerID) Opponent() PlayerID {
	return 1 - p
}

type Species string

const (
	Root     Species = "ROOT"
	Spread   Species = "SPREAD"
	Mutation Species = "MUTATION"
)

// AllSpecies is the order in which seeds are enumerated.
var AllSpecies = []Species{Root, Spread, Mutation}

func (s Species) Valid() bool {
	return s == Root || s == Spread || s == Mutation
}

type Direction string

const (
	North Direction = "N"
	East  Direction = "E"
	South Direction = "S"
	West  Direction = "W"
)

// Directions is the canonical neighbor order.
var Directions = []Direction{North, East, South, West}

func (d Direction) Valid() bool {
	return d == North || d == East || d == South || d == West
}

// Offset returns the (dx, dy) step for the direction; north is y-1.
func (d Direction) Offset() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Target selects the environmental value an action manipulates.
type Target string

const (
	Nutrient Target = "N"
	Moisture Target = "M"
)

func (t Target) Valid() bool {
	return t == Nutrient || t == Moisture
}

type Point struct {
	X int
	Y int
}

type Neighbor struct {
	Point
	Dir Direction
}

// Evaluate scores a state from the given player's perspective.
type Evaluate func(s *GameState, player PlayerID) float64
