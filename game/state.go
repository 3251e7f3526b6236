package game

import (
	"encoding/json"
	"fmt"
	"hash/fnv"

	"garden/meta"
)

type Traits struct {
	SpreadBias   int `json:"spreadBias"`
	EnvTolerance int `json:"envTolerance"`
}

type Occupant struct {
	OwnerID PlayerID `json:"ownerId"`
	Species Species  `json:"species"`
	Traits  Traits   `json:"traits"`
	Active  bool     `json:"active"`
}

type Cell struct {
	Nutrient int       `json:"nutrient"`
	Moisture int       `json:"moisture"`
	Occupant *Occupant `json:"occupant"` // nil when the cell is empty
}

// Board is indexed [y][x].
type Board [meta.BOARD_SIZE][meta.BOARD_SIZE]Cell

// GameState is the complete state of a game. States are treated as values:
// every transition returns a fresh copy.
type GameState struct {
	Board         Board    `json:"board"`
	CurrentPlayer PlayerID `json:"currentPlayer"`
	PlayerIP      [2]int   `json:"playerIp"`
	TurnNumber    int      `json:"turnNumber"`
	LastAction    *Action  `json:"lastAction"`
}

// NewGameState returns the initial state of a new game.
func NewGameState() *GameState {
	gs := &GameState{
		CurrentPlayer: Player0,
		PlayerIP:      [2]int{meta.INITIAL_IP, meta.INITIAL_IP},
		TurnNumber:    1,
	}
	for y := range gs.Board {
		for x := range gs.Board[y] {
			gs.Board[y][x] = Cell{Nutrient: meta.INITIAL_ENV, Moisture: meta.INITIAL_ENV}
		}
	}
	return gs
}

// CreateInitialState is an alias of NewGameState.
func CreateInitialState() *GameState {
	return NewGameState()
}

// Copy returns a deep copy; occupants and the last action are reallocated.
func (gs *GameState) Copy() *GameState {
	c := *gs
	for y := range c.Board {
		for x := range c.Board[y] {
			if occ := c.Board[y][x].Occupant; occ != nil {
				o := *occ
				c.Board[y][x].Occupant = &o
			}
		}
	}
	if gs.LastAction != nil {
		a := *gs.LastAction
		c.LastAction = &a
	}
	return &c
}

func CloneState(gs *GameState) *GameState {
	return gs.Copy()
}

func InBounds(x, y int) bool {
	return x >= 0 && x < meta.BOARD_SIZE && y >= 0 && y < meta.BOARD_SIZE
}

// CellAt returns the cell at (x, y), or false when the coordinates are off the board.
func (gs *GameState) CellAt(x, y int) (*Cell, bool) {
	if !InBounds(x, y) {
		return nil, false
	}
	return &gs.Board[y][x], true
}

// Neighbors lists the on-board orthogonal neighbors of (x, y) in N, E, S, W order.
func Neighbors(x, y int) []Neighbor {
	neighbors := make([]Neighbor, 0, len(Directions))
	for _, dir := range Directions {
		dx, dy := dir.Offset()
		nx, ny := x+dx, y+dy
		if InBounds(nx, ny) {
			neighbors = append(neighbors, Neighbor{Point: Point{X: nx, Y: ny}, Dir: dir})
		}
	}
	return neighbors
}

// AdjacentOccupant returns the occupant one step from (x, y) in dir, if any.
func (gs *GameState) AdjacentOccupant(x, y int, dir Direction) (*Occupant, Point, bool) {
	dx, dy := dir.Offset()
	p := Point{X: x + dx, Y: y + dy}
	cell, ok := gs.CellAt(p.X, p.Y)
	if !ok || cell.Occupant == nil {
		return nil, p, false
	}
	return cell.Occupant, p, true
}

func (gs *GameState) countOccupants(match func(*Occupant) bool) int {
	count := 0
	for y := range gs.Board {
		for x := range gs.Board[y] {
			if occ := gs.Board[y][x].Occupant; occ != nil && match(occ) {
				count++
			}
		}
	}
	return count
}

func CountActiveSpecies(gs *GameState, player PlayerID) int {
	return gs.countOccupants(func(o *Occupant) bool { return o.OwnerID == player && o.Active })
}

func CountPassiveSpecies(gs *GameState, player PlayerID) int {
	return gs.countOccupants(func(o *Occupant) bool { return o.OwnerID == player && !o.Active })
}

// CountSpecies counts the player's occupants of one species, active or not.
func CountSpecies(gs *GameState, player PlayerID, species Species) int {
	return gs.countOccupants(func(o *Occupant) bool { return o.OwnerID == player && o.Species == species })
}

// HashState is the canonical serialization of the full state. Equal states
// produce equal strings.
func HashState(gs *GameState) string {
	data, err := json.Marshal(gs)
	if err != nil {
		// All fields are plain values; marshalling cannot fail.
		panic(fmt.Sprintf("failed to hash state: %v", err))
	}
	return string(data)
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	hasher.Write([]byte(HashState(gs)))
	return StateHash(hasher.Sum64())
}

func (gs *GameState) Player() PlayerID {
	return gs.CurrentPlayer
}

func (gs *GameState) LegalMoves() []Action {
	return LegalActions(gs)
}

func (gs *GameState) Play(action Action) *GameState {
	return ApplyAction(gs, action)
}

// Winner returns the winning player once the game has ended.
func (gs *GameState) Winner() (PlayerID, bool) {
	end := CheckEnd(gs)
	if !end.Ended || end.Winner == nil {
		return 0, false
	}
	return *end.Winner, true
}

// Validate checks that an externally supplied state is within the ranges the
// rules can produce.
func (gs *GameState) Validate() error {
	if gs.CurrentPlayer != Player0 && gs.CurrentPlayer != Player1 {
		return fmt.Errorf("%w: current player %d", ErrMalformedState, gs.CurrentPlayer)
	}
	if gs.TurnNumber < 1 {
		return fmt.Errorf("%w: turn number %d", ErrMalformedState, gs.TurnNumber)
	}
	for p, ip := range gs.PlayerIP {
		if ip < 0 {
			return fmt.Errorf("%w: player %d has negative IP %d", ErrMalformedState, p, ip)
		}
	}
	for y := range gs.Board {
		for x := range gs.Board[y] {
			cell := gs.Board[y][x]
			if cell.Nutrient < meta.ENV_MIN || cell.Nutrient > meta.ENV_MAX ||
				cell.Moisture < meta.ENV_MIN || cell.Moisture > meta.ENV_MAX {
				return fmt.Errorf("%w: cell (%d,%d) environment out of range", ErrMalformedState, x, y)
			}
			occ := cell.Occupant
			if occ == nil {
				continue
			}
			if occ.OwnerID != Player0 && occ.OwnerID != Player1 {
				return fmt.Errorf("%w: cell (%d,%d) owner %d", ErrMalformedState, x, y, occ.OwnerID)
			}
			if !occ.Species.Valid() {
				return fmt.Errorf("%w: cell (%d,%d) species %q", ErrMalformedState, x, y, occ.Species)
			}
			if occ.Traits.SpreadBias < -1 || occ.Traits.SpreadBias > 1 ||
				occ.Traits.EnvTolerance < -1 || occ.Traits.EnvTolerance > 1 {
				return fmt.Errorf("%w: cell (%d,%d) traits out of range", ErrMalformedState, x, y)
			}
		}
	}
	return nil
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != meta.BOARD_SIZE {
		return fmt.Errorf("%w: board has %d rows", ErrMalformedState, len(rows))
	}
	for y, row := range rows {
		if len(row) != meta.BOARD_SIZE {
			return fmt.Errorf("%w: board row %d has %d cells", ErrMalformedState, y, len(row))
		}
		copy(b[y][:], row)
	}
	return nil
}

func (gs *GameState) UnmarshalJSON(data []byte) error {
	var raw struct {
		Board         *Board    `json:"board"`
		CurrentPlayer *PlayerID `json:"currentPlayer"`
		PlayerIP      []int     `json:"playerIp"`
		TurnNumber    *int      `json:"turnNumber"`
		LastAction    *Action   `json:"lastAction"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Board == nil || raw.CurrentPlayer == nil || raw.TurnNumber == nil {
		return fmt.Errorf("%w: missing board, currentPlayer or turnNumber", ErrMalformedState)
	}
	if len(raw.PlayerIP) != 2 {
		return fmt.Errorf("%w: playerIp must hold 2 values", ErrMalformedState)
	}
	*gs = GameState{
		Board:         *raw.Board,
		CurrentPlayer: *raw.CurrentPlayer,
		PlayerIP:      [2]int{raw.PlayerIP[0], raw.PlayerIP[1]},
		TurnNumber:    *raw.TurnNumber,
		LastAction:    raw.LastAction,
	}
	return nil
}
