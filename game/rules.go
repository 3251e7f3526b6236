package game

import (
	"fmt"

	"garden/meta"
	"garden/utils"
)

// Validate reports why an action cannot be applied to the state, or nil.
func Validate(gs *GameState, action Action) error {
	ip := gs.PlayerIP[gs.CurrentPlayer]
	switch action.Kind {
	case KindSeedSpecies:
		if !action.Species.Valid() {
			return fmt.Errorf("%w: species %q", ErrUnknownAction, action.Species)
		}
		if ip < 2 {
			return fmt.Errorf("%w: have %d, need 2", ErrInsufficientIP, ip)
		}
		cell, ok := gs.CellAt(action.X, action.Y)
		if !ok {
			return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, action.X, action.Y)
		}
		if cell.Occupant != nil {
			return fmt.Errorf("%w: (%d,%d)", ErrCellOccupied, action.X, action.Y)
		}
		return nil
	case KindManipulateEnv:
		if !action.Target.Valid() {
			return fmt.Errorf("%w: target %q", ErrUnknownAction, action.Target)
		}
		if action.Delta != 1 && action.Delta != -1 {
			return fmt.Errorf("%w: delta %d", ErrValueOutOfRange, action.Delta)
		}
		if ip < 1 {
			return fmt.Errorf("%w: have %d, need 1", ErrInsufficientIP, ip)
		}
		cell, ok := gs.CellAt(action.X, action.Y)
		if !ok {
			return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, action.X, action.Y)
		}
		current := cell.Nutrient
		if action.Target == Moisture {
			current = cell.Moisture
		}
		if next := current + action.Delta; next < meta.ENV_MIN || next > meta.ENV_MAX {
			return fmt.Errorf("%w: %s would become %d", ErrValueOutOfRange, action.Target, next)
		}
		return nil
	case KindMutate:
		if !action.Dir.Valid() {
			return fmt.Errorf("%w: dir %q", ErrUnknownAction, action.Dir)
		}
		if ip < 3 {
			return fmt.Errorf("%w: have %d, need 3", ErrInsufficientIP, ip)
		}
		if !InBounds(action.X, action.Y) {
			return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, action.X, action.Y)
		}
		if _, _, ok := gs.AdjacentOccupant(action.X, action.Y, action.Dir); !ok {
			return fmt.Errorf("%w: %s of (%d,%d)", ErrNoAdjacentOccupant, action.Dir, action.X, action.Y)
		}
		return nil
	case KindEndTurn:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action.Kind)
	}
}

// ApplyAction returns the state after the action and the tick that follows
// it. A rejected action returns the input pointer unchanged.
func ApplyAction(gs *GameState, action Action) *GameState {
	if Validate(gs, action) != nil {
		return gs
	}

	next := gs.Copy()
	player := next.CurrentPlayer

	switch action.Kind {
	case KindSeedSpecies:
		next.Board[action.Y][action.X].Occupant = &Occupant{
			OwnerID: player,
			Species: action.Species,
			Active:  false,
		}
	case KindManipulateEnv:
		cell := &next.Board[action.Y][action.X]
		if action.Target == Nutrient {
			cell.Nutrient = utils.Clamp(cell.Nutrient+action.Delta, meta.ENV_MIN, meta.ENV_MAX)
		} else {
			cell.Moisture = utils.Clamp(cell.Moisture+action.Delta, meta.ENV_MIN, meta.ENV_MAX)
		}
	case KindMutate:
		occ, _, _ := next.AdjacentOccupant(action.X, action.Y, action.Dir)
		delta := -1
		if action.Dir == North || action.Dir == East {
			delta = 1
		}
		occ.Traits.SpreadBias = utils.Clamp(occ.Traits.SpreadBias+delta, -1, 1)
	case KindEndTurn:
		next.CurrentPlayer = player.Opponent()
		next.TurnNumber++
		next.PlayerIP[next.CurrentPlayer] += 2 + ecoBonus(next, next.CurrentPlayer)
	}
	next.PlayerIP[player] -= action.Cost()

	recorded := action
	next.LastAction = &recorded

	runTick(next)
	return next
}

// ecoBonus rewards a thriving garden and penalizes a dormant one. The
// opponent's garden does not affect it.
func ecoBonus(gs *GameState, player PlayerID) int {
	if CountActiveSpecies(gs, player) >= 3 {
		return 1
	}
	if CountPassiveSpecies(gs, player) >= 3 {
		return -1
	}
	return 0
}

// CheckEnd reports whether the player to move is out of IP with nothing
// active, in which case the other player wins.
func CheckEnd(gs *GameState) GameEnd {
	player := gs.CurrentPlayer
	if gs.PlayerIP[player] == 0 && CountActiveSpecies(gs, player) == 0 {
		winner := player.Opponent()
		return GameEnd{
			Ended:  true,
			Winner: &winner,
			Reason: fmt.Sprintf("Player %d has no IP and no active species", player),
		}
	}
	return GameEnd{}
}

type GameEnd struct {
	Ended  bool
	Winner *PlayerID
	Reason string
}

// Replay folds the actions over the initial state. Rejected actions leave
// the running state unchanged.
func Replay(initial *GameState, actions []Action) *GameState {
	state := initial
	for _, action := range actions {
		state = ApplyAction(state, action)
	}
	return state
}

// Simulate previews an action, reporting rejection as an error.
func Simulate(gs *GameState, action Action) (next *GameState, err error) {
	defer func() {
		if r := recover(); r != nil {
			next = nil
			err = fmt.Errorf("failed to simulate %s: %v", action, r)
		}
	}()

	if verr := Validate(gs, action); verr != nil {
		return nil, fmt.Errorf("%w: %w", ErrRejected, verr)
	}
	next = ApplyAction(gs, action)
	if next == gs {
		return nil, ErrRejected
	}
	return next, nil
}
