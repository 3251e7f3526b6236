package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedSpecies(t *testing.T) {
	t.Run("places an occupant and spends 2 IP", func(t *testing.T) {
		for _, species := range AllSpecies {
			next := ApplyAction(NewGameState(), SeedSpecies(species, 3, 3))
			occ := next.Board[3][3].Occupant
			require.NotNil(t, occ, "%s should be placed", species)
			require.Equal(t, species, occ.Species)
			require.Equal(t, Player0, occ.OwnerID)
			require.Equal(t, Traits{}, occ.Traits, "new occupants have neutral traits")
			require.Equal(t, 2, next.PlayerIP[0])
		}
	})

	t.Run("records the last action", func(t *testing.T) {
		action := SeedSpecies(Root, 1, 1)
		next := ApplyAction(NewGameState(), action)
		require.NotNil(t, next.LastAction)
		require.Equal(t, action, *next.LastAction)
	})

	t.Run("rejects an occupied cell", func(t *testing.T) {
		gs := ApplyAction(NewGameState(), SeedSpecies(Root, 3, 3))
		require.ErrorIs(t, Validate(gs, SeedSpecies(Spread, 3, 3)), ErrCellOccupied)

		next := ApplyAction(gs, SeedSpecies(Spread, 3, 3))
		require.Same(t, gs, next, "rejected actions return the input state")
		require.Equal(t, Root, next.Board[3][3].Occupant.Species)
	})

	t.Run("rejects insufficient IP", func(t *testing.T) {
		gs := NewGameState()
		gs.PlayerIP[0] = 1
		require.ErrorIs(t, Validate(gs, SeedSpecies(Root, 3, 3)), ErrInsufficientIP)
		require.Same(t, gs, ApplyAction(gs, SeedSpecies(Root, 3, 3)))
	})

	t.Run("rejects out of bounds", func(t *testing.T) {
		gs := NewGameState()
		require.ErrorIs(t, Validate(gs, SeedSpecies(Root, 7, 0)), ErrOutOfBounds)
		require.ErrorIs(t, Validate(gs, SeedSpecies(Root, 0, -1)), ErrOutOfBounds)
	})
}

func TestManipulateEnv(t *testing.T) {
	t.Run("adjusts nutrient and moisture", func(t *testing.T) {
		next := ApplyAction(NewGameState(), ManipulateEnv(2, 2, Nutrient, 1))
		require.Equal(t, 3, next.Board[2][2].Nutrient)
		require.Equal(t, 3, next.PlayerIP[0], "manipulation costs 1 IP")

		next = ApplyAction(NewGameState(), ManipulateEnv(2, 2, Nutrient, -1))
		require.Equal(t, 1, next.Board[2][2].Nutrient)

		next = ApplyAction(NewGameState(), ManipulateEnv(2, 2, Moisture, 1))
		require.Equal(t, 3, next.Board[2][2].Moisture)
	})

	t.Run("rejects values leaving the range", func(t *testing.T) {
		gs := NewGameState()
		gs.Board[2][2].Nutrient = 3
		require.ErrorIs(t, Validate(gs, ManipulateEnv(2, 2, Nutrient, 1)), ErrValueOutOfRange)
		require.Same(t, gs, ApplyAction(gs, ManipulateEnv(2, 2, Nutrient, 1)))

		gs = NewGameState()
		gs.Board[2][2].Moisture = 0
		require.ErrorIs(t, Validate(gs, ManipulateEnv(2, 2, Moisture, -1)), ErrValueOutOfRange)
	})

	t.Run("rejects without IP", func(t *testing.T) {
		gs := NewGameState()
		gs.PlayerIP[0] = 0
		require.ErrorIs(t, Validate(gs, ManipulateEnv(2, 2, Nutrient, 1)), ErrInsufficientIP)
	})
}

func TestMutate(t *testing.T) {
	tests := []struct {
		dir      Direction
		x, y     int
		wantBias int
	}{
		{North, 3, 2, 1},
		{East, 4, 3, 1},
		{South, 3, 4, -1},
		{West, 2, 3, -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			gs := NewGameState()
			gs.Board[tt.y][tt.x].Occupant = &Occupant{OwnerID: Player0, Species: Mutation}
			gs.PlayerIP[0] = 5

			next := ApplyAction(gs, Mutate(3, 3, tt.dir))
			require.NotSame(t, gs, next)
			require.Equal(t, tt.wantBias, next.Board[tt.y][tt.x].Occupant.Traits.SpreadBias)
			require.Equal(t, 2, next.PlayerIP[0], "mutation costs 3 IP")
			require.Equal(t, 0, gs.Board[tt.y][tt.x].Occupant.Traits.SpreadBias, "input state must not change")
		})
	}

	t.Run("clamps spread bias", func(t *testing.T) {
		gs := ApplyAction(NewGameState(), SeedSpecies(Spread, 3, 2))
		gs.PlayerIP[0] = 20

		gs = ApplyAction(gs, Mutate(3, 3, North))
		require.Equal(t, 1, gs.Board[2][3].Occupant.Traits.SpreadBias)

		gs = ApplyAction(gs, Mutate(3, 3, North))
		require.Equal(t, 1, gs.Board[2][3].Occupant.Traits.SpreadBias, "bias is clamped at 1")
		require.Equal(t, 14, gs.PlayerIP[0], "a clamped mutation still costs IP")
	})

	t.Run("rejects without an adjacent occupant", func(t *testing.T) {
		gs := NewGameState()
		gs.PlayerIP[0] = 5
		require.ErrorIs(t, Validate(gs, Mutate(3, 3, North)), ErrNoAdjacentOccupant)
		require.Same(t, gs, ApplyAction(gs, Mutate(3, 3, North)))
	})

	t.Run("rejects when the neighbor is off the board", func(t *testing.T) {
		gs := NewGameState()
		gs.PlayerIP[0] = 5
		require.ErrorIs(t, Validate(gs, Mutate(0, 0, North)), ErrNoAdjacentOccupant)
	})

	t.Run("rejects with less than 3 IP", func(t *testing.T) {
		gs := NewGameState()
		gs.Board[2][3].Occupant = &Occupant{OwnerID: Player0, Species: Root}
		gs.PlayerIP[0] = 2
		require.ErrorIs(t, Validate(gs, Mutate(3, 3, North)), ErrInsufficientIP)
	})
}

func TestValidateRejectsMalformedValues(t *testing.T) {
	gs := NewGameState()
	gs.PlayerIP[0] = 10
	gs.Board[3][3].Occupant = &Occupant{OwnerID: Player0, Species: Spread, Active: true}

	tests := []struct {
		name   string
		action Action
		err    error
	}{
		{"unknown species", SeedSpecies("TREE", 1, 1), ErrUnknownAction},
		{"unknown target", ManipulateEnv(1, 1, "X", 1), ErrUnknownAction},
		{"zero delta", ManipulateEnv(1, 1, Nutrient, 0), ErrValueOutOfRange},
		{"delta of two", ManipulateEnv(1, 1, Moisture, -2), ErrValueOutOfRange},
		{"unknown direction", Mutate(3, 3, "Q"), ErrUnknownAction},
		{"unknown kind", Action{Kind: "Burn"}, ErrUnknownAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, Validate(gs, tt.action), tt.err)
			require.Same(t, gs, ApplyAction(gs, tt.action), "the state is left untouched")
		})
	}
	require.Equal(t, 10, gs.PlayerIP[0])
	require.Zero(t, gs.Board[3][3].Occupant.Traits.SpreadBias)
}

func TestIPNeverNegative(t *testing.T) {
	t.Run("dormant garden still gains IP", func(t *testing.T) {
		gs := NewGameState()
		gs.PlayerIP[1] = 0
		for _, p := range []Point{{X: 0, Y: 6}, {X: 1, Y: 6}, {X: 2, Y: 6}} {
			gs.Board[p.Y][p.X] = Cell{Occupant: &Occupant{OwnerID: Player1, Species: Root}}
		}

		next := ApplyAction(gs, EndTurn())
		require.Equal(t, 3, CountPassiveSpecies(next, Player1))
		require.Equal(t, 1, next.PlayerIP[1], "2 IP minus the dormancy penalty")
	})

	t.Run("walk over legal actions", func(t *testing.T) {
		gs := NewGameState()
		gs.PlayerIP[1] = 0
		for _, p := range []Point{{X: 4, Y: 6}, {X: 5, Y: 6}, {X: 6, Y: 6}} {
			gs.Board[p.Y][p.X] = Cell{Occupant: &Occupant{OwnerID: Player1, Species: Mutation}}
		}

		for step := 0; step < 400 && !CheckEnd(gs).Ended; step++ {
			actions := LegalActions(gs)
			action := actions[(step*31+7)%len(actions)]
			require.NoError(t, Validate(gs, action), "step %d: %s", step, action)

			gs = ApplyAction(gs, action)
			require.GreaterOrEqual(t, gs.PlayerIP[0], 0, "step %d: %s", step, action)
			require.GreaterOrEqual(t, gs.PlayerIP[1], 0, "step %d: %s", step, action)
		}
	})
}

func TestEndTurn(t *testing.T) {
	t.Run("switches player and advances the turn", func(t *testing.T) {
		next := ApplyAction(NewGameState(), EndTurn())
		require.Equal(t, Player1, next.CurrentPlayer)
		require.Equal(t, 2, next.TurnNumber)
		require.Equal(t, 4, next.PlayerIP[0], "ending a turn is free")
	})

	t.Run("grants 2 IP to the new player", func(t *testing.T) {
		gs := NewGameState()
		gs.PlayerIP[1] = 0
		next := ApplyAction(gs, EndTurn())
		require.Equal(t, 2, next.PlayerIP[1])
	})

	t.Run("adds 1 when the new player has 3 active", func(t *testing.T) {
		gs := NewGameState()
		gs.PlayerIP[1] = 0
		for x := 0; x < 3; x++ {
			gs.Board[5][x].Occupant = &Occupant{OwnerID: Player1, Species: Root, Active: true}
		}
		next := ApplyAction(gs, EndTurn())
		require.Equal(t, 3, next.PlayerIP[1])
	})

	t.Run("subtracts 1 when the new player has 3 passive", func(t *testing.T) {
		gs := NewGameState()
		gs.PlayerIP[1] = 0
		for x := 0; x < 3; x++ {
			gs.Board[5][x].Occupant = &Occupant{OwnerID: Player1, Species: Root, Active: false}
		}
		next := ApplyAction(gs, EndTurn())
		require.Equal(t, 1, next.PlayerIP[1])
	})

	t.Run("ignores the opponent's garden", func(t *testing.T) {
		gs := NewGameState()
		gs.PlayerIP[1] = 0
		for x := 0; x < 3; x++ {
			gs.Board[5][x].Occupant = &Occupant{OwnerID: Player0, Species: Root, Active: true}
		}
		next := ApplyAction(gs, EndTurn())
		require.Equal(t, 2, next.PlayerIP[1])
	})
}

func TestCheckEnd(t *testing.T) {
	t.Run("not ended at start", func(t *testing.T) {
		end := CheckEnd(NewGameState())
		require.False(t, end.Ended)
		require.Nil(t, end.Winner)
	})

	t.Run("ends without IP and active species", func(t *testing.T) {
		gs := NewGameState()
		gs.PlayerIP[0] = 0
		end := CheckEnd(gs)
		require.True(t, end.Ended)
		require.NotNil(t, end.Winner)
		require.Equal(t, Player1, *end.Winner)
		require.Equal(t, "Player 0 has no IP and no active species", end.Reason)

		winner, ok := gs.Winner()
		require.True(t, ok)
		require.Equal(t, Player1, winner)
	})

	t.Run("active species keep the game going", func(t *testing.T) {
		gs := ApplyAction(NewGameState(), SeedSpecies(Root, 3, 3))
		gs.PlayerIP[0] = 0
		require.False(t, CheckEnd(gs).Ended)
	})

	t.Run("only the player to move is checked", func(t *testing.T) {
		gs := NewGameState()
		gs.PlayerIP[1] = 0
		require.False(t, CheckEnd(gs).Ended)
	})
}

func TestSimulate(t *testing.T) {
	t.Run("valid action returns the next state", func(t *testing.T) {
		gs := NewGameState()
		next, err := Simulate(gs, SeedSpecies(Root, 3, 3))
		require.NoError(t, err)
		require.Equal(t, Root, next.Board[3][3].Occupant.Species)
		require.Equal(t, HashState(ApplyAction(gs, SeedSpecies(Root, 3, 3))), HashState(next))
	})

	t.Run("invalid action returns an error", func(t *testing.T) {
		gs := NewGameState()
		gs.PlayerIP[0] = 1
		next, err := Simulate(gs, SeedSpecies(Root, 3, 3))
		require.Nil(t, next)
		require.ErrorIs(t, err, ErrRejected)
		require.ErrorIs(t, err, ErrInsufficientIP)
	})

	t.Run("panics surface as errors", func(t *testing.T) {
		gs := NewGameState()
		gs.CurrentPlayer = 5

		next, err := Simulate(gs, EndTurn())
		require.Nil(t, next)
		require.ErrorContains(t, err, "failed to simulate")
	})

	t.Run("input state is untouched", func(t *testing.T) {
		gs := NewGameState()
		before := HashState(gs)
		_, err := Simulate(gs, SeedSpecies(Spread, 3, 3))
		require.NoError(t, err)
		require.Equal(t, before, HashState(gs))
	})
}

func TestReplay(t *testing.T) {
	t.Run("empty list returns the initial state", func(t *testing.T) {
		gs := NewGameState()
		require.Equal(t, HashState(gs), HashState(Replay(gs, nil)))
	})

	t.Run("applies actions in order", func(t *testing.T) {
		final := Replay(NewGameState(), []Action{
			SeedSpecies(Root, 3, 3),
			SeedSpecies(Spread, 4, 3),
			EndTurn(),
		})
		require.Equal(t, Root, final.Board[3][3].Occupant.Species)
		require.Equal(t, Spread, final.Board[3][4].Occupant.Species)
		require.Equal(t, Player1, final.CurrentPlayer)
	})

	t.Run("is deterministic", func(t *testing.T) {
		actions := []Action{
			SeedSpecies(Root, 3, 3),
			SeedSpecies(Spread, 2, 2),
			ManipulateEnv(4, 4, Nutrient, 1),
			EndTurn(),
			SeedSpecies(Mutation, 5, 5),
			ManipulateEnv(5, 5, Moisture, -1),
			EndTurn(),
			ManipulateEnv(3, 3, Nutrient, -1),
			EndTurn(),
			EndTurn(),
		}
		initial := NewGameState()
		run1 := Replay(initial, actions)
		run2 := Replay(initial, actions)
		require.Equal(t, HashState(run1), HashState(run2))
		require.Equal(t, HashState(NewGameState()), HashState(initial), "replay must not mutate its input")
	})

	t.Run("rejected actions are skipped", func(t *testing.T) {
		final := Replay(NewGameState(), []Action{
			SeedSpecies(Root, 3, 3),
			SeedSpecies(Root, 3, 3),
		})
		require.Equal(t, 2, final.PlayerIP[0])
	})
}
