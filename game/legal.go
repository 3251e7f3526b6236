package game

import "garden/meta"

// CandidateCells is the locality policy for move generation. On an empty
// board every cell is a candidate in scan order. Otherwise each occupied cell,
// in scan order, contributes its empty neighbors (N, E, S, W) followed by
// itself; the first occurrence of a cell fixes its position.
//
// The policy only narrows what LegalActions offers; Validate accepts
// actions on any cell.
func CandidateCells(gs *GameState) []Point {
	var occupied []Point
	for y := range gs.Board {
		for x := range gs.Board[y] {
			if gs.Board[y][x].Occupant != nil {
				occupied = append(occupied, Point{X: x, Y: y})
			}
		}
	}

	if len(occupied) == 0 {
		all := make([]Point, 0, meta.BOARD_SIZE*meta.BOARD_SIZE)
		for y := 0; y < meta.BOARD_SIZE; y++ {
			for x := 0; x < meta.BOARD_SIZE; x++ {
				all = append(all, Point{X: x, Y: y})
			}
		}
		return all
	}

	seen := make(map[Point]bool)
	var candidates []Point
	add := func(p Point) {
		if !seen[p] {
			seen[p] = true
			candidates = append(candidates, p)
		}
	}
	for _, p := range occupied {
		for _, n := range Neighbors(p.X, p.Y) {
			if gs.Board[n.Y][n.X].Occupant == nil {
				add(n.Point)
			}
		}
		add(p)
	}
	return candidates
}

// LegalActions enumerates the actions offered to the current player in a
// fixed order: seeds, environment manipulations, mutations, then EndTurn.
func LegalActions(gs *GameState) []Action {
	ip := gs.PlayerIP[gs.CurrentPlayer]
	candidates := CandidateCells(gs)
	actions := []Action{}

	if ip >= 2 {
		for _, p := range candidates {
			if gs.Board[p.Y][p.X].Occupant != nil {
				continue
			}
			for _, species := range AllSpecies {
				actions = append(actions, SeedSpecies(species, p.X, p.Y))
			}
		}
	}

	if ip >= 1 {
		for _, p := range candidates {
			cell := gs.Board[p.Y][p.X]
			if cell.Nutrient < meta.ENV_MAX {
				actions = append(actions, ManipulateEnv(p.X, p.Y, Nutrient, 1))
			}
			if cell.Nutrient > meta.ENV_MIN {
				actions = append(actions, ManipulateEnv(p.X, p.Y, Nutrient, -1))
			}
			if cell.Moisture < meta.ENV_MAX {
				actions = append(actions, ManipulateEnv(p.X, p.Y, Moisture, 1))
			}
			if cell.Moisture > meta.ENV_MIN {
				actions = append(actions, ManipulateEnv(p.X, p.Y, Moisture, -1))
			}
		}
	}

	if ip >= 3 {
		for _, p := range candidates {
			for _, dir := range Directions {
				if _, _, ok := gs.AdjacentOccupant(p.X, p.Y, dir); ok {
					actions = append(actions, Mutate(p.X, p.Y, dir))
				}
			}
		}
	}

	return append(actions, EndTurn())
}
