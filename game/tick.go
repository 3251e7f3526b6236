package game

import (
	"cmp"

	"golang.org/x/exp/slices"

	"garden/utils"
)

// RunTick advances the ecology of a copy of the state: activity, spread,
// consumption, then forced dormancy.
func RunTick(gs *GameState) *GameState {
	next := gs.Copy()
	runTick(next)
	return next
}

func runTick(gs *GameState) {
	recomputeActive(gs)
	expandSpread(gs)
	consume(gs)
	deactivateBarren(gs)
}

func isActive(occ *Occupant, nutrient, moisture int) bool {
	switch occ.Species {
	case Root:
		return nutrient+moisture >= 2
	case Spread:
		return nutrient >= 1
	case Mutation:
		return moisture >= 1
	default:
		return false
	}
}

func recomputeActive(gs *GameState) {
	for y := range gs.Board {
		for x := range gs.Board[y] {
			cell := &gs.Board[y][x]
			if cell.Occupant != nil {
				cell.Occupant.Active = isActive(cell.Occupant, cell.Nutrient, cell.Moisture)
			}
		}
	}
}

type spreadCandidate struct {
	Neighbor
	score int
}

// expandSpread lets each active SPREAD occupant, in scan order, claim its
// best empty neighbor. Placements are written immediately, so later sources
// see earlier placements of the same tick as occupied.
func expandSpread(gs *GameState) {
	var sources []Point
	for y := range gs.Board {
		for x := range gs.Board[y] {
			if occ := gs.Board[y][x].Occupant; occ != nil && occ.Species == Spread && occ.Active {
				sources = append(sources, Point{X: x, Y: y})
			}
		}
	}

	for _, src := range sources {
		source := gs.Board[src.Y][src.X].Occupant
		var candidates []spreadCandidate
		for _, n := range Neighbors(src.X, src.Y) {
			if gs.Board[n.Y][n.X].Occupant == nil {
				candidates = append(candidates, spreadCandidate{
					Neighbor: n,
					score:    spreadScore(gs, n.Point, source),
				})
			}
		}
		if len(candidates) == 0 {
			continue
		}

		slices.SortFunc(candidates, func(a, b spreadCandidate) int {
			if a.score != b.score {
				return cmp.Compare(b.score, a.score)
			}
			if a.Y != b.Y {
				return cmp.Compare(a.Y, b.Y)
			}
			if a.X != b.X {
				return cmp.Compare(a.X, b.X)
			}
			return cmp.Compare(utils.FindIndex(Directions, a.Dir), utils.FindIndex(Directions, b.Dir))
		})

		target := candidates[0]
		gs.Board[target.Y][target.X].Occupant = &Occupant{
			OwnerID: source.OwnerID,
			Species: Spread,
			Traits:  source.Traits,
			Active:  false,
		}
	}
}

// spreadScore favors rich cells and the source's bias, with a single point
// off for bordering any ROOT of another owner.
func spreadScore(gs *GameState, p Point, source *Occupant) int {
	cell := gs.Board[p.Y][p.X]
	score := cell.Nutrient + cell.Moisture + source.Traits.SpreadBias
	for _, n := range Neighbors(p.X, p.Y) {
		occ := gs.Board[n.Y][n.X].Occupant
		if occ != nil && occ.Species == Root && occ.OwnerID != source.OwnerID {
			score--
			break
		}
	}
	return score
}

func consume(gs *GameState) {
	for y := range gs.Board {
		for x := range gs.Board[y] {
			cell := &gs.Board[y][x]
			if cell.Occupant != nil && cell.Occupant.Active {
				cell.Nutrient = max(0, cell.Nutrient-1)
			}
		}
	}
}

func deactivateBarren(gs *GameState) {
	for y := range gs.Board {
		for x := range gs.Board[y] {
			cell := &gs.Board[y][x]
			if cell.Occupant != nil && cell.Nutrient == 0 && cell.Moisture == 0 {
				cell.Occupant.Active = false
			}
		}
	}
}
