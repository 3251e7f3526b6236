package searcher

import (
	"garden/game"
)

// Weights are the coefficients of the linear evaluation.
type Weights struct {
	MyActive        float64 `yaml:"myActive" json:"myActiveWeight"`
	OppActive       float64 `yaml:"oppActive" json:"oppActiveWeight"`
	OppLegalMoves   float64 `yaml:"oppLegalMoves" json:"oppLegalMovesWeight"`
	MyPassive       float64 `yaml:"myPassive" json:"myPassiveWeight"`
	IPAdvantage     float64 `yaml:"ipAdvantage" json:"ipAdvantageWeight"`
	SpreadFootprint float64 `yaml:"spreadFootprint" json:"spreadFootprintWeight"`
}

func DefaultWeights() Weights {
	return Weights{
		MyActive:        10,
		OppActive:       -8,
		OppLegalMoves:   -2,
		MyPassive:       -3,
		IPAdvantage:     5,
		SpreadFootprint: 4,
	}
}

// WeightOverrides holds caller-supplied weights; nil fields keep the base value.
type WeightOverrides struct {
	MyActive        *float64 `yaml:"myActive,omitempty" json:"myActiveWeight,omitempty"`
	OppActive       *float64 `yaml:"oppActive,omitempty" json:"oppActiveWeight,omitempty"`
	OppLegalMoves   *float64 `yaml:"oppLegalMoves,omitempty" json:"oppLegalMovesWeight,omitempty"`
	MyPassive       *float64 `yaml:"myPassive,omitempty" json:"myPassiveWeight,omitempty"`
	IPAdvantage     *float64 `yaml:"ipAdvantage,omitempty" json:"ipAdvantageWeight,omitempty"`
	SpreadFootprint *float64 `yaml:"spreadFootprint,omitempty" json:"spreadFootprintWeight,omitempty"`
}

// Merge returns w with every non-nil override applied.
func (w Weights) Merge(o WeightOverrides) Weights {
	apply := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&w.MyActive, o.MyActive)
	apply(&w.OppActive, o.OppActive)
	apply(&w.OppLegalMoves, o.OppLegalMoves)
	apply(&w.MyPassive, o.MyPassive)
	apply(&w.IPAdvantage, o.IPAdvantage)
	apply(&w.SpreadFootprint, o.SpreadFootprint)
	return w
}

// Evaluate scores the state for player. The mobility term counts the legal
// actions of whoever is to move in the state, as the reference AI does.
func Evaluate(state *game.GameState, player game.PlayerID, w Weights) float64 {
	opponent := player.Opponent()

	myActive := game.CountActiveSpecies(state, player)
	oppActive := game.CountActiveSpecies(state, opponent)
	myPassive := game.CountPassiveSpecies(state, player)
	mobility := len(game.LegalActions(state))
	ipAdvantage := state.PlayerIP[player] - state.PlayerIP[opponent]
	footprint := game.CountSpecies(state, player, game.Spread) - game.CountSpecies(state, opponent, game.Spread)

	return float64(myActive)*w.MyActive +
		float64(oppActive)*w.OppActive +
		float64(mobility)*w.OppLegalMoves +
		float64(myPassive)*w.MyPassive +
		float64(ipAdvantage)*w.IPAdvantage +
		float64(footprint)*w.SpreadFootprint
}

// Evaluator binds the weights into a game.Evaluate.
func (w Weights) Evaluator() game.Evaluate {
	return func(state *game.GameState, player game.PlayerID) float64 {
		return Evaluate(state, player, w)
	}
}
