package searcher

import (
	"math"

	"garden/experiments/metrics"
	"garden/game"
)

type Result struct {
	Score  float64
	Action *game.Action // nil at leaves
}

// Greedy picks the action whose successor evaluates best for player. Ties go
// to the smaller action under game.CompareActions.
func Greedy(state *game.GameState, player game.PlayerID, w Weights) game.Action {
	s := &search{player: player, evaluate: w.Evaluator(), metrics: metrics.NewDummyCollector()}
	return s.greedy(state)
}

// Minimax is a depth-limited alpha-beta search. Levels alternate between
// maximizing and minimizing regardless of whose turn it is in the state, and
// every evaluation is from player's perspective.
func Minimax(state *game.GameState, player game.PlayerID, depth int, alpha, beta float64, maximizing bool, w Weights) Result {
	s := &search{player: player, evaluate: w.Evaluator(), metrics: metrics.NewDummyCollector()}
	return s.minimax(state, depth, alpha, beta, maximizing)
}

type search struct {
	player   game.PlayerID
	evaluate game.Evaluate
	metrics  metrics.Collector
}

func (s *search) greedy(state *game.GameState) game.Action {
	actions := game.LegalActions(state)
	best := actions[0]
	bestScore := math.Inf(-1)
	for _, action := range actions {
		s.metrics.AddNode()
		s.metrics.AddEvaluation()
		score := s.evaluate(game.ApplyAction(state, action), s.player)
		if score > bestScore || (score == bestScore && game.CompareActions(action, best) < 0) {
			bestScore = score
			best = action
		}
	}
	return best
}

func (s *search) minimax(state *game.GameState, depth int, alpha, beta float64, maximizing bool) Result {
	s.metrics.AddNode()
	if depth == 0 || game.CheckEnd(state).Ended {
		s.metrics.AddEvaluation()
		return Result{Score: s.evaluate(state, s.player)}
	}

	actions := game.LegalActions(state)

	if maximizing {
		best := Result{Score: math.Inf(-1)}
		for _, action := range actions {
			child := s.minimax(game.ApplyAction(state, action), depth-1, alpha, beta, false)
			if child.Score > best.Score || (child.Score == best.Score && best.Action != nil && game.CompareActions(action, *best.Action) < 0) {
				chosen := action
				best = Result{Score: child.Score, Action: &chosen}
			}
			alpha = math.Max(alpha, best.Score)
			if beta <= alpha {
				s.metrics.AddCutoff()
				break
			}
		}
		return best
	}

	best := Result{Score: math.Inf(1)}
	for _, action := range actions {
		child := s.minimax(game.ApplyAction(state, action), depth-1, alpha, beta, true)
		if child.Score < best.Score || (child.Score == best.Score && best.Action != nil && game.CompareActions(action, *best.Action) < 0) {
			chosen := action
			best = Result{Score: child.Score, Action: &chosen}
		}
		beta = math.Min(beta, best.Score)
		if beta <= alpha {
			s.metrics.AddCutoff()
			break
		}
	}
	return best
}
