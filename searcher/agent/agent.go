package agent

import (
	"garden/experiments/metrics"
	"garden/game"
	"garden/searcher"
)

type Agent interface {
	// FindMove returns an action for the player to move and performance metrics (if collected) from the search
	FindMove(state *game.GameState) (game.Action, metrics.SearchMetric)
}

type searchAgent struct {
	searcher *searcher.Searcher
}

// NewSearchAgent returns an agent that plays the AI at the configured difficulty.
func NewSearchAgent(config searcher.Config, options ...searcher.Option) Agent {
	opts := append([]searcher.Option{
		searcher.WithDifficulty(config.Difficulty),
		searcher.WithWeights(config.Weights),
	}, options...)
	return searchAgent{searcher: searcher.NewSearcher(opts...)}
}

func (a searchAgent) FindMove(state *game.GameState) (game.Action, metrics.SearchMetric) {
	return a.searcher.FindMove(state)
}

type scriptedAgent struct {
	actions []game.Action
	next    int
}

// NewScriptedAgent plays the given actions in order and ends its turn once
// they run out.
func NewScriptedAgent(actions []game.Action) Agent {
	return &scriptedAgent{actions: actions}
}

func (a *scriptedAgent) FindMove(state *game.GameState) (game.Action, metrics.SearchMetric) {
	if a.next >= len(a.actions) {
		return game.EndTurn(), metrics.SearchMetric{}
	}
	action := a.actions[a.next]
	a.next++
	return action, metrics.SearchMetric{}
}
