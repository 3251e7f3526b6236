package searcher

import (
	"math"

	"golang.org/x/sync/errgroup"

	"garden/experiments/metrics"
	"garden/game"
	"garden/meta"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
)

type Config struct {
	Difficulty Difficulty      `yaml:"difficulty" json:"difficulty"`
	Weights    WeightOverrides `yaml:"weights,omitempty" json:"weights,omitempty"`
}

// GenerateMove picks an action for the player to move. Easy plays greedily;
// every other difficulty searches two plies and falls back to greedy play
// when the search yields no action.
func GenerateMove(state *game.GameState, config Config) game.Action {
	player := state.CurrentPlayer
	weights := DefaultWeights().Merge(config.Weights)

	if config.Difficulty == Easy {
		return Greedy(state, player, weights)
	}
	result := Minimax(state, player, meta.SEARCH_DEPTH, math.Inf(-1), math.Inf(1), true, weights)
	if result.Action == nil {
		return Greedy(state, player, weights)
	}
	return *result.Action
}

type Option func(s *Searcher)

type Searcher struct {
	difficulty Difficulty
	depth      int
	weights    Weights
	goroutines int
	metrics    metrics.Collector
}

func WithDifficulty(difficulty Difficulty) Option {
	return func(s *Searcher) {
		if difficulty != "" {
			s.difficulty = difficulty
		}
	}
}

func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

func WithWeights(overrides WeightOverrides) Option {
	return func(s *Searcher) {
		s.weights = s.weights.Merge(overrides)
	}
}

// WithGoroutines splits the root of the search across goroutines.
func WithGoroutines(goroutines int) Option {
	return func(s *Searcher) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		difficulty: Medium,
		depth:      meta.SEARCH_DEPTH,
		weights:    DefaultWeights(),
		goroutines: 1,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// FindMove returns the chosen action for the player to move and the metrics
// of the search (empty unless WithMetrics was given).
func (s *Searcher) FindMove(state *game.GameState) (game.Action, metrics.SearchMetric) {
	s.metrics.Start(string(s.difficulty), s.goroutines, s.depth)

	srch := &search{player: state.CurrentPlayer, evaluate: s.weights.Evaluator(), metrics: s.metrics}

	var action *game.Action
	switch {
	case s.difficulty == Easy:
		greedy := srch.greedy(state)
		action = &greedy
	case s.goroutines > 1:
		action = s.searchRoot(srch, state).Action
	default:
		action = srch.minimax(state, s.depth, math.Inf(-1), math.Inf(1), true).Action
	}
	if action == nil {
		greedy := srch.greedy(state)
		action = &greedy
	}

	return *action, s.metrics.Complete()
}

// searchRoot scores every root action with a full window in parallel and
// keeps the best, breaking ties with game.CompareActions. The root score
// matches the sequential alpha-beta score, and the choice does not depend
// on the number of goroutines.
func (s *Searcher) searchRoot(srch *search, state *game.GameState) Result {
	srch.metrics.AddNode()
	if s.depth == 0 || game.CheckEnd(state).Ended {
		srch.metrics.AddEvaluation()
		return Result{Score: srch.evaluate(state, srch.player)}
	}

	actions := game.LegalActions(state)
	scores := make([]float64, len(actions))

	var g errgroup.Group
	g.SetLimit(s.goroutines)
	for i, action := range actions {
		g.Go(func() error {
			child := game.ApplyAction(state, action)
			scores[i] = srch.minimax(child, s.depth-1, math.Inf(-1), math.Inf(1), false).Score
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	best := Result{Score: math.Inf(-1)}
	for i, action := range actions {
		if scores[i] > best.Score || (scores[i] == best.Score && best.Action != nil && game.CompareActions(action, *best.Action) < 0) {
			chosen := action
			best = Result{Score: scores[i], Action: &chosen}
		}
	}
	return best
}
