package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"garden/experiments/metrics"
	"garden/game"
	"garden/meta"
	"garden/searcher/agent"
)

type Option func(e *LocalEngine)

// LocalEngine runs a match between two in-process agents, indexed by player ID.
type LocalEngine struct {
	Initial  *game.GameState
	State    *game.GameState
	Agents   [2]agent.Agent
	maxTurns int
	actions  []game.Action
}

func WithInitialState(state *game.GameState) Option {
	return func(e *LocalEngine) {
		if state != nil {
			e.Initial = state
		}
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func NewLocalEngine(agents [2]agent.Agent, options ...Option) *LocalEngine {
	e := &LocalEngine{
		Initial:  game.NewGameState(),
		Agents:   agents,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	e.State = e.Initial
	return e
}

// Run executes the game loop until the game ends or the turn cap is hit.
// Actions the rules reject are replaced by EndTurn.
func (e *LocalEngine) Run() (game.GameEnd, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.State.CurrentPlayer),
		Winner:         -1,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %d is starting", e.State.CurrentPlayer)

	step := 0
	actionsThisTurn := 0
	end := game.CheckEnd(e.State)
	for !end.Ended && e.State.TurnNumber-e.Initial.TurnNumber < e.maxTurns {
		player := e.State.CurrentPlayer
		action, searchMetric := e.Agents[player].FindMove(e.State)

		if action.Kind != game.KindEndTurn && actionsThisTurn >= meta.MAX_ACTIONS_PER_TURN {
			log.Warn().Msgf("player %d exceeded %d actions in turn %d, forcing end of turn", player, meta.MAX_ACTIONS_PER_TURN, e.State.TurnNumber)
			action = game.EndTurn()
		}
		if err := game.Validate(e.State, action); err != nil {
			log.Warn().Err(err).Msgf("player %d chose invalid action %s, forcing end of turn", player, action)
			action = game.EndTurn()
		}

		step++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Turn:         e.State.TurnNumber,
			Player:       int(player),
			Action:       action.String(),
			SearchMetric: searchMetric,
		})
		log.Debug().Int("step", step).Int("turn", e.State.TurnNumber).Msgf("player %d plays %s", player, action)

		e.State = game.ApplyAction(e.State, action)
		e.actions = append(e.actions, action)
		if action.Kind == game.KindEndTurn {
			actionsThisTurn = 0
		} else {
			actionsThisTurn++
		}
		end = game.CheckEnd(e.State)
	}

	if end.Ended {
		gameMetric.Winner = int(*end.Winner)
		gameMetric.EndReason = end.Reason
		log.Info().Msgf("game ended on turn %d: %s", e.State.TurnNumber, end.Reason)
	} else {
		log.Info().Msgf("stopped after %d turns without a winner", e.maxTurns)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	gameMetric.Turns = e.State.TurnNumber - e.Initial.TurnNumber
	return end, gameMetric, moveMetrics
}

// Actions returns the actions applied so far, including forced EndTurns.
func (e *LocalEngine) Actions() []game.Action {
	return append([]game.Action(nil), e.actions...)
}
