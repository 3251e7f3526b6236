package player

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"garden/game"
	"garden/gamemaster"
	"garden/meta"
	"garden/searcher/agent"
)

type Controller interface {
	// TakeTurn plays until the controlled player's turn is over
	TakeTurn() error
}

type agentController struct {
	player game.PlayerID
	agent  agent.Agent
	engine gamemaster.Engine
}

func NewController(player game.PlayerID, agent agent.Agent, engine gamemaster.Engine) *agentController {
	return &agentController{
		player: player,
		agent:  agent,
		engine: engine,
	}
}

func (c *agentController) TakeTurn() error {
	for played := 0; ; played++ {
		state := c.engine.State()
		if state == nil {
			return gamemaster.ErrNotInitialized
		}
		if state.CurrentPlayer != c.player || game.CheckEnd(state).Ended {
			return nil
		}

		action, _ := c.agent.FindMove(state)
		if played >= meta.MAX_ACTIONS_PER_TURN {
			action = game.EndTurn()
		}

		if err := c.engine.Play(action); err != nil {
			log.Warn().Err(err).Msgf("player %d: action %s rejected, ending turn", c.player, action)
			if err := c.engine.Play(game.EndTurn()); err != nil {
				return fmt.Errorf("failed to end turn: %w", err)
			}
			return nil
		}
		if action.Kind == game.KindEndTurn {
			return nil
		}
	}
}

// RunMatch starts a session on engine and lets the controllers, indexed by
// player ID, take turns until the game ends or maxTurns turns have passed.
// Every update is logged with the cells it changed.
func RunMatch(engine gamemaster.Engine, controllers [2]Controller, maxTurns int) (game.GameEnd, error) {
	prev, getUpdate := engine.Init()
	drain := func() {
		for u, ok := getUpdate(); ok; u, ok = getUpdate() {
			diff := game.Diff(prev, u.State)
			log.Debug().
				Int("turn", prev.TurnNumber).
				Int("changed_cells", len(diff.Cells)).
				Int("ip_delta", diff.IPDelta).
				Msgf("player %d played %s", prev.CurrentPlayer, u.Action)
			prev = u.State
		}
	}

	for turn := 0; turn < maxTurns; turn++ {
		state := engine.State()
		if end := game.CheckEnd(state); end.Ended {
			return end, nil
		}
		if err := controllers[state.CurrentPlayer].TakeTurn(); err != nil {
			return game.GameEnd{}, fmt.Errorf("player %d failed to take turn: %w", state.CurrentPlayer, err)
		}
		drain()
	}
	return game.CheckEnd(engine.State()), nil
}
