package gamemaster

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"garden/game"
	"garden/meta"
	"garden/replay"
	"garden/searcher"
)

var (
	ErrGameOver       = errors.New("game is over - no moves allowed")
	ErrNotInitialized = errors.New("game not initialized")
)

// UpdateGetter returns the next pending update without blocking. It reports
// false when no update is pending or the game is over and all updates have
// been read.
type UpdateGetter func() (Update, bool)

type Engine interface {
	Init() (*game.GameState, UpdateGetter)
	State() *game.GameState
	Play(game.Action) error
}

type Update struct {
	Action game.Action
	State  *game.GameState
	Hash   game.StateHash
}

type Option func(e *localEngine)

// WithInitialState starts sessions from a copy of state instead of a new game.
func WithInitialState(state *game.GameState) Option {
	return func(e *localEngine) {
		if state != nil {
			e.start = state.Copy()
		}
	}
}

type localEngine struct {
	mu        sync.Mutex
	start     *game.GameState
	id        uuid.UUID
	createdAt time.Time
	initial   *game.GameState
	state     *game.GameState
	actions   []game.Action
	updateCh  chan Update
	end       game.GameEnd
}

func NewLocalEngine(options ...Option) *localEngine {
	e := &localEngine{start: game.NewGameState()}
	for _, option := range options {
		option(e)
	}
	return e
}

// Init starts a new session and returns a copy of its initial state.
func (e *localEngine) Init() (*game.GameState, UpdateGetter) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.id = uuid.New()
	e.createdAt = time.Now().UTC()
	e.initial = e.start.Copy()
	e.state = e.initial
	e.actions = nil
	e.end = game.CheckEnd(e.state)
	updateCh := make(chan Update, 2*meta.MAX_ACTIONS_PER_TURN)
	e.updateCh = updateCh
	if e.end.Ended {
		close(updateCh)
	}

	log.Info().Str("game", e.id.String()).Msg("started new game session")

	return e.initial.Copy(), func() (Update, bool) {
		select {
		case u, ok := <-updateCh:
			if !ok { // Game over
				return Update{}, false
			}
			return u, true
		default:
			// No updates yet
			return Update{}, false
		}
	}
}

func (e *localEngine) Play(action game.Action) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil {
		return ErrNotInitialized
	}
	if e.end.Ended {
		return ErrGameOver
	}
	if err := game.Validate(e.state, action); err != nil {
		return fmt.Errorf("illegal action %s: %w", action, err)
	}

	e.state = game.ApplyAction(e.state, action)
	e.actions = append(e.actions, action)

	u := Update{Action: action, State: e.state.Copy(), Hash: e.state.Hash()}
	select {
	case e.updateCh <- u:
	default:
		log.Warn().Str("game", e.id.String()).Msgf("update buffer full, dropping update for %s", action)
	}

	e.end = game.CheckEnd(e.state)
	if e.end.Ended {
		log.Info().Str("game", e.id.String()).Msgf("game over: %s", e.end.Reason)
		close(e.updateCh)
	}
	return nil
}

// State returns a copy of the current state, or nil before Init.
func (e *localEngine) State() *game.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return nil
	}
	return e.state.Copy()
}

func (e *localEngine) Result() game.GameEnd {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.end
}

func (e *localEngine) ID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

func (e *localEngine) Actions() []game.Action {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]game.Action(nil), e.actions...)
}

// Export packages the session as a replay document.
func (e *localEngine) Export(difficulty searcher.Difficulty) (replay.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.initial == nil {
		return replay.Document{}, ErrNotInitialized
	}

	doc := replay.New(e.initial, e.actions, e.end.Winner, string(difficulty), e.end.Reason)
	doc.Metadata.ID = e.id.String()
	doc.Metadata.CreatedAt = e.createdAt
	return doc, nil
}
