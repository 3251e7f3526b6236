// meta/meta.go
package meta

// BOARD_SIZE is the width and height of the garden.
const BOARD_SIZE = 7

// Nutrient and moisture stay within [ENV_MIN, ENV_MAX].
const ENV_MIN = 0
const ENV_MAX = 3

// INITIAL_ENV is the nutrient and moisture of every cell in a new game.
const INITIAL_ENV = 2

// INITIAL_IP is the influence each player starts with.
const INITIAL_IP = 4

// SEARCH_DEPTH is the minimax depth used for non-easy difficulties.
const SEARCH_DEPTH = 2

// GO_ROUTINES is the default number of goroutines for the parallel root search.
const GO_ROUTINES = 8

// MAX_TURNS caps local matches that never reach an end condition.
const MAX_TURNS = 200

// MAX_ACTIONS_PER_TURN forces an EndTurn when an agent keeps acting.
const MAX_ACTIONS_PER_TURN = 32

// REPLAY_VERSION is written into every replay document.
const REPLAY_VERSION = "1.0.0"
