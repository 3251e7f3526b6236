package experiments

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"garden/engine"
	"garden/experiments/metrics"
	"garden/meta"
	"garden/searcher"
	"garden/searcher/agent"
)

type AgentConfig struct {
	ID         int
	Config     searcher.Config
	Depth      int // 0 uses meta.SEARCH_DEPTH
	Goroutines int // 0 runs sequentially
}

func (c AgentConfig) record() metrics.AgentRecord {
	weights, _ := json.Marshal(searcher.DefaultWeights().Merge(c.Config.Weights))
	depth := c.Depth
	if depth == 0 {
		depth = meta.SEARCH_DEPTH
	}
	goroutines := max(c.Goroutines, 1)
	return metrics.AgentRecord{
		ID:         c.ID,
		Difficulty: string(c.Config.Difficulty),
		Depth:      depth,
		Goroutines: goroutines,
		Weights:    string(weights),
	}
}

func (c AgentConfig) agent() agent.Agent {
	return agent.NewSearchAgent(c.Config,
		searcher.WithDepth(c.Depth),
		searcher.WithGoroutines(c.Goroutines),
		searcher.WithMetrics(),
	)
}

type Option func(r *Runner)

// Runner plays matchups of agent configs and stores the results.
type Runner struct {
	outDir   string
	numGames int // Per matchup
	maxTurns int
}

func WithOutputDir(dir string) Option {
	return func(r *Runner) {
		if dir != "" {
			r.outDir = dir
		}
	}
}

func WithGamesPerMatchup(games int) Option {
	return func(r *Runner) {
		if games > 0 {
			r.numGames = games
		}
	}
}

func WithMaxTurns(turns int) Option {
	return func(r *Runner) {
		if turns > 0 {
			r.maxTurns = turns
		}
	}
}

func NewRunner(options ...Option) *Runner {
	r := &Runner{
		outDir:   "experiments",
		numGames: 10,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// RunDifficultyExperiment pits the greedy player against the two-ply search.
func (r *Runner) RunDifficultyExperiment() (string, error) {
	configs := []AgentConfig{
		{ID: 1, Config: searcher.Config{Difficulty: searcher.Easy}},
		{ID: 2, Config: searcher.Config{Difficulty: searcher.Medium}},
	}
	matchUps := [][2]AgentConfig{{configs[0], configs[1]}}
	return r.runExperiment("difficulty", configs, matchUps)
}

// RunExperiment plays every pair of configs against each other.
func (r *Runner) RunExperiment(name string, configs []AgentConfig) (string, error) {
	matchUps := [][2]AgentConfig{}
	for i := range configs {
		for j := i + 1; j < len(configs); j++ {
			matchUps = append(matchUps, [2]AgentConfig{configs[i], configs[j]})
		}
	}
	return r.runExperiment(name, configs, matchUps)
}

func (r *Runner) runExperiment(name string, configs []AgentConfig, matchUps [][2]AgentConfig) (string, error) {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent %d and agent %d...", mi+1, len(matchUps), matchup[0].ID, matchup[1].ID)

		for i := 0; i < r.numGames; i++ {
			// Alternate seats so both agents open the same number of games
			seats := matchup
			if i%2 == 1 {
				seats = [2]AgentConfig{matchup[1], matchup[0]}
			}

			gameMetric, moveMetrics := r.runGame(seats)
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     seats[0].ID,
				Agent2:     seats[1].ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %d", mi+1, len(matchUps), i+1, r.numGames, gameMetric.Winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	return r.store(name, configs, gameRecords, moveRecords)
}

func (r *Runner) runGame(seats [2]AgentConfig) (metrics.GameMetric, []metrics.MoveMetric) {
	agents := [2]agent.Agent{seats[0].agent(), seats[1].agent()}
	e := engine.NewLocalEngine(agents, engine.WithMaxTurns(r.maxTurns))
	_, gameMetric, moveMetrics := e.Run()
	return gameMetric, moveMetrics
}

func (r *Runner) store(name string, configs []AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(r.outDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	records := make([]metrics.AgentRecord, 0, len(configs))
	for _, config := range configs {
		records = append(records, config.record())
	}
	if err := writer.WriteAgentConfigs(records); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to store move records: %w", err)
	}
	if err := writer.WriteMoveRecordsParquet(moves); err != nil {
		return "", fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Msgf("stored %s experiment results in %s", name, writer.Dir())

	return writer.Dir(), nil
}
