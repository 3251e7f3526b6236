package experiments

import (
	"garden/meta"
	"garden/searcher"
)

var goroutineCounts = []int{1, 2, 4, meta.GO_ROUTINES}

// RunThroughputExperiment plays medium agents with growing root parallelism
// against the sequential baseline.
func (r *Runner) RunThroughputExperiment() (string, error) {
	baseline := AgentConfig{ID: 0, Config: searcher.Config{Difficulty: searcher.Medium}, Goroutines: 1}
	configs := []AgentConfig{baseline}
	matchUps := [][2]AgentConfig{}
	for i, goroutines := range goroutineCounts {
		config := AgentConfig{ID: i + 1, Config: baseline.Config, Goroutines: goroutines}
		configs = append(configs, config)
		matchUps = append(matchUps, [2]AgentConfig{baseline, config})
	}

	return r.runExperiment("throughput", configs, matchUps)
}
