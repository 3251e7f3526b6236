package engine

import (
	"garden/experiments/metrics"
	"garden/game"
)

type Engine interface {
	// Run plays a game till it ends or the turn cap is reached
	Run() (end game.GameEnd, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
