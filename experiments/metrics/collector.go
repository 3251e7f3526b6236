package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Difficulty  string
	Goroutines  int
	Depth       int
	Duration    time.Duration
	Nodes       int
	Evaluations int
	Cutoffs     int
}

type MoveMetric struct {
	Step   int
	Turn   int
	Player int // Player ID
	Action string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         int // -1 when the turn cap was hit
	EndReason      string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Turns          int
}

type Collector interface {
	Start(difficulty string, goroutines, depth int)
	AddNode()
	AddEvaluation()
	AddCutoff()
	Complete() SearchMetric
}

type collector struct {
	difficulty  string
	goroutines  int
	depth       int
	startTime   time.Time
	nodes       atomic.Int64
	evaluations atomic.Int64
	cutoffs     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(difficulty string, goroutines, depth int) {
	m.startTime = time.Now()
	m.difficulty = difficulty
	m.goroutines = goroutines
	m.depth = depth
	m.nodes.Store(0)
	m.evaluations.Store(0)
	m.cutoffs.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Difficulty:  m.difficulty,
		Goroutines:  m.goroutines,
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Evaluations: int(m.evaluations.Load()),
		Cutoffs:     int(m.cutoffs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(difficulty string, goroutines, depth int) {}
func (m *dummyCollector) AddNode()                                       {}
func (m *dummyCollector) AddEvaluation()                                 {}
func (m *dummyCollector) AddCutoff()                                     {}
func (m *dummyCollector) Complete() SearchMetric                         { return SearchMetric{} }
