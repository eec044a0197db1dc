package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes one move search.
type SearchMetric struct {
	Depth           int
	Duration        time.Duration
	Candidates      int // legal moves at the root
	Nodes           int
	LeafEvaluations int
	Cutoffs         int
	CacheHits       int
	TimedOut        bool
}

type MoveMetric struct {
	Step   int
	Player string
	Move   string
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer string
	Winner         string // "X", "O" or "" for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(depth int)
	SetCandidates(n int)
	AddNode()
	AddLeaf()
	AddCutoff()
	AddCacheHit()
	SetTimedOut()
	Complete() SearchMetric
}

type collector struct {
	depth      int
	candidates int
	startTime  time.Time
	nodes      atomic.Int64
	leaves     atomic.Int64
	cutoffs    atomic.Int64
	cacheHits  atomic.Int64
	timedOut   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int) {
	m.startTime = time.Now()
	m.depth = depth
}

func (m *collector) SetCandidates(n int) {
	m.candidates = n
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddCacheHit() {
	m.cacheHits.Add(1)
}

func (m *collector) SetTimedOut() {
	m.timedOut.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:           m.depth,
		Duration:        time.Since(m.startTime),
		Candidates:      m.candidates,
		Nodes:           int(m.nodes.Load()),
		LeafEvaluations: int(m.leaves.Load()),
		Cutoffs:         int(m.cutoffs.Load()),
		CacheHits:       int(m.cacheHits.Load()),
		TimedOut:        m.timedOut.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int)        {}
func (m *dummyCollector) SetCandidates(n int)    {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) AddLeaf()               {}
func (m *dummyCollector) AddCutoff()             {}
func (m *dummyCollector) AddCacheHit()           {}
func (m *dummyCollector) SetTimedOut()           {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
