package mcts

import (
	"fmt"
	"sync"
	"time"

	"uttt/experiments/metrics"
	"uttt/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(m *MCTS)

// MCTS is a parallel UCT search with uniformly random playouts. It only holds
// configuration; every Search builds a fresh tree.
type MCTS struct {
	goroutines   int
	episodes     int
	duration     time.Duration
	seed         uint64
	newCollector func() metrics.Collector
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithSeed fixes the playout randomness. With a single goroutine and a fixed
// number of episodes the search is deterministic.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.newCollector = metrics.NewCollector
	}
}

func New(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines:   max(goroutines, 1),
		newCollector: metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Search grows a tree from state with p to move and returns the most visited
// move. Metrics count visited tree nodes and playouts.
func (m *MCTS) Search(state game.GameState, p game.Mark) (game.Move, metrics.SearchMetric, error) {
	if !p.IsPlayer() {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("search for %d: %w", p, game.ErrInvalidMove)
	}
	root := newNode(nil, state, p)
	if len(root.moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, game.ErrNoLegalMoves
	}

	collector := m.newCollector()
	collector.Start(0)
	collector.SetCandidates(len(root.moves))
	if m.episodes > 0 {
		m.iterate(root, state, collector)
	} else {
		m.countdown(root, state, collector)
	}
	metric := collector.Complete()

	move, ok := root.bestMove()
	if !ok { // Budget ran out before the first expansion
		move = root.moves[0]
	}
	log.Debug().
		Str("player", p.String()).
		Str("move", move.String()).
		Int("episodes", metric.LeafEvaluations).
		Msg("mcts search completed")
	return move, metric, nil
}

func (m *MCTS) iterate(root *node, state game.GameState, collector metrics.Collector) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		rng := rand.New(rand.NewSource(m.seed + uint64(i)))
		go func() {
			defer wg.Done()
			for range task {
				simulate(root, state, rng, collector)
			}
		}()
	}
	wg.Wait()
}

func (m *MCTS) countdown(root *node, state game.GameState, collector metrics.Collector) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		rng := rand.New(rand.NewSource(m.seed + uint64(i)))
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					simulate(root, state, rng, collector)
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func simulate(root *node, state game.GameState, rng *rand.Rand, collector metrics.Collector) {
	leaf, state := selectThenExpand(root, state, collector)
	winner := rollout(state, leaf.toMove, rng)
	collector.AddLeaf()

	node := leaf
	for node != nil {
		node = node.backup(winner)
	}
}

func selectThenExpand(root *node, state game.GameState, collector metrics.Collector) (*node, game.GameState) {
	n := root
	for {
		collector.AddNode()
		child, childState, expanded := n.selectOrExpand(state)
		if child == nil { // Terminal
			return n, state
		}
		n, state = child, childState
		if expanded {
			return n, state
		}
	}
}

// rollout plays random moves to the end of the game and returns the winner,
// or Empty for a draw.
func rollout(state game.GameState, p game.Mark, rng *rand.Rand) game.Mark {
	for moves := state.LegalMoves(p); len(moves) > 0; moves = state.LegalMoves(p) {
		state = state.Successor(moves[rng.Intn(len(moves))], p)
		p = p.Opponent()
	}
	return state.Winner()
}
