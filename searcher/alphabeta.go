package searcher

import (
	"fmt"
	"time"

	"uttt/experiments/metrics"
	"uttt/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

type Option func(ab *AlphaBeta)

// AlphaBeta is a depth-limited minimax search with alpha-beta pruning and
// one-ply heuristic move ordering. It only holds configuration, so a single
// value can serve concurrent searches.
type AlphaBeta struct {
	depth        int
	duration     time.Duration
	evaluate     game.Evaluator
	pruning      bool
	evalCache    bool
	newCollector func() metrics.Collector
}

func WithDepth(depth int) Option {
	return func(ab *AlphaBeta) {
		if depth > 0 {
			ab.depth = depth
		}
	}
}

// WithDuration bounds the wall time of a search. On expiry the best move fully
// evaluated so far is returned.
func WithDuration(duration time.Duration) Option {
	return func(ab *AlphaBeta) {
		if duration > 0 {
			ab.duration = duration
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluator) Option {
	return func(ab *AlphaBeta) {
		if evaluate != nil {
			ab.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(ab *AlphaBeta) {
		ab.newCollector = metrics.NewCollector
	}
}

// WithEvalCache memoises evaluations per search, keyed by the full state.
func WithEvalCache() Option {
	return func(ab *AlphaBeta) {
		ab.evalCache = true
	}
}

// WithoutPruning turns the search into plain minimax. Results are identical,
// only slower.
func WithoutPruning() Option {
	return func(ab *AlphaBeta) {
		ab.pruning = false
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	ab := &AlphaBeta{ // Default values
		depth:        DefaultDepth,
		evaluate:     game.Evaluate,
		pruning:      true,
		newCollector: metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(ab)
	}
	return ab
}

func (ab *AlphaBeta) Depth() int {
	return ab.depth
}

// ChooseMove returns the best move for p in state.
func (ab *AlphaBeta) ChooseMove(state game.GameState, p game.Mark) (game.Move, error) {
	result, _, err := ab.Search(state, p)
	return result.Move, err
}

// Search runs one top-level search for p. The state must not be terminal.
func (ab *AlphaBeta) Search(state game.GameState, p game.Mark) (Result, metrics.SearchMetric, error) {
	if !p.IsPlayer() {
		return Result{}, metrics.SearchMetric{}, fmt.Errorf("search for %d: %w", p, game.ErrInvalidMove)
	}
	if state.IsTerminal() {
		return Result{}, metrics.SearchMetric{}, ErrNoLegalMoves
	}

	s := ab.newSearch(p)
	s.metrics.Start(ab.depth)

	candidates := s.order(state, p, true)
	if len(candidates) == 0 {
		return Result{}, metrics.SearchMetric{}, ErrNoLegalMoves
	}
	s.metrics.SetCandidates(len(candidates))

	// Fallback if the deadline expires before the first candidate finishes
	best := Result{Move: candidates[0].move, Value: candidates[0].score}
	evaluated := false
	alpha, beta := -Infinity, Infinity
	for _, c := range candidates {
		v := s.value(c.state, p.Opponent(), alpha, beta, ab.depth-1)
		if s.expired {
			break
		}
		if !evaluated || v > best.Value {
			best = Result{Move: c.move, Value: v}
			evaluated = true
		}
		alpha = max(alpha, best.Value)
	}

	metric := s.metrics.Complete()
	log.Debug().
		Str("player", p.String()).
		Str("move", best.Move.String()).
		Int("value", best.Value).
		Int("depth", ab.depth).
		Bool("timedOut", s.expired).
		Msg("search completed")
	return best, metric, nil
}

// search holds the bookkeeping of a single top-level call.
type search struct {
	player   game.Mark // fixed perspective of every evaluation
	evaluate game.Evaluator
	pruning  bool
	deadline time.Time
	expired  bool
	cache    map[game.GameState]int
	metrics  metrics.Collector
}

func (ab *AlphaBeta) newSearch(p game.Mark) *search {
	s := &search{
		player:   p,
		evaluate: ab.evaluate,
		pruning:  ab.pruning,
		metrics:  ab.newCollector(),
	}
	if ab.duration > 0 {
		s.deadline = time.Now().Add(ab.duration)
	}
	if ab.evalCache {
		s.cache = make(map[game.GameState]int)
	}
	return s
}

// value is the minimax value of state with turn to move. Nodes where turn is
// the searching player maximise, the others minimise; both score with the
// searching player's evaluation.
func (s *search) value(state game.GameState, turn game.Mark, alpha, beta, depth int) int {
	s.metrics.AddNode()
	if s.timeUp() {
		return s.score(state)
	}
	if depth == 0 || state.IsTerminal() {
		s.metrics.AddLeaf()
		return s.score(state)
	}

	maximizing := turn == s.player
	candidates := s.order(state, turn, maximizing)

	if maximizing {
		v := -Infinity
		for _, c := range candidates {
			v = max(v, s.value(c.state, turn.Opponent(), alpha, beta, depth-1))
			if s.pruning && v >= beta {
				s.metrics.AddCutoff()
				return v
			}
			alpha = max(alpha, v)
		}
		return v
	}

	v := Infinity
	for _, c := range candidates {
		v = min(v, s.value(c.state, turn.Opponent(), alpha, beta, depth-1))
		if s.pruning && v <= alpha {
			s.metrics.AddCutoff()
			return v
		}
		beta = min(beta, v)
	}
	return v
}

type candidate struct {
	move  game.Move
	state game.GameState
	score int
}

// order expands every legal move of turn and sorts the children by their
// heuristic score, best first for the maximiser and worst first for the
// minimiser. Equal scores fall back to the move itself so the order is total.
func (s *search) order(state game.GameState, turn game.Mark, descending bool) []candidate {
	moves := state.LegalMoves(turn)
	candidates := make([]candidate, len(moves))
	for i, m := range moves {
		child := state.Successor(m, turn)
		candidates[i] = candidate{move: m, state: child, score: s.score(child)}
	}

	slices.SortFunc(candidates, func(a, b candidate) int {
		c := compareCandidates(a, b)
		if descending {
			return -c
		}
		return c
	})
	return candidates
}

func compareCandidates(a, b candidate) int {
	switch {
	case a.score != b.score:
		return a.score - b.score
	case a.move.Board != b.move.Board:
		return a.move.Board - b.move.Board
	default:
		return a.move.Cell - b.move.Cell
	}
}

func (s *search) score(state game.GameState) int {
	if s.cache == nil {
		return s.evaluate(state, s.player)
	}
	if v, ok := s.cache[state]; ok {
		s.metrics.AddCacheHit()
		return v
	}
	v := s.evaluate(state, s.player)
	s.cache[state] = v
	return v
}

func (s *search) timeUp() bool {
	if s.expired {
		return true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.expired = true
		s.metrics.SetTimedOut()
	}
	return s.expired
}
