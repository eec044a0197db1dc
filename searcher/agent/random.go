package agent

import (
	"sync"

	"uttt/experiments/metrics"
	"uttt/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent playing uniformly random legal
// moves. Equal seeds give equal games.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state game.GameState, p game.Mark) (game.Move, metrics.SearchMetric, error) {
	moves := state.LegalMoves(p)
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, game.ErrNoLegalMoves
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{Candidates: len(moves)}, nil
}
