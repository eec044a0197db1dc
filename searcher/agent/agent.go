package agent

import (
	"uttt/experiments/metrics"
	"uttt/game"
)

// Agent is a player strategy. FindMove is only called on non-terminal states
// with p to move, and must return one of state.LegalMoves(p).
type Agent interface {
	FindMove(state game.GameState, p game.Mark) (game.Move, metrics.SearchMetric, error)
}
