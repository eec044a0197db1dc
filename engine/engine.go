package engine

import (
	"context"

	"uttt/experiments/metrics"
	"uttt/game"
)

// MaxMoves caps a game; every move fills a cell so it is never reached by a
// well-behaved game.
const MaxMoves = game.Cells

type Runner interface {
	// Run plays a game until it is over, the context is cancelled or an agent fails
	Run(ctx context.Context) (result game.Result, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
