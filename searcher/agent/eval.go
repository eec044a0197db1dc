package agent

import (
	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/searcher"
)

type evaluationAgent struct {
	search *searcher.AlphaBeta
}

// NewEvaluationAgent returns an agent that plays the alpha-beta search's
// choice.
func NewEvaluationAgent(search *searcher.AlphaBeta) Agent {
	return evaluationAgent{search: search}
}

func (a evaluationAgent) FindMove(state game.GameState, p game.Mark) (game.Move, metrics.SearchMetric, error) {
	result, metric, err := a.search.Search(state, p)
	return result.Move, metric, err
}
