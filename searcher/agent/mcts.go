package agent

import (
	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/searcher/mcts"
)

type mctsAgent struct {
	search *mcts.MCTS
}

// NewMCTSAgent returns an agent playing the most visited move of a UCT
// search. It serves as a non-heuristic baseline.
func NewMCTSAgent(search *mcts.MCTS) Agent {
	return mctsAgent{search: search}
}

func (a mctsAgent) FindMove(state game.GameState, p game.Mark) (game.Move, metrics.SearchMetric, error) {
	return a.search.Search(state, p)
}
