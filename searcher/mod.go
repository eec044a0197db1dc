package searcher

import "uttt/game"

// Infinity bounds every heuristic score.
const Infinity = 1 << 30

var ErrNoLegalMoves = game.ErrNoLegalMoves

// Result is the move chosen by a search and its backed-up value.
type Result struct {
	Move  game.Move
	Value int
}
