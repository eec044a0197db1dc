package game

import (
	"errors"
	"fmt"
)

// Mark is the content of a cell and the identity of a player. The two players
// are symmetric around zero so that negating a mark flips the perspective.
type Mark int8

const (
	Empty Mark = 0
	X     Mark = 1  // moves first
	O     Mark = -1 // moves second
)

// Opponent returns the other player.
func (m Mark) Opponent() Mark {
	return -m
}

func (m Mark) IsPlayer() bool {
	return m == X || m == O
}

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "."
	}
}

// Status of a single sub-board. Once a sub-board leaves Ongoing it is never
// recomputed.
type Status int8

const (
	Ongoing Status = 0
	WonByX  Status = 1
	WonByO  Status = -1
	Tied    Status = 2
)

// Mark projects a status onto the meta-board: a won sub-board counts as its
// winner's mark, ongoing and tied sub-boards count as empty.
func (s Status) Mark() Mark {
	switch s {
	case WonByX:
		return X
	case WonByO:
		return O
	default:
		return Empty
	}
}

func (s Status) Decided() bool {
	return s != Ongoing
}

func (s Status) String() string {
	switch s {
	case WonByX:
		return "X"
	case WonByO:
		return "O"
	case Tied:
		return "="
	default:
		return " "
	}
}

// Result classifies a whole game.
type Result int

const (
	InProgress Result = iota
	XWon
	OWon
	Drawn
)

func (r Result) String() string {
	switch r {
	case XWon:
		return "X wins"
	case OWon:
		return "O wins"
	case Drawn:
		return "draw"
	default:
		return "in progress"
	}
}

// Move places a mark on cell Cell of sub-board Board, both in [0,8].
type Move struct {
	Board int
	Cell  int
}

func (m Move) String() string {
	return fmt.Sprintf("%d,%d", m.Board, m.Cell)
}

type StateHash uint64

// Evaluator scores a state from the perspective of player p; higher is
// better for p.
type Evaluator func(s GameState, p Mark) int

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrNoLegalMoves = errors.New("no legal moves")
)
