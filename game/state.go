package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"golang.org/x/exp/slices"
)

const (
	Size       = 9  // sub-boards per game and cells per sub-board
	Cells      = 81 // cells in a game, and therefore the longest possible game
	FreeChoice = -1
)

// SubBoard is one 3x3 board, row-major.
type SubBoard [Size]Mark

// GameState is the full position. It is a plain value: copying it copies the
// whole board, so every transition returns a new state and leaves the
// receiver untouched.
type GameState struct {
	Boards   [Size]SubBoard
	Outcomes [Size]Status
	Forced   int8 // sub-board the next mover must play in, or FreeChoice
}

// Initial returns the empty starting position and the player to move first.
func Initial() (GameState, Mark) {
	return GameState{Forced: FreeChoice}, X
}

// ForcedBoard reports the sub-board the next mover is constrained to. The
// constraint only holds while that sub-board is still ongoing.
func (gs GameState) ForcedBoard() (int, bool) {
	if gs.Forced == FreeChoice || gs.Outcomes[gs.Forced].Decided() {
		return FreeChoice, false
	}
	return int(gs.Forced), true
}

// LegalMoves returns every legal move for p, ordered by board then cell. A
// terminal state has no legal moves.
func (gs GameState) LegalMoves(p Mark) []Move {
	if gs.IsTerminal() {
		return nil
	}

	if b, ok := gs.ForcedBoard(); ok {
		return gs.appendBoardMoves(make([]Move, 0, Size), b)
	}

	moves := make([]Move, 0, Cells)
	for b := 0; b < Size; b++ {
		if gs.Outcomes[b] == Ongoing {
			moves = gs.appendBoardMoves(moves, b)
		}
	}
	return moves
}

func (gs GameState) appendBoardMoves(moves []Move, b int) []Move {
	for c, cell := range gs.Boards[b] {
		if cell == Empty {
			moves = append(moves, Move{Board: b, Cell: c})
		}
	}
	return moves
}

// IsLegal checks a single move without generating the whole move list.
func (gs GameState) IsLegal(m Move) bool {
	if m.Board < 0 || m.Board >= Size || m.Cell < 0 || m.Cell >= Size {
		return false
	}
	if gs.IsTerminal() || gs.Outcomes[m.Board] != Ongoing || gs.Boards[m.Board][m.Cell] != Empty {
		return false
	}
	if b, ok := gs.ForcedBoard(); ok && b != m.Board {
		return false
	}
	return true
}

// Play returns the state after p places a mark according to m. Moves outside
// LegalMoves are rejected with ErrInvalidMove.
func (gs GameState) Play(m Move, p Mark) (GameState, error) {
	if !p.IsPlayer() {
		return gs, fmt.Errorf("%w: %d is not a player", ErrInvalidMove, p)
	}
	if !gs.IsLegal(m) {
		return gs, fmt.Errorf("%w: %v by %v, legal moves are %v", ErrInvalidMove, m, p, gs.LegalMoves(p))
	}
	return gs.play(m, p), nil
}

// play applies an already validated move. gs is a copy, so writing to it does
// not affect the caller's state.
func (gs GameState) play(m Move, p Mark) GameState {
	gs.Boards[m.Board][m.Cell] = p
	gs.Outcomes[m.Board] = boardStatus(gs.Boards[m.Board])

	gs.Forced = int8(m.Cell)
	if gs.Outcomes[m.Cell].Decided() {
		gs.Forced = FreeChoice
	}
	return gs
}

// Successor is the unchecked transition used by search, which only ever plays
// moves produced by LegalMoves.
func (gs GameState) Successor(m Move, p Mark) GameState {
	return gs.play(m, p)
}

// Contains reports whether m is one of the legal moves of p.
func (gs GameState) Contains(m Move, p Mark) bool {
	return slices.Contains(gs.LegalMoves(p), m)
}

// Hash digests the full position. Equal states always hash equally.
func (gs GameState) Hash() StateHash {
	hasher := fnv.New64a()

	for _, board := range gs.Boards {
		binary.Write(hasher, binary.LittleEndian, board)
	}
	binary.Write(hasher, binary.LittleEndian, gs.Outcomes)
	binary.Write(hasher, binary.LittleEndian, gs.Forced)

	return StateHash(hasher.Sum64())
}

// MoveCount is the number of marks on the board.
func (gs GameState) MoveCount() int {
	n := 0
	for _, board := range gs.Boards {
		for _, cell := range board {
			if cell != Empty {
				n++
			}
		}
	}
	return n
}

func boardStatus(board SubBoard) Status {
	switch CheckLine(board) {
	case X:
		return WonByX
	case O:
		return WonByO
	}
	for _, cell := range board {
		if cell == Empty {
			return Ongoing
		}
	}
	return Tied
}
