package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"uttt/experiments/metrics"
	"uttt/game"
)

var ErrInputClosed = errors.New("input closed")

// Human asks a person for moves, re-prompting until a legal move is entered.
type Human struct {
	in       *bufio.Scanner
	out      io.Writer
	renderer *Renderer
}

func NewHuman(in io.Reader, out io.Writer, renderer *Renderer) *Human {
	return &Human{
		in:       bufio.NewScanner(in),
		out:      out,
		renderer: renderer,
	}
}

func (h *Human) FindMove(state game.GameState, p game.Mark) (game.Move, metrics.SearchMetric, error) {
	moves := state.LegalMoves(p)
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, game.ErrNoLegalMoves
	}

	if h.renderer != nil {
		h.renderer.Render(state)
	}
	fmt.Fprintf(h.out, "\nPlayer %v's turn\n", p)
	fmt.Fprintf(h.out, "Legal moves: %s\n", formatMoves(moves))

	for {
		fmt.Fprint(h.out, "Enter move (board,cell): ")
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("%w: %v", ErrInputClosed, err)
			}
			return game.Move{}, metrics.SearchMetric{}, ErrInputClosed
		}

		move, err := ParseMove(h.in.Text())
		if err != nil {
			fmt.Fprintln(h.out, "Invalid format. Use 'board,cell' (e.g. '4,8').")
			continue
		}
		if !state.Contains(move, p) {
			fmt.Fprintln(h.out, "Invalid move. Try again.")
			continue
		}
		return move, metrics.SearchMetric{Candidates: len(moves)}, nil
	}
}

func formatMoves(moves []game.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = "(" + m.String() + ")"
	}
	return strings.Join(parts, " ")
}
