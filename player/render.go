package player

import (
	"fmt"
	"io"
	"strings"

	"uttt/game"

	"github.com/muesli/termenv"
)

// Renderer draws positions on a terminal, colouring marks when the terminal
// supports it.
type Renderer struct {
	out *termenv.Output
}

func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...)}
}

// NewPlainRenderer never emits escape sequences.
func NewPlainRenderer(w io.Writer) *Renderer {
	return NewRenderer(w, termenv.WithProfile(termenv.Ascii))
}

func (r *Renderer) mark(m game.Mark) string {
	s := r.out.String(m.String())
	switch m {
	case game.X:
		s = s.Foreground(r.out.Color("1")).Bold()
	case game.O:
		s = s.Foreground(r.out.Color("4")).Bold()
	default:
		s = s.Faint()
	}
	return s.String()
}

func (r *Renderer) status(s game.Status) string {
	if s == game.Ongoing {
		return "   "
	}
	return "[" + r.mark(s.Mark()) + "]"
}

// Render writes the board reference, the meta-board and the full game board.
// Playable sub-boards are marked with '*'.
func (r *Renderer) Render(gs game.GameState) {
	var b strings.Builder

	b.WriteString("\nBoard reference:\n")
	b.WriteString("┌───┬───┬───┐\n")
	for row := 0; row < 3; row++ {
		b.WriteString("│")
		for col := 0; col < 3; col++ {
			fmt.Fprintf(&b, " %d │", row*3+col)
		}
		b.WriteString("\n")
		if row < 2 {
			b.WriteString("├───┼───┼───┤\n")
		}
	}
	b.WriteString("└───┴───┴───┘\n")

	b.WriteString("\nMacro board:\n")
	for row := 0; row < 3; row++ {
		cols := make([]string, 3)
		for col := range cols {
			s := gs.Outcomes[row*3+col]
			if s == game.Tied {
				cols[col] = "[=]"
			} else {
				cols[col] = r.status(s)
			}
		}
		b.WriteString(strings.Join(cols, " ") + "\n")
	}

	forced, isForced := gs.ForcedBoard()
	terminal := gs.IsTerminal()
	b.WriteString("\nGame board:\n")
	for br := 0; br < 3; br++ {
		for row := 0; row < 3; row++ {
			parts := make([]string, 3)
			for bc := 0; bc < 3; bc++ {
				board := br*3 + bc
				var part strings.Builder
				playable := gs.Outcomes[board] == game.Ongoing && (!isForced || forced == board) && !terminal
				if playable {
					part.WriteString("*")
				} else {
					part.WriteString(" ")
				}
				for col := 0; col < 3; col++ {
					part.WriteString(r.mark(gs.Boards[board][row*3+col]))
				}
				parts[bc] = part.String()
			}
			b.WriteString(strings.Join(parts, " | ") + "\n")
		}
		if br < 2 {
			b.WriteString(strings.Repeat("-", 17) + "\n")
		}
	}

	if isForced {
		fmt.Fprintf(&b, "\nNext move must be in board %d\n", forced)
	} else {
		b.WriteString("\nNext move can be in any open board\n")
	}

	fmt.Fprint(r.out, b.String())
}

// RenderResult announces the end of the game.
func (r *Renderer) RenderResult(gs game.GameState) {
	fmt.Fprintln(r.out, "\n==== GAME OVER ====")
	r.Render(gs)
	switch gs.Result() {
	case game.XWon:
		fmt.Fprintf(r.out, "\nResult: %s WINS!\n", r.mark(game.X))
	case game.OWon:
		fmt.Fprintf(r.out, "\nResult: %s WINS!\n", r.mark(game.O))
	default:
		fmt.Fprintln(r.out, "\nResult: DRAW")
	}
}
