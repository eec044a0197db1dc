package player

import (
	"fmt"
	"io"
	"strings"

	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/searcher/agent"
)

// PromptMode asks for a game mode when none was given. Anything but a valid
// choice falls back to human vs AI.
func PromptMode(in io.Reader, out io.Writer) string {
	fmt.Fprintln(out, "\nSelect game mode:")
	fmt.Fprintln(out, "1. Human vs AI (you play first)")
	fmt.Fprintln(out, "2. AI vs Human (AI plays first)")
	fmt.Fprintln(out, "3. AI vs AI (demonstration)")
	fmt.Fprint(out, "Enter choice (1-3): ")

	switch strings.TrimSpace(readLine(in)) {
	case "1":
		return "hva"
	case "2":
		return "aah"
	case "3":
		return "ava"
	default:
		fmt.Fprintln(out, "Invalid choice. Defaulting to Human vs AI.")
		return "hva"
	}
}

// readLine reads up to a newline one byte at a time, so that no input meant
// for a later reader is buffered away.
func readLine(in io.Reader) string {
	var line strings.Builder
	b := make([]byte, 1)
	for {
		n, err := in.Read(b)
		if n > 0 {
			if b[0] == '\n' {
				break
			}
			line.WriteByte(b[0])
		}
		if err != nil {
			break
		}
	}
	return line.String()
}

type announcer struct {
	agent.Agent
	out io.Writer
}

// Announce wraps an AI agent so that it reports its moves on out.
func Announce(a agent.Agent, out io.Writer) agent.Agent {
	return announcer{Agent: a, out: out}
}

func (a announcer) FindMove(state game.GameState, p game.Mark) (game.Move, metrics.SearchMetric, error) {
	fmt.Fprintf(a.out, "\nAI (%v) is thinking...\n", p)
	move, metric, err := a.Agent.FindMove(state, p)
	if err == nil {
		fmt.Fprintf(a.out, "AI chose move: (%v)\n", move)
	}
	return move, metric, err
}
