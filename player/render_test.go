package player

import (
	"bytes"
	"testing"

	"uttt/game"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Run("initial state", func(t *testing.T) {
		var out bytes.Buffer
		state, _ := game.Initial()

		NewPlainRenderer(&out).Render(state)

		text := out.String()
		require.Contains(t, text, "Board reference:")
		require.Contains(t, text, "Macro board:")
		require.Contains(t, text, "Game board:")
		require.Contains(t, text, "Next move can be in any open board")
		require.Contains(t, text, "*... | *... | *...", "Every sub-board should be playable")
		require.NotContains(t, text, "\x1b[", "Plain output should not contain escape sequences")
	})

	t.Run("forced board and decided boards", func(t *testing.T) {
		var out bytes.Buffer
		state := game.GameState{Forced: 4}
		state.Boards[0] = game.SubBoard{game.X, game.X, game.X}
		state.Outcomes[0] = game.WonByX
		state.Boards[4][4] = game.O

		NewPlainRenderer(&out).Render(state)

		text := out.String()
		require.Contains(t, text, "Next move must be in board 4")
		require.Contains(t, text, "[X]")
		require.Contains(t, text, " XXX |  ... |  ...", "Only the forced board should be marked playable")
		require.Contains(t, text, " ... | *.O. |  ...")
	})

	t.Run("finished game has no playable boards", func(t *testing.T) {
		var out bytes.Buffer
		state := game.GameState{Forced: game.FreeChoice}
		for board := 0; board < 3; board++ {
			state.Boards[board] = game.SubBoard{game.X, game.X, game.X}
			state.Outcomes[board] = game.WonByX
		}
		require.True(t, state.IsTerminal())

		NewPlainRenderer(&out).Render(state)

		text := out.String()
		require.NotContains(t, text, "*", "No sub-board should be marked playable once the game is over")
		require.Contains(t, text, " ... |  ... |  ...")
	})
}

func TestRenderResult(t *testing.T) {
	cases := map[string]struct {
		outcomes [game.Size]game.Status
		want     string
	}{
		"X wins": {[game.Size]game.Status{game.WonByX, game.WonByX, game.WonByX}, "Result: X WINS!"},
		"O wins": {[game.Size]game.Status{game.WonByO, game.Ongoing, game.Ongoing, game.WonByO, game.Ongoing, game.Ongoing, game.WonByO}, "Result: O WINS!"},
		"draw": {[game.Size]game.Status{
			game.Tied, game.Tied, game.Tied,
			game.Tied, game.Tied, game.Tied,
			game.Tied, game.Tied, game.Tied,
		}, "Result: DRAW"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			state := game.GameState{Forced: game.FreeChoice, Outcomes: c.outcomes}

			NewPlainRenderer(&out).RenderResult(state)

			require.Contains(t, out.String(), "==== GAME OVER ====")
			require.Contains(t, out.String(), c.want)
		})
	}
}
