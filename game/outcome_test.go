package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckLine(t *testing.T) {
	cases := map[string]struct {
		cells [Size]Mark
		want  Mark
	}{
		"empty":           {[Size]Mark{}, Empty},
		"top row":         {[Size]Mark{X, X, X}, X},
		"middle column":   {[Size]Mark{Empty, O, Empty, Empty, O, Empty, Empty, O}, O},
		"main diagonal":   {[Size]Mark{X, Empty, Empty, Empty, X, Empty, Empty, Empty, X}, X},
		"anti diagonal":   {[Size]Mark{Empty, Empty, O, Empty, O, Empty, O}, O},
		"mixed line":      {[Size]Mark{X, O, X, O, X, O, O, X, O}, Empty},
		"two in a row":    {[Size]Mark{X, X, Empty, O, O}, Empty},
		"bottom row of O": {[Size]Mark{X, X, Empty, X, Empty, Empty, O, O, O}, O},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, c.want, CheckLine(c.cells))
		})
	}
}

func TestMetaBoard(t *testing.T) {
	t.Run("three sub-boards in a row win the game", func(t *testing.T) {
		gs := GameState{Forced: FreeChoice}
		gs.Outcomes = [Size]Status{WonByX, WonByX, WonByX}

		require.True(t, gs.IsTerminal())
		require.Equal(t, X, gs.Winner())
		require.Equal(t, 1, gs.OutcomeValue())
		require.Equal(t, XWon, gs.Result())
		require.Empty(t, gs.LegalMoves(O), "A won game should have no legal moves")
	})

	t.Run("a column of O wins", func(t *testing.T) {
		gs := GameState{Forced: FreeChoice}
		gs.Outcomes[1], gs.Outcomes[4], gs.Outcomes[7] = WonByO, WonByO, WonByO
		gs.Outcomes[0] = WonByX

		require.True(t, gs.IsTerminal())
		require.Equal(t, -1, gs.OutcomeValue())
		require.Equal(t, OWon, gs.Result())
	})

	t.Run("a diagonal of O wins", func(t *testing.T) {
		gs := GameState{Forced: FreeChoice}
		gs.Outcomes[2], gs.Outcomes[4], gs.Outcomes[6] = WonByO, WonByO, WonByO

		require.Equal(t, OWon, gs.Result())
	})

	t.Run("all sub-boards tied is a draw", func(t *testing.T) {
		gs := GameState{Forced: FreeChoice}
		for i := range gs.Outcomes {
			gs.Outcomes[i] = Tied
		}

		require.True(t, gs.IsTerminal())
		require.Equal(t, Empty, gs.Winner(), "A line of tied sub-boards should not count as a win")
		require.Equal(t, 0, gs.OutcomeValue())
		require.Equal(t, Drawn, gs.Result())
	})

	t.Run("a line of ties does not end the game", func(t *testing.T) {
		gs := GameState{Forced: FreeChoice}
		gs.Outcomes[0], gs.Outcomes[1], gs.Outcomes[2] = Tied, Tied, Tied

		require.False(t, gs.IsTerminal())
		require.Equal(t, InProgress, gs.Result())
		require.Equal(t, [Size]Mark{}, gs.MetaMarks())
	})

	t.Run("every sub-board decided without a line is a draw", func(t *testing.T) {
		gs := GameState{Forced: FreeChoice}
		gs.Outcomes = [Size]Status{
			WonByX, WonByO, WonByX,
			WonByX, WonByO, WonByO,
			WonByO, WonByX, Tied,
		}

		require.True(t, gs.IsTerminal())
		require.Equal(t, Drawn, gs.Result())
		require.Equal(t, 0, gs.OutcomeValue())
	})

	t.Run("one ongoing sub-board keeps the game going", func(t *testing.T) {
		gs := GameState{Forced: FreeChoice}
		gs.Outcomes = [Size]Status{
			WonByX, WonByO, WonByX,
			WonByX, WonByO, WonByO,
			WonByO, WonByX, Ongoing,
		}

		require.False(t, gs.IsTerminal())
		require.Len(t, gs.LegalMoves(X), Size, "Only the last sub-board should be playable")
	})
}
