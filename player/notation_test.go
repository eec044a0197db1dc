package player

import (
	"testing"

	"uttt/game"

	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	valid := map[string]game.Move{
		"4,8":       {Board: 4, Cell: 8},
		"0,0":       {Board: 0, Cell: 0},
		" 8 , 3 \n": {Board: 8, Cell: 3},
	}
	for text, want := range valid {
		got, err := ParseMove(text)
		require.NoError(t, err, "%q should parse", text)
		require.Equal(t, want, got)
	}

	for _, text := range []string{"", "4", "4,8,1", "a,b", "9,0", "0,9", "-1,3", "4;8"} {
		_, err := ParseMove(text)
		require.ErrorIs(t, err, ErrMalformedInput, "%q should be rejected", text)
	}
}

func TestParseMoveRoundTrip(t *testing.T) {
	state, p := game.Initial()
	for _, m := range state.LegalMoves(p) {
		got, err := ParseMove(m.String())
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
}
