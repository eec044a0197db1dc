package engine

import (
	"context"
	"errors"
	"testing"

	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/gamemaster"
	"uttt/searcher"
	"uttt/searcher/agent"

	"github.com/stretchr/testify/require"
)

type fixedAgent struct {
	move game.Move
	err  error
}

func (a fixedAgent) FindMove(game.GameState, game.Mark) (game.Move, metrics.SearchMetric, error) {
	return a.move, metrics.SearchMetric{}, a.err
}

func TestRunRandomGame(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		var updates []gamemaster.Update
		e := LocalEngine(
			[]agent.Agent{agent.NewRandomAgent(seed), agent.NewRandomAgent(seed + 100)},
			WithObserver(func(u gamemaster.Update) { updates = append(updates, u) }),
		)

		result, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.NotEqual(t, game.InProgress, result)
		require.NotEmpty(t, gameMetric.ID)
		require.Equal(t, "X", gameMetric.StartingPlayer)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.Len(t, updates, len(moveMetrics), "Observers should see every move")

		final := updates[len(updates)-1].State
		require.True(t, final.IsTerminal())
		require.Equal(t, result, final.Result())
		require.Equal(t, final.MoveCount(), gameMetric.TotalMoves)
		switch result {
		case game.XWon:
			require.Equal(t, "X", gameMetric.Winner)
		case game.OWon:
			require.Equal(t, "O", gameMetric.Winner)
		default:
			require.Empty(t, gameMetric.Winner)
		}

		for i, m := range moveMetrics {
			require.Equal(t, i+1, m.Step)
			require.Equal(t, updates[i].Player.String(), m.Player, "Players should alternate starting with X")
			require.Equal(t, updates[i].Move.String(), m.Move)
		}
	}
}

func TestRunSearchAgainstRandom(t *testing.T) {
	search := agent.NewEvaluationAgent(searcher.NewAlphaBeta(searcher.WithDepth(1), searcher.WithMetrics()))
	e := LocalEngine([]agent.Agent{agent.NewRandomAgent(3), search})

	result, _, moveMetrics, err := e.Run(context.Background())

	require.NoError(t, err)
	require.NotEqual(t, game.InProgress, result)
	for _, m := range moveMetrics {
		if m.Player == "O" {
			require.Equal(t, 1, m.Depth, "Search metrics should be recorded per move")
			require.Positive(t, m.Nodes)
		}
	}
}

func TestRunIllegalMove(t *testing.T) {
	e := LocalEngine([]agent.Agent{fixedAgent{move: game.Move{Board: 9, Cell: 9}}, agent.NewRandomAgent(1)})

	result, _, moveMetrics, err := e.Run(context.Background())

	require.ErrorIs(t, err, game.ErrInvalidMove)
	require.Equal(t, game.InProgress, result)
	require.Empty(t, moveMetrics)
}

func TestRunAgentError(t *testing.T) {
	failure := errors.New("out of ideas")
	e := LocalEngine([]agent.Agent{agent.NewRandomAgent(1), fixedAgent{err: failure}})

	_, _, moveMetrics, err := e.Run(context.Background())

	require.ErrorIs(t, err, failure)
	require.Len(t, moveMetrics, 1, "X should have moved before O failed")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := LocalEngine([]agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)})

	_, _, _, err := e.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
}

func TestLocalEngineNeedsTwoAgents(t *testing.T) {
	require.Panics(t, func() { LocalEngine([]agent.Agent{agent.NewRandomAgent(1)}) })
}
