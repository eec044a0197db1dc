package engine

import (
	"context"
	"fmt"
	"time"

	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/gamemaster"
	"uttt/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var _ Runner = (*Engine)(nil)

type Option func(e *Engine)

// WithObserver registers a callback for every accepted move.
func WithObserver(observe func(gamemaster.Update)) Option {
	return func(e *Engine) {
		if observe != nil {
			e.observers = append(e.observers, observe)
		}
	}
}

func WithMaster(master gamemaster.Master) Option {
	return func(e *Engine) {
		if master != nil {
			e.master = master
		}
	}
}

// Engine drives one game between two agents: agents[0] plays X and moves
// first, agents[1] plays O.
type Engine struct {
	agents    map[game.Mark]agent.Agent
	master    gamemaster.Master
	observers []func(gamemaster.Update)
}

func LocalEngine(agents []agent.Agent, options ...Option) *Engine {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	e := &Engine{
		agents: map[game.Mark]agent.Agent{game.X: agents[0], game.O: agents[1]},
		master: gamemaster.NewLocalMaster(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until the game is over.
func (e *Engine) Run(ctx context.Context) (game.Result, metrics.GameMetric, []metrics.MoveMetric, error) {
	state, first, getUpdate := e.master.Init()
	gameMetric := metrics.GameMetric{
		ID:             uuid.NewString(),
		StartingPlayer: first.String(),
		StartTime:      time.Now(),
	}
	moveMetrics := make([]metrics.MoveMetric, 0, MaxMoves)

	log.Info().Msgf("game %s: player %v is starting", gameMetric.ID, first)

	for step := 1; !e.master.IsOver() && step <= MaxMoves; step++ {
		if err := ctx.Err(); err != nil {
			return game.InProgress, gameMetric, moveMetrics, err
		}

		player := e.master.ToMove()
		move, searchMetric, err := e.agents[player].FindMove(state, player)
		if err != nil {
			return game.InProgress, gameMetric, moveMetrics, fmt.Errorf("player %v failed to find a move: %w", player, err)
		}
		if err := e.master.Play(move); err != nil {
			return game.InProgress, gameMetric, moveMetrics, fmt.Errorf("player %v: %w", player, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player.String(),
			Move:         move.String(),
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("step %d: player %v played %v", step, player, move)

		for u, ok := getUpdate(); ok; u, ok = getUpdate() {
			for _, observe := range e.observers {
				observe(u)
			}
		}
		state = e.master.State()
	}

	result := state.Result()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	if w := state.Winner(); w != game.Empty {
		gameMetric.Winner = w.String()
	}

	log.Info().Msgf("game %s over after %d moves: %v", gameMetric.ID, gameMetric.TotalMoves, result)
	return result, gameMetric, moveMetrics, nil
}
