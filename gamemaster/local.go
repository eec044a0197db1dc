package gamemaster

import (
	"errors"
	"fmt"

	"uttt/game"

	"github.com/rs/zerolog/log"
)

var (
	ErrGameOver   = errors.New("game is over - no moves allowed")
	ErrNotStarted = errors.New("game has not been initialised")
)

// Update records one accepted move and the state it produced.
type Update struct {
	Move   game.Move
	Player game.Mark
	State  game.GameState
	Hash   game.StateHash
}

// UpdateGetter polls the next update without blocking. ok is false when no
// update is pending.
type UpdateGetter func() (u Update, ok bool)

// Master owns the authoritative game state and only lets legal moves through.
type Master interface {
	Init() (game.GameState, game.Mark, UpdateGetter)
	Play(game.Move) error
	State() game.GameState
	ToMove() game.Mark
	IsOver() bool
}

type localMaster struct {
	state    game.GameState
	toMove   game.Mark
	updateCh chan Update
	gameOver bool
}

func NewLocalMaster() *localMaster {
	return &localMaster{}
}

func (gm *localMaster) Init() (game.GameState, game.Mark, UpdateGetter) {
	gm.state, gm.toMove = game.Initial()
	gm.gameOver = false
	// A game never has more than game.Cells updates, so Play never blocks
	gm.updateCh = make(chan Update, game.Cells)

	return gm.state, gm.toMove, func() (Update, bool) {
		select {
		case u, ok := <-gm.updateCh:
			return u, ok
		default:
			return Update{}, false
		}
	}
}

func (gm *localMaster) Play(move game.Move) error {
	if gm.updateCh == nil {
		return ErrNotStarted
	}
	if gm.gameOver || gm.state.IsTerminal() {
		return ErrGameOver
	}

	if !gm.state.Contains(move, gm.toMove) {
		log.Warn().Msgf("rejected move %v by %v", move, gm.toMove)
		return fmt.Errorf("illegal move %v by %v: %w", move, gm.toMove, game.ErrInvalidMove)
	}
	next, err := gm.state.Play(move, gm.toMove)
	if err != nil {
		return fmt.Errorf("illegal move: %w", err)
	}

	u := Update{Move: move, Player: gm.toMove, State: next, Hash: next.Hash()}
	gm.state = next
	gm.toMove = gm.toMove.Opponent()

	gm.updateCh <- u
	if next.IsTerminal() {
		gm.gameOver = true
		close(gm.updateCh)
		log.Info().Msgf("game over after %v played %v: %v", u.Player, move, next.Result())
	}
	return nil
}

func (gm *localMaster) State() game.GameState {
	return gm.state
}

func (gm *localMaster) ToMove() game.Mark {
	return gm.toMove
}

func (gm *localMaster) IsOver() bool {
	return gm.gameOver
}
