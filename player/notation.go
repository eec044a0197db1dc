package player

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"uttt/game"
)

var ErrMalformedInput = errors.New("malformed move")

// ParseMove reads a move written as "board,cell", e.g. "4,8".
func ParseMove(text string) (game.Move, error) {
	parts := strings.Split(strings.TrimSpace(text), ",")
	if len(parts) != 2 {
		return game.Move{}, fmt.Errorf("%w: %q, expected board,cell", ErrMalformedInput, text)
	}

	board, err := parseIndex(parts[0])
	if err != nil {
		return game.Move{}, fmt.Errorf("%w: board %q", ErrMalformedInput, parts[0])
	}
	cell, err := parseIndex(parts[1])
	if err != nil {
		return game.Move{}, fmt.Errorf("%w: cell %q", ErrMalformedInput, parts[1])
	}
	return game.Move{Board: board, Cell: cell}, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= game.Size {
		return 0, fmt.Errorf("index %d out of range", i)
	}
	return i, nil
}
