package mcts

import (
	"math"

	"uttt/game"
)

// Hyperparameters

const CSquared = 2.0 // Exploration constant

const (
	Win  = 1.0
	Draw = 0.0
	Loss = -Win
)

// ucb holds the exploration numerator shared by all children of one parent.
type ucb struct {
	numerator float64
}

func newUCB(cSquared float64, parentVisits float64) ucb {
	if parentVisits == 0 {
		panic("parent visits cannot be 0")
	}
	return ucb{numerator: cSquared * math.Log(parentVisits)}
}

// score = q/n + sqrt(c^2*ln(N)/n)
func (u ucb) score(rewards float64, visits int) float64 {
	if visits == 0 {
		panic("child visits cannot be 0")
	}
	n := float64(visits)
	return rewards/n + math.Sqrt(u.numerator/n)
}

func reward(winner, mover game.Mark) float64 {
	switch winner {
	case mover:
		return Win
	case game.Empty:
		return Draw
	default:
		return Loss
	}
}
