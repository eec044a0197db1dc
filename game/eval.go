package game

const (
	boardWeight     = 100 // decided sub-board
	potentialWeight = 10  // line potential inside an ongoing sub-board
	strategicWeight = 50  // decided corner or centre of the meta-board

	nearWin = 3 // two marks and an empty cell on a line
	opening = 1 // one mark and two empty cells on a line
)

var strategicBoards = [...]int{0, 2, 4, 6, 8}

// Evaluate scores a non-terminal position for p by adding up macro control,
// line potential of the ongoing sub-boards and ownership of the strategic
// meta-positions. Terminal positions are not special-cased; callers combine
// this score with IsTerminal and OutcomeValue.
func Evaluate(gs GameState, p Mark) int {
	return macroScore(gs, p) + potentialScore(gs, p) + strategicScore(gs, p)
}

func macroScore(gs GameState, p Mark) int {
	score := 0
	for _, s := range gs.Outcomes {
		score += boardWeight * owner(s, p)
	}
	return score
}

func potentialScore(gs GameState, p Mark) int {
	score := 0
	for i, board := range gs.Boards {
		if gs.Outcomes[i] != Ongoing {
			continue
		}
		score += potentialWeight * Potential(board, p)
		score -= potentialWeight * Potential(board, p.Opponent())
	}
	return score
}

func strategicScore(gs GameState, p Mark) int {
	score := 0
	for _, i := range strategicBoards {
		score += strategicWeight * owner(gs.Outcomes[i], p)
	}
	return score
}

// owner is +1 if s was won by p, -1 if won by the opponent and 0 otherwise.
func owner(s Status, p Mark) int {
	switch s.Mark() {
	case p:
		return 1
	case p.Opponent():
		return -1
	default:
		return 0
	}
}

// Potential counts the winning chances of m on a single sub-board.
func Potential(board SubBoard, m Mark) int {
	pot := 0
	for _, l := range lines {
		own, empty := 0, 0
		for _, i := range l {
			switch board[i] {
			case m:
				own++
			case Empty:
				empty++
			}
		}
		switch {
		case own == 2 && empty == 1:
			pot += nearWin
		case own == 1 && empty == 2:
			pot += opening
		}
	}
	return pot
}
