package game

// Rows, columns and diagonals of a 3x3 grid.
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// CheckLine returns the mark filling any complete line of the 3x3 grid, or
// Empty if there is none. It is used both on a sub-board and on the meta-board
// projection returned by MetaMarks.
func CheckLine(cells [Size]Mark) Mark {
	for _, l := range lines {
		if v := cells[l[0]]; v != Empty && v == cells[l[1]] && v == cells[l[2]] {
			return v
		}
	}
	return Empty
}

// MetaMarks projects the sub-board outcomes onto marks. Ties project to Empty,
// so a line of tied boards never counts as a win.
func (gs GameState) MetaMarks() [Size]Mark {
	var marks [Size]Mark
	for i, s := range gs.Outcomes {
		marks[i] = s.Mark()
	}
	return marks
}

// Winner returns the mark with three sub-boards in a row, or Empty.
func (gs GameState) Winner() Mark {
	return CheckLine(gs.MetaMarks())
}

// IsTerminal is true once the meta-board has a winner or no sub-board is
// still ongoing.
func (gs GameState) IsTerminal() bool {
	if gs.Winner() != Empty {
		return true
	}
	for _, s := range gs.Outcomes {
		if s == Ongoing {
			return false
		}
	}
	return true
}

// OutcomeValue is +1 when X has won, -1 when O has won and 0 otherwise. It is
// only authoritative on terminal states.
func (gs GameState) OutcomeValue() int {
	return int(gs.Winner())
}

func (gs GameState) Result() Result {
	switch gs.Winner() {
	case X:
		return XWon
	case O:
		return OWon
	}
	if gs.IsTerminal() {
		return Drawn
	}
	return InProgress
}
