package mcts

import (
	"sync"

	"uttt/game"
)

// node is one position in the search tree. Statistics are kept from the
// perspective of the player whose move led to the node.
type node struct {
	sync.Mutex
	parent   *node
	toMove   game.Mark
	moves    []game.Move // untried moves are moves[len(children):]
	children []*node
	rewards  float64
	visits   int
}

func newNode(parent *node, state game.GameState, toMove game.Mark) *node {
	moves := state.LegalMoves(toMove)
	return &node{
		parent:   parent,
		toMove:   toMove,
		moves:    moves,
		children: make([]*node, 0, len(moves)),
	}
}

// selectOrExpand descends one level. expanded is true when the child was
// created by this call; child is nil on terminal nodes.
func (n *node) selectOrExpand(state game.GameState) (child *node, childState game.GameState, expanded bool) {
	n.Lock()
	defer n.Unlock()

	if len(n.moves) == 0 {
		return nil, state, false
	}

	var move game.Move
	if len(n.children) < len(n.moves) {
		move = n.moves[len(n.children)]
		childState = state.Successor(move, n.toMove)
		child = newNode(n, childState, n.toMove.Opponent())
		n.children = append(n.children, child)
		expanded = true
	} else {
		i := n.pickChild()
		child, move = n.children[i], n.moves[i]
		childState = state.Successor(move, n.toMove)
	}
	child.applyLoss()
	return child, childState, expanded
}

// pickChild returns the child with the highest UCB score. The caller holds
// the lock.
func (n *node) pickChild() int {
	policy := newUCB(CSquared, float64(max(n.visits, 1)))

	best, bestScore := 0, policy.score(n.children[0].stats())
	for i, child := range n.children[1:] {
		if s := policy.score(child.stats()); s > bestScore {
			best, bestScore = i+1, s
		}
	}
	return best
}

func (n *node) stats() (float64, int) {
	n.Lock()
	defer n.Unlock()
	return n.rewards, n.visits
}

// applyLoss is a virtual loss steering concurrent workers to other children
// until backup reverses it.
func (n *node) applyLoss() {
	n.Lock()
	defer n.Unlock()
	n.rewards += Loss
	n.visits++
}

func (n *node) backup(winner game.Mark) *node {
	n.Lock()
	defer n.Unlock()

	if n.parent != nil {
		n.rewards -= Loss
		n.visits--
	}
	n.rewards += reward(winner, n.toMove.Opponent())
	n.visits++
	return n.parent
}

// bestMove is the most visited move.
func (n *node) bestMove() (game.Move, bool) {
	n.Lock()
	defer n.Unlock()

	if len(n.children) == 0 {
		return game.Move{}, false
	}
	best, bestVisits := 0, -1
	for i, child := range n.children {
		if _, v := child.stats(); v > bestVisits {
			best, bestVisits = i, v
		}
	}
	return n.moves[best], true
}
