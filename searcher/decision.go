package searcher

import (
	"math"
	"sync"

	"connect4/game"
)

// decision is a search tree node. All moves in this game are
// deterministic, so the tree has a single node kind: one decision per
// reachable position.
//
// rewards accumulate from the perspective of the player who moved into
// the node (the parent's mover), so a parent picks its best move by
// maximizing child scores directly.
type decision struct {
	sync.RWMutex
	parent     *decision
	player     string // player to move at this node's position
	hash       game.StateHash
	unexplored []game.Action
	explored   []game.Action
	children   []*decision
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, state game.State) *decision {
	moves := state.LegalMoves()
	return &decision{
		parent:     parent,
		player:     state.Player(),
		hash:       state.Hash(),
		unexplored: moves,
		children:   make([]*decision, 0, len(moves)),
	}
}

// SelectOrExpand advances one level of the tree walk: a terminal node
// returns itself, an expandable node adds one child, and a fully
// expanded node selects the max-UCB child. The chosen child carries a
// virtual loss so concurrent walkers spread out.
func (d *decision) SelectOrExpand(state game.State) (*decision, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		move := d.unexplored[0]
		d.unexplored = d.unexplored[1:]
		childState := state.Play(move)
		child := newDecision(d, childState)
		d.explored = append(d.explored, move)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, childState, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.explored[ith]), true
}

func (d *decision) pickChild() int {
	if d.visits == 0 {
		panic("node has children but no visits")
	}

	normalizer := CSquared * math.Log(d.visits)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		score := child.score(normalizer)
		if score == math.Inf(1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) score(normalizer float64) float64 {
	d.RLock()
	defer d.RUnlock()

	return ucb1(d.rewards, d.visits, normalizer)
}

// Backup folds a playout outcome into this node's statistics and
// returns the parent, so callers walk the result up to the root. score
// is from the perspective of player; each node accumulates it signed
// for its own edge player, which is the parent's mover.
func (d *decision) Backup(player string, score float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Virtual loss is never applied to the root
		d.reverseLoss()
		if d.parent.player == player {
			d.rewards += score
		} else {
			d.rewards -= score
		}
	}
	d.visits++

	return d.parent
}

// Policy returns the visit count per explored move.
func (d *decision) Policy() map[game.Action]int {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Action]int, len(d.explored))
	for i, move := range d.explored {
		d.children[i].RLock()
		policy[move] = int(d.children[i].visits)
		d.children[i].RUnlock()
	}
	return policy
}

// child returns the explored child reached by move, or nil.
func (d *decision) child(move game.Action) *decision {
	d.RLock()
	defer d.RUnlock()

	for i, m := range d.explored {
		if m == move {
			return d.children[i]
		}
	}
	return nil
}
