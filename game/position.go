package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// Position is an immutable snapshot of a game used by search agents.
// Play never mutates the receiver; it returns a new copy with the move
// applied and the turn passed to the opponent.
type Position struct {
	rows, cols int
	board      [][]Actor
	mover      Actor // player to move
	winner     Actor
	filled     int
}

// Snapshot captures the environment's current board as a Position with
// actor to move. The copy is deep; the environment can keep mutating
// without affecting the snapshot.
func (e *Env) Snapshot(actor Actor) *Position {
	board := make([][]Actor, e.rows)
	for r, row := range e.board {
		board[r] = make([]Actor, e.cols)
		copy(board[r], row)
	}
	return &Position{
		rows:   e.rows,
		cols:   e.cols,
		board:  board,
		mover:  actor,
		winner: e.winner,
		filled: len(e.moves),
	}
}

// Player returns the identifier of the player to move.
func (p *Position) Player() string {
	return p.mover.String()
}

// LegalMoves returns the playable columns in ascending order, or nil on
// a terminal position so searchers treat it as a leaf.
func (p *Position) LegalMoves() []Action {
	if p.winner != Empty || p.filled == p.rows*p.cols {
		return nil
	}
	var moves []Action
	top := p.board[p.rows-1]
	for c := 0; c < p.cols; c++ {
		if top[c] == Empty {
			moves = append(moves, Action(c))
		}
	}
	return moves
}

// Play applies a legal move for the player to move and returns the
// resulting position. Searchers only feed moves from LegalMoves here.
func (p *Position) Play(a Action) State {
	next := &Position{
		rows:   p.rows,
		cols:   p.cols,
		board:  make([][]Actor, p.rows),
		mover:  Opponent(p.mover),
		filled: p.filled + 1,
	}
	for r, row := range p.board {
		next.board[r] = make([]Actor, p.cols)
		copy(next.board[r], row)
	}
	row := 0
	for row < p.rows && next.board[row][a] != Empty {
		row++
	}
	if row == p.rows {
		panic(fmt.Sprintf("play in full column %d", a))
	}
	next.board[row][a] = p.mover
	if winsAt(next.board, p.rows, p.cols, row, int(a), p.mover) {
		next.winner = p.mover
	}
	return next
}

// Winner returns the winning player's identifier, or "" while the game
// is running and on a draw.
func (p *Position) Winner() string {
	if p.winner == Empty {
		return ""
	}
	return p.winner.String()
}

// Hash folds the board cells and the player to move into a 64-bit
// identity for tree reuse across searches.
func (p *Position) Hash() StateHash {
	hasher := fnv.New64a()
	binary.Write(hasher, binary.LittleEndian, int8(p.mover))
	for _, row := range p.board {
		for _, cell := range row {
			binary.Write(hasher, binary.LittleEndian, int8(cell))
		}
	}
	return StateHash(hasher.Sum64())
}

// EvaluatePosition scores a state between -1 and 1 for the player to
// move, used when rollouts are cut off before the game ends. Pieces are
// weighted by how many length-4 windows through their cell stay on the
// board, which favors central control.
func EvaluatePosition(s State) float64 {
	p, ok := s.(*Position)
	if !ok {
		return 0
	}
	if p.winner != Empty {
		if p.winner == p.mover {
			return 1
		}
		return -1
	}

	var own, opp float64
	for r := 0; r < p.rows; r++ {
		for c := 0; c < p.cols; c++ {
			cell := p.board[r][c]
			if cell == Empty {
				continue
			}
			w := p.windowWeight(r, c)
			if cell == p.mover {
				own += w
			} else {
				opp += w
			}
		}
	}
	total := own + opp
	if total == 0 {
		return 0
	}
	// Score stays inside [-1, 1].
	return (own - opp) / total
}

// windowWeight counts the length-4 windows through (row, col) that fit
// on the board, one per direction and offset.
func (p *Position) windowWeight(row, col int) float64 {
	count := 0
	for _, d := range directions {
		for offset := -3; offset <= 0; offset++ {
			r0, c0 := row+offset*d[0], col+offset*d[1]
			r1, c1 := r0+3*d[0], c0+3*d[1]
			if r0 >= 0 && r1 >= 0 && r0 < p.rows && r1 < p.rows &&
				c0 >= 0 && c1 >= 0 && c0 < p.cols && c1 < p.cols {
				count++
			}
		}
	}
	return float64(count)
}
