package game

import "fmt"

// Env is the mutable connect-four environment a single game is played in.
// Row 0 is the bottom of the board: a dropped piece lands in the lowest
// empty cell of its column.
//
// An Env instance is not safe for concurrent use. One game loop (or one
// search worker) owns it at a time; hand the instance over, never share
// it between two live mutators. Search agents should instead take an
// immutable Snapshot.
type Env struct {
	rows, cols int
	board      [][]Actor // board[row][col], row 0 at the bottom
	moves      [][2]int  // (row, col) per applied move, for LIFO undo
	gameOver   bool
	winner     Actor // Empty until a win is detected
}

// NewEnv creates an empty rows x cols environment. Dimensions below 4
// are legal but make wins unreachable in some directions.
func NewEnv(rows, cols int) (*Env, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDims, rows, cols)
	}
	e := &Env{rows: rows, cols: cols}
	e.Reset()
	return e, nil
}

// Reset discards all state and returns the environment to an empty board
// with the same dimensions.
func (e *Env) Reset() {
	e.board = make([][]Actor, e.rows)
	for r := range e.board {
		e.board[r] = make([]Actor, e.cols)
	}
	e.moves = e.moves[:0]
	e.gameOver = false
	e.winner = Empty
}

// Dims returns the board dimensions.
func (e *Env) Dims() (rows, cols int) {
	return e.rows, e.cols
}

// LegalMask reports, per column, whether a piece can still be dropped
// there. A column is playable iff its top row is empty.
func (e *Env) LegalMask() []bool {
	mask := make([]bool, e.cols)
	top := e.board[e.rows-1]
	for c := range mask {
		mask[c] = top[c] == Empty
	}
	return mask
}

// LegalActions returns the playable columns in ascending order. It is
// empty only when the board is full, in which case the game is over.
func (e *Env) LegalActions() []Action {
	var actions []Action
	for c, ok := range e.LegalMask() {
		if ok {
			actions = append(actions, Action(c))
		}
	}
	return actions
}

// Observe returns actor's view of the board: own pieces 1, opponent
// pieces 2, empty 0. The grid is a fresh copy; mutating it never affects
// the environment.
func (e *Env) Observe(actor Actor) Observation {
	cells := make([][]int8, e.rows)
	for r, row := range e.board {
		cells[r] = make([]int8, e.cols)
		for c, cell := range row {
			switch cell {
			case Empty:
				cells[r][c] = 0
			case actor:
				cells[r][c] = 1
			default:
				cells[r][c] = 2
			}
		}
	}
	return Observation{Board: cells}
}

// Step drops actor's piece into column a and returns the reward for
// actor together with the post-move observation. Callers that only need
// one of the two discard the other.
//
// A move into a full column fails with *IllegalMoveError and a move
// after the game has ended fails with ErrGameOver; in both cases the
// environment is left exactly as it was. Callers that pre-filter through
// LegalActions never see either error.
func (e *Env) Step(a Action, actor Actor) (Reward, Observation, error) {
	if e.gameOver {
		return 0, Observation{}, ErrGameOver
	}
	if a < 0 || int(a) >= e.cols {
		return 0, Observation{}, &IllegalMoveError{Column: a}
	}

	row := -1
	for r := 0; r < e.rows; r++ {
		if e.board[r][a] == Empty {
			row = r
			break
		}
	}
	if row == -1 { // Column full
		return 0, Observation{}, &IllegalMoveError{Column: a}
	}

	e.board[row][a] = actor
	e.moves = append(e.moves, [2]int{row, int(a)})

	// Terminality is always a function of the most recent move, so the
	// win check only needs to look at runs through the placed cell and
	// only for the actor who just moved.
	if winsAt(e.board, e.rows, e.cols, row, int(a), actor) {
		e.gameOver = true
		e.winner = actor
	} else if e.full() {
		e.gameOver = true
	}

	var reward Reward
	switch {
	case e.gameOver && e.winner == actor:
		reward = 1.0
	case e.gameOver && e.winner != Empty:
		// Unreachable under alternating turns; kept so a caller driving
		// the environment out of turn order still gets a sane sign.
		reward = -1.0
	}
	return reward, e.Observe(actor), nil
}

// Undo reverts the most recent move, restoring the cell to empty and
// clearing the terminal flags. A terminal state is always produced by
// the move being undone, so the flags never need to be recomputed.
// Undo on an empty history is a no-op.
func (e *Env) Undo() {
	if len(e.moves) == 0 {
		return
	}
	last := e.moves[len(e.moves)-1]
	e.moves = e.moves[:len(e.moves)-1]
	e.board[last[0]][last[1]] = Empty
	e.gameOver = false
	e.winner = Empty
}

// GameOver reports whether play must stop: a win or a full board.
func (e *Env) GameOver() bool {
	return e.gameOver
}

// Winner returns the winning actor, if any. The second return is false
// while the game is running and on a draw.
func (e *Env) Winner() (Actor, bool) {
	return e.winner, e.winner != Empty
}

// Moves returns the number of moves currently applied.
func (e *Env) Moves() int {
	return len(e.moves)
}

var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal up-right
	{1, -1}, // diagonal up-left
}

// winsAt reports whether the piece just placed at (row, col) completes a
// run of four for actor. Each direction is counted outwards both ways
// from the placed cell.
func winsAt(board [][]Actor, rows, cols, row, col int, actor Actor) bool {
	for _, d := range directions {
		count := 1
		for _, sign := range [2]int{1, -1} {
			for step := 1; step < 4; step++ {
				r := row + sign*step*d[0]
				c := col + sign*step*d[1]
				if r < 0 || r >= rows || c < 0 || c >= cols || board[r][c] != actor {
					break
				}
				count++
			}
		}
		if count >= 4 {
			return true
		}
	}
	return false
}

func (e *Env) full() bool {
	return len(e.moves) == e.rows*e.cols
}
