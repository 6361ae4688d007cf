package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDims is returned by NewEnv for non-positive dimensions.
	ErrInvalidDims = errors.New("board dimensions must be positive")

	// ErrGameOver is returned by Step once a terminal state is reached.
	// Applying moves past that point would break the undo invariant, so
	// the environment rejects them instead of corrupting history.
	ErrGameOver = errors.New("game is over - no moves allowed")
)

// IllegalMoveError reports a drop into a full or non-existent column.
// The move is not applied: board, history and flags are left untouched.
type IllegalMoveError struct {
	Column Action
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move: cannot drop into column %d", e.Column)
}
