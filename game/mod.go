package game

// Actor identifies one of the two players. The zero value marks an empty
// board cell, so Actor doubles as the cell type.
type Actor int8

const (
	Empty   Actor = 0
	Player1 Actor = 1
	Player2 Actor = 2
)

// Opponent swaps the two players. Calling it with anything other than
// Player1 or Player2 is a caller bug and is not validated.
func Opponent(a Actor) Actor {
	if a == Player1 {
		return Player2
	}
	return Player1
}

func (a Actor) String() string {
	switch a {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	default:
		return "Nobody"
	}
}

// Action is the column a piece is dropped into.
type Action int

// Reward is the per-step return for an agent: +1 win, -1 loss, 0 otherwise.
type Reward float32

type StateHash uint64

// State is the immutable view of a position that search agents play on.
// Operations on State always return a new copy; the mutable Env stays
// owned by the game loop.
type State interface {
	Player() string
	LegalMoves() []Action
	Play(Action) State
	Hash() StateHash
	Winner() string
}

// Evaluate scores a non-terminal state between -1 and 1 indicating how
// favorable the position is for the player to move.
type Evaluate func(State) float64
