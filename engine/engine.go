package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
)

// MaxMoves caps a game so a misbehaving agent cannot loop forever. A
// rows*cols board fills long before this.
const MaxMoves = 10000

type Engine interface {
	// Run plays a game till it is over or a max number of moves is reached
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Agent picks a move for the position it is handed. lineage is the move
// path since the agent's previous search, for search tree reuse.
type Agent interface {
	FindMove(state game.State, lineage []searcher.Segment) (game.Action, metrics.SearchMetric)
}
