package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
)

// MCTSAgent plays the most-visited move of a Monte Carlo tree search.
type MCTSAgent struct {
	search *searcher.MCTS
}

func NewMCTSAgent(search *searcher.MCTS) *MCTSAgent {
	return &MCTSAgent{search: search}
}

func (a *MCTSAgent) FindMove(state game.State, lineage []searcher.Segment) (game.Action, metrics.SearchMetric) {
	policy, metric := a.search.Simulate(state, lineage)

	legal := state.LegalMoves()
	if len(legal) == 0 {
		panic("no legal moves: agent asked to move on a terminal position")
	}

	// Only ever pick among the position's own legal moves, so a stale or
	// empty policy still degrades to a legal choice.
	best := legal[0]
	bestVisits := -1
	for _, move := range legal {
		if visits := policy[move]; visits > bestVisits {
			best = move
			bestVisits = visits
		}
	}
	return best, metric
}
