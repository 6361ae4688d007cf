package engine

import (
	"fmt"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"

	"github.com/rs/zerolog/log"
)

// Local drives one game between two agents on a single environment.
// The engine is the only mutator of the environment; agents only ever
// see immutable snapshots.
type Local struct {
	Env    *game.Env
	Agents [2]Agent // Index 0 moves first as Player1
}

func NewLocal(env *game.Env, first, second Agent) *Local {
	if first == nil || second == nil {
		panic("need two agents")
	}
	return &Local{
		Env:    env,
		Agents: [2]Agent{first, second},
	}
}

// Run plays the game to completion and returns the winner's identifier
// ("" on a draw) with the collected metrics.
func (e *Local) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	start := time.Now()
	actor := game.Player1

	// Pending move segments per agent, consumed on its next search
	lineages := [2][]searcher.Segment{}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", actor)

	step := 0
	for !e.Env.GameOver() && step < MaxMoves {
		idx := int(actor) - 1

		move, searchMetric := e.Agents[idx].FindMove(e.Env.Snapshot(actor), lineages[idx])
		lineages[idx] = lineages[idx][:0]

		if _, _, err := e.Env.Step(move, actor); err != nil {
			// Agents must pre-filter through the snapshot's legal moves,
			// so this is a bug in the agent, not a recoverable state.
			panic(fmt.Sprintf("agent for %s played column %d: %v", actor, move, err))
		}
		step++

		next := game.Opponent(actor)
		segment := searcher.Segment{Move: move, StateHash: e.Env.Snapshot(next).Hash()}
		lineages[0] = append(lineages[0], segment)
		lineages[1] = append(lineages[1], segment)

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Actor:        int8(actor),
			SearchMetric: searchMetric,
		})

		actor = next
	}

	winner := ""
	if w, ok := e.Env.Winner(); ok {
		winner = w.String()
	}
	log.Info().Msgf("game over after %d moves, winner: %q", step, winner)

	end := time.Now()
	return winner, metrics.GameMetric{
		StartingActor: int8(game.Player1),
		Winner:        winner,
		StartTime:     start,
		EndTime:       end,
		Duration:      end.Sub(start),
		TotalMoves:    step,
	}, moveMetrics
}
