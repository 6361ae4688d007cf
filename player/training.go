package player

import (
	"math"
	"math/rand"

	"connect4/game"
	"connect4/searcher"

	"github.com/rs/zerolog/log"
)

// Step is one decision point of a self-play episode: what the mover
// observed, the search's move distribution, the sampled move, and the
// final game outcome from the mover's side.
type Step struct {
	Actor       game.Actor
	Observation game.Observation
	Policy      map[game.Action]float64
	Action      game.Action
	Reward      game.Reward
}

// Episode is a finished self-play game, ready for a training consumer.
type Episode struct {
	Steps  []Step
	Winner string // "" on a draw
}

type Option func(c *Controller)

// WithTemperature controls how sharply the visit distribution is
// sharpened before sampling: below 1 exploits, above 1 explores.
func WithTemperature(temperature float64) Option {
	return func(c *Controller) {
		if temperature > 0 {
			c.temperature = temperature
		}
	}
}

// Controller generates self-play episodes: a single search plays both
// sides of the environment and moves are sampled from the
// temperature-adjusted visit distribution.
type Controller struct {
	env         *game.Env
	search      *searcher.MCTS
	temperature float64
}

func NewController(env *game.Env, search *searcher.MCTS, options ...Option) *Controller {
	c := &Controller{
		env:         env,
		search:      search,
		temperature: 1.0,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Episode resets the environment and plays one full game, returning the
// recorded trajectory with terminal rewards propagated back to every
// step: +1 for the winner's moves, -1 for the loser's, 0 on a draw.
func (c *Controller) Episode() Episode {
	c.env.Reset()
	actor := game.Player1
	var lineage []searcher.Segment
	var steps []Step

	for !c.env.GameOver() {
		state := c.env.Snapshot(actor)
		visits, _ := c.search.Simulate(state, lineage)
		policy := adjustTemperature(visits, c.temperature)
		var move game.Action
		if len(policy) == 0 {
			// The search budget was too small to visit anything
			move = state.LegalMoves()[0]
		} else {
			move = sample(policy)
		}

		observation := c.env.Observe(actor)
		if _, _, err := c.env.Step(move, actor); err != nil {
			panic(err)
		}
		steps = append(steps, Step{
			Actor:       actor,
			Observation: observation,
			Policy:      policy,
			Action:      move,
		})

		// The same tree serves both sides, so the next search is always
		// exactly one move below the previous root.
		actor = game.Opponent(actor)
		lineage = []searcher.Segment{{Move: move, StateHash: c.env.Snapshot(actor).Hash()}}
	}

	winner := ""
	if w, ok := c.env.Winner(); ok {
		winner = w.String()
	}
	for i := range steps {
		steps[i].Reward = outcome(steps[i].Actor, winner)
	}

	log.Debug().Msgf("self-play episode over after %d moves, winner: %q", len(steps), winner)

	return Episode{Steps: steps, Winner: winner}
}

func outcome(actor game.Actor, winner string) game.Reward {
	switch winner {
	case "":
		return 0
	case actor.String():
		return 1
	default:
		return -1
	}
}

// adjustTemperature converts visit counts to move probabilities
// proportional to visits^(1/temperature).
func adjustTemperature(visits map[game.Action]int, temperature float64) map[game.Action]float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make(map[game.Action]float64, len(visits))
	for move, visit := range visits {
		prob := math.Pow(float64(visit), exponent)
		sum += prob
		policy[move] = prob
	}
	if sum == 0 {
		// Degenerate search budget: fall back to uniform
		for move := range policy {
			policy[move] = 1.0 / float64(len(policy))
		}
		return policy
	}
	for move := range policy {
		policy[move] /= sum
	}
	return policy
}

func sample(policy map[game.Action]float64) game.Action {
	sampled := rand.Float64()
	cumulative := 0.0
	var lastMove game.Action
	for move, prob := range policy {
		lastMove = move
		cumulative += prob
		if sampled < cumulative {
			return move
		}
	}
	// Rounding drift can leave the cumulative sum a hair under 1
	return lastMove
}
