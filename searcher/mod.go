package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const Win = 1.0  // Reward for a winning outcome
const Loss = -Win // Reward for a loss, and the virtual loss applied during descent

// MaxCutoff effectively disables rollout cutoff.
const MaxCutoff = math.MaxInt

func ucb1(rewards float64, visits float64, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	// UCB1 = q/n + sqrt(c^2*ln(N)/n)
	return rewards/visits + math.Sqrt(c2LnN/visits)
}
