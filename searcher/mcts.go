package searcher

import (
	"sync"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(m *MCTS)

// Segment is one move along the path from the previous search root to
// the current state, used to find a reusable subtree.
type Segment struct {
	Move      game.Action
	StateHash game.StateHash
}

// MCTS runs tree-parallel Monte Carlo tree search with virtual loss.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	root       *decision
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: goroutines,
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluatePosition,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the visit count per root
// move together with the search metrics. lineage is the move path from
// the previous search root to state; when it leads to an existing
// subtree, that subtree is reused instead of starting cold.
func (m *MCTS) Simulate(state game.State, lineage []Segment) (map[game.Action]int, metrics.SearchMetric) {
	m.findRoot(lineage, state)

	// Run simulations to collect statistics
	m.metrics.Start(m.goroutines, m.cutoff)
	if m.episodes > 0 {
		m.iterate(state)
	} else {
		m.countdown(state)
	}
	metric := m.metrics.Complete()

	return m.root.Policy(), metric
}

func (m *MCTS) iterate(state game.State) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(seed))
			for range task {
				m.simulate(state, rng)
				m.metrics.AddEpisode()
			}
		}(uint64(time.Now().UnixNano()) + uint64(i))
	}

	wg.Wait()
}

func (m *MCTS) countdown(state game.State) {
	done := make(chan any)
	var wg sync.WaitGroup

	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-done:
					return
				default:
					m.simulate(state, rng)
					m.metrics.AddEpisode()
				}
			}
		}(uint64(time.Now().UnixNano()) + uint64(i))
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) findRoot(lineage []Segment, state game.State) {
	root := traverse(m.root, lineage)
	if root != nil && root.hash != state.Hash() {
		// The lineage led somewhere, but not to this position. Happens
		// when the environment was reset between searches.
		root = nil
	}
	if root == nil {
		m.root = newDecision(nil, state)
		m.metrics.SetTreeReset(true)
	} else {
		root.parent = nil
		m.root = root
		m.metrics.SetTreeReset(false)
	}
}

func traverse(root *decision, lineage []Segment) *decision {
	if root == nil {
		return nil
	}

	node := root
	for _, segment := range lineage {
		child := node.child(segment.Move)
		if child == nil { // Node has not expanded this move
			return nil
		}
		if child.hash != segment.StateHash {
			log.Warn().Msgf("node's state hash %d does not match segment's state hash %d", child.hash, segment.StateHash)
			return nil
		}
		node = child
	}
	return node
}

func (m *MCTS) simulate(state game.State, rng *rand.Rand) {
	newNode, newState := selectThenExpand(m.root, state)
	player, score := rollout(newState, m.cutoff, m.evaluate, m.metrics, rng)
	backup(newNode, player, score)
}

func selectThenExpand(root *decision, state game.State) (*decision, game.State) {
	parent := root
	child, state, selected := parent.SelectOrExpand(state)
	for selected && child != parent {
		parent = child
		child, state, selected = parent.SelectOrExpand(state)
	}
	return child, state
}

func rollout(state game.State, cutoff int, evaluate game.Evaluate, collector metrics.Collector, rng *rand.Rand) (string, float64) {
	depth := 0
	moves := state.LegalMoves()
	// Rollout till game over or for cutoff number of moves
	for len(moves) > 0 && depth < cutoff {
		move := moves[rng.Intn(len(moves))] // Random rollout policy
		state = state.Play(move)
		moves = state.LegalMoves()
		depth++
	}

	if len(moves) == 0 { // Game over before cutoff
		collector.AddFullPlayout()
		if winner := state.Winner(); winner != "" {
			return winner, Win
		}
		return state.Player(), 0 // Draw carries no signal either way
	}

	// At cutoff state, return an evaluation score from current player's perspective
	return state.Player(), evaluate(state)
}

func backup(newNode *decision, player string, score float64) {
	node := newNode
	for node != nil {
		node = node.Backup(player, score)
	}
}
