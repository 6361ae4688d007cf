package searcher

import (
	"sync"
	"testing"

	"connect4/game"

	"github.com/stretchr/testify/require"
)

// mockState scripts a game.State for node tests: fixed legal moves and
// a record of every move played to reach it.
type mockState struct {
	player string
	moves  []game.Action
	winner string
	played []game.Action
}

func (s mockState) Player() string            { return s.player }
func (s mockState) LegalMoves() []game.Action { return s.moves }
func (s mockState) Winner() string            { return s.winner }

func (s mockState) Play(a game.Action) game.State {
	next := s
	next.played = append(append([]game.Action{}, s.played...), a)
	return next
}

func (s mockState) Hash() game.StateHash {
	h := game.StateHash(len(s.played))
	for _, a := range s.played {
		h = h*31 + game.StateHash(a)
	}
	return h
}

func TestSelectOrExpand(t *testing.T) {
	t.Run("terminal node returns itself", func(t *testing.T) {
		node := &decision{}
		state := mockState{}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.Equal(t, node, gotChild, "Terminal node should return itself")
		require.Equal(t, state, gotState, "State should be unchanged")
		require.False(t, gotSelected, "Terminal node should not select")
	})

	t.Run("expandable node adds one child with a virtual loss", func(t *testing.T) {
		node := &decision{
			player:     "Player1",
			unexplored: []game.Action{2, 5},
		}
		state := mockState{player: "Player1", moves: []game.Action{2, 5}}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.NotEqual(t, node, gotChild, "Expansion should produce a new child")
		require.False(t, gotSelected, "Expansion ends the descent")
		require.Equal(t, []game.Action{2}, gotState.(mockState).played, "State should update by the first unexplored move")
		require.Equal(t, []game.Action{5}, node.unexplored, "Expanded move should leave the unexplored set")
		require.Equal(t, []game.Action{2}, node.explored)
		require.Equal(t, Loss, gotChild.rewards, "New child should carry a virtual loss")
		require.Equal(t, 1.0, gotChild.visits, "New child should carry a virtual loss")
	})

	t.Run("fully expanded node selects the max score child", func(t *testing.T) {
		maxChild := &decision{rewards: 1, visits: 1}
		otherChild := &decision{rewards: 0, visits: 1}
		node := &decision{
			player:   "Player1",
			explored: []game.Action{0, 1},
			children: []*decision{otherChild, maxChild},
			rewards:  1,
			visits:   2,
		}
		state := mockState{}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.Equal(t, maxChild, gotChild, "Node should select the child with max policy value")
		require.True(t, gotSelected, "Node should perform selection")
		require.Equal(t, []game.Action{1}, gotState.(mockState).played, "State should update by the move to the selected child")
		require.Equal(t, 1+Loss, gotChild.rewards, "Selected child should apply a temporary loss")
		require.Equal(t, 2.0, gotChild.visits, "Selected child should apply a temporary loss")
		require.Equal(t, 1.0, node.rewards, "Node stats should not change")
		require.Equal(t, 2.0, node.visits, "Node stats should not change")
	})

	t.Run("unvisited child wins selection outright", func(t *testing.T) {
		fresh := &decision{rewards: 0, visits: 0}
		visited := &decision{rewards: 10, visits: 1}
		node := &decision{
			explored: []game.Action{0, 1},
			children: []*decision{visited, fresh},
			visits:   1,
		}

		gotChild, _, _ := node.SelectOrExpand(mockState{})

		require.Equal(t, fresh, gotChild, "Unvisited child should be prioritized")
	})
}

func TestBackup(t *testing.T) {
	t.Run("child accumulates the score signed for its edge player", func(t *testing.T) {
		root := &decision{player: "Player1", visits: 1}
		child := &decision{parent: root, player: "Player2"}
		child.applyLoss()

		gotParent := child.Backup("Player1", Win)

		require.Equal(t, root, gotParent, "Backup should return the parent")
		require.Equal(t, Win, child.rewards, "Virtual loss should be reversed before the score lands")
		require.Equal(t, 1.0, child.visits)
	})

	t.Run("opposing outcome is negated", func(t *testing.T) {
		root := &decision{player: "Player1", visits: 1}
		child := &decision{parent: root, player: "Player2"}
		child.applyLoss()

		child.Backup("Player2", Win)

		require.Equal(t, -Win, child.rewards, "An opponent win should count against the edge player")
	})

	t.Run("root only counts the visit", func(t *testing.T) {
		root := &decision{player: "Player1", rewards: 3, visits: 4}

		gotParent := root.Backup("Player1", Win)

		require.Nil(t, gotParent)
		require.Equal(t, 3.0, root.rewards, "Root rewards feed no selection and stay untouched")
		require.Equal(t, 5.0, root.visits)
	})

	t.Run("backup walks to the root", func(t *testing.T) {
		root := &decision{player: "Player1", visits: 2}
		mid := &decision{parent: root, player: "Player2"}
		leaf := &decision{parent: mid, player: "Player1"}
		mid.applyLoss()
		leaf.applyLoss()

		node := leaf
		for node != nil {
			node = node.Backup("Player1", Win)
		}

		require.Equal(t, -Win, leaf.rewards, "Leaf edge belongs to Player2, so a Player1 win counts against it")
		require.Equal(t, Win, mid.rewards, "Mid edge belongs to Player1")
		require.Equal(t, 3.0, root.visits)
	})
}

func TestPolicy(t *testing.T) {
	t.Run("policy reports visit counts per explored move", func(t *testing.T) {
		node := &decision{
			explored: []game.Action{0, 3},
			children: []*decision{{visits: 5}, {visits: 12}},
			visits:   17,
		}

		policy := node.Policy()

		require.Equal(t, map[game.Action]int{0: 5, 3: 12}, policy)
	})

	t.Run("policy of an unexpanded node is empty", func(t *testing.T) {
		node := &decision{unexplored: []game.Action{0, 1}}

		require.Empty(t, node.Policy())
	})
}

func TestConcurrentSelectOrExpand(t *testing.T) {
	t.Run("concurrent expansion never duplicates a move", func(t *testing.T) {
		moves := []game.Action{0, 1, 2, 3, 4, 5, 6}
		node := newDecision(nil, mockState{player: "Player1", moves: moves})

		var wg sync.WaitGroup
		for i := 0; i < len(moves); i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				node.SelectOrExpand(mockState{player: "Player1", moves: moves})
			}()
		}
		wg.Wait()

		require.Empty(t, node.unexplored, "All moves should be expanded exactly once")
		require.ElementsMatch(t, moves, node.explored)
		require.Len(t, node.children, len(moves))
	})
}
