package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	t.Run("writes agent configs with a header", func(t *testing.T) {
		w, err := NewWriterAt(t.TempDir(), "unit")
		require.NoError(t, err)

		configs := []AgentConfig{
			{ID: 1, Goroutines: 8, Duration: 10 * time.Millisecond},
			{ID: 2, Goroutines: 16, Episodes: 500, Cutoff: 20},
		}
		require.NoError(t, w.WriteAgentConfigs(configs))

		rows := readCSV(t, filepath.Join(w.BaseDir(), "agent_configs.csv"))
		require.Len(t, rows, 3, "Header plus one row per config")
		require.Equal(t, []string{"id", "goroutines", "duration", "episodes", "cutoff"}, rows[0])
		require.Equal(t, []string{"1", "8", "10ms", "0", "0"}, rows[1])
		require.Equal(t, []string{"2", "16", "0s", "500", "20"}, rows[2])
	})

	t.Run("game and move records share the game id", func(t *testing.T) {
		w, err := NewWriterAt(t.TempDir(), "unit")
		require.NoError(t, err)

		id := uuid.New()
		start := time.Now()
		game := GameRecord{
			ID:     id,
			Agent1: 1,
			Agent2: 2,
			GameMetric: GameMetric{
				StartingActor: 1,
				Winner:        "Player1",
				StartTime:     start,
				EndTime:       start.Add(time.Second),
				Duration:      time.Second,
				TotalMoves:    7,
			},
		}
		moves := []MoveRecord{
			{Game: id, MoveMetric: MoveMetric{Step: 1, Actor: 1}},
			{Game: id, MoveMetric: MoveMetric{Step: 2, Actor: 2}},
		}

		require.NoError(t, w.WriteGameRecords([]GameRecord{game}))
		require.NoError(t, w.WriteMoveRecords(moves))

		gameRows := readCSV(t, filepath.Join(w.BaseDir(), "game_records.csv"))
		require.Len(t, gameRows, 2)
		require.Equal(t, id.String(), gameRows[1][0])
		require.Equal(t, "Player1", gameRows[1][4])
		require.Equal(t, "7", gameRows[1][8])

		moveRows := readCSV(t, filepath.Join(w.BaseDir(), "move_records.csv"))
		require.Len(t, moveRows, 3)
		require.Equal(t, id.String(), moveRows[1][0], "Move rows should reference their game")
		require.Equal(t, id.String(), moveRows[2][0], "Move rows should reference their game")
	})
}
