package experiments

import (
	"math"
	"testing"
	"time"

	"connect4/experiments/metrics"

	"github.com/stretchr/testify/require"
)

func record(winner string, moves int, duration time.Duration) metrics.GameRecord {
	return metrics.GameRecord{
		GameMetric: metrics.GameMetric{
			Winner:     winner,
			TotalMoves: moves,
			Duration:   duration,
		},
	}
}

func TestSummarize(t *testing.T) {
	t.Run("tallies wins, losses and draws", func(t *testing.T) {
		records := []metrics.GameRecord{
			record("Player1", 7, time.Second),
			record("Player1", 9, time.Second),
			record("Player2", 12, 2*time.Second),
			record("", 42, 4*time.Second),
		}

		s := Summarize(records)

		require.Equal(t, 4, s.Games)
		require.Equal(t, 2, s.Agent1Wins)
		require.Equal(t, 1, s.Agent2Wins)
		require.Equal(t, 1, s.Draws)
		require.InDelta(t, 17.5, s.MeanMoves, 1e-9)
		require.Equal(t, 2*time.Second, s.MeanDuration)
	})

	t.Run("empty batch summarizes to zero", func(t *testing.T) {
		s := Summarize(nil)

		require.Equal(t, 0, s.Games)
		require.Equal(t, 0.0, s.MeanMoves)
	})

	t.Run("single game has no spread", func(t *testing.T) {
		s := Summarize([]metrics.GameRecord{record("Player1", 10, time.Second)})

		require.Equal(t, 10.0, s.MeanMoves)
		require.True(t, s.StdDevMoves == 0 || math.IsNaN(s.StdDevMoves),
			"A single sample has no defined spread")
	})
}
