package experiments

import (
	"fmt"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the outcomes of a batch of games.
type Summary struct {
	Games        int
	Agent1Wins   int
	Agent2Wins   int
	Draws        int
	MeanMoves    float64
	StdDevMoves  float64
	MeanDuration time.Duration
}

// Summarize folds game records into win counts and game length
// statistics.
func Summarize(records []metrics.GameRecord) Summary {
	s := Summary{Games: len(records)}
	if len(records) == 0 {
		return s
	}

	moves := make([]float64, len(records))
	var total time.Duration
	for i, record := range records {
		moves[i] = float64(record.TotalMoves)
		total += record.Duration
		switch record.Winner {
		case game.Player1.String():
			s.Agent1Wins++
		case game.Player2.String():
			s.Agent2Wins++
		default:
			s.Draws++
		}
	}

	s.MeanMoves = stat.Mean(moves, nil)
	s.StdDevMoves = stat.StdDev(moves, nil)
	s.MeanDuration = total / time.Duration(len(records))
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d games, %d/%d/%d win/loss/draw for agent 1, %.1f±%.1f moves, %s mean game",
		s.Games, s.Agent1Wins, s.Agent2Wins, s.Draws, s.MeanMoves, s.StdDevMoves, s.MeanDuration)
}
