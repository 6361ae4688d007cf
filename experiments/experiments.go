package experiments

import (
	"fmt"

	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Run plays every matchup of the config and writes the records as CSV.
// Each agent is paired against the first agent in the ladder, which acts
// as the baseline.
func Run(cfg *Config) error {
	writer, err := metrics.NewWriter(cfg.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(cfg.Agents); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}

	baseline := cfg.Agents[0]
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting experiment %q on a %dx%d board...", cfg.Name, cfg.Rows, cfg.Cols)

	for _, config := range cfg.Agents {
		log.Info().Msgf("starting matchup between agent %d and baseline agent %d...", config.ID, baseline.ID)

		for i := 0; i < cfg.GamesPerMatchup; i++ {
			winner, gameMetric, moveMetrics, err := runGame(cfg.Rows, cfg.Cols, baseline, config)
			if err != nil {
				return err
			}

			record := metrics.GameRecord{
				ID:         uuid.New(),
				Agent1:     baseline.ID,
				Agent2:     config.ID,
				GameMetric: gameMetric,
			}
			gameRecords = append(gameRecords, record)
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       record.ID,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed game %d of %d, winner: %q", i+1, cfg.GamesPerMatchup, winner)
		}
	}

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}

	summary := Summarize(gameRecords)
	log.Info().Msgf("experiment done: %s (records in %s)", summary, writer.BaseDir())
	return nil
}

// runGame plays a single game between two agent configs. Agent 1 moves
// first.
func runGame(rows, cols int, config1, config2 metrics.AgentConfig) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	env, err := game.NewEnv(rows, cols)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	e := engine.NewLocal(env,
		engine.NewMCTSAgent(newMCTS(config1)),
		engine.NewMCTSAgent(newMCTS(config2)),
	)
	winner, gameMetric, moveMetrics := e.Run()
	return winner, gameMetric, moveMetrics, nil
}

func newMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{searcher.WithMetrics()}
	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	return searcher.NewMCTS(config.Goroutines, options...)
}
