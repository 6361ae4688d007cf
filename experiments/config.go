package experiments

import (
	"fmt"
	"os"
	"time"

	"connect4/experiments/metrics"

	"gopkg.in/yaml.v3"
)

// Config describes one experiment run: the board, the agent ladder, and
// how many games each matchup plays.
type Config struct {
	Name            string
	Rows, Cols      int
	GamesPerMatchup int
	Agents          []metrics.AgentConfig
}

type configYAML struct {
	Name            string            `yaml:"name"`
	Rows            int               `yaml:"rows"`
	Cols            int               `yaml:"cols"`
	GamesPerMatchup int               `yaml:"games_per_matchup"`
	Agents          []agentConfigYAML `yaml:"agents"`
}

type agentConfigYAML struct {
	ID         int    `yaml:"id"`
	Goroutines int    `yaml:"goroutines"`
	Duration   string `yaml:"duration"` // e.g. "10ms"
	Episodes   int    `yaml:"episodes"`
	Cutoff     int    `yaml:"cutoff"`
}

// LoadConfig reads an experiment config from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var raw configYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := &Config{
		Name:            raw.Name,
		Rows:            raw.Rows,
		Cols:            raw.Cols,
		GamesPerMatchup: raw.GamesPerMatchup,
	}
	for _, a := range raw.Agents {
		config := metrics.AgentConfig{
			ID:         a.ID,
			Goroutines: a.Goroutines,
			Episodes:   a.Episodes,
			Cutoff:     a.Cutoff,
		}
		if a.Duration != "" {
			d, err := time.ParseDuration(a.Duration)
			if err != nil {
				return nil, fmt.Errorf("agent %d: bad duration %q: %w", a.ID, a.Duration, err)
			}
			config.Duration = d
		}
		if config.Episodes <= 0 && config.Duration <= 0 {
			return nil, fmt.Errorf("agent %d: must specify episodes or duration", a.ID)
		}
		cfg.Agents = append(cfg.Agents, config)
	}

	return cfg, applyDefaults(cfg)
}

// DefaultConfig is the parallelization ladder used when no config file
// is given: each agent doubles the goroutine count on a fixed budget.
func DefaultConfig() *Config {
	const timeBudget = 10 * time.Millisecond
	cfg := &Config{
		Name:            "parallelization",
		GamesPerMatchup: 30,
	}
	for i, goroutines := range []int{1, 2, 4, 8, 16, 32, 64} {
		cfg.Agents = append(cfg.Agents, metrics.AgentConfig{
			ID:         i + 1,
			Goroutines: goroutines,
			Duration:   timeBudget,
		})
	}
	_ = applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) error {
	if cfg.Name == "" {
		cfg.Name = "experiment"
	}
	if cfg.Rows == 0 {
		cfg.Rows = 6
	}
	if cfg.Cols == 0 {
		cfg.Cols = 7
	}
	if cfg.GamesPerMatchup <= 0 {
		cfg.GamesPerMatchup = 1
	}
	if cfg.Rows < 4 || cfg.Cols < 4 {
		return fmt.Errorf("board %dx%d is too small for four in a row", cfg.Rows, cfg.Cols)
	}
	if len(cfg.Agents) == 0 {
		return fmt.Errorf("no agents configured")
	}
	return nil
}
