package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"connect4/engine"
	"connect4/experiments"
	"connect4/game"
	"connect4/player"
	"connect4/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "play", "play | selfplay | experiment")
	rows := flag.Int("rows", 6, "board rows")
	cols := flag.Int("cols", 7, "board columns")
	goroutines := flag.Int("goroutines", 8, "number of goroutines for parallel playouts")
	episodes := flag.Int("episodes", 200, "number of playouts per move (0 to search by duration)")
	duration := flag.Duration("duration", 0, "duration of playouts per move")
	cutoff := flag.Int("cutoff", 0, "rollout depth cutoff (0 for full playouts)")
	temperature := flag.Float64("temperature", 1.0, "sampling temperature for self-play")
	numEpisodes := flag.Int("games", 1, "number of self-play episodes")
	configPath := flag.String("config", "", "experiment config YAML (experiment mode)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	switch *mode {
	case "play":
		runPlay(*rows, *cols, newMCTS(*goroutines, *episodes, *duration, *cutoff))
	case "selfplay":
		runSelfPlay(*rows, *cols, *numEpisodes, *temperature,
			newMCTS(*goroutines, *episodes, *duration, *cutoff)())
	case "experiment":
		cfg := experiments.DefaultConfig()
		if *configPath != "" {
			var err error
			cfg, err = experiments.LoadConfig(*configPath)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to load experiment config")
			}
		}
		if err := experiments.Run(cfg); err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

// runPlay plays one game between two identically configured agents,
// rendering each position from the mover's perspective.
func runPlay(rows, cols int, search func() *searcher.MCTS) {
	env, err := game.NewEnv(rows, cols)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create environment")
	}

	agents := [2]engine.Agent{
		engine.NewMCTSAgent(search()),
		engine.NewMCTSAgent(search()),
	}
	actor := game.Player1
	lineages := [2][]searcher.Segment{}

	for !env.GameOver() {
		idx := int(actor) - 1
		move, _ := agents[idx].FindMove(env.Snapshot(actor), lineages[idx])
		lineages[idx] = lineages[idx][:0]
		if _, observation, err := env.Step(move, actor); err != nil {
			log.Fatal().Err(err).Msgf("%s played an illegal move", actor)
		} else {
			fmt.Printf("%s plays column %d:\n", actor, move)
			observation.Render(os.Stdout)
		}
		actor = game.Opponent(actor)
		segment := searcher.Segment{Move: move, StateHash: env.Snapshot(actor).Hash()}
		lineages[0] = append(lineages[0], segment)
		lineages[1] = append(lineages[1], segment)
	}

	if winner, ok := env.Winner(); ok {
		fmt.Printf("%s wins after %d moves\n", winner, env.Moves())
	} else {
		fmt.Printf("Draw after %d moves\n", env.Moves())
	}
}

func runSelfPlay(rows, cols, games int, temperature float64, search *searcher.MCTS) {
	env, err := game.NewEnv(rows, cols)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create environment")
	}

	controller := player.NewController(env, search, player.WithTemperature(temperature))
	for i := 0; i < games; i++ {
		episode := controller.Episode()
		log.Info().Msgf("episode %d of %d: %d moves, winner %q", i+1, games, len(episode.Steps), episode.Winner)
	}
}

func newMCTS(goroutines, episodes int, duration time.Duration, cutoff int) func() *searcher.MCTS {
	return func() *searcher.MCTS {
		options := []searcher.Option{}
		if episodes > 0 {
			options = append(options, searcher.WithEpisodes(episodes))
		}
		if duration > 0 {
			options = append(options, searcher.WithDuration(duration))
		}
		if cutoff > 0 {
			options = append(options, searcher.WithCutoff(cutoff))
		}
		return searcher.NewMCTS(goroutines, options...)
	}
}
