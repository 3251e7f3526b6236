package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"garden/config"
	"garden/experiments"
	"garden/game"
	"garden/gamemaster"
	"garden/player"
	"garden/replay"
	"garden/searcher"
	"garden/searcher/agent"
)

const usage = `usage: garden <command> [flags]

commands:
  play        play a match between two AI players and save the replay
  verify      replay a saved game and check its outcome
  experiment  run an AI experiment and store the records
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	case "experiment":
		err = runExperiment(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", os.Args[1])
	}
}

func setup(path string) (config.Config, error) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)
	return cfg, nil
}

func runPlay(args []string) error {
	flags := flag.NewFlagSet("play", flag.ExitOnError)
	configPath := flags.String("config", "", "Path to a YAML config file")
	p0 := flags.String("p0", "", "Difficulty of player 0 (easy or medium)")
	p1 := flags.String("p1", "", "Difficulty of player 1 (easy or medium)")
	turns := flags.Int("turns", 0, "Maximum number of turns")
	out := flags.String("out", "", "Replay file to write")
	flags.Parse(args)

	cfg, err := setup(*configPath)
	if err != nil {
		return err
	}
	for i, difficulty := range []string{*p0, *p1} {
		if difficulty != "" {
			cfg.Players[i].Difficulty = searcher.Difficulty(difficulty)
		}
	}
	if *turns > 0 {
		cfg.MaxTurns = *turns
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	engine := gamemaster.NewLocalEngine()
	var controllers [2]player.Controller
	for i, p := range cfg.Players {
		controllers[i] = player.NewController(game.PlayerID(i), agent.NewSearchAgent(p.Config, p.SearcherOptions()...), engine)
	}

	end, err := player.RunMatch(engine, controllers, cfg.MaxTurns)
	if err != nil {
		return err
	}
	if end.Ended {
		log.Info().Msgf("player %d won: %s", *end.Winner, end.Reason)
	} else {
		log.Info().Msgf("no winner after %d turns", cfg.MaxTurns)
	}

	doc, err := engine.Export(cfg.Players[1].Difficulty)
	if err != nil {
		return fmt.Errorf("failed to export replay: %w", err)
	}
	path := *out
	if path == "" {
		path = filepath.Join(cfg.OutDir, "replays", doc.Metadata.ID+".json")
	}
	if err := replay.WriteFile(path, doc); err != nil {
		return err
	}
	log.Info().Msgf("replay saved to %s (hash %x)", path, engine.State().Hash())
	return nil
}

func runVerify(args []string) error {
	flags := flag.NewFlagSet("verify", flag.ExitOnError)
	hash := flags.String("hash", "", "Expected canonical state string of the final position")
	flags.Parse(args)
	if flags.NArg() != 1 {
		return fmt.Errorf("expected one replay file, got %d", flags.NArg())
	}

	if _, err := setup(""); err != nil {
		return err
	}
	doc, err := replay.ReadFile(flags.Arg(0))
	if err != nil {
		return err
	}
	final, err := replay.Verify(doc, *hash)
	if err != nil {
		return err
	}

	log.Info().Msgf("replay %s verified: %d actions, turn %d, hash %x", doc.Metadata.ID, len(doc.Actions), final.TurnNumber, final.Hash())
	return nil
}

func runExperiment(args []string) error {
	flags := flag.NewFlagSet("experiment", flag.ExitOnError)
	configPath := flags.String("config", "", "Path to a YAML config file")
	name := flags.String("name", "difficulty", "Experiment to run: difficulty, throughput or players")
	games := flags.Int("games", 0, "Games per matchup")
	flags.Parse(args)

	cfg, err := setup(*configPath)
	if err != nil {
		return err
	}
	if *games > 0 {
		cfg.GamesPerMatchup = *games
	}

	runner := experiments.NewRunner(
		experiments.WithOutputDir(filepath.Join(cfg.OutDir, "experiments")),
		experiments.WithGamesPerMatchup(cfg.GamesPerMatchup),
		experiments.WithMaxTurns(cfg.MaxTurns),
	)

	switch *name {
	case "difficulty":
		_, err = runner.RunDifficultyExperiment()
	case "throughput":
		_, err = runner.RunThroughputExperiment()
	case "players":
		// The two configured players against each other
		configs := make([]experiments.AgentConfig, 0, len(cfg.Players))
		for i, p := range cfg.Players {
			configs = append(configs, experiments.AgentConfig{ID: i + 1, Config: p.Config, Depth: p.Depth, Goroutines: p.Goroutines})
		}
		_, err = runner.RunExperiment("players", configs)
	default:
		return fmt.Errorf("unknown experiment %q", *name)
	}
	return err
}
