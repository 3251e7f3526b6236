package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"garden/meta"
	"garden/searcher"
)

const (
	EnvLogLevel = "GARDEN_LOG_LEVEL"
	EnvOutDir   = "GARDEN_OUT_DIR"
	EnvMaxTurns = "GARDEN_MAX_TURNS"
)

type PlayerConfig struct {
	searcher.Config `yaml:",inline"`
	Goroutines      int `yaml:"goroutines"`
	Depth           int `yaml:"depth"`
}

type Config struct {
	LogLevel        string          `yaml:"log_level"`
	MaxTurns        int             `yaml:"max_turns"`
	OutDir          string          `yaml:"out_dir"`
	Players         [2]PlayerConfig `yaml:"players"`
	GamesPerMatchup int             `yaml:"games_per_matchup"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		MaxTurns: meta.MAX_TURNS,
		OutDir:   "out",
		Players: [2]PlayerConfig{
			{Config: searcher.Config{Difficulty: searcher.Medium}, Goroutines: 1},
			{Config: searcher.Config{Difficulty: searcher.Easy}, Goroutines: 1},
		},
		GamesPerMatchup: 10,
	}
}

// Load reads the YAML file at path over Default, then applies the
// environment. An empty path skips the file. Variables in a .env file in the
// working directory are loaded first without overriding the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		body, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(body, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if level, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = level
	}
	if dir, ok := os.LookupEnv(EnvOutDir); ok {
		c.OutDir = dir
	}
	if turns, ok := os.LookupEnv(EnvMaxTurns); ok {
		n, err := strconv.Atoi(turns)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", EnvMaxTurns, err)
		}
		c.MaxTurns = n
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("max_turns must be positive, got %d", c.MaxTurns)
	}
	if c.GamesPerMatchup <= 0 {
		return fmt.Errorf("games_per_matchup must be positive, got %d", c.GamesPerMatchup)
	}
	for i, p := range c.Players {
		switch p.Difficulty {
		case searcher.Easy, searcher.Medium:
		default:
			return fmt.Errorf("player %d: unknown difficulty %q", i, p.Difficulty)
		}
		if p.Goroutines < 0 || p.Depth < 0 {
			return fmt.Errorf("player %d: goroutines and depth must not be negative", i)
		}
	}
	return nil
}

func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// SearcherOptions translates the player entry into searcher options.
func (p PlayerConfig) SearcherOptions() []searcher.Option {
	return []searcher.Option{
		searcher.WithDepth(p.Depth),
		searcher.WithGoroutines(p.Goroutines),
	}
}
