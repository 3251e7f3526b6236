package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"garden/searcher"
)

func writeFile(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "garden.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env

	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeFile(t, `
log_level: debug
max_turns: 50
players:
  - difficulty: easy
    goroutines: 4
  - difficulty: medium
    depth: 1
    weights:
      myActive: 12.5
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "debug", cfg.LogLevel)
		require.Equal(t, 50, cfg.MaxTurns)
		require.Equal(t, "out", cfg.OutDir, "unset keys keep their default")
		require.Equal(t, searcher.Easy, cfg.Players[0].Difficulty)
		require.Equal(t, 4, cfg.Players[0].Goroutines)
		require.Equal(t, 1, cfg.Players[1].Depth)
		require.Equal(t, 12.5, *cfg.Players[1].Weights.MyActive)
		require.Nil(t, cfg.Players[1].Weights.OppActive)

		level, err := cfg.Level()
		require.NoError(t, err)
		require.Equal(t, zerolog.DebugLevel, level)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "warn")
		t.Setenv(EnvOutDir, "/tmp/garden")
		t.Setenv(EnvMaxTurns, "7")

		cfg, err := Load(writeFile(t, "max_turns: 50\n"))
		require.NoError(t, err)
		require.Equal(t, "warn", cfg.LogLevel)
		require.Equal(t, "/tmp/garden", cfg.OutDir)
		require.Equal(t, 7, cfg.MaxTurns)
	})

	t.Run(".env file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		require.NoError(t, os.WriteFile(".env", []byte(EnvOutDir+"=from-dotenv\n"), 0644))
		t.Cleanup(func() { os.Unsetenv(EnvOutDir) })

		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, "from-dotenv", cfg.OutDir)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorContains(t, err, "failed to read config file")

		_, err = Load(writeFile(t, "players: [oops"))
		require.ErrorContains(t, err, "failed to parse config file")

		_, err = Load(writeFile(t, "players:\n  - difficulty: easy\n"))
		require.ErrorContains(t, err, "failed to parse config file")

		_, err = Load(writeFile(t, "log_level: loud\n"))
		require.ErrorContains(t, err, "invalid log level")

		_, err = Load(writeFile(t, "players:\n  - difficulty: hard\n  - difficulty: easy\n"))
		require.ErrorContains(t, err, `unknown difficulty "hard"`)

		t.Setenv(EnvMaxTurns, "many")
		_, err = Load("")
		require.ErrorContains(t, err, "failed to parse GARDEN_MAX_TURNS")
	})
}
