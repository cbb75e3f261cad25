package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/plus3/glyphgrid/internal/cli"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		cfg, err := cli.Load("")
		require.NoError(t, err)
		assert.Equal(t, cli.Default(), *cfg)
	})

	t.Run("toml", func(t *testing.T) {
		cfg, err := cli.Load(write(t, "demo.toml", `
[screen]
width = 40
height = 12
debug = true

[logging]
level = "debug"
format = "json"
`))
		require.NoError(t, err)
		assert.Equal(t, 40, cfg.Screen.Width)
		assert.Equal(t, 12, cfg.Screen.Height)
		assert.True(t, cfg.Screen.Debug)
		// Unset keys keep their defaults.
		assert.Equal(t, 640, cfg.Screen.WindowWidth)
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("yaml", func(t *testing.T) {
		cfg, err := cli.Load(write(t, "demo.yml", "screen:\n  ui_only: true\nlogging:\n  level: warn\n"))
		require.NoError(t, err)
		assert.True(t, cfg.Screen.UIOnly)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, "console", cfg.Logging.Format)
	})

	t.Run("invalid screen", func(t *testing.T) {
		_, err := cli.Load(write(t, "bad.toml", "[screen]\nwidth = 0\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid screen config")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := cli.Load(write(t, "demo.ini", "width=1"))
		assert.ErrorContains(t, err, "unsupported config format")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := cli.Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		log, err := cli.NewLogger(cli.LoggingConfig{Level: "warn", Format: format})
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	}

	// An unknown level falls back to info.
	log, err := cli.NewLogger(cli.LoggingConfig{Level: "loud"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.log")
	log, err := cli.NewFileLogger(cli.LoggingConfig{Level: "info"}, path)
	require.NoError(t, err)
	log.Info("hello")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
