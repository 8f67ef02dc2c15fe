package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	yamlData := `
scenario:
  start: {x: 1000, y: -500, z: 2048}
  steps:
    - {x: 100, y: 0, z: 0}
    - {x: 0, y: -50, z: 0}
  repeat: 10
log:
  console_level: debug
metrics:
  namespace: testns
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 1000.0, cfg.Scenario.Start.X)
	assert.Equal(t, -500.0, cfg.Scenario.Start.Y)
	assert.Equal(t, 2048.0, cfg.Scenario.Start.Z)
	require.Len(t, cfg.Scenario.Steps, 2)
	assert.Equal(t, float32(100), cfg.Scenario.Steps[0].X)
	assert.Equal(t, float32(-50), cfg.Scenario.Steps[1].Y)
	assert.Equal(t, 10, cfg.Scenario.GetRepeat())
	assert.Equal(t, "debug", cfg.Log.GetConsoleLevel())
	assert.Equal(t, "testns", cfg.Metrics.GetNamespace())
}

func TestLoadMissingPath(t *testing.T) {
	t.Setenv("COORD_CONFIG", "")

	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestDefaults(t *testing.T) {
	t.Setenv("COORD_LOG_LEVEL", "")
	t.Setenv("COORD_METRICS_NAMESPACE", "")

	var cfg Config
	assert.Equal(t, 1, cfg.Scenario.GetRepeat())
	assert.Equal(t, "info", cfg.Log.GetConsoleLevel())
	assert.Equal(t, "space_game", cfg.Metrics.GetNamespace())
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("COORD_LOG_LEVEL", "trace")

	var cfg Config
	assert.Equal(t, "trace", cfg.Log.GetConsoleLevel())

	// Значение из файла имеет приоритет над окружением
	cfg.Log.ConsoleLevel = "warn"
	assert.Equal(t, "warn", cfg.Log.GetConsoleLevel())
}
