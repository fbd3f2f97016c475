package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stress.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Simulation.Entities)
	assert.Equal(t, 10*time.Second, cfg.Simulation.Duration)
	assert.Equal(t, []string{"enemy", "flying"}, cfg.Tags.Census)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.NoError(t, cfg.validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[simulation]
duration = "250ms"
entities = 42
respawn = false

[tags]
pool = ["red", "blue"]
census = ["red"]

[logging]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Simulation.Duration)
	assert.Equal(t, 42, cfg.Simulation.Entities)
	assert.False(t, cfg.Simulation.Respawn)
	assert.Equal(t, []string{"red", "blue"}, cfg.Tags.Pool)
	assert.Equal(t, []string{"red"}, cfg.Tags.Census)
	assert.Equal(t, 2, cfg.Tags.MaxPerEntity, "unset keys keep their defaults")
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "[simulation\nentities = 1"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeConfig(t, "[tags]\npool = []"))
	assert.ErrorContains(t, err, "tags.pool must not be empty")

	_, err = Load(writeConfig(t, "[simulation]\nmin_lifetime = 3.0\nmax_lifetime = 1.0"))
	assert.ErrorContains(t, err, "lifetime range")
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger(LoggingConfig{Level: "warn", Format: "console"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))
	assert.True(t, log.Core().Enabled(1))

	log, err = newLogger(LoggingConfig{Level: "nonsense", Format: "json"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(0), "unknown levels fall back to info")
	assert.False(t, log.Core().Enabled(-1))
}
