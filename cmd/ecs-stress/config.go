package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Tags       TagsConfig       `toml:"tags"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	Duration    time.Duration `toml:"duration"`
	Entities    int           `toml:"entities"`
	Seed        uint64        `toml:"seed"`
	MinLifetime float64       `toml:"min_lifetime"` // seconds
	MaxLifetime float64       `toml:"max_lifetime"` // seconds
	MaxSpeed    float64       `toml:"max_speed"`
	Respawn     bool          `toml:"respawn"`
	SlowSystem  time.Duration `toml:"slow_system"` // 0 disables the warning
}

type TagsConfig struct {
	Pool         []string `toml:"pool"`
	MaxPerEntity int      `toml:"max_per_entity"`
	Census       []string `toml:"census"`
	CensusEvery  int      `toml:"census_every"` // frames between censuses
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// Load reads a TOML config file on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Simulation.Entities < 0 {
		return fmt.Errorf("simulation.entities must not be negative, got %d", c.Simulation.Entities)
	}
	if c.Simulation.MinLifetime <= 0 || c.Simulation.MaxLifetime < c.Simulation.MinLifetime {
		return fmt.Errorf("simulation lifetime range [%g, %g] is invalid", c.Simulation.MinLifetime, c.Simulation.MaxLifetime)
	}
	if len(c.Tags.Pool) == 0 {
		return fmt.Errorf("tags.pool must not be empty")
	}
	if c.Tags.MaxPerEntity < 1 {
		return fmt.Errorf("tags.max_per_entity must be at least 1, got %d", c.Tags.MaxPerEntity)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Duration:    10 * time.Second,
			Entities:    10000,
			Seed:        1,
			MinLifetime: 0.5,
			MaxLifetime: 5,
			MaxSpeed:    50,
			Respawn:     true,
			SlowSystem:  5 * time.Millisecond,
		},
		Tags: TagsConfig{
			Pool:         []string{"enemy", "friendly", "flying", "static", "boss"},
			MaxPerEntity: 2,
			Census:       []string{"enemy", "flying"},
			CensusEvery:  60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
