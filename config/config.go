package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim     SimConfig     `toml:"sim"`
	Prefabs PrefabsConfig `toml:"prefabs"`
	Viewer  ViewerConfig  `toml:"viewer"`
	Logging LoggingConfig `toml:"logging"`
}

type SimConfig struct {
	TickRate  int           `toml:"tick_rate"` // ticks per second
	Duration  time.Duration `toml:"duration"`  // headless run length, 0 runs until cleared
	Seed      uint64        `toml:"seed"`
	Encounter string        `toml:"encounter"`
}

type PrefabsConfig struct {
	Dir       string `toml:"dir"`        // on-disk override of the embedded prefabs
	HotReload bool   `toml:"hot_reload"` // watch Dir for edits
}

type ViewerConfig struct {
	Scale  float64 `toml:"scale"` // pixels per world unit
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
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

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func (c *Config) validate() error {
	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("sim.tick_rate must be positive, got %d", c.Sim.TickRate)
	}
	if c.Sim.Duration < 0 {
		return fmt.Errorf("sim.duration must not be negative, got %s", c.Sim.Duration)
	}
	if c.Sim.Encounter == "" {
		return errors.New("sim.encounter is empty")
	}
	if c.Viewer.Scale <= 0 {
		return fmt.Errorf("viewer.scale must be positive, got %v", c.Viewer.Scale)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Sim: SimConfig{
			TickRate:  60,
			Duration:  90 * time.Second,
			Seed:      1,
			Encounter: "encounters/forest.yaml",
		},
		Prefabs: PrefabsConfig{
			Dir:       "prefabs",
			HotReload: false,
		},
		Viewer: ViewerConfig{
			Scale:  24,
			Width:  1280,
			Height: 720,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
