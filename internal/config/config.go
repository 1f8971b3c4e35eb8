// Package config loads the game's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where the hosts look for a config file.
const DefaultPath = "config/game.toml"

// EnvPath overrides DefaultPath.
const EnvPath = "GHOSTLOOP_CONFIG"

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Session SessionConfig `toml:"session"`
	Ghost   GhostConfig   `toml:"ghost"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	TPS    int    `toml:"tps"` // simulation ticks per second
}

type SessionConfig struct {
	Stage     string `toml:"stage"`      // stage YAML path; empty = built-in stage
	MoveStyle string `toml:"move_style"` // direct | tank
}

type GhostConfig struct {
	MaxSamples int `toml:"max_samples"` // 0 = unbounded
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console | json
	Output string `toml:"output"` // stderr, stdout or a file path
}

// Path returns the config path to use: $GHOSTLOOP_CONFIG or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the config at path over the defaults. A missing file at
// DefaultPath is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if path == DefaultPath && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
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
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window.tps must be positive, got %d", c.Window.TPS)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Ghost.MaxSamples < 0 {
		return fmt.Errorf("ghost.max_samples must not be negative, got %d", c.Ghost.MaxSamples)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Ghost Loop",
			TPS:    60,
		},
		Session: SessionConfig{
			MoveStyle: "direct",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}
