// Package driver ties the language pipeline to a canvas and exposes the
// execute surface used by the CLI and REPL.
package driver

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds session settings loaded from an optional YAML file.
type Config struct {
	Canvas CanvasConfig `yaml:"canvas"`
	REPL   REPLConfig   `yaml:"repl"`
}

// CanvasConfig sets up the drawing viewport.
type CanvasConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// REPLConfig sets up the interactive shell.
type REPLConfig struct {
	HistoryFile string `yaml:"history_file"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:  800,
			Height: 600,
			Title:  "Drawing Interpreter",
		},
		REPL: REPLConfig{
			HistoryFile: "/tmp/turtle_history.txt",
		},
	}
}

// LoadConfig reads a YAML config file and overlays it on the defaults. An
// empty path or a missing file yields the defaults; unknown keys are an
// error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Canvas.Width <= 0 || cfg.Canvas.Height <= 0 {
		return nil, fmt.Errorf("config %s: canvas dimensions must be positive", path)
	}
	return cfg, nil
}
