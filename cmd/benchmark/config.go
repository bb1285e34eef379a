package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Kind string

const (
	// KindFanout writes one store read by Width chains of Height computeds.
	KindFanout Kind = "fanout"
	// KindDynamic flips Width selections between two stores every Height writes.
	KindDynamic Kind = "dynamic"
	// KindBatch writes Width stores inside one Flush, read by Height selections.
	KindBatch Kind = "batch"
)

type Config struct {
	Iterations int              `yaml:"iterations" toml:"iterations"`
	Repeats    int              `yaml:"repeats" toml:"repeats"`
	Scenarios  []ScenarioConfig `yaml:"scenarios" toml:"scenarios"`
}

type ScenarioConfig struct {
	Name   string `yaml:"name" toml:"name"`
	Kind   Kind   `yaml:"kind" toml:"kind"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Iterations: 1000,
		Repeats:    3,
		Scenarios: []ScenarioConfig{
			{Kind: KindFanout, Width: 1, Height: 1},
			{Kind: KindFanout, Width: 10, Height: 10},
			{Kind: KindFanout, Width: 100, Height: 10},
			{Kind: KindDynamic, Width: 100, Height: 4},
			{Kind: KindBatch, Width: 100, Height: 10},
		},
	}
}

// LoadConfig reads a scenario file, YAML or TOML by extension. An empty path
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("validate config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// a file that lists scenarios replaces the default set
	cfg.Scenarios = nil
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q (must be .yaml, .yml or .toml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("invalid iterations: %d", c.Iterations)
	}
	if c.Iterations == 0 {
		c.Iterations = 1000
	}
	if c.Repeats < 0 {
		return fmt.Errorf("invalid repeats: %d", c.Repeats)
	}
	if c.Repeats == 0 {
		c.Repeats = 3
	}
	if len(c.Scenarios) == 0 {
		return errors.New("no scenarios configured")
	}

	seen := make(map[string]bool, len(c.Scenarios))
	for i := range c.Scenarios {
		sc := &c.Scenarios[i]
		switch sc.Kind {
		case KindFanout, KindDynamic, KindBatch:
		default:
			return fmt.Errorf("scenario %d: invalid kind: %q (must be fanout, dynamic, or batch)", i, sc.Kind)
		}
		if sc.Width < 0 || sc.Height < 0 {
			return fmt.Errorf("scenario %d: invalid size %dx%d", i, sc.Width, sc.Height)
		}
		if sc.Width == 0 {
			sc.Width = 1
		}
		if sc.Height == 0 {
			sc.Height = 1
		}
		if sc.Name == "" {
			sc.Name = fmt.Sprintf("%s-%dx%d", sc.Kind, sc.Width, sc.Height)
		}
		if seen[sc.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, sc.Name)
		}
		seen[sc.Name] = true
	}
	return nil
}
