// Package config loads and validates training run configuration.
//
// Configuration comes from three layers, later layers winning:
// a YAML file, EMBER_-prefixed environment variables, and CLI overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/ember-ml/ember/internal/loss"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	// Loss is the configuration mapping handed to the loss registry.
	// It must carry a "name" key; the remaining keys are loss parameters,
	// e.g. {name: focal, alpha: 0.25}.
	Loss loss.Config `yaml:"loss"`

	Steps     int     `yaml:"steps" env:"STEPS"`
	BatchSize int     `yaml:"batch_size" env:"BATCH_SIZE"`
	LR        float64 `yaml:"learning_rate" env:"LEARNING_RATE"`
	Momentum  float64 `yaml:"momentum" env:"MOMENTUM"`
	Seed      int64   `yaml:"seed" env:"SEED"`
	LogEvery  int     `yaml:"log_every" env:"LOG_EVERY"`

	// LossName, when set through the environment, overrides Loss["name"].
	LossName string `yaml:"-" env:"LOSS"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	LossName  string
	Steps     int
	BatchSize int
	LR        float64
	Seed      int64
	LogEvery  int
}

// Load reads a Config from YAML, applies environment overrides, and
// validates the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "EMBER_"}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.LossName != "" {
		if cfg.Loss == nil {
			cfg.Loss = loss.Config{}
		}
		cfg.Loss["name"] = cfg.LossName
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LossName != "" {
		if c.Loss == nil {
			c.Loss = loss.Config{}
		}
		c.Loss["name"] = o.LossName
	}
	if o.Steps > 0 {
		c.Steps = o.Steps
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.LR > 0 {
		c.LR = o.LR
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
}

// Validate verifies the config is runnable. Optional fields are defaulted.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.Loss) == 0 {
		return errors.New("loss section is required")
	}
	if name, _ := c.Loss["name"].(string); name == "" {
		return fmt.Errorf("loss config: %w", loss.ErrMissingName)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be > 0 (got %d)", c.Steps)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.LR <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LR)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return fmt.Errorf("momentum must be in [0, 1) (got %g)", c.Momentum)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 50
	}
	return nil
}
