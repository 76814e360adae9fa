// Package config loads the YAML configuration for the graphtraverse
// engine: the planner's single config-sourced flag
// (maintainTransposeMatrices) and the graph store connection settings.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// PlannerConfig carries the planner's one externally-configured
// behavior: whether the underlying graph engine maintains precomputed
// transpose matrices, in which case transposing an expression is free.
type PlannerConfig struct {
	MaintainTransposeMatrices bool `yaml:"maintainTransposeMatrices"`
}

// StoreConfig selects and configures the graph store backend.
type StoreConfig struct {
	Kind   string                 `yaml:"kind"` // "csv" or "json"
	Path   string                 `yaml:"path"`
	Extras map[string]interface{} `yaml:",inline"`
}

// Config is the top-level graphtraverse configuration file shape.
type Config struct {
	Planner PlannerConfig `yaml:"planner"`
	Store   StoreConfig   `yaml:"store"`
}

// MaintainTransposeMatrices reports whether the configured graph
// engine precomputes transpose matrices, per spec.md §4.3.
func (c *Config) MaintainTransposeMatrices() bool {
	return c.Planner.MaintainTransposeMatrices
}

// ReadConfig reads and decodes the YAML config file at path.
func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open file")
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "couldn't decode yaml configuration")
	}

	return &cfg, nil
}
