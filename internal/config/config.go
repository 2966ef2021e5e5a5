// Package config loads and validates the tunable parameters needed to
// bootstrap the forest generator: a load-then-validate config struct
// with a Default() constructor.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures everything needed to build tree types, fill their
// instance caches, and compose a forest.
type Config struct {
	Terrain   TerrainConfig    `json:"terrain" yaml:"terrain"`
	Placement PlacementConfig  `json:"placement" yaml:"placement"`
	TreeTypes []TreeTypeConfig `json:"treeTypes" yaml:"treeTypes"`
}

// TerrainConfig parameterizes the pure height field (spec component A).
type TerrainConfig struct {
	Seed        int64   `json:"seed" yaml:"seed"`
	Frequency   float64 `json:"frequency" yaml:"frequency"`
	Amplitude   float64 `json:"amplitude" yaml:"amplitude"`
	Octaves     int     `json:"octaves" yaml:"octaves"`
	Persistence float64 `json:"persistence" yaml:"persistence"`
	Lacunarity  float64 `json:"lacunarity" yaml:"lacunarity"`
}

// PlacementConfig governs forest-wide scatter/paint behavior.
type PlacementConfig struct {
	Seed       *int64  `json:"seed,omitempty" yaml:"seed,omitempty"`
	WorldWidth float64 `json:"worldWidth" yaml:"worldWidth"`
	MinSpacing float64 `json:"minSpacing" yaml:"minSpacing"`
	MinScale   float64 `json:"minScale" yaml:"minScale"`
	MaxScale   float64 `json:"maxScale" yaml:"maxScale"`
	ApplyScale bool    `json:"applyScale" yaml:"applyScale"`
}

// TreeTypeConfig describes one grammar-driven tree type: its rules, its
// turtle defaults, and how many hero trees to grow for variant diversity.
type TreeTypeConfig struct {
	Name         string         `json:"name" yaml:"name"`
	Axiom        string         `json:"axiom" yaml:"axiom"`
	Rules        string         `json:"rules" yaml:"rules"` // grammar text format, one "LHS=RHS[:PROB]" rule per line
	Generations  int            `json:"generations" yaml:"generations"`
	Seed         *int64         `json:"seed,omitempty" yaml:"seed,omitempty"`
	InstanceProb float64        `json:"instanceProbability" yaml:"instanceProbability"`
	MaxVariants  int            `json:"maxVariants" yaml:"maxVariants"`
	HeroTrees    int            `json:"heroTrees" yaml:"heroTrees"`
	ScatterCount int            `json:"scatterCount" yaml:"scatterCount"`
	Defaults     TurtleDefaults `json:"defaults" yaml:"defaults"`
}

// TurtleDefaults are the initial step/angle/thickness and their
// multiplicative scale factors.
type TurtleDefaults struct {
	Step           float64 `json:"step" yaml:"step"`
	StepScale      float64 `json:"stepScale" yaml:"stepScale"`
	Angle          float64 `json:"angle" yaml:"angle"`
	AngleScale     float64 `json:"angleScale" yaml:"angleScale"`
	Thickness      float64 `json:"thickness" yaml:"thickness"`
	ThicknessScale float64 `json:"thicknessScale" yaml:"thicknessScale"`
}

// Load reads configuration from path, dispatching on file extension
// between JSON and YAML (.yaml or .yml; anything else is parsed as
// JSON). An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg = &Config{}
	if strings.ToLower(filepath.Ext(path)) == ".yaml" || strings.ToLower(filepath.Ext(path)) == ".yml" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml config: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse json config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns a small, self-consistent configuration good enough to
// smoke-test the pipeline end to end.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Seed:        1337,
			Frequency:   0.05,
			Amplitude:   4,
			Octaves:     4,
			Persistence: 0.5,
			Lacunarity:  2.0,
		},
		Placement: PlacementConfig{
			WorldWidth: 200,
			MinSpacing: 6,
			MinScale:   2,
			MaxScale:   3,
		},
		TreeTypes: []TreeTypeConfig{
			{
				Name:         "default",
				Axiom:        "A",
				Rules:        "A=F[+A][-A]",
				Generations:  4,
				InstanceProb: 0.5,
				MaxVariants:  10,
				HeroTrees:    4,
				ScatterCount: 20,
				Defaults: TurtleDefaults{
					Step: 1, StepScale: 1, Angle: 0.4, AngleScale: 1,
					Thickness: 1, ThicknessScale: 0.9,
				},
			},
		},
	}
}

// Validate rejects configurations that would make downstream components
// misbehave (negative counts, out-of-range probabilities) before
// anything runs.
func (c *Config) Validate() error {
	if c.Terrain.Octaves < 0 {
		return errors.New("terrain.octaves must be >= 0")
	}
	if c.Terrain.Frequency < 0 {
		return errors.New("terrain.frequency must be >= 0")
	}
	if c.Placement.WorldWidth < 0 {
		return errors.New("placement.worldWidth must be >= 0")
	}
	if c.Placement.MinSpacing < 0 {
		return errors.New("placement.minSpacing must be >= 0")
	}
	if len(c.TreeTypes) == 0 {
		return errors.New("at least one tree type is required")
	}
	for i, tt := range c.TreeTypes {
		if tt.Name == "" {
			return fmt.Errorf("treeTypes[%d]: name is required", i)
		}
		if tt.Generations < 0 {
			return fmt.Errorf("treeTypes[%d] %q: generations must be >= 0", i, tt.Name)
		}
		if tt.InstanceProb < 0 || tt.InstanceProb > 1 {
			return fmt.Errorf("treeTypes[%d] %q: instanceProbability must be in [0,1]", i, tt.Name)
		}
		if tt.MaxVariants < 0 {
			return fmt.Errorf("treeTypes[%d] %q: maxVariants must be >= 0", i, tt.Name)
		}
		if tt.HeroTrees < 0 {
			return fmt.Errorf("treeTypes[%d] %q: heroTrees must be >= 0", i, tt.Name)
		}
	}
	return nil
}
