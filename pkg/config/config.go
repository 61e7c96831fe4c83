// pkg/config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-twoballs/pkg/physics"
)

// Collision ordering modes
const (
	// OrderResolved bounces both balls off the walls, resolves the pair
	// once, then translates both.
	OrderResolved = "resolved"
	// OrderClassic steps each ball in turn (walls, pair check, translate),
	// checking the pair from both sides.
	OrderClassic = "classic"
)

// Renderer names
const (
	RendererEngo     = "engo"
	RendererTerminal = "terminal"
	RendererNull     = "null"
)

// Config contains configuration for a table simulation
type Config struct {
	Table      TableConfig      `json:"table" yaml:"table"`
	Ball       BallConfig       `json:"ball" yaml:"ball"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Display    DisplayConfig    `json:"display" yaml:"display"`
}

// TableConfig contains the table geometry
type TableConfig struct {
	Width         float64 `json:"width" yaml:"width"`
	Height        float64 `json:"height" yaml:"height"`
	WallThickness float64 `json:"wallThickness" yaml:"wallThickness"`
}

// BallConfig contains ball parameters shared by both balls
type BallConfig struct {
	Radius           float64            `json:"radius" yaml:"radius"`
	Friction         float64            `json:"friction" yaml:"friction"`
	InitialPositions [2]physics.Vector2 `json:"initialPositions" yaml:"initialPositions"`
}

// SimulationConfig contains tick driver settings
type SimulationConfig struct {
	TickRate       int    `json:"tickRate" yaml:"tickRate"`
	CollisionOrder string `json:"collisionOrder" yaml:"collisionOrder"`
	MaxTicks       int    `json:"maxTicks" yaml:"maxTicks"`
}

// DisplayConfig contains host settings
type DisplayConfig struct {
	Renderer string `json:"renderer" yaml:"renderer"`
	Title    string `json:"title" yaml:"title"`
	Sound    bool   `json:"sound" yaml:"sound"`
}

// Walls returns the inner wall planes of the table
func (t TableConfig) Walls() physics.Walls {
	return physics.NewWalls(t.Width, t.Height, t.WallThickness)
}

// OuterWidth returns the width including both side walls
func (t TableConfig) OuterWidth() float64 {
	return t.Width + 2*t.WallThickness
}

// OuterHeight returns the height including top and bottom walls
func (t TableConfig) OuterHeight() float64 {
	return t.Height + 2*t.WallThickness
}

// LoadConfig loads a configuration from a file. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config *Config
	if isYAML(path) {
		config, err = LoadYAML(bytes.NewReader(data))
	} else {
		config, err = LoadJSON(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// LoadJSON decodes a configuration from JSON. Missing fields keep their
// default values.
func LoadJSON(r io.Reader) (*Config, error) {
	config := DefaultConfig()
	if err := json.NewDecoder(r).Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadYAML decodes a configuration from YAML. Missing fields keep their
// default values.
func LoadYAML(r io.Reader) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves a configuration to a file, as YAML or JSON depending on
// the extension.
func SaveConfig(config *Config, path string) error {
	if config == nil {
		return fmt.Errorf("failed to marshal config: nil config")
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// DefaultConfig returns the default table configuration
func DefaultConfig() *Config {
	return &Config{
		Table: TableConfig{
			Width:         300,
			Height:        500,
			WallThickness: 20,
		},
		Ball: BallConfig{
			Radius:   15,
			Friction: 0.015,
			InitialPositions: [2]physics.Vector2{
				{X: 100, Y: 100},
				{X: 200, Y: 200},
			},
		},
		Simulation: SimulationConfig{
			TickRate:       100,
			CollisionOrder: OrderResolved,
			MaxTicks:       100000,
		},
		Display: DisplayConfig{
			Renderer: RendererEngo,
			Title:    "With collisions!",
			Sound:    false,
		},
	}
}

// Validate checks the configuration for values the simulation cannot run with
func (c *Config) Validate() error {
	if c.Table.Width <= 0 || c.Table.Height <= 0 {
		return fmt.Errorf("table size must be positive, got %vx%v", c.Table.Width, c.Table.Height)
	}
	if c.Table.WallThickness < 0 {
		return fmt.Errorf("wall thickness must not be negative, got %v", c.Table.WallThickness)
	}
	if c.Ball.Radius <= 0 {
		return fmt.Errorf("ball radius must be positive, got %v", c.Ball.Radius)
	}
	if 2*c.Ball.Radius >= c.Table.Width || 2*c.Ball.Radius >= c.Table.Height {
		return fmt.Errorf("ball radius %v does not fit a %vx%v table", c.Ball.Radius, c.Table.Width, c.Table.Height)
	}
	if c.Ball.Friction <= 0 || c.Ball.Friction >= 1 {
		return fmt.Errorf("friction must be in (0, 1), got %v", c.Ball.Friction)
	}
	if c.Simulation.TickRate <= 0 || c.Simulation.TickRate > 1000 {
		return fmt.Errorf("tick rate must be in 1..1000, got %d", c.Simulation.TickRate)
	}
	switch c.Simulation.CollisionOrder {
	case OrderResolved, OrderClassic:
	default:
		return fmt.Errorf("unknown collision order %q", c.Simulation.CollisionOrder)
	}
	if c.Simulation.MaxTicks < 0 {
		return fmt.Errorf("max ticks must not be negative, got %d", c.Simulation.MaxTicks)
	}
	switch c.Display.Renderer {
	case RendererEngo, RendererTerminal, RendererNull:
	default:
		return fmt.Errorf("unknown renderer %q", c.Display.Renderer)
	}
	return nil
}
