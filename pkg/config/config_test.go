package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-twoballs/pkg/physics"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NotNil(t, config)

	assert.Equal(t, 300.0, config.Table.Width)
	assert.Equal(t, 500.0, config.Table.Height)
	assert.Equal(t, 20.0, config.Table.WallThickness)
	assert.Equal(t, 340.0, config.Table.OuterWidth())
	assert.Equal(t, 540.0, config.Table.OuterHeight())

	assert.Equal(t, 15.0, config.Ball.Radius)
	assert.Equal(t, 0.015, config.Ball.Friction)
	assert.Equal(t, physics.Vec(100, 100), config.Ball.InitialPositions[0])
	assert.Equal(t, physics.Vec(200, 200), config.Ball.InitialPositions[1])

	assert.Equal(t, 100, config.Simulation.TickRate)
	assert.Equal(t, OrderResolved, config.Simulation.CollisionOrder)
	assert.NoError(t, config.Validate())
}

func TestTableConfig_Walls(t *testing.T) {
	walls := DefaultConfig().Table.Walls()
	assert.Equal(t, physics.Walls{Left: 20, Top: 20, Right: 320, Bottom: 520}, walls)
}

func TestLoadConfig_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.json")
	data := `{
  "table": {"width": 400, "height": 600, "wallThickness": 10},
  "simulation": {"tickRate": 200, "collisionOrder": "classic"}
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 400.0, config.Table.Width)
	assert.Equal(t, 600.0, config.Table.Height)
	assert.Equal(t, 10.0, config.Table.WallThickness)
	assert.Equal(t, 200, config.Simulation.TickRate)
	assert.Equal(t, OrderClassic, config.Simulation.CollisionOrder)
	// Unset fields keep their defaults.
	assert.Equal(t, 15.0, config.Ball.Radius)
	assert.Equal(t, RendererEngo, config.Display.Renderer)
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	data := `
ball:
  radius: 12
  friction: 0.02
  initialPositions:
    - {x: 60, y: 80}
    - {x: 250, y: 400}
display:
  renderer: terminal
  sound: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 12.0, config.Ball.Radius)
	assert.Equal(t, 0.02, config.Ball.Friction)
	assert.Equal(t, physics.Vec(60, 80), config.Ball.InitialPositions[0])
	assert.Equal(t, physics.Vec(250, 400), config.Ball.InitialPositions[1])
	assert.Equal(t, RendererTerminal, config.Display.Renderer)
	assert.True(t, config.Display.Sound)
	assert.Equal(t, 300.0, config.Table.Width)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"table": `), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	for _, name := range []string{"saved.json", "saved.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			original := DefaultConfig()
			original.Simulation.TickRate = 60
			original.Display.Renderer = RendererNull

			require.NoError(t, SaveConfig(original, path))
			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, original, loaded)
		})
	}
}

func TestSaveConfig_NilConfig(t *testing.T) {
	err := SaveConfig(nil, filepath.Join(t.TempDir(), "nil.json"))
	assert.Error(t, err)
}

func TestSaveConfig_InvalidPath(t *testing.T) {
	err := SaveConfig(DefaultConfig(), filepath.Join(t.TempDir(), "missing", "dir", "c.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero_width", func(c *Config) { c.Table.Width = 0 }, "table size"},
		{"negative_wall", func(c *Config) { c.Table.WallThickness = -1 }, "wall thickness"},
		{"zero_radius", func(c *Config) { c.Ball.Radius = 0 }, "radius must be positive"},
		{"radius_too_big", func(c *Config) { c.Ball.Radius = 150 }, "does not fit"},
		{"friction_one", func(c *Config) { c.Ball.Friction = 1 }, "friction"},
		{"zero_tick_rate", func(c *Config) { c.Simulation.TickRate = 0 }, "tick rate"},
		{"bad_order", func(c *Config) { c.Simulation.CollisionOrder = "random" }, "collision order"},
		{"bad_renderer", func(c *Config) { c.Display.Renderer = "opengl" }, "renderer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "error %q should mention %q", err, tt.wantErr)
		})
	}
}
