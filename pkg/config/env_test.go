package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvTickRate, "250")
	t.Setenv(EnvCollisionOrder, "CLASSIC")
	t.Setenv(EnvFriction, "0.02")
	t.Setenv(EnvRadius, "10")
	t.Setenv(EnvRenderer, "terminal")
	t.Setenv(EnvSound, "true")
	t.Setenv(EnvMaxTicks, "500")

	config := DefaultConfig()
	require.NoError(t, ApplyEnvironmentOverrides(config))

	assert.Equal(t, 250, config.Simulation.TickRate)
	assert.Equal(t, OrderClassic, config.Simulation.CollisionOrder)
	assert.Equal(t, 0.02, config.Ball.Friction)
	assert.Equal(t, 10.0, config.Ball.Radius)
	assert.Equal(t, RendererTerminal, config.Display.Renderer)
	assert.True(t, config.Display.Sound)
	assert.Equal(t, 500, config.Simulation.MaxTicks)
}

func TestApplyEnvironmentOverrides_InvalidResult(t *testing.T) {
	t.Setenv(EnvTickRate, "-5")

	err := ApplyEnvironmentOverrides(DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tick rate")
}

func TestApplyEnvironmentOverrides_NilConfig(t *testing.T) {
	assert.Error(t, ApplyEnvironmentOverrides(nil))
}

func TestGetEnvHelperFunctions(t *testing.T) {
	t.Setenv("TWOBALLS_TEST_STRING", "test_value")
	assert.Equal(t, "test_value", getEnvOrDefault("TWOBALLS_TEST_STRING", "default"))
	assert.Equal(t, "default", getEnvOrDefault("TWOBALLS_TEST_NONEXISTENT", "default"))

	t.Setenv("TWOBALLS_TEST_INT", "42")
	assert.Equal(t, 42, getEnvAsIntOrDefault("TWOBALLS_TEST_INT", 10))
	t.Setenv("TWOBALLS_TEST_INT", "not_a_number")
	assert.Equal(t, 10, getEnvAsIntOrDefault("TWOBALLS_TEST_INT", 10))

	t.Setenv("TWOBALLS_TEST_BOOL", "true")
	assert.True(t, getEnvAsBoolOrDefault("TWOBALLS_TEST_BOOL", false))
	t.Setenv("TWOBALLS_TEST_BOOL", "maybe")
	assert.False(t, getEnvAsBoolOrDefault("TWOBALLS_TEST_BOOL", false))

	t.Setenv("TWOBALLS_TEST_FLOAT", "3.14")
	assert.Equal(t, 3.14, getEnvAsFloatOrDefault("TWOBALLS_TEST_FLOAT", 1.0))
	t.Setenv("TWOBALLS_TEST_FLOAT", "pi")
	assert.Equal(t, 1.0, getEnvAsFloatOrDefault("TWOBALLS_TEST_FLOAT", 1.0))
}
