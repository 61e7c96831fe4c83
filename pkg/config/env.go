// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables recognized by ApplyEnvironmentOverrides
const (
	EnvTickRate       = "TWOBALLS_TICK_RATE"
	EnvCollisionOrder = "TWOBALLS_COLLISION_ORDER"
	EnvFriction       = "TWOBALLS_FRICTION"
	EnvRadius         = "TWOBALLS_RADIUS"
	EnvRenderer       = "TWOBALLS_RENDERER"
	EnvSound          = "TWOBALLS_SOUND"
	EnvMaxTicks       = "TWOBALLS_MAX_TICKS"
)

// ApplyEnvironmentOverrides replaces configuration values with any that are
// set in the environment, then validates the result.
func ApplyEnvironmentOverrides(config *Config) error {
	if config == nil {
		return fmt.Errorf("cannot apply environment overrides to nil config")
	}

	config.Simulation.TickRate = getEnvAsIntOrDefault(EnvTickRate, config.Simulation.TickRate)
	config.Simulation.CollisionOrder = strings.ToLower(getEnvOrDefault(EnvCollisionOrder, config.Simulation.CollisionOrder))
	config.Simulation.MaxTicks = getEnvAsIntOrDefault(EnvMaxTicks, config.Simulation.MaxTicks)
	config.Ball.Friction = getEnvAsFloatOrDefault(EnvFriction, config.Ball.Friction)
	config.Ball.Radius = getEnvAsFloatOrDefault(EnvRadius, config.Ball.Radius)
	config.Display.Renderer = strings.ToLower(getEnvOrDefault(EnvRenderer, config.Display.Renderer))
	config.Display.Sound = getEnvAsBoolOrDefault(EnvSound, config.Display.Sound)

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration after environment overrides: %w", err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
