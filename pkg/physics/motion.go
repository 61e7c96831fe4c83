// pkg/physics/motion.go
package physics

import "math"

// ReferenceTickRate is the tick rate, in ticks per second, that friction
// constants are calibrated against.
const ReferenceTickRate = 100.0

// FrictionPerTick scales a friction constant calibrated at ReferenceTickRate
// to the per-tick decrement applied at tickRate.
func FrictionPerTick(friction float64, tickRate int) float64 {
	return 1.0 - math.Pow(1.0-friction, ReferenceTickRate/float64(tickRate))
}

// ShotSpeed returns the launch speed, in units per tick, for an aim vector
// of the given length. Speed grows with the square root of the drag length.
func ShotSpeed(aimLength float64, tickRate int) float64 {
	return math.Sqrt(10.0 * aimLength / float64(tickRate))
}

// MovementState is the kinematic state of a sliding disc
type MovementState struct {
	Position Vector2
	Velocity Vector2
}

// IsMoving reports whether the speed is above the per-tick friction
// decrement. Anything slower is deemed to have stopped.
func (m *MovementState) IsMoving(frictionPerTick float64) bool {
	return m.Velocity.Magnitude() > frictionPerTick
}

// Advance moves the state one tick: translate by velocity, then reduce the
// speed by frictionPerTick against the direction of travel. It does nothing
// for a stopped state and reports whether it moved.
func (m *MovementState) Advance(frictionPerTick float64) bool {
	if !m.IsMoving(frictionPerTick) {
		return false
	}
	m.Position.IncreaseBy(m.Velocity)
	m.Velocity.DecreaseBy(m.Velocity.Normalized().Scale(frictionPerTick))
	return true
}
