// pkg/entity/ball.go
package entity

import (
	"github.com/opd-ai/go-twoballs/pkg/physics"
)

// Default ball parameters
const (
	DefaultRadius   = 15.0
	DefaultFriction = 0.015 // calibrated for physics.ReferenceTickRate
)

// AimMode is the aiming state of a ball
type AimMode int

const (
	// Free means the ball is not grabbed
	Free AimMode = iota
	// Aiming means a drag gesture holds the ball
	Aiming
)

func (m AimMode) String() string {
	switch m {
	case Aiming:
		return "aiming"
	default:
		return "free"
	}
}

// Ball is a disc on the table that can be aimed, shot, and bounced
type Ball struct {
	BaseEntity
	TickRate        int
	FrictionPerTick float64

	mode      AimMode
	aimTarget physics.Vector2
}

// NewBall creates a resting ball at position. friction is the constant
// calibrated at physics.ReferenceTickRate; it is rescaled to tickRate.
func NewBall(id ID, position physics.Vector2, radius, friction float64, tickRate int) *Ball {
	return &Ball{
		BaseEntity: BaseEntity{
			ID: id,
			MovementState: physics.MovementState{
				Position: position,
			},
			Radius: radius,
		},
		TickRate:        tickRate,
		FrictionPerTick: physics.FrictionPerTick(friction, tickRate),
	}
}

// Mode returns the current aiming state
func (b *Ball) Mode() AimMode {
	return b.mode
}

// IsAiming reports whether the ball is held by a drag gesture
func (b *Ball) IsAiming() bool {
	return b.mode == Aiming
}

// AimTarget returns the current aim point, if aiming
func (b *Ball) AimTarget() (physics.Vector2, bool) {
	return b.aimTarget, b.mode == Aiming
}

// AimLine returns the endpoints of the aiming guide: the aim point and
// its mirror through the ball's center.
func (b *Ball) AimLine() (from, to physics.Vector2, ok bool) {
	if b.mode != Aiming {
		return physics.Vector2{}, physics.Vector2{}, false
	}
	return b.aimTarget, b.aimTarget.Mirror(b.Position), true
}

// IsMoving reports whether the ball is faster than its stop threshold
func (b *Ball) IsMoving() bool {
	return b.MovementState.IsMoving(b.FrictionPerTick)
}

// Grab starts aiming if point lies within the ball's radius.
// It reports whether the ball is now held.
func (b *Ball) Grab(point physics.Vector2) bool {
	if !b.GetCollider().Contains(point) {
		return false
	}
	b.mode = Aiming
	b.aimTarget = point
	return true
}

// Drag moves the aim point. It has no effect unless the ball is aiming.
func (b *Ball) Drag(point physics.Vector2) bool {
	if b.mode != Aiming {
		return false
	}
	b.aimTarget = point
	return true
}

// Shoot launches an aiming ball away from its aim point and returns to
// Free. The launch speed grows with the square root of the drag length.
// A zero-length drag releases the ball without changing its velocity.
// It reports whether a new velocity was set.
func (b *Ball) Shoot() bool {
	if b.mode != Aiming {
		return false
	}
	aim := b.Position.Sub(b.aimTarget)
	b.mode = Free
	b.aimTarget = physics.Vector2{}
	if aim.IsZero() {
		return false
	}
	b.Velocity = aim.Normalized().Scale(physics.ShotSpeed(aim.Magnitude(), b.TickRate))
	return true
}

// WallCollision reflects the velocity on each axis touching a wall
func (b *Ball) WallCollision(walls physics.Walls) (hitX, hitY bool) {
	b.Velocity, hitX, hitY = walls.Bounce(b.GetCollider(), b.Velocity)
	return hitX, hitY
}

// MovesTowards reports whether one step at the current velocity would
// bring the ball closer to other.
func (b *Ball) MovesTowards(other *Ball) bool {
	return physics.Approaching(b.Position, b.Velocity, other.Position)
}

// Translate moves the ball one tick and applies friction. A stopped ball
// stays put. It reports whether the ball moved.
func (b *Ball) Translate() bool {
	return b.Advance(b.FrictionPerTick)
}

// Collide resolves a contact between self and other when they touch and
// self is heading towards other. Velocities along the line of centers are
// exchanged. It reports whether a collision was resolved.
func Collide(self, other *Ball) bool {
	if !self.GetCollider().Touches(other.GetCollider()) || !self.MovesTowards(other) {
		return false
	}
	physics.ExchangeAlongNormal(self.Position, other.Position, &self.Velocity, &other.Velocity)
	return true
}
