// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-twoballs/pkg/physics"
)

// ID identifies a ball on the table
type ID uint8

// Entity is the base interface for objects on the table
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2
	GetCollider() physics.Circle
}

// BaseEntity contains common functionality for all entities.
// Position and velocity are owned values; copying a BaseEntity never
// shares vector state with the original.
type BaseEntity struct {
	ID ID
	physics.MovementState
	Radius float64
}

// GetID returns the entity's identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2 {
	return e.Position
}

// GetCollider returns the entity's collision shape
func (e *BaseEntity) GetCollider() physics.Circle {
	return physics.Circle{
		Center: e.Position,
		Radius: e.Radius,
	}
}
