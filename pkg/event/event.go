// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-twoballs/pkg/entity"
	"github.com/opd-ai/go-twoballs/pkg/physics"
)

// Type represents the type of event
type Type string

// Table event types
const (
	AimChanged        Type = "aim_changed"
	BallShot          Type = "ball_shot"
	WallBounce        Type = "wall_bounce"
	BallCollision     Type = "ball_collision"
	SimulationStarted Type = "simulation_started"
	SimulationStopped Type = "simulation_stopped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type. Cancel on the
// returned subscription removes it again.
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers, in subscription order
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := append([]registration(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// BallEvent carries the state of one ball when it is aimed or shot
type BallEvent struct {
	BaseEvent
	BallID    entity.ID
	Position  physics.Vector2
	Velocity  physics.Vector2
	AimTarget physics.Vector2
	Aiming    bool
}

// NewBallEvent creates a new ball event
func NewBallEvent(eventType Type, source interface{}, ball *entity.Ball) *BallEvent {
	target, aiming := ball.AimTarget()
	return &BallEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BallID:    ball.GetID(),
		Position:  ball.Position,
		Velocity:  ball.Velocity,
		AimTarget: target,
		Aiming:    aiming,
	}
}

// WallEvent reports a bounce off one or two walls
type WallEvent struct {
	BaseEvent
	BallID entity.ID
	Tick   uint64
	HitX   bool
	HitY   bool
	Speed  float64
}

// NewWallEvent creates a new wall bounce event
func NewWallEvent(source interface{}, ballID entity.ID, tick uint64, hitX, hitY bool, speed float64) *WallEvent {
	return &WallEvent{
		BaseEvent: BaseEvent{
			EventType: WallBounce,
			Source:    source,
		},
		BallID: ballID,
		Tick:   tick,
		HitX:   hitX,
		HitY:   hitY,
		Speed:  speed,
	}
}

// CollisionEvent reports a resolved ball-ball collision
type CollisionEvent struct {
	BaseEvent
	BallA entity.ID
	BallB entity.ID
	Tick  uint64
	Speed float64 // closing speed before the exchange
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, ballA, ballB entity.ID, tick uint64, speed float64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: BallCollision,
			Source:    source,
		},
		BallA: ballA,
		BallB: ballB,
		Tick:  tick,
		Speed: speed,
	}
}

// SimulationEvent marks the tick driver starting or stopping
type SimulationEvent struct {
	BaseEvent
	Tick uint64
}

// NewSimulationEvent creates a new simulation lifecycle event
func NewSimulationEvent(eventType Type, source interface{}, tick uint64) *SimulationEvent {
	return &SimulationEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Tick: tick,
	}
}
