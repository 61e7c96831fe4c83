// pkg/engine/frame.go
package engine

import (
	"github.com/opd-ai/go-twoballs/pkg/entity"
	"github.com/opd-ai/go-twoballs/pkg/physics"
)

// Renderer draws table frames. Implementations live in pkg/render.
type Renderer interface {
	Clear()
	RenderTable(table TableView)
	RenderBall(ball BallView)
	Present()
}

// Frame is an immutable snapshot of everything a renderer needs
type Frame struct {
	Table TableView
	Balls [2]BallView
}

// TableView describes the table geometry and the state of its driver
type TableView struct {
	Tick          uint64
	Running       bool
	Width         float64
	Height        float64
	WallThickness float64
	Walls         physics.Walls
}

// OuterWidth returns the table width including both side walls
func (t TableView) OuterWidth() float64 {
	return t.Width + 2*t.WallThickness
}

// OuterHeight returns the table height including top and bottom walls
func (t TableView) OuterHeight() float64 {
	return t.Height + 2*t.WallThickness
}

// BallView is the render state of one ball. AimFrom and AimTo are the
// guide line endpoints and are only meaningful while Aiming is set.
type BallView struct {
	ID       entity.ID
	Position physics.Vector2
	Velocity physics.Vector2
	Radius   float64
	Moving   bool
	Aiming   bool
	AimFrom  physics.Vector2
	AimTo    physics.Vector2
}

// AtRest reports whether neither ball is moving
func (f Frame) AtRest() bool {
	return !f.Balls[0].Moving && !f.Balls[1].Moving
}

// AnyAiming reports whether either ball is held by a gesture
func (f Frame) AnyAiming() bool {
	return f.Balls[0].Aiming || f.Balls[1].Aiming
}

func viewOf(b *entity.Ball) BallView {
	from, to, aiming := b.AimLine()
	return BallView{
		ID:       b.GetID(),
		Position: b.Position,
		Velocity: b.Velocity,
		Radius:   b.Radius,
		Moving:   b.IsMoving(),
		Aiming:   aiming,
		AimFrom:  from,
		AimTo:    to,
	}
}

// RenderFrame draws frame with r: clear, table, each ball, present.
func RenderFrame(r Renderer, frame Frame) {
	r.Clear()
	r.RenderTable(frame.Table)
	for _, b := range frame.Balls {
		r.RenderBall(b)
	}
	r.Present()
}
