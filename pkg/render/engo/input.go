// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-twoballs/pkg/physics"
	"github.com/opd-ai/go-twoballs/pkg/render"
)

// GestureSystem turns left mouse button activity into gestures: press
// grabs, moving while held drags, and release shoots.
type GestureSystem struct {
	controller render.Controller

	pressed bool
	last    physics.Vector2
}

// NewGestureSystem creates a gesture system posting to controller
func NewGestureSystem(controller render.Controller) *GestureSystem {
	return &GestureSystem{
		controller: controller,
	}
}

// Remove satisfies the ecs.System interface
func (gs *GestureSystem) Remove(basic ecs.BasicEntity) {}

// Update reads the mouse state for this frame
func (gs *GestureSystem) Update(dt float32) {
	m := engo.Input.Mouse
	gs.handleMouse(m.Action, m.Button, m.X, m.Y)

	if engo.Input.Button(quitButton).JustPressed() {
		engo.Exit()
	}
}

func (gs *GestureSystem) handleMouse(action engo.Action, button engo.MouseButton, x, y float32) {
	point := physics.Vec(float64(x), float64(y))

	switch {
	case action == engo.Press && button == engo.MouseButtonLeft:
		if !gs.pressed {
			gs.pressed = true
			gs.last = point
			gs.controller.GestureDown(point)
		}
	case action == engo.Release && button == engo.MouseButtonLeft:
		if gs.pressed {
			gs.pressed = false
			gs.controller.GestureUp()
		}
	case gs.pressed && point != gs.last:
		gs.last = point
		gs.controller.GestureDrag(point)
	}
}

const quitButton = "quit"

// SetupInputBindings registers the keys the table scene listens to
func SetupInputBindings() {
	engo.Input.RegisterButton(quitButton, engo.KeyEscape, engo.KeyQ)
}
