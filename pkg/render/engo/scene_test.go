// pkg/render/engo/scene_test.go
package engo

import (
	"math"
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-twoballs/pkg/engine"
	"github.com/opd-ai/go-twoballs/pkg/physics"
)

func testFrame() engine.Frame {
	return engine.Frame{
		Table: engine.TableView{
			Tick:          7,
			Running:       true,
			Width:         300,
			Height:        500,
			WallThickness: 20,
			Walls:         physics.NewWalls(300, 500, 20),
		},
		Balls: [2]engine.BallView{
			{ID: 0, Position: physics.Vec(100, 100), Radius: 15, Moving: true},
			{ID: 1, Position: physics.Vec(200, 200), Radius: 15},
		},
	}
}

type recordingController struct {
	events []string
	points []physics.Vector2
}

func (c *recordingController) GestureDown(p physics.Vector2) {
	c.events = append(c.events, "down")
	c.points = append(c.points, p)
}

func (c *recordingController) GestureDrag(p physics.Vector2) {
	c.events = append(c.events, "drag")
	c.points = append(c.points, p)
}

func (c *recordingController) GestureUp() { c.events = append(c.events, "up") }
func (c *recordingController) Redraw()    { c.events = append(c.events, "redraw") }

func TestNewTableScene(t *testing.T) {
	renderer := NewEngoRenderer()
	ctrl := &recordingController{}
	exited := false

	scene := NewTableScene(renderer, ctrl, testFrame(), func() { exited = true })

	if scene.Type() != "TableScene" {
		t.Errorf("Type() = %q, expected TableScene", scene.Type())
	}
	if scene.renderer != renderer || scene.controller != ctrl {
		t.Error("scene should keep its renderer and controller")
	}

	scene.Exit()
	if !exited {
		t.Error("Exit() should run the exit callback")
	}
}

func TestEngoRenderer_BuffersFrames(t *testing.T) {
	renderer := NewEngoRenderer()

	if _, fresh := renderer.Latest(); fresh {
		t.Error("no frame should be available before Present")
	}

	frame := testFrame()
	engine.RenderFrame(renderer, frame)

	got, fresh := renderer.Latest()
	if !fresh {
		t.Fatal("expected a fresh frame after Present")
	}
	if got != frame {
		t.Errorf("Latest() = %+v, expected %+v", got, frame)
	}
	if _, fresh := renderer.Latest(); fresh {
		t.Error("frame should only be fresh once")
	}
	if renderer.Peek() != frame {
		t.Error("Peek() should still return the last frame")
	}
	if renderer.Presented() != 1 {
		t.Errorf("Presented() = %d, expected 1", renderer.Presented())
	}
}

func TestEngoRenderer_IgnoresExtraBalls(t *testing.T) {
	renderer := NewEngoRenderer()
	renderer.Clear()
	for i := 0; i < 3; i++ {
		renderer.RenderBall(engine.BallView{ID: 0, Radius: float64(i + 1)})
	}
	renderer.Present()

	frame, _ := renderer.Latest()
	if frame.Balls[1].Radius != 2 {
		t.Errorf("second ball radius = %v, expected 2", frame.Balls[1].Radius)
	}
}

func TestBallSpace(t *testing.T) {
	space := ballSpace(engine.BallView{Position: physics.Vec(100, 100), Radius: 15})

	if space.Position != (engo.Point{X: 85, Y: 85}) {
		t.Errorf("Position = %v, expected (85, 85)", space.Position)
	}
	if space.Width != 30 || space.Height != 30 {
		t.Errorf("size = %vx%v, expected 30x30", space.Width, space.Height)
	}
}

func TestGuideSpace(t *testing.T) {
	tests := []struct {
		name     string
		from, to physics.Vector2
		length   float32
		rotation float32
	}{
		{"rightwards", physics.Vec(90, 100), physics.Vec(110, 100), 20, 0},
		{"downwards", physics.Vec(100, 90), physics.Vec(100, 110), 20, 90},
		{"leftwards", physics.Vec(110, 100), physics.Vec(90, 100), 20, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			space := guideSpace(tt.from, tt.to)
			if space.Width != tt.length {
				t.Errorf("Width = %v, expected %v", space.Width, tt.length)
			}
			if math.Abs(float64(space.Rotation-tt.rotation)) > 1e-4 {
				t.Errorf("Rotation = %v, expected %v", space.Rotation, tt.rotation)
			}
			if space.Position != (engo.Point{X: float32(tt.from.X), Y: float32(tt.from.Y)}) {
				t.Errorf("Position = %v, expected %v", space.Position, tt.from)
			}
		})
	}
}

func TestGestureSystem_HandleMouse(t *testing.T) {
	ctrl := &recordingController{}
	gs := NewGestureSystem(ctrl)

	gs.handleMouse(engo.Move, engo.MouseButtonLeft, 50, 50) // hover
	gs.handleMouse(engo.Press, engo.MouseButtonRight, 100, 100)
	gs.handleMouse(engo.Press, engo.MouseButtonLeft, 105, 100)
	gs.handleMouse(engo.Press, engo.MouseButtonLeft, 105, 100) // held, no motion
	gs.handleMouse(engo.Move, engo.MouseButtonLeft, 95, 100)
	gs.handleMouse(engo.Neutral, engo.MouseButtonLeft, 90, 100)
	gs.handleMouse(engo.Release, engo.MouseButtonLeft, 90, 100)
	gs.handleMouse(engo.Release, engo.MouseButtonLeft, 90, 100)

	expected := []string{"down", "drag", "drag", "up"}
	if len(ctrl.events) != len(expected) {
		t.Fatalf("events = %v, expected %v", ctrl.events, expected)
	}
	for i := range expected {
		if ctrl.events[i] != expected[i] {
			t.Errorf("event %d = %s, expected %s", i, ctrl.events[i], expected[i])
		}
	}
	if ctrl.points[0] != physics.Vec(105, 100) || ctrl.points[2] != physics.Vec(90, 100) {
		t.Errorf("points = %v", ctrl.points)
	}
}

func TestStatusText(t *testing.T) {
	frame := testFrame()
	if got := StatusText(frame); got != "moving (tick 7)" {
		t.Errorf("StatusText() = %q", got)
	}
	if statusColor(frame) != movingColor {
		t.Error("moving frame should use the moving color")
	}

	frame.Balls[1].Aiming = true
	if got := StatusText(frame); got != "aiming" {
		t.Errorf("StatusText() = %q", got)
	}

	frame.Balls[1].Aiming = false
	frame.Balls[0].Moving = false
	if got := StatusText(frame); got != "at rest after 7 ticks" {
		t.Errorf("StatusText() = %q", got)
	}
	if statusColor(frame) != restColor {
		t.Error("resting frame should use the rest color")
	}
}

func TestHUDSystem_UpdateWithoutEntities(t *testing.T) {
	renderer := NewEngoRenderer()
	hud := NewHUDSystem(renderer)

	engine.RenderFrame(renderer, testFrame())
	hud.Update(0.016)

	if hud.Status() != "moving (tick 7)" {
		t.Errorf("Status() = %q", hud.Status())
	}
}
