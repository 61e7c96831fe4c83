// pkg/render/engo/table.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-twoballs/pkg/engine"
	"github.com/opd-ai/go-twoballs/pkg/physics"
)

// guideWidth is the thickness of the aiming guide line
const guideWidth = 1

type drawEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// TableSystem keeps the engo entities for the table, the balls and their
// guide lines in step with the frames presented to an EngoRenderer.
type TableSystem struct {
	renderer *EngoRenderer
	assets   *AssetManager
	initial  engine.Frame

	walls  *drawEntity
	felt   *drawEntity
	balls  [2]*drawEntity
	guides [2]*drawEntity
}

// NewTableSystem creates a table system fed by renderer. initial is drawn
// until the first frame is presented.
func NewTableSystem(renderer *EngoRenderer, assets *AssetManager, initial engine.Frame) *TableSystem {
	return &TableSystem{
		renderer: renderer,
		assets:   assets,
		initial:  initial,
	}
}

// New is called by the world when the system is added. It creates the
// entities and registers them with the world's render system.
func (ts *TableSystem) New(w *ecs.World) {
	var rs *common.RenderSystem
	for _, system := range w.Systems() {
		if s, ok := system.(*common.RenderSystem); ok {
			rs = s
		}
	}
	if rs == nil {
		return
	}

	frame := ts.initial
	if latest, fresh := ts.renderer.Latest(); fresh {
		frame = latest
	}

	ts.walls = newDrawEntity(common.Rectangle{}, WallColor, 0)
	ts.felt = newDrawEntity(common.Rectangle{}, FeltColor, 1)
	ts.layoutTable(frame.Table)
	rs.Add(&ts.walls.BasicEntity, &ts.walls.RenderComponent, &ts.walls.SpaceComponent)
	rs.Add(&ts.felt.BasicEntity, &ts.felt.RenderComponent, &ts.felt.SpaceComponent)

	for i := range ts.balls {
		ts.balls[i] = newDrawEntity(ts.assets.LoadBall(frame.Balls[i].Radius), BallColor, 2)
		ts.guides[i] = newDrawEntity(common.Rectangle{}, GuideColor, 3)
		rs.Add(&ts.balls[i].BasicEntity, &ts.balls[i].RenderComponent, &ts.balls[i].SpaceComponent)
		rs.Add(&ts.guides[i].BasicEntity, &ts.guides[i].RenderComponent, &ts.guides[i].SpaceComponent)
	}
	ts.apply(frame)
}

func newDrawEntity(drawable common.Drawable, c color.Color, z float32) *drawEntity {
	e := &drawEntity{BasicEntity: ecs.NewBasic()}
	e.RenderComponent = common.RenderComponent{Drawable: drawable, Color: c}
	e.RenderComponent.SetZIndex(z)
	return e
}

// Update applies the latest frame, if there is a new one
func (ts *TableSystem) Update(dt float32) {
	if frame, fresh := ts.renderer.Latest(); fresh {
		ts.apply(frame)
	}
}

// Remove satisfies the ecs.System interface
func (ts *TableSystem) Remove(basic ecs.BasicEntity) {}

func (ts *TableSystem) layoutTable(table engine.TableView) {
	ts.walls.SpaceComponent = common.SpaceComponent{
		Width:  float32(table.OuterWidth()),
		Height: float32(table.OuterHeight()),
	}
	ts.felt.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{X: float32(table.Walls.Left), Y: float32(table.Walls.Top)},
		Width:    float32(table.Width),
		Height:   float32(table.Height),
	}
}

func (ts *TableSystem) apply(frame engine.Frame) {
	if ts.balls[0] == nil {
		return
	}
	for i, ball := range frame.Balls {
		ts.balls[i].SpaceComponent = ballSpace(ball)
		ts.guides[i].SpaceComponent = guideSpace(ball.AimFrom, ball.AimTo)
		ts.guides[i].RenderComponent.Hidden = !ball.Aiming
	}
}

// ballSpace places a ball sprite so that it covers the ball's disc
func ballSpace(ball engine.BallView) common.SpaceComponent {
	return common.SpaceComponent{
		Position: engo.Point{
			X: float32(ball.Position.X - ball.Radius),
			Y: float32(ball.Position.Y - ball.Radius),
		},
		Width:  float32(2 * ball.Radius),
		Height: float32(2 * ball.Radius),
	}
}

// guideSpace lays a thin rectangle along the segment from..to. engo rotates
// a SpaceComponent about its position, in degrees.
func guideSpace(from, to physics.Vector2) common.SpaceComponent {
	d := to.Sub(from)
	return common.SpaceComponent{
		Position: engo.Point{X: float32(from.X), Y: float32(from.Y)},
		Width:    float32(d.Magnitude()),
		Height:   guideWidth,
		Rotation: float32(math.Atan2(d.Y, d.X) * 180 / math.Pi),
	}
}
