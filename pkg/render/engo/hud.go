// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-twoballs/pkg/engine"
)

// Status bar colors
var (
	restColor   = color.RGBA{0, 160, 0, 255}
	aimingColor = color.RGBA{255, 200, 0, 255}
	movingColor = color.RGBA{200, 40, 40, 255}
)

const statusBarHeight = 4

// HUDSystem shows the simulation state as a colored bar along the top wall
// and, when a font has been set, a status line.
type HUDSystem struct {
	renderer *EngoRenderer
	font     *common.Font

	bar  *drawEntity
	text *drawEntity

	status string
}

// NewHUDSystem creates a HUD that follows the frames of renderer
func NewHUDSystem(renderer *EngoRenderer) *HUDSystem {
	return &HUDSystem{
		renderer: renderer,
	}
}

// SetFont sets the font used for the status line. It must be called before
// the system is added to the world.
func (hud *HUDSystem) SetFont(font *common.Font) {
	hud.font = font
}

// New creates the HUD entities
func (hud *HUDSystem) New(w *ecs.World) {
	for _, system := range w.Systems() {
		rs, ok := system.(*common.RenderSystem)
		if !ok {
			continue
		}
		hud.bar = newDrawEntity(common.Rectangle{}, restColor, 10)
		hud.bar.SpaceComponent = common.SpaceComponent{
			Width:  engo.GameWidth(),
			Height: statusBarHeight,
		}
		rs.Add(&hud.bar.BasicEntity, &hud.bar.RenderComponent, &hud.bar.SpaceComponent)

		if hud.font != nil {
			hud.text = newDrawEntity(common.Text{Font: hud.font}, color.White, 11)
			hud.text.SpaceComponent = common.SpaceComponent{
				Position: engo.Point{X: 4, Y: statusBarHeight},
			}
			rs.Add(&hud.text.BasicEntity, &hud.text.RenderComponent, &hud.text.SpaceComponent)
		}
	}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update refreshes the status from the latest frame the renderer saw
func (hud *HUDSystem) Update(dt float32) {
	frame := hud.renderer.Peek()
	status, c := StatusText(frame), statusColor(frame)
	if status == hud.status {
		return
	}
	hud.status = status

	if hud.bar != nil {
		hud.bar.RenderComponent.Color = c
	}
	if hud.text != nil {
		hud.text.RenderComponent.Drawable = common.Text{Font: hud.font, Text: status}
	}
}

// Status returns the last status shown
func (hud *HUDSystem) Status() string {
	return hud.status
}

// StatusText describes a frame for the status line
func StatusText(frame engine.Frame) string {
	switch {
	case frame.AnyAiming():
		return "aiming"
	case !frame.AtRest():
		return fmt.Sprintf("moving (tick %d)", frame.Table.Tick)
	default:
		return fmt.Sprintf("at rest after %d ticks", frame.Table.Tick)
	}
}

func statusColor(frame engine.Frame) color.Color {
	switch {
	case frame.AnyAiming():
		return aimingColor
	case !frame.AtRest():
		return movingColor
	default:
		return restColor
	}
}
