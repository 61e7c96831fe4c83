// pkg/render/engo/scene.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-twoballs/pkg/engine"
	"github.com/opd-ai/go-twoballs/pkg/render"
)

// TableScene is the engo scene showing the table
type TableScene struct {
	renderer   *EngoRenderer
	controller render.Controller
	initial    engine.Frame
	onExit     func()

	assets *AssetManager
	table  *TableSystem
	input  *GestureSystem
	hud    *HUDSystem
}

// NewTableScene creates a scene drawing the frames presented to renderer
// and posting mouse gestures to controller. initial is shown until the
// first frame arrives. onExit, if set, runs when the window closes.
func NewTableScene(renderer *EngoRenderer, controller render.Controller, initial engine.Frame, onExit func()) *TableScene {
	return &TableScene{
		renderer:   renderer,
		controller: controller,
		initial:    initial,
		onExit:     onExit,
	}
}

// Type returns the scene type (required by Engo)
func (scene *TableScene) Type() string {
	return "TableScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *TableScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *TableScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)

	common.SetBackground(WallColor)
	SetupInputBindings()

	world.AddSystem(&common.RenderSystem{})

	scene.assets = NewAssetManager()
	scene.table = NewTableSystem(scene.renderer, scene.assets, scene.initial)
	world.AddSystem(scene.table)

	scene.input = NewGestureSystem(scene.controller)
	world.AddSystem(scene.input)

	scene.hud = NewHUDSystem(scene.renderer)
	world.AddSystem(scene.hud)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *TableScene) Exit() {
	if scene.onExit != nil {
		scene.onExit()
	}
}

// Run opens a window sized to the table and blocks until it is closed.
// engo must run on the main goroutine.
func Run(title string, scene *TableScene) {
	engo.Run(engo.RunOptions{
		Title:  title,
		Width:  int(scene.initial.Table.OuterWidth()),
		Height: int(scene.initial.Table.OuterHeight()),
	}, scene)
}
