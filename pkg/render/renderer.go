// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-twoballs/pkg/engine"
	"github.com/opd-ai/go-twoballs/pkg/logging"
)

// NullRenderer is an engine.Renderer that only logs what it is asked to
// draw. It backs the headless host.
type NullRenderer struct {
	logger *logging.Logger
	frames int
}

// NewNullRenderer creates a new NullRenderer. A nil logger logs to stderr.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullRenderer{
		logger: logger,
	}
}

// Clear implements engine.Renderer.
func (d *NullRenderer) Clear() {}

// RenderTable implements engine.Renderer.
func (d *NullRenderer) RenderTable(table engine.TableView) {
	d.logger.Debug(context.Background(), "RenderTable called",
		"width", table.Width,
		"height", table.Height,
		"wall_thickness", table.WallThickness,
	)
}

// RenderBall implements engine.Renderer.
func (d *NullRenderer) RenderBall(ball engine.BallView) {
	args := []any{
		"ball", ball.ID,
		"x", ball.Position.X,
		"y", ball.Position.Y,
		"moving", ball.Moving,
	}
	if ball.Aiming {
		args = append(args,
			"aim_from_x", ball.AimFrom.X,
			"aim_from_y", ball.AimFrom.Y,
			"aim_to_x", ball.AimTo.X,
			"aim_to_y", ball.AimTo.Y,
		)
	}
	d.logger.Debug(context.Background(), "RenderBall called", args...)
}

// Present implements engine.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
}

// Frames returns the number of frames presented
func (d *NullRenderer) Frames() int {
	return d.frames
}
