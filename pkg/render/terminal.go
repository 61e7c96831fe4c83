// pkg/render/terminal.go
package render

import (
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-twoballs/pkg/engine"
	"github.com/opd-ai/go-twoballs/pkg/physics"
)

// Cell styles
var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown).Background(tcell.ColorBlack)
	feltStyle   = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	ballStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	guideStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorDarkGreen)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

const (
	wallRune  = '█'
	ballRune  = ' '
	edgeRune  = 'o'
	guideRune = '·'
)

// TerminalRenderer draws the table into a tcell screen. The whole table is
// scaled to fit the screen, leaving the bottom row for a status line.
type TerminalRenderer struct {
	screen tcell.Screen

	mu     sync.RWMutex
	scaleX float64
	scaleY float64
	table  engine.TableView

	aiming bool
	moving bool
}

// NewTerminalRenderer creates a renderer for an initialized screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		scaleX: 1,
		scaleY: 1,
	}
}

// fit recomputes the world-units-per-cell scale for the current screen size
func (r *TerminalRenderer) fit(table engine.TableView) {
	cols, rows := r.screen.Size()
	rows-- // status line
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	r.mu.Lock()
	r.table = table
	r.scaleX = table.OuterWidth() / float64(cols)
	r.scaleY = table.OuterHeight() / float64(rows)
	r.mu.Unlock()
}

// ScreenToWorld converts a cell to the table point at its center
func (r *TerminalRenderer) ScreenToWorld(col, row int) physics.Vector2 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return physics.Vec((float64(col)+0.5)*r.scaleX, (float64(row)+0.5)*r.scaleY)
}

// WorldToScreen converts a table point to the cell containing it
func (r *TerminalRenderer) WorldToScreen(p physics.Vector2) (int, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int(math.Floor(p.X / r.scaleX)), int(math.Floor(p.Y / r.scaleY))
}

// Clear implements engine.Renderer
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
	r.aiming = false
	r.moving = false
}

// RenderTable implements engine.Renderer
func (r *TerminalRenderer) RenderTable(table engine.TableView) {
	r.fit(table)
	cols, rows := r.screen.Size()

	for row := 0; row < rows-1; row++ {
		for col := 0; col < cols; col++ {
			p := r.ScreenToWorld(col, row)
			if p.X > table.Walls.Left && p.X < table.Walls.Right && p.Y > table.Walls.Top && p.Y < table.Walls.Bottom {
				r.screen.SetContent(col, row, ' ', nil, feltStyle)
			} else {
				r.screen.SetContent(col, row, wallRune, nil, wallStyle)
			}
		}
	}
}

// RenderBall implements engine.Renderer. The disc is drawn first and the
// guide line on top of it.
func (r *TerminalRenderer) RenderBall(ball engine.BallView) {
	r.aiming = r.aiming || ball.Aiming
	r.moving = r.moving || ball.Moving

	r.mu.RLock()
	edge := math.Max(r.scaleX, r.scaleY)
	r.mu.RUnlock()

	minCol, minRow := r.WorldToScreen(ball.Position.Sub(physics.Vec(ball.Radius, ball.Radius)))
	maxCol, maxRow := r.WorldToScreen(ball.Position.Add(physics.Vec(ball.Radius, ball.Radius)))
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			d := r.ScreenToWorld(col, row).Distance(ball.Position)
			switch {
			case d <= ball.Radius-edge/2:
				r.setCell(col, row, ballRune, ballStyle)
			case d <= ball.Radius:
				r.setCell(col, row, edgeRune, ballStyle)
			}
		}
	}

	// Fall back to a single cell when the disc is smaller than a cell.
	if col, row := r.WorldToScreen(ball.Position); minCol == maxCol && minRow == maxRow {
		r.setCell(col, row, edgeRune, ballStyle)
	}

	if ball.Aiming {
		r.renderLine(ball.AimFrom, ball.AimTo)
	}
}

func (r *TerminalRenderer) renderLine(from, to physics.Vector2) {
	r.mu.RLock()
	step := math.Min(r.scaleX, r.scaleY) / 2
	r.mu.RUnlock()

	length := from.Distance(to)
	n := int(math.Ceil(length/step)) + 1
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		p := from.Add(to.Sub(from).Scale(t))
		col, row := r.WorldToScreen(p)
		r.setCell(col, row, guideRune, guideStyle)
	}
}

func (r *TerminalRenderer) setCell(col, row int, ch rune, style tcell.Style) {
	cols, rows := r.screen.Size()
	if col < 0 || col >= cols || row < 0 || row >= rows-1 {
		return
	}
	r.screen.SetContent(col, row, ch, nil, style)
}

// Status returns the text of the status line for the last rendered frame
func (r *TerminalRenderer) Status() string {
	switch {
	case r.aiming:
		return "aiming: drag and release to shoot"
	case r.moving:
		return "moving"
	default:
		return "at rest: press a ball to aim"
	}
}

// Present implements engine.Renderer
func (r *TerminalRenderer) Present() {
	cols, rows := r.screen.Size()
	status := fmt.Sprintf(" %s  [q quits]", r.Status())
	for col, ch := range []rune(status) {
		if col >= cols {
			break
		}
		r.screen.SetContent(col, rows-1, ch, nil, statusStyle)
	}
	r.screen.Show()
}
