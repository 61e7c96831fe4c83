// pkg/render/host.go
package render

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-twoballs/pkg/logging"
	"github.com/opd-ai/go-twoballs/pkg/physics"
)

// Controller receives gestures from a host. engine.Loop implements it.
type Controller interface {
	GestureDown(point physics.Vector2)
	GestureDrag(point physics.Vector2)
	GestureUp()
	Redraw()
}

// NewTerminalScreen creates and initializes a tcell screen with mouse
// reporting enabled.
func NewTerminalScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	return screen, nil
}

// TerminalHost turns tcell mouse and key events into gestures. A left
// button press grabs, moving with the button held drags, and letting go
// releases. Esc, q and Ctrl-C quit.
type TerminalHost struct {
	screen     tcell.Screen
	renderer   *TerminalRenderer
	controller Controller
	logger     *logging.Logger

	pressed bool
}

// NewTerminalHost creates a host for screen. renderer must draw to the same
// screen so that cells map back to table coordinates.
func NewTerminalHost(screen tcell.Screen, renderer *TerminalRenderer, controller Controller, logger *logging.Logger) *TerminalHost {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &TerminalHost{
		screen:     screen,
		renderer:   renderer,
		controller: controller,
		logger:     logger,
	}
}

// Run processes terminal events until the user quits or ctx is cancelled.
// The caller owns the screen and must call Fini afterwards.
func (h *TerminalHost) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	h.logger.Info(ctx, "terminal host started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.handleEvent(ev) {
				h.logger.Info(ctx, "terminal host quit")
				return nil
			}
		}
	}
}

// handleEvent reports false when the host should quit
func (h *TerminalHost) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return false
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		point := h.renderer.ScreenToWorld(col, row)
		if ev.Buttons()&tcell.Button1 != 0 {
			if !h.pressed {
				h.pressed = true
				h.controller.GestureDown(point)
			} else {
				h.controller.GestureDrag(point)
			}
		} else if h.pressed {
			h.pressed = false
			h.controller.GestureUp()
		}

	case *tcell.EventResize:
		h.screen.Sync()
		h.controller.Redraw()
	}

	return true
}
