// pkg/engine/loop.go
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/opd-ai/go-twoballs/pkg/physics"
)

const commandQueueSize = 64

// Loop is the wall-clock Driver. Run owns the Arena on a single goroutine
// and serializes ticks with gestures posted from other goroutines. The
// ticker only exists while the driver is running.
type Loop struct {
	interval time.Duration
	commands chan func(*Arena)
	done     chan struct{}
	ticker   *time.Ticker
}

// NewLoop creates a stopped loop ticking tickRate times per second
func NewLoop(tickRate int) *Loop {
	if tickRate <= 0 {
		tickRate = 1
	}
	return &Loop{
		interval: time.Second / time.Duration(tickRate),
		commands: make(chan func(*Arena), commandQueueSize),
		done:     make(chan struct{}),
	}
}

// Interval returns the time between ticks
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Start starts the ticker. Only called from the Run goroutine.
func (l *Loop) Start() {
	if l.ticker != nil {
		return
	}
	l.ticker = time.NewTicker(l.interval)
}

// Stop stops the ticker. Only called from the Run goroutine.
func (l *Loop) Stop() {
	if l.ticker == nil {
		return
	}
	l.ticker.Stop()
	l.ticker = nil
}

// Running reports whether the ticker is active. Only called from the Run
// goroutine.
func (l *Loop) Running() bool {
	return l.ticker != nil
}

func (l *Loop) tickC() <-chan time.Time {
	if l.ticker == nil {
		return nil
	}
	return l.ticker.C
}

// Run drives arena until ctx is cancelled. arena must have been created
// with WithDriver(l). Run may only be called once.
func (l *Loop) Run(ctx context.Context, arena *Arena) error {
	if arena == nil {
		return fmt.Errorf("failed to run loop: nil arena")
	}
	if arena.driver != l {
		return fmt.Errorf("failed to run loop: arena is driven by %T", arena.driver)
	}
	defer close(l.done)
	defer l.Stop()

	arena.render()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-l.commands:
			cmd(arena)
		case <-l.tickC():
			arena.OnTick()
		}
	}
}

// Do runs fn on the loop goroutine. It returns false if the loop has
// already exited.
func (l *Loop) Do(fn func(*Arena)) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.commands <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Frame returns a snapshot taken on the loop goroutine, or false if the
// loop has exited or ctx is cancelled first.
func (l *Loop) Frame(ctx context.Context) (Frame, bool) {
	reply := make(chan Frame, 1)
	if !l.Do(func(a *Arena) { reply <- a.Frame() }) {
		return Frame{}, false
	}
	select {
	case f := <-reply:
		return f, true
	case <-l.done:
		return Frame{}, false
	case <-ctx.Done():
		return Frame{}, false
	}
}

// GestureDown posts a pointer press
func (l *Loop) GestureDown(point physics.Vector2) {
	l.Do(func(a *Arena) { a.OnGestureDown(point) })
}

// GestureDrag posts a pointer move with the button held
func (l *Loop) GestureDrag(point physics.Vector2) {
	l.Do(func(a *Arena) { a.OnGestureDrag(point) })
}

// GestureUp posts a pointer release
func (l *Loop) GestureUp() {
	l.Do(func(a *Arena) { a.OnGestureUp() })
}

// Redraw posts a request to render the current frame
func (l *Loop) Redraw() {
	l.Do(func(a *Arena) { a.Redraw() })
}

// Done is closed when Run returns
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
