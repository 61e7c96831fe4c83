// pkg/render/engo/renderer.go
package engo

import (
	"sync"

	"github.com/opd-ai/go-twoballs/pkg/engine"
)

// EngoRenderer implements engine.Renderer for the engo window. The arena
// renders on the loop goroutine while engo draws on the main thread, so
// frames are assembled here and handed over under a lock; the table system
// picks up the latest one on each engo update.
type EngoRenderer struct {
	pending engine.Frame
	nballs  int

	mu      sync.Mutex
	latest  engine.Frame
	fresh   bool
	counter uint64
}

// NewEngoRenderer creates a new Engo-based renderer
func NewEngoRenderer() *EngoRenderer {
	return &EngoRenderer{}
}

// Clear implements engine.Renderer
func (r *EngoRenderer) Clear() {
	r.pending = engine.Frame{}
	r.nballs = 0
}

// RenderTable implements engine.Renderer
func (r *EngoRenderer) RenderTable(table engine.TableView) {
	r.pending.Table = table
}

// RenderBall implements engine.Renderer
func (r *EngoRenderer) RenderBall(ball engine.BallView) {
	if r.nballs >= len(r.pending.Balls) {
		return
	}
	r.pending.Balls[r.nballs] = ball
	r.nballs++
}

// Present implements engine.Renderer
func (r *EngoRenderer) Present() {
	r.mu.Lock()
	r.latest = r.pending
	r.fresh = true
	r.counter++
	r.mu.Unlock()
}

// Latest returns the most recently presented frame and whether it is new
// since the previous call.
func (r *EngoRenderer) Latest() (engine.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fresh := r.fresh
	r.fresh = false
	return r.latest, fresh
}

// Peek returns the most recently presented frame without marking it seen
func (r *EngoRenderer) Peek() engine.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}

// Presented returns the number of frames presented so far
func (r *EngoRenderer) Presented() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counter
}
