// pkg/engine/arena.go
package engine

import (
	"context"
	"fmt"

	"github.com/opd-ai/go-twoballs/pkg/config"
	"github.com/opd-ai/go-twoballs/pkg/entity"
	"github.com/opd-ai/go-twoballs/pkg/event"
	"github.com/opd-ai/go-twoballs/pkg/logging"
	"github.com/opd-ai/go-twoballs/pkg/physics"
)

// Arena owns the two balls on the table and the tick driver. It routes
// gestures to the balls, orders the per-tick update and stops the driver
// once both balls are at rest.
//
// An Arena is not safe for concurrent use. All calls must come from one
// goroutine; Loop provides that for hosts with their own threads.
type Arena struct {
	config   *config.Config
	walls    physics.Walls
	balls    [2]*entity.Ball
	driver   Driver
	renderer Renderer
	bus      *event.Bus
	logger   *logging.Logger
	ctx      context.Context

	tick     uint64
	runTicks int
}

// Option configures an Arena
type Option func(*Arena)

// WithDriver sets the tick driver. The default is a ManualDriver.
func WithDriver(d Driver) Option {
	return func(a *Arena) { a.driver = d }
}

// WithRenderer sets the renderer called after each tick and aim change
func WithRenderer(r Renderer) Option {
	return func(a *Arena) { a.renderer = r }
}

// WithEventBus sets the bus the arena publishes to
func WithEventBus(bus *event.Bus) Option {
	return func(a *Arena) { a.bus = bus }
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(a *Arena) { a.logger = l }
}

// WithContext sets the context used for logging, typically one carrying
// a run ID.
func WithContext(ctx context.Context) Option {
	return func(a *Arena) { a.ctx = ctx }
}

// NewArena creates an arena with both balls resting at their configured
// initial positions.
func NewArena(cfg *config.Config, opts ...Option) (*Arena, error) {
	if cfg == nil {
		return nil, fmt.Errorf("failed to create arena: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create arena: %w", err)
	}

	a := &Arena{
		config: cfg,
		walls:  cfg.Table.Walls(),
		ctx:    context.Background(),
	}
	for i := range a.balls {
		a.balls[i] = entity.NewBall(
			entity.ID(i),
			cfg.Ball.InitialPositions[i],
			cfg.Ball.Radius,
			cfg.Ball.Friction,
			cfg.Simulation.TickRate,
		)
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.driver == nil {
		a.driver = NewManualDriver()
	}
	if a.bus == nil {
		a.bus = event.NewEventBus()
	}
	if a.logger == nil {
		a.logger = logging.NewLogger()
	}

	return a, nil
}

// Ball returns ball 0 or 1
func (a *Arena) Ball(i int) *entity.Ball {
	return a.balls[i]
}

// Config returns the arena configuration
func (a *Arena) Config() *config.Config {
	return a.config
}

// EventBus returns the bus the arena publishes to
func (a *Arena) EventBus() *event.Bus {
	return a.bus
}

// Tick returns the number of ticks processed so far
func (a *Arena) Tick() uint64 {
	return a.tick
}

// Running reports whether the tick driver is running
func (a *Arena) Running() bool {
	return a.driver.Running()
}

// AtRest reports whether neither ball is moving
func (a *Arena) AtRest() bool {
	return !a.balls[0].IsMoving() && !a.balls[1].IsMoving()
}

// Frame returns the current render state
func (a *Arena) Frame() Frame {
	return Frame{
		Table: TableView{
			Tick:          a.tick,
			Running:       a.driver.Running(),
			Width:         a.config.Table.Width,
			Height:        a.config.Table.Height,
			WallThickness: a.config.Table.WallThickness,
			Walls:         a.walls,
		},
		Balls: [2]BallView{viewOf(a.balls[0]), viewOf(a.balls[1])},
	}
}

// OnGestureDown offers point to both balls. Each ball grabs it if point lies
// within its radius, so overlapping balls can both be grabbed.
func (a *Arena) OnGestureDown(point physics.Vector2) {
	changed := false
	for _, b := range a.balls {
		if b.Grab(point) {
			changed = true
			a.bus.Publish(event.NewBallEvent(event.AimChanged, a, b))
		}
	}
	if changed {
		a.render()
	}
}

// OnGestureDrag moves the aim point of any aiming ball
func (a *Arena) OnGestureDrag(point physics.Vector2) {
	changed := false
	for _, b := range a.balls {
		if b.Drag(point) {
			changed = true
			a.bus.Publish(event.NewBallEvent(event.AimChanged, a, b))
		}
	}
	if changed {
		a.render()
	}
}

// OnGestureUp shoots every aiming ball and starts the driver if it is not
// already running.
func (a *Arena) OnGestureUp() {
	changed := false
	for _, b := range a.balls {
		if !b.IsAiming() {
			continue
		}
		changed = true
		shot := b.Shoot()
		a.bus.Publish(event.NewBallEvent(event.AimChanged, a, b))
		if shot {
			a.logger.Debug(a.ctx, "ball shot",
				"ball", b.GetID(),
				"vx", b.Velocity.X,
				"vy", b.Velocity.Y,
			)
			a.bus.Publish(event.NewBallEvent(event.BallShot, a, b))
		}
	}

	if !a.driver.Running() {
		a.driver.Start()
		a.runTicks = 0
		a.logger.Info(a.ctx, "simulation started", "tick", a.tick)
		a.bus.Publish(event.NewSimulationEvent(event.SimulationStarted, a, a.tick))
	}

	if changed {
		a.render()
	}
}

// OnTick advances the simulation by one tick and stops the driver once
// both balls are at rest. The renderer is called after every tick.
func (a *Arena) OnTick() {
	a.tick++
	a.runTicks++

	switch a.config.Simulation.CollisionOrder {
	case config.OrderClassic:
		a.stepClassic()
	default:
		a.stepResolved()
	}

	if a.AtRest() {
		a.stop("simulation at rest")
	} else if limit := a.config.Simulation.MaxTicks; limit > 0 && a.runTicks >= limit {
		a.logger.Warn(a.ctx, "tick limit reached with balls still moving", "limit", limit)
		a.stop("simulation halted")
	}

	a.render()
}

// Settle ticks the arena until the driver stops or maxTicks ticks have run.
// It is meant for clockless drivers such as ManualDriver. It returns the
// number of ticks run and whether the driver stopped.
func (a *Arena) Settle(maxTicks int) (int, bool) {
	n := 0
	for a.driver.Running() {
		if maxTicks > 0 && n >= maxTicks {
			return n, false
		}
		a.OnTick()
		n++
	}
	return n, true
}

// stepResolved bounces both balls off the walls, resolves the pair once,
// then translates both.
func (a *Arena) stepResolved() {
	first, second := a.balls[0], a.balls[1]
	a.wallCollision(first)
	a.wallCollision(second)
	a.resolveCollision(first, second)
	first.Translate()
	second.Translate()
}

// stepClassic steps each ball in turn. The second ball sees the first
// ball's velocity already updated within the same tick.
func (a *Arena) stepClassic() {
	for i, self := range a.balls {
		other := a.balls[1-i]
		a.wallCollision(self)
		a.collide(self, other)
		self.Translate()
	}
}

func (a *Arena) wallCollision(b *entity.Ball) {
	hitX, hitY := b.WallCollision(a.walls)
	if (hitX || hitY) && b.IsMoving() {
		a.bus.Publish(event.NewWallEvent(a, b.GetID(), a.tick, hitX, hitY, b.Velocity.Magnitude()))
	}
}

// resolveCollision applies at most one exchange for the pair, whichever
// ball is the one approaching.
func (a *Arena) resolveCollision(first, second *entity.Ball) {
	if !a.collide(first, second) {
		a.collide(second, first)
	}
}

func (a *Arena) collide(self, other *entity.Ball) bool {
	closing := self.Velocity.Sub(other.Velocity).Magnitude()
	if !entity.Collide(self, other) {
		return false
	}
	a.bus.Publish(event.NewCollisionEvent(a, self.GetID(), other.GetID(), a.tick, closing))
	return true
}

func (a *Arena) stop(reason string) {
	if !a.driver.Running() {
		return
	}
	a.driver.Stop()
	a.logger.Info(a.ctx, reason, "tick", a.tick, "ticks_run", a.runTicks)
	a.bus.Publish(event.NewSimulationEvent(event.SimulationStopped, a, a.tick))
}

// Redraw renders the current frame, e.g. after the host window resized
func (a *Arena) Redraw() {
	a.render()
}

func (a *Arena) render() {
	if a.renderer == nil {
		return
	}
	RenderFrame(a.renderer, a.Frame())
}
