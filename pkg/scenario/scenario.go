// Package scenario replays scripted gestures against a table without a
// clock or a window. A script is a list of pointer steps (down, drag, up)
// and run steps that tick the table until it comes to rest. Replays are
// deterministic, so the final state can be fingerprinted and compared.
package scenario

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-twoballs/pkg/config"
	"github.com/opd-ai/go-twoballs/pkg/engine"
	"github.com/opd-ai/go-twoballs/pkg/event"
	"github.com/opd-ai/go-twoballs/pkg/logging"
	"github.com/opd-ai/go-twoballs/pkg/physics"
)

// Step operations
const (
	OpDown = "down"
	OpDrag = "drag"
	OpUp   = "up"
	OpRun  = "run"
)

// Script describes a replay
type Script struct {
	Name   string        `json:"name" yaml:"name"`
	Config config.Config `json:"config" yaml:"config"`
	Steps  []Step        `json:"steps" yaml:"steps"`
}

// Step is one scripted action. X and Y are used by down and drag. Ticks
// bounds a run step; zero runs until rest, capped by the configured
// maximum.
type Step struct {
	Op    string  `json:"op" yaml:"op"`
	X     float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y     float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Ticks int     `json:"ticks,omitempty" yaml:"ticks,omitempty"`
}

// Point returns the step's coordinates
func (s Step) Point() physics.Vector2 {
	return physics.Vec(s.X, s.Y)
}

// BallState is the final state of one ball
type BallState struct {
	Position physics.Vector2 `json:"position" yaml:"position"`
	Velocity physics.Vector2 `json:"velocity" yaml:"velocity"`
	Moving   bool            `json:"moving" yaml:"moving"`
}

// Result summarizes a replay
type Result struct {
	Name   string             `json:"name" yaml:"name"`
	Ticks  uint64             `json:"ticks" yaml:"ticks"`
	AtRest bool               `json:"atRest" yaml:"atRest"`
	Balls  [2]BallState       `json:"balls" yaml:"balls"`
	Events map[event.Type]int `json:"events" yaml:"events"`
}

// New returns an empty script using the default configuration
func New(name string) *Script {
	return &Script{
		Name:   name,
		Config: *config.DefaultConfig(),
	}
}

// Down appends a pointer press
func (s *Script) Down(x, y float64) *Script {
	s.Steps = append(s.Steps, Step{Op: OpDown, X: x, Y: y})
	return s
}

// Drag appends a pointer move
func (s *Script) Drag(x, y float64) *Script {
	s.Steps = append(s.Steps, Step{Op: OpDrag, X: x, Y: y})
	return s
}

// Up appends a pointer release
func (s *Script) Up() *Script {
	s.Steps = append(s.Steps, Step{Op: OpUp})
	return s
}

// Run appends a run step. Zero ticks runs until rest.
func (s *Script) Run(ticks int) *Script {
	s.Steps = append(s.Steps, Step{Op: OpRun, Ticks: ticks})
	return s
}

// Shot appends the gestures for one shot: grab at (x, y), drag to
// (x-dx, y-dy), release and run until rest. The ball travels along (dx, dy).
func (s *Script) Shot(x, y, dx, dy float64) *Script {
	return s.Down(x, y).Drag(x-dx, y-dy).Up().Run(0)
}

// Validate checks the script's configuration and steps
func (s *Script) Validate() error {
	if err := s.Config.Validate(); err != nil {
		return fmt.Errorf("invalid scenario config: %w", err)
	}
	for i, step := range s.Steps {
		switch step.Op {
		case OpDown, OpDrag, OpUp:
		case OpRun:
			if step.Ticks < 0 {
				return fmt.Errorf("step %d: negative tick count %d", i, step.Ticks)
			}
		default:
			return fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
	}
	return nil
}

// Load reads a script from a file. Files ending in .yaml or .yml are parsed
// as YAML, everything else as JSON.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var script *Script
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		script, err = LoadYAML(bytes.NewReader(data))
	default:
		script, err = LoadJSON(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	return script, nil
}

// LoadYAML decodes a script from YAML. Configuration fields left out keep
// their default values.
func LoadYAML(r io.Reader) (*Script, error) {
	s := New("")
	if err := yaml.NewDecoder(r).Decode(s); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadJSON decodes a script from JSON. Configuration fields left out keep
// their default values.
func LoadJSON(r io.Reader) (*Script, error) {
	s := New("")
	if err := json.NewDecoder(r).Decode(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Replay runs script on a fresh arena driven by a ManualDriver. Extra
// options are passed to the arena, after the replay's own.
func Replay(script *Script, logger *logging.Logger, opts ...engine.Option) (*Result, error) {
	if script == nil {
		return nil, fmt.Errorf("failed to replay: nil script")
	}
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("failed to replay %q: %w", script.Name, err)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	cfg := script.Config
	bus := event.NewEventBus()
	counts := make(map[event.Type]int)
	for _, typ := range []event.Type{
		event.AimChanged, event.BallShot, event.WallBounce,
		event.BallCollision, event.SimulationStarted, event.SimulationStopped,
	} {
		typ := typ
		bus.Subscribe(typ, func(event.Event) { counts[typ]++ })
	}

	base := []engine.Option{
		engine.WithDriver(engine.NewManualDriver()),
		engine.WithEventBus(bus),
		engine.WithLogger(logger),
	}
	arena, err := engine.NewArena(&cfg, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to replay %q: %w", script.Name, err)
	}

	for _, step := range script.Steps {
		switch step.Op {
		case OpDown:
			arena.OnGestureDown(step.Point())
		case OpDrag:
			arena.OnGestureDrag(step.Point())
		case OpUp:
			arena.OnGestureUp()
		case OpRun:
			limit := step.Ticks
			if limit == 0 {
				limit = cfg.Simulation.MaxTicks
			}
			arena.Settle(limit)
		}
	}

	result := &Result{
		Name:   script.Name,
		Ticks:  arena.Tick(),
		AtRest: arena.AtRest(),
		Events: counts,
	}
	for i := range result.Balls {
		b := arena.Ball(i)
		result.Balls[i] = BallState{
			Position: b.Position,
			Velocity: b.Velocity,
			Moving:   b.IsMoving(),
		}
	}
	return result, nil
}

// Fingerprint hashes the tick count and the exact bits of every final
// position and velocity. Two replays with equal fingerprints ended in the
// same state.
func (r *Result) Fingerprint() uint64 {
	buf := make([]byte, 0, 8*9)
	buf = binary.LittleEndian.AppendUint64(buf, r.Ticks)
	for _, b := range r.Balls {
		for _, f := range []float64{b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y} {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
		}
	}
	return xxhash.Sum64(buf)
}

// String formats the fingerprint as hex
func (r *Result) String() string {
	return fmt.Sprintf("%s: %d ticks, fingerprint %016x", r.Name, r.Ticks, r.Fingerprint())
}
