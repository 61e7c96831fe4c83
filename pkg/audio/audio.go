// Package audio plays short clicks for table events: a low tone when a ball
// bounces off a wall and a higher one when the balls collide. Sound is
// optional; hosts keep running when no audio device is available.
package audio

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-twoballs/pkg/event"
	"github.com/opd-ai/go-twoballs/pkg/logging"
)

// SampleRate is the output sample rate
const SampleRate = beep.SampleRate(44100)

// Tone frequencies and length
const (
	WallFrequency      = 440.0
	CollisionFrequency = 880.0
	ClickDuration      = 50 * time.Millisecond
	maxClickDuration   = 120 * time.Millisecond
)

// Tone is a sine click
type Tone struct {
	Frequency float64
	Duration  time.Duration
}

// Player plays tones
type Player interface {
	Play(tone Tone)
}

// Streamer returns a stream of exactly tone.Duration of sine wave
func Streamer(sr beep.SampleRate, tone Tone) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, tone.Frequency)
	if err != nil {
		return nil, fmt.Errorf("failed to create %v Hz tone: %w", tone.Frequency, err)
	}
	return beep.Take(sr.N(tone.Duration), sine), nil
}

// Speaker plays tones on the default audio device
type Speaker struct {
	sr     beep.SampleRate
	mu     sync.Mutex
	closed bool
}

// NewSpeaker initializes the audio device
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	return &Speaker{sr: SampleRate}, nil
}

// Play queues tone without blocking
func (s *Speaker) Play(tone Tone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	stream, err := Streamer(s.sr, tone)
	if err != nil {
		return
	}
	speaker.Play(stream)
}

// Close releases the audio device
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Close()
}

// ToneFor maps an event to the click it should make. Faster impacts make
// longer clicks.
func ToneFor(e event.Event) (Tone, bool) {
	switch ev := e.(type) {
	case *event.WallEvent:
		return Tone{Frequency: WallFrequency, Duration: clickLength(ev.Speed)}, true
	case *event.CollisionEvent:
		return Tone{Frequency: CollisionFrequency, Duration: clickLength(ev.Speed)}, true
	}
	return Tone{}, false
}

func clickLength(speed float64) time.Duration {
	d := ClickDuration + time.Duration(math.Min(speed, 10)*float64(7*time.Millisecond))
	if d > maxClickDuration {
		d = maxClickDuration
	}
	return d
}

// Clicker plays a tone for every wall bounce and ball collision on a bus
type Clicker struct {
	player Player
	subs   []*event.Subscription
	played int
}

// Attach subscribes a clicker playing through player to bus
func Attach(bus *event.Bus, player Player) *Clicker {
	c := &Clicker{player: player}
	for _, typ := range []event.Type{event.WallBounce, event.BallCollision} {
		c.subs = append(c.subs, bus.Subscribe(typ, c.handle))
	}
	return c
}

func (c *Clicker) handle(e event.Event) {
	if tone, ok := ToneFor(e); ok {
		c.played++
		c.player.Play(tone)
	}
}

// Played returns the number of tones sent to the player
func (c *Clicker) Played() int {
	return c.played
}

// Detach removes the clicker from its bus
func (c *Clicker) Detach() {
	for _, sub := range c.subs {
		sub.Cancel()
	}
	c.subs = nil
}

// Enable opens the speaker and attaches a clicker to bus. Audio failures
// are logged and leave the simulation silent. The returned function
// releases everything Enable set up.
func Enable(ctx context.Context, bus *event.Bus, logger *logging.Logger) func() {
	spk, err := NewSpeaker()
	if err != nil {
		logger.Warn(ctx, "audio unavailable, running silent", "error", err.Error())
		return func() {}
	}
	clicker := Attach(bus, spk)
	logger.Info(ctx, "audio enabled", "sample_rate", int(SampleRate))
	return func() {
		clicker.Detach()
		spk.Close()
	}
}
