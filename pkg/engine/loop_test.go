// pkg/engine/loop_test.go
package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-twoballs/pkg/config"
	"github.com/opd-ai/go-twoballs/pkg/logging"
	"github.com/opd-ai/go-twoballs/pkg/physics"
)

func startLoop(t *testing.T, tickRate int) (*Loop, *Arena, context.CancelFunc, <-chan error) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Simulation.TickRate = tickRate

	loop := NewLoop(tickRate)
	arena, err := NewArena(cfg, WithDriver(loop), WithLogger(logging.Discard()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx, arena) }()
	t.Cleanup(cancel)
	return loop, arena, cancel, errc
}

func TestNewLoop_Interval(t *testing.T) {
	assert.Equal(t, 10*time.Millisecond, NewLoop(100).Interval())
	assert.Equal(t, time.Millisecond, NewLoop(1000).Interval())
	assert.Equal(t, time.Second, NewLoop(0).Interval())
}

func TestLoop_StartStopAreIdempotent(t *testing.T) {
	loop := NewLoop(100)
	assert.False(t, loop.Running())

	loop.Start()
	ticker := loop.ticker
	loop.Start()
	assert.Same(t, ticker, loop.ticker)
	assert.True(t, loop.Running())

	loop.Stop()
	loop.Stop()
	assert.False(t, loop.Running())
	assert.Nil(t, loop.tickC())
}

func TestLoop_RunRejectsForeignArena(t *testing.T) {
	arena, err := NewArena(config.DefaultConfig(), WithLogger(logging.Discard()))
	require.NoError(t, err)

	err = NewLoop(100).Run(context.Background(), arena)
	assert.Error(t, err)

	err = NewLoop(100).Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestLoop_ShotComesToRest(t *testing.T) {
	loop, _, cancel, errc := startLoop(t, 1000)

	loop.GestureDown(physics.Vec(100, 100))
	loop.GestureDrag(physics.Vec(90, 100))
	loop.GestureUp()

	frame, ok := loop.Frame(context.Background())
	require.True(t, ok)
	assert.True(t, frame.Table.Running, "release should start the ticker")
	assert.Greater(t, frame.Balls[0].Velocity.X, 0.0)

	require.Eventually(t, func() bool {
		f, ok := loop.Frame(context.Background())
		return ok && !f.Table.Running && f.Table.Tick > 0
	}, 10*time.Second, 10*time.Millisecond)

	final, ok := loop.Frame(context.Background())
	require.True(t, ok)
	assert.True(t, final.AtRest())
	assert.Greater(t, final.Balls[0].Position.X, 100.0)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestLoop_GesturesFromManyGoroutines(t *testing.T) {
	loop, _, _, _ := startLoop(t, 100)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := physics.Vec(200, 200+float64(i))
			loop.GestureDown(p)
			loop.GestureDrag(p.Add(physics.Vec(0, 5)))
			loop.GestureUp()
		}(i)
	}
	wg.Wait()

	_, ok := loop.Frame(context.Background())
	assert.True(t, ok)
}

func TestLoop_DoAfterExit(t *testing.T) {
	loop, _, cancel, errc := startLoop(t, 100)
	cancel()
	require.NoError(t, <-errc)

	<-loop.Done()
	assert.False(t, loop.Do(func(*Arena) {}))

	_, ok := loop.Frame(context.Background())
	assert.False(t, ok)
	assert.False(t, loop.Running(), "ticker should be stopped on exit")
}
