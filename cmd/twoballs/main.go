// cmd/twoballs/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/EngoEngine/engo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-twoballs/pkg/audio"
	"github.com/opd-ai/go-twoballs/pkg/config"
	"github.com/opd-ai/go-twoballs/pkg/engine"
	"github.com/opd-ai/go-twoballs/pkg/event"
	"github.com/opd-ai/go-twoballs/pkg/logging"
	"github.com/opd-ai/go-twoballs/pkg/render"
	engorender "github.com/opd-ai/go-twoballs/pkg/render/engo"
	"github.com/opd-ai/go-twoballs/pkg/scenario"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithRunID(context.Background(), logging.NewRunID())

	configPath := flag.String("config", "twoballs.yaml", "Path to configuration file (JSON or YAML)")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	renderer := flag.String("renderer", "", "Renderer: 'engo', 'terminal' or 'null' (overrides config)")
	sound := flag.Bool("sound", false, "Play clicks on bounces and collisions (overrides config)")
	scenarioPath := flag.String("scenario", "", "Replay a gesture script headlessly and print the result")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	if *scenarioPath != "" {
		if err := replay(ctx, *scenarioPath, logger); err != nil {
			logger.Error(ctx, "Scenario replay failed", err, "scenario", *scenarioPath)
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig(ctx, *configPath, logger)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "renderer":
			cfg.Display.Renderer = *renderer
		case "sound":
			cfg.Display.Sound = *sound
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "Simulation failed", err, "renderer", cfg.Display.Renderer)
		stop()
		os.Exit(1)
	}
	logger.Info(ctx, "Shutting down")
}

// loadConfig reads path, falling back to the defaults when it does not
// exist, and applies environment overrides.
func loadConfig(ctx context.Context, path string, logger *logging.Logger) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// table bundles what every host needs: the arena, the loop that owns it
// and the bus it publishes to.
type table struct {
	arena *engine.Arena
	loop  *engine.Loop
	bus   *event.Bus
}

func newTable(ctx context.Context, cfg *config.Config, r engine.Renderer, logger *logging.Logger) (*table, error) {
	loop := engine.NewLoop(cfg.Simulation.TickRate)
	bus := event.NewEventBus()
	arena, err := engine.NewArena(cfg,
		engine.WithDriver(loop),
		engine.WithRenderer(r),
		engine.WithEventBus(bus),
		engine.WithLogger(logger),
		engine.WithContext(ctx),
	)
	if err != nil {
		return nil, err
	}
	return &table{arena: arena, loop: loop, bus: bus}, nil
}

func run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	logger.Info(ctx, "Starting simulation",
		"renderer", cfg.Display.Renderer,
		"tick_rate", cfg.Simulation.TickRate,
		"collision_order", cfg.Simulation.CollisionOrder,
	)

	switch cfg.Display.Renderer {
	case config.RendererTerminal:
		return runTerminal(ctx, cfg, logger)
	case config.RendererNull:
		return runHeadless(ctx, cfg, logger)
	default:
		return runEngo(ctx, cfg, logger)
	}
}

// runEngo opens a window on the calling goroutine, which must be the main
// one, and steps the table on a second goroutine.
func runEngo(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	renderer := engorender.NewEngoRenderer()
	t, err := newTable(ctx, cfg, renderer, logger)
	if err != nil {
		return logging.WrapError(err, "failed to create table")
	}
	if cfg.Display.Sound {
		defer audio.Enable(ctx, t.bus, logger)()
	}

	scene := engorender.NewTableScene(renderer, t.loop, t.arena.Frame(), cancel)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return t.loop.Run(gctx, t.arena)
	})
	g.Go(func() error {
		<-gctx.Done()
		engo.Exit()
		return nil
	})

	engorender.Run(cfg.Display.Title, scene)
	cancel()
	return g.Wait()
}

func runTerminal(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	screen, err := render.NewTerminalScreen()
	if err != nil {
		return logging.WrapError(err, "failed to open terminal")
	}
	defer screen.Fini()

	renderer := render.NewTerminalRenderer(screen)
	t, err := newTable(ctx, cfg, renderer, logger)
	if err != nil {
		return logging.WrapError(err, "failed to create table")
	}
	if cfg.Display.Sound {
		defer audio.Enable(ctx, t.bus, logger)()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	host := render.NewTerminalHost(screen, renderer, t.loop, logger)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return t.loop.Run(gctx, t.arena)
	})
	g.Go(func() error {
		defer cancel()
		return host.Run(gctx)
	})
	return g.Wait()
}

// runHeadless steps the table with frames going to the log until a signal
// arrives. Nothing moves without gestures, so this mostly serves to check
// a configuration and the audio device.
func runHeadless(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	t, err := newTable(ctx, cfg, render.NewNullRenderer(logger), logger)
	if err != nil {
		return logging.WrapError(err, "failed to create table")
	}
	if cfg.Display.Sound {
		defer audio.Enable(ctx, t.bus, logger)()
	}

	logger.Info(ctx, "Running headless, waiting for signal")
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return t.loop.Run(gctx, t.arena)
	})
	return g.Wait()
}

// replay runs a scenario file and prints its result as YAML
func replay(ctx context.Context, path string, logger *logging.Logger) error {
	script, err := scenario.Load(path)
	if err != nil {
		return err
	}

	result, err := scenario.Replay(script, logger,
		engine.WithRenderer(render.NewNullRenderer(logger)),
		engine.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	logger.Info(ctx, "Scenario replayed",
		"scenario", result.Name,
		"ticks", result.Ticks,
		"at_rest", result.AtRest,
	)

	enc := yaml.NewEncoder(os.Stdout)
	if err := enc.Encode(result); err != nil {
		return logging.WrapError(err, "failed to print result")
	}
	if err := enc.Close(); err != nil {
		return logging.WrapError(err, "failed to print result")
	}
	fmt.Printf("fingerprint: %016x\n", result.Fingerprint())
	return nil
}
