// cmd/client/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-glide/pkg/audio"
	"github.com/opd-ai/go-glide/pkg/config"
	"github.com/opd-ai/go-glide/pkg/engine"
	"github.com/opd-ai/go-glide/pkg/event"
	"github.com/opd-ai/go-glide/pkg/input"
	"github.com/opd-ai/go-glide/pkg/logging"
	"github.com/opd-ai/go-glide/pkg/render"
	engorender "github.com/opd-ai/go-glide/pkg/render/engo"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	envConfig, err := config.LoadConfigFromEnv()
	if err != nil {
		logger.Error(ctx, "Failed to read environment configuration", err)
		os.Exit(1)
	}

	configPath := flag.String("config", envConfig.ConfigPath, "Path to a .json or .yaml configuration file")
	renderer := flag.String("renderer", envConfig.Renderer, "Renderer type: 'engo', 'terminal' or 'null'")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (engo only)")
	sound := flag.Bool("sound", envConfig.Sound, "Play a chime when the ship arrives")
	scale := flag.Float64("scale", render.DefaultTerminalScale, "World units per terminal row (terminal only)")
	logFile := flag.String("log-file", envConfig.LogFile, "Write logs to this file in terminal mode (default: discard)")
	flag.Parse()

	if *renderer == config.RendererTerminal {
		termLogger, closeLog, err := terminalLogger(*logFile)
		if err != nil {
			logger.Error(ctx, "Failed to open log file", err, "log_file", *logFile)
			os.Exit(1)
		}
		defer closeLog()
		logger = termLogger
	}

	cfg, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}

	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *fullscreen {
		cfg.Window.Fullscreen = true
	}
	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		os.Exit(1)
	}

	eventBus := event.NewEventBus()
	logArrivals(ctx, logger, eventBus)

	if *sound {
		chime := audio.NewChime(logger)
		if err := chime.Initialize(); err != nil {
			logger.Warn(ctx, "Audio unavailable, arrival chime disabled", "error", err)
		} else {
			chime.Attach(eventBus)
			defer chime.Close()
		}
	}

	logger.Info(ctx, "Starting client",
		"renderer", *renderer,
		"width", cfg.Window.Width,
		"height", cfg.Window.Height,
		"banking", string(cfg.Banking.Mode),
	)

	switch *renderer {
	case config.RendererEngo:
		err = runEngo(cfg, eventBus, logger)
	case config.RendererTerminal:
		err = runTerminal(cfg, eventBus, logger, *scale)
	case config.RendererNull:
		err = runNull(cfg, eventBus, logger)
	default:
		err = fmt.Errorf("unknown renderer %q", *renderer)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "Client stopped with an error", err, "renderer", *renderer)
		os.Exit(1)
	}
	logger.Info(ctx, "Client stopped")
}

// terminalLogger keeps logs off the screen tcell draws on: they go to path,
// or nowhere when path is empty.
func terminalLogger(path string) (*logging.Logger, func() error, error) {
	if path == "" {
		return logging.Discard(), func() error { return nil }, nil
	}
	return logging.NewFileLogger(path)
}

// loadConfig reads path, falling back to defaults when no file is given
// or it does not exist, then applies environment overrides.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.Config, error) {
	var cfg *config.Config

	if path == "" {
		cfg = config.DefaultConfig()
	} else if _, err := os.Stat(path); os.IsNotExist(err) {
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
		return nil, logging.WrapError(err, "failed to apply environment configuration")
	}
	return cfg, nil
}

func logArrivals(ctx context.Context, logger *logging.Logger, bus *event.Bus) {
	bus.Subscribe(event.MarkerPlaced, func(e event.Event) {
		if m, ok := e.(*event.MarkerEvent); ok {
			logger.Debug(ctx, "Marker placed",
				"x", m.Position.X(), "z", m.Position.Z())
		}
	})
	bus.Subscribe(event.ShipArrived, func(e event.Event) {
		if s, ok := e.(*event.ShipEvent); ok {
			logger.Info(ctx, "Ship arrived",
				"ship_id", s.ShipID,
				"x", s.Position.X(), "z", s.Position.Z())
		}
	})
}

// runEngo opens the window and blocks until it closes.
func runEngo(cfg *config.Config, bus *event.Bus, logger *logging.Logger) error {
	pointer := &input.State{}
	sim, err := engine.NewSimulation(cfg, engine.Options{
		Input:    pointer,
		FPS:      engorender.ClockFPS(),
		EventBus: bus,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	engorender.Run(engorender.NewGlideScene(sim, pointer, logger))
	return nil
}

// runTerminal draws the scene with tcell until the user quits or a
// signal arrives.
func runTerminal(cfg *config.Config, bus *event.Bus, logger *logging.Logger, scale float64) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	defer screen.Fini()

	pointer := &input.State{}
	sim, err := engine.NewSimulation(cfg, engine.Options{
		Input:    pointer,
		EventBus: bus,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	return render.NewTerminalApp(screen, sim, pointer, scale, logger).Run(ctx)
}

// runNull steps the scene without drawing until a signal arrives.
func runNull(cfg *config.Config, bus *event.Bus, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sim, err := engine.NewSimulation(cfg, engine.Options{EventBus: bus, Logger: logger})
	if err != nil {
		return err
	}
	sim.Start()
	defer sim.Stop()

	fps := cfg.Window.FPSLimit
	if fps <= 0 {
		fps = render.DefaultTerminalFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	nullRenderer := render.NewNullRenderer(logger)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			sim.Step(now.Sub(last).Seconds())
			last = now
			sim.Render(nullRenderer)
		}
	}
}
