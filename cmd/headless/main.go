// cmd/headless/main.go
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/opd-ai/go-glide/pkg/config"
	"github.com/opd-ai/go-glide/pkg/engine"
	"github.com/opd-ai/go-glide/pkg/event"
	"github.com/opd-ai/go-glide/pkg/input"
	"github.com/opd-ai/go-glide/pkg/logging"
	"github.com/opd-ai/go-glide/pkg/render"
)

// clickList collects repeated -click flags.
type clickList []input.Click

func (c *clickList) String() string {
	parts := make([]string, 0, len(*c))
	for _, click := range *c {
		parts = append(parts, click.String())
	}
	return strings.Join(parts, " ")
}

func (c *clickList) Set(s string) error {
	click, err := input.ParseClick(s)
	if err != nil {
		return err
	}
	*c = append(*c, click)
	return nil
}

// runOptions describes one scripted run.
type runOptions struct {
	Frames int
	DT     float64
	Every  int
	Clicks []input.Click
}

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	var clicks clickList
	configPath := flag.String("config", os.Getenv(config.EnvConfigPath), "Path to a .json or .yaml configuration file")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	frames := flag.Int("frames", 300, "Number of frames to simulate")
	dt := flag.Float64("dt", 1.0/60, "Seconds per frame")
	every := flag.Int("every", 30, "Log the state every N frames (0 logs only the final state)")
	flag.Var(&clicks, "click", "Scripted click as frame:x,y in viewport pixels (repeatable)")
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

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	state, err := run(cfg, runOptions{
		Frames: *frames,
		DT:     *dt,
		Every:  *every,
		Clicks: clicks,
	}, logger)
	if err != nil {
		logger.Error(ctx, "Headless run failed", err)
		os.Exit(1)
	}

	logState(ctx, logger, "Final state", state)
}

// run steps a simulation driven by scripted clicks and returns its final
// state.
func run(cfg *config.Config, opts runOptions, logger *logging.Logger) (engine.State, error) {
	ctx := context.Background()
	if logger == nil {
		logger = logging.Discard()
	}
	pointer := input.NewScriptedPointer(opts.Clicks...)
	bus := event.NewEventBus()

	sim, err := engine.NewSimulation(cfg, engine.Options{
		Input:    pointer,
		EventBus: bus,
		Logger:   logger,
	})
	if err != nil {
		return engine.State{}, logging.WrapError(err, "failed to create simulation")
	}

	bus.Subscribe(event.ShipArrived, func(e event.Event) {
		if s, ok := e.(*event.ShipEvent); ok {
			logger.Info(ctx, "Ship arrived",
				"frame", pointer.Frame(),
				"x", s.Position.X(), "z", s.Position.Z())
		}
	})

	renderer := render.NewNullRenderer(logger)
	sim.Start()
	defer sim.Stop()

	for frame := 0; frame < opts.Frames; frame++ {
		sim.Step(opts.DT)
		sim.Render(renderer)
		if opts.Every > 0 && (frame+1)%opts.Every == 0 {
			logState(ctx, logger, "State", sim.GetState())
		}
		pointer.Advance()
	}

	return sim.GetState(), nil
}

func logState(ctx context.Context, logger *logging.Logger, msg string, state engine.State) {
	logger.Info(ctx, msg,
		"tick", state.Tick,
		"elapsed", state.ElapsedTime,
		"ship_x", state.Ship.Position.X(),
		"ship_z", state.Ship.Position.Z(),
		"heading", state.Ship.Heading,
		"tilt", state.Ship.Tilt,
		"marker_x", state.Marker.X(),
		"marker_z", state.Marker.Z(),
		"label", state.Label.String(),
	)
}
