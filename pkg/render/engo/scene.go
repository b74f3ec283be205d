// pkg/render/engo/scene.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-glide/pkg/diagnostics"
	"github.com/opd-ai/go-glide/pkg/engine"
	"github.com/opd-ai/go-glide/pkg/input"
	"github.com/opd-ai/go-glide/pkg/logging"
)

// SceneType is the engo scene name.
const SceneType = "GlideScene"

// ClockFPS reports engo's measured frame rate as a diagnostics source.
func ClockFPS() diagnostics.Source {
	return diagnostics.Func(func() (float64, bool) {
		if engo.Time == nil {
			return 0, false
		}
		fps := engo.Time.FPS()
		return float64(fps), fps > 0
	})
}

// SimulationSystem steps the simulation once per engo frame and mirrors
// it into sprites.
type SimulationSystem struct {
	sim      *engine.Simulation
	camera   *CameraSystem
	renderer *EngoRenderer
}

// NewSimulationSystem creates the system driving sim
func NewSimulationSystem(sim *engine.Simulation, camera *CameraSystem, renderer *EngoRenderer) *SimulationSystem {
	return &SimulationSystem{sim: sim, camera: camera, renderer: renderer}
}

// Remove satisfies the ecs.System interface
func (ss *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update advances the simulation by dt and redraws it
func (ss *SimulationSystem) Update(dt float32) {
	ss.sim.Step(float64(dt))

	ss.sim.EntityLock.RLock()
	camera, _ := ss.sim.Camera()
	ss.sim.EntityLock.RUnlock()
	ss.camera.SetCamera(camera)

	ss.sim.Render(ss.renderer)
}

// GlideScene is the windowed scene: the simulation, its sprites and the
// FPS label.
type GlideScene struct {
	sim     *engine.Simulation
	pointer *input.State
	logger  *logging.Logger

	assets   *AssetManager
	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem
}

// NewGlideScene creates a scene for sim. pointer must be the input source
// the simulation was created with.
func NewGlideScene(sim *engine.Simulation, pointer *input.State, logger *logging.Logger) *GlideScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GlideScene{
		sim:     sim,
		pointer: pointer,
		logger:  logger,
		assets:  NewAssetManager(),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GlideScene) Type() string {
	return SceneType
}

// Preload registers the HUD font (required by Engo)
func (scene *GlideScene) Preload() {
	if err := scene.assets.LoadFont(); err != nil {
		scene.logger.Warn(context.Background(), "FPS label disabled", "error", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GlideScene) Setup(u engo.Updater) {
	ctx := context.Background()
	world, _ := u.(*ecs.World)
	cfg := scene.sim.Config

	common.SetBackground(cfg.Scene.ClearColor.NRGBA())

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	if err := scene.assets.LoadAssets(); err != nil {
		scene.logger.Warn(ctx, "ship texture unavailable", "error", err)
	}

	scene.hud = NewHUDSystem()
	scene.hud.Attach(renderSystem)
	if font, err := scene.assets.NewFont(cfg.Debug.FontSize); err != nil {
		scene.logger.Warn(ctx, "FPS label disabled", "error", err)
	} else {
		scene.hud.SetFont(font)
	}

	SetupInputBindings()
	scene.input = NewInputSystem(scene.pointer)
	scene.camera = NewCameraSystem(scene.sim)
	scene.renderer = NewEngoRenderer(renderSystem, scene.camera, scene.assets, scene.hud)

	world.AddSystem(scene.input)
	world.AddSystem(scene.camera)
	world.AddSystem(NewSimulationSystem(scene.sim, scene.camera, scene.renderer))
	world.AddSystem(scene.hud)

	scene.sim.Start()
	scene.logger.Info(ctx, "scene ready",
		"canvas_width", engo.GameWidth(),
		"canvas_height", engo.GameHeight())
}

// Exit is called when the window closes (required by Engo)
func (scene *GlideScene) Exit() {
	scene.sim.Stop()
}

// Run opens the window described by the simulation config and blocks
// until it closes.
func Run(scene *GlideScene) {
	w := scene.sim.Config.Window
	engo.Run(engo.RunOptions{
		Title:          w.Title,
		Width:          w.Width,
		Height:         w.Height,
		Fullscreen:     w.Fullscreen,
		VSync:          w.VSync,
		FPSLimit:       w.FPSLimit,
		StandardInputs: true,
	}, scene)
}
