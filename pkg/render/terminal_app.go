// pkg/render/terminal_app.go
package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-glide/pkg/engine"
	"github.com/opd-ai/go-glide/pkg/input"
	"github.com/opd-ai/go-glide/pkg/logging"
	"github.com/opd-ai/go-glide/pkg/physics"
)

// DefaultTerminalFPS is used when no frame limit is configured.
const DefaultTerminalFPS = 60

// TerminalApp runs a simulation on a terminal screen. Mouse cells are
// mapped onto the ground and back through the scene camera, so the
// simulation sees the same pixel pointer as the windowed frontend.
type TerminalApp struct {
	screen   tcell.Screen
	sim      *engine.Simulation
	renderer *TerminalRenderer
	pointer  *input.State
	logger   *logging.Logger
	fps      int

	mouseCol, mouseRow int
	mouseSeen          bool
	pressed            bool
}

// NewTerminalApp creates an app drawing sim onto screen. pointer must be
// the input source the simulation was created with.
func NewTerminalApp(screen tcell.Screen, sim *engine.Simulation, pointer *input.State, scale float64, logger *logging.Logger) *TerminalApp {
	if logger == nil {
		logger = logging.Discard()
	}
	fps := sim.Config.Window.FPSLimit
	if fps <= 0 {
		fps = DefaultTerminalFPS
	}
	return &TerminalApp{
		screen:   screen,
		sim:      sim,
		renderer: NewTerminalRenderer(screen, scale),
		pointer:  pointer,
		logger:   logger,
		fps:      fps,
	}
}

// Renderer returns the renderer used for drawing
func (a *TerminalApp) Renderer() *TerminalRenderer {
	return a.renderer
}

// HandleEvent applies one terminal event. It returns false when the app
// should quit.
func (a *TerminalApp) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}

	case *tcell.EventMouse:
		a.mouseCol, a.mouseRow = ev.Position()
		a.pressed = ev.Buttons()&tcell.Button1 != 0
		a.mouseSeen = true

	case *tcell.EventResize:
		a.screen.Sync()
	}

	return true
}

// syncPointer converts the last mouse cell into a viewport pointer.
func (a *TerminalApp) syncPointer() {
	if !a.mouseSeen {
		return
	}
	world := a.renderer.CellToWorld(a.mouseCol, a.mouseRow)

	a.sim.EntityLock.RLock()
	camera, ok := a.sim.Camera()
	var x, y float32
	if ok {
		x, y, ok = camera.WorldToViewport(world)
	}
	a.sim.EntityLock.RUnlock()

	if !ok {
		a.pointer.Clear()
		return
	}
	a.pointer.Set(input.Pointer{X: x, Y: y, LeftPressed: a.pressed})
}

// Frame advances the simulation by dt seconds and redraws the screen
// centered on the camera target.
func (a *TerminalApp) Frame(dt float64) {
	a.syncPointer()
	a.sim.Step(dt)

	state := a.sim.GetState()
	a.renderer.SetCenter(physics.GroundVector(state.Camera.LookAt))
	a.sim.Render(a.renderer)
}

// Run polls terminal events and steps the simulation at the frame limit
// until the user quits or ctx is cancelled.
func (a *TerminalApp) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	a.sim.Start()
	defer a.sim.Stop()

	ticker := time.NewTicker(time.Second / time.Duration(a.fps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !a.HandleEvent(ev) {
				a.logger.Info(ctx, "terminal session ended by user")
				return nil
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			a.Frame(dt)
		}
	}
}
