// pkg/engine/simulation_test.go
package engine

import (
	"image/color"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-glide/pkg/config"
	"github.com/opd-ai/go-glide/pkg/diagnostics"
	"github.com/opd-ai/go-glide/pkg/entity"
	"github.com/opd-ai/go-glide/pkg/event"
	"github.com/opd-ai/go-glide/pkg/input"
	"github.com/opd-ai/go-glide/pkg/overlay"
)

func newTestSimulation(t *testing.T, opts Options) *Simulation {
	t.Helper()
	sim, err := NewSimulation(config.DefaultConfig(), opts)
	if err != nil {
		t.Fatalf("NewSimulation() failed: %v", err)
	}
	return sim
}

// pixelFor returns the viewport coordinate of a world point as seen by the
// simulation's camera.
func pixelFor(t *testing.T, sim *Simulation, p mgl32.Vec3) (float32, float32) {
	t.Helper()
	camera, ok := sim.Camera()
	if !ok {
		t.Fatal("simulation has no camera")
	}
	x, y, ok := camera.WorldToViewport(p)
	if !ok {
		t.Fatalf("WorldToViewport(%v) failed", p)
	}
	return x, y
}

func TestNewSimulation_SpawnsScene(t *testing.T) {
	sim := newTestSimulation(t, Options{})

	ids := map[entity.ID]bool{sim.ShipID: true, sim.MarkerID: true, sim.CameraID: true}
	if len(ids) != 3 {
		t.Fatalf("handles are not distinct: ship=%d marker=%d camera=%d", sim.ShipID, sim.MarkerID, sim.CameraID)
	}
	if _, ok := sim.Ship(); !ok {
		t.Error("Ship() handle missing")
	}
	if _, ok := sim.Marker(); !ok {
		t.Error("Marker() handle missing")
	}
	camera, ok := sim.Camera()
	if !ok {
		t.Fatal("Camera() handle missing")
	}
	if camera.Position() != (mgl32.Vec3{0, 70, -70}) {
		t.Errorf("camera position = %v, expected (0, 70, -70)", camera.Position())
	}
	if len(sim.Entities) != 5 {
		t.Errorf("expected 5 entities (camera, marker, ship, origin, ground), got %d", len(sim.Entities))
	}
	if sim.SessionID == "" {
		t.Error("SessionID should be set")
	}
}

func TestNewSimulation_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Ship.LinearVelocity = 0

	if _, err := NewSimulation(cfg, Options{}); err == nil {
		t.Error("NewSimulation() with zero velocity should fail")
	}
}

func TestSimulation_StageOrder(t *testing.T) {
	sim := newTestSimulation(t, Options{})

	expected := []string{StageCursor, StageMarker, StageMove, StageCamera, StageOverlay}
	if got := sim.StageNames(); !reflect.DeepEqual(got, expected) {
		t.Errorf("StageNames() = %v, expected %v", got, expected)
	}
}

func TestSimulation_ClickMovesMarkerAndShip(t *testing.T) {
	sim := newTestSimulation(t, Options{})
	x, y := pixelFor(t, sim, mgl32.Vec3{0, 0, 30})
	pointer := input.NewScriptedPointer(input.Click{Frame: 0, Pointer: input.Pointer{X: x, Y: y, LeftPressed: true}})
	sim.Input = pointer

	var placed []*event.MarkerEvent
	sim.EventBus.Subscribe(event.MarkerPlaced, func(e event.Event) {
		placed = append(placed, e.(*event.MarkerEvent))
	})

	sim.Step(1.0 / 60)
	pointer.Advance()

	if !sim.Cursor.Valid {
		t.Fatal("cursor should be valid after a projected pointer")
	}
	marker, _ := sim.Marker()
	if marker.Position() != sim.Cursor.Position {
		t.Errorf("marker = %v, expected cursor %v", marker.Position(), sim.Cursor.Position)
	}
	if !nearVec(marker.Position(), mgl32.Vec3{0, entity.CursorLift, 30}, 5e-2) {
		t.Errorf("marker = %v, expected near (0, 0.01, 30)", marker.Position())
	}
	if len(placed) != 1 {
		t.Fatalf("expected 1 marker event, got %d", len(placed))
	}

	ship, _ := sim.Ship()
	if ship.Position().Z() <= 0 {
		t.Errorf("ship should move toward +Z in the click frame, got %v", ship.Position())
	}

	// The button is released after the first frame; the marker stays.
	for i := 0; i < 10; i++ {
		sim.Step(1.0 / 60)
		pointer.Advance()
	}
	if len(placed) != 1 {
		t.Errorf("expected no further marker events, got %d", len(placed))
	}
}

func TestSimulation_CameraFollowsAfterMove(t *testing.T) {
	sim := newTestSimulation(t, Options{})
	marker, _ := sim.Marker()
	marker.MoveTo(mgl32.Vec3{20, 0, -15})

	ship, _ := sim.Ship()
	camera, _ := sim.Camera()
	for i := 0; i < 30; i++ {
		sim.Step(1.0 / 60)

		want := ship.Position().Add(sim.Config.Camera.Offset)
		if !nearVec(camera.Position(), want, 1e-4) {
			t.Fatalf("step %d: camera = %v, expected ship + offset = %v", i, camera.Position(), want)
		}
		if camera.LookAt != ship.Position() {
			t.Fatalf("step %d: camera looks at %v, ship at %v", i, camera.LookAt, ship.Position())
		}
	}
}

func TestSimulation_ShipArrivesOnce(t *testing.T) {
	sim := newTestSimulation(t, Options{})
	marker, _ := sim.Marker()
	target := mgl32.Vec3{0, 0, 10.2}
	marker.MoveTo(target)

	arrivals := 0
	sim.EventBus.Subscribe(event.ShipArrived, func(e event.Event) {
		arrivals++
		if got := e.(*event.ShipEvent).Position; got != target {
			t.Errorf("arrival position = %v, expected %v", got, target)
		}
	})

	// 4.8 units per frame: 10.2 -> 5.4 -> 0.6 -> snap.
	for i := 0; i < 10; i++ {
		sim.Step(0.1)
	}

	ship, _ := sim.Ship()
	if ship.Position() != target {
		t.Errorf("ship = %v, expected exactly %v", ship.Position(), target)
	}
	if arrivals != 1 {
		t.Errorf("expected 1 arrival event, got %d", arrivals)
	}
}

func TestSimulation_ZeroThresholdArrivesOnce(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Ship.ArriveThreshold = 0
	sim, err := NewSimulation(cfg, Options{})
	if err != nil {
		t.Fatalf("NewSimulation() failed: %v", err)
	}
	marker, _ := sim.Marker()
	marker.MoveTo(mgl32.Vec3{0, 0, 1})

	arrivals := 0
	sim.EventBus.Subscribe(event.ShipArrived, func(e event.Event) {
		arrivals++
	})

	for i := 0; i < 30; i++ {
		sim.Step(0.1)
	}

	if arrivals != 1 {
		t.Errorf("expected 1 arrival event while parked on the marker, got %d", arrivals)
	}
}

func TestSimulation_NegativeDtDoesNotMove(t *testing.T) {
	sim := newTestSimulation(t, Options{})
	marker, _ := sim.Marker()
	marker.MoveTo(mgl32.Vec3{0, 0, 20})

	sim.Step(-0.5)

	ship, _ := sim.Ship()
	if ship.Position() != (mgl32.Vec3{}) {
		t.Errorf("ship moved to %v on a negative frame", ship.Position())
	}
	if state := sim.GetState(); state.ElapsedTime != 0 || state.Tick != 1 {
		t.Errorf("elapsed %v tick %d, expected 0 and 1", state.ElapsedTime, state.Tick)
	}
}

func TestSimulation_Independent(t *testing.T) {
	a := newTestSimulation(t, Options{})
	b := newTestSimulation(t, Options{})

	markerA, _ := a.Marker()
	markerA.MoveTo(mgl32.Vec3{40, 0, 40})

	for i := 0; i < 20; i++ {
		a.Step(1.0 / 60)
		b.Step(1.0 / 60)
	}

	shipA, _ := a.Ship()
	shipB, _ := b.Ship()
	if shipA.Position() == (mgl32.Vec3{}) {
		t.Error("ship A should have moved")
	}
	if shipB.Position() != (mgl32.Vec3{}) {
		t.Errorf("ship B = %v, expected to stay at the origin", shipB.Position())
	}
	if a.ShipID != b.ShipID {
		t.Errorf("fresh simulations should allocate the same handle sequence, got %d and %d", a.ShipID, b.ShipID)
	}
	if a.EventBus == b.EventBus {
		t.Error("simulations should not share a private event bus")
	}
}

func TestSimulation_MissingHandlesAreNoOps(t *testing.T) {
	sim := newTestSimulation(t, Options{Input: input.NewScriptedPointer(input.Click{Pointer: input.Pointer{X: 512, Y: 384, LeftPressed: true}})})

	sim.RemoveEntity(sim.ShipID)
	sim.RemoveEntity(sim.MarkerID)
	sim.Step(1.0 / 60)

	camera, _ := sim.Camera()
	if camera.Position() != sim.Config.Camera.Offset {
		t.Errorf("camera moved without a ship: %v", camera.Position())
	}

	sim.RemoveEntity(sim.CameraID)
	sim.Step(1.0 / 60)

	if sim.CurrentTick != 2 {
		t.Errorf("CurrentTick = %d, expected 2", sim.CurrentTick)
	}
	state := sim.GetState()
	if state.Ship.ID != 0 || state.Camera.ID != 0 {
		t.Errorf("GetState() should leave missing parts zeroed, got %+v", state)
	}
}

func TestSimulation_AbsentPointer(t *testing.T) {
	sim := newTestSimulation(t, Options{Input: &input.State{}})

	sim.Step(1.0 / 60)

	if sim.Cursor.Valid {
		t.Error("cursor should stay invalid without a pointer")
	}
}

func TestSimulation_OverlayUsesFrameTime(t *testing.T) {
	sim := newTestSimulation(t, Options{})

	var samples []*event.FPSEvent
	sim.EventBus.Subscribe(event.FPSSampled, func(e event.Event) {
		samples = append(samples, e.(*event.FPSEvent))
	})

	for i := 0; i < 5; i++ {
		sim.Step(0.1)
	}

	if len(samples) != 1 {
		t.Fatalf("expected 1 fps sample after 0.5s, got %d", len(samples))
	}
	label := sim.GetState().Label
	if label.String() != "FPS: 10.00" {
		t.Errorf("label = %q, expected %q", label.String(), "FPS: 10.00")
	}
	if label.Color != overlay.ColorLow {
		t.Errorf("label color = %v, expected red", label.Color)
	}
}

func TestSimulation_OverlayExternalSource(t *testing.T) {
	source := diagnostics.Func(func() (float64, bool) { return 61, true })
	sim := newTestSimulation(t, Options{FPS: source})

	for i := 0; i < 40; i++ {
		sim.Step(1.0 / 60)
	}

	if label := sim.GetState().Label; label.Text != "61.00" || label.Color != overlay.ColorHigh {
		t.Errorf("label = %+v, expected green 61.00", label)
	}
}

type countingRenderer struct {
	ships, markers, props, cursors, labels, clears, presents int
	lastLabel                                                string
}

func (r *countingRenderer) RenderShip(*entity.Ship)     { r.ships++ }
func (r *countingRenderer) RenderMarker(*entity.Marker) { r.markers++ }
func (r *countingRenderer) RenderProp(*entity.Prop)     { r.props++ }
func (r *countingRenderer) RenderCursor(entity.Cursor)  { r.cursors++ }
func (r *countingRenderer) RenderLabel(text string, _ color.Color) {
	r.labels++
	r.lastLabel = text
}
func (r *countingRenderer) Clear()   { r.clears++ }
func (r *countingRenderer) Present() { r.presents++ }

func TestSimulation_Render(t *testing.T) {
	sim := newTestSimulation(t, Options{Input: input.NewScriptedPointer(input.Click{Pointer: input.Pointer{X: 512, Y: 384}})})
	sim.Step(1.0 / 60)

	r := &countingRenderer{}
	sim.Render(r)

	if r.ships != 1 || r.markers != 1 || r.props != 2 {
		t.Errorf("render counts = %+v, expected 1 ship, 1 marker, 2 props", r)
	}
	if r.cursors != 1 {
		t.Errorf("expected cursor gizmo once, got %d", r.cursors)
	}
	if r.labels != 1 || r.lastLabel != overlay.LabelPrefix {
		t.Errorf("label calls = %d last = %q", r.labels, r.lastLabel)
	}
	if r.clears != 1 || r.presents != 1 {
		t.Errorf("expected one Clear and one Present, got %d and %d", r.clears, r.presents)
	}
}

func TestSimulation_StartPublishesEvent(t *testing.T) {
	bus := event.NewEventBus()
	started := 0
	bus.Subscribe(event.SimulationStarted, func(e event.Event) { started++ })

	sim := newTestSimulation(t, Options{EventBus: bus})
	sim.Start()
	if !sim.Running || started != 1 {
		t.Errorf("Running = %v, started events = %d", sim.Running, started)
	}
	sim.Stop()
	if sim.Running {
		t.Error("Stop() should clear Running")
	}
}

func TestSimulation_ConcurrentStateReads(t *testing.T) {
	sim := newTestSimulation(t, Options{})
	marker, _ := sim.Marker()
	marker.MoveTo(mgl32.Vec3{50, 0, 50})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = sim.GetState()
		}
	}()

	for i := 0; i < 200; i++ {
		sim.Step(1.0 / 60)
	}
	<-done

	if sim.CurrentTick != 200 {
		t.Errorf("CurrentTick = %d, expected 200", sim.CurrentTick)
	}
}

// nearVec compares component-wise with an absolute tolerance.
func nearVec(a, b mgl32.Vec3, tol float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}
