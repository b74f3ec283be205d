// pkg/engine/simulation.go
package engine

import (
	"context"
	"fmt"
	"image/color"
	"sort"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-glide/pkg/config"
	"github.com/opd-ai/go-glide/pkg/diagnostics"
	"github.com/opd-ai/go-glide/pkg/entity"
	"github.com/opd-ai/go-glide/pkg/event"
	"github.com/opd-ai/go-glide/pkg/input"
	"github.com/opd-ai/go-glide/pkg/logging"
	"github.com/opd-ai/go-glide/pkg/overlay"
	"github.com/opd-ai/go-glide/pkg/physics"
)

// Stage names, in execution order.
const (
	StageCursor  = "cursor"
	StageMarker  = "marker"
	StageMove    = "move_ship"
	StageCamera  = "camera_follow"
	StageOverlay = "overlay"
)

// Stage is one step of a frame.
type Stage struct {
	Name string
	Run  func(s *Simulation, dt float64)
}

// Options supplies the collaborators of a Simulation. Every field is
// optional.
type Options struct {
	// Input provides the pointer. Nil means no pointer is ever present.
	Input input.Source
	// FPS provides the overlay average. Nil uses a FrameTime fed by Step.
	FPS diagnostics.Source
	// EventBus receives simulation events. Nil creates a private bus.
	EventBus *event.Bus
	Logger   *logging.Logger
}

// Simulation is one independent glide scene: a ship, its marker, the
// follow camera and the overlay, advanced by Step.
type Simulation struct {
	Config   *config.Config
	Params   physics.SteeringParams
	Ground   physics.Plane
	ShipID   entity.ID
	MarkerID entity.ID
	CameraID entity.ID
	Entities map[entity.ID]entity.Entity

	Cursor      entity.Cursor
	Input       input.Source
	Overlay     *overlay.FPSOverlay
	FrameTime   *diagnostics.FrameTime
	EventBus    *event.Bus
	EntityLock  sync.RWMutex
	Running     bool
	CurrentTick uint64
	ElapsedTime float64
	SessionID   string

	stages []Stage
	nextID entity.ID
	logger *logging.Logger
	ctx    context.Context
}

// DefaultStages returns the frame stages in execution order.
func DefaultStages() []Stage {
	return []Stage{
		{Name: StageCursor, Run: (*Simulation).updateCursor},
		{Name: StageMarker, Run: (*Simulation).updateMarker},
		{Name: StageMove, Run: (*Simulation).moveShip},
		{Name: StageCamera, Run: (*Simulation).followShip},
		{Name: StageOverlay, Run: (*Simulation).updateOverlay},
	}
}

// NewSimulation validates cfg and builds the scene: camera, marker, ship,
// origin marker and ground.
func NewSimulation(cfg *config.Config, opts Options) (*Simulation, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	params, err := cfg.SteeringParams()
	if err != nil {
		return nil, fmt.Errorf("failed to build steering parameters: %w", err)
	}

	sessionID := logging.GenerateCorrelationID()
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	bus := opts.EventBus
	if bus == nil {
		bus = event.NewEventBus()
	}

	sim := &Simulation{
		Config:    cfg,
		Params:    params,
		Ground:    physics.GroundPlane,
		Entities:  make(map[entity.ID]entity.Entity),
		Input:     opts.Input,
		FrameTime: diagnostics.NewFrameTime(cfg.Debug.HistoryLength),
		EventBus:  bus,
		SessionID: sessionID,
		stages:    DefaultStages(),
		nextID:    1,
		logger:    logger.With("session_id", sessionID),
		ctx:       logging.WithCorrelationID(context.Background(), sessionID),
	}

	var fps diagnostics.Source = sim.FrameTime
	if opts.FPS != nil {
		fps = opts.FPS
	}
	sim.Overlay = overlay.NewFPSOverlay(fps, cfg.Debug.UpdateInterval)

	sim.spawnScene()

	sim.logger.Info(sim.ctx, "simulation created",
		"ship_id", sim.ShipID,
		"marker_id", sim.MarkerID,
		"camera_id", sim.CameraID,
		"banking", string(cfg.Banking.Mode))

	return sim, nil
}

func (s *Simulation) spawnScene() {
	cfg := s.Config

	camera := entity.NewCamera(s.allocateID(), cfg.Camera.Offset)
	camera.Up = cfg.Camera.Up
	camera.FovY = cfg.Camera.FovY
	camera.Near = cfg.Camera.Near
	camera.Far = cfg.Camera.Far
	camera.SetViewport(cfg.Window.Width, cfg.Window.Height)
	camera.Follow(mgl32.Vec3{})
	s.CameraID = s.addEntity(camera)

	marker := entity.NewMarker(s.allocateID(), mgl32.Vec3{})
	marker.Color = cfg.Scene.MarkerColor.NRGBA()
	s.MarkerID = s.addEntity(marker)

	ship := entity.NewShip(s.allocateID(), cfg.Ship.Start)
	if cfg.Ship.Model != "" {
		ship.Model = cfg.Ship.Model
	}
	s.ShipID = s.addEntity(ship)

	if cfg.Scene.OriginMarker {
		s.addEntity(entity.NewProp(s.allocateID(), entity.ShapeSphere, 4,
			mgl32.Vec3{0, 0.5, 0}, color.NRGBA{R: 255, G: 255, B: 255, A: 26}))
	}
	if cfg.Scene.GroundSize > 0 {
		s.addEntity(entity.NewProp(s.allocateID(), entity.ShapeQuad, cfg.Scene.GroundSize,
			mgl32.Vec3{0, cfg.Scene.GroundHeight, 0}, color.NRGBA{R: 40, G: 40, B: 60, A: 255}))
	}
}

func (s *Simulation) allocateID() entity.ID {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Simulation) addEntity(e entity.Entity) entity.ID {
	s.Entities[e.GetID()] = e
	return e.GetID()
}

// RemoveEntity drops an entity from the scene. Stages that need a removed
// handle become no-ops.
func (s *Simulation) RemoveEntity(id entity.ID) {
	s.EntityLock.Lock()
	defer s.EntityLock.Unlock()
	delete(s.Entities, id)
}

// Ship returns the ship handle, if present.
func (s *Simulation) Ship() (*entity.Ship, bool) {
	ship, ok := s.Entities[s.ShipID].(*entity.Ship)
	return ship, ok
}

// Marker returns the marker handle, if present.
func (s *Simulation) Marker() (*entity.Marker, bool) {
	marker, ok := s.Entities[s.MarkerID].(*entity.Marker)
	return marker, ok
}

// Camera returns the camera handle, if present.
func (s *Simulation) Camera() (*entity.Camera, bool) {
	camera, ok := s.Entities[s.CameraID].(*entity.Camera)
	return camera, ok
}

// StageNames returns the names of the frame stages in execution order.
func (s *Simulation) StageNames() []string {
	names := make([]string, len(s.stages))
	for i, st := range s.stages {
		names[i] = st.Name
	}
	return names
}

// Start marks the simulation as running and announces it.
func (s *Simulation) Start() {
	s.Running = true
	s.logger.Info(s.ctx, "simulation started")
	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.SimulationStarted,
		Source:    s,
	})
}

// Stop marks the simulation as stopped.
func (s *Simulation) Stop() {
	s.Running = false
	s.logger.Info(s.ctx, "simulation stopped", "ticks", s.CurrentTick)
}

// Step advances the scene by dt seconds, running every stage once in
// order. A negative dt is treated as zero: the cursor and marker still
// follow the pointer but nothing moves.
func (s *Simulation) Step(dt float64) {
	s.EntityLock.Lock()
	defer s.EntityLock.Unlock()

	if dt < 0 {
		dt = 0
	}

	s.FrameTime.Record(dt)
	for _, st := range s.stages {
		st.Run(s, dt)
	}
	s.ElapsedTime += dt
	s.CurrentTick++
}

// SetViewport resizes the camera viewport used for cursor projection.
func (s *Simulation) SetViewport(width, height int) {
	s.EntityLock.Lock()
	defer s.EntityLock.Unlock()

	if camera, ok := s.Camera(); ok {
		camera.SetViewport(width, height)
	}
}

// updateCursor projects the pointer onto the ground plane. Any missing
// piece leaves the previous cursor in place.
func (s *Simulation) updateCursor(dt float64) {
	if s.Input == nil {
		return
	}
	camera, ok := s.Camera()
	if !ok {
		return
	}
	pointer, ok := s.Input.Pointer()
	if !ok {
		return
	}
	point, ok := camera.ProjectToGround(pointer.X, pointer.Y, s.Ground)
	if !ok {
		return
	}

	moved := !s.Cursor.Valid || s.Cursor.Position != point
	s.Cursor = entity.Cursor{Position: point, Valid: true}
	if moved {
		s.EventBus.Publish(event.NewCursorEvent(s, point))
	}
}

// updateMarker copies the cursor into the marker while the left button is
// held.
func (s *Simulation) updateMarker(dt float64) {
	if s.Input == nil || !s.Cursor.Valid {
		return
	}
	marker, ok := s.Marker()
	if !ok {
		return
	}
	pointer, ok := s.Input.Pointer()
	if !ok || !pointer.LeftPressed {
		return
	}
	if marker.Position() == s.Cursor.Position {
		return
	}

	marker.MoveTo(s.Cursor.Position)
	s.logger.Debug(s.ctx, "marker placed",
		"x", s.Cursor.Position.X(),
		"y", s.Cursor.Position.Y(),
		"z", s.Cursor.Position.Z())
	s.EventBus.Publish(event.NewMarkerEvent(s, uint64(marker.GetID()), s.Cursor.Position))
}

// moveShip steers the ship toward the marker.
func (s *Simulation) moveShip(dt float64) {
	ship, ok := s.Ship()
	if !ok || !ship.Active {
		return
	}
	marker, ok := s.Marker()
	if !ok {
		return
	}

	if ship.Steer(marker.Position(), dt, s.Params) == physics.SteerArrived {
		s.logger.Info(s.ctx, "ship arrived",
			"ship_id", ship.GetID(),
			"tick", s.CurrentTick)
		s.EventBus.Publish(event.NewShipEvent(event.ShipArrived, s, uint64(ship.GetID()), ship.Position()))
	}
}

// followShip places the camera at the ship plus the configured offset.
func (s *Simulation) followShip(dt float64) {
	ship, ok := s.Ship()
	if !ok {
		return
	}
	camera, ok := s.Camera()
	if !ok {
		return
	}
	camera.Follow(ship.Position())
}

// updateOverlay refreshes the FPS label when its timer fires.
func (s *Simulation) updateOverlay(dt float64) {
	if !s.Config.Debug.ShowFPS {
		return
	}
	if !s.Overlay.Update(time.Duration(dt * float64(time.Second))) {
		return
	}

	label := s.Overlay.Label()
	s.logger.Debug(s.ctx, "fps sampled", "fps", label.Text)
	s.EventBus.Publish(event.NewFPSEvent(s, s.Overlay.Value(), label.Text))
}

// Render draws every entity in ID order, then the cursor gizmo and the
// overlay label.
func (s *Simulation) Render(r entity.Renderer) {
	s.EntityLock.RLock()
	defer s.EntityLock.RUnlock()

	r.Clear()

	ids := make([]entity.ID, 0, len(s.Entities))
	for id := range s.Entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		s.Entities[id].Render(r)
	}

	if s.Cursor.Valid {
		r.RenderCursor(s.Cursor)
	}
	if s.Config.Debug.ShowFPS {
		label := s.Overlay.Label()
		r.RenderLabel(label.String(), label.Color)
	}

	r.Present()
}
