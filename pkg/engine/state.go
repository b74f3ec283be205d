// pkg/engine/state.go
package engine

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-glide/pkg/entity"
	"github.com/opd-ai/go-glide/pkg/overlay"
)

// State represents a snapshot of the simulation
type State struct {
	Tick        uint64
	ElapsedTime float64
	Ship        ShipState
	Marker      mgl32.Vec3
	Camera      CameraState
	Cursor      entity.Cursor
	Label       overlay.Label
}

// ShipState represents a snapshot of the ship
type ShipState struct {
	ID          entity.ID
	Position    mgl32.Vec3
	Rotation    mgl32.Quat
	Heading     float64
	PrevHeading float64
	Tilt        float64
}

// CameraState represents a snapshot of the camera
type CameraState struct {
	ID       entity.ID
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
}

// GetState returns a snapshot of the current simulation state. Missing
// handles leave their part zeroed.
func (s *Simulation) GetState() State {
	s.EntityLock.RLock()
	defer s.EntityLock.RUnlock()

	state := State{
		Tick:        s.CurrentTick,
		ElapsedTime: s.ElapsedTime,
		Cursor:      s.Cursor,
		Label:       s.Overlay.Label(),
	}

	if ship, ok := s.Ship(); ok {
		state.Ship = ShipState{
			ID:          ship.GetID(),
			Position:    ship.Position(),
			Rotation:    ship.Transform.Rotation,
			Heading:     ship.Heading(),
			PrevHeading: ship.PrevHeading,
			Tilt:        ship.Tilt,
		}
	}
	if marker, ok := s.Marker(); ok {
		state.Marker = marker.Position()
	}
	if camera, ok := s.Camera(); ok {
		state.Camera = CameraState{
			ID:       camera.GetID(),
			Position: camera.Position(),
			LookAt:   camera.LookAt,
		}
	}

	return state
}
