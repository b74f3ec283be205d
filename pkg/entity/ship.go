// pkg/entity/ship.go
package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-glide/pkg/physics"
)

// Ship is the player-controlled craft that glides toward the marker.
type Ship struct {
	BaseEntity
	// PrevHeading is the desired heading of the last steering frame, in
	// [0, 2π). Banking is derived from how much it changes.
	PrevHeading float64
	// Tilt is the bank angle of the last steering frame.
	Tilt float64
	// Model names the asset used to draw the ship.
	Model string
}

// DefaultShipModel is the asset name of the stock ship.
const DefaultShipModel = "spaceship_beta"

// NewShip creates a ship at position facing +Z.
func NewShip(id ID, position mgl32.Vec3) *Ship {
	return &Ship{
		BaseEntity: BaseEntity{
			ID:        id,
			Transform: IdentityTransform(position),
			Active:    true,
		},
		Model: DefaultShipModel,
	}
}

// Steer runs one frame of steering toward target and stores the result on
// the ship.
func (s *Ship) Steer(target mgl32.Vec3, dt float64, params physics.SteeringParams) physics.SteerResult {
	state := s.movementState()
	result := physics.Steer(&state, target, dt, params)
	s.Transform.Position = state.Position
	s.Transform.Rotation = state.Rotation
	s.PrevHeading = state.PrevHeading
	s.Tilt = state.Tilt
	return result
}

// Heading returns the yaw the ship is currently facing.
func (s *Ship) Heading() float64 {
	return physics.YawOf(s.Transform.Rotation)
}

func (s *Ship) movementState() physics.MovementState {
	return physics.MovementState{
		Position:    s.Transform.Position,
		Rotation:    s.Transform.Rotation,
		PrevHeading: s.PrevHeading,
		Tilt:        s.Tilt,
	}
}
