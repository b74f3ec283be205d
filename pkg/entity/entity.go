// pkg/entity/entity.go
package entity

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ID is a unique identifier for an entity
type ID uint64

// Transform is a world position and orientation.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// IdentityTransform returns a transform at pos with no rotation.
func IdentityTransform(pos mgl32.Vec3) Transform {
	return Transform{Position: pos, Rotation: mgl32.QuatIdent()}
}

// Forward returns the +Z axis rotated by the transform.
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, 1})
}

// Entity is the base interface for all scene objects
type Entity interface {
	GetID() ID
	GetTransform() Transform
	Render(r Renderer)
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID        ID
	Transform Transform
	Active    bool
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetTransform returns the entity's transform
func (e *BaseEntity) GetTransform() Transform {
	return e.Transform
}

// Position returns the entity's world position
func (e *BaseEntity) Position() mgl32.Vec3 {
	return e.Transform.Position
}

// Render does nothing for the base type.
func (e *BaseEntity) Render(r Renderer) {}

func (s *Ship) Render(r Renderer) {
	r.RenderShip(s)
}

func (m *Marker) Render(r Renderer) {
	r.RenderMarker(m)
}

func (p *Prop) Render(r Renderer) {
	r.RenderProp(p)
}

func (c *Camera) Render(r Renderer) {}
