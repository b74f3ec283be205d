package entity

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Marker is the movement target placed by the pointer.
type Marker struct {
	BaseEntity
	Size  float32
	Color color.NRGBA
}

// Marker defaults: a 2×2 cube, translucent blue.
var (
	DefaultMarkerSize  float32 = 2
	DefaultMarkerColor         = color.NRGBA{R: 0, G: 128, B: 255, A: 26}
)

// NewMarker creates a marker at position.
func NewMarker(id ID, position mgl32.Vec3) *Marker {
	return &Marker{
		BaseEntity: BaseEntity{
			ID:        id,
			Transform: IdentityTransform(position),
			Active:    true,
		},
		Size:  DefaultMarkerSize,
		Color: DefaultMarkerColor,
	}
}

// MoveTo places the marker at position.
func (m *Marker) MoveTo(position mgl32.Vec3) {
	m.Transform.Position = position
}

// CursorLift raises the projected cursor point off the plane it hit.
const CursorLift = 0.01

// CursorGizmoRadius is the radius of the circle drawn at the cursor.
const CursorGizmoRadius = 0.8

// Cursor is the pointer projected onto the ground plane. Valid is false
// until the first successful projection.
type Cursor struct {
	Position mgl32.Vec3
	Valid    bool
}

// ShapeKind is the primitive used to draw a Prop.
type ShapeKind int

const (
	ShapeCube ShapeKind = iota
	ShapeSphere
	ShapeQuad
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCube:
		return "cube"
	case ShapeSphere:
		return "sphere"
	case ShapeQuad:
		return "quad"
	default:
		return "unknown"
	}
}

// Prop is static scenery: the origin sphere and the ground quad.
type Prop struct {
	BaseEntity
	Shape ShapeKind
	Size  float32
	Color color.NRGBA
}

// NewProp creates a prop at position.
func NewProp(id ID, shape ShapeKind, size float32, position mgl32.Vec3, c color.NRGBA) *Prop {
	return &Prop{
		BaseEntity: BaseEntity{
			ID:        id,
			Transform: IdentityTransform(position),
			Active:    true,
		},
		Shape: shape,
		Size:  size,
		Color: c,
	}
}
