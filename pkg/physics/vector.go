// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vector2D is a point or direction on the ground plane. X maps to world X
// and Y maps to world Z.
type Vector2D struct {
	X float64
	Y float64
}

// GroundVector projects a world position onto the ground plane.
func GroundVector(v mgl32.Vec3) Vector2D {
	return Vector2D{X: float64(v[0]), Y: float64(v[2])}
}

// World lifts the vector back into the scene at height y.
func (v Vector2D) World(y float32) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), y, float32(v.Y)}
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Angle returns the angle of the vector in radians
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle creates a vector from an angle and magnitude
func FromAngle(angle float64, magnitude float64) Vector2D {
	return Vector2D{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}
