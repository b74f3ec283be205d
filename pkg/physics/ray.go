package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line in world space. Direction need not be unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// Point returns Origin + Direction*t.
func (r Ray) Point(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Plane is an infinite plane through Point with unit Normal.
type Plane struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// GroundPlane is the y = 0 plane facing up.
var GroundPlane = Plane{Normal: mgl32.Vec3{0, 1, 0}}

const parallelEpsilon = 1e-6

// IntersectPlane returns the ray parameter of the hit with p. It reports
// false when the ray runs parallel to the plane or the plane lies behind
// the origin.
func (r Ray) IntersectPlane(p Plane) (float32, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(float64(denom)) <= parallelEpsilon {
		return 0, false
	}
	t := p.Point.Sub(r.Origin).Dot(p.Normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}
