package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// DefaultHeading2DOffset turns atan2(y, x) into a heading for sprites that
// are drawn nose-up.
const DefaultHeading2DOffset = -math.Pi / 2

// Heading3D returns the yaw about +Y that turns the +Z axis toward dir,
// that is atan2(dir.X, dir.Z).
func Heading3D(dir mgl32.Vec3) float64 {
	return math.Atan2(float64(dir[0]), float64(dir[2]))
}

// Heading2D returns atan2(dir.Y, dir.X) shifted by offset.
func Heading2D(dir Vector2D, offset float64) float64 {
	return dir.Angle() + offset
}

// NormalizeAngle maps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// math.Mod of a tiny negative value can round up to exactly 2π.
	if a >= TwoPi {
		a = 0
	}
	return a
}

// AngleDelta returns the signed turn from one heading to another. Both
// headings are normalized into [0, 2π) first and the difference is wrapped
// onto the shortest arc, (-π, π].
func AngleDelta(from, to float64) float64 {
	d := NormalizeAngle(to) - NormalizeAngle(from)
	switch {
	case d > math.Pi:
		d -= TwoPi
	case d <= -math.Pi:
		d += TwoPi
	}
	return d
}

// YawOf extracts the heading of an orientation by rotating +Z with it and
// measuring the result on the ground plane.
func YawOf(q mgl32.Quat) float64 {
	return Heading3D(q.Rotate(mgl32.Vec3{0, 0, 1}))
}
