package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-glide/pkg/physics"
)

// Camera defaults, matching the stock scene.
var (
	DefaultCameraOffset = mgl32.Vec3{0, 70, -70}
	DefaultCameraUp     = mgl32.Vec3{0, 0, 1}
)

const (
	DefaultFovY  float32 = 45
	DefaultNear  float32 = 0.1
	DefaultFar   float32 = 1000
	defaultWidth         = 1024
	defaultHeight        = 768
)

// Camera is a perspective camera that looks at a target from a fixed offset.
type Camera struct {
	BaseEntity
	Offset mgl32.Vec3
	Up     mgl32.Vec3
	LookAt mgl32.Vec3
	// FovY is the vertical field of view in degrees.
	FovY float32
	Near float32
	Far  float32

	width  int
	height int
}

// NewCamera creates a camera positioned at offset from the origin, looking
// at the origin.
func NewCamera(id ID, offset mgl32.Vec3) *Camera {
	c := &Camera{
		BaseEntity: BaseEntity{ID: id, Active: true},
		Offset:     offset,
		Up:         DefaultCameraUp,
		FovY:       DefaultFovY,
		Near:       DefaultNear,
		Far:        DefaultFar,
		width:      defaultWidth,
		height:     defaultHeight,
	}
	c.Follow(mgl32.Vec3{})
	return c
}

// Follow places the camera at target+Offset looking at target. It ignores
// the target's orientation.
func (c *Camera) Follow(target mgl32.Vec3) {
	c.Transform.Position = target.Add(c.Offset)
	c.LookAt = target
	c.Transform.Rotation = mgl32.QuatLookAtV(c.Transform.Position, target, c.Up)
}

// SetViewport sets the pixel size used for projection. Non-positive sizes
// are ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
}

// Viewport returns the pixel size used for projection.
func (c *Camera) Viewport() (width, height int) {
	return c.width, c.height
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Transform.Position, c.LookAt, c.Up)
}

// Projection returns the perspective matrix for the current viewport.
func (c *Camera) Projection() mgl32.Mat4 {
	aspect := float32(c.width) / float32(c.height)
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ViewportToWorld turns a pixel coordinate (origin top-left) into a world
// ray from the near plane toward the far plane. It reports false when the
// matrices cannot be inverted.
func (c *Camera) ViewportToWorld(px, py float32) (physics.Ray, bool) {
	view, proj := c.View(), c.Projection()
	winY := float32(c.height) - py

	near, err := mgl32.UnProject(mgl32.Vec3{px, winY, 0}, view, proj, 0, 0, c.width, c.height)
	if err != nil {
		return physics.Ray{}, false
	}
	far, err := mgl32.UnProject(mgl32.Vec3{px, winY, 1}, view, proj, 0, 0, c.width, c.height)
	if err != nil {
		return physics.Ray{}, false
	}

	dir := far.Sub(near)
	if dir.Len() == 0 {
		return physics.Ray{}, false
	}
	return physics.Ray{Origin: near, Direction: dir.Normalize()}, true
}

// WorldToViewport projects a world point to pixel coordinates (origin
// top-left). It reports false for points behind the camera.
func (c *Camera) WorldToViewport(p mgl32.Vec3) (x, y float32, ok bool) {
	view, proj := c.View(), c.Projection()
	clip := proj.Mul4(view).Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, false
	}
	win := mgl32.Project(p, view, proj, 0, 0, c.width, c.height)
	return win[0], float32(c.height) - win[1], true
}

// ProjectToGround casts the pixel coordinate onto plane and returns the
// hit lifted by CursorLift along the plane normal.
func (c *Camera) ProjectToGround(px, py float32, plane physics.Plane) (mgl32.Vec3, bool) {
	ray, ok := c.ViewportToWorld(px, py)
	if !ok {
		return mgl32.Vec3{}, false
	}
	d, ok := ray.IntersectPlane(plane)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return ray.Point(d).Add(plane.Normal.Mul(CursorLift)), true
}
