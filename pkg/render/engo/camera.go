// pkg/render/engo/camera.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-glide/pkg/entity"
	"github.com/opd-ai/go-glide/pkg/physics"
)

// Viewport is anything whose pixel size follows the canvas.
type Viewport interface {
	SetViewport(width, height int)
}

// CameraSystem projects world positions through the scene camera into
// canvas pixels and keeps the camera viewport in step with the canvas.
type CameraSystem struct {
	camera   *entity.Camera
	viewport Viewport

	width, height int
	canvasSize    func() (float32, float32)
}

// NewCameraSystem creates a camera system resizing target with the canvas
func NewCameraSystem(target Viewport) *CameraSystem {
	return &CameraSystem{
		viewport:   target,
		canvasSize: gameSize,
	}
}

func gameSize() (float32, float32) {
	return engo.GameWidth(), engo.GameHeight()
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update resizes the viewport when the canvas size changed
func (cs *CameraSystem) Update(dt float32) {
	w, h := cs.canvasSize()
	width, height := int(w), int(h)
	if width <= 0 || height <= 0 {
		return
	}
	if width == cs.width && height == cs.height {
		return
	}
	cs.width, cs.height = width, height
	if cs.viewport != nil {
		cs.viewport.SetViewport(width, height)
	}
}

// SetCamera sets the camera used for projection
func (cs *CameraSystem) SetCamera(camera *entity.Camera) {
	cs.camera = camera
}

// Camera returns the camera used for projection
func (cs *CameraSystem) Camera() *entity.Camera {
	return cs.camera
}

// Project converts a world position to a canvas point. It reports false
// without a camera or for points behind it.
func (cs *CameraSystem) Project(p mgl32.Vec3) (engo.Point, bool) {
	if cs.camera == nil {
		return engo.Point{}, false
	}
	x, y, ok := cs.camera.WorldToViewport(p)
	if !ok {
		return engo.Point{}, false
	}
	return engo.Point{X: x, Y: y}, true
}

// PixelSize returns how many pixels a span of size world units along X
// covers at p.
func (cs *CameraSystem) PixelSize(p mgl32.Vec3, size float32) float32 {
	half := mgl32.Vec3{size / 2, 0, 0}
	a, okA := cs.Project(p.Sub(half))
	b, okB := cs.Project(p.Add(half))
	if !okA || !okB {
		return 0
	}
	return float32(math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y)))
}

// ScreenRotation returns the clockwise rotation in degrees that turns a
// nose-up sprite at p to face along forward on screen.
func (cs *CameraSystem) ScreenRotation(p, forward mgl32.Vec3) float32 {
	a, okA := cs.Project(p)
	b, okB := cs.Project(p.Add(forward))
	if !okA || !okB {
		return 0
	}
	// Canvas Y grows downward.
	dir := physics.Vector2D{X: float64(b.X - a.X), Y: float64(a.Y - b.Y)}
	if dir.X == 0 && dir.Y == 0 {
		return 0
	}
	clockwise := physics.NormalizeAngle(-physics.Heading2D(dir, physics.DefaultHeading2DOffset))
	return mgl32.RadToDeg(float32(clockwise))
}
