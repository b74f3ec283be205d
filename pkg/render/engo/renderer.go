// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-glide/pkg/entity"
)

// Draw order, back to front.
const (
	zGround float32 = iota
	zProp
	zMarker
	zShip
	zCursor
	zHUD
)

// minSpriteSize keeps far away sprites visible.
const minSpriteSize = 2

// cursorID keys the cursor gizmo sprite. Scene entity IDs start at 1.
const cursorID entity.ID = 0

// sprite is one drawable mirrored from a scene entity.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	seen bool
}

// LabelSink receives the overlay label.
type LabelSink interface {
	SetLabel(text string, c color.Color)
}

// EngoRenderer implements entity.Renderer by mirroring scene entities into
// engo sprites positioned through the camera projection.
type EngoRenderer struct {
	renderSystem *common.RenderSystem
	camera       *CameraSystem
	assets       *AssetManager
	labels       LabelSink

	sprites map[entity.ID]*sprite
}

// NewEngoRenderer creates a new Engo-based renderer. A nil render system
// keeps sprites off screen, which is what tests use.
func NewEngoRenderer(renderSystem *common.RenderSystem, camera *CameraSystem, assets *AssetManager, labels LabelSink) *EngoRenderer {
	if assets == nil {
		assets = NewAssetManager()
	}
	return &EngoRenderer{
		renderSystem: renderSystem,
		camera:       camera,
		assets:       assets,
		labels:       labels,
		sprites:      make(map[entity.ID]*sprite),
	}
}

// getOrCreateSprite gets an existing sprite or creates a new one. The
// render system picks the shader from the first drawable.
func (r *EngoRenderer) getOrCreateSprite(id entity.ID, drawable common.Drawable, z float32) *sprite {
	if s, exists := r.sprites[id]; exists {
		return s
	}

	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent = common.RenderComponent{
		Drawable: drawable,
		Color:    color.White,
	}
	s.RenderComponent.SetZIndex(z)
	r.sprites[id] = s

	if r.renderSystem != nil {
		r.renderSystem.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	return s
}

// place centers a sprite on the projection of pos, sized size world units.
// Sprites that cannot be projected are hidden.
func (r *EngoRenderer) place(s *sprite, pos mgl32.Vec3, size float32) (engo.Point, bool) {
	s.seen = true
	center, ok := r.camera.Project(pos)
	if !ok {
		s.Hidden = true
		return engo.Point{}, false
	}
	px := r.camera.PixelSize(pos, size)
	if px < minSpriteSize {
		px = minSpriteSize
	}
	s.Width, s.Height = px, px
	s.Rotation = 0
	s.SetCenter(center)
	s.Hidden = false
	return center, true
}

// RenderShip implements entity.Renderer. Banking narrows the sprite.
func (r *EngoRenderer) RenderShip(ship *entity.Ship) {
	s := r.getOrCreateSprite(ship.GetID(), r.assets.GetShipSprite(ship.Model), zShip)
	s.Drawable = r.assets.GetShipSprite(ship.Model)

	pos := ship.Position()
	center, ok := r.place(s, pos, shipSize)
	if !ok {
		return
	}
	s.Width *= float32(math.Max(math.Cos(ship.Tilt), 0.2))
	s.Rotation = r.camera.ScreenRotation(pos, ship.Transform.Forward())
	s.SetCenter(center)
}

// shipSize is the drawn width of the ship in world units.
const shipSize = 4

// RenderMarker implements entity.Renderer
func (r *EngoRenderer) RenderMarker(marker *entity.Marker) {
	s := r.getOrCreateSprite(marker.GetID(), r.assets.GetMarkerShape(), zMarker)
	s.Color = marker.Color
	r.place(s, marker.Position(), marker.Size)
}

// RenderProp implements entity.Renderer
func (r *EngoRenderer) RenderProp(prop *entity.Prop) {
	z := zProp
	size := prop.Size
	switch prop.Shape {
	case entity.ShapeQuad:
		z = zGround
	case entity.ShapeSphere:
		// Size is the radius.
		size = 2 * prop.Size
	}
	s := r.getOrCreateSprite(prop.GetID(), r.assets.GetPropShape(prop.Shape), z)
	s.Color = prop.Color
	r.place(s, prop.Position(), size)
}

// RenderCursor implements entity.Renderer
func (r *EngoRenderer) RenderCursor(cursor entity.Cursor) {
	s := r.getOrCreateSprite(cursorID, r.assets.GetCursorShape(), zCursor)
	s.Color = color.Transparent
	r.place(s, cursor.Position, 2*entity.CursorGizmoRadius)
}

// RenderLabel implements entity.Renderer
func (r *EngoRenderer) RenderLabel(text string, c color.Color) {
	if r.labels != nil {
		r.labels.SetLabel(text, c)
	}
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// Present implements entity.Renderer. Sprites not drawn this frame are
// hidden; engo draws the rest through its render system.
func (r *EngoRenderer) Present() {
	for _, s := range r.sprites {
		if !s.seen {
			s.Hidden = true
		}
	}
}

// Remove drops the sprite mirrored from id
func (r *EngoRenderer) Remove(id entity.ID) {
	s, exists := r.sprites[id]
	if !exists {
		return
	}
	if r.renderSystem != nil {
		r.renderSystem.Remove(s.BasicEntity)
	}
	delete(r.sprites, id)
}

// Sprite returns the render and space components mirrored from id
func (r *EngoRenderer) Sprite(id entity.ID) (*common.RenderComponent, *common.SpaceComponent, bool) {
	s, exists := r.sprites[id]
	if !exists {
		return nil, nil, false
	}
	return &s.RenderComponent, &s.SpaceComponent, true
}
