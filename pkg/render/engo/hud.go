// pkg/render/engo/hud.go
package engo

import (
	"image/color"
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
)

// Overlay placement in canvas pixels.
const (
	hudMarginX float32 = 10
	hudMarginY float32 = 10
)

// HUDSystem draws the FPS label in the top-left corner
type HUDSystem struct {
	mu sync.Mutex

	text      string
	textColor color.Color
	dirty     bool

	font  *common.Font
	label *sprite
}

// NewHUDSystem creates a new HUD system. The label stays hidden until a
// font is set.
func NewHUDSystem() *HUDSystem {
	return &HUDSystem{
		textColor: color.White,
	}
}

// SetFont sets the font used for HUD text rendering
func (hud *HUDSystem) SetFont(font *common.Font) {
	hud.mu.Lock()
	hud.font = font
	hud.dirty = true
	hud.mu.Unlock()
}

// SetLabel implements LabelSink
func (hud *HUDSystem) SetLabel(text string, c color.Color) {
	hud.mu.Lock()
	defer hud.mu.Unlock()

	if text == hud.text && c == hud.textColor {
		return
	}
	hud.text, hud.textColor = text, c
	hud.dirty = true
}

// Label returns the current label text and color
func (hud *HUDSystem) Label() (string, color.Color) {
	hud.mu.Lock()
	defer hud.mu.Unlock()
	return hud.text, hud.textColor
}

// Attach adds the label sprite to the render system
func (hud *HUDSystem) Attach(rs *common.RenderSystem) {
	hud.mu.Lock()
	defer hud.mu.Unlock()

	if hud.label != nil {
		return
	}
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent.Hidden = true
	s.RenderComponent.SetZIndex(zHUD)
	s.RenderComponent.SetShader(common.TextHUDShader)
	s.SpaceComponent.Position = engo.Point{X: hudMarginX, Y: hudMarginY}
	hud.label = s
	if rs != nil {
		rs.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update redraws the label text when it changed
func (hud *HUDSystem) Update(dt float32) {
	hud.mu.Lock()
	defer hud.mu.Unlock()

	if !hud.dirty || hud.label == nil || hud.font == nil {
		return
	}
	hud.dirty = false

	hud.label.Drawable = common.Text{
		Font: hud.font,
		Text: hud.text,
	}
	hud.label.Color = hud.textColor
	hud.label.Hidden = hud.text == ""
	w, h, _ := hud.font.TextDimensions(hud.text)
	hud.label.Width, hud.label.Height = float32(w), float32(h)
}
