// pkg/render/terminal.go
package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-glide/pkg/entity"
	"github.com/opd-ai/go-glide/pkg/physics"
)

// cellAspect is how many columns cover the same distance as one row.
const cellAspect = 2.0

// DefaultTerminalScale is the number of world units per terminal row.
const DefaultTerminalScale = 2.0

// shipGlyphs are indexed by the screen heading in eighths of a turn,
// counterclockwise from up.
var shipGlyphs = []rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}

// Terminal styles.
var (
	styleShip   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleMarker = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue)
	styleCursor = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleOrigin = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGround = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
)

// TerminalRenderer draws a top-down view of the ground plane on a tcell
// screen. The view matches the 3D camera: +Z is up and +X is to the left.
type TerminalRenderer struct {
	screen    tcell.Screen
	scale     float64
	centerPos physics.Vector2D
}

// NewTerminalRenderer creates a renderer drawing onto screen with scale
// world units per row.
func NewTerminalRenderer(screen tcell.Screen, scale float64) *TerminalRenderer {
	if scale <= 0 {
		scale = DefaultTerminalScale
	}
	return &TerminalRenderer{
		screen: screen,
		scale:  scale,
	}
}

// SetCenter sets the ground position (x, z) shown in the middle of the screen
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// WorldToCell converts a world position to a screen cell
func (r *TerminalRenderer) WorldToCell(pos mgl32.Vec3) (int, int) {
	w, h := r.screen.Size()
	d := physics.GroundVector(pos).Sub(r.centerPos).Scale(1 / r.scale)
	col := float64(w)/2 - d.X*cellAspect
	row := float64(h)/2 - d.Y
	return int(math.Round(col)), int(math.Round(row))
}

// CellToWorld converts a screen cell to a point on the ground plane
func (r *TerminalRenderer) CellToWorld(col, row int) mgl32.Vec3 {
	w, h := r.screen.Size()
	d := physics.Vector2D{
		X: (float64(w)/2 - float64(col)) / cellAspect,
		Y: float64(h)/2 - float64(row),
	}
	return r.centerPos.Add(d.Scale(r.scale)).World(0)
}

func (r *TerminalRenderer) inBounds(col, row int) bool {
	w, h := r.screen.Size()
	return col >= 0 && col < w && row >= 0 && row < h
}

func (r *TerminalRenderer) plot(pos mgl32.Vec3, ch rune, style tcell.Style) {
	col, row := r.WorldToCell(pos)
	if r.inBounds(col, row) {
		r.screen.SetContent(col, row, ch, nil, style)
	}
}

// ShipGlyph returns the arrow pointing along yaw as seen from above.
func ShipGlyph(yaw float64) rune {
	// Screen right is world -X and screen up is world +Z, so the ground
	// direction (sin yaw, cos yaw) appears at yaw + π/2 on screen.
	dir := physics.FromAngle(yaw+math.Pi/2, 1)
	a := physics.NormalizeAngle(physics.Heading2D(dir, physics.DefaultHeading2DOffset))
	sector := int(math.Floor((a+math.Pi/8)/(math.Pi/4))) % len(shipGlyphs)
	return shipGlyphs[sector]
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

// RenderShip implements entity.Renderer
func (r *TerminalRenderer) RenderShip(ship *entity.Ship) {
	r.plot(ship.Position(), ShipGlyph(ship.Heading()), styleShip)
}

// RenderMarker implements entity.Renderer
func (r *TerminalRenderer) RenderMarker(marker *entity.Marker) {
	r.plot(marker.Position(), '■', styleMarker.Foreground(tcell.FromImageColor(opaque(marker.Color))))
}

// RenderProp implements entity.Renderer
func (r *TerminalRenderer) RenderProp(prop *entity.Prop) {
	pos := prop.Position()
	half := float64(prop.Size) / 2

	switch prop.Shape {
	case entity.ShapeSphere:
		r.circle(pos, float64(prop.Size), '·', styleOrigin)
	case entity.ShapeQuad:
		step := r.scale / cellAspect
		for d := -half; d <= half; d += step {
			f := float32(d)
			h := float32(half)
			r.plot(pos.Add(mgl32.Vec3{f, 0, -h}), '·', styleGround)
			r.plot(pos.Add(mgl32.Vec3{f, 0, h}), '·', styleGround)
		}
		for d := -half; d <= half; d += r.scale {
			f := float32(d)
			h := float32(half)
			r.plot(pos.Add(mgl32.Vec3{-h, 0, f}), '·', styleGround)
			r.plot(pos.Add(mgl32.Vec3{h, 0, f}), '·', styleGround)
		}
	default:
		r.plot(pos, '□', styleOrigin)
	}
}

// circle plots an outline of the given radius around center.
func (r *TerminalRenderer) circle(center mgl32.Vec3, radius float64, ch rune, style tcell.Style) {
	g := physics.GroundVector(center)
	steps := int(math.Max(8, 2*math.Pi*radius*cellAspect/r.scale))
	for i := 0; i < steps; i++ {
		a := float64(i) / float64(steps) * physics.TwoPi
		r.plot(g.Add(physics.FromAngle(a, radius)).World(center.Y()), ch, style)
	}
}

// RenderCursor implements entity.Renderer
func (r *TerminalRenderer) RenderCursor(cursor entity.Cursor) {
	r.plot(cursor.Position, '+', styleCursor)
}

// RenderLabel implements entity.Renderer. The label is drawn on the top row.
func (r *TerminalRenderer) RenderLabel(text string, c color.Color) {
	style := tcell.StyleDefault.Foreground(tcell.FromImageColor(c))
	col := 0
	for _, ch := range text {
		if !r.inBounds(col, 0) {
			return
		}
		r.screen.SetContent(col, 0, ch, nil, style)
		col++
	}
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 255
	return c
}
