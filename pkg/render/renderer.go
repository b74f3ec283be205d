// pkg/render/renderer.go
package render

import (
	"context"
	"image/color"

	"github.com/opd-ai/go-glide/pkg/entity"
	"github.com/opd-ai/go-glide/pkg/logging"
)

// NullRenderer is an entity.Renderer that only logs what it is asked to
// draw. It backs headless runs.
type NullRenderer struct {
	logger *logging.Logger
	frames int
	label  string
}

// NewNullRenderer creates a new NullRenderer with structured logging. A nil
// logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{logger: logger}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
}

// RenderShip implements entity.Renderer.
func (d *NullRenderer) RenderShip(ship *entity.Ship) {
	ctx := context.Background()
	if ship == nil {
		d.logger.Debug(ctx, "RenderShip called with nil ship")
		return
	}
	pos := ship.Position()
	d.logger.Debug(ctx, "RenderShip called",
		"ship_id", ship.ID,
		"x", pos.X(), "y", pos.Y(), "z", pos.Z(),
		"heading", ship.Heading(),
		"tilt", ship.Tilt,
	)
}

// RenderMarker implements entity.Renderer.
func (d *NullRenderer) RenderMarker(marker *entity.Marker) {
	ctx := context.Background()
	if marker == nil {
		d.logger.Debug(ctx, "RenderMarker called with nil marker")
		return
	}
	pos := marker.Position()
	d.logger.Debug(ctx, "RenderMarker called",
		"marker_id", marker.ID,
		"x", pos.X(), "y", pos.Y(), "z", pos.Z(),
	)
}

// RenderProp implements entity.Renderer.
func (d *NullRenderer) RenderProp(prop *entity.Prop) {
	ctx := context.Background()
	if prop == nil {
		d.logger.Debug(ctx, "RenderProp called with nil prop")
		return
	}
	d.logger.Debug(ctx, "RenderProp called",
		"prop_id", prop.ID,
		"shape", prop.Shape.String(),
		"size", prop.Size,
	)
}

// RenderCursor implements entity.Renderer.
func (d *NullRenderer) RenderCursor(cursor entity.Cursor) {
	d.logger.Debug(context.Background(), "RenderCursor called",
		"x", cursor.Position.X(), "z", cursor.Position.Z(),
		"radius", entity.CursorGizmoRadius,
	)
}

// RenderLabel implements entity.Renderer.
func (d *NullRenderer) RenderLabel(text string, c color.Color) {
	d.label = text
	d.logger.Debug(context.Background(), "RenderLabel called", "text", text)
}

// Frames returns how many frames were presented.
func (d *NullRenderer) Frames() int {
	return d.frames
}

// LastLabel returns the most recent label text.
func (d *NullRenderer) LastLabel() string {
	return d.label
}
