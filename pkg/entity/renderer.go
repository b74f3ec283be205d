package entity

import "image/color"

// Renderer handles rendering scene entities
type Renderer interface {
	RenderShip(ship *Ship)
	RenderMarker(marker *Marker)
	RenderProp(prop *Prop)
	RenderCursor(cursor Cursor)
	RenderLabel(text string, c color.Color)
	Clear()
	Present()
}
