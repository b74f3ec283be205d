// pkg/overlay/fps.go
package overlay

import (
	"fmt"
	"image/color"
	"time"

	"github.com/opd-ai/go-glide/pkg/diagnostics"
)

// LabelPrefix is the static part of the FPS label.
const LabelPrefix = "FPS: "

// DefaultInterval is how often the label is refreshed.
const DefaultInterval = 500 * time.Millisecond

// Label colors.
var (
	ColorLow     = color.NRGBA{R: 255, A: 255}
	ColorMedium  = color.NRGBA{R: 255, G: 215, A: 255}
	ColorHigh    = color.NRGBA{G: 255, A: 255}
	ColorDefault = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// ColorForFPS picks red below 30, gold below 60 and green otherwise.
func ColorForFPS(fps float64) color.NRGBA {
	switch {
	case fps < 30:
		return ColorLow
	case fps < 60:
		return ColorMedium
	default:
		return ColorHigh
	}
}

// FormatFPS renders the value part of the label.
func FormatFPS(fps float64) string {
	return fmt.Sprintf("%.2f", fps)
}

// Label is the two-part FPS text: a fixed prefix and a colored value.
type Label struct {
	Prefix string
	Text   string
	Color  color.NRGBA
}

func (l Label) String() string {
	return l.Prefix + l.Text
}

// FPSOverlay refreshes a Label from a diagnostics source on a timer.
type FPSOverlay struct {
	timer  *RepeatingTimer
	source diagnostics.Source
	label  Label
	value  float64
}

// NewFPSOverlay creates an overlay reading source every interval. A
// non-positive interval selects DefaultInterval.
func NewFPSOverlay(source diagnostics.Source, interval time.Duration) *FPSOverlay {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &FPSOverlay{
		timer:  NewRepeatingTimer(interval),
		source: source,
		label:  Label{Prefix: LabelPrefix, Color: ColorDefault},
	}
}

// Update ticks the timer and, when it fires and the source has an
// average, rewrites the label. It reports whether the label changed.
func (o *FPSOverlay) Update(dt time.Duration) bool {
	if !o.timer.Tick(dt) || o.source == nil {
		return false
	}

	fps, ok := o.source.AverageFPS()
	if !ok {
		return false
	}

	o.value = fps
	o.label.Text = FormatFPS(fps)
	o.label.Color = ColorForFPS(fps)
	return true
}

// Label returns the current label.
func (o *FPSOverlay) Label() Label {
	return o.label
}

// Value returns the last average written into the label.
func (o *FPSOverlay) Value() float64 {
	return o.value
}
