// pkg/input/scripted.go
package input

import (
	"fmt"
	"strconv"
	"strings"
)

// Click is a scripted pointer sample applied from Frame onward.
type Click struct {
	Frame   int
	Pointer Pointer
}

// ScriptedPointer replays a fixed list of pointer samples. Each call to
// Advance moves to the next frame; the most recent sample at or before the
// current frame is reported, with the button held only on its own frame.
type ScriptedPointer struct {
	clicks []Click
	frame  int
}

// NewScriptedPointer creates a replay of clicks, which must be sorted by
// Frame.
func NewScriptedPointer(clicks ...Click) *ScriptedPointer {
	return &ScriptedPointer{clicks: clicks}
}

// Advance moves to the next frame.
func (s *ScriptedPointer) Advance() {
	s.frame++
}

// Frame returns the current frame index.
func (s *ScriptedPointer) Frame() int {
	return s.frame
}

// Pointer implements Source.
func (s *ScriptedPointer) Pointer() (Pointer, bool) {
	var (
		current Click
		found   bool
	)
	for _, c := range s.clicks {
		if c.Frame > s.frame {
			break
		}
		current, found = c, true
	}
	if !found {
		return Pointer{}, false
	}

	p := current.Pointer
	p.LeftPressed = p.LeftPressed && current.Frame == s.frame
	return p, true
}

// ParseClick parses "frame:x,y" into a pressed Click.
func ParseClick(s string) (Click, error) {
	frameStr, coords, ok := strings.Cut(s, ":")
	if !ok {
		return Click{}, fmt.Errorf("click %q: expected frame:x,y", s)
	}
	xStr, yStr, ok := strings.Cut(coords, ",")
	if !ok {
		return Click{}, fmt.Errorf("click %q: expected frame:x,y", s)
	}

	frame, err := strconv.Atoi(strings.TrimSpace(frameStr))
	if err != nil || frame < 0 {
		return Click{}, fmt.Errorf("click %q: invalid frame", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xStr), 32)
	if err != nil {
		return Click{}, fmt.Errorf("click %q: invalid x: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(yStr), 32)
	if err != nil {
		return Click{}, fmt.Errorf("click %q: invalid y: %w", s, err)
	}

	return Click{
		Frame:   frame,
		Pointer: Pointer{X: float32(x), Y: float32(y), LeftPressed: true},
	}, nil
}

// String formats the click the way ParseClick reads it.
func (c Click) String() string {
	return fmt.Sprintf("%d:%g,%g", c.Frame, c.Pointer.X, c.Pointer.Y)
}
