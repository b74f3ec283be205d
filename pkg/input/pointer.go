// pkg/input/pointer.go
package input

import "sync"

// Pointer is the state of the mouse in viewport pixels, origin top-left.
type Pointer struct {
	X, Y float32
	// LeftPressed is true while the left button is held, including the
	// frame it went down.
	LeftPressed bool
}

// Source provides the current pointer. ok is false when no pointer is
// available this frame (outside the window, no device).
type Source interface {
	Pointer() (p Pointer, ok bool)
}

// State is a Source whose pointer is pushed by a frontend event loop.
type State struct {
	mu      sync.RWMutex
	pointer Pointer
	present bool
}

// Set stores the latest pointer.
func (s *State) Set(p Pointer) {
	s.mu.Lock()
	s.pointer, s.present = p, true
	s.mu.Unlock()
}

// Clear marks the pointer as absent, keeping nothing.
func (s *State) Clear() {
	s.mu.Lock()
	s.pointer, s.present = Pointer{}, false
	s.mu.Unlock()
}

// Pointer implements Source.
func (s *State) Pointer() (Pointer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pointer, s.present
}
