// pkg/diagnostics/frametime.go
package diagnostics

import "sync"

// DefaultHistoryLength is the number of frames averaged by default.
const DefaultHistoryLength = 20

// Source provides a smoothed frames-per-second reading. ok is false until
// at least one frame has been measured.
type Source interface {
	AverageFPS() (fps float64, ok bool)
}

// FrameTime keeps a rolling window of per-frame FPS samples (1/dt) and
// their frame durations.
type FrameTime struct {
	mu      sync.Mutex
	fps     []float64
	dts     []float64
	next    int
	count   int
	frames  uint64
	history int
}

// NewFrameTime creates a diagnostic averaging the last history frames. A
// non-positive history selects DefaultHistoryLength.
func NewFrameTime(history int) *FrameTime {
	if history <= 0 {
		history = DefaultHistoryLength
	}
	return &FrameTime{
		fps:     make([]float64, history),
		dts:     make([]float64, history),
		history: history,
	}
}

// Record adds one frame of duration dt seconds. Non-positive durations are
// dropped since they carry no rate.
func (f *FrameTime) Record(dt float64) {
	if dt <= 0 {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.frames++
	if f.count < f.history {
		f.count++
	}
	f.fps[f.next] = 1 / dt
	f.dts[f.next] = dt
	f.next = (f.next + 1) % f.history
}

// AverageFPS implements Source.
func (f *FrameTime) AverageFPS() (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.count == 0 {
		return 0, false
	}
	return mean(f.fps[:f.count]), true
}

// AverageFrameTime returns the mean frame duration in seconds.
func (f *FrameTime) AverageFrameTime() (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.count == 0 {
		return 0, false
	}
	return mean(f.dts[:f.count]), true
}

// mean averages the window from scratch on every call.
func mean(samples []float64) float64 {
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

// Frames returns the total number of frames recorded.
func (f *FrameTime) Frames() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

// Len returns how many samples are currently in the window.
func (f *FrameTime) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

// Reset drops all samples.
func (f *FrameTime) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.fps {
		f.fps[i], f.dts[i] = 0, 0
	}
	f.next, f.count, f.frames = 0, 0, 0
}

// Func adapts a function, such as an engine clock, to Source.
type Func func() (float64, bool)

// AverageFPS implements Source.
func (fn Func) AverageFPS() (float64, bool) {
	return fn()
}
