// pkg/overlay/timer.go
package overlay

import "time"

// RepeatingTimer fires every Duration of accumulated tick time.
type RepeatingTimer struct {
	Duration time.Duration

	elapsed       time.Duration
	timesFinished int
}

// NewRepeatingTimer creates a timer with the given period.
func NewRepeatingTimer(d time.Duration) *RepeatingTimer {
	return &RepeatingTimer{Duration: d}
}

// Tick advances the timer by dt and reports whether at least one period
// completed during this tick. A long tick spanning several periods fires
// once; TimesFinished reports how many periods it covered.
func (t *RepeatingTimer) Tick(dt time.Duration) bool {
	t.timesFinished = 0
	if t.Duration <= 0 || dt <= 0 {
		return false
	}

	t.elapsed += dt
	if t.elapsed < t.Duration {
		return false
	}

	t.timesFinished = int(t.elapsed / t.Duration)
	t.elapsed %= t.Duration
	return true
}

// TimesFinished returns the number of periods completed by the last Tick.
func (t *RepeatingTimer) TimesFinished() int {
	return t.timesFinished
}

// Elapsed returns the time accumulated toward the next period.
func (t *RepeatingTimer) Elapsed() time.Duration {
	return t.elapsed
}

// Reset clears the accumulated time.
func (t *RepeatingTimer) Reset() {
	t.elapsed = 0
	t.timesFinished = 0
}
