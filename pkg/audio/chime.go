// pkg/audio/chime.go
package audio

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-glide/pkg/event"
	"github.com/opd-ai/go-glide/pkg/logging"
)

// SampleRate is the output rate of the speaker.
const SampleRate = beep.SampleRate(44100)

// Arrival chime notes: E5 then A5.
const (
	noteLow      = 659.25
	noteHigh     = 880.0
	noteDuration = 90 * time.Millisecond
	noteDecay    = 18.0
)

// DefaultVolume is the chime gain in [0, 1].
const DefaultVolume = 0.25

// decay fades a streamer out exponentially.
type decay struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	rateK    float64
	pos      int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.pos) / float64(d.rate)
		gain := math.Exp(-d.rateK * t)
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

func volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func note(rate beep.SampleRate, freq float64) (beep.Streamer, error) {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.2f Hz: %w", freq, err)
	}
	return &decay{
		streamer: beep.Take(rate.N(noteDuration), tone),
		rate:     rate,
		rateK:    noteDecay,
	}, nil
}

// ArrivalStreamer builds the two-note arrival chime at vol.
func ArrivalStreamer(rate beep.SampleRate, vol float64) (beep.Streamer, error) {
	low, err := note(rate, noteLow)
	if err != nil {
		return nil, err
	}
	high, err := note(rate, noteHigh)
	if err != nil {
		return nil, err
	}
	return volume(beep.Seq(low, high), vol), nil
}

// Chime plays the arrival sound on the speaker.
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      int
	sub         *event.Subscription
	logger      *logging.Logger
}

// NewChime creates a chime. It stays silent until Initialize succeeds.
func NewChime(logger *logging.Logger) *Chime {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Chime{
		mixer:  &beep.Mixer{},
		volume: DefaultVolume,
		logger: logger,
	}
}

// Initialize opens the speaker.
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// SetVolume sets the gain used for subsequent chimes.
func (c *Chime) SetVolume(v float64) {
	c.mu.Lock()
	c.volume = v
	c.mu.Unlock()
}

// Play queues one chime. It reports false when the speaker is not open.
func (c *Chime) Play() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return false
	}

	s, err := ArrivalStreamer(SampleRate, c.volume)
	if err != nil {
		c.logger.Warn(context.Background(), "arrival chime unavailable", "error", err)
		return false
	}

	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
	c.played++
	return true
}

// Played returns how many chimes were queued.
func (c *Chime) Played() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.played
}

// Attach plays the chime on every ship arrival published on bus.
func (c *Chime) Attach(bus *event.Bus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub != nil {
		c.sub.Cancel()
	}
	c.sub = bus.Subscribe(event.ShipArrived, func(event.Event) { c.Play() })
}

// Close detaches from the bus and shuts the speaker.
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub != nil {
		c.sub.Cancel()
		c.sub = nil
	}
	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
}
