package physics

import "fmt"

// BankingMode selects how a heading change becomes a tilt angle.
type BankingMode string

const (
	// BankContinuous clamps the scaled heading delta into ±MaxTilt.
	BankContinuous BankingMode = "continuous"
	// BankDiscrete picks one of -MaxTilt, 0, +MaxTilt using a dead zone.
	BankDiscrete BankingMode = "discrete"
)

// BankingStrategy turns the per-frame heading delta into a tilt angle in
// radians. A positive delta (heading increasing) yields a positive tilt.
type BankingStrategy interface {
	Tilt(headingDelta float64) float64
}

// ContinuousBank scales the delta by Gain and clamps it into
// [-MaxTilt, +MaxTilt].
type ContinuousBank struct {
	Gain    float64
	MaxTilt float64
}

// Tilt implements BankingStrategy.
func (b ContinuousBank) Tilt(headingDelta float64) float64 {
	return clamp(headingDelta*b.Gain, -b.MaxTilt, b.MaxTilt)
}

// DiscreteBank is the three-way left/level/right rule. Scaled deltas inside
// the dead zone keep the ship level.
type DiscreteBank struct {
	Gain     float64
	MaxTilt  float64
	DeadZone float64
}

// Tilt implements BankingStrategy.
func (b DiscreteBank) Tilt(headingDelta float64) float64 {
	scaled := headingDelta * b.Gain
	switch {
	case scaled > b.DeadZone:
		return b.MaxTilt
	case scaled < -b.DeadZone:
		return -b.MaxTilt
	default:
		return 0
	}
}

// NewBankingStrategy builds the strategy for mode.
func NewBankingStrategy(mode BankingMode, gain, maxTilt, deadZone float64) (BankingStrategy, error) {
	switch mode {
	case BankContinuous, "":
		return ContinuousBank{Gain: gain, MaxTilt: maxTilt}, nil
	case BankDiscrete:
		return DiscreteBank{Gain: gain, MaxTilt: maxTilt, DeadZone: deadZone}, nil
	default:
		return nil, fmt.Errorf("unknown banking mode %q", mode)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
