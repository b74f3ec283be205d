package physics

import (
	"math"
	"testing"
)

func TestContinuousBank_Clamped(t *testing.T) {
	bank := ContinuousBank{Gain: DefaultBankGain, MaxTilt: DefaultMaxTilt}

	for delta := -math.Pi; delta <= math.Pi; delta += 0.001 {
		tilt := bank.Tilt(delta)
		if tilt < -bank.MaxTilt || tilt > bank.MaxTilt {
			t.Fatalf("Tilt(%v) = %v, outside ±%v", delta, tilt, bank.MaxTilt)
		}
	}
}

func TestContinuousBank_Values(t *testing.T) {
	bank := ContinuousBank{Gain: 2, MaxTilt: 0.5}

	tests := []struct {
		name     string
		delta    float64
		expected float64
	}{
		{"level", 0, 0},
		{"proportional_left", 0.1, 0.2},
		{"proportional_right", -0.1, -0.2},
		{"clamped_left", 1, 0.5},
		{"clamped_right", -1, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bank.Tilt(tt.delta); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Tilt(%v) = %v, expected %v", tt.delta, got, tt.expected)
			}
		})
	}
}

func TestDiscreteBank_ThreeValues(t *testing.T) {
	bank := DiscreteBank{Gain: DefaultBankGain, MaxTilt: DefaultMaxTilt, DeadZone: DefaultBankDeadZone}

	seen := map[float64]bool{}
	for delta := -math.Pi; delta <= math.Pi; delta += 0.0005 {
		tilt := bank.Tilt(delta)
		if tilt != -bank.MaxTilt && tilt != 0 && tilt != bank.MaxTilt {
			t.Fatalf("Tilt(%v) = %v, not one of the three levels", delta, tilt)
		}
		seen[tilt] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all three tilt levels, saw %v", seen)
	}
}

func TestDiscreteBank_DeadZone(t *testing.T) {
	bank := DiscreteBank{Gain: 1, MaxTilt: 0.4, DeadZone: 0.05}

	tests := []struct {
		name     string
		delta    float64
		expected float64
	}{
		{"inside_dead_zone", 0.04, 0},
		{"inside_dead_zone_negative", -0.04, 0},
		{"on_boundary", 0.05, 0},
		{"left", 0.06, 0.4},
		{"right", -0.06, -0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bank.Tilt(tt.delta); got != tt.expected {
				t.Errorf("Tilt(%v) = %v, expected %v", tt.delta, got, tt.expected)
			}
		})
	}
}

func TestNewBankingStrategy(t *testing.T) {
	tests := []struct {
		name    string
		mode    BankingMode
		want    BankingStrategy
		wantErr bool
	}{
		{"continuous", BankContinuous, ContinuousBank{Gain: 1, MaxTilt: 2}, false},
		{"empty_defaults_to_continuous", "", ContinuousBank{Gain: 1, MaxTilt: 2}, false},
		{"discrete", BankDiscrete, DiscreteBank{Gain: 1, MaxTilt: 2, DeadZone: 3}, false},
		{"unknown", "wobble", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewBankingStrategy(tt.mode, 1, 2, 3)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBankingStrategy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NewBankingStrategy() = %#v, expected %#v", got, tt.want)
			}
		})
	}
}
