package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Steering defaults, in world units and radians per second.
const (
	DefaultLinearVelocity   = 48.0
	DefaultRotationVelocity = 6.0
	DefaultArriveThreshold  = 0.5
)

var (
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

// SteerResult reports what a Steer call did.
type SteerResult int

const (
	// SteerIdle means the ship was within the arrive threshold and untouched.
	SteerIdle SteerResult = iota
	// SteerMoving means the ship advanced a full step toward the target.
	SteerMoving
	// SteerArrived means the step reached the target and the ship snapped onto it.
	SteerArrived
)

func (r SteerResult) String() string {
	switch r {
	case SteerIdle:
		return "idle"
	case SteerMoving:
		return "moving"
	case SteerArrived:
		return "arrived"
	default:
		return "unknown"
	}
}

// SteeringParams holds the per-ship tuning for Steer.
type SteeringParams struct {
	LinearVelocity   float64
	RotationVelocity float64
	ArriveThreshold  float64
	Banking          BankingStrategy // nil disables banking
}

// DefaultSteeringParams returns the stock tuning with continuous banking.
func DefaultSteeringParams() SteeringParams {
	return SteeringParams{
		LinearVelocity:   DefaultLinearVelocity,
		RotationVelocity: DefaultRotationVelocity,
		ArriveThreshold:  DefaultArriveThreshold,
		Banking:          ContinuousBank{Gain: DefaultBankGain, MaxTilt: DefaultMaxTilt},
	}
}

// Banking defaults.
const (
	DefaultBankGain     = 8.0
	DefaultMaxTilt      = math.Pi / 6
	DefaultBankDeadZone = 0.01
)

// MovementState is the steerable part of a ship.
type MovementState struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	// PrevHeading is the desired heading of the previous frame, in [0, 2π).
	PrevHeading float64
	// Tilt is the bank angle applied on the last steering frame.
	Tilt float64
}

// NewMovementState returns a state at pos facing +Z.
func NewMovementState(pos mgl32.Vec3) MovementState {
	return MovementState{Position: pos, Rotation: mgl32.QuatIdent()}
}

// Steer moves state toward target for one frame of dt seconds: it turns the
// ship toward the target with a rate-limited slerp, banks it by the heading
// change since the previous frame, and advances it by LinearVelocity*dt,
// snapping onto the target instead of overshooting. A ship already on the
// target, or a frame with no elapsed time, is left untouched.
func Steer(state *MovementState, target mgl32.Vec3, dt float64, p SteeringParams) SteerResult {
	if dt <= 0 {
		return SteerIdle
	}
	direction := target.Sub(state.Position)
	distSq := float64(direction.Dot(direction))
	if distSq == 0 || distSq < p.ArriveThreshold*p.ArriveThreshold {
		return SteerIdle
	}

	heading := Heading3D(direction)
	tilt := 0.0
	if p.Banking != nil {
		tilt = p.Banking.Tilt(AngleDelta(state.PrevHeading, heading))
	}

	// Rolling by -tilt about the forward axis dips the wing on the inside
	// of the turn.
	desired := mgl32.QuatRotate(float32(heading), axisY).Mul(mgl32.QuatRotate(float32(-tilt), axisZ))
	amount := clamp(dt*p.RotationVelocity, 0, 1)
	state.Rotation = SlerpShortest(state.Rotation, desired, float32(amount))
	state.PrevHeading = NormalizeAngle(heading)
	state.Tilt = tilt

	distance := math.Sqrt(distSq)
	step := p.LinearVelocity * dt
	if step >= distance {
		state.Position = target
		return SteerArrived
	}

	state.Position = state.Position.Add(direction.Normalize().Mul(float32(step)))
	return SteerMoving
}

// SlerpShortest interpolates from a to b along the shorter of the two arcs.
func SlerpShortest(a, b mgl32.Quat, amount float32) mgl32.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl32.QuatSlerp(a, b, amount)
}
