package otg

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"
)

// ControlInterface selects which kinematic level is controlled directly.
type ControlInterface int

// Control interfaces.
const (
	// ControlInterfacePosition controls the full kinematic state.
	ControlInterfacePosition ControlInterface = iota
	// ControlInterfaceVelocity controls velocity directly, e.g. for visual
	// servoing or stop motions. Position fields are ignored.
	ControlInterfaceVelocity
)

// Synchronization selects how multiple DoFs are coordinated.
type Synchronization int

// Synchronization strategies.
const (
	// SynchronizationTime makes all DoFs reach their target at the same time.
	SynchronizationTime Synchronization = iota
	// SynchronizationTimeIfNecessary synchronizes only when required by other
	// constraints; DoFs with zero target velocity and acceleration keep their
	// time-optimal profile.
	SynchronizationTimeIfNecessary
	// SynchronizationPhase requires all DoFs to follow the same time scaling
	// of one canonical profile (straight-line motion in joint space) and
	// fails when the inputs are not collinear.
	SynchronizationPhase
	// SynchronizationPhaseOrTime attempts phase synchronization and falls
	// back to time synchronization when the inputs are not collinear.
	SynchronizationPhaseOrTime
	// SynchronizationNone runs every DoF on its own time-optimal profile.
	SynchronizationNone
)

// DurationDiscretization controls whether trajectory durations are restricted
// to multiples of the control cycle.
type DurationDiscretization int

// Duration discretization modes.
const (
	// DiscretizationContinuous allows any trajectory duration.
	DiscretizationContinuous DurationDiscretization = iota
	// DiscretizationDiscrete rounds the duration up to the nearest multiple
	// of the control cycle, so the target state is reached exactly on a tick.
	DiscretizationDiscrete
)

// Input holds the current state, target state, kinematic limits, and settings
// for a trajectory calculation. It is caller owned and reused across ticks.
type Input struct {
	// DoFs is the number of degrees of freedom.
	DoFs int

	ControlInterface       ControlInterface
	Synchronization        Synchronization
	DurationDiscretization DurationDiscretization

	CurrentPosition     []float64
	CurrentVelocity     []float64
	CurrentAcceleration []float64

	TargetPosition     []float64
	TargetVelocity     []float64
	TargetAcceleration []float64

	MaxVelocity     []float64
	MaxAcceleration []float64
	MaxJerk         []float64

	// MinVelocity and MinAcceleration are optional; when nil, the negated
	// maximum limits apply.
	MinVelocity     []float64
	MinAcceleration []float64

	// Enabled excludes a DoF from planning when false; the DoF stays at its
	// current state.
	Enabled []bool

	// PerDoFControlInterface and PerDoFSynchronization override the global
	// selectors per DoF when non-nil.
	PerDoFControlInterface []ControlInterface
	PerDoFSynchronization  []Synchronization

	// MinimumDuration stretches the trajectory to at least this duration.
	// Zero means no minimum.
	MinimumDuration float64

	// InterruptCalculationDuration is accepted for interface compatibility
	// and ignored; the calculation is never interrupted.
	InterruptCalculationDuration float64

	// IntermediatePositions is a documented extension point for waypoint
	// following. The calculator plans state-to-state only and validation
	// rejects non-empty waypoint lists.
	IntermediatePositions [][]float64

	// PerSectionMinDuration holds an optional minimum duration per section;
	// like IntermediatePositions it is part of the waypoint extension point.
	PerSectionMinDuration []float64
}

// NewInput returns an input for the given number of degrees of freedom with
// all states zeroed, all DoFs enabled, and no limits set.
func NewInput(dofs int) *Input {
	return &Input{
		DoFs:                dofs,
		CurrentPosition:     make([]float64, dofs),
		CurrentVelocity:     make([]float64, dofs),
		CurrentAcceleration: make([]float64, dofs),
		TargetPosition:      make([]float64, dofs),
		TargetVelocity:      make([]float64, dofs),
		TargetAcceleration:  make([]float64, dofs),
		MaxVelocity:         make([]float64, dofs),
		MaxAcceleration:     make([]float64, dofs),
		MaxJerk:             make([]float64, dofs),
		Enabled:             newEnabled(dofs),
	}
}

func newEnabled(dofs int) []bool {
	enabled := make([]bool, dofs)
	for i := range enabled {
		enabled[i] = true
	}
	return enabled
}

func (in *Input) minVelocityAt(dof int) float64 {
	if in.MinVelocity != nil {
		return in.MinVelocity[dof]
	}
	return -in.MaxVelocity[dof]
}

func (in *Input) minAccelerationAt(dof int) float64 {
	if in.MinAcceleration != nil {
		return in.MinAcceleration[dof]
	}
	return -in.MaxAcceleration[dof]
}

func (in *Input) controlInterfaceAt(dof int) ControlInterface {
	if in.PerDoFControlInterface != nil && dof < len(in.PerDoFControlInterface) {
		return in.PerDoFControlInterface[dof]
	}
	return in.ControlInterface
}

func (in *Input) synchronizationAt(dof int) Synchronization {
	if in.PerDoFSynchronization != nil && dof < len(in.PerDoFSynchronization) {
		return in.PerDoFSynchronization[dof]
	}
	return in.Synchronization
}

func boolsEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func optionalFloatsEqual(a, b []float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || floats.Equal(a, b)
}

// Equal reports whether two inputs describe the same planning problem. The
// update loop re-plans whenever the incoming input differs from the previous
// tick's.
func (in *Input) Equal(other *Input) bool {
	if other == nil {
		return false
	}
	if !floats.Equal(in.CurrentPosition, other.CurrentPosition) ||
		!floats.Equal(in.CurrentVelocity, other.CurrentVelocity) ||
		!floats.Equal(in.CurrentAcceleration, other.CurrentAcceleration) ||
		!floats.Equal(in.TargetPosition, other.TargetPosition) ||
		!floats.Equal(in.TargetVelocity, other.TargetVelocity) ||
		!floats.Equal(in.TargetAcceleration, other.TargetAcceleration) ||
		!floats.Equal(in.MaxVelocity, other.MaxVelocity) ||
		!floats.Equal(in.MaxAcceleration, other.MaxAcceleration) ||
		!floats.Equal(in.MaxJerk, other.MaxJerk) {
		return false
	}
	if !optionalFloatsEqual(in.MinVelocity, other.MinVelocity) ||
		!optionalFloatsEqual(in.MinAcceleration, other.MinAcceleration) {
		return false
	}
	if !boolsEqual(in.Enabled, other.Enabled) {
		return false
	}
	if in.ControlInterface != other.ControlInterface ||
		in.Synchronization != other.Synchronization ||
		in.DurationDiscretization != other.DurationDiscretization ||
		in.MinimumDuration != other.MinimumDuration {
		return false
	}
	if (in.PerDoFControlInterface == nil) != (other.PerDoFControlInterface == nil) ||
		(in.PerDoFSynchronization == nil) != (other.PerDoFSynchronization == nil) {
		return false
	}
	if in.PerDoFControlInterface != nil {
		if len(in.PerDoFControlInterface) != len(other.PerDoFControlInterface) {
			return false
		}
		for i := range in.PerDoFControlInterface {
			if in.PerDoFControlInterface[i] != other.PerDoFControlInterface[i] {
				return false
			}
		}
	}
	if in.PerDoFSynchronization != nil {
		if len(in.PerDoFSynchronization) != len(other.PerDoFSynchronization) {
			return false
		}
		for i := range in.PerDoFSynchronization {
			if in.PerDoFSynchronization[i] != other.PerDoFSynchronization[i] {
				return false
			}
		}
	}
	return true
}

// CopyFrom deep-copies another input of the same width into this one.
func (in *Input) CopyFrom(other *Input) {
	in.DoFs = other.DoFs
	in.ControlInterface = other.ControlInterface
	in.Synchronization = other.Synchronization
	in.DurationDiscretization = other.DurationDiscretization
	in.MinimumDuration = other.MinimumDuration
	in.InterruptCalculationDuration = other.InterruptCalculationDuration

	copy(in.CurrentPosition, other.CurrentPosition)
	copy(in.CurrentVelocity, other.CurrentVelocity)
	copy(in.CurrentAcceleration, other.CurrentAcceleration)
	copy(in.TargetPosition, other.TargetPosition)
	copy(in.TargetVelocity, other.TargetVelocity)
	copy(in.TargetAcceleration, other.TargetAcceleration)
	copy(in.MaxVelocity, other.MaxVelocity)
	copy(in.MaxAcceleration, other.MaxAcceleration)
	copy(in.MaxJerk, other.MaxJerk)
	copy(in.Enabled, other.Enabled)

	in.MinVelocity = copyOptional(in.MinVelocity, other.MinVelocity)
	in.MinAcceleration = copyOptional(in.MinAcceleration, other.MinAcceleration)

	in.PerDoFControlInterface = nil
	if other.PerDoFControlInterface != nil {
		in.PerDoFControlInterface = append([]ControlInterface(nil), other.PerDoFControlInterface...)
	}
	in.PerDoFSynchronization = nil
	if other.PerDoFSynchronization != nil {
		in.PerDoFSynchronization = append([]Synchronization(nil), other.PerDoFSynchronization...)
	}
}

func copyOptional(dst, src []float64) []float64 {
	if src == nil {
		return nil
	}
	if len(dst) != len(src) {
		dst = make([]float64, len(src))
	}
	copy(dst, src)
	return dst
}

func vAtAZero(v0, a0, j float64) float64 {
	return v0 + (a0*a0)/(2.0*j)
}

func checkFinite(name string, dof int, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.Errorf("%s %v of DoF %d should be a valid finite number", name, v, dof)
	}
	return nil
}

func (in *Input) validateLengths() error {
	for _, f := range []struct {
		name string
		n    int
	}{
		{"current position", len(in.CurrentPosition)},
		{"current velocity", len(in.CurrentVelocity)},
		{"current acceleration", len(in.CurrentAcceleration)},
		{"target position", len(in.TargetPosition)},
		{"target velocity", len(in.TargetVelocity)},
		{"target acceleration", len(in.TargetAcceleration)},
		{"max velocity", len(in.MaxVelocity)},
		{"max acceleration", len(in.MaxAcceleration)},
		{"max jerk", len(in.MaxJerk)},
		{"enabled", len(in.Enabled)},
	} {
		if f.n != in.DoFs {
			return errors.Errorf("%s vector has length %d but should have length %d", f.name, f.n, in.DoFs)
		}
	}
	if in.MinVelocity != nil && len(in.MinVelocity) != in.DoFs {
		return errors.Errorf("min velocity vector has length %d but should have length %d", len(in.MinVelocity), in.DoFs)
	}
	if in.MinAcceleration != nil && len(in.MinAcceleration) != in.DoFs {
		return errors.Errorf("min acceleration vector has length %d but should have length %d", len(in.MinAcceleration), in.DoFs)
	}
	if len(in.IntermediatePositions) > 0 {
		return errors.New("intermediate waypoints are a documented extension point and are not supported by the state-to-state calculator")
	}
	return nil
}

func (in *Input) validateDoF(dof int, checkCurrent, checkTarget bool) error {
	jMax := in.MaxJerk[dof]
	if math.IsNaN(jMax) || math.IsInf(jMax, 0) || jMax < 0.0 {
		return errors.Errorf("maximum jerk limit %v of DoF %d should be a finite number larger than or equal to zero", jMax, dof)
	}

	aMax := in.MaxAcceleration[dof]
	if math.IsNaN(aMax) || math.IsInf(aMax, 0) || aMax < 0.0 {
		return errors.Errorf("maximum acceleration limit %v of DoF %d should be a finite number larger than or equal to zero", aMax, dof)
	}

	aMin := in.minAccelerationAt(dof)
	if math.IsNaN(aMin) || math.IsInf(aMin, 0) || aMin > 0.0 {
		return errors.Errorf("minimum acceleration limit %v of DoF %d should be a finite number smaller than or equal to zero", aMin, dof)
	}

	a0 := in.CurrentAcceleration[dof]
	if err := checkFinite("current acceleration", dof, a0); err != nil {
		return err
	}
	af := in.TargetAcceleration[dof]
	if err := checkFinite("target acceleration", dof, af); err != nil {
		return err
	}

	if checkCurrent {
		if a0 > aMax {
			return errors.Errorf("current acceleration %v of DoF %d exceeds its maximum acceleration limit %v", a0, dof, aMax)
		}
		if a0 < aMin {
			return errors.Errorf("current acceleration %v of DoF %d undercuts its minimum acceleration limit %v", a0, dof, aMin)
		}
	}
	if checkTarget {
		if af > aMax {
			return errors.Errorf("target acceleration %v of DoF %d exceeds its maximum acceleration limit %v", af, dof, aMax)
		}
		if af < aMin {
			return errors.Errorf("target acceleration %v of DoF %d undercuts its minimum acceleration limit %v", af, dof, aMin)
		}
	}

	v0 := in.CurrentVelocity[dof]
	if err := checkFinite("current velocity", dof, v0); err != nil {
		return err
	}
	vf := in.TargetVelocity[dof]
	if err := checkFinite("target velocity", dof, vf); err != nil {
		return err
	}

	if in.controlInterfaceAt(dof) != ControlInterfacePosition {
		return nil
	}

	if err := checkFinite("current position", dof, in.CurrentPosition[dof]); err != nil {
		return err
	}
	if err := checkFinite("target position", dof, in.TargetPosition[dof]); err != nil {
		return err
	}

	vMax := in.MaxVelocity[dof]
	if math.IsNaN(vMax) || math.IsInf(vMax, 0) || vMax < 0.0 {
		return errors.Errorf("maximum velocity limit %v of DoF %d should be a finite number larger than or equal to zero", vMax, dof)
	}

	vMin := in.minVelocityAt(dof)
	if math.IsNaN(vMin) || math.IsInf(vMin, 0) || vMin > 0.0 {
		return errors.Errorf("minimum velocity limit %v of DoF %d should be a finite number smaller than or equal to zero", vMin, dof)
	}

	if checkCurrent {
		if v0 > vMax {
			return errors.Errorf("current velocity %v of DoF %d exceeds its maximum velocity limit %v", v0, dof, vMax)
		}
		if v0 < vMin {
			return errors.Errorf("current velocity %v of DoF %d undercuts its minimum velocity limit %v", v0, dof, vMin)
		}
		// Future feasibility: with the acceleration ramped to zero at the
		// jerk limit, the velocity must still be within bounds.
		if a0 > 0.0 && jMax > 0.0 && vAtAZero(v0, a0, jMax) > vMax {
			return errors.Errorf("DoF %d will inevitably reach a velocity %v from the current kinematic state that will exceed its maximum velocity limit %v", dof, vAtAZero(v0, a0, jMax), vMax)
		}
		if a0 < 0.0 && jMax > 0.0 && vAtAZero(v0, a0, -jMax) < vMin {
			return errors.Errorf("DoF %d will inevitably reach a velocity %v from the current kinematic state that will undercut its minimum velocity limit %v", dof, vAtAZero(v0, a0, -jMax), vMin)
		}
	}
	if checkTarget {
		if vf > vMax {
			return errors.Errorf("target velocity %v of DoF %d exceeds its maximum velocity limit %v", vf, dof, vMax)
		}
		if vf < vMin {
			return errors.Errorf("target velocity %v of DoF %d undercuts its minimum velocity limit %v", vf, dof, vMin)
		}
		if af < 0.0 && jMax > 0.0 && vAtAZero(vf, af, jMax) > vMax {
			return errors.Errorf("DoF %d will inevitably have reached a velocity %v from the target kinematic state that will exceed its maximum velocity limit %v", dof, vAtAZero(vf, af, jMax), vMax)
		}
		if af > 0.0 && jMax > 0.0 && vAtAZero(vf, af, -jMax) < vMin {
			return errors.Errorf("DoF %d will inevitably have reached a velocity %v from the target kinematic state that will undercut its minimum velocity limit %v", dof, vAtAZero(vf, af, -jMax), vMin)
		}
	}
	return nil
}

// Validate checks the input for trajectory calculation and returns the first
// fault found, or nil.
func (in *Input) Validate(checkCurrentStateWithinLimits, checkTargetStateWithinLimits bool) error {
	if err := in.validateLengths(); err != nil {
		return err
	}
	for dof := 0; dof < in.DoFs; dof++ {
		if err := in.validateDoF(dof, checkCurrentStateWithinLimits, checkTargetStateWithinLimits); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAll checks the input and reports every per-DoF fault, combined.
func (in *Input) ValidateAll(checkCurrentStateWithinLimits, checkTargetStateWithinLimits bool) error {
	if err := in.validateLengths(); err != nil {
		return err
	}
	var all error
	for dof := 0; dof < in.DoFs; dof++ {
		all = multierr.Append(all, in.validateDoF(dof, checkCurrentStateWithinLimits, checkTargetStateWithinLimits))
	}
	return all
}
