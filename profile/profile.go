// Package profile implements the seven-segment constant-jerk motion profile
// for a single degree of freedom, including its feasibility checks, brake
// pre-profiles, and the blocked-interval bookkeeping used for multi-DoF
// synchronization.
package profile

import (
	"fmt"
	"math"

	"go.viam.com/otg/roots"
)

const (
	vEps = 1e-12
	aEps = 1e-12
	jEps = 1e-12

	pPrecision = 1e-8
	vPrecision = 1e-8
	aPrecision = 1e-10

	tMax = 1e12
)

// ReachedLimits classifies which kinematic limits a profile touches.
type ReachedLimits int

// The canonical limit cases of a seven-segment profile.
const (
	LimitsAcc0Acc1Vel ReachedLimits = iota
	LimitsVel
	LimitsAcc0
	LimitsAcc1
	LimitsAcc0Acc1
	LimitsAcc0Vel
	LimitsAcc1Vel
	LimitsNone
)

// Direction is the sign of the profile's first jerk pulse.
type Direction int

// Profile directions.
const (
	DirectionUp Direction = iota
	DirectionDown
)

// ControlSigns is the jerk sign pattern over the seven segments.
type ControlSigns int

// UDDU is up-down-down-up, UDUD is up-down-up-down.
const (
	SignsUDDU ControlSigns = iota
	SignsUDUD
)

// Bound holds the extreme positions of a profile and the times they occur.
type Bound struct {
	Min  float64
	Max  float64
	TMin float64
	TMax float64
}

// Integrate advances a kinematic state (p0, v0, a0) under constant jerk j for
// a duration t.
func Integrate(t, p0, v0, a0, j float64) (p, v, a float64) {
	return p0 + t*(v0+t*(a0/2.0+t*j/6.0)),
		v0 + t*(a0+t*j/2.0),
		a0 + t*j
}

// Profile is the state profile for position, velocity, acceleration and jerk
// of a single DoF. The kinematic state at the seven segment boundaries is
// computed once by the check methods and cached for O(1) sampling.
type Profile struct {
	T    [7]float64
	TSum [7]float64
	J    [7]float64
	A    [8]float64
	V    [8]float64
	P    [8]float64

	// Brake and Accel are the pre- and post-profiles surrounding the seven
	// segments. Accel stays empty in state-to-state trajectories.
	Brake BrakeProfile
	Accel BrakeProfile

	// Target (final) kinematic state.
	Pf float64
	Vf float64
	Af float64

	Limits    ReachedLimits
	Direction Direction
	Signs     ControlSigns
}

// SetBoundary sets the initial and target kinematic state.
func (p *Profile) SetBoundary(p0, v0, a0, pf, vf, af float64) {
	p.P[0] = p0
	p.V[0] = v0
	p.A[0] = a0
	p.Pf = pf
	p.Vf = vf
	p.Af = af
}

// SetBoundaryForVelocity sets the boundary state for the velocity interface,
// which has no target position.
func (p *Profile) SetBoundaryForVelocity(p0, v0, a0, vf, af float64) {
	p.P[0] = p0
	p.V[0] = v0
	p.A[0] = a0
	p.Vf = vf
	p.Af = af
}

// SetBoundaryFromProfile copies the boundary state and brake profiles of
// another profile.
func (p *Profile) SetBoundaryFromProfile(other *Profile) {
	p.A[0] = other.A[0]
	p.V[0] = other.V[0]
	p.P[0] = other.P[0]
	p.Af = other.Af
	p.Vf = other.Vf
	p.Pf = other.Pf
	p.Brake = other.Brake
	p.Accel = other.Accel
}

func (p *Profile) sumTimes() bool {
	if p.T[0] < 0.0 {
		return false
	}
	p.TSum[0] = p.T[0]
	for i := 0; i < 6; i++ {
		if p.T[i+1] < 0.0 {
			return false
		}
		p.TSum[i+1] = p.TSum[i] + p.T[i+1]
	}
	return true
}

// CheckPosition verifies a candidate segment timing against the target state
// and the velocity and acceleration limits, filling in the cached boundary
// states on the way. setLimits snaps the plateau accelerations to their
// analytic values for the given limit case.
func (p *Profile) CheckPosition(
	signs ControlSigns,
	limits ReachedLimits,
	setLimits bool,
	jf, vMax, vMin, aMax, aMin float64,
) bool {
	if !p.sumTimes() {
		return false
	}

	switch limits {
	case LimitsAcc0Acc1Vel, LimitsAcc0Vel, LimitsAcc1Vel, LimitsVel:
		if p.T[3] < roots.Eps {
			return false
		}
	}
	switch limits {
	case LimitsAcc0, LimitsAcc0Acc1:
		if p.T[1] < roots.Eps {
			return false
		}
	}
	switch limits {
	case LimitsAcc1, LimitsAcc0Acc1:
		if p.T[5] < roots.Eps {
			return false
		}
	}

	if p.TSum[6] > tMax {
		return false
	}

	p.setJerkPattern(signs, jf)

	if vMax > 0.0 {
		p.Direction = DirectionUp
	} else {
		p.Direction = DirectionDown
	}

	var vUppLim, vLowLim float64
	if p.Direction == DirectionUp {
		vUppLim = vMax + vEps
		vLowLim = vMin - vEps
	} else {
		vUppLim = vMin + vEps
		vLowLim = vMax - vEps
	}

	for i := 0; i < 7; i++ {
		p.A[i+1] = p.A[i] + p.T[i]*p.J[i]
		p.V[i+1] = p.V[i] + p.T[i]*(p.A[i]+p.T[i]*p.J[i]/2.0)
		p.P[i+1] = p.P[i] + p.T[i]*(p.V[i]+p.T[i]*(p.A[i]/2.0+p.T[i]*p.J[i]/6.0))

		if i == 2 {
			switch limits {
			case LimitsAcc0Acc1Vel, LimitsAcc0Acc1, LimitsAcc0Vel, LimitsAcc1Vel, LimitsVel:
				p.A[3] = 0.0
			}
		}

		if setLimits {
			switch limits {
			case LimitsAcc1:
				if i == 2 {
					p.A[3] = aMin
				}
			case LimitsAcc0Acc1:
				if i == 0 {
					p.A[1] = aMax
				}
				if i == 4 {
					p.A[5] = aMin
				}
			}
		}

		// Velocity extremum inside a segment where the acceleration crosses
		// zero.
		if i > 1 && p.A[i+1]*p.A[i] < -roots.Eps {
			vAZero := p.V[i] - (p.A[i]*p.A[i])/(2.0*p.J[i])
			if vAZero > vUppLim || vAZero < vLowLim {
				return false
			}
		}
	}

	p.Signs = signs
	p.Limits = limits

	var aUppLim, aLowLim float64
	if p.Direction == DirectionUp {
		aUppLim = aMax + aEps
		aLowLim = aMin - aEps
	} else {
		aUppLim = aMin + aEps
		aLowLim = aMax - aEps
	}

	// Positive comparisons so that NaN timings are rejected.
	ok := math.Abs(p.P[7]-p.Pf) < pPrecision &&
		math.Abs(p.V[7]-p.Vf) < vPrecision &&
		math.Abs(p.A[7]-p.Af) < aPrecision
	for _, i := range [3]int{1, 3, 5} {
		ok = ok && p.A[i] >= aLowLim && p.A[i] <= aUppLim
	}
	for i := 3; i <= 6; i++ {
		ok = ok && p.V[i] <= vUppLim && p.V[i] >= vLowLim
	}
	return ok
}

func (p *Profile) setJerkPattern(signs ControlSigns, jf float64) {
	jerkAt := func(idx int, j float64) float64 {
		if p.T[idx] > 0.0 {
			return j
		}
		return 0.0
	}
	if signs == SignsUDDU {
		p.J = [7]float64{jerkAt(0, jf), 0.0, jerkAt(2, -jf), 0.0, jerkAt(4, -jf), 0.0, jerkAt(6, jf)}
	} else {
		p.J = [7]float64{jerkAt(0, jf), 0.0, jerkAt(2, -jf), 0.0, jerkAt(4, jf), 0.0, jerkAt(6, -jf)}
	}
}

// CheckPositionTimed is CheckPosition for profiles whose timing already
// encodes the prescribed total duration.
func (p *Profile) CheckPositionTimed(
	signs ControlSigns,
	limits ReachedLimits,
	jf, vMax, vMin, aMax, aMin float64,
) bool {
	// Total time does not need to be checked as every profile has a
	// tf - ... equation for its last degree of freedom.
	return p.CheckPosition(signs, limits, false, jf, vMax, vMin, aMax, aMin)
}

// CheckPositionTimedFull additionally validates a solved jerk value against
// the jerk limit; used when the jerk itself is an unknown of the template.
func (p *Profile) CheckPositionTimedFull(
	signs ControlSigns,
	limits ReachedLimits,
	jf, vMax, vMin, aMax, aMin, jMax float64,
) bool {
	return math.Abs(jf) < math.Abs(jMax)+jEps &&
		p.CheckPositionTimed(signs, limits, jf, vMax, vMin, aMax, aMin)
}

// CheckVelocity verifies a candidate timing for the velocity interface, which
// has no position target and no velocity limit.
func (p *Profile) CheckVelocity(
	signs ControlSigns,
	limits ReachedLimits,
	jf, aMax, aMin float64,
) bool {
	if !p.sumTimes() {
		return false
	}

	if limits == LimitsAcc0 && p.T[1] < roots.Eps {
		return false
	}
	if p.TSum[6] > tMax {
		return false
	}

	if signs == SignsUDDU {
		p.setJerkPattern(SignsUDDU, jf)
	} else {
		jerkAt := func(idx int, j float64) float64 {
			if p.T[idx] > 0.0 {
				return j
			}
			return 0.0
		}
		p.J = [7]float64{jerkAt(0, jf), 0.0, jerkAt(2, -jf), 0.0, jerkAt(4, jf), 0.0, jerkAt(6, jf)}
	}

	for i := 0; i < 7; i++ {
		p.A[i+1] = p.A[i] + p.T[i]*p.J[i]
		p.V[i+1] = p.V[i] + p.T[i]*(p.A[i]+p.T[i]*p.J[i]/2.0)
		p.P[i+1] = p.P[i] + p.T[i]*(p.V[i]+p.T[i]*(p.A[i]/2.0+p.T[i]*p.J[i]/6.0))
	}

	p.Signs = signs
	p.Limits = limits

	if aMax > 0.0 {
		p.Direction = DirectionUp
	} else {
		p.Direction = DirectionDown
	}
	var aUppLim, aLowLim float64
	if p.Direction == DirectionUp {
		aUppLim = aMax + aEps
		aLowLim = aMin - aEps
	} else {
		aUppLim = aMin + aEps
		aLowLim = aMax - aEps
	}

	// Positive comparisons so that NaN timings are rejected.
	ok := math.Abs(p.V[7]-p.Vf) < vPrecision &&
		math.Abs(p.A[7]-p.Af) < aPrecision
	for _, i := range [3]int{1, 3, 5} {
		ok = ok && p.A[i] >= aLowLim && p.A[i] <= aUppLim
	}
	return ok
}

// CheckVelocityTimed is CheckVelocity for duration-constrained timing.
func (p *Profile) CheckVelocityTimed(
	tf float64,
	signs ControlSigns,
	limits ReachedLimits,
	jf, aMax, aMin float64,
) bool {
	return p.CheckVelocity(signs, limits, jf, aMax, aMin)
}

// CheckVelocityTimedFull additionally validates a solved jerk against the
// jerk limit.
func (p *Profile) CheckVelocityTimedFull(
	tf float64,
	signs ControlSigns,
	limits ReachedLimits,
	jf, aMax, aMin, jMax float64,
) bool {
	return math.Abs(jf) < math.Abs(jMax)+jEps &&
		p.CheckVelocityTimed(tf, signs, limits, jf, aMax, aMin)
}

func checkPositionExtremum(tExt, tSum, t, p, v, a, j float64, ext *Bound) {
	if 0.0 < tExt && tExt < t {
		pExt, _, aExt := Integrate(tExt, p, v, a, j)
		if aExt > 0.0 && pExt < ext.Min {
			ext.Min = pExt
			ext.TMin = tSum + tExt
		} else if aExt < 0.0 && pExt > ext.Max {
			ext.Max = pExt
			ext.TMax = tSum + tExt
		}
	}
}

func checkStepForPositionExtremum(tSum, t, p, v, a, j float64, ext *Bound) {
	if p < ext.Min {
		ext.Min = p
		ext.TMin = tSum
	}
	if p > ext.Max {
		ext.Max = p
		ext.TMax = tSum
	}

	if j != 0.0 {
		d := a*a - 2.0*j*v
		if math.Abs(d) < roots.Eps {
			checkPositionExtremum(-a/j, tSum, t, p, v, a, j, ext)
		} else if d > 0.0 {
			dSqrt := math.Sqrt(d)
			checkPositionExtremum((-a-dSqrt)/j, tSum, t, p, v, a, j, ext)
			checkPositionExtremum((-a+dSqrt)/j, tSum, t, p, v, a, j, ext)
		}
	}
}

// PositionExtrema returns the extreme positions over the whole profile,
// including the brake pre-profile, evaluated at segment boundaries and at the
// zeros of v inside each segment.
func (p *Profile) PositionExtrema() Bound {
	extrema := Bound{
		Min: math.Inf(1),
		Max: math.Inf(-1),
	}

	if p.Brake.Duration > 0.0 && p.Brake.T[0] > 0.0 {
		checkStepForPositionExtremum(0.0, p.Brake.T[0], p.Brake.P[0], p.Brake.V[0], p.Brake.A[0], p.Brake.J[0], &extrema)
		if p.Brake.T[1] > 0.0 {
			checkStepForPositionExtremum(p.Brake.T[0], p.Brake.T[1], p.Brake.P[1], p.Brake.V[1], p.Brake.A[1], p.Brake.J[1], &extrema)
		}
	}

	tCurrentSum := 0.0
	for i := 0; i < 7; i++ {
		if i > 0 {
			tCurrentSum = p.TSum[i-1]
		}
		checkStepForPositionExtremum(tCurrentSum+p.Brake.Duration, p.T[i], p.P[i], p.V[i], p.A[i], p.J[i], &extrema)
	}

	if p.Pf < extrema.Min {
		extrema.Min = p.Pf
		extrema.TMin = p.TSum[6] + p.Brake.Duration
	}
	if p.Pf > extrema.Max {
		extrema.Max = p.Pf
		extrema.TMax = p.TSum[6] + p.Brake.Duration
	}

	return extrema
}

// FirstStateAtPosition returns the first time (plus offset), velocity, and
// acceleration at which the profile passes through position pt, if it does.
func (p *Profile) FirstStateAtPosition(pt, offset float64) (float64, float64, float64, bool) {
	for i := 0; i < 7; i++ {
		if math.Abs(p.P[i]-pt) < roots.Eps {
			t := offset
			if i > 0 {
				t += p.TSum[i-1]
			}
			return t, p.V[i], p.A[i], true
		}

		if p.T[i] == 0.0 {
			continue
		}

		candidates := roots.SolveCubic(p.J[i]/6.0, p.A[i]/2.0, p.V[i], p.P[i]-pt)
		for _, t := range candidates.Sorted() {
			if 0.0 < t && t <= p.T[i] {
				at := offset + t
				if i > 0 {
					at += p.TSum[i-1]
				}
				_, vt, acc := Integrate(t, p.P[i], p.V[i], p.A[i], p.J[i])
				return at, vt, acc, true
			}
		}
	}

	if math.Abs(p.Pf-pt) < 1e-9 {
		return offset + p.TSum[6], p.Vf, p.Af, true
	}

	return 0.0, 0.0, 0.0, false
}

// String describes the profile's direction, limit case, and sign pattern,
// e.g. "UP_ACC0_VEL_UDDU".
func (p *Profile) String() string {
	dir := "UP_"
	if p.Direction == DirectionDown {
		dir = "DOWN_"
	}
	var lim string
	switch p.Limits {
	case LimitsAcc0Acc1Vel:
		lim = "ACC0_ACC1_VEL"
	case LimitsVel:
		lim = "VEL"
	case LimitsAcc0:
		lim = "ACC0"
	case LimitsAcc1:
		lim = "ACC1"
	case LimitsAcc0Acc1:
		lim = "ACC0_ACC1"
	case LimitsAcc0Vel:
		lim = "ACC0_VEL"
	case LimitsAcc1Vel:
		lim = "ACC1_VEL"
	default:
		lim = "NONE"
	}
	signs := "_UDDU"
	if p.Signs == SignsUDUD {
		signs = "_UDUD"
	}
	return fmt.Sprintf("%s%s%s", dir, lim, signs)
}
