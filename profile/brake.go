package profile

import "math"

const brakeEps = 2.2e-14

func vAtT(v0, a0, j, t float64) float64 {
	return v0 + t*(a0+j*t/2.0)
}

func vAtAZero(v0, a0, j float64) float64 {
	return v0 + (a0*a0)/(2.0*j)
}

// BrakeProfile is an up-to-two-segment jerk-limited ramp that returns a
// limit-violating start state to within the kinematic limits in minimum time.
// It is prepended to the main profile; its duration counts toward the total.
type BrakeProfile struct {
	Duration float64
	T        [2]float64
	J        [2]float64
	A        [2]float64
	V        [2]float64
	P        [2]float64
}

func (b *BrakeProfile) accelerationBrake(v0, a0, vMax, vMin, aMax, aMin, jMax float64) {
	b.J[0] = -jMax

	tToAMax := (a0 - aMax) / jMax
	tToAZero := a0 / jMax

	vAtAMax := vAtT(v0, a0, -jMax, tToAMax)
	vAtZero := vAtT(v0, a0, -jMax, tToAZero)

	if (vAtZero > vMax && jMax > 0.0) || (vAtZero < vMax && jMax < 0.0) {
		b.velocityBrake(v0, a0, vMax, vMin, aMax, aMin, jMax)
	} else if (vAtAMax < vMin && jMax > 0.0) || (vAtAMax > vMin && jMax < 0.0) {
		tToVMin := -(vAtAMax - vMin) / aMax
		tToVMax := -aMax/(2.0*jMax) - (vAtAMax-vMax)/aMax

		b.T[0] = tToAMax + brakeEps
		b.T[1] = math.Min(tToVMin, math.Max(tToVMax-brakeEps, 0.0))
	} else {
		b.T[0] = tToAMax + brakeEps
	}
}

func (b *BrakeProfile) velocityBrake(v0, a0, vMax, vMin, aMax, aMin, jMax float64) {
	b.J[0] = -jMax
	tToAMin := (a0 - aMin) / jMax
	tToVMax := a0/jMax + math.Sqrt(a0*a0+2.0*jMax*(v0-vMax))/math.Abs(jMax)
	tToVMin := a0/jMax + math.Sqrt(a0*a0/2.0+jMax*(v0-vMin))/math.Abs(jMax)
	tMinToVMax := math.Min(tToVMax, tToVMin)

	if tToAMin < tMinToVMax {
		vAtMin := vAtT(v0, a0, -jMax, tToAMin)
		tToVMaxWithConstant := -(vAtMin - vMax) / aMin
		tToVMinWithConstant := aMin/(2.0*jMax) - (vAtMin-vMin)/aMin

		b.T[0] = math.Max(tToAMin-brakeEps, 0.0)
		b.T[1] = math.Max(math.Min(tToVMaxWithConstant, tToVMinWithConstant), 0.0)
	} else {
		b.T[0] = math.Max(tMinToVMax-brakeEps, 0.0)
	}
}

// PlanPosition computes the brake ramp for the position interface. Nothing is
// planned when the start state is already within limits.
func (b *BrakeProfile) PlanPosition(v0, a0, vMax, vMin, aMax, aMin, jMax float64) {
	b.T[0] = 0.0
	b.T[1] = 0.0
	b.J[0] = 0.0
	b.J[1] = 0.0

	if jMax == 0.0 || aMax == 0.0 || aMin == 0.0 {
		return // Ignore braking for zero limits
	}

	switch {
	case a0 > aMax:
		b.accelerationBrake(v0, a0, vMax, vMin, aMax, aMin, jMax)
	case a0 < aMin:
		b.accelerationBrake(v0, a0, vMin, vMax, aMin, aMax, -jMax)
	case (v0 > vMax && vAtAZero(v0, a0, -jMax) > vMin) || (a0 > 0.0 && vAtAZero(v0, a0, jMax) > vMax):
		b.velocityBrake(v0, a0, vMax, vMin, aMax, aMin, jMax)
	case (v0 < vMin && vAtAZero(v0, a0, jMax) < vMax) || (a0 < 0.0 && vAtAZero(v0, a0, -jMax) < vMin):
		b.velocityBrake(v0, a0, vMin, vMax, aMin, aMax, -jMax)
	}
}

// PlanVelocity computes the brake ramp for the velocity interface, which only
// has to bring the acceleration back inside its limits.
func (b *BrakeProfile) PlanVelocity(a0, aMax, aMin, jMax float64) {
	b.T[0] = 0.0
	b.T[1] = 0.0
	b.J[0] = 0.0
	b.J[1] = 0.0

	if jMax == 0.0 {
		return // Ignore braking for zero limits
	}

	if a0 > aMax {
		b.J[0] = -jMax
		b.T[0] = (a0-aMax)/jMax + brakeEps
	} else if a0 < aMin {
		b.J[0] = jMax
		b.T[0] = -(a0-aMin)/jMax + brakeEps
	}
}

// Finalize integrates the planned segments, records the state at each segment
// start, and advances the given state to the brake's terminal state.
func (b *BrakeProfile) Finalize(ps, vs, as *float64) {
	if b.T[0] <= 0.0 && b.T[1] <= 0.0 {
		b.Duration = 0.0
		return
	}

	b.Duration = b.T[0]
	b.P[0] = *ps
	b.V[0] = *vs
	b.A[0] = *as
	*ps, *vs, *as = Integrate(b.T[0], *ps, *vs, *as, b.J[0])

	if b.T[1] > 0.0 {
		b.Duration += b.T[1]
		b.P[1] = *ps
		b.V[1] = *vs
		b.A[1] = *as
		*ps, *vs, *as = Integrate(b.T[1], *ps, *vs, *as, b.J[1])
	}
}
