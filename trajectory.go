package otg

import (
	"gonum.org/v1/gonum/floats"

	"go.viam.com/otg/profile"
)

// Trajectory is a time-parameterized path for all DoFs: an ordered list of
// sections (one between successive waypoints; state-to-state trajectories
// have exactly one), each holding one seven-segment profile per DoF.
type Trajectory struct {
	profiles                [][]profile.Profile
	duration                float64
	cumulativeTimes         []float64
	independentMinDurations []float64
	positionExtrema         []profile.Bound
	dofs                    int
}

// NewTrajectory returns an empty single-section trajectory for the given
// number of degrees of freedom.
func NewTrajectory(dofs int) *Trajectory {
	return &Trajectory{
		profiles:                [][]profile.Profile{make([]profile.Profile, dofs)},
		cumulativeTimes:         make([]float64, 1),
		independentMinDurations: make([]float64, dofs),
		positionExtrema:         make([]profile.Bound, dofs),
		dofs:                    dofs,
	}
}

// DoFs returns the number of degrees of freedom.
func (t *Trajectory) DoFs() int {
	return t.dofs
}

// Duration returns the total trajectory duration including brake
// pre-profiles.
func (t *Trajectory) Duration() float64 {
	return t.duration
}

// Profiles returns the per-section, per-DoF profiles.
func (t *Trajectory) Profiles() [][]profile.Profile {
	return t.profiles
}

// CumulativeTimes returns the cumulative duration at the end of each section.
func (t *Trajectory) CumulativeTimes() []float64 {
	return t.cumulativeTimes
}

// IndependentMinDurations returns the per-DoF Step-1 durations ignoring
// synchronization.
func (t *Trajectory) IndependentMinDurations() []float64 {
	return t.independentMinDurations
}

// setSectionDurations installs the per-section durations, recomputing the
// cumulative boundaries and the total duration.
func (t *Trajectory) setSectionDurations(durations []float64) {
	floats.CumSum(t.cumulativeTimes, durations)
	t.duration = t.cumulativeTimes[len(t.cumulativeTimes)-1]
}

// stateToIntegrateFrom locates the segment governing the given time for every
// DoF and hands the segment-local time and start state to set.
func (t *Trajectory) stateToIntegrateFrom(time float64, newSection *int, set func(dof int, tDiff, p, v, a, j float64)) {
	if time >= t.duration {
		// Past the end: the terminal state of the last section.
		*newSection = len(t.profiles)
		last := t.profiles[len(t.profiles)-1]
		for dof := 0; dof < t.dofs; dof++ {
			p := &last[dof]
			set(dof, 0.0, p.P[7], p.V[7], p.A[7], 0.0)
		}
		return
	}

	section := len(t.cumulativeTimes)
	for i, ct := range t.cumulativeTimes {
		if ct > time {
			section = i
			break
		}
	}
	*newSection = section
	tDiff := time
	if section > 0 {
		tDiff -= t.cumulativeTimes[section-1]
	}

	for dof := 0; dof < t.dofs; dof++ {
		p := &t.profiles[section][dof]
		tDiffDoF := tDiff

		// Brake pre-trajectory of the first section.
		if section == 0 && p.Brake.Duration > 0.0 {
			if tDiffDoF < p.Brake.Duration {
				index := 0
				if tDiffDoF >= p.Brake.T[0] {
					index = 1
					tDiffDoF -= p.Brake.T[0]
				}
				set(dof, tDiffDoF, p.Brake.P[index], p.Brake.V[index], p.Brake.A[index], p.Brake.J[index])
				continue
			}
			tDiffDoF -= p.Brake.Duration
		}

		if tDiffDoF >= p.TSum[6] {
			set(dof, tDiffDoF-p.TSum[6], p.P[7], p.V[7], p.A[7], 0.0)
			continue
		}

		index := len(p.TSum) - 1
		for i, ts := range p.TSum {
			if ts > tDiffDoF {
				index = i
				break
			}
		}
		if index > 0 {
			tDiffDoF -= p.TSum[index-1]
		}

		set(dof, tDiffDoF, p.P[index], p.V[index], p.A[index], p.J[index])
	}
}

// AtTime samples the kinematic state at the given time. Any of the output
// slices and the section pointer may be nil. Times before the start return
// the initial state; times past the end return the terminal state with zero
// jerk.
func (t *Trajectory) AtTime(time float64, newPosition, newVelocity, newAcceleration, newJerk []float64, newSection *int) {
	if time < 0.0 {
		time = 0.0
	}

	var section int
	t.stateToIntegrateFrom(time, &section, func(dof int, tDiff, p, v, a, j float64) {
		pos, vel, acc := profile.Integrate(tDiff, p, v, a, j)
		if newPosition != nil {
			newPosition[dof] = pos
		}
		if newVelocity != nil {
			newVelocity[dof] = vel
		}
		if newAcceleration != nil {
			newAcceleration[dof] = acc
		}
		if newJerk != nil {
			newJerk[dof] = j
		}
	})
	if newSection != nil {
		*newSection = section
	}
}

// PositionExtrema returns the per-DoF extreme positions over the whole
// trajectory and the times at which they are reached.
func (t *Trajectory) PositionExtrema() []profile.Bound {
	for dof := 0; dof < t.dofs; dof++ {
		t.positionExtrema[dof] = t.profiles[0][dof].PositionExtrema()
	}

	for i := 1; i < len(t.profiles); i++ {
		for dof := 0; dof < t.dofs; dof++ {
			sectionExtrema := t.profiles[i][dof].PositionExtrema()
			if sectionExtrema.Max > t.positionExtrema[dof].Max {
				t.positionExtrema[dof].Max = sectionExtrema.Max
				t.positionExtrema[dof].TMax = sectionExtrema.TMax
			}
			if sectionExtrema.Min < t.positionExtrema[dof].Min {
				t.positionExtrema[dof].Min = sectionExtrema.Min
				t.positionExtrema[dof].TMin = sectionExtrema.TMin
			}
		}
	}

	return t.positionExtrema
}

// FirstTimeAtPosition returns the first time, measured from the start of the
// trajectory, at which the given DoF passes through the given position, if it
// does. Positions passed during a brake pre-profile are not searched.
func (t *Trajectory) FirstTimeAtPosition(dof int, position float64) (float64, bool) {
	if dof < 0 || dof >= t.dofs {
		return 0.0, false
	}

	for _, section := range t.profiles {
		p := &section[dof]
		if at, _, _, ok := p.FirstStateAtPosition(position, p.Brake.Duration); ok {
			return at, true
		}
	}
	return 0.0, false
}
