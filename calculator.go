package otg

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"go.viam.com/otg/profile"
	"go.viam.com/otg/roots"
)

// maxTrajectoryDuration is the documented numerically safe upper bound on a
// trajectory duration.
const maxTrajectoryDuration = 7.6e3

func isPhase(s Synchronization) bool {
	return s == SynchronizationPhase || s == SynchronizationPhaseOrTime
}

// targetCalculator computes a state-to-state trajectory: per-DoF brake and
// Step-1 profiles, the governing duration, and Step-2 re-solves for the
// non-governing DoFs.
type targetCalculator struct {
	dofs int

	newPhaseControl []float64
	pd              []float64
	possibleTSyncs  []float64
	idx             []int
	blocks          []profile.Block

	inpMinVelocity            []float64
	inpMinAcceleration        []float64
	inpPerDoFControlInterface []ControlInterface
	inpPerDoFSynchronization  []Synchronization

	step1  positionStep1
	step2  positionStep2
	vstep1 velocityStep1
	vstep2 velocityStep2
}

func newTargetCalculator(dofs int) *targetCalculator {
	return &targetCalculator{
		dofs:                      dofs,
		newPhaseControl:           make([]float64, dofs),
		pd:                        make([]float64, dofs),
		possibleTSyncs:            make([]float64, 3*dofs+1),
		idx:                       make([]int, 3*dofs+1),
		blocks:                    make([]profile.Block, dofs),
		inpMinVelocity:            make([]float64, dofs),
		inpMinAcceleration:        make([]float64, dofs),
		inpPerDoFControlInterface: make([]ControlInterface, dofs),
		inpPerDoFSynchronization:  make([]Synchronization, dofs),
	}
}

// isInputCollinear checks that the position deltas and the boundary
// velocities and accelerations of all phase-synchronized DoFs are collinear,
// and derives the scaled jerk control for each DoF from the limiting one.
func (c *targetCalculator) isInputCollinear(inp *Input, limitingDirection profile.Direction, limitingDoF int) bool {
	for dof := 0; dof < c.dofs; dof++ {
		c.pd[dof] = inp.TargetPosition[dof] - inp.CurrentPosition[dof]
	}

	var scaleVector []float64
	scaleDoF := -1
	for dof := 0; dof < c.dofs; dof++ {
		if !isPhase(c.inpPerDoFSynchronization[dof]) {
			continue
		}

		switch {
		case c.inpPerDoFControlInterface[dof] == ControlInterfacePosition && math.Abs(c.pd[dof]) > roots.Eps:
			scaleVector = c.pd
			scaleDoF = dof
		case math.Abs(inp.CurrentVelocity[dof]) > roots.Eps:
			scaleVector = inp.CurrentVelocity
			scaleDoF = dof
		case math.Abs(inp.CurrentAcceleration[dof]) > roots.Eps:
			scaleVector = inp.CurrentAcceleration
			scaleDoF = dof
		case math.Abs(inp.TargetVelocity[dof]) > roots.Eps:
			scaleVector = inp.TargetVelocity
			scaleDoF = dof
		case math.Abs(inp.TargetAcceleration[dof]) > roots.Eps:
			scaleVector = inp.TargetAcceleration
			scaleDoF = dof
		}
		if scaleDoF >= 0 {
			break
		}
	}

	if scaleDoF < 0 {
		// Zero everywhere is in theory collinear, but that trivial case is
		// better handled elsewhere.
		return false
	}

	scale := scaleVector[scaleDoF]
	pdScale := c.pd[scaleDoF] / scale
	v0Scale := inp.CurrentVelocity[scaleDoF] / scale
	vfScale := inp.TargetVelocity[scaleDoF] / scale
	a0Scale := inp.CurrentAcceleration[scaleDoF] / scale
	afScale := inp.TargetAcceleration[scaleDoF] / scale

	scaleLimiting := scaleVector[limitingDoF]
	controlLimiting := inp.MaxJerk[limitingDoF]
	if limitingDirection == profile.DirectionDown {
		controlLimiting = -controlLimiting
	}

	for dof := 0; dof < c.dofs; dof++ {
		if !isPhase(c.inpPerDoFSynchronization[dof]) {
			continue
		}

		currentScale := scaleVector[dof]
		if (c.inpPerDoFControlInterface[dof] == ControlInterfacePosition &&
			math.Abs(c.pd[dof]-pdScale*currentScale) > roots.Eps) ||
			math.Abs(inp.CurrentVelocity[dof]-v0Scale*currentScale) > roots.Eps ||
			math.Abs(inp.CurrentAcceleration[dof]-a0Scale*currentScale) > roots.Eps ||
			math.Abs(inp.TargetVelocity[dof]-vfScale*currentScale) > roots.Eps ||
			math.Abs(inp.TargetAcceleration[dof]-afScale*currentScale) > roots.Eps {
			return false
		}

		c.newPhaseControl[dof] = controlLimiting * currentScale / scaleLimiting
	}

	return true
}

// synchronize picks the governing duration among the per-DoF block boundaries
// (and the optional minimum duration), testing the candidates in sorted order
// against every DoF's blocked intervals. It returns the limiting DoF, whose
// Step-1 profile is already valid at the chosen duration.
func (c *targetCalculator) synchronize(
	tMin float64,
	tSync *float64,
	limitingDoF *int,
	profiles []profile.Profile,
	discreteDuration bool,
	deltaTime float64,
) bool {
	// Possible t_syncs are the per-DoF minimum durations, the right edges of
	// the blocked intervals, and the optional minimum duration.
	anyInterval := false
	for dof := 0; dof < c.dofs; dof++ {
		// DoFs opted out of synchronization are ignored here.
		if c.inpPerDoFSynchronization[dof] == SynchronizationNone {
			c.possibleTSyncs[dof] = 0.0
			c.possibleTSyncs[c.dofs+dof] = math.Inf(1)
			c.possibleTSyncs[2*c.dofs+dof] = math.Inf(1)
			continue
		}

		c.possibleTSyncs[dof] = c.blocks[dof].TMin
		c.possibleTSyncs[c.dofs+dof] = math.Inf(1)
		if a := c.blocks[dof].A; a != nil {
			c.possibleTSyncs[c.dofs+dof] = a.Right
		}
		c.possibleTSyncs[2*c.dofs+dof] = math.Inf(1)
		if b := c.blocks[dof].B; b != nil {
			c.possibleTSyncs[2*c.dofs+dof] = b.Right
		}
		anyInterval = anyInterval || c.blocks[dof].A != nil || c.blocks[dof].B != nil
	}
	if tMin > 0.0 {
		c.possibleTSyncs[3*c.dofs] = tMin
		anyInterval = true
	} else {
		c.possibleTSyncs[3*c.dofs] = math.Inf(1)
	}

	if discreteDuration {
		for i, possible := range c.possibleTSyncs {
			if math.IsInf(possible, 1) {
				continue
			}

			remainder := math.Mod(possible, deltaTime)
			if remainder > roots.Eps {
				c.possibleTSyncs[i] = possible + deltaTime - remainder
			}
		}
	}

	// Test the candidates in sorted order.
	idxEnd := c.dofs
	if anyInterval {
		idxEnd = len(c.idx)
	}
	for i := 0; i < idxEnd; i++ {
		c.idx[i] = i
	}
	sort.SliceStable(c.idx[:idxEnd], func(i, j int) bool {
		return c.possibleTSyncs[c.idx[i]] < c.possibleTSyncs[c.idx[j]]
	})

	// Start at the last tMin (or worse).
	for _, i := range c.idx[c.dofs-1 : idxEnd] {
		possibleTSync := c.possibleTSyncs[i]
		isBlocked := false
		for dof := 0; dof < c.dofs; dof++ {
			if c.inpPerDoFSynchronization[dof] == SynchronizationNone {
				continue
			}
			if c.blocks[dof].IsBlocked(possibleTSync) {
				isBlocked = true
				break
			}
		}
		if isBlocked || possibleTSync < tMin || math.IsInf(possibleTSync, 1) {
			continue
		}

		*tSync = possibleTSync
		if i == 3*c.dofs {
			// The optional minimum duration governs; no DoF is extremal.
			*limitingDoF = -1
			return true
		}

		div := i / c.dofs
		*limitingDoF = i % c.dofs
		switch div {
		case 0:
			profiles[*limitingDoF] = c.blocks[*limitingDoF].PMin
		case 1:
			profiles[*limitingDoF] = c.blocks[*limitingDoF].A.Profile
		case 2:
			profiles[*limitingDoF] = c.blocks[*limitingDoF].B.Profile
		}
		return true
	}

	return false
}

func (c *targetCalculator) hasZeroLimits(inp *Input, dof int) bool {
	return inp.MaxAcceleration[dof] == 0.0 ||
		inp.minAccelerationAt(dof) == 0.0 ||
		inp.MaxJerk[dof] == 0.0
}

// calculate computes the time-optimal synchronized trajectory for the given
// input. The trajectory's profiles are written as the calculation proceeds,
// so a failed calculation may leave them partly updated; the returned result
// classifies any failure.
func (c *targetCalculator) calculate(inp *Input, traj *Trajectory, deltaTime float64, handler ErrorHandler) (Result, error) {
	for dof := 0; dof < c.dofs; dof++ {
		c.inpMinVelocity[dof] = inp.minVelocityAt(dof)
		c.inpMinAcceleration[dof] = inp.minAccelerationAt(dof)
		c.inpPerDoFControlInterface[dof] = inp.controlInterfaceAt(dof)
		c.inpPerDoFSynchronization[dof] = inp.synchronizationAt(dof)
	}

	for dof := 0; dof < c.dofs; dof++ {
		p := &traj.profiles[0][dof]

		if !inp.Enabled[dof] {
			p.P[7] = inp.CurrentPosition[dof]
			p.V[7] = inp.CurrentVelocity[dof]
			p.A[7] = inp.CurrentAcceleration[dof]
			p.TSum[6] = 0.0

			c.blocks[dof].TMin = 0.0
			c.blocks[dof].A = nil
			c.blocks[dof].B = nil
			traj.independentMinDurations[dof] = 0.0
			continue
		}

		// Brake pre-trajectory if the input exceeds or will exceed limits.
		switch c.inpPerDoFControlInterface[dof] {
		case ControlInterfacePosition:
			p.Brake.PlanPosition(
				inp.CurrentVelocity[dof],
				inp.CurrentAcceleration[dof],
				inp.MaxVelocity[dof],
				c.inpMinVelocity[dof],
				inp.MaxAcceleration[dof],
				c.inpMinAcceleration[dof],
				inp.MaxJerk[dof],
			)
			p.SetBoundary(
				inp.CurrentPosition[dof],
				inp.CurrentVelocity[dof],
				inp.CurrentAcceleration[dof],
				inp.TargetPosition[dof],
				inp.TargetVelocity[dof],
				inp.TargetAcceleration[dof],
			)
		case ControlInterfaceVelocity:
			p.Brake.PlanVelocity(
				inp.CurrentAcceleration[dof],
				inp.MaxAcceleration[dof],
				c.inpMinAcceleration[dof],
				inp.MaxJerk[dof],
			)
			p.SetBoundaryForVelocity(
				inp.CurrentPosition[dof],
				inp.CurrentVelocity[dof],
				inp.CurrentAcceleration[dof],
				inp.TargetVelocity[dof],
				inp.TargetAcceleration[dof],
			)
		}
		p.Brake.Finalize(&p.P[0], &p.V[0], &p.A[0])

		foundProfile := false
		switch c.inpPerDoFControlInterface[dof] {
		case ControlInterfacePosition:
			c.step1.init(
				p.P[0], p.V[0], p.A[0],
				p.Pf, p.Vf, p.Af,
				inp.MaxVelocity[dof], c.inpMinVelocity[dof],
				inp.MaxAcceleration[dof], c.inpMinAcceleration[dof],
				inp.MaxJerk[dof],
			)
			foundProfile = c.step1.getProfile(p, &c.blocks[dof])
		case ControlInterfaceVelocity:
			c.vstep1.init(
				p.V[0], p.A[0],
				p.Vf, p.Af,
				inp.MaxAcceleration[dof], c.inpMinAcceleration[dof],
				inp.MaxJerk[dof],
			)
			foundProfile = c.vstep1.getProfile(p, &c.blocks[dof])
		}

		if !foundProfile {
			if c.hasZeroLimits(inp, dof) {
				err := handler.OnCalculationError(
					errors.Errorf("zero limits conflict in step 1, DoF %d", dof),
					ResultErrorZeroLimits)
				return ResultErrorZeroLimits, err
			}
			err := handler.OnCalculationError(
				errors.Errorf("error in step 1, DoF %d", dof),
				ResultErrorExecutionTimeCalculation)
			return ResultErrorExecutionTimeCalculation, err
		}

		traj.independentMinDurations[dof] = c.blocks[dof].TMin
	}

	discreteDuration := inp.DurationDiscretization == DiscretizationDiscrete
	if c.dofs == 1 && inp.MinimumDuration <= 0.0 && !discreteDuration {
		traj.profiles[0][0] = c.blocks[0].PMin
		traj.setSectionDurations([]float64{c.blocks[0].TMin})
		return ResultWorking, nil
	}

	limitingDoF := -1
	var tSync float64
	foundSynchronization := c.synchronize(
		inp.MinimumDuration,
		&tSync,
		&limitingDoF,
		traj.profiles[0],
		discreteDuration,
		deltaTime,
	)
	if !foundSynchronization {
		anyZeroLimits := false
		for dof := 0; dof < c.dofs; dof++ {
			if c.hasZeroLimits(inp, dof) {
				anyZeroLimits = true
				break
			}
		}

		if anyZeroLimits {
			err := handler.OnCalculationError(
				errors.Errorf("zero limits conflict with other degrees of freedom in time synchronization %v", tSync),
				ResultErrorZeroLimits)
			return ResultErrorZeroLimits, err
		}
		err := handler.OnCalculationError(
			errors.Errorf("error in time synchronization %v", tSync),
			ResultErrorSynchronizationCalculation)
		return ResultErrorSynchronizationCalculation, err
	}

	// DoFs opted out of synchronization keep their time-optimal profile; the
	// slowest of them may still govern the overall duration.
	for dof := 0; dof < c.dofs; dof++ {
		if inp.Enabled[dof] && c.inpPerDoFSynchronization[dof] == SynchronizationNone {
			traj.profiles[0][dof] = c.blocks[dof].PMin
			if c.blocks[dof].TMin > tSync {
				tSync = c.blocks[dof].TMin
				limitingDoF = dof
			}
		}
	}
	traj.setSectionDurations([]float64{tSync})

	if traj.duration > maxTrajectoryDuration {
		err := handler.OnCalculationError(
			errors.Errorf("trajectory duration %v exceeds the numerically safe limit %v", traj.duration, maxTrajectoryDuration),
			ResultErrorTrajectoryDuration)
		return ResultErrorTrajectoryDuration, err
	}

	if math.Abs(traj.duration) < roots.Eps {
		// Copy all profiles for the end state.
		for dof := 0; dof < c.dofs; dof++ {
			traj.profiles[0][dof] = c.blocks[dof].PMin
		}
		return ResultWorking, nil
	}

	allNone := true
	anyPhase := false
	anyStrictPhase := false
	for dof := 0; dof < c.dofs; dof++ {
		if c.inpPerDoFSynchronization[dof] != SynchronizationNone {
			allNone = false
		}
		if isPhase(c.inpPerDoFSynchronization[dof]) {
			anyPhase = true
		}
		if c.inpPerDoFSynchronization[dof] == SynchronizationPhase {
			anyStrictPhase = true
		}
	}
	if !discreteDuration && allNone {
		return ResultWorking, nil
	}

	// Phase synchronization: copy the limiting DoF's timing and scale its
	// jerk control for every phase-synchronized DoF.
	phaseSynchronized := false
	if limitingDoF >= 0 && anyPhase {
		pLimiting := traj.profiles[0][limitingDoF]
		if c.isInputCollinear(inp, pLimiting.Direction, limitingDoF) {
			foundTimeSynchronization := true
			for dof := 0; dof < c.dofs; dof++ {
				if !inp.Enabled[dof] || dof == limitingDoF || !isPhase(c.inpPerDoFSynchronization[dof]) {
					continue
				}

				p := &traj.profiles[0][dof]
				tProfile := traj.duration - p.Brake.Duration - p.Accel.Duration

				p.T = pLimiting.T // timing information from the limiting DoF
				signs := pLimiting.Signs

				switch c.inpPerDoFControlInterface[dof] {
				case ControlInterfacePosition:
					foundTimeSynchronization = foundTimeSynchronization && p.CheckPositionTimedFull(
						signs,
						profile.LimitsNone,
						c.newPhaseControl[dof],
						inp.MaxVelocity[dof],
						c.inpMinVelocity[dof],
						inp.MaxAcceleration[dof],
						c.inpMinAcceleration[dof],
						inp.MaxJerk[dof],
					)
				case ControlInterfaceVelocity:
					foundTimeSynchronization = foundTimeSynchronization && p.CheckVelocityTimedFull(
						tProfile,
						signs,
						profile.LimitsNone,
						c.newPhaseControl[dof],
						inp.MaxAcceleration[dof],
						c.inpMinAcceleration[dof],
						inp.MaxJerk[dof],
					)
				}

				p.Limits = pLimiting.Limits // after the check to set the correct limit case
			}

			phaseOrNoneOnly := true
			for dof := 0; dof < c.dofs; dof++ {
				if !isPhase(c.inpPerDoFSynchronization[dof]) &&
					c.inpPerDoFSynchronization[dof] != SynchronizationNone {
					phaseOrNoneOnly = false
					break
				}
			}

			if foundTimeSynchronization && phaseOrNoneOnly {
				return ResultWorking, nil
			}
			phaseSynchronized = foundTimeSynchronization
		}
	}

	if anyStrictPhase && !phaseSynchronized {
		err := handler.OnCalculationError(
			errors.New("phase synchronization is not possible: inputs are not collinear under any scaling"),
			ResultErrorSynchronizationCalculation)
		return ResultErrorSynchronizationCalculation, err
	}

	// Time synchronization: re-solve every non-governing DoF at the
	// governing duration.
	for dof := 0; dof < c.dofs; dof++ {
		skipSynchronization := (dof == limitingDoF ||
			c.inpPerDoFSynchronization[dof] == SynchronizationNone) && !discreteDuration
		if !inp.Enabled[dof] || skipSynchronization {
			continue
		}

		p := &traj.profiles[0][dof]
		tProfile := traj.duration - p.Brake.Duration - p.Accel.Duration

		if c.inpPerDoFSynchronization[dof] == SynchronizationTimeIfNecessary &&
			math.Abs(inp.TargetVelocity[dof]) < roots.Eps &&
			math.Abs(inp.TargetAcceleration[dof]) < roots.Eps {
			traj.profiles[0][dof] = c.blocks[dof].PMin
			continue
		}

		// Check whether the final duration corresponds to an extremal
		// profile calculated in Step 1.
		if math.Abs(tProfile-c.blocks[dof].TMin) < 2.0*roots.Eps {
			traj.profiles[0][dof] = c.blocks[dof].PMin
			continue
		} else if a := c.blocks[dof].A; a != nil && math.Abs(tProfile-a.Right) < 2.0*roots.Eps {
			traj.profiles[0][dof] = a.Profile
			continue
		} else if b := c.blocks[dof].B; b != nil && math.Abs(tProfile-b.Right) < 2.0*roots.Eps {
			traj.profiles[0][dof] = b.Profile
			continue
		}

		foundTimeSynchronization := false
		switch c.inpPerDoFControlInterface[dof] {
		case ControlInterfacePosition:
			c.step2.init(
				tProfile,
				p.P[0], p.V[0], p.A[0],
				p.Pf, p.Vf, p.Af,
				inp.MaxVelocity[dof], c.inpMinVelocity[dof],
				inp.MaxAcceleration[dof], c.inpMinAcceleration[dof],
				inp.MaxJerk[dof],
			)
			foundTimeSynchronization = c.step2.getProfile(p)
		case ControlInterfaceVelocity:
			c.vstep2.init(
				tProfile,
				p.V[0], p.A[0],
				p.Vf, p.Af,
				inp.MaxAcceleration[dof], c.inpMinAcceleration[dof],
				inp.MaxJerk[dof],
			)
			foundTimeSynchronization = c.vstep2.getProfile(p)
		}

		if !foundTimeSynchronization {
			err := handler.OnCalculationError(
				errors.Errorf("error in step 2 in DoF %d for duration %v", dof, traj.duration),
				ResultErrorSynchronizationCalculation)
			return ResultErrorSynchronizationCalculation, err
		}
	}

	return ResultWorking, nil
}
