package otg

import (
	"math"
	"math/rand"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"
)

func newPositionInput(dofs int) *Input {
	input := NewInput(dofs)
	for dof := 0; dof < dofs; dof++ {
		input.MaxVelocity[dof] = 1.0
		input.MaxAcceleration[dof] = 1.0
		input.MaxJerk[dof] = 1.0
	}
	return input
}

func TestCalculateSingleDoF(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(1, 0.005, logger)

	input := newPositionInput(1)
	input.TargetPosition[0] = 1.0

	traj := NewTrajectory(1)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)
	test.That(t, traj.Duration(), test.ShouldAlmostEqual, 3.1748, 1e-4)

	newPosition := make([]float64, 1)
	newVelocity := make([]float64, 1)
	newAcceleration := make([]float64, 1)

	traj.AtTime(0.0, newPosition, newVelocity, newAcceleration, nil, nil)
	test.That(t, newPosition[0], test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, newVelocity[0], test.ShouldAlmostEqual, 0.0, 1e-9)

	traj.AtTime(traj.Duration()/2.0, newPosition, newVelocity, newAcceleration, nil, nil)
	test.That(t, newPosition[0], test.ShouldAlmostEqual, 0.5, 1e-4)

	traj.AtTime(traj.Duration(), newPosition, newVelocity, newAcceleration, nil, nil)
	test.That(t, newPosition[0], test.ShouldAlmostEqual, 1.0, 1e-8)
	test.That(t, newVelocity[0], test.ShouldAlmostEqual, 0.0, 1e-8)
	test.That(t, newAcceleration[0], test.ShouldAlmostEqual, 0.0, 1e-8)

	// Sampling past the end clamps to the terminal state with zero jerk.
	newJerk := make([]float64, 1)
	traj.AtTime(traj.Duration()+1.0, newPosition, newVelocity, newAcceleration, newJerk, nil)
	test.That(t, newPosition[0], test.ShouldAlmostEqual, 1.0, 1e-8)
	test.That(t, newJerk[0], test.ShouldEqual, 0.0)
}

func TestCalculateShortMove(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(1, 0.005, logger)

	input := newPositionInput(1)
	input.TargetPosition[0] = 0.01

	traj := NewTrajectory(1)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)
	// Far too short to reach the velocity limit.
	test.That(t, traj.Duration(), test.ShouldBeLessThan, 1.0)

	profiles := traj.Profiles()[0]
	test.That(t, profiles[0].T[3], test.ShouldAlmostEqual, 0.0, 1e-9)

	newPosition := make([]float64, 1)
	traj.AtTime(traj.Duration(), newPosition, nil, nil, nil, nil)
	test.That(t, newPosition[0], test.ShouldAlmostEqual, 0.01, 1e-8)
}

func TestCalculateMultiDoF(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(3, 0.005, logger)

	input := newPositionInput(3)
	copy(input.CurrentPosition, []float64{0.0, -2.0, 0.0})
	copy(input.TargetPosition, []float64{1.0, -3.0, 2.0})
	input.TargetVelocity[1] = 0.3

	traj := NewTrajectory(3)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)
	test.That(t, traj.Duration(), test.ShouldAlmostEqual, 4.0, 1e-4)

	newPosition := make([]float64, 3)
	newVelocity := make([]float64, 3)
	newAcceleration := make([]float64, 3)
	traj.AtTime(traj.Duration(), newPosition, newVelocity, newAcceleration, nil, nil)
	for dof := 0; dof < 3; dof++ {
		test.That(t, newPosition[dof], test.ShouldAlmostEqual, input.TargetPosition[dof], 1e-8)
		test.That(t, newVelocity[dof], test.ShouldAlmostEqual, input.TargetVelocity[dof], 1e-8)
		test.That(t, newAcceleration[dof], test.ShouldAlmostEqual, input.TargetAcceleration[dof], 1e-8)
	}
}

func TestTimeSynchronization(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(2, 0.005, logger)

	input := newPositionInput(2)
	input.TargetPosition[0] = 1.0
	input.TargetPosition[1] = 2.0

	traj := NewTrajectory(2)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)

	// The slower DoF governs.
	durations := traj.IndependentMinDurations()
	test.That(t, durations[0], test.ShouldAlmostEqual, 3.1748, 1e-4)
	test.That(t, durations[1], test.ShouldAlmostEqual, 4.0, 1e-4)
	test.That(t, traj.Duration(), test.ShouldAlmostEqual, 4.0, 1e-4)

	// Both DoF profiles span the full duration.
	for dof := 0; dof < 2; dof++ {
		p := traj.Profiles()[0][dof]
		test.That(t, p.TSum[6]+p.Brake.Duration, test.ShouldAlmostEqual, traj.Duration(), 1e-9)
	}
}

func TestNoSynchronization(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(2, 0.005, logger)

	input := newPositionInput(2)
	input.Synchronization = SynchronizationNone
	input.TargetPosition[0] = 1.0
	input.TargetPosition[1] = 2.0

	traj := NewTrajectory(2)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)

	// Each DoF keeps its own time-optimal profile; the slowest one sets the
	// overall duration.
	p0 := traj.Profiles()[0][0]
	p1 := traj.Profiles()[0][1]
	test.That(t, p0.TSum[6], test.ShouldAlmostEqual, 3.1748, 1e-4)
	test.That(t, p1.TSum[6], test.ShouldAlmostEqual, 4.0, 1e-4)
	test.That(t, traj.Duration(), test.ShouldAlmostEqual, 4.0, 1e-4)
}

func TestPhaseSynchronization(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(3, 0.005, logger)

	input := newPositionInput(3)
	input.Synchronization = SynchronizationPhaseOrTime
	copy(input.TargetPosition, []float64{1.0, 0.5, 0.25})

	traj := NewTrajectory(3)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)

	// Straight-line motion in joint space: positions stay proportional to
	// the position deltas at all times.
	newPosition := make([]float64, 3)
	for _, tau := range []float64{0.5, 1.0, 2.0, traj.Duration() * 0.75} {
		traj.AtTime(tau, newPosition, nil, nil, nil, nil)
		test.That(t, newPosition[1], test.ShouldAlmostEqual, 0.5*newPosition[0], 1e-6)
		test.That(t, newPosition[2], test.ShouldAlmostEqual, 0.25*newPosition[0], 1e-6)
	}
}

func TestStrictPhaseSynchronizationFails(t *testing.T) {
	logger := golog.NewTestLogger(t)

	input := newPositionInput(2)
	input.TargetPosition[0] = 1.0
	input.TargetPosition[1] = 2.0
	// A non-proportional boundary velocity breaks collinearity.
	input.CurrentVelocity[1] = 0.3

	t.Run("strict phase surfaces the error", func(t *testing.T) {
		otg := New(2, 0.005, logger)
		input.Synchronization = SynchronizationPhase

		traj := NewTrajectory(2)
		result, err := otg.Calculate(input, traj)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, result, test.ShouldEqual, ResultErrorSynchronizationCalculation)
	})

	t.Run("phase or time falls back to time", func(t *testing.T) {
		otg := New(2, 0.005, logger)
		input.Synchronization = SynchronizationPhaseOrTime

		traj := NewTrajectory(2)
		result, err := otg.Calculate(input, traj)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, result, test.ShouldEqual, ResultWorking)

		for dof := 0; dof < 2; dof++ {
			p := traj.Profiles()[0][dof]
			test.That(t, p.TSum[6]+p.Brake.Duration, test.ShouldAlmostEqual, traj.Duration(), 1e-9)
		}
	})
}

func TestUpdateClosedLoop(t *testing.T) {
	logger := golog.NewTestLogger(t)
	const deltaTime = 0.005
	otg := New(1, deltaTime, logger)

	input := newPositionInput(1)
	input.TargetPosition[0] = 1.0
	output := NewOutput(1)

	steps := 0
	for {
		result, err := otg.Update(input, output)
		test.That(t, err, test.ShouldBeNil)
		if steps == 0 {
			test.That(t, output.NewCalculation, test.ShouldBeTrue)
		} else {
			test.That(t, output.NewCalculation, test.ShouldBeFalse)
		}
		test.That(t, output.WasCalculationInterrupted, test.ShouldBeFalse)

		// Kinematic limits hold at every sampled tick.
		test.That(t, math.Abs(output.NewVelocity[0]), test.ShouldBeLessThan, 1.0+1e-9)
		test.That(t, math.Abs(output.NewAcceleration[0]), test.ShouldBeLessThan, 1.0+1e-9)
		test.That(t, math.Abs(output.NewJerk[0]), test.ShouldBeLessThan, 1.0+1e-9)

		output.PassToInput(input)
		steps++
		if result == ResultFinished {
			break
		}
		test.That(t, result, test.ShouldEqual, ResultWorking)
		test.That(t, steps, test.ShouldBeLessThan, 10000)
	}

	// One tick per control cycle plus the final one past the end.
	test.That(t, steps, test.ShouldAlmostEqual, math.Ceil(3.1748/deltaTime), 2)

	test.That(t, output.NewPosition[0], test.ShouldAlmostEqual, 1.0, 1e-8)
	test.That(t, output.NewVelocity[0], test.ShouldAlmostEqual, 0.0, 1e-8)
	test.That(t, output.NewAcceleration[0], test.ShouldAlmostEqual, 0.0, 1e-8)
	test.That(t, output.CalculationDuration, test.ShouldBeGreaterThanOrEqualTo, 0.0)
}

func TestUpdateReplansOnNewTarget(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(1, 0.005, logger)

	input := newPositionInput(1)
	input.TargetPosition[0] = 1.0
	output := NewOutput(1)

	_, err := otg.Update(input, output)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, output.NewCalculation, test.ShouldBeTrue)

	output.PassToInput(input)
	_, err = otg.Update(input, output)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, output.NewCalculation, test.ShouldBeFalse)

	// A changed target forces a fresh plan and resets the trajectory time.
	output.PassToInput(input)
	input.TargetPosition[0] = -0.5
	_, err = otg.Update(input, output)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, output.NewCalculation, test.ShouldBeTrue)
	test.That(t, output.Time, test.ShouldAlmostEqual, 0.005, 1e-12)
}

func TestReset(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(1, 0.005, logger)

	input := newPositionInput(1)
	input.TargetPosition[0] = 1.0
	output := NewOutput(1)

	_, err := otg.Update(input, output)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, output.NewCalculation, test.ShouldBeTrue)

	otg.Reset()
	output.PassToInput(input)
	_, err = otg.Update(input, output)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, output.NewCalculation, test.ShouldBeTrue)
}

func TestBrakePreTrajectory(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(1, 0.005, logger)

	input := newPositionInput(1)
	// Start above the velocity limit.
	input.CurrentVelocity[0] = 1.5
	input.TargetPosition[0] = 2.0

	traj := NewTrajectory(1)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)

	p := traj.Profiles()[0][0]
	test.That(t, p.Brake.Duration, test.ShouldBeGreaterThan, 0.0)

	// After the brake phase the velocity is back within limits and stays
	// there for the rest of the trajectory.
	newVelocity := make([]float64, 1)
	for tau := p.Brake.Duration; tau <= traj.Duration(); tau += 0.01 {
		traj.AtTime(tau, nil, newVelocity, nil, nil, nil)
		test.That(t, newVelocity[0], test.ShouldBeLessThan, 1.0+1e-6)
	}

	newPosition := make([]float64, 1)
	traj.AtTime(traj.Duration(), newPosition, newVelocity, nil, nil, nil)
	test.That(t, newPosition[0], test.ShouldAlmostEqual, 2.0, 1e-8)
	test.That(t, newVelocity[0], test.ShouldAlmostEqual, 0.0, 1e-8)
}

func TestVelocityReversal(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(1, 0.005, logger)

	input := newPositionInput(1)
	input.CurrentVelocity[0] = 1.0
	input.TargetVelocity[0] = -1.0

	traj := NewTrajectory(1)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)

	// The velocity limit holds throughout the reversal.
	newVelocity := make([]float64, 1)
	for tau := 0.0; tau <= traj.Duration(); tau += 0.005 {
		traj.AtTime(tau, nil, newVelocity, nil, nil, nil)
		test.That(t, math.Abs(newVelocity[0]), test.ShouldBeLessThan, 1.0+1e-9)
	}

	traj.AtTime(traj.Duration(), nil, newVelocity, nil, nil, nil)
	test.That(t, newVelocity[0], test.ShouldAlmostEqual, -1.0, 1e-8)
}

func TestVelocityControlInterface(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(1, 0.005, logger)

	input := newPositionInput(1)
	input.ControlInterface = ControlInterfaceVelocity
	input.TargetVelocity[0] = 1.0

	traj := NewTrajectory(1)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)
	// Ramp the acceleration up and down at the jerk limit.
	test.That(t, traj.Duration(), test.ShouldAlmostEqual, 2.0, 1e-6)

	newVelocity := make([]float64, 1)
	newAcceleration := make([]float64, 1)
	traj.AtTime(traj.Duration(), nil, newVelocity, newAcceleration, nil, nil)
	test.That(t, newVelocity[0], test.ShouldAlmostEqual, 1.0, 1e-8)
	test.That(t, newAcceleration[0], test.ShouldAlmostEqual, 0.0, 1e-8)
}

func TestEnabledFlag(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(2, 0.005, logger)

	input := newPositionInput(2)
	input.TargetPosition[0] = 1.0
	input.TargetPosition[1] = 2.0
	input.CurrentPosition[1] = 0.7
	input.Enabled[1] = false

	traj := NewTrajectory(2)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)

	// The disabled DoF stays at its current state for the whole duration.
	newPosition := make([]float64, 2)
	newVelocity := make([]float64, 2)
	traj.AtTime(traj.Duration()/2.0, newPosition, newVelocity, nil, nil, nil)
	test.That(t, newPosition[1], test.ShouldAlmostEqual, 0.7, 1e-12)
	test.That(t, newVelocity[1], test.ShouldAlmostEqual, 0.0, 1e-12)
}

func TestMinimumDuration(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(1, 0.005, logger)

	input := newPositionInput(1)
	input.TargetPosition[0] = 1.0
	input.MinimumDuration = 5.0

	traj := NewTrajectory(1)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)
	test.That(t, traj.Duration(), test.ShouldAlmostEqual, 5.0, 1e-8)

	newPosition := make([]float64, 1)
	traj.AtTime(traj.Duration(), newPosition, nil, nil, nil, nil)
	test.That(t, newPosition[0], test.ShouldAlmostEqual, 1.0, 1e-8)
}

func TestDiscreteDuration(t *testing.T) {
	logger := golog.NewTestLogger(t)
	const deltaTime = 0.001
	otg := New(1, deltaTime, logger)

	input := newPositionInput(1)
	input.TargetPosition[0] = 1.0
	input.DurationDiscretization = DiscretizationDiscrete

	traj := NewTrajectory(1)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)

	test.That(t, traj.Duration(), test.ShouldBeGreaterThanOrEqualTo, 3.1748-1e-4)
	remainder := math.Mod(traj.Duration(), deltaTime)
	onGrid := remainder < 1e-9 || deltaTime-remainder < 1e-9
	test.That(t, onGrid, test.ShouldBeTrue)

	newPosition := make([]float64, 1)
	traj.AtTime(traj.Duration(), newPosition, nil, nil, nil, nil)
	test.That(t, newPosition[0], test.ShouldAlmostEqual, 1.0, 1e-8)
}

func TestPerDoFSynchronization(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(2, 0.005, logger)

	input := newPositionInput(2)
	input.TargetPosition[0] = 1.0
	input.TargetPosition[1] = 2.0
	input.PerDoFSynchronization = []Synchronization{SynchronizationNone, SynchronizationTime}

	traj := NewTrajectory(2)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)

	// DoF 0 opted out: it keeps its own minimum duration while the overall
	// duration is governed by DoF 1.
	p0 := traj.Profiles()[0][0]
	test.That(t, p0.TSum[6], test.ShouldAlmostEqual, 3.1748, 1e-4)
	test.That(t, traj.Duration(), test.ShouldAlmostEqual, 4.0, 1e-4)
}

func TestZeroJerkLimitCruise(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(1, 0.005, logger)

	input := NewInput(1)
	input.CurrentVelocity[0] = 0.5
	input.TargetPosition[0] = 1.0
	input.TargetVelocity[0] = 0.5
	input.MaxVelocity[0] = 1.0
	input.MaxAcceleration[0] = 1.0
	input.MaxJerk[0] = 0.0

	traj := NewTrajectory(1)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)
	// Pure cruise at the current velocity.
	test.That(t, traj.Duration(), test.ShouldAlmostEqual, 2.0, 1e-9)
}

func TestPositionExtremaOvershoot(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(1, 0.005, logger)

	input := newPositionInput(1)
	input.CurrentVelocity[0] = 1.0
	input.TargetPosition[0] = 0.0

	traj := NewTrajectory(1)
	result, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldEqual, ResultWorking)

	// The initial forward velocity forces an overshoot beyond both the
	// start and the target.
	extrema := traj.PositionExtrema()
	test.That(t, extrema[0].Max, test.ShouldBeGreaterThan, 0.0)
	test.That(t, extrema[0].TMax, test.ShouldBeBetweenOrEqual, 0.0, traj.Duration())
}

func TestValidation(t *testing.T) {
	logger := golog.NewTestLogger(t)

	t.Run("valid input", func(t *testing.T) {
		otg := New(1, 0.005, logger)
		input := newPositionInput(1)
		input.TargetPosition[0] = 1.0
		ok, err := otg.ValidateInput(input, true, true)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeTrue)
	})

	t.Run("length mismatch", func(t *testing.T) {
		otg := New(2, 0.005, logger)
		input := newPositionInput(2)
		input.CurrentPosition = input.CurrentPosition[:1]
		_, err := otg.ValidateInput(input, false, false)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("nan state", func(t *testing.T) {
		otg := New(1, 0.005, logger)
		input := newPositionInput(1)
		input.CurrentVelocity[0] = math.NaN()
		_, err := otg.ValidateInput(input, false, false)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("negative limit", func(t *testing.T) {
		otg := New(1, 0.005, logger)
		input := newPositionInput(1)
		input.MaxJerk[0] = -1.0
		_, err := otg.ValidateInput(input, false, false)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("positive min velocity", func(t *testing.T) {
		otg := New(1, 0.005, logger)
		input := newPositionInput(1)
		input.MinVelocity = []float64{0.5}
		_, err := otg.ValidateInput(input, false, false)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("current state outside limits", func(t *testing.T) {
		otg := New(1, 0.005, logger)
		input := newPositionInput(1)
		input.CurrentVelocity[0] = 1.5
		_, err := otg.ValidateInput(input, true, false)
		test.That(t, err, test.ShouldNotBeNil)

		// The same state passes when the current-state check is off.
		ok, err := otg.ValidateInput(input, false, false)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeTrue)
	})

	t.Run("future feasibility", func(t *testing.T) {
		otg := New(1, 0.005, logger)
		input := newPositionInput(1)
		// v0 + a0^2/(2 j_max) = 0.9 + 0.125 > v_max: the velocity limit
		// will inevitably be exceeded.
		input.CurrentVelocity[0] = 0.9
		input.CurrentAcceleration[0] = 0.5
		_, err := otg.ValidateInput(input, true, false)
		test.That(t, err, test.ShouldNotBeNil)

		// A smaller acceleration is still feasible.
		input.CurrentAcceleration[0] = 0.4
		ok, err := otg.ValidateInput(input, true, false)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeTrue)
	})

	t.Run("waypoints are rejected", func(t *testing.T) {
		otg := New(1, 0.005, logger)
		input := newPositionInput(1)
		input.IntermediatePositions = [][]float64{{0.5}}
		_, err := otg.ValidateInput(input, false, false)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("ignore policy swallows faults", func(t *testing.T) {
		otg := New(1, 0.005, logger, WithErrorHandler(IgnoreErrorHandler{Logger: logger}))
		input := newPositionInput(1)
		input.MaxJerk[0] = -1.0
		_, err := otg.ValidateInput(input, false, false)
		test.That(t, err, test.ShouldBeNil)
	})
}

func TestValidateAllAggregates(t *testing.T) {
	input := newPositionInput(2)
	input.MaxJerk[0] = -1.0
	input.MaxVelocity[1] = math.NaN()

	err := input.ValidateAll(false, false)
	test.That(t, err, test.ShouldNotBeNil)
	// Both DoF faults are reported at once.
	test.That(t, err.Error(), test.ShouldContainSubstring, "jerk")
	test.That(t, err.Error(), test.ShouldContainSubstring, "velocity")
}

func TestRandomizedInvariants(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(1, 0.005, logger)
	rng := rand.New(rand.NewSource(42))

	traj := NewTrajectory(1)
	newPosition := make([]float64, 1)
	newVelocity := make([]float64, 1)
	newAcceleration := make([]float64, 1)

	for i := 0; i < 250; i++ {
		input := NewInput(1)
		input.MaxVelocity[0] = 0.5 + 2.0*rng.Float64()
		input.MaxAcceleration[0] = 0.5 + 2.0*rng.Float64()
		input.MaxJerk[0] = 0.5 + 2.0*rng.Float64()
		input.CurrentPosition[0] = 10.0 * (rng.Float64() - 0.5)
		input.TargetPosition[0] = 10.0 * (rng.Float64() - 0.5)
		input.CurrentVelocity[0] = 0.9 * input.MaxVelocity[0] * (2.0*rng.Float64() - 1.0)

		result, err := otg.Calculate(input, traj)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, result, test.ShouldEqual, ResultWorking)
		test.That(t, traj.Duration(), test.ShouldBeGreaterThanOrEqualTo, 0.0)

		// Terminal accuracy.
		traj.AtTime(traj.Duration(), newPosition, newVelocity, newAcceleration, nil, nil)
		test.That(t, newPosition[0], test.ShouldAlmostEqual, input.TargetPosition[0], 1e-6)
		test.That(t, newVelocity[0], test.ShouldAlmostEqual, 0.0, 1e-6)
		test.That(t, newAcceleration[0], test.ShouldAlmostEqual, 0.0, 1e-8)

		// Limits hold along the sampled trajectory.
		step := traj.Duration() / 50.0
		if step <= 0.0 {
			continue
		}
		for tau := 0.0; tau <= traj.Duration(); tau += step {
			traj.AtTime(tau, nil, newVelocity, newAcceleration, nil, nil)
			test.That(t, math.Abs(newVelocity[0]), test.ShouldBeLessThan, input.MaxVelocity[0]+1e-8)
			test.That(t, math.Abs(newAcceleration[0]), test.ShouldBeLessThan, input.MaxAcceleration[0]+1e-8)
		}
	}
}

func TestTrajectoryFirstTimeAtPosition(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(1, 0.005, logger)

	input := newPositionInput(1)
	input.TargetPosition[0] = 1.0

	traj := NewTrajectory(1)
	_, err := otg.Calculate(input, traj)
	test.That(t, err, test.ShouldBeNil)

	at, ok := traj.FirstTimeAtPosition(0, 0.5)
	test.That(t, ok, test.ShouldBeTrue)

	newPosition := make([]float64, 1)
	traj.AtTime(at, newPosition, nil, nil, nil, nil)
	test.That(t, newPosition[0], test.ShouldAlmostEqual, 0.5, 1e-6)

	_, ok = traj.FirstTimeAtPosition(0, 10.0)
	test.That(t, ok, test.ShouldBeFalse)

	_, ok = traj.FirstTimeAtPosition(5, 0.5)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestInputEqual(t *testing.T) {
	a := newPositionInput(2)
	b := newPositionInput(2)
	test.That(t, a.Equal(b), test.ShouldBeTrue)

	b.TargetPosition[1] = 1e-13
	test.That(t, a.Equal(b), test.ShouldBeFalse)

	b.TargetPosition[1] = 0.0
	b.Synchronization = SynchronizationNone
	test.That(t, a.Equal(b), test.ShouldBeFalse)

	b.Synchronization = a.Synchronization
	b.MinVelocity = []float64{-1.0, -1.0}
	test.That(t, a.Equal(b), test.ShouldBeFalse)
}

func TestDoFMismatch(t *testing.T) {
	logger := golog.NewTestLogger(t)
	otg := New(2, 0.005, logger)

	input := newPositionInput(1)
	output := NewOutput(1)
	result, err := otg.Update(input, output)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, result, test.ShouldEqual, ResultError)
}
