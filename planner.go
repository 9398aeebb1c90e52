package otg

import (
	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// Planner is the online trajectory planner. It owns the per-DoF calculation
// buffers, caches the previous input to decide when a new plan is needed, and
// samples the active trajectory once per control cycle. All buffers are
// allocated at construction; Update never allocates.
type Planner struct {
	dofs      int
	deltaTime float64

	calculator *targetCalculator

	currentInput            *Input
	currentInputInitialized bool

	// scratch receives new plans during Update so that a failed calculation
	// leaves the output's previous trajectory intact.
	scratch *Trajectory

	handler ErrorHandler
	logger  golog.Logger
	clock   clock.Clock
}

// Option configures a Planner.
type Option func(*Planner)

// WithErrorHandler sets the error policy. The default is StrictErrorHandler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(r *Planner) {
		r.handler = handler
	}
}

// WithClock sets the clock used to measure the calculation duration, e.g. a
// mock clock in tests.
func WithClock(c clock.Clock) Option {
	return func(r *Planner) {
		r.clock = c
	}
}

// New returns a planner for the given number of degrees of freedom and
// control cycle. deltaTime is required for Update; a planner used only for
// offline Calculate calls may pass zero.
func New(dofs int, deltaTime float64, logger golog.Logger, opts ...Option) *Planner {
	r := &Planner{
		dofs:         dofs,
		deltaTime:    deltaTime,
		calculator:   newTargetCalculator(dofs),
		currentInput: NewInput(dofs),
		scratch:      NewTrajectory(dofs),
		handler:      StrictErrorHandler{},
		logger:       logger,
		clock:        clock.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger.Debugw("trajectory planner created", "dofs", dofs, "delta_time", deltaTime)
	return r
}

// DoFs returns the number of degrees of freedom.
func (r *Planner) DoFs() int {
	return r.dofs
}

// DeltaTime returns the control cycle duration.
func (r *Planner) DeltaTime() float64 {
	return r.deltaTime
}

// Reset discards the cached input so that the next Update calculates a fresh
// trajectory.
func (r *Planner) Reset() {
	r.currentInputInitialized = false
}

// ValidateInput validates the input as well as this planner instance for
// trajectory calculation. Faults go through the configured error policy; the
// boolean result reports validity when the policy swallows them.
func (r *Planner) ValidateInput(input *Input, checkCurrentStateWithinLimits, checkTargetStateWithinLimits bool) (bool, error) {
	if err := input.Validate(checkCurrentStateWithinLimits, checkTargetStateWithinLimits); err != nil {
		return false, r.handler.OnValidationError(err)
	}

	if r.deltaTime <= 0.0 && input.DurationDiscretization != DiscretizationContinuous {
		return false, r.handler.OnValidationError(errors.Errorf(
			"delta time (control cycle) parameter %v should be larger than zero", r.deltaTime))
	}

	return true, nil
}

// Calculate computes a trajectory for the given input without advancing any
// update state. The offline counterpart of Update.
func (r *Planner) Calculate(input *Input, traj *Trajectory) (Result, error) {
	if traj.dofs != r.dofs {
		return ResultErrorInvalidInput, r.handler.OnValidationError(errors.Errorf(
			"trajectory has %d degrees of freedom but the planner has %d", traj.dofs, r.dofs))
	}

	ok, err := r.ValidateInput(input, false, true)
	if err != nil {
		return ResultErrorInvalidInput, err
	}
	if !ok {
		return ResultErrorInvalidInput, nil
	}

	return r.calculator.calculate(input, traj, r.deltaTime, r.handler)
}

// Update is the hard real-time entry point: it validates the input, re-plans
// when the input changed since the previous tick, advances the trajectory
// time by one control cycle, and samples the new state into the output. It
// returns ResultWorking while the trajectory is in progress and
// ResultFinished once the sampled time has passed the trajectory duration.
func (r *Planner) Update(input *Input, output *Output) (Result, error) {
	start := r.clock.Now()

	if r.dofs != input.DoFs || r.dofs != output.DoFs {
		err := r.handler.OnCalculationError(
			errors.Errorf("mismatch in degrees of freedom: planner %d, input %d, output %d",
				r.dofs, input.DoFs, output.DoFs),
			ResultError)
		return ResultError, err
	}

	output.NewCalculation = false
	output.WasCalculationInterrupted = false

	if !r.currentInputInitialized || !input.Equal(r.currentInput) {
		result, err := r.Calculate(input, r.scratch)
		if err != nil {
			return result, err
		}
		if result < ResultWorking {
			return result, nil
		}
		output.Trajectory, r.scratch = r.scratch, output.Trajectory

		r.currentInput.CopyFrom(input)
		r.currentInputInitialized = true
		output.Time = 0.0
		output.NewCalculation = true
	}

	oldSection := output.NewSection
	output.Time += r.deltaTime
	output.Trajectory.AtTime(
		output.Time,
		output.NewPosition,
		output.NewVelocity,
		output.NewAcceleration,
		output.NewJerk,
		&output.NewSection,
	)
	// Report only forward section changes.
	output.DidSectionChange = output.NewSection > oldSection

	output.CalculationDuration = float64(r.clock.Since(start).Nanoseconds()) / 1000.0

	output.PassToInput(r.currentInput)

	if output.Time > output.Trajectory.Duration() {
		return ResultFinished, nil
	}

	return ResultWorking, nil
}
