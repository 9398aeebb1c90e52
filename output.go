package otg

// Output holds the sampled kinematic state for the current control cycle and
// the trajectory it was sampled from. It is caller owned and reused across
// ticks; the embedded trajectory is overwritten whenever a new plan is
// produced.
type Output struct {
	// DoFs is the number of degrees of freedom.
	DoFs int

	// Trajectory is the current plan.
	Trajectory *Trajectory

	NewPosition     []float64
	NewVelocity     []float64
	NewAcceleration []float64
	NewJerk         []float64

	// Time is the current time along the trajectory.
	Time float64

	// NewSection is the index of the current section between waypoints.
	NewSection int
	// DidSectionChange reports a forward section change in the last update.
	DidSectionChange bool

	// NewCalculation reports whether the last update produced a new plan.
	NewCalculation bool
	// WasCalculationInterrupted is always false; interruptible calculation
	// belongs to an unported tier and its semantics are not invented here.
	WasCalculationInterrupted bool

	// CalculationDuration is the wall-clock cost of the last calculation in
	// microseconds.
	CalculationDuration float64
}

// NewOutput returns an output buffer for the given number of degrees of
// freedom.
func NewOutput(dofs int) *Output {
	return &Output{
		DoFs:            dofs,
		Trajectory:      NewTrajectory(dofs),
		NewPosition:     make([]float64, dofs),
		NewVelocity:     make([]float64, dofs),
		NewAcceleration: make([]float64, dofs),
		NewJerk:         make([]float64, dofs),
	}
}

// PassToInput copies the new kinematic state into the input's current state,
// the standard closed-loop handshake between consecutive control cycles.
func (o *Output) PassToInput(input *Input) {
	copy(input.CurrentPosition, o.NewPosition)
	copy(input.CurrentVelocity, o.NewVelocity)
	copy(input.CurrentAcceleration, o.NewAcceleration)
}
