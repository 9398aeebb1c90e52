// Package otg implements an online, jerk-limited, time-optimal trajectory
// generator for multi-DoF systems. Given arbitrary initial and target
// kinematic states per DoF and velocity, acceleration, and jerk limits, it
// computes a minimum-time seven-segment profile per DoF, synchronizes the
// DoFs, and samples the resulting trajectory inside a hard real-time control
// cycle.
package otg

// Result is the state of a trajectory calculation or update. The values are
// exit-code stable and integer comparable.
type Result int

// Result codes. Success states are non-negative, error states negative.
const (
	// ResultWorking means the trajectory is being calculated normally.
	ResultWorking Result = 0
	// ResultFinished means the trajectory has reached its final state.
	ResultFinished Result = 1
	// ResultError is an unclassified calculation error.
	ResultError Result = -1
	// ResultErrorInvalidInput flags invalid input parameters.
	ResultErrorInvalidInput Result = -100
	// ResultErrorTrajectoryDuration flags a duration beyond the numerically
	// safe range.
	ResultErrorTrajectoryDuration Result = -101
	// ResultErrorPositionalLimits flags a violated positional bound.
	ResultErrorPositionalLimits Result = -102
	// ResultErrorZeroLimits flags a conflict with zero kinematic limits.
	ResultErrorZeroLimits Result = -104
	// ResultErrorExecutionTimeCalculation flags a Step-1 failure.
	ResultErrorExecutionTimeCalculation Result = -110
	// ResultErrorSynchronizationCalculation flags a Step-2 failure at the
	// governing duration.
	ResultErrorSynchronizationCalculation Result = -111
)

func (r Result) String() string {
	switch r {
	case ResultWorking:
		return "working"
	case ResultFinished:
		return "finished"
	case ResultErrorInvalidInput:
		return "error_invalid_input"
	case ResultErrorTrajectoryDuration:
		return "error_trajectory_duration"
	case ResultErrorPositionalLimits:
		return "error_positional_limits"
	case ResultErrorZeroLimits:
		return "error_zero_limits"
	case ResultErrorExecutionTimeCalculation:
		return "error_execution_time_calculation"
	case ResultErrorSynchronizationCalculation:
		return "error_synchronization_calculation"
	default:
		return "error"
	}
}
