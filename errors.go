package otg

import (
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// ErrorHandler decides whether validation and calculation faults surface as
// errors or are swallowed so that only the result code speaks. The core never
// assumes one policy.
type ErrorHandler interface {
	// OnValidationError is called with a fault found during input validation.
	// Returning a non-nil error aborts the call.
	OnValidationError(err error) error
	// OnCalculationError is called with a fault found during trajectory
	// calculation together with the result that classifies it. Returning a
	// non-nil error aborts the call.
	OnCalculationError(err error, result Result) error
}

// StrictErrorHandler surfaces every fault as an error.
type StrictErrorHandler struct{}

// OnValidationError returns the fault wrapped as a validation error.
func (StrictErrorHandler) OnValidationError(err error) error {
	return errors.Wrap(err, "validation error")
}

// OnCalculationError returns the fault wrapped as a calculation error.
func (StrictErrorHandler) OnCalculationError(err error, result Result) error {
	return errors.Wrapf(err, "calculation error (%s)", result)
}

// IgnoreErrorHandler swallows faults, optionally logging them, so that the
// caller observes only result codes.
type IgnoreErrorHandler struct {
	// Logger, if set, receives each swallowed fault at debug level.
	Logger golog.Logger
}

// OnValidationError logs and swallows the fault.
func (h IgnoreErrorHandler) OnValidationError(err error) error {
	if h.Logger != nil {
		h.Logger.Debugw("ignoring validation error", "error", err)
	}
	return nil
}

// OnCalculationError logs and swallows the fault.
func (h IgnoreErrorHandler) OnCalculationError(err error, result Result) error {
	if h.Logger != nil {
		h.Logger.Debugw("ignoring calculation error", "error", err, "result", result)
	}
	return nil
}
