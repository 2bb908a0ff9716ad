package perch

import (
	"errors"
	"fmt"
)

var (
	// ErrHalt is returned by a modifier's Fn to end the current pass early.
	// The data it returned becomes the final positioning data.
	ErrHalt = errors.New("perch: halt pipeline")

	// ErrNoElement is returned by New when a reference or popper Ref is empty.
	ErrNoElement = errors.New("perch: no element")

	// ErrMissingOrder is returned by New when a modifier unknown to the
	// defaults is supplied without an order.
	ErrMissingOrder = errors.New("perch: modifier has no order")
)

// Phase identifies which modifier hook failed.
type Phase string

// Hook phases.
const (
	PhaseLoad    Phase = "load"
	PhaseRun     Phase = "run"
	PhaseDestroy Phase = "destroy"
)

// HookError reports a failure returned by a modifier hook.
type HookError struct {
	Modifier string
	Phase    Phase
	Err      error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("modifier %s %s: %v", e.Modifier, e.Phase, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}
