package flow

import (
	"errors"
	"fmt"
)

var (
	// ErrTransitionInFlight is returned when a transition is triggered, or the
	// controller disposed, while another transition runs.
	ErrTransitionInFlight = errors.New("transition in flight")
	// ErrInvalidTransition is matched by every InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrReadyTimeout is returned when a scene does not become ready in time.
	ErrReadyTimeout = errors.New("scene ready timeout")
	ErrDisposed     = errors.New("controller disposed")
)

// InvalidTransitionError reports an edge triggered from a state that does not define it.
type InvalidTransitionError struct {
	From State
	Edge Edge
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s from state %s", e.Edge, e.From)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
