package lifecycle

import (
	"context"
	"time"
)

// State is the lifecycle state of a sniffer.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// EventEmitter is called when lifecycle state changes.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}

// Manager manages the lifecycle state machine.
type Manager interface {
	// State returns the current lifecycle state.
	State() State

	// CanStart returns true if a start may begin.
	CanStart() bool

	// CanStop returns true if a stop may begin.
	CanStop() bool

	// TransitionTo attempts to transition to a new state.
	// Returns an error if the transition is not valid.
	TransitionTo(newState State, reason string) error

	// Go runs fn as a tracked worker.
	Go(name string, fn func() error, onExit func(name string, err error))

	// Wait blocks until all workers are done or ctx ends.
	Wait(ctx context.Context) error

	// WaitWithTimeout waits for all workers to finish with a timeout.
	// Returns ErrShutdownTimeout if the timeout expires.
	WaitWithTimeout(timeout time.Duration) error
}
