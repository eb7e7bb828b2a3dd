package lifecycle

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bft-labs/probewatch/pkg/log"
)

// Common lifecycle errors.
var (
	ErrNotRunning      = errors.New("not running")
	ErrAlreadyRunning  = errors.New("already running")
	ErrShutdownTimeout = errors.New("shutdown timeout")
)

// ShutdownTimeout is the default maximum time to wait for graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// DefaultManager implements Manager.
type DefaultManager struct {
	mu           sync.RWMutex
	state        State
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	logger       log.Logger
	eventEmitter EventEmitter
}

// NewManager creates a manager in StateStopped. A nil logger discards
// output and a nil emitter is skipped.
func NewManager(logger log.Logger, emitter EventEmitter) *DefaultManager {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &DefaultManager{
		state:        StateStopped,
		logger:       logger,
		eventEmitter: emitter,
	}
}

// State returns the current lifecycle state.
func (l *DefaultManager) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// allowed lists the valid targets from each state.
var allowed = map[State][]State{
	StateStopped:  {StateStarting},
	StateStarting: {StateRunning, StateStopping, StateCrashed},
	StateRunning:  {StateStopping, StateCrashed},
	StateStopping: {StateStopped, StateCrashed},
	StateCrashed:  {StateStarting, StateStopped},
}

// TransitionTo attempts to transition to a new state. Invalid targets
// from an idle state return ErrNotRunning; from an active state they
// return ErrAlreadyRunning.
func (l *DefaultManager) TransitionTo(newState State, reason string) error {
	l.mu.Lock()
	oldState := l.state

	ok := false
	for _, s := range allowed[oldState] {
		if s == newState {
			ok = true
			break
		}
	}
	if !ok {
		l.mu.Unlock()
		if oldState == StateStopped || oldState == StateCrashed {
			return ErrNotRunning
		}
		return ErrAlreadyRunning
	}

	l.state = newState
	l.mu.Unlock()

	// Emit outside the lock.
	if l.eventEmitter != nil {
		l.eventEmitter.OnStateChange(oldState, newState, reason)
	}

	l.logger.Info("state transition",
		log.String("from", oldState.String()),
		log.String("to", newState.String()),
		log.String("reason", reason),
	)
	return nil
}

// CanStart returns true if a start may begin.
func (l *DefaultManager) CanStart() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateStopped || l.state == StateCrashed
}

// CanStop returns true if a stop may begin.
func (l *DefaultManager) CanStop() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateRunning || l.state == StateStarting
}

// SetCancel stores the cancel function used by Cancel.
func (l *DefaultManager) SetCancel(cancel context.CancelFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancel = cancel
}

// Cancel triggers graceful shutdown.
func (l *DefaultManager) Cancel() {
	l.mu.Lock()
	cancel := l.cancel
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Go runs fn in its own goroutine and counts it as a worker until it
// returns. onExit, if set, receives fn's error on the worker goroutine.
func (l *DefaultManager) Go(name string, fn func() error, onExit func(name string, err error)) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		err := fn()
		if err != nil && !errors.Is(err, context.Canceled) {
			l.logger.Error("worker exited", log.String("worker", name), log.Err(err))
		} else {
			l.logger.Debug("worker exited", log.String("worker", name))
		}
		if onExit != nil {
			onExit(name, err)
		}
	}()
}

// Wait blocks until every worker started with Go has returned or ctx
// is done.
func (l *DefaultManager) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitWithTimeout waits for all workers to finish with a timeout.
// Returns ErrShutdownTimeout if the timeout expires.
func (l *DefaultManager) WaitWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := l.Wait(ctx); err != nil {
		l.logger.Warn("shutdown timeout, forcing exit",
			log.Duration("timeout", timeout),
		)
		return ErrShutdownTimeout
	}
	return nil
}
