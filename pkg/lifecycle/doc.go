// Package lifecycle provides the start/stop state machine shared by the
// sniffer and its workers.
//
// A Manager tracks one of five states (Stopped, Starting, Running,
// Stopping, Crashed), counts running workers and waits for them on
// shutdown:
//
//	m := lifecycle.NewManager(logger, emitter)
//	if err := m.TransitionTo(lifecycle.StateStarting, "start"); err != nil {
//	    return err
//	}
//	m.Go("capture", func() error { return src.Run(ctx, handler) }, onExit)
//	m.Go("hopper", func() error { return sched.Run(ctx) }, onExit)
//	_ = m.TransitionTo(lifecycle.StateRunning, "workers started")
//
//	// later
//	m.Cancel()
//	if err := m.WaitWithTimeout(lifecycle.ShutdownTimeout); err != nil {
//	    return err
//	}
//
// # State Machine
//
// Valid state transitions:
//   - Stopped -> Starting
//   - Starting -> Running, Stopping, Crashed
//   - Running -> Stopping, Crashed
//   - Stopping -> Stopped, Crashed
//   - Crashed -> Starting, Stopped
//
// Backoff provides jittered exponential delays for reopening a capture
// device after read failures.
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.0.0
package lifecycle
