package domain

import "errors"

// Errors returned by the public API. Check them with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("probewatch: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("probewatch: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("probewatch: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("probewatch: invalid configuration")

	// ErrNoSource is returned when neither an interface nor a replay file is configured.
	ErrNoSource = errors.New("probewatch: no capture source")

	// ErrNotSupported is returned by adapters unavailable on this platform.
	ErrNotSupported = errors.New("probewatch: not supported on this platform")
)
