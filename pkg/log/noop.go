package log

// NoopLogger discards everything. Components fall back to it when
// constructed with a nil Logger.
type NoopLogger struct{}

// Discard is a shared NoopLogger.
var Discard Logger = NoopLogger{}

// NewNoopLogger returns a NoopLogger.
func NewNoopLogger() *NoopLogger { return &NoopLogger{} }

func (NoopLogger) Debug(string, ...Field) {}
func (NoopLogger) Info(string, ...Field)  {}
func (NoopLogger) Warn(string, ...Field)  {}
func (NoopLogger) Error(string, ...Field) {}
