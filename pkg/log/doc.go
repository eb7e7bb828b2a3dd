// Package log provides the logging abstraction used across probewatch.
//
// Components log through the Logger interface so that an embedding
// application can route output into its own logging stack. A zerolog
// adapter and a no-op logger are provided:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	logger = log.With(logger, log.String("session", id))
//
// Report lines never go through this package; they are written directly
// to the report sink so that log level changes do not affect them.
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package log
