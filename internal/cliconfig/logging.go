package cliconfig

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	logger = NewLogger(os.Stderr)
}

// Logger returns the package logger. It writes to stderr so that report
// lines on stdout stay machine readable.
func Logger() zerolog.Logger {
	return logger
}

// NewLogger builds a console logger on w with timestamps.
func NewLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// ApplyLogLevel sets the global zerolog level from a level name.
func ApplyLogLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
