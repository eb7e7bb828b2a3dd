// Package probewatch provides a passive 802.11 probe-request monitor.
//
// Example usage:
//
//	cfg := probewatch.DefaultConfig()
//	cfg.Iface = "wlan0mon"
//	if err := probewatch.Run(ctx, cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// For lifecycle control, events and plugins use the pkg/probewatch
// package directly.
package probewatch

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/bft-labs/probewatch/internal/cliconfig"
	"github.com/bft-labs/probewatch/pkg/log"
	sniffer "github.com/bft-labs/probewatch/pkg/probewatch"
)

// Config holds the configuration for a sniffer.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = sniffer.Config

// Option configures optional behavior of the sniffer.
type Option = sniffer.Option

// Run captures and reports until ctx is cancelled, the capture source
// is exhausted or a worker fails. Logs go to the package logger unless
// an option overrides it.
func Run(ctx context.Context, cfg Config, opts ...Option) error {
	opts = append([]Option{sniffer.WithLogger(log.NewZerologAdapterWithLogger(Logger()))}, opts...)

	s, err := sniffer.New(cfg, opts...)
	if err != nil {
		return err
	}
	if err := s.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		if err := s.Stop(); err != nil && !errors.Is(err, sniffer.ErrNotRunning) {
			return err
		}
		return nil
	case <-s.Done():
		return s.Err()
	}
}

// DefaultConfig returns a Config with sensible default values.
// At minimum, set Iface or ReplayFile before calling Run.
func DefaultConfig() Config {
	return sniffer.DefaultConfig()
}

// Logger returns the package-level zerolog logger. It writes to stderr.
func Logger() zerolog.Logger {
	return cliconfig.Logger()
}
