package probewatch

import (
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/probewatch/internal/ports"
	"github.com/bft-labs/probewatch/pkg/lifecycle"
	"github.com/bft-labs/probewatch/pkg/log"
)

// Logger is the interface for structured logging.
type Logger = log.Logger

// LogField represents a structured log field.
type LogField = log.Field

// CaptureSource delivers raw 802.11 buffers. Inject one with WithSource
// to replace the built-in pcap sources.
type CaptureSource = ports.CaptureSource

// ChannelTuner retunes the radio.
type ChannelTuner = ports.ChannelTuner

// Indicator is toggled on every hop.
type Indicator = ports.Indicator

// Option configures optional behavior of a Sniffer.
type Option func(*options)

type options struct {
	logger       log.Logger
	eventHandler EventHandler
	plugins      []Plugin
	source       ports.CaptureSource
	tuner        ports.ChannelTuner
	indicator    ports.Indicator
	reports      io.Writer
	registry     *prometheus.Registry
	shutdown     time.Duration
}

func defaultOptions() options {
	return options{
		logger:   log.Discard,
		reports:  os.Stdout,
		shutdown: lifecycle.ShutdownTimeout,
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEventHandler sets a handler for sniffer events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when the sniffer starts.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

// WithSource replaces the pcap source built from Config.Iface or
// Config.ReplayFile.
func WithSource(src CaptureSource) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithTuner replaces the tuner selected by Config.Tuner. Channel
// hopping runs whenever a tuner is injected, even for replays.
func WithTuner(t ChannelTuner) Option {
	return func(o *options) {
		o.tuner = t
	}
}

// WithIndicator replaces the LED or heartbeat indicator.
func WithIndicator(ind Indicator) Option {
	return func(o *options) {
		o.indicator = ind
	}
}

// WithReportWriter sets where report lines are written.
// Default: os.Stdout
func WithReportWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.reports = w
		}
	}
}

// WithRegistry registers the sniffer's metrics with reg instead of a
// private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithShutdownTimeout bounds how long Stop waits for the workers.
// Default: lifecycle.ShutdownTimeout
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdown = d
		}
	}
}
