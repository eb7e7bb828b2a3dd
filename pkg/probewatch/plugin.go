package probewatch

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/probewatch/pkg/log"
)

// Plugin extends a Sniffer. Plugins are initialized by Start in
// registration order and shut down in reverse order when the sniffer
// stops.
type Plugin interface {
	// Name identifies the plugin in logs.
	Name() string

	// Initialize is called during Start. ctx is cancelled when the
	// sniffer stops. An error aborts Start.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown releases the plugin's resources.
	Shutdown(ctx context.Context) error
}

// ReportControl changes the report toggles of a running sniffer.
type ReportControl interface {
	SetProbeReport(on bool)
	SetDiagnostics(on bool)
	SetShowSSID(on bool)
}

// PluginConfig is what a plugin can see of the sniffer.
type PluginConfig struct {
	// ConfigPath is the config file the sniffer was loaded from, if any.
	ConfigPath string

	// Logger carries the session id of the current run.
	Logger log.Logger

	// Reports toggles report output.
	Reports ReportControl

	// Gatherer exposes the sniffer's metrics.
	Gatherer prometheus.Gatherer
}

// BasePlugin implements Plugin with no-op lifecycle hooks.
type BasePlugin struct {
	PluginName string
}

func (p BasePlugin) Name() string {
	if p.PluginName == "" {
		return "plugin"
	}
	return p.PluginName
}

func (BasePlugin) Initialize(context.Context, PluginConfig) error { return nil }
func (BasePlugin) Shutdown(context.Context) error                 { return nil }
