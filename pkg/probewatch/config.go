package probewatch

import (
	"fmt"
	"time"

	"github.com/bft-labs/probewatch/internal/domain"
	"github.com/bft-labs/probewatch/pkg/channel"
	"github.com/bft-labs/probewatch/pkg/dot11"
)

// Tuner backends.
const (
	TunerNL80211 = "nl80211"
	TunerIW      = "iw"
	TunerNone    = "none"
)

// FilterMask selects the frame categories handed to the dispatcher.
type FilterMask = domain.FilterMask

// Filter categories.
const (
	FilterMgmt    = domain.FilterMgmt
	FilterCtrl    = domain.FilterCtrl
	FilterData    = domain.FilterData
	FilterMisc    = domain.FilterMisc
	FilterAll     = domain.FilterAll
	DefaultFilter = domain.DefaultFilter
)

// Config configures a Sniffer.
type Config struct {
	// Iface is the monitor-mode interface to capture from.
	// Exactly one of Iface and ReplayFile is required unless a source is
	// injected with WithSource.
	Iface string

	// ReplayFile replays a pcap file instead of capturing live. A replay
	// never retunes the radio.
	ReplayFile string

	// Tuner selects the channel tuner backend.
	// Default: nl80211, falling back to iw when netlink is unavailable.
	Tuner string

	// LED names a sysfs LED toggled on every hop. Empty logs a heartbeat.
	LED string

	// Plan is the channel hop order.
	// Default: channels 1 through 13.
	Plan channel.Plan

	// HopInterval is the dwell time on each channel.
	// Default: 500ms
	HopInterval time.Duration

	// Filter is the promiscuous filter mask.
	// Default: management frames only.
	Filter FilterMask

	// Match selects the frames that produce a probe line.
	// The zero value selects probe requests.
	Match dot11.Match

	// DisableProbeReport, Diagnostics and ShowSSID are the initial report
	// toggles. They can be changed at runtime through ReportControl.
	// Probe lines are on unless DisableProbeReport is set.
	DisableProbeReport bool
	Diagnostics        bool
	ShowSSID           bool

	// SnapLen is the live capture snapshot length.
	// Default: 256
	SnapLen int

	// ReadTimeout bounds each blocking device read so cancellation is
	// noticed.
	// Default: 100ms
	ReadTimeout time.Duration

	// RFMon asks libpcap to put the interface in monitor mode.
	RFMon bool

	// ConfigPath is passed through to plugins that watch the config file.
	ConfigPath string
}

// DefaultConfig returns a Config with every field at its default.
func DefaultConfig() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	if c.Tuner == "" {
		c.Tuner = TunerNL80211
	}
	if c.Plan.Len() == 0 {
		c.Plan = channel.DefaultPlan()
	}
	if c.HopInterval <= 0 {
		c.HopInterval = channel.DefaultInterval
	}
	if c.Filter == 0 {
		c.Filter = DefaultFilter
	}
	if c.SnapLen <= 0 {
		c.SnapLen = 256
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 100 * time.Millisecond
	}
}

// Validate checks the configuration. It expects SetDefaults to have
// been called.
func (c *Config) Validate() error {
	if c.Iface != "" && c.ReplayFile != "" {
		return fmt.Errorf("%w: Iface and ReplayFile are mutually exclusive", domain.ErrInvalidConfig)
	}
	switch c.Tuner {
	case TunerNL80211, TunerIW, TunerNone:
	default:
		return fmt.Errorf("%w: unknown tuner %q", domain.ErrInvalidConfig, c.Tuner)
	}
	if c.Plan.Len() == 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, channel.ErrEmptyPlan)
	}
	if c.Filter&^FilterAll != 0 {
		return fmt.Errorf("%w: unknown filter bits %#x", domain.ErrInvalidConfig, uint8(c.Filter))
	}
	if c.Match > dot11.MatchAll {
		return fmt.Errorf("%w: unknown match %s", domain.ErrInvalidConfig, c.Match)
	}
	return nil
}
