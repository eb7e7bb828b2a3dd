package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/probewatch/internal/domain"
	"github.com/bft-labs/probewatch/pkg/channel"
	"github.com/bft-labs/probewatch/pkg/dot11"
)

// Tuner backends accepted by --tuner.
const (
	TunerNL80211 = "nl80211"
	TunerIW      = "iw"
	TunerNone    = "none"
)

// Config holds CLI configuration for probewatch.
type Config struct {
	Iface      string
	ReplayFile string

	Tuner       string
	LED         string
	HopInterval time.Duration
	MinChannel  int
	MaxChannel  int
	Channels    string // explicit hop order, overrides Min/MaxChannel

	Filter      string
	Match       string
	ProbeReport bool
	Diagnostics bool
	ShowSSID    bool

	SnapLen     int
	ReadTimeout time.Duration
	RFMon       bool

	MetricsAddr string
	LogLevel    string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Tuner:       TunerNL80211,
		HopInterval: channel.DefaultInterval,
		MinChannel:  channel.MinChannel,
		MaxChannel:  channel.DefaultMaxChannel,
		Filter:      domain.DefaultFilter.String(),
		Match:       dot11.MatchProbeRequest.String(),
		ProbeReport: true,
		SnapLen:     256,
		ReadTimeout: 100 * time.Millisecond,
		LogLevel:    zerolog.InfoLevel.String(),
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Iface == "" && c.ReplayFile == "" {
		return fmt.Errorf("iface is required (or replay)")
	}
	if c.Iface != "" && c.ReplayFile != "" {
		return fmt.Errorf("iface and replay are mutually exclusive")
	}

	// Replayed captures cannot be retuned.
	if c.ReplayFile != "" {
		c.Tuner = TunerNone
	}
	if c.Tuner == "" {
		c.Tuner = TunerNL80211
	}
	switch c.Tuner {
	case TunerNL80211, TunerIW, TunerNone:
	default:
		return fmt.Errorf("tuner: unknown backend %q", c.Tuner)
	}

	if c.HopInterval <= 0 {
		return fmt.Errorf("hop-interval must be positive")
	}
	if _, err := c.Plan(); err != nil {
		return err
	}
	if _, err := c.FilterMask(); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if _, err := dot11.ParseMatch(c.Match); err != nil {
		return fmt.Errorf("match: %w", err)
	}
	if c.SnapLen <= 0 {
		return fmt.Errorf("snap-len must be positive")
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read-timeout must be positive")
	}
	if c.LogLevel == "" {
		c.LogLevel = zerolog.InfoLevel.String()
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	return nil
}

// Plan returns the channel hop order described by Channels, or by
// MinChannel..MaxChannel when Channels is empty.
func (c *Config) Plan() (channel.Plan, error) {
	if c.Channels != "" {
		p, err := channel.ParseList(c.Channels)
		if err != nil {
			return channel.Plan{}, fmt.Errorf("channels: %w", err)
		}
		return p, nil
	}
	p, err := channel.NewRangePlan(c.MinChannel, c.MaxChannel)
	if err != nil {
		return channel.Plan{}, fmt.Errorf("min-channel/max-channel: %w", err)
	}
	return p, nil
}

// FilterMask parses Filter.
func (c *Config) FilterMask() (domain.FilterMask, error) {
	return domain.ParseFilterMask(c.Filter)
}

// MatchPredicate parses Match.
func (c *Config) MatchPredicate() dot11.Match {
	m, _ := dot11.ParseMatch(c.Match)
	return m
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
