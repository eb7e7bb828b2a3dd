package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "PROBEWATCH_"

// ApplyEnvConfig applies configuration from environment variables (PROBEWATCH_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	env := func(name string) string { return os.Getenv(EnvPrefix + name) }

	s.setString("iface", env("IFACE"), &cfg.Iface)
	s.setString("replay", env("REPLAY_FILE"), &cfg.ReplayFile)
	s.setString("tuner", env("TUNER"), &cfg.Tuner)
	s.setString("led", env("LED"), &cfg.LED)
	s.setString("channels", env("CHANNELS"), &cfg.Channels)
	s.setString("filter", env("FILTER"), &cfg.Filter)
	s.setString("match", env("MATCH"), &cfg.Match)
	s.setString("metrics-addr", env("METRICS_ADDR"), &cfg.MetricsAddr)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("hop-interval", env("HOP_INTERVAL"), &cfg.HopInterval); err != nil {
		return err
	}
	if err := s.setDuration("read-timeout", env("READ_TIMEOUT"), &cfg.ReadTimeout); err != nil {
		return err
	}

	if err := s.setIntFromString("min-channel", env("MIN_CHANNEL"), &cfg.MinChannel); err != nil {
		return err
	}
	if err := s.setIntFromString("max-channel", env("MAX_CHANNEL"), &cfg.MaxChannel); err != nil {
		return err
	}
	if err := s.setIntFromString("snap-len", env("SNAP_LEN"), &cfg.SnapLen); err != nil {
		return err
	}

	if err := s.setBoolFromString("probe-report", env("PROBE_REPORT"), &cfg.ProbeReport); err != nil {
		return err
	}
	if err := s.setBoolFromString("diagnostics", env("DIAGNOSTICS"), &cfg.Diagnostics); err != nil {
		return err
	}
	if err := s.setBoolFromString("show-ssid", env("SHOW_SSID"), &cfg.ShowSSID); err != nil {
		return err
	}
	if err := s.setBoolFromString("rfmon", env("RFMON"), &cfg.RFMon); err != nil {
		return err
	}

	return nil
}
