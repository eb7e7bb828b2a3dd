package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
// Booleans are pointers so that an absent key leaves the default alone.
type FileConfig struct {
	Iface       string `toml:"iface"`
	ReplayFile  string `toml:"replay_file"`
	Tuner       string `toml:"tuner"`
	LED         string `toml:"led"`
	HopInterval string `toml:"hop_interval"`
	MinChannel  int    `toml:"min_channel"`
	MaxChannel  int    `toml:"max_channel"`
	Channels    string `toml:"channels"`
	Filter      string `toml:"filter"`
	Match       string `toml:"match"`
	ProbeReport *bool  `toml:"probe_report"`
	Diagnostics *bool  `toml:"diagnostics"`
	ShowSSID    *bool  `toml:"show_ssid"`
	SnapLen     int    `toml:"snap_len"`
	ReadTimeout string `toml:"read_timeout"`
	RFMon       *bool  `toml:"rfmon"`
	MetricsAddr string `toml:"metrics_addr"`
	LogLevel    string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.probewatch/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".probewatch", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("iface", fc.Iface, &cfg.Iface)
	s.setString("replay", fc.ReplayFile, &cfg.ReplayFile)
	s.setString("tuner", fc.Tuner, &cfg.Tuner)
	s.setString("led", fc.LED, &cfg.LED)
	s.setString("channels", fc.Channels, &cfg.Channels)
	s.setString("filter", fc.Filter, &cfg.Filter)
	s.setString("match", fc.Match, &cfg.Match)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("hop-interval", fc.HopInterval, &cfg.HopInterval); err != nil {
		return err
	}
	if err := s.setDuration("read-timeout", fc.ReadTimeout, &cfg.ReadTimeout); err != nil {
		return err
	}

	s.setInt("min-channel", fc.MinChannel, &cfg.MinChannel)
	s.setInt("max-channel", fc.MaxChannel, &cfg.MaxChannel)
	s.setInt("snap-len", fc.SnapLen, &cfg.SnapLen)

	s.setBool("probe-report", fc.ProbeReport, &cfg.ProbeReport)
	s.setBool("diagnostics", fc.Diagnostics, &cfg.Diagnostics)
	s.setBool("show-ssid", fc.ShowSSID, &cfg.ShowSSID)
	s.setBool("rfmon", fc.RFMon, &cfg.RFMon)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
