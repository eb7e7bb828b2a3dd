package cliconfig

import "os"

// reloadable maps the flag of each hot-reloadable setting to its config
// file key and environment variable suffix.
var reloadable = []struct {
	flag, key, env string
}{
	{"probe-report", "probe_report", "PROBE_REPORT"},
	{"diagnostics", "diagnostics", "DIAGNOSTICS"},
	{"show-ssid", "show_ssid", "SHOW_SSID"},
	{"log-level", "log_level", "LOG_LEVEL"},
}

// PinnedKeys returns the config file keys of reloadable settings that a
// flag or environment variable has fixed for the life of the process.
func PinnedKeys(changed map[string]bool) map[string]bool {
	pinned := map[string]bool{}
	for _, r := range reloadable {
		if changed[r.flag] {
			pinned[r.key] = true
			continue
		}
		if v, ok := os.LookupEnv(EnvPrefix + r.env); ok && v != "" {
			pinned[r.key] = true
		}
	}
	return pinned
}
