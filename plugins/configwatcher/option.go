package configwatcher

import "github.com/bft-labs/probewatch/pkg/probewatch"

// WithConfigWatcher returns a probewatch Option that reloads the report
// toggles and log level when the config file changes.
//
// Usage:
//
//	s, err := probewatch.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) probewatch.Option {
	return probewatch.WithPlugin(New(cfg))
}

// WithDefaultConfigWatcher returns a probewatch Option that enables
// config watching with default settings.
func WithDefaultConfigWatcher() probewatch.Option {
	return WithConfigWatcher(DefaultConfig())
}
