package promexporter

import "github.com/bft-labs/probewatch/pkg/probewatch"

// WithExporter returns a probewatch Option that serves metrics on addr.
//
// Usage:
//
//	s, err := probewatch.New(cfg, promexporter.WithExporter(":9465"))
func WithExporter(addr string) probewatch.Option {
	cfg := DefaultConfig()
	cfg.Addr = addr
	return probewatch.WithPlugin(New(cfg))
}
