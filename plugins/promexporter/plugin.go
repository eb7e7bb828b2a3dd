// Package promexporter serves a sniffer's Prometheus metrics over HTTP.
package promexporter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bft-labs/probewatch/pkg/log"
	"github.com/bft-labs/probewatch/pkg/probewatch"
)

// Plugin exposes /metrics and /healthz while the sniffer runs.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	addr              string
	path              string
	readHeaderTimeout time.Duration

	// Runtime state
	logger log.Logger
	server *http.Server
	ln     net.Listener
	wg     sync.WaitGroup
}

// Config holds configuration options for the exporter.
type Config struct {
	// Addr is the listen address. Port 0 picks a free port.
	// Default: ":9465"
	Addr string

	// Path is where metrics are served.
	// Default: /metrics
	Path string

	// ReadHeaderTimeout bounds slow clients.
	// Default: 5 seconds
	ReadHeaderTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:              ":9465",
		Path:              "/metrics",
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// New creates an exporter plugin.
func New(cfg Config) *Plugin {
	d := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = d.Addr
	}
	if cfg.Path == "" {
		cfg.Path = d.Path
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	return &Plugin{
		addr:              cfg.Addr,
		path:              cfg.Path,
		readHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "promexporter"
}

// Addr returns the bound listen address, or "" when not serving.
func (p *Plugin) Addr() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ln == nil {
		return ""
	}
	return p.ln.Addr().String()
}

// Initialize binds the listener and starts serving. A bind failure
// aborts the sniffer's Start.
func (p *Plugin) Initialize(_ context.Context, cfg probewatch.PluginConfig) error {
	if cfg.Gatherer == nil {
		return errors.New("promexporter: no metrics gatherer")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	ln, err := net.Listen("tcp", p.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", p.addr, err)
	}

	router := mux.NewRouter()
	router.Handle(p.path, promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{
		ErrorLog: errorLog{logger},
	})).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	}).Methods(http.MethodGet)

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: p.readHeaderTimeout,
	}

	p.mu.Lock()
	p.logger = logger
	p.server = srv
	p.ln = ln
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", log.Err(err))
		}
	}()

	logger.Info("metrics exporter listening",
		log.String("addr", ln.Addr().String()),
		log.String("path", p.path),
	)
	return nil
}

// Shutdown stops the HTTP server.
func (p *Plugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	srv := p.server
	p.server = nil
	p.ln = nil
	p.mu.Unlock()

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)
	p.wg.Wait()
	return err
}

// errorLog routes promhttp errors to the sniffer logger.
type errorLog struct{ l log.Logger }

func (e errorLog) Println(v ...interface{}) {
	e.l.Error("metrics handler error", log.String("error", fmt.Sprint(v...)))
}

// Ensure Plugin implements probewatch.Plugin.
var _ probewatch.Plugin = (*Plugin)(nil)
