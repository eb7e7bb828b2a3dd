// Package configwatcher reloads the runtime toggles of a probewatch
// sniffer when its config file changes. The report toggles
// (probe_report, diagnostics, show_ssid) and log_level are applied
// without a restart; every other key still needs one.
package configwatcher

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/probewatch/internal/cliconfig"
	"github.com/bft-labs/probewatch/pkg/log"
	"github.com/bft-labs/probewatch/pkg/probewatch"
)

// Reloadable keys.
const (
	KeyProbeReport = "probe_report"
	KeyDiagnostics = "diagnostics"
	KeyShowSSID    = "show_ssid"
	KeyLogLevel    = "log_level"
)

// Plugin implements config watching functionality.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	debounceDelay time.Duration
	pinned        map[string]bool
	applyLevel    func(string) error

	// Runtime state
	path     string
	logger   log.Logger
	reports  probewatch.ReportControl
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
	reloads  atomic.Uint64
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before
	// reloading. Editors often write a file in several steps.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// Pinned lists keys that a reload must not touch, typically the
	// ones set by command-line flags.
	Pinned map[string]bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	pinned := make(map[string]bool, len(cfg.Pinned))
	for k, v := range cfg.Pinned {
		pinned[k] = v
	}
	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
		pinned:        pinned,
		applyLevel:    cliconfig.ApplyLogLevel,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Reloads returns how many times the file has been applied.
func (p *Plugin) Reloads() uint64 {
	return p.reloads.Load()
}

// Initialize starts watching cfg.ConfigPath. Without a config path the
// plugin stays idle.
func (p *Plugin) Initialize(ctx context.Context, cfg probewatch.PluginConfig) error {
	p.mu.Lock()
	p.path = cfg.ConfigPath
	p.logger = cfg.Logger
	p.reports = cfg.Reports
	p.mu.Unlock()

	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}
	if p.path == "" || p.reports == nil {
		p.logger.Warn("config watcher disabled: no config file")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors replace the file rather than write it.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("config watcher started", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)
	return nil
}

// Shutdown stops the config watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	p.wg.Wait()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	name := filepath.Base(p.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			p.debounceReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.reload()
	})
}

// reload applies the reloadable keys present in the file. A file that
// fails to parse leaves the current settings alone.
func (p *Plugin) reload() {
	fc, err := cliconfig.LoadFileConfig(p.path)
	if err != nil {
		p.logger.Warn("config reload failed", log.String("path", p.path), log.Err(err))
		return
	}

	var applied []string
	if v := fc.ProbeReport; v != nil && !p.pinned[KeyProbeReport] {
		p.reports.SetProbeReport(*v)
		applied = append(applied, KeyProbeReport)
	}
	if v := fc.Diagnostics; v != nil && !p.pinned[KeyDiagnostics] {
		p.reports.SetDiagnostics(*v)
		applied = append(applied, KeyDiagnostics)
	}
	if v := fc.ShowSSID; v != nil && !p.pinned[KeyShowSSID] {
		p.reports.SetShowSSID(*v)
		applied = append(applied, KeyShowSSID)
	}
	if fc.LogLevel != "" && !p.pinned[KeyLogLevel] {
		if err := p.applyLevel(fc.LogLevel); err != nil {
			p.logger.Warn("invalid log level in config", log.String("log_level", fc.LogLevel), log.Err(err))
		} else {
			applied = append(applied, KeyLogLevel)
		}
	}

	p.reloads.Add(1)
	p.logger.Info("config reloaded", log.Any("applied", applied))
}

// Ensure Plugin implements probewatch.Plugin.
var _ probewatch.Plugin = (*Plugin)(nil)
