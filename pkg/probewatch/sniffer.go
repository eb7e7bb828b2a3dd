package probewatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/probewatch/internal/domain"
	"github.com/bft-labs/probewatch/internal/metrics"
	"github.com/bft-labs/probewatch/internal/ports"
	"github.com/bft-labs/probewatch/pkg/capture"
	"github.com/bft-labs/probewatch/pkg/channel"
	"github.com/bft-labs/probewatch/pkg/dot11"
	"github.com/bft-labs/probewatch/pkg/lifecycle"
	"github.com/bft-labs/probewatch/pkg/log"
)

// Errors returned by the Sniffer lifecycle methods.
var (
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrInvalidConfig   = domain.ErrInvalidConfig
	ErrNoSource        = domain.ErrNoSource
)

// Sniffer is a passive probe-request monitor that can be embedded in
// other applications. Use New to create one, then Start to begin
// capturing.
type Sniffer struct {
	config     Config
	opts       options
	lifecycle  *lifecycle.DefaultManager
	dispatcher *capture.Dispatcher
	recorder   *metrics.Recorder
	registry   *prometheus.Registry
	events     *eventBridge
	logger     log.Logger

	// mu serialises Start, Stop and the end of a run.
	mu  sync.Mutex
	run atomic.Pointer[run]
}

// run holds the resources of one Start/Stop cycle.
type run struct {
	id      string
	logger  log.Logger
	cancel  context.CancelFunc
	done    chan struct{}
	source  ports.CaptureSource
	sched   *channel.Scheduler
	plugins []Plugin
	closers []func() error

	// Set by the capture worker before it is counted as done.
	endReason string

	errOnce sync.Once
	err     error
}

func (r *run) fail(err error) {
	r.errOnce.Do(func() { r.err = err })
}

// New creates a Sniffer in StateStopped. Returns an error if the
// configuration is invalid.
func New(cfg Config, opts ...Option) (*Sniffer, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.source == nil && cfg.Iface == "" && cfg.ReplayFile == "" {
		return nil, fmt.Errorf("%w: set Iface or ReplayFile", ErrNoSource)
	}

	reg := o.registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	recorder := metrics.NewRecorder(reg)
	events := &eventBridge{handler: o.eventHandler, recorder: recorder}

	dispatcher := capture.NewDispatcher(capture.DispatcherConfig{
		Match:       cfg.Match,
		ProbeReport: !cfg.DisableProbeReport,
		Diagnostics: cfg.Diagnostics,
		ShowSSID:    cfg.ShowSSID,
	}, capture.NewLineWriter(o.reports), recorder)

	closed := make(chan struct{})
	close(closed)

	s := &Sniffer{
		config:     cfg,
		opts:       o,
		lifecycle:  lifecycle.NewManager(o.logger, events),
		dispatcher: dispatcher,
		recorder:   recorder,
		registry:   reg,
		events:     events,
		logger:     o.logger,
	}
	s.run.Store(&run{done: closed})
	return s, nil
}

// Start opens the capture source and tuner, initializes plugins and
// starts the capture and hopping workers. It returns once they are
// running. ctx bounds the lifetime of the run.
func (s *Sniffer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lifecycle.CanStart() {
		return ErrAlreadyRunning
	}
	// After a shutdown timeout the old workers may still be draining.
	select {
	case <-s.run.Load().done:
	default:
		return ErrAlreadyRunning
	}
	if err := s.lifecycle.TransitionTo(StateStarting, "Start() called"); err != nil {
		return err
	}

	id := uuid.NewString()
	r := &run{
		id:     id,
		logger: log.With(s.logger, log.String("session", id)),
		done:   make(chan struct{}),
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	s.lifecycle.SetCancel(cancel)

	if err := s.prepare(runCtx, r); err != nil {
		cancel()
		s.release(r)
		_ = s.lifecycle.TransitionTo(StateCrashed, err.Error())
		close(r.done)
		s.run.Store(r)
		return err
	}
	s.run.Store(r)

	s.lifecycle.Go("capture", func() error {
		return r.source.Run(runCtx, s.dispatcher.Handler())
	}, func(_ string, err error) {
		switch {
		case err == nil:
			r.endReason = "capture source exhausted"
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			r.endReason = "context done"
		default:
			r.endReason = "capture failed"
			r.fail(err)
		}
		// Without captures there is nothing left to hop for.
		cancel()
	})
	if r.sched != nil {
		s.lifecycle.Go("scheduler", func() error {
			return r.sched.Run(runCtx)
		}, nil)
	}

	// Nothing else transitions while s.mu is held.
	_ = s.lifecycle.TransitionTo(StateRunning, "workers started")
	r.logger.Info("sniffer started",
		log.Bool("hopping", r.sched != nil),
		log.String("plan", s.config.Plan.String()),
		log.Duration("interval", s.config.HopInterval),
		log.Stringer("match", s.config.Match),
	)

	go s.supervise(r)
	return nil
}

// prepare opens the run's adapters and initializes plugins.
func (s *Sniffer) prepare(ctx context.Context, r *run) error {
	src, err := s.openSource(r.logger)
	if err != nil {
		return err
	}
	r.source = src
	r.closers = append(r.closers, src.Close)

	tuner, closeTuner, err := s.openTuner(r.logger)
	if err != nil {
		return err
	}
	if closeTuner != nil {
		r.closers = append(r.closers, closeTuner)
	}
	if tuner != nil {
		ind, err := s.openIndicator(r.logger)
		if err != nil {
			return err
		}
		sched, err := channel.NewScheduler(s.config.Plan, tuner,
			channel.WithInterval(s.config.HopInterval),
			channel.WithIndicator(ind),
			channel.WithLogger(r.logger),
			channel.WithObserver(s.events),
		)
		if err != nil {
			return err
		}
		r.sched = sched
	}

	pluginCfg := PluginConfig{
		ConfigPath: s.config.ConfigPath,
		Logger:     r.logger,
		Reports:    s.dispatcher,
		Gatherer:   s.registry,
	}
	for _, p := range s.opts.plugins {
		if err := p.Initialize(ctx, pluginCfg); err != nil {
			r.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		r.plugins = append(r.plugins, p)
		r.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}
	return nil
}

// release shuts down the run's plugins in reverse order and closes its
// adapters.
func (s *Sniffer) release(r *run) {
	shutdownCtx := context.Background()
	for i := len(r.plugins) - 1; i >= 0; i-- {
		p := r.plugins[i]
		if err := p.Shutdown(shutdownCtx); err != nil {
			r.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err))
		} else {
			r.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
		}
	}
	r.plugins = nil

	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			r.logger.Warn("close failed", log.Err(err))
		}
	}
	r.closers = nil
}

// supervise waits for the run's workers, releases its resources and
// records how it ended.
func (s *Sniffer) supervise(r *run) {
	_ = s.lifecycle.Wait(context.Background())
	r.cancel()
	s.release(r)

	s.mu.Lock()
	switch {
	case r.err != nil:
		_ = s.lifecycle.TransitionTo(StateCrashed, r.err.Error())
	case s.lifecycle.State() == StateRunning:
		_ = s.lifecycle.TransitionTo(StateStopping, r.endReason)
		_ = s.lifecycle.TransitionTo(StateStopped, r.endReason)
	default:
		_ = s.lifecycle.TransitionTo(StateStopped, "graceful shutdown")
	}
	s.mu.Unlock()

	r.logger.Info("sniffer stopped",
		log.Uint64("hops", s.hops(r)),
		log.Uint64("tune_failures", s.tuneFailures(r)),
	)
	close(r.done)
}

// Stop cancels the run and waits for the workers to return. Returns
// ErrShutdownTimeout if they do not return within the shutdown timeout
// (see WithShutdownTimeout). Start fails with ErrAlreadyRunning until
// those workers have returned.
func (s *Sniffer) Stop() error {
	s.mu.Lock()
	if !s.lifecycle.CanStop() {
		s.mu.Unlock()
		return ErrNotRunning
	}
	if err := s.lifecycle.TransitionTo(StateStopping, "Stop() called"); err != nil {
		s.mu.Unlock()
		return err
	}
	r := s.run.Load()
	s.mu.Unlock()

	r.cancel()

	if err := s.lifecycle.WaitWithTimeout(s.opts.shutdown); err != nil {
		s.mu.Lock()
		_ = s.lifecycle.TransitionTo(StateCrashed, "shutdown timeout")
		s.mu.Unlock()
		return ErrShutdownTimeout
	}
	<-r.done
	return nil
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (s *Sniffer) Status() State {
	return s.lifecycle.State()
}

// Done returns a channel closed when the current run has ended, either
// through Stop, the capture source running out or a worker failing.
// Before the first Start it returns a closed channel.
func (s *Sniffer) Done() <-chan struct{} {
	return s.run.Load().done
}

// Err returns the error that ended the last run, if any.
func (s *Sniffer) Err() error {
	r := s.run.Load()
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// SessionID identifies the current run in logs. Empty before Start.
func (s *Sniffer) SessionID() string {
	return s.run.Load().id
}

// Channel returns the channel the radio was last tuned to, or 0 when
// not hopping.
func (s *Sniffer) Channel() int {
	r := s.run.Load()
	if r.sched == nil {
		return 0
	}
	return r.sched.Current()
}

// Reports returns the runtime report toggles.
func (s *Sniffer) Reports() ReportControl {
	return s.dispatcher
}

// Gatherer exposes the sniffer's metrics.
func (s *Sniffer) Gatherer() prometheus.Gatherer {
	return s.registry
}

func (s *Sniffer) hops(r *run) uint64 {
	if r.sched == nil {
		return 0
	}
	return r.sched.Hops()
}

func (s *Sniffer) tuneFailures(r *run) uint64 {
	if r.sched == nil {
		return 0
	}
	return r.sched.Failures()
}

// validateModuleVersions checks that all module versions are compatible.
// Returns an error if any module version is below its minimum compatible version.
func validateModuleVersions() error {
	modules := []struct {
		name       string
		version    string
		minVersion string
	}{
		{"dot11", dot11.Version, dot11.MinCompatibleVersion},
		{"capture", capture.Version, capture.MinCompatibleVersion},
		{"channel", channel.Version, channel.MinCompatibleVersion},
		{"lifecycle", lifecycle.Version, lifecycle.MinCompatibleVersion},
		{"log", log.Version, log.MinCompatibleVersion},
	}

	for _, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				m.name, m.version, m.minVersion)
		}
	}
	return nil
}

// isVersionCompatible checks if version >= minVersion.
// Assumes versions are in format "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
