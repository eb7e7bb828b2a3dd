package channel

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/bft-labs/probewatch/pkg/log"
)

// DefaultInterval is the dwell time on each channel.
const DefaultInterval = 500 * time.Millisecond

// Tuner retunes the radio.
type Tuner interface {
	SetChannel(ctx context.Context, ch int) error
}

// Indicator is toggled once per hop as a liveness signal.
type Indicator interface {
	Toggle()
}

// Observer is notified of every hop. Calls happen on the scheduler
// goroutine.
type Observer interface {
	ChannelChanged(ch int)
	TuneFailed(ch int, err error)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval sets the dwell time. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithIndicator sets the liveness indicator.
func WithIndicator(ind Indicator) Option {
	return func(s *Scheduler) {
		if ind != nil {
			s.indicator = ind
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver sets the hop observer.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) {
		if o != nil {
			s.observer = o
		}
	}
}

// Scheduler hops through a Plan on a fixed interval.
type Scheduler struct {
	plan      Plan
	tuner     Tuner
	interval  time.Duration
	indicator Indicator
	logger    log.Logger
	observer  Observer

	// idx is owned by the goroutine calling Run or Step.
	idx     int
	current atomic.Int64
	hops    atomic.Uint64
	fails   atomic.Uint64
}

// NewScheduler creates a scheduler positioned on the first channel of
// plan. It does not touch the radio until Run or Step is called.
func NewScheduler(plan Plan, tuner Tuner, opts ...Option) (*Scheduler, error) {
	if plan.Len() == 0 {
		return nil, ErrEmptyPlan
	}
	if tuner == nil {
		return nil, errors.New("channel: nil tuner")
	}
	s := &Scheduler{
		plan:      plan,
		tuner:     tuner,
		interval:  DefaultInterval,
		indicator: nopIndicator{},
		logger:    log.NewNoopLogger(),
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(int64(plan.First()))
	return s, nil
}

// Current returns the channel the scheduler last selected. It is safe
// to call from any goroutine.
func (s *Scheduler) Current() int { return int(s.current.Load()) }

// Interval returns the dwell time.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Plan returns the hop order.
func (s *Scheduler) Plan() Plan { return s.plan }

// Hops returns the number of successful tune operations.
func (s *Scheduler) Hops() uint64 { return s.hops.Load() }

// Failures returns the number of failed tune operations.
func (s *Scheduler) Failures() uint64 { return s.fails.Load() }

// Advance moves to the next channel in plan order, wrapping after the
// last one, and returns it. It does not tune the radio.
func (s *Scheduler) Advance() int {
	s.idx = (s.idx + 1) % s.plan.Len()
	ch := s.plan.At(s.idx)
	s.current.Store(int64(ch))
	return ch
}

// Step advances one position, tunes the radio and toggles the indicator.
func (s *Scheduler) Step(ctx context.Context) {
	ch := s.Advance()
	s.tune(ctx, ch)
	s.indicator.Toggle()
}

// Run tunes to the initial channel and then steps once per interval
// until ctx is done. It returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("channel hopping started",
		log.String("plan", s.plan.String()),
		log.Duration("interval", s.interval),
	)
	s.tune(ctx, s.plan.At(s.idx))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("channel hopping stopped", log.Uint64("hops", s.hops.Load()))
			return ctx.Err()
		case <-ticker.C:
			s.Step(ctx)
		}
	}
}

// tune never retries: the next tick tries the next channel anyway.
func (s *Scheduler) tune(ctx context.Context, ch int) {
	if err := s.tuner.SetChannel(ctx, ch); err != nil {
		s.fails.Add(1)
		s.observer.TuneFailed(ch, err)
		s.logger.Warn("set channel failed", log.Int("channel", ch), log.Err(err))
		return
	}
	s.hops.Add(1)
	s.observer.ChannelChanged(ch)
	s.logger.Debug("channel set", log.Int("channel", ch))
}

type nopIndicator struct{}

func (nopIndicator) Toggle() {}

type nopObserver struct{}

func (nopObserver) ChannelChanged(int)    {}
func (nopObserver) TuneFailed(int, error) {}
