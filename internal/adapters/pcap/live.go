package pcap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	gopcap "github.com/google/gopacket/pcap"

	"github.com/bft-labs/probewatch/internal/domain"
	"github.com/bft-labs/probewatch/pkg/capture"
	"github.com/bft-labs/probewatch/pkg/lifecycle"
	"github.com/bft-labs/probewatch/pkg/log"
)

// LiveConfig configures a LiveSource.
type LiveConfig struct {
	Iface       string
	SnapLen     int
	ReadTimeout time.Duration
	RFMon       bool
	Filter      domain.FilterMask
}

// LiveSource captures from a monitor-mode interface through libpcap.
type LiveSource struct {
	cfg    LiveConfig
	logger log.Logger
	stats  Stats

	mu     sync.Mutex
	handle *gopcap.Handle
}

// NewLiveSource creates a source for cfg.Iface. The device is opened by
// Run.
func NewLiveSource(cfg LiveConfig, logger log.Logger) *LiveSource {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if cfg.SnapLen <= 0 {
		cfg.SnapLen = 256
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 100 * time.Millisecond
	}
	return &LiveSource{cfg: cfg, logger: logger}
}

// Stats returns the source counters.
func (s *LiveSource) Stats() *Stats { return &s.stats }

func (s *LiveSource) open() (*gopcap.Handle, error) {
	inactive, err := gopcap.NewInactiveHandle(s.cfg.Iface)
	if err != nil {
		return nil, fmt.Errorf("pcap %s: %w", s.cfg.Iface, err)
	}
	defer inactive.CleanUp()

	if err := inactive.SetSnapLen(s.cfg.SnapLen); err != nil {
		return nil, fmt.Errorf("set snaplen: %w", err)
	}
	if err := inactive.SetPromisc(true); err != nil {
		return nil, fmt.Errorf("set promisc: %w", err)
	}
	if err := inactive.SetTimeout(s.cfg.ReadTimeout); err != nil {
		return nil, fmt.Errorf("set timeout: %w", err)
	}
	if s.cfg.RFMon {
		if err := inactive.SetRFMon(true); err != nil {
			return nil, fmt.Errorf("set rfmon: %w", err)
		}
	}

	h, err := inactive.Activate()
	if err != nil {
		return nil, fmt.Errorf("activate %s: %w", s.cfg.Iface, err)
	}

	if expr := bpfExpr(s.cfg.Filter); expr != "" {
		if err := h.SetBPFFilter(expr); err != nil {
			h.Close()
			return nil, fmt.Errorf("set filter %q: %w", expr, err)
		}
	}

	s.mu.Lock()
	s.handle = h
	s.mu.Unlock()
	return h, nil
}

// Run captures until ctx is done. A failure to open the device the
// first time is returned; read failures afterwards reopen the device
// with backoff.
func (s *LiveSource) Run(ctx context.Context, h capture.Handler) error {
	handle, err := s.open()
	if err != nil {
		return err
	}
	defer s.Close()

	backoff := lifecycle.NewBackoff(500*time.Millisecond, 10*time.Second)

	for {
		d, err := newDecoder(handle.LinkType(), s.cfg.Filter)
		if err != nil {
			return fmt.Errorf("%s: %w", s.cfg.Iface, err)
		}
		s.logger.Info("capture started",
			log.String("iface", s.cfg.Iface),
			log.Stringer("link_type", handle.LinkType()),
			log.Stringer("filter", s.cfg.Filter),
		)

		err = s.readLoop(ctx, handle, d, h)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}
		s.logger.Error("capture read failed, reopening", log.String("iface", s.cfg.Iface), log.Err(err))
		s.Close()

		for {
			if err := backoff.Wait(ctx); err != nil {
				return err
			}
			handle, err = s.open()
			if err == nil {
				backoff.Reset()
				break
			}
			s.logger.Warn("reopen failed", log.Err(err), log.Duration("next", backoff.Current()))
		}
	}
}

// readLoop returns nil at end of capture and an error on device failure.
func (s *LiveSource) readLoop(ctx context.Context, handle *gopcap.Handle, d *decoder, h capture.Handler) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		data, _, err := handle.ZeroCopyReadPacketData()
		switch {
		case err == nil:
			deliver(d, data, h, &s.stats, s.logger)
		case errors.Is(err, gopcap.NextErrorTimeoutExpired):
		case errors.Is(err, io.EOF), errors.Is(err, gopcap.NextErrorNoMorePackets):
			return nil
		default:
			return err
		}
	}
}

// Close closes the device handle if open. Run closes the handle itself
// on return; callers stop a running source by cancelling its context.
func (s *LiveSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		s.handle.Close()
		s.handle = nil
	}
	return nil
}
