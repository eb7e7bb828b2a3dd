package pcap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/gopacket/pcapgo"

	"github.com/bft-labs/probewatch/internal/domain"
	"github.com/bft-labs/probewatch/pkg/capture"
	"github.com/bft-labs/probewatch/pkg/log"
)

// ReplaySource feeds the packets of a pcap file to the handler once and
// then returns.
type ReplaySource struct {
	path   string
	mask   domain.FilterMask
	logger log.Logger
	stats  Stats

	mu sync.Mutex
	f  *os.File
}

// NewReplaySource prepares a replay of path. The file is opened by Run.
func NewReplaySource(path string, mask domain.FilterMask, logger log.Logger) *ReplaySource {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &ReplaySource{path: path, mask: mask, logger: logger}
}

// Stats returns the source counters.
func (s *ReplaySource) Stats() *Stats { return &s.stats }

// Run reads the file to the end. It returns nil at end of file and
// ctx.Err() if cancelled first.
func (s *ReplaySource) Run(ctx context.Context, h capture.Handler) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open replay file: %w", err)
	}
	s.mu.Lock()
	s.f = f
	s.mu.Unlock()
	defer s.Close()

	r, err := pcapgo.NewReader(f)
	if err != nil {
		return fmt.Errorf("read pcap header: %w", err)
	}
	d, err := newDecoder(r.LinkType(), s.mask)
	if err != nil {
		return err
	}

	s.logger.Info("replaying capture file",
		log.String("path", s.path),
		log.Stringer("link_type", r.LinkType()),
	)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, _, err := r.ReadPacketData()
		if errors.Is(err, io.EOF) {
			s.logger.Info("replay finished", log.Uint64("packets", s.stats.Packets.Load()))
			return nil
		}
		if err != nil {
			return fmt.Errorf("read packet: %w", err)
		}
		deliver(d, data, h, &s.stats, s.logger)
	}
}

// Close closes the file if Run has opened it.
func (s *ReplaySource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}
