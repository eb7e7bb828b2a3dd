package probewatch

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bft-labs/probewatch/pkg/capture"
	sniffer "github.com/bft-labs/probewatch/pkg/probewatch"
)

type sliceSource struct {
	frames [][]byte
	err    error
	block  bool
}

func (s sliceSource) Run(ctx context.Context, h capture.Handler) error {
	for _, p := range s.frames {
		h(capture.RawCapture{Payload: p, Rx: capture.RxControl{RSSI: -40}}, capture.PacketMgmt)
	}
	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.err
}

func (sliceSource) Close() error { return nil }

func probe() []byte {
	p := make([]byte, capture.DataLength)
	p[0] = 0x40
	copy(p[10:], []byte{0xaa, 0xbb, 0xcc, 0x00, 0x11, 0x22})
	return p
}

func TestRun_SourceExhausted(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), DefaultConfig(),
		sniffer.WithSource(sliceSource{frames: [][]byte{probe()}}),
		sniffer.WithReportWriter(&out),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := "RSSI: -40 Peer MAC: aa:bb:cc:00:11:22\n"; out.String() != want {
		t.Errorf("report = %q, want %q", out.String(), want)
	}
}

func TestRun_SourceError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), DefaultConfig(), sniffer.WithSource(sliceSource{err: boom}))
	if !errors.Is(err, boom) {
		t.Fatalf("Run = %v, want %v", err, boom)
	}
}

func TestRun_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := Run(ctx, DefaultConfig(), sniffer.WithSource(sliceSource{block: true})); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	if err := Run(context.Background(), DefaultConfig()); !errors.Is(err, sniffer.ErrNoSource) {
		t.Fatalf("Run = %v, want ErrNoSource", err)
	}
}
