package probewatch_test

import (
	"bytes"
	"context"
	"sync"
	"sync/atomic"

	"github.com/bft-labs/probewatch/pkg/capture"
	"github.com/bft-labs/probewatch/pkg/probewatch"
)

// probeFrame is a probe request from 11:22:33:44:55:66 for ssid.
func probeFrame(ssid string) []byte {
	p := make([]byte, capture.DataLength)
	p[0] = 0x40
	copy(p[4:], []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	copy(p[10:], []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66})
	copy(p[16:], []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	p[25] = byte(len(ssid))
	copy(p[26:], ssid)
	return p
}

// dataFrame is a data frame with the same transmitter.
func dataFrame() []byte {
	p := probeFrame("")
	p[0] = 0x08
	return p
}

// fakeSource delivers its frames, then either returns err, blocks until
// cancelled, or returns nil.
type fakeSource struct {
	frames [][]byte
	block  bool
	err    error

	runs   atomic.Int32
	closes atomic.Int32
}

func (f *fakeSource) Run(ctx context.Context, h capture.Handler) error {
	f.runs.Add(1)
	for _, p := range f.frames {
		t := capture.PacketMgmt
		if p[0] == 0x08 {
			t = capture.PacketData
		}
		h(capture.RawCapture{Payload: p, Rx: capture.RxControl{RSSI: -67}}, t)
	}
	if f.err != nil {
		return f.err
	}
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (f *fakeSource) Close() error {
	f.closes.Add(1)
	return nil
}

// fakeTuner records every channel it is asked to tune to.
type fakeTuner struct {
	mu    sync.Mutex
	calls []int
	tuned chan int
}

func newFakeTuner() *fakeTuner {
	return &fakeTuner{tuned: make(chan int, 1024)}
}

func (t *fakeTuner) SetChannel(_ context.Context, ch int) error {
	t.mu.Lock()
	t.calls = append(t.calls, ch)
	t.mu.Unlock()
	select {
	case t.tuned <- ch:
	default:
	}
	return nil
}

func (t *fakeTuner) Calls() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]int(nil), t.calls...)
}

type countingIndicator struct{ n atomic.Int32 }

func (c *countingIndicator) Toggle() { c.n.Add(1) }

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// eventTracker records events.
type eventTracker struct {
	probewatch.BaseEventHandler

	mu       sync.Mutex
	states   []probewatch.StateChangeEvent
	channels []probewatch.ChannelChangeEvent
}

func (e *eventTracker) OnStateChange(ev probewatch.StateChangeEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.states = append(e.states, ev)
}

func (e *eventTracker) OnChannelChange(ev probewatch.ChannelChangeEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.channels = append(e.channels, ev)
}

func (e *eventTracker) States() []probewatch.StateChangeEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]probewatch.StateChangeEvent(nil), e.states...)
}

func (e *eventTracker) Channels() []probewatch.ChannelChangeEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]probewatch.ChannelChangeEvent(nil), e.channels...)
}

// trackingPlugin records initialization and shutdown order.
type trackingPlugin struct {
	name      string
	order     *[]string
	mu        *sync.Mutex
	initErr   error
	onInit    func(cfg probewatch.PluginConfig)
	shutdowns atomic.Int32
}

func (p *trackingPlugin) Name() string { return p.name }

func (p *trackingPlugin) Initialize(_ context.Context, cfg probewatch.PluginConfig) error {
	if p.initErr != nil {
		return p.initErr
	}
	p.mu.Lock()
	*p.order = append(*p.order, "init:"+p.name)
	p.mu.Unlock()
	if p.onInit != nil {
		p.onInit(cfg)
	}
	return nil
}

func (p *trackingPlugin) Shutdown(context.Context) error {
	p.shutdowns.Add(1)
	p.mu.Lock()
	*p.order = append(*p.order, "shutdown:"+p.name)
	p.mu.Unlock()
	return nil
}
