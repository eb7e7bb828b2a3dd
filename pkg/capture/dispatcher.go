package capture

import (
	"sync/atomic"

	"github.com/bft-labs/probewatch/pkg/dot11"
)

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	// Match selects the frames that produce a probe line.
	Match dot11.Match

	// ProbeReport enables the probe line.
	ProbeReport bool

	// Diagnostics enables one diagnostic line per capture.
	Diagnostics bool

	// ShowSSID appends the clipped SSID to probe lines.
	ShowSSID bool
}

// Dispatcher is the capture callback. It is safe for concurrent use.
type Dispatcher struct {
	match    dot11.Match
	out      *LineWriter
	observer Observer

	probeReport atomic.Bool
	diagnostics atomic.Bool
	showSSID    atomic.Bool
}

// NewDispatcher creates a dispatcher writing to out. A nil observer
// is replaced by a no-op.
func NewDispatcher(cfg DispatcherConfig, out *LineWriter, observer Observer) *Dispatcher {
	if observer == nil {
		observer = nopObserver{}
	}
	d := &Dispatcher{
		match:    cfg.Match,
		out:      out,
		observer: observer,
	}
	d.probeReport.Store(cfg.ProbeReport)
	d.diagnostics.Store(cfg.Diagnostics)
	d.showSSID.Store(cfg.ShowSSID)
	return d
}

// SetProbeReport toggles the probe report line.
func (d *Dispatcher) SetProbeReport(on bool) { d.probeReport.Store(on) }

// SetDiagnostics toggles the per-capture diagnostic line.
func (d *Dispatcher) SetDiagnostics(on bool) { d.diagnostics.Store(on) }

// SetShowSSID toggles SSID output on probe lines.
func (d *Dispatcher) SetShowSSID(on bool) { d.showSSID.Store(on) }

// OnCapture handles one buffer delivered by the radio. c.Payload is not
// retained.
func (d *Dispatcher) OnCapture(c RawCapture, t PacketType) {
	d.observer.CaptureReceived(t)

	p := c.Payload
	if len(p) < 2 {
		d.observer.CaptureTruncated(t)
		return
	}
	cl := dot11.ClassifyBytes(p[0], p[1])

	if d.diagnostics.Load() {
		if h, ok := dot11.ParseHeader(p); ok {
			d.out.WriteDiagnostic(t, c.Rx, h)
		}
	}

	if !carries(t, cl.Type) || !d.match.Accepts(cl) {
		return
	}
	m, ok := Extract(c, cl)
	if !ok {
		d.observer.CaptureTruncated(t)
		return
	}
	if !d.probeReport.Load() {
		return
	}

	var ssid []byte
	if d.showSSID.Load() && cl.IsProbeRequest() {
		ssid = m.SSIDBytes(p)
		if ssid == nil {
			ssid = []byte{}
		}
	}
	d.out.WriteProbe(m, ssid)
	d.observer.ProbeReported(m.RSSI)
}

// carries reports whether a buffer tagged t can hold a frame of type ft.
// Unknown tags carry nothing.
func carries(t PacketType, ft dot11.FrameType) bool {
	switch t {
	case PacketMgmt:
		return ft == dot11.TypeManagement
	case PacketCtrl:
		return ft == dot11.TypeControl
	case PacketData:
		return ft == dot11.TypeData
	case PacketMisc:
		return ft == dot11.TypeReserved
	default:
		return false
	}
}

// Handler returns OnCapture as a Handler value.
func (d *Dispatcher) Handler() Handler {
	return d.OnCapture
}
