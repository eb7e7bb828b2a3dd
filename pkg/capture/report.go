package capture

import (
	"io"
	"strconv"
	"sync"

	"github.com/bft-labs/probewatch/pkg/dot11"
)

// LineWriter serialises report lines onto an io.Writer. Each line is
// rendered into a reused buffer and handed to the writer in a single
// Write call while the mutex is held.
type LineWriter struct {
	mu  sync.Mutex
	w   io.Writer
	buf []byte
	err error
}

// NewLineWriter wraps w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w, buf: make([]byte, 0, 256)}
}

// Err returns the first write error, if any. Later lines are dropped
// once a write has failed.
func (lw *LineWriter) Err() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.err
}

// WriteProbe writes one probe report line. When ssid is non-nil it is
// appended as a quoted string.
func (lw *LineWriter) WriteProbe(m ProbeMetadata, ssid []byte) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if lw.err != nil {
		return
	}
	lw.buf = AppendProbeLine(lw.buf[:0], m, ssid)
	_, lw.err = lw.w.Write(lw.buf)
}

// WriteDiagnostic writes one diagnostic line for any capture.
func (lw *LineWriter) WriteDiagnostic(t PacketType, rx RxControl, h dot11.MacHeader) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if lw.err != nil {
		return
	}
	lw.buf = AppendDiagnosticLine(lw.buf[:0], t, rx, h)
	_, lw.err = lw.w.Write(lw.buf)
}

// AppendProbeLine renders "RSSI: <n> Peer MAC: <mac>[ SSID: "<ssid>"]\n".
func AppendProbeLine(dst []byte, m ProbeMetadata, ssid []byte) []byte {
	dst = append(dst, "RSSI: "...)
	dst = strconv.AppendInt(dst, int64(m.RSSI), 10)
	dst = append(dst, " Peer MAC: "...)
	dst = m.PeerMAC.AppendTo(dst)
	if ssid != nil {
		dst = append(dst, " SSID: "...)
		dst = strconv.AppendQuote(dst, string(ssid))
	}
	return append(dst, '\n')
}

// AppendDiagnosticLine renders
// "PACKET TYPE=<t>, CHAN=<nn>, RSSI=<nn>, ADDR1=<mac>, ADDR2=<mac>, ADDR3=<mac>\n".
func AppendDiagnosticLine(dst []byte, t PacketType, rx RxControl, h dot11.MacHeader) []byte {
	dst = append(dst, "PACKET TYPE="...)
	dst = append(dst, t.String()...)
	dst = append(dst, ", CHAN="...)
	dst = appendPadded(dst, int64(rx.Channel))
	dst = append(dst, ", RSSI="...)
	dst = appendPadded(dst, int64(rx.RSSI))
	dst = append(dst, ", ADDR1="...)
	dst = h.Addr1.AppendTo(dst)
	dst = append(dst, ", ADDR2="...)
	dst = h.Addr2.AppendTo(dst)
	dst = append(dst, ", ADDR3="...)
	dst = h.Addr3.AppendTo(dst)
	return append(dst, '\n')
}

// appendPadded formats v like printf "%02d": at least two characters,
// zero padded after the sign.
func appendPadded(dst []byte, v int64) []byte {
	if v < 0 {
		dst = append(dst, '-')
		v = -v
		if v < 10 {
			return strconv.AppendInt(dst, v, 10)
		}
	} else if v < 10 {
		dst = append(dst, '0')
	}
	return strconv.AppendInt(dst, v, 10)
}
