package capture

import "github.com/bft-labs/probewatch/pkg/dot11"

// Fixed offsets inside a probe request. They assume no optional fields
// precede the SSID element.
const (
	offPeerMAC    = 10
	offSSIDLength = 25
	offSSID       = 26
)

// Span is a byte range within a capture payload.
type Span struct {
	Offset int
	Length int
}

// ProbeMetadata is what gets reported for a matching capture.
type ProbeMetadata struct {
	RSSI       int8
	PeerMAC    dot11.HardwareAddr
	SSIDLength uint8 // as claimed by the frame
	SSID       Span  // clipped to the payload bound
}

// SSIDBytes returns the SSID bytes from payload, clipped to its bound.
// The result aliases payload.
func (m ProbeMetadata) SSIDBytes(payload []byte) []byte {
	if m.SSID.Length == 0 {
		return nil
	}
	end := m.SSID.Offset + m.SSID.Length
	if m.SSID.Offset < 0 || end > len(payload) {
		return nil
	}
	return payload[m.SSID.Offset:end]
}

// Extract pulls probe metadata out of a classified capture. It returns
// false when the buffer is too short for the fixed offsets: 16 bytes for
// the peer address and 26 for a probe request's SSID length.
func Extract(c RawCapture, cl dot11.Classification) (ProbeMetadata, bool) {
	var m ProbeMetadata
	bound := c.bound()
	p := c.Payload[:bound]

	peer, ok := dot11.AddrAt(p, offPeerMAC)
	if !ok {
		return m, false
	}
	m.RSSI = c.Rx.RSSI
	m.PeerMAC = peer

	if !cl.IsProbeRequest() {
		return m, true
	}
	if bound <= offSSIDLength {
		return ProbeMetadata{}, false
	}

	m.SSIDLength = p[offSSIDLength]
	n := int(m.SSIDLength)
	if avail := bound - offSSID; n > avail {
		n = avail
	}
	m.SSID = Span{Offset: offSSID, Length: n}
	return m, true
}
