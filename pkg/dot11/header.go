package dot11

import "encoding/binary"

// Header field offsets within a frame.
const (
	offFrameControl = 0
	offDurationID   = 2
	offAddr1        = 4
	offAddr2        = 10
	offAddr3        = 16
	offSequence     = 22
	offAddr4        = 24

	// HeaderLen is the shortest header carrying three addresses and
	// sequence control.
	HeaderLen = 24

	// HeaderLenWDS is the header length when the fourth address is present.
	HeaderLenWDS = 30
)

// MacHeader is a decoded view of the leading bytes of a frame.
type MacHeader struct {
	FrameControl    uint16
	DurationID      uint16
	Addr1           HardwareAddr // receiver
	Addr2           HardwareAddr // transmitter
	Addr3           HardwareAddr // BSSID or filtering address
	SequenceControl uint16
	Addr4           HardwareAddr // WDS only
	HasAddr4        bool
}

// ParseHeader decodes the MAC header at the start of b. It returns false
// when b is shorter than HeaderLen; no byte past len(b) is ever read.
func ParseHeader(b []byte) (MacHeader, bool) {
	var h MacHeader
	if len(b) < HeaderLen {
		return h, false
	}

	h.FrameControl = binary.LittleEndian.Uint16(b[offFrameControl:])
	h.DurationID = binary.LittleEndian.Uint16(b[offDurationID:])
	copy(h.Addr1[:], b[offAddr1:offAddr1+6])
	copy(h.Addr2[:], b[offAddr2:offAddr2+6])
	copy(h.Addr3[:], b[offAddr3:offAddr3+6])
	h.SequenceControl = binary.LittleEndian.Uint16(b[offSequence:])

	c := Classify(h.FrameControl)
	if c.Type == TypeData && c.ToDS && c.FromDS && len(b) >= HeaderLenWDS {
		copy(h.Addr4[:], b[offAddr4:offAddr4+6])
		h.HasAddr4 = true
	}
	return h, true
}

// Classification classifies the header's frame control value.
func (h MacHeader) Classification() Classification {
	return Classify(h.FrameControl)
}

// SequenceNumber returns the 12-bit sequence number.
func (h MacHeader) SequenceNumber() uint16 {
	return h.SequenceControl >> 4
}

// FragmentNumber returns the 4-bit fragment number.
func (h MacHeader) FragmentNumber() uint8 {
	return uint8(h.SequenceControl & 0x000f)
}
