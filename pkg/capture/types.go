package capture

// DataLength is the fixed payload bound of a capture buffer. Reads past
// min(len(payload), DataLength) never happen.
const DataLength = 112

// PacketType is the provenance tag the radio attaches to a buffer.
type PacketType uint8

const (
	PacketMgmt PacketType = iota
	PacketCtrl
	PacketData
	PacketMisc
)

// String returns the diagnostic label. Unknown values render as MISC.
func (t PacketType) String() string {
	switch t {
	case PacketMgmt:
		return "MGMT"
	case PacketCtrl:
		return "CTRL"
	case PacketData:
		return "DATA"
	default:
		return "MISC"
	}
}

// RxControl is the receive metadata delivered alongside each buffer.
type RxControl struct {
	RSSI    int8  // dBm
	Noise   int8  // dBm, 0 when unknown
	Rate    uint8 // legacy rate in 500 kbps units
	IsGroup bool

	// SigMode is 0 for 802.11n frames and 1 otherwise.
	SigMode      uint8
	LegacyLength uint16
	MCS          uint8
	CWB          bool // HT40
	HTLength     uint16
	SGI          bool

	Channel uint8
}

// RawCapture is one received buffer. Payload starts at the 802.11 frame
// control field and is only valid until the handler returns.
type RawCapture struct {
	Payload []byte
	Rx      RxControl
}

// Handler receives captures from a source.
type Handler func(c RawCapture, t PacketType)

// bound returns the readable payload length.
func (c RawCapture) bound() int {
	if len(c.Payload) < DataLength {
		return len(c.Payload)
	}
	return DataLength
}
