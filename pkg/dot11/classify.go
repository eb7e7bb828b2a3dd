package dot11

// FrameType is the two-bit type field of the frame control value.
type FrameType uint8

const (
	TypeManagement FrameType = 0x00
	TypeControl    FrameType = 0x01
	TypeData       FrameType = 0x02
	TypeReserved   FrameType = 0x03
)

// String returns a short label for the frame type.
func (t FrameType) String() string {
	switch t {
	case TypeManagement:
		return "management"
	case TypeControl:
		return "control"
	case TypeData:
		return "data"
	default:
		return "reserved"
	}
}

// Management subtypes used by the sniffer.
const (
	SubtypeAssocRequest uint8 = 0x00
	SubtypeProbeRequest uint8 = 0x04
	SubtypeProbeResp    uint8 = 0x05
	SubtypeBeacon       uint8 = 0x08
)

// Bit layout of the frame control value.
const (
	versionMask  = 0x0003
	typeMask     = 0x000c
	subtypeMask  = 0x00f0
	toDSMask     = 0x0100
	fromDSMask   = 0x0200
	flagsMask    = 0xfc00
	typeShift    = 2
	subtypeShift = 4
	flagsShift   = 10
)

// Classification is the decoded frame control value.
type Classification struct {
	Version uint8
	Type    FrameType
	Subtype uint8
	ToDS    bool
	FromDS  bool

	// Flags holds bits 10-15 (more fragments through order) shifted down.
	Flags uint8
}

// Classify decomposes a 16-bit frame control value.
func Classify(fc uint16) Classification {
	return Classification{
		Version: uint8(fc & versionMask),
		Type:    FrameType((fc & typeMask) >> typeShift),
		Subtype: uint8((fc & subtypeMask) >> subtypeShift),
		ToDS:    fc&toDSMask != 0,
		FromDS:  fc&fromDSMask != 0,
		Flags:   uint8((fc & flagsMask) >> flagsShift),
	}
}

// ClassifyBytes classifies the two leading frame bytes (low byte first).
func ClassifyBytes(lo, hi byte) Classification {
	return Classify(FrameControl(lo, hi))
}

// FrameControl assembles the little-endian frame control value.
func FrameControl(lo, hi byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// FrameControl rebuilds the 16-bit value the classification was taken from.
func (c Classification) FrameControl() uint16 {
	fc := uint16(c.Version) & versionMask
	fc |= uint16(c.Type)<<typeShift&typeMask
	fc |= uint16(c.Subtype)<<subtypeShift&subtypeMask
	if c.ToDS {
		fc |= toDSMask
	}
	if c.FromDS {
		fc |= fromDSMask
	}
	fc |= uint16(c.Flags)<<flagsShift&flagsMask
	return fc
}

// IsProbeRequest reports whether the frame is a management probe request.
func (c Classification) IsProbeRequest() bool {
	return c.Type == TypeManagement && c.Subtype == SubtypeProbeRequest
}

// Protected reports whether the protected frame bit is set.
func (c Classification) Protected() bool {
	return c.Flags&0x10 != 0
}
