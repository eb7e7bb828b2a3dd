package dot11

// HardwareAddr is a 6-byte IEEE 802 MAC address held by value.
type HardwareAddr [6]byte

const hexDigits = "0123456789abcdef"

// macStringLen is the rendered length: six octets and five separators.
const macStringLen = 17

// AddrAt copies the six bytes at off. It returns false when b is too short.
func AddrAt(b []byte, off int) (HardwareAddr, bool) {
	var a HardwareAddr
	if off < 0 || off+len(a) > len(b) {
		return a, false
	}
	copy(a[:], b[off:off+len(a)])
	return a, true
}

// String renders the address as xx:xx:xx:xx:xx:xx in lower case.
func (a HardwareAddr) String() string {
	var buf [macStringLen]byte
	return string(a.AppendTo(buf[:0]))
}

// AppendTo appends the rendered address to dst.
func (a HardwareAddr) AppendTo(dst []byte) []byte {
	for i, b := range a {
		if i > 0 {
			dst = append(dst, ':')
		}
		dst = append(dst, hexDigits[b>>4], hexDigits[b&0x0f])
	}
	return dst
}

// IsBroadcast reports whether a is ff:ff:ff:ff:ff:ff.
func (a HardwareAddr) IsBroadcast() bool {
	return a == HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
}

// IsGroup reports whether the I/G bit is set (multicast or broadcast).
func (a HardwareAddr) IsGroup() bool {
	return a[0]&0x01 != 0
}

// IsLocallyAdministered reports whether the U/L bit is set. Stations that
// randomise their probe source address set it.
func (a HardwareAddr) IsLocallyAdministered() bool {
	return a[0]&0x02 != 0
}
