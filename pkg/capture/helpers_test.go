package capture

// probePayload builds a DataLength probe request buffer with the peer
// address at offset 10 and the SSID element at offset 24.
func probePayload(peer [6]byte, ssid string) []byte {
	p := make([]byte, DataLength)
	p[0], p[1] = 0x40, 0x00
	for i := 4; i < 10; i++ {
		p[i] = 0xff
	}
	copy(p[10:], peer[:])
	for i := 16; i < 22; i++ {
		p[i] = 0xff
	}
	p[24] = 0x00 // SSID element id
	p[25] = byte(len(ssid))
	copy(p[26:], ssid)
	return p
}
