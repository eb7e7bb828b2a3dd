package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/probewatch/pkg/dot11"
)

func TestExtract_ProbeRequest(t *testing.T) {
	p := probePayload([6]byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}, "home-net")
	c := RawCapture{Payload: p, Rx: RxControl{RSSI: -67}}

	m, ok := Extract(c, dot11.ClassifyBytes(p[0], p[1]))
	require.True(t, ok)

	assert.Equal(t, int8(-67), m.RSSI)
	assert.Equal(t, "11:22:33:44:55:66", m.PeerMAC.String())
	assert.Equal(t, uint8(8), m.SSIDLength)
	assert.Equal(t, Span{Offset: 26, Length: 8}, m.SSID)
	assert.Equal(t, "home-net", string(m.SSIDBytes(p)))
}

func TestExtract_WildcardSSID(t *testing.T) {
	p := probePayload([6]byte{1, 2, 3, 4, 5, 6}, "")
	m, ok := Extract(RawCapture{Payload: p}, dot11.Classify(0x0040))
	require.True(t, ok)
	assert.Equal(t, uint8(0), m.SSIDLength)
	assert.Nil(t, m.SSIDBytes(p))
}

func TestExtract_ClipsOversizedSSIDLength(t *testing.T) {
	p := probePayload([6]byte{1, 2, 3, 4, 5, 6}, "")
	p[25] = 0xff

	m, ok := Extract(RawCapture{Payload: p}, dot11.Classify(0x0040))
	require.True(t, ok)
	assert.Equal(t, uint8(0xff), m.SSIDLength)
	assert.Equal(t, DataLength-26, m.SSID.Length)
	assert.LessOrEqual(t, m.SSID.Offset+m.SSID.Length, DataLength)
	assert.Len(t, m.SSIDBytes(p), DataLength-26)
}

func TestExtract_NeverReadsPastDataLength(t *testing.T) {
	// A longer buffer than the fixed bound: the span must still stop at DataLength.
	p := make([]byte, DataLength+64)
	copy(p, probePayload([6]byte{1, 2, 3, 4, 5, 6}, ""))
	p[25] = 200

	m, ok := Extract(RawCapture{Payload: p}, dot11.Classify(0x0040))
	require.True(t, ok)
	assert.Equal(t, DataLength, m.SSID.Offset+m.SSID.Length)
}

func TestExtract_Truncated(t *testing.T) {
	full := probePayload([6]byte{1, 2, 3, 4, 5, 6}, "x")
	probe := dot11.Classify(0x0040)
	beacon := dot11.Classify(0x0080)

	for n := 0; n < 16; n++ {
		_, ok := Extract(RawCapture{Payload: full[:n]}, beacon)
		assert.False(t, ok, "beacon len=%d", n)
	}
	for n := 0; n <= 25; n++ {
		_, ok := Extract(RawCapture{Payload: full[:n]}, probe)
		assert.False(t, ok, "probe len=%d", n)
	}

	m, ok := Extract(RawCapture{Payload: full[:26]}, probe)
	require.True(t, ok)
	assert.Equal(t, 0, m.SSID.Length)

	m, ok = Extract(RawCapture{Payload: full[:16]}, beacon)
	require.True(t, ok)
	assert.Equal(t, Span{}, m.SSID)
}

func TestPacketType_String(t *testing.T) {
	assert.Equal(t, "MGMT", PacketMgmt.String())
	assert.Equal(t, "CTRL", PacketCtrl.String())
	assert.Equal(t, "DATA", PacketData.String())
	assert.Equal(t, "MISC", PacketMisc.String())
	assert.Equal(t, "MISC", PacketType(9).String())
}
