package pcap

import (
	"testing"

	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/probewatch/internal/domain"
	"github.com/bft-labs/probewatch/pkg/capture"
)

// radiotapHeader carries channel (2437 MHz, 2GHz|CCK) and antenna signal.
func radiotapHeader(signal int8) []byte {
	return []byte{
		0x00, 0x00, // version, pad
		0x0d, 0x00, // length 13
		0x28, 0x00, 0x00, 0x00, // present: channel | dbm antenna signal
		0x85, 0x09, // 2437
		0xa0, 0x00, // channel flags
		byte(signal),
	}
}

func probeFrame() []byte {
	f := make([]byte, 40)
	f[0] = 0x40
	for i := 4; i < 10; i++ {
		f[i] = 0xff
	}
	copy(f[10:], []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66})
	for i := 16; i < 22; i++ {
		f[i] = 0xff
	}
	return f
}

func TestDecoder_Radiotap(t *testing.T) {
	d, err := newDecoder(layers.LinkTypeIEEE80211Radio, domain.FilterAll)
	require.NoError(t, err)

	frame := probeFrame()
	c, pt, ok, err := d.decode(append(radiotapHeader(-67), frame...))
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, capture.PacketMgmt, pt)
	assert.Equal(t, frame, c.Payload)
	assert.Equal(t, int8(-67), c.Rx.RSSI)
	assert.Equal(t, uint8(6), c.Rx.Channel)
	assert.True(t, c.Rx.IsGroup)
	assert.Equal(t, uint8(1), c.Rx.SigMode)
	assert.Equal(t, uint16(len(frame)), c.Rx.LegacyLength)
}

func TestDecoder_Bare80211(t *testing.T) {
	d, err := newDecoder(layers.LinkTypeIEEE802_11, domain.FilterAll)
	require.NoError(t, err)

	frame := probeFrame()
	c, pt, ok, err := d.decode(frame)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, capture.PacketMgmt, pt)
	assert.Equal(t, capture.RxControl{}, c.Rx)
}

func TestDecoder_FilterMask(t *testing.T) {
	d, err := newDecoder(layers.LinkTypeIEEE802_11, domain.FilterMgmt)
	require.NoError(t, err)

	data := probeFrame()
	data[0] = 0x08
	_, pt, ok, err := d.decode(data)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, capture.PacketData, pt)

	_, pt, ok, err = d.decode([]byte{0x40})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, capture.PacketMisc, pt)
}

func TestDecoder_Errors(t *testing.T) {
	_, err := newDecoder(layers.LinkTypeEthernet, domain.FilterAll)
	assert.ErrorIs(t, err, ErrUnsupportedLinkType)

	d, err := newDecoder(layers.LinkTypeIEEE80211Radio, domain.FilterAll)
	require.NoError(t, err)
	_, _, _, err = d.decode([]byte{0x00, 0x00})
	assert.Error(t, err)
}

func TestPacketType(t *testing.T) {
	tests := []struct {
		fc   byte
		want capture.PacketType
	}{
		{0x40, capture.PacketMgmt},
		{0x80, capture.PacketMgmt},
		{0xd4, capture.PacketCtrl},
		{0x08, capture.PacketData},
		{0x88, capture.PacketData},
		{0x0c, capture.PacketMisc},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, packetType([]byte{tt.fc, 0}), "fc=%#x", tt.fc)
	}
}

func TestBPFExpr(t *testing.T) {
	assert.Equal(t, "type mgt", bpfExpr(domain.FilterMgmt))
	assert.Equal(t, "type mgt or type data", bpfExpr(domain.FilterMgmt|domain.FilterData))
	assert.Equal(t, "type ctl", bpfExpr(domain.FilterCtrl))
	assert.Equal(t, "", bpfExpr(domain.FilterAll))
	assert.Equal(t, "", bpfExpr(domain.FilterMisc))
}
