package capture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bft-labs/probewatch/pkg/dot11"
)

func TestAppendProbeLine(t *testing.T) {
	m := ProbeMetadata{RSSI: -67, PeerMAC: dot11.HardwareAddr{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}}
	assert.Equal(t, "RSSI: -67 Peer MAC: 11:22:33:44:55:66\n", string(AppendProbeLine(nil, m, nil)))
	assert.Equal(t, "RSSI: -67 Peer MAC: 11:22:33:44:55:66 SSID: \"cafe\\n\"\n",
		string(AppendProbeLine(nil, m, []byte("cafe\n"))))
}

func TestAppendDiagnosticLine(t *testing.T) {
	h := dot11.MacHeader{
		Addr1: dot11.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		Addr2: dot11.HardwareAddr{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01},
		Addr3: dot11.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	}
	got := AppendDiagnosticLine(nil, PacketMgmt, RxControl{RSSI: -67, Channel: 6}, h)
	assert.Equal(t,
		"PACKET TYPE=MGMT, CHAN=06, RSSI=-67, ADDR1=ff:ff:ff:ff:ff:ff, ADDR2=de:ad:be:ef:00:01, ADDR3=ff:ff:ff:ff:ff:ff\n",
		string(got))
}

func TestAppendPadded(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "00"},
		{6, "06"},
		{13, "13"},
		{-5, "-5"},
		{-67, "-67"},
		{-128, "-128"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(appendPadded(nil, tt.in)), "appendPadded(%d)", tt.in)
	}
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("closed pipe")
}

func TestLineWriter_StopsAfterError(t *testing.T) {
	fw := &failingWriter{}
	lw := NewLineWriter(fw)

	lw.WriteProbe(ProbeMetadata{}, nil)
	lw.WriteProbe(ProbeMetadata{}, nil)
	lw.WriteDiagnostic(PacketData, RxControl{}, dot11.MacHeader{})

	assert.Error(t, lw.Err())
	assert.Equal(t, 1, fw.calls)
}
