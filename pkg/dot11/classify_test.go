package dot11

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Examples(t *testing.T) {
	tests := []struct {
		name    string
		fc      uint16
		want    Classification
		isProbe bool
	}{
		{
			name:    "probe request",
			fc:      0x0040,
			want:    Classification{Version: 0, Type: TypeManagement, Subtype: SubtypeProbeRequest},
			isProbe: true,
		},
		{
			name: "beacon",
			fc:   0x0080,
			want: Classification{Type: TypeManagement, Subtype: SubtypeBeacon},
		},
		{
			name: "qos data to ds",
			fc:   0x0188,
			want: Classification{Type: TypeData, Subtype: 0x08, ToDS: true},
		},
		{
			name: "wds data with retry",
			fc:   0x0b08,
			want: Classification{Type: TypeData, ToDS: true, FromDS: true, Flags: 0x02},
		},
		{
			name: "ack",
			fc:   0x00d4,
			want: Classification{Type: TypeControl, Subtype: 0x0d},
		},
		{
			name: "reserved type and version",
			fc:   0x000f,
			want: Classification{Version: 3, Type: TypeReserved},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.fc)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.isProbe, got.IsProbeRequest())
		})
	}
}

func TestClassify_RoundTripAllValues(t *testing.T) {
	for v := 0; v <= 0xffff; v++ {
		fc := uint16(v)
		c := Classify(fc)

		require.LessOrEqual(t, c.Version, uint8(3))
		require.LessOrEqual(t, c.Subtype, uint8(15))
		require.Equal(t, fc&0x0003, uint16(c.Version))
		require.Equal(t, (fc>>2)&0x3, uint16(c.Type))
		require.Equal(t, (fc>>4)&0xf, uint16(c.Subtype))
		require.Equal(t, fc&0x0100 != 0, c.ToDS)
		require.Equal(t, fc&0x0200 != 0, c.FromDS)
		require.Equal(t, fc, c.FrameControl(), "fc=%#04x", fc)
	}
}

func TestClassify_ProbeRequestPredicateIsExact(t *testing.T) {
	for v := 0; v <= 0xffff; v++ {
		fc := uint16(v)
		want := fc&0x000c == 0 && fc&0x00f0 == 0x0040
		require.Equal(t, want, Classify(fc).IsProbeRequest(), "fc=%#04x", fc)
	}
}

func TestClassifyBytes_LittleEndian(t *testing.T) {
	c := ClassifyBytes(0x40, 0x00)
	assert.True(t, c.IsProbeRequest())

	c = ClassifyBytes(0x08, 0x02)
	assert.Equal(t, TypeData, c.Type)
	assert.True(t, c.FromDS)
	assert.False(t, c.ToDS)
}

func TestClassification_Protected(t *testing.T) {
	assert.True(t, Classify(0x4208).Protected())
	assert.False(t, Classify(0x0208).Protected())
}

func TestFrameType_String(t *testing.T) {
	assert.Equal(t, "management", TypeManagement.String())
	assert.Equal(t, "control", TypeControl.String())
	assert.Equal(t, "data", TypeData.String())
	assert.Equal(t, "reserved", TypeReserved.String())
}
