package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf))

	mac, _ := net.ParseMAC("11:22:33:44:55:66")
	z.Info("probe",
		String("iface", "wlan0mon"),
		Int("channel", 6),
		Bool("rfmon", true),
		Duration("interval", 500*time.Millisecond),
		Stringer("peer", mac),
		Err(errors.New("boom")),
	)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	l := lines[0]
	assert.Equal(t, "info", l["level"])
	assert.Equal(t, "probe", l["message"])
	assert.Equal(t, "wlan0mon", l["iface"])
	assert.Equal(t, float64(6), l["channel"])
	assert.Equal(t, true, l["rfmon"])
	assert.Equal(t, "11:22:33:44:55:66", l["peer"])
	assert.Equal(t, "boom", l["error"])
}

func TestZerologAdapter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	z.Debug("hidden")
	z.Info("hidden")
	z.Warn("shown")
	z.Error("shown")

	assert.Len(t, decodeLines(t, &buf), 2)
}

func TestWith_Zerolog(t *testing.T) {
	var buf bytes.Buffer
	base := NewZerologAdapterWithLogger(zerolog.New(&buf))

	l := With(base, String("session", "abc"))
	l.Info("one")
	l.Warn("two", Int("n", 2))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, "abc", line["session"])
	}
	assert.Equal(t, float64(2), lines[1]["n"])
}

type captureLogger struct {
	NoopLogger
	fields []Field
}

func (c *captureLogger) Info(msg string, fields ...Field) { c.fields = fields }

func TestWith_WrapsOtherLoggers(t *testing.T) {
	c := &captureLogger{}
	l := With(c, String("session", "abc"))
	l.Info("x", Int("n", 1))

	require.Len(t, c.fields, 2)
	assert.Equal(t, "session", c.fields[0].Key)
	assert.Equal(t, "n", c.fields[1].Key)

	assert.Same(t, c, With(c))
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NewNoopLogger()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x", Err(errors.New("ignored")))
	assert.Equal(t, l, With(l, String("k", "v")))
}
