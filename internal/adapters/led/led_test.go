package led

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSysfs_Toggle(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "phy0-led")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	brightness := filepath.Join(dir, "brightness")
	require.NoError(t, os.WriteFile(brightness, []byte("0"), 0o644))

	l, err := NewSysfs(root, "phy0-led", nil)
	require.NoError(t, err)

	l.Toggle()
	b, err := os.ReadFile(brightness)
	require.NoError(t, err)
	assert.Equal(t, "1", string(b))
	assert.True(t, l.On())

	l.Toggle()
	b, err = os.ReadFile(brightness)
	require.NoError(t, err)
	assert.Equal(t, "0", string(b))
	assert.False(t, l.On())
}

func TestNewSysfs_Missing(t *testing.T) {
	_, err := NewSysfs(t.TempDir(), "nope", nil)
	assert.Error(t, err)
}

func TestHeartbeat(t *testing.T) {
	h := NewHeartbeat(nil)
	h.Toggle()
	h.Toggle()
	assert.False(t, h.on)
}
