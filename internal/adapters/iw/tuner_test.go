package iw

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/probewatch/internal/ports"
	"github.com/bft-labs/probewatch/pkg/channel"
)

func TestTuner_SetChannel(t *testing.T) {
	var gotName string
	var gotArgs []string
	tn := New("wlan0mon", func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return nil, nil
	})

	require.NoError(t, tn.SetChannel(context.Background(), 11))
	assert.Equal(t, "iw", gotName)
	assert.Equal(t, []string{"dev", "wlan0mon", "set", "channel", "11"}, gotArgs)
}

func TestTuner_SetChannelFailure(t *testing.T) {
	tn := New("wlan0mon", func(context.Context, string, ...string) ([]byte, error) {
		return []byte("command failed: Device or resource busy (-16)\n"), errors.New("exit status 240")
	})

	err := tn.SetChannel(context.Background(), 6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Device or resource busy")
}

func TestTuner_RejectsIllegalChannel(t *testing.T) {
	called := false
	tn := New("wlan0mon", func(context.Context, string, ...string) ([]byte, error) {
		called = true
		return nil, nil
	})

	assert.ErrorIs(t, tn.SetChannel(context.Background(), 0), channel.ErrChannelOutOfRange)
	assert.False(t, called)
}

func TestTuner_DrivesScheduler(t *testing.T) {
	var got []string
	var tn ports.ChannelTuner = New("wlan0mon", func(_ context.Context, _ string, args ...string) ([]byte, error) {
		got = append(got, args[len(args)-1])
		return nil, nil
	})

	plan, err := channel.NewPlan(6, 11)
	require.NoError(t, err)
	s, err := channel.NewScheduler(plan, tn)
	require.NoError(t, err)

	s.Step(context.Background())
	s.Step(context.Background())

	assert.Equal(t, []string{"11", "6"}, got)
	assert.Equal(t, uint64(2), s.Hops())
}
