//go:build !linux

package nl80211

import (
	"context"

	"github.com/bft-labs/probewatch/internal/domain"
)

// Tuner is unavailable off Linux.
type Tuner struct{}

// Open always fails with domain.ErrNotSupported.
func Open(iface string) (*Tuner, error) {
	return nil, domain.ErrNotSupported
}

// SetChannel always fails with domain.ErrNotSupported.
func (t *Tuner) SetChannel(ctx context.Context, ch int) error {
	return domain.ErrNotSupported
}

// Close is a no-op.
func (t *Tuner) Close() error { return nil }
