//go:build linux

package nl80211

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"

	"github.com/bft-labs/probewatch/pkg/channel"
)

// Tuner sets the channel of one interface through nl80211.
type Tuner struct {
	iface   string
	ifindex uint32

	mu            sync.Mutex
	c             *genetlink.Conn
	familyID      uint16
	familyVersion uint8
}

// Open dials generic netlink and resolves the nl80211 family and the
// interface index.
func Open(iface string) (*Tuner, error) {
	ifi, err := net.InterfaceByName(iface)
	if err != nil {
		return nil, fmt.Errorf("nl80211: %w", err)
	}

	c, err := genetlink.Dial(nil)
	if err != nil {
		return nil, fmt.Errorf("nl80211: dial: %w", err)
	}
	for _, o := range []netlink.ConnOption{
		netlink.ExtendedAcknowledge,
		netlink.GetStrictCheck,
	} {
		_ = c.SetOption(o, true)
	}

	family, err := c.GetFamily(unix.NL80211_GENL_NAME)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("nl80211: get family: %w", err)
	}

	return &Tuner{
		iface:         iface,
		ifindex:       uint32(ifi.Index),
		c:             c,
		familyID:      family.ID,
		familyVersion: family.Version,
	}, nil
}

// SetChannel tunes the interface to ch as a 20MHz no-HT channel.
func (t *Tuner) SetChannel(ctx context.Context, ch int) error {
	freq, err := channel.Frequency(ch)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ae := netlink.NewAttributeEncoder()
	ae.Uint32(unix.NL80211_ATTR_IFINDEX, t.ifindex)
	ae.Uint32(unix.NL80211_ATTR_WIPHY_FREQ, uint32(freq))
	ae.Uint32(unix.NL80211_ATTR_WIPHY_CHANNEL_TYPE, unix.NL80211_CHAN_NO_HT)
	b, err := ae.Encode()
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.c == nil {
		return fmt.Errorf("nl80211: tuner closed")
	}
	_, err = t.c.Execute(
		genetlink.Message{
			Header: genetlink.Header{
				Command: unix.NL80211_CMD_SET_WIPHY,
				Version: t.familyVersion,
			},
			Data: b,
		},
		t.familyID,
		netlink.Request|netlink.Acknowledge,
	)
	if err != nil {
		return fmt.Errorf("nl80211: set %s to channel %d (%d MHz): %w", t.iface, ch, freq, err)
	}
	return nil
}

// Close closes the netlink connection.
func (t *Tuner) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.c == nil {
		return nil
	}
	err := t.c.Close()
	t.c = nil
	return err
}
