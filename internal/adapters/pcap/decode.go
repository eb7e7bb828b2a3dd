package pcap

import (
	"errors"
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/bft-labs/probewatch/internal/domain"
	"github.com/bft-labs/probewatch/pkg/capture"
	"github.com/bft-labs/probewatch/pkg/channel"
	"github.com/bft-labs/probewatch/pkg/dot11"
)

// ErrUnsupportedLinkType is returned for captures that are not 802.11.
var ErrUnsupportedLinkType = errors.New("unsupported link type")

const (
	fcsLen      = 4
	addr1Offset = 4
)

// decoder turns link-layer buffers into 802.11 payloads with receive
// metadata. It reuses its radiotap layer and is not safe for concurrent
// use.
type decoder struct {
	linkType layers.LinkType
	mask     domain.FilterMask
	rt       layers.RadioTap
}

func newDecoder(lt layers.LinkType, mask domain.FilterMask) (*decoder, error) {
	switch lt {
	case layers.LinkTypeIEEE80211Radio, layers.LinkTypeIEEE802_11:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedLinkType, lt)
	}
	return &decoder{linkType: lt, mask: mask}, nil
}

// decode returns the raw capture and its provenance. ok is false when
// the packet type is excluded by the filter mask.
func (d *decoder) decode(data []byte) (c capture.RawCapture, t capture.PacketType, ok bool, err error) {
	payload := data
	if d.linkType == layers.LinkTypeIEEE80211Radio {
		if err := d.rt.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
			return c, t, false, fmt.Errorf("radiotap: %w", err)
		}
		payload = d.rt.Payload
		if d.rt.Present.Flags() && d.rt.Flags.FCS() && len(payload) >= fcsLen {
			payload = payload[:len(payload)-fcsLen]
		}
		c.Rx = rxControl(&d.rt, payload)
	}
	c.Payload = payload

	t = packetType(payload)
	if !d.mask.Has(filterBit(t)) {
		return c, t, false, nil
	}
	return c, t, true, nil
}

// rxControl maps radiotap fields onto the receive control record.
func rxControl(rt *layers.RadioTap, payload []byte) capture.RxControl {
	var rx capture.RxControl
	if rt.Present.DBMAntennaSignal() {
		rx.RSSI = rt.DBMAntennaSignal
	}
	if rt.Present.DBMAntennaNoise() {
		rx.Noise = rt.DBMAntennaNoise
	}
	if rt.Present.Rate() {
		rx.Rate = uint8(rt.Rate)
	}
	if rt.Present.Channel() {
		if ch, ok := channel.ChannelFromFrequency(int(rt.ChannelFrequency)); ok {
			rx.Channel = uint8(ch)
		}
	}
	if a, ok := dot11.AddrAt(payload, addr1Offset); ok {
		rx.IsGroup = a.IsGroup()
	}

	n := len(payload)
	if n > 0xffff {
		n = 0xffff
	}
	if rt.Present.MCS() {
		rx.SigMode = 0
		rx.MCS = rt.MCS.MCS
		rx.CWB = rt.MCS.Flags&layers.RadioTapMCSFlagsBandwidthMask == 1
		rx.SGI = rt.MCS.Flags&layers.RadioTapMCSFlagsShortGI != 0
		rx.HTLength = uint16(n)
	} else {
		rx.SigMode = 1
		rx.LegacyLength = uint16(n)
	}
	return rx
}

// packetType derives provenance from the frame control type bits.
func packetType(payload []byte) capture.PacketType {
	if len(payload) < 2 {
		return capture.PacketMisc
	}
	switch dot11.ClassifyBytes(payload[0], payload[1]).Type {
	case dot11.TypeManagement:
		return capture.PacketMgmt
	case dot11.TypeControl:
		return capture.PacketCtrl
	case dot11.TypeData:
		return capture.PacketData
	default:
		return capture.PacketMisc
	}
}

func filterBit(t capture.PacketType) domain.FilterMask {
	switch t {
	case capture.PacketMgmt:
		return domain.FilterMgmt
	case capture.PacketCtrl:
		return domain.FilterCtrl
	case capture.PacketData:
		return domain.FilterData
	default:
		return domain.FilterMisc
	}
}

// bpfExpr returns the kernel filter for mask. Masks including misc
// frames cannot be expressed and return "".
func bpfExpr(mask domain.FilterMask) string {
	if mask.Has(domain.FilterMisc) {
		return ""
	}
	var expr string
	for _, f := range []struct {
		bit domain.FilterMask
		bpf string
	}{
		{domain.FilterMgmt, "type mgt"},
		{domain.FilterCtrl, "type ctl"},
		{domain.FilterData, "type data"},
	} {
		if !mask.Has(f.bit) {
			continue
		}
		if expr != "" {
			expr += " or "
		}
		expr += f.bpf
	}
	return expr
}
