// Package ports defines the interfaces that connect the sniffer core to
// radio and host adapters.
//
// # Port Interfaces
//
//   - [CaptureSource]: delivers raw 802.11 buffers with provenance
//   - [ChannelTuner]: retunes the monitor radio
//   - [Indicator]: liveness signal toggled on every hop
//
// The sniffer depends only on these interfaces. Implementations live in
// internal/adapters (pcap, nl80211, iw, led) and tests supply fakes.
package ports
