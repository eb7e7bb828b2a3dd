// Package pcap adapts libpcap and pcap files into capture sources.
//
// LiveSource opens a monitor-mode interface through libpcap, installs a
// BPF program derived from the filter mask and hands every buffer to the
// dispatcher inline. ReplaySource reads a capture file with pcapgo and
// ends at end of file, which is how the sniffer is exercised without a
// radio.
//
// Both accept radiotap (DLT 127) and bare 802.11 (DLT 105) link types.
// Radiotap fields are mapped onto capture.RxControl.
package pcap
