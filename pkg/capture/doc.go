// Package capture turns raw radio buffers into report lines.
//
// A capture source calls [Dispatcher.OnCapture] once per received buffer.
// The dispatcher classifies the frame, extracts probe metadata when the
// configured [dot11.Match] accepts it, and writes complete lines through a
// [LineWriter]. The call never blocks on anything but the writer mutex and
// never keeps a reference to the buffer after it returns.
//
// # Report format
//
//	RSSI: -67 Peer MAC: 11:22:33:44:55:66
//	PACKET TYPE=MGMT, CHAN=06, RSSI=-67, ADDR1=ff:ff:ff:ff:ff:ff, ADDR2=11:22:33:44:55:66, ADDR3=ff:ff:ff:ff:ff:ff
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package capture
