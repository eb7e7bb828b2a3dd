// Package dot11 decodes the fixed part of an IEEE 802.11 MAC header.
//
// Decoding works on plain byte slices with explicit shift and mask
// operations. Nothing here allocates or retains the input slice, so the
// functions are safe to call from a capture callback while the driver
// still owns the buffer.
//
// # Frame control
//
// The first two bytes of every frame form a little-endian 16-bit value:
//
//	bits 0-1   protocol version
//	bits 2-3   type (management, control, data, extension)
//	bits 4-7   subtype
//	bit  8     to DS
//	bit  9     from DS
//	bits 10-15 more fragments, retry, power management, more data,
//	           protected, order
//
// [Classify] splits that value into a [Classification]; [Match] decides
// which classifications are worth extracting metadata from.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package dot11
