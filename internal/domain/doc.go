// Package domain holds the value types and sentinel errors shared by the
// sniffer, its adapters and the CLI.
//
// It has no dependencies on capture libraries, the operating system or
// logging.
//
//   - [FilterMask]: which packet types the radio is asked to deliver
//   - errors returned by the public API, checked with errors.Is
package domain
