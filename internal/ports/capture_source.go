package ports

import (
	"context"

	"github.com/bft-labs/probewatch/pkg/capture"
)

// CaptureSource delivers received buffers to a handler.
type CaptureSource interface {
	// Run calls h once per received buffer, inline, until ctx is done or
	// the source is exhausted. The buffer is only valid during the call.
	// A finite source returns nil at its end; cancellation returns
	// ctx.Err().
	Run(ctx context.Context, h capture.Handler) error

	// Close releases the underlying device or file.
	Close() error
}
