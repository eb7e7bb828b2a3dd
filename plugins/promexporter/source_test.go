package promexporter

import (
	"context"

	"github.com/bft-labs/probewatch/pkg/capture"
)

type blockingSource struct{}

func (blockingSource) Run(ctx context.Context, _ capture.Handler) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingSource) Close() error { return nil }
