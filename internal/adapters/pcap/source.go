package pcap

import (
	"sync/atomic"

	"github.com/bft-labs/probewatch/pkg/capture"
	"github.com/bft-labs/probewatch/pkg/log"
)

// Stats counts what a source has seen. Safe for concurrent reads.
type Stats struct {
	Packets      atomic.Uint64 // read from the device or file
	Filtered     atomic.Uint64 // excluded by the filter mask
	DecodeErrors atomic.Uint64
}

// deliver decodes one buffer and calls h when it passes the mask.
func deliver(d *decoder, data []byte, h capture.Handler, st *Stats, logger log.Logger) {
	st.Packets.Add(1)
	c, t, ok, err := d.decode(data)
	if err != nil {
		st.DecodeErrors.Add(1)
		logger.Debug("dropping undecodable packet", log.Int("len", len(data)), log.Err(err))
		return
	}
	if !ok {
		st.Filtered.Add(1)
		return
	}
	h(c, t)
}
