package ports

import "github.com/bft-labs/probewatch/pkg/channel"

// ChannelTuner retunes the monitor radio to a 2.4GHz channel number.
type ChannelTuner = channel.Tuner

// Indicator is flipped once per channel hop.
type Indicator = channel.Indicator
