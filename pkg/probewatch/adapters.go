package probewatch

import (
	"fmt"

	"github.com/bft-labs/probewatch/internal/adapters/iw"
	"github.com/bft-labs/probewatch/internal/adapters/led"
	"github.com/bft-labs/probewatch/internal/adapters/nl80211"
	"github.com/bft-labs/probewatch/internal/adapters/pcap"
	"github.com/bft-labs/probewatch/internal/ports"
	"github.com/bft-labs/probewatch/pkg/log"
)

func (s *Sniffer) openSource(logger log.Logger) (ports.CaptureSource, error) {
	if s.opts.source != nil {
		return s.opts.source, nil
	}
	if s.config.ReplayFile != "" {
		return pcap.NewReplaySource(s.config.ReplayFile, s.config.Filter, logger), nil
	}
	return pcap.NewLiveSource(pcap.LiveConfig{
		Iface:       s.config.Iface,
		SnapLen:     s.config.SnapLen,
		ReadTimeout: s.config.ReadTimeout,
		RFMon:       s.config.RFMon,
		Filter:      s.config.Filter,
	}, logger), nil
}

// openTuner returns the tuner for this run and, when the sniffer owns
// it, a function releasing it. A nil tuner disables hopping.
func (s *Sniffer) openTuner(logger log.Logger) (ports.ChannelTuner, func() error, error) {
	if s.opts.tuner != nil {
		return s.opts.tuner, nil, nil
	}
	if s.config.ReplayFile != "" || s.config.Iface == "" {
		return nil, nil, nil
	}

	switch s.config.Tuner {
	case TunerNone:
		return nil, nil, nil
	case TunerIW:
		return iw.New(s.config.Iface, iw.ExecRunner), nil, nil
	}

	t, err := nl80211.Open(s.config.Iface)
	if err == nil {
		logger.Debug("using nl80211 tuner", log.String("iface", s.config.Iface))
		return t, t.Close, nil
	}
	if iw.Available() {
		logger.Warn("nl80211 unavailable, falling back to iw",
			log.String("iface", s.config.Iface),
			log.Err(err))
		return iw.New(s.config.Iface, iw.ExecRunner), nil, nil
	}
	return nil, nil, fmt.Errorf("open tuner: %w", err)
}

func (s *Sniffer) openIndicator(logger log.Logger) (ports.Indicator, error) {
	if s.opts.indicator != nil {
		return s.opts.indicator, nil
	}
	if s.config.LED == "" {
		return led.NewHeartbeat(logger), nil
	}
	ind, err := led.NewSysfs(led.DefaultRoot, s.config.LED, logger)
	if err != nil {
		return nil, fmt.Errorf("open indicator: %w", err)
	}
	return ind, nil
}
