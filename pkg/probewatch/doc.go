// Package probewatch provides an embeddable passive 802.11 probe-request
// monitor.
//
// A Sniffer reads frames from a monitor-mode interface (or a pcap file),
// classifies each one and writes a report line for every probe request:
//
//	RSSI: -67 Peer MAC: 11:22:33:44:55:66
//
// While capturing it hops the radio across the channel plan on a fixed
// interval.
//
// # Basic Usage
//
//	cfg := probewatch.DefaultConfig()
//	cfg.Iface = "wlan0mon"
//
//	s, err := probewatch.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... run until shutdown signal ...
//
//	if err := s.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// Use DefaultConfig rather than a zero Config: the zero value has probe
// reporting switched off.
//
// # Sources and Tuners
//
// Config.Iface selects a live libpcap capture and Config.ReplayFile a
// pcap replay. The channel tuner defaults to nl80211 and falls back to
// the iw binary. Replays never hop. Both can be replaced for testing or
// for other radios:
//
//	s, err := probewatch.New(cfg,
//	    probewatch.WithSource(mySource),
//	    probewatch.WithTuner(myTuner),
//	)
//
// # Events and Plugins
//
// Implement [EventHandler] (embedding [BaseEventHandler]) to observe state
// changes and channel hops. [Plugin] implementations receive a
// [PluginConfig] with the session logger, the report toggles and the
// metrics gatherer when the sniffer starts.
//
// # Lifecycle States
//
// A Sniffer is in one of [StateStopped], [StateStarting], [StateRunning],
// [StateStopping] or [StateCrashed]. [Sniffer.Done] is closed when a run
// ends, including when a replay reaches the end of its file.
package probewatch
