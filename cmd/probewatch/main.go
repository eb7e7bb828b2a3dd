package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/probewatch/internal/cliconfig"
	"github.com/bft-labs/probewatch/pkg/log"
	"github.com/bft-labs/probewatch/pkg/probewatch"
	"github.com/bft-labs/probewatch/plugins/configwatcher"
	"github.com/bft-labs/probewatch/plugins/promexporter"
)

const longHelp = `Passively watch 802.11 probe requests.

probewatch puts nothing on the air. It reads frames from a monitor-mode
interface, hops across the 2.4GHz channels and prints one line per probe
request with the sender's MAC address and signal strength:

  RSSI: -67 Peer MAC: 11:22:33:44:55:66

Report lines go to stdout and logs to stderr. Settings come from
$HOME/.probewatch/config.toml, PROBEWATCH_* environment variables and
flags, in increasing order of precedence.`

var exampleUsage = strings.TrimSpace(`
  probewatch --iface wlan0mon
  probewatch --iface wlan0mon --channels 1,6,11 --hop-interval 250ms --show-ssid
  probewatch --replay capture.pcap --diagnostics --filter all --match all
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := cliconfig.Logger()

	root := &cobra.Command{
		Use:          "probewatch",
		Short:        "Passively watch 802.11 probe requests",
		Long:         longHelp,
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			watchFile := ""
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
				watchFile = cfgFile
			}

			// Environment overrides the file; flags override both.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cliconfig.ApplyLogLevel(cfg.LogLevel); err != nil {
				return err
			}
			logger.Info().Interface("config", cfg).Msg("configuration")

			// Validate has already parsed these.
			plan, _ := cfg.Plan()
			mask, _ := cfg.FilterMask()

			libCfg := probewatch.Config{
				Iface:              cfg.Iface,
				ReplayFile:         cfg.ReplayFile,
				Tuner:              cfg.Tuner,
				LED:                cfg.LED,
				Plan:               plan,
				HopInterval:        cfg.HopInterval,
				Filter:             mask,
				Match:              cfg.MatchPredicate(),
				DisableProbeReport: !cfg.ProbeReport,
				Diagnostics:        cfg.Diagnostics,
				ShowSSID:           cfg.ShowSSID,
				SnapLen:            cfg.SnapLen,
				ReadTimeout:        cfg.ReadTimeout,
				RFMon:              cfg.RFMon,
				ConfigPath:         watchFile,
			}

			opts := []probewatch.Option{
				probewatch.WithLogger(log.NewZerologAdapterWithLogger(logger)),
				probewatch.WithReportWriter(os.Stdout),
				configwatcher.WithConfigWatcher(configwatcher.Config{
					Pinned: cliconfig.PinnedKeys(changed),
				}),
			}
			if cfg.MetricsAddr != "" {
				opts = append(opts, promexporter.WithExporter(cfg.MetricsAddr))
			}

			s, err := probewatch.New(libCfg, opts...)
			if err != nil {
				return fmt.Errorf("create sniffer: %w", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			if err := s.Start(ctx); err != nil {
				return fmt.Errorf("start sniffer: %w", err)
			}

			select {
			case sig := <-sigCh:
				logger.Info().Str("signal", sig.String()).Msg("received signal, stopping...")
			case <-s.Done():
				// Replay finished or a worker failed.
				if s.Status() == probewatch.StateCrashed {
					return fmt.Errorf("sniffer crashed: %w", s.Err())
				}
				return nil
			}

			if err := s.Stop(); err != nil && !errors.Is(err, probewatch.ErrNotRunning) {
				return fmt.Errorf("stop sniffer: %w", err)
			}
			return nil
		},
	}

	// Flags
	f := root.Flags()
	f.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.probewatch/config.toml)")
	f.StringVar(&cfg.Iface, "iface", cfg.Iface, "monitor-mode interface to capture from")
	f.StringVar(&cfg.ReplayFile, "replay", cfg.ReplayFile, "replay a pcap file instead of capturing (disables hopping)")

	f.StringVar(&cfg.Tuner, "tuner", cfg.Tuner, "channel tuner: nl80211, iw or none")
	f.StringVar(&cfg.LED, "led", cfg.LED, "sysfs LED toggled on every hop (default: log heartbeat)")
	f.DurationVar(&cfg.HopInterval, "hop-interval", cfg.HopInterval, "dwell time on each channel")
	f.IntVar(&cfg.MinChannel, "min-channel", cfg.MinChannel, "first channel of the hop range")
	f.IntVar(&cfg.MaxChannel, "max-channel", cfg.MaxChannel, "last channel of the hop range")
	f.StringVar(&cfg.Channels, "channels", cfg.Channels, "explicit hop order, e.g. 1,6,11 (overrides the range)")

	f.StringVar(&cfg.Filter, "filter", cfg.Filter, "frame categories to capture: mgmt, ctrl, data, misc or all")
	f.StringVar(&cfg.Match, "match", cfg.Match, "frames to report: probe-request, management, control, data or all")
	f.BoolVar(&cfg.ProbeReport, "probe-report", cfg.ProbeReport, "print a line per matching frame")
	f.BoolVar(&cfg.Diagnostics, "diagnostics", cfg.Diagnostics, "print a diagnostic line per captured frame")
	f.BoolVar(&cfg.ShowSSID, "show-ssid", cfg.ShowSSID, "append the requested SSID to probe lines")

	f.IntVar(&cfg.SnapLen, "snap-len", cfg.SnapLen, "capture snapshot length")
	f.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "capture read timeout")
	if err := f.MarkHidden("read-timeout"); err != nil {
		logger.Info().Err(err).Msg("failed to hide read-timeout flag")
	}
	f.BoolVar(&cfg.RFMon, "rfmon", cfg.RFMon, "ask libpcap to enable monitor mode")

	f.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address (e.g. :9465)")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("probewatch")
		os.Exit(1)
	}
}
