// Package metrics records capture and channel-hop activity as Prometheus
// metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bft-labs/probewatch/pkg/capture"
)

const namespace = "probewatch"

// Recorder implements capture.Observer and channel.Observer.
type Recorder struct {
	CapturesReceived  *prometheus.CounterVec
	CapturesTruncated *prometheus.CounterVec
	ProbesReported    prometheus.Counter
	ProbeRSSI         prometheus.Histogram

	Channel      prometheus.Gauge
	ChannelHops  prometheus.Counter
	TuneFailures *prometheus.CounterVec
}

// NewRecorder registers the metrics with reg. A nil reg uses a fresh
// registry, which keeps tests isolated.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	r := &Recorder{
		CapturesReceived: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "captures_received_total",
			Help:      "Buffers delivered by the capture source, by packet type.",
		}, []string{"type"}),

		CapturesTruncated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "captures_truncated_total",
			Help:      "Buffers too short for classification or extraction, by packet type.",
		}, []string{"type"}),

		ProbesReported: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probes_reported_total",
			Help:      "Probe report lines written.",
		}),

		ProbeRSSI: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_rssi_dbm",
			Help:      "Signal strength of reported frames in dBm.",
			Buckets:   prometheus.LinearBuckets(-100, 10, 9), // -100 .. -20
		}),

		Channel: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channel",
			Help:      "Channel the radio was last tuned to.",
		}),

		ChannelHops: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_hops_total",
			Help:      "Successful channel changes.",
		}),

		TuneFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_tune_failures_total",
			Help:      "Failed channel changes, by requested channel.",
		}, []string{"channel"}),
	}

	// Pre-create the per-type series so they export as zero.
	for _, t := range []capture.PacketType{capture.PacketMgmt, capture.PacketCtrl, capture.PacketData, capture.PacketMisc} {
		r.CapturesReceived.WithLabelValues(t.String())
		r.CapturesTruncated.WithLabelValues(t.String())
	}
	return r
}

// CaptureReceived implements capture.Observer.
func (r *Recorder) CaptureReceived(t capture.PacketType) {
	r.CapturesReceived.WithLabelValues(t.String()).Inc()
}

// CaptureTruncated implements capture.Observer.
func (r *Recorder) CaptureTruncated(t capture.PacketType) {
	r.CapturesTruncated.WithLabelValues(t.String()).Inc()
}

// ProbeReported implements capture.Observer.
func (r *Recorder) ProbeReported(rssi int8) {
	r.ProbesReported.Inc()
	r.ProbeRSSI.Observe(float64(rssi))
}

// ChannelChanged implements channel.Observer.
func (r *Recorder) ChannelChanged(ch int) {
	r.Channel.Set(float64(ch))
	r.ChannelHops.Inc()
}

// TuneFailed implements channel.Observer.
func (r *Recorder) TuneFailed(ch int, _ error) {
	r.TuneFailures.WithLabelValues(strconv.Itoa(ch)).Inc()
}
