// Package metrics provides a Prometheus implementation of the session
// tracer.
package metrics

import (
	"errors"
	"time"

	"github.com/netplay-go/netplay/logging"

	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "netplay"

var (
	snapshotsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "snapshots_received_total",
			Help:      "Authoritative snapshots received",
		},
		[]string{"encoding"},
	)
	snapshotsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "snapshots_dropped_total",
			Help:      "Snapshot messages dropped",
		},
		[]string{"reason"},
	)
	snapshotBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "snapshot_bytes",
			Help:      "Size of reconstructed snapshots",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		},
	)
	inputPing = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "input_ping_seconds",
			Help:      "RTT measured from input send to server ack",
			Buckets:   prometheus.ExponentialBuckets(0.001, 1.5, 25), // up to ~25s
		},
	)
	staleBaselines = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "stale_baselines_total",
			Help:      "Snapshots whose tick was older than the buffered baseline",
		},
	)
	replayedTicks = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "replayed_ticks",
			Help:      "Ticks replayed per reconciliation pass",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
	replaysCapped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "replays_capped_total",
			Help:      "Reconciliation replays cut off at the catch-up bound",
		},
	)
	predictionMargin = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "prediction_margin_seconds",
			Help:      "How far the client predicts ahead of the server state",
		},
	)
	pingMax = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "ping_max_seconds",
			Help:      "Highest ping over the jitter window",
		},
	)
	pingAverage = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "ping_average_seconds",
			Help:      "Average ping over the jitter window",
		},
	)
	packetLoss = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "packet_loss_ratio",
			Help:      "Packet loss over the stats window",
		},
	)
	timerAdjustments = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "timer_adjustment_seconds",
			Help:      "Per-frame smooth timer adjustments (absolute value)",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		},
	)
)

// NewTracer creates a new tracer using the default Prometheus registerer.
// The tracer can be set on the Config of a session; sessions may share it.
func NewTracer() *logging.SessionTracer {
	return NewTracerWithRegisterer(prometheus.DefaultRegisterer)
}

// NewTracerWithRegisterer creates a new tracer using a given Prometheus
// registerer.
func NewTracerWithRegisterer(registerer prometheus.Registerer) *logging.SessionTracer {
	for _, c := range [...]prometheus.Collector{
		snapshotsReceived,
		snapshotsDropped,
		snapshotBytes,
		inputPing,
		staleBaselines,
		replayedTicks,
		replaysCapped,
		predictionMargin,
		pingMax,
		pingAverage,
		packetLoss,
		timerAdjustments,
	} {
		if err := registerer.Register(c); err != nil {
			if ok := errors.As(err, &prometheus.AlreadyRegisteredError{}); !ok {
				panic(err)
			}
		}
	}

	return &logging.SessionTracer{
		ReceivedSnapshot: func(_ logging.SnapshotID, _ logging.Tick, size int, diffed bool) {
			encoding := "full"
			if diffed {
				encoding = "diff"
			}
			snapshotsReceived.WithLabelValues(encoding).Inc()
			snapshotBytes.Observe(float64(size))
		},
		DroppedSnapshot: func(reason logging.SnapshotDropReason) {
			snapshotsDropped.WithLabelValues(reason.String()).Inc()
		},
		AckedInput: func(_ logging.InputID, ping time.Duration, hasPing bool) {
			if hasPing {
				inputPing.Observe(ping.Seconds())
			}
		},
		AdoptedBaseline: func(_ logging.Tick, authoritative bool) {
			if !authoritative {
				staleBaselines.Inc()
			}
		},
		ReplayedTicks: func(from, to logging.Tick, capped bool) {
			replayedTicks.Observe(float64(to - from))
			if capped {
				replaysCapped.Inc()
			}
		},
		UpdatedTimingStats: func(stats logging.TimingStats) {
			pingMax.Set(stats.PingMax.Seconds())
			pingAverage.Set(stats.PingAverage.Seconds())
			packetLoss.Set(stats.PacketLoss)
		},
		UpdatedPredictionMargin: func(margin time.Duration) {
			predictionMargin.Set(margin.Seconds())
		},
		AdjustedTimer: func(adjustment float64) {
			if adjustment < 0 {
				adjustment = -adjustment
			}
			timerAdjustments.Observe(adjustment)
		},
	}
}
