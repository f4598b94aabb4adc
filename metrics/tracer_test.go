package metrics

import (
	"testing"
	"time"

	"github.com/netplay-go/netplay/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestTracerCountsSnapshots(t *testing.T) {
	tracer := NewTracerWithRegisterer(prometheus.NewRegistry())

	tracer.ReceivedSnapshot(1, 10, 512, false)
	tracer.ReceivedSnapshot(2, 11, 64, true)
	tracer.ReceivedSnapshot(3, 12, 70, true)
	tracer.DroppedSnapshot(logging.SnapshotDropMissingBase)

	require.Equal(t, 1.0, testutil.ToFloat64(snapshotsReceived.WithLabelValues("full")))
	require.Equal(t, 2.0, testutil.ToFloat64(snapshotsReceived.WithLabelValues("diff")))
	require.Equal(t, 1.0, testutil.ToFloat64(snapshotsDropped.WithLabelValues("missing_diff_base")))
}

func TestTracerRecordsTimerState(t *testing.T) {
	tracer := NewTracerWithRegisterer(prometheus.NewRegistry())

	tracer.UpdatedTimingStats(logging.TimingStats{
		PingMax:     150 * time.Millisecond,
		PingAverage: 100 * time.Millisecond,
		PacketLoss:  0.25,
	})
	tracer.UpdatedPredictionMargin(80 * time.Millisecond)

	require.Equal(t, 0.15, testutil.ToFloat64(pingMax))
	require.Equal(t, 0.1, testutil.ToFloat64(pingAverage))
	require.Equal(t, 0.25, testutil.ToFloat64(packetLoss))
	require.Equal(t, 0.08, testutil.ToFloat64(predictionMargin))
}

func TestTracerRegistersOnlyOnce(t *testing.T) {
	registry := prometheus.NewRegistry()
	require.NotPanics(t, func() {
		NewTracerWithRegisterer(registry)
		NewTracerWithRegisterer(registry)
	})
}

func TestTracerIgnoresAcksWithoutPing(t *testing.T) {
	tracer := NewTracerWithRegisterer(prometheus.NewRegistry())
	tracer.AckedInput(1, 0, false)
	tracer.AckedInput(2, 50*time.Millisecond, true)

	m := &dto.Metric{}
	require.NoError(t, inputPing.Write(m))
	require.EqualValues(t, 1, m.GetHistogram().GetSampleCount())
}
