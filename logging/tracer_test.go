package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMultiplexedTracerFansOut(t *testing.T) {
	var received []SnapshotID
	var dropped int
	t1 := &SessionTracer{
		ReceivedSnapshot: func(id SnapshotID, _ Tick, _ int, _ bool) { received = append(received, id) },
	}
	t2 := &SessionTracer{
		ReceivedSnapshot: func(id SnapshotID, _ Tick, _ int, _ bool) { received = append(received, id) },
		DroppedSnapshot:  func(SnapshotDropReason) { dropped++ },
	}
	tracer := NewMultiplexedSessionTracer(t1, t2)

	tracer.ReceivedSnapshot(7, 1, 100, false)
	require.Equal(t, []SnapshotID{7, 7}, received)

	// t1 has no DroppedSnapshot callback, it is skipped
	tracer.DroppedSnapshot(SnapshotDropMissingBase)
	require.Equal(t, 1, dropped)
}

func TestMultiplexedTracerCloses(t *testing.T) {
	var closed int
	tracer := NewMultiplexedSessionTracer(
		&SessionTracer{Close: func() { closed++ }},
		&SessionTracer{},
		&SessionTracer{Close: func() { closed++ }},
	)
	tracer.AckedInput(1, time.Millisecond, true) // no callback set anywhere
	tracer.Close()
	require.Equal(t, 2, closed)
}

func TestSnapshotDropReasonString(t *testing.T) {
	require.Equal(t, "missing_diff_base", SnapshotDropMissingBase.String())
	require.Equal(t, "patch_failed", SnapshotDropPatchFailed.String())
	require.Equal(t, "apply_failed", SnapshotDropApplyFailed.String())
}
