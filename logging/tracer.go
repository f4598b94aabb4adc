// Package logging defines a tracing interface for the prediction core.
// This package should not be considered stable.
package logging

import "time"

// A SessionTracer records prediction events of a single session.
// Unset callbacks are skipped.
type SessionTracer struct {
	// ReceivedSnapshot is called for every reconstructed authoritative
	// snapshot, before it is applied.
	ReceivedSnapshot func(id SnapshotID, tick Tick, size int, diffed bool)
	// DroppedSnapshot is called when a snapshot message is discarded
	// without being applied.
	DroppedSnapshot func(reason SnapshotDropReason)
	// AckedSnapshot is called when a snapshot acknowledgment is queued.
	AckedSnapshot func(id SnapshotID)
	// AckedInput is called when the server confirmed an input batch.
	// ping is only set when the input's send time was still known.
	AckedInput func(id InputID, ping time.Duration, hasPing bool)
	// AdoptedBaseline is called when the replay baseline is chosen:
	// authoritative is false when the session keeps predicting from its
	// buffered prior state.
	AdoptedBaseline func(tick Tick, authoritative bool)
	// ReplayedTicks is called after the rollback replay of one
	// reconciliation pass. capped is set when the replay was cut off at
	// its upper bound before reaching the target.
	ReplayedTicks func(from, to Tick, capped bool)
	// UpdatedTimingStats is called when the timer statistics changed.
	UpdatedTimingStats func(stats TimingStats)
	// UpdatedPredictionMargin reports a recomputed prediction margin.
	UpdatedPredictionMargin func(margin time.Duration)
	// AdjustedTimer reports the per-frame smooth timer adjustment, in
	// seconds. Only called for non-zero adjustments.
	AdjustedTimer func(adjustment float64)
	// Close is called by the tracer's owner when no more events follow.
	Close func()
}

// NewMultiplexedSessionTracer creates a new tracer that multiplexes events
// to all given tracers.
func NewMultiplexedSessionTracer(tracers ...*SessionTracer) *SessionTracer {
	return &SessionTracer{
		ReceivedSnapshot: func(id SnapshotID, tick Tick, size int, diffed bool) {
			for _, t := range tracers {
				if t.ReceivedSnapshot != nil {
					t.ReceivedSnapshot(id, tick, size, diffed)
				}
			}
		},
		DroppedSnapshot: func(reason SnapshotDropReason) {
			for _, t := range tracers {
				if t.DroppedSnapshot != nil {
					t.DroppedSnapshot(reason)
				}
			}
		},
		AckedSnapshot: func(id SnapshotID) {
			for _, t := range tracers {
				if t.AckedSnapshot != nil {
					t.AckedSnapshot(id)
				}
			}
		},
		AckedInput: func(id InputID, ping time.Duration, hasPing bool) {
			for _, t := range tracers {
				if t.AckedInput != nil {
					t.AckedInput(id, ping, hasPing)
				}
			}
		},
		AdoptedBaseline: func(tick Tick, authoritative bool) {
			for _, t := range tracers {
				if t.AdoptedBaseline != nil {
					t.AdoptedBaseline(tick, authoritative)
				}
			}
		},
		ReplayedTicks: func(from, to Tick, capped bool) {
			for _, t := range tracers {
				if t.ReplayedTicks != nil {
					t.ReplayedTicks(from, to, capped)
				}
			}
		},
		UpdatedTimingStats: func(stats TimingStats) {
			for _, t := range tracers {
				if t.UpdatedTimingStats != nil {
					t.UpdatedTimingStats(stats)
				}
			}
		},
		UpdatedPredictionMargin: func(margin time.Duration) {
			for _, t := range tracers {
				if t.UpdatedPredictionMargin != nil {
					t.UpdatedPredictionMargin(margin)
				}
			}
		},
		AdjustedTimer: func(adjustment float64) {
			for _, t := range tracers {
				if t.AdjustedTimer != nil {
					t.AdjustedTimer(adjustment)
				}
			}
		},
		Close: func() {
			for _, t := range tracers {
				if t.Close != nil {
					t.Close()
				}
			}
		},
	}
}
