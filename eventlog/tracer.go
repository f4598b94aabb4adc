// Package eventlog records session prediction events as newline-delimited
// JSON, for offline analysis of timing behavior.
package eventlog

import (
	"io"
	"log"
	"time"

	"github.com/netplay-go/netplay/logging"

	"github.com/francoispqt/gojay"
)

const eventChanSize = 50

type tracer struct {
	w             io.WriteCloser
	referenceTime time.Time

	events     chan event
	encodeErr  error
	runStopped chan struct{}
}

// NewTracer creates a tracer that writes session events to w, one JSON
// object per line. Events are encoded on a separate goroutine; calling
// Close on the returned tracer flushes pending events and closes w.
func NewTracer(w io.WriteCloser) *logging.SessionTracer {
	t := &tracer{
		w:             w,
		referenceTime: time.Now(),
		events:        make(chan event, eventChanSize),
		runStopped:    make(chan struct{}),
	}
	go t.run()

	return &logging.SessionTracer{
		ReceivedSnapshot: func(id logging.SnapshotID, tick logging.Tick, size int, diffed bool) {
			t.recordEvent(eventSnapshotReceived{ID: id, Tick: tick, Size: size, Diffed: diffed})
		},
		DroppedSnapshot: func(reason logging.SnapshotDropReason) {
			t.recordEvent(eventSnapshotDropped{Reason: reason})
		},
		AckedSnapshot: func(id logging.SnapshotID) {
			t.recordEvent(eventSnapshotAcked{ID: id})
		},
		AckedInput: func(id logging.InputID, ping time.Duration, hasPing bool) {
			t.recordEvent(eventInputAcked{ID: id, Ping: ping, HasPing: hasPing})
		},
		AdoptedBaseline: func(tick logging.Tick, authoritative bool) {
			t.recordEvent(eventBaselineAdopted{Tick: tick, Authoritative: authoritative})
		},
		ReplayedTicks: func(from, to logging.Tick, capped bool) {
			t.recordEvent(eventTicksReplayed{From: from, To: to, Capped: capped})
		},
		UpdatedTimingStats: func(stats logging.TimingStats) {
			t.recordEvent(eventTimingStats{Stats: stats})
		},
		UpdatedPredictionMargin: func(margin time.Duration) {
			t.recordEvent(eventPredictionMargin{Margin: margin})
		},
		AdjustedTimer: func(adjustment float64) {
			t.recordEvent(eventTimerAdjusted{Adjustment: adjustment})
		},
		Close: t.close,
	}
}

func (t *tracer) run() {
	defer close(t.runStopped)
	enc := gojay.NewEncoder(t.w)
	for ev := range t.events {
		if t.encodeErr != nil { // if encoding failed, just continue draining the event channel
			continue
		}
		if err := enc.Encode(ev); err != nil {
			t.encodeErr = err
			continue
		}
		if _, err := t.w.Write([]byte{'\n'}); err != nil {
			t.encodeErr = err
		}
	}
}

func (t *tracer) recordEvent(details eventDetails) {
	t.events <- event{
		RelativeTime: time.Since(t.referenceTime),
		eventDetails: details,
	}
}

func (t *tracer) close() {
	close(t.events)
	<-t.runStopped
	if t.encodeErr != nil {
		log.Printf("exporting event log failed: %s\n", t.encodeErr)
	}
	if err := t.w.Close(); err != nil {
		log.Printf("closing event log failed: %s\n", err)
	}
}
