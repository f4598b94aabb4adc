package eventlog

import (
	"time"

	"github.com/netplay-go/netplay/logging"

	"github.com/francoispqt/gojay"
)

type eventDetails interface {
	Name() string
	gojay.MarshalerJSONObject
}

type event struct {
	RelativeTime time.Duration
	eventDetails
}

var _ gojay.MarshalerJSONObject = event{}

func (e event) IsNil() bool { return false }
func (e event) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("time", milliseconds(e.RelativeTime))
	enc.StringKey("event", e.Name())
	enc.ObjectKey("data", e.eventDetails)
}

func milliseconds(d time.Duration) float64 { return float64(d.Nanoseconds()) / 1e6 }

type eventSnapshotReceived struct {
	ID     logging.SnapshotID
	Tick   logging.Tick
	Size   int
	Diffed bool
}

var _ eventDetails = eventSnapshotReceived{}

func (e eventSnapshotReceived) Name() string { return "snapshot_received" }
func (e eventSnapshotReceived) IsNil() bool  { return false }

func (e eventSnapshotReceived) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Int64Key("id", int64(e.ID))
	enc.Uint64Key("tick", uint64(e.Tick))
	enc.IntKey("size", e.Size)
	encoding := "full"
	if e.Diffed {
		encoding = "diff"
	}
	enc.StringKey("encoding", encoding)
}

type eventSnapshotDropped struct {
	Reason logging.SnapshotDropReason
}

var _ eventDetails = eventSnapshotDropped{}

func (e eventSnapshotDropped) Name() string { return "snapshot_dropped" }
func (e eventSnapshotDropped) IsNil() bool  { return false }

func (e eventSnapshotDropped) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("trigger", e.Reason.String())
}

type eventSnapshotAcked struct {
	ID logging.SnapshotID
}

var _ eventDetails = eventSnapshotAcked{}

func (e eventSnapshotAcked) Name() string { return "snapshot_acked" }
func (e eventSnapshotAcked) IsNil() bool  { return false }

func (e eventSnapshotAcked) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Int64Key("id", int64(e.ID))
}

type eventInputAcked struct {
	ID      logging.InputID
	Ping    time.Duration
	HasPing bool
}

var _ eventDetails = eventInputAcked{}

func (e eventInputAcked) Name() string { return "input_acked" }
func (e eventInputAcked) IsNil() bool  { return false }

func (e eventInputAcked) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Uint64Key("id", uint64(e.ID))
	if e.HasPing {
		enc.Float64Key("ping", milliseconds(e.Ping))
	}
}

type eventBaselineAdopted struct {
	Tick          logging.Tick
	Authoritative bool
}

var _ eventDetails = eventBaselineAdopted{}

func (e eventBaselineAdopted) Name() string { return "baseline_adopted" }
func (e eventBaselineAdopted) IsNil() bool  { return false }

func (e eventBaselineAdopted) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Uint64Key("tick", uint64(e.Tick))
	enc.BoolKey("authoritative", e.Authoritative)
}

type eventTicksReplayed struct {
	From   logging.Tick
	To     logging.Tick
	Capped bool
}

var _ eventDetails = eventTicksReplayed{}

func (e eventTicksReplayed) Name() string { return "ticks_replayed" }
func (e eventTicksReplayed) IsNil() bool  { return false }

func (e eventTicksReplayed) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Uint64Key("from", uint64(e.From))
	enc.Uint64Key("to", uint64(e.To))
	enc.BoolKeyOmitEmpty("capped", e.Capped)
}

type eventTimingStats struct {
	Stats logging.TimingStats
}

var _ eventDetails = eventTimingStats{}

func (e eventTimingStats) Name() string { return "timing_stats" }
func (e eventTimingStats) IsNil() bool  { return false }

func (e eventTimingStats) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("ping_max", milliseconds(e.Stats.PingMax))
	enc.Float64Key("ping_min", milliseconds(e.Stats.PingMin))
	enc.Float64Key("ping_avg", milliseconds(e.Stats.PingAverage))
	enc.Float64Key("jitter_range", milliseconds(e.Stats.JitterRange))
	enc.Float64Key("packet_loss", e.Stats.PacketLoss)
	enc.Float64Key("max_frame_time", milliseconds(e.Stats.MaxFrameTime))
}

type eventPredictionMargin struct {
	Margin time.Duration
}

var _ eventDetails = eventPredictionMargin{}

func (e eventPredictionMargin) Name() string { return "prediction_margin" }
func (e eventPredictionMargin) IsNil() bool  { return false }

func (e eventPredictionMargin) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("margin", milliseconds(e.Margin))
}

type eventTimerAdjusted struct {
	// Adjustment is in seconds, converted to ms on export.
	Adjustment float64
}

var _ eventDetails = eventTimerAdjusted{}

func (e eventTimerAdjusted) Name() string { return "timer_adjusted" }
func (e eventTimerAdjusted) IsNil() bool  { return false }

func (e eventTimerAdjusted) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("adjustment", e.Adjustment*1e3)
}
