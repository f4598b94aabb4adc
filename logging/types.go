package logging

import (
	"github.com/netplay-go/netplay/internal/protocol"
	"github.com/netplay-go/netplay/internal/timing"
)

// A Tick is a monotonic simulation tick number.
type Tick = protocol.Tick

// A SnapshotID identifies an authoritative snapshot.
type SnapshotID = protocol.SnapshotID

// An InputID identifies a batch of local input sent to the server.
type InputID = protocol.InputID

// TimingStats is a view of the prediction timer state.
type TimingStats = timing.Stats

// A SnapshotDropReason is the reason a snapshot message was discarded.
type SnapshotDropReason uint8

const (
	// SnapshotDropMissingBase means the diff base was not in the history.
	SnapshotDropMissingBase SnapshotDropReason = iota
	// SnapshotDropPatchFailed means the byte-level patch could not be applied.
	SnapshotDropPatchFailed
	// SnapshotDropApplyFailed means the simulation rejected the snapshot.
	SnapshotDropApplyFailed
)

func (r SnapshotDropReason) String() string {
	switch r {
	case SnapshotDropMissingBase:
		return "missing_diff_base"
	case SnapshotDropPatchFailed:
		return "patch_failed"
	case SnapshotDropApplyFailed:
		return "apply_failed"
	default:
		return "unknown"
	}
}
