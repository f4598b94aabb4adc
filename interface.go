// Package netplay implements the client-side prediction and
// time-reconciliation core of a networked real-time game.
//
// The local simulation runs ahead of the last authoritative server state by
// an adaptively estimated margin. Whenever a new (possibly delta-compressed)
// authoritative snapshot arrives, the speculative state is reconciled by
// replaying buffered local input through the deterministic simulation step.
//
// The simulation step itself, rendering, the transport layer and the
// byte-level diff codec are external collaborators.
package netplay

import (
	"time"

	"github.com/netplay-go/netplay/internal/protocol"
	"github.com/netplay-go/netplay/internal/reconciler"
)

// A Tick is a monotonic simulation tick number.
type Tick = protocol.Tick

// A SnapshotID identifies an authoritative snapshot.
type SnapshotID = protocol.SnapshotID

// InvalidSnapshotID is a snapshot ID that is never used.
const InvalidSnapshotID = protocol.InvalidSnapshotID

// An InputID identifies a batch of local input sent to the server.
// Input IDs are assigned by the caller and must be strictly increasing.
type InputID = protocol.InputID

// A PlayerID identifies a player-controlled entity.
type PlayerID = protocol.PlayerID

// A PatchCodec applies a byte-level diff to a base snapshot. It is fallible
// and has no semantic knowledge of the snapshot format.
type PatchCodec = reconciler.PatchCodec

// ErrMissingDiffBase is the reason a delta-encoded snapshot was dropped:
// its base already left the history. Expected under packet loss.
var ErrMissingDiffBase = reconciler.ErrMissingDiffBase

// PlayerInput is one player's input for one tick. The Version increases
// whenever the input actually changed, so repeated identical inputs can be
// recognized.
type PlayerInput struct {
	Data    []byte
	Version uint64
}

// A Simulation is the opaque, deterministic game state the session predicts
// with. Given the same prior state and inputs, Tick must always produce the
// same state.
//
// All methods are called synchronously from the session. Implementations
// must not retain the snapshot slices.
type Simulation interface {
	// ApplySnapshot replaces the simulation state with the contents of an
	// authoritative snapshot.
	ApplySnapshot(snapshot []byte) error
	// SetPlayerInput applies a player's input for the next tick.
	SetPlayerInput(id PlayerID, input PlayerInput)
	// Tick advances the simulation state by one tick.
	Tick()
	// RevertNonLocalEntities restores every entity not owned by one of
	// the given players to its value in the snapshot. Only called when
	// anti-ping is disabled.
	RevertNonLocalEntities(snapshot []byte, keep []PlayerID) error
}

// A PostTickAction is applied once the rollback replay reaches the
// previously predicted tick.
type PostTickAction uint8

const (
	// PostTickNone leaves the replayed state untouched.
	PostTickNone PostTickAction = iota
	// PostTickRevertNonLocal restores entities not owned by a local
	// player to the reference snapshot.
	PostTickRevertNonLocal
)

// Snapshot is an authoritative state update, as decoded by the transport
// layer.
type Snapshot struct {
	// OverheadTime is the server-side processing time of this snapshot.
	// It is subtracted from the arrival timestamp, so that server queueing
	// delay is not attributed to the network.
	OverheadTime time.Duration
	// Data is the full or delta-encoded snapshot payload.
	Data []byte
	// GameMonotonicTickDiff is the snapshot's simulation tick: relative to
	// the diff base if DiffID is set, absolute otherwise.
	GameMonotonicTickDiff uint64
	// SnapIDDiffed is the snapshot's id: relative to the diff base if
	// DiffID is set, absolute otherwise.
	SnapIDDiffed uint64
	// DiffID is the id of the base snapshot this payload was
	// delta-encoded against, or InvalidSnapshotID for a full snapshot.
	DiffID SnapshotID
	// AsDiff requests that the client stores this snapshot as a future
	// diff base.
	AsDiff bool
	// InputAcks acknowledge input batches the server processed.
	InputAcks []InputAck
}

// An InputAck confirms that the server processed an input batch.
type InputAck struct {
	ID InputID
	// LogicOverhead is the time the input spent queued on the server
	// before it was processed. It is subtracted from the RTT measurement.
	LogicOverhead time.Duration
}

// A SnapshotAck is queued for the server for every handled snapshot.
type SnapshotAck struct {
	SnapID SnapshotID
	// AsDiff echoes whether the snapshot was stored as a diff base, so
	// the server knows it may delta-encode against it.
	AsDiff bool
}
