// Package protocol contains the scalar types shared between the prediction
// core's packages.
package protocol

// A Tick is a monotonic simulation tick number.
type Tick uint64

// A SnapshotID identifies an authoritative snapshot sent by the server.
type SnapshotID int64

// InvalidSnapshotID is a snapshot ID that is never used.
// Note that the zero value is a valid snapshot ID.
const InvalidSnapshotID SnapshotID = -1

// An InputID identifies a batch of local input sent to the server.
type InputID uint64

// A PlayerID identifies a player-controlled entity.
type PlayerID uint64

// MaxSnapshotHistory is the maximum number of snapshots kept as potential
// diff bases. When exceeded, the entry inserted first is evicted.
const MaxSnapshotHistory = 50

// MaxCatchUpFactor bounds how many ticks a single reconciliation pass may
// replay, as a multiple of the tick rate. Catching up over a larger gap
// requires multiple passes.
const MaxCatchUpFactor = 3

// MaxSentInputAge is how long a sent input is remembered for RTT estimation,
// in seconds. Acks arriving later than this no longer produce ping samples.
const MaxSentInputAge = 3
