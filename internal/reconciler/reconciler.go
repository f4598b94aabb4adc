// Package reconciler reconstructs full authoritative snapshots from
// (possibly delta-compressed) snapshot messages, keeps the bounded history
// of diff bases, and tracks in-flight inputs for RTT estimation.
package reconciler

import (
	"errors"
	"fmt"
	"time"

	"github.com/netplay-go/netplay/internal/monotime"
	"github.com/netplay-go/netplay/internal/protocol"
	"github.com/netplay-go/netplay/internal/utils"
)

// ErrMissingDiffBase is returned when a delta-encoded snapshot references a
// base that is not (or no longer) in the history. This is expected under
// packet loss and reordering; the message is simply dropped.
var ErrMissingDiffBase = errors.New("diff base not in snapshot history")

// A PatchCodec applies a byte-level diff to a base snapshot. It has no
// semantic knowledge of the snapshot format.
type PatchCodec interface {
	Patch(base, diff []byte) ([]byte, error)
}

// A Result is a fully reconstructed authoritative snapshot.
type Result struct {
	SnapID        protocol.SnapshotID
	MonotonicTick protocol.Tick
	Snapshot      []byte
	// DiffID is the base this snapshot was delta-encoded against, or
	// InvalidSnapshotID for a full snapshot.
	DiffID protocol.SnapshotID
}

type sentInput struct {
	id     protocol.InputID
	sentAt monotime.Time
}

// A Reconciler is owned by a single session and must not be used
// concurrently.
type Reconciler struct {
	codec  PatchCodec
	logger utils.Logger

	history snapshotHistory

	// id of the newest snapshot whose state was applied; older ids carry
	// nothing new
	handledSnapID protocol.SnapshotID

	// in-flight inputs, ordered by send time, pruned after MaxSentInputAge
	sentInputs         []sentInput
	lastSentInput      protocol.InputID
	hasSentInput       bool
	lastConfirmedInput protocol.InputID
	hasConfirmedInput  bool
}

func New(codec PatchCodec, logger utils.Logger) *Reconciler {
	return &Reconciler{
		codec:         codec,
		logger:        logger,
		handledSnapID: protocol.InvalidSnapshotID,
	}
}

// Reconstruct resolves a snapshot message into the full snapshot bytes and
// absolute id and tick. For delta-encoded messages (diffID set), idDelta and
// tickDelta are relative to the base entry; otherwise they are absolute.
//
// A missing base or a codec failure is reported as an error; the caller
// drops the message and keeps predicting from its last good baseline.
func (r *Reconciler) Reconstruct(payload []byte, tickDelta, idDelta uint64, diffID protocol.SnapshotID) (Result, error) {
	if diffID == protocol.InvalidSnapshotID {
		return Result{
			SnapID:        protocol.SnapshotID(idDelta),
			MonotonicTick: protocol.Tick(tickDelta),
			Snapshot:      payload,
			DiffID:        protocol.InvalidSnapshotID,
		}, nil
	}

	base, ok := r.history.get(diffID)
	if !ok {
		return Result{}, fmt.Errorf("snapshot diffed against %d: %w", diffID, ErrMissingDiffBase)
	}
	full, err := r.codec.Patch(base.snapshot, payload)
	if err != nil {
		return Result{}, fmt.Errorf("patching snapshot diffed against %d: %w", diffID, err)
	}
	return Result{
		SnapID:        diffID + protocol.SnapshotID(idDelta),
		MonotonicTick: base.monotonicTick + protocol.Tick(tickDelta),
		Snapshot:      full,
		DiffID:        diffID,
	}, nil
}

// AlreadyHandled reports whether the snapshot carries nothing new, i.e. a
// snapshot with the same or a higher id was already applied.
func (r *Reconciler) AlreadyHandled(id protocol.SnapshotID) bool {
	return r.handledSnapID != protocol.InvalidSnapshotID && r.handledSnapID >= id
}

// Commit marks the snapshot as handled, prunes diff bases that can no
// longer be referenced, and stores the snapshot as a future diff base if
// the server requested it.
func (r *Reconciler) Commit(res Result, asDiff bool) {
	r.handledSnapID = res.SnapID
	if res.DiffID != protocol.InvalidSnapshotID {
		r.history.pruneBefore(res.DiffID)
	}
	if asDiff {
		snap := make([]byte, len(res.Snapshot))
		copy(snap, res.Snapshot)
		r.history.insert(historyEntry{
			id:            res.SnapID,
			snapshot:      snap,
			monotonicTick: res.MonotonicTick,
		})
		if r.logger.Debug() {
			r.logger.Debugf("stored snapshot %d (tick %d) as diff base, %d bases kept",
				res.SnapID, res.MonotonicTick, r.history.len())
		}
	}
}

// HistoryLen returns the number of stored diff bases.
func (r *Reconciler) HistoryLen() int { return r.history.len() }

// OldestBase returns the id of the diff base that would be evicted next.
func (r *Reconciler) OldestBase() (protocol.SnapshotID, bool) {
	e, ok := r.history.oldest()
	return e.id, ok
}

// RecordSentInput remembers the send time of an input batch, for RTT
// estimation once the server acks it. Entries older than MaxSentInputAge
// are dropped; their acks are too old to produce a useful ping sample.
func (r *Reconciler) RecordSentInput(id protocol.InputID, now monotime.Time) {
	if r.hasSentInput && id <= r.lastSentInput {
		panic(fmt.Sprintf("non-monotonic input id use: %d after %d", id, r.lastSentInput))
	}
	r.lastSentInput = id
	r.hasSentInput = true
	const maxAge = protocol.MaxSentInputAge * time.Second
	for len(r.sentInputs) > 0 && now.Sub(r.sentInputs[0].sentAt) > maxAge {
		r.sentInputs = r.sentInputs[1:]
	}
	r.sentInputs = append(r.sentInputs, sentInput{id: id, sentAt: now})
}

// AckInput moves a pending input to last-confirmed. If the send time of the
// input is still known, the resulting ping sample
// (now - sentAt - logicOverhead) is returned.
func (r *Reconciler) AckInput(id protocol.InputID, logicOverhead time.Duration, now monotime.Time) (time.Duration, bool) {
	if !r.hasConfirmedInput || id > r.lastConfirmedInput {
		r.lastConfirmedInput = id
		r.hasConfirmedInput = true
	}
	for i, sent := range r.sentInputs {
		if sent.id == id {
			r.sentInputs = append(r.sentInputs[:i], r.sentInputs[i+1:]...)
			ping := now.Sub(sent.sentAt) - logicOverhead
			if ping < 0 {
				ping = 0
			}
			return ping, true
		}
	}
	return 0, false
}

// LastConfirmedInput returns the highest acked input id.
func (r *Reconciler) LastConfirmedInput() (protocol.InputID, bool) {
	return r.lastConfirmedInput, r.hasConfirmedInput
}
