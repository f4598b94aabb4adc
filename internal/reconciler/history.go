package reconciler

import (
	"github.com/netplay-go/netplay/internal/protocol"
)

type historyEntry struct {
	id            protocol.SnapshotID
	snapshot      []byte
	monotonicTick protocol.Tick
}

// snapshotHistory keeps the snapshots that may still serve as diff bases.
// Entries are kept in insertion order; eviction beyond the cap is strictly
// FIFO, independent of the entries' tick or id values.
type snapshotHistory struct {
	entries []historyEntry
}

func (h *snapshotHistory) get(id protocol.SnapshotID) (historyEntry, bool) {
	for _, e := range h.entries {
		if e.id == id {
			return e, true
		}
	}
	return historyEntry{}, false
}

func (h *snapshotHistory) insert(e historyEntry) {
	// A reused id is misbehavior of the server, but it arrives from the
	// network, so it must not bring the client down. The entry is replaced
	// in place, keeping its insertion position.
	for i := range h.entries {
		if h.entries[i].id == e.id {
			h.entries[i] = e
			return
		}
	}
	h.entries = append(h.entries, e)
	if len(h.entries) > protocol.MaxSnapshotHistory {
		h.entries = h.entries[1:]
	}
}

// pruneBefore drops all entries with an id below the given one. Once the
// server diffs against a base, everything older can never be referenced
// again.
func (h *snapshotHistory) pruneBefore(id protocol.SnapshotID) {
	kept := h.entries[:0]
	for _, e := range h.entries {
		if e.id >= id {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(h.entries); i++ {
		h.entries[i] = historyEntry{}
	}
	h.entries = kept
}

func (h *snapshotHistory) len() int { return len(h.entries) }

func (h *snapshotHistory) oldest() (historyEntry, bool) {
	if len(h.entries) == 0 {
		return historyEntry{}, false
	}
	return h.entries[0], true
}
