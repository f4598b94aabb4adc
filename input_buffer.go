package netplay

import "sort"

// inputBuffer stores per-tick, per-player input for the reconciliation
// replay, ordered by tick. Inputs usually arrive in tick order, so inserts
// are append-mostly.
type inputBuffer struct {
	entries []inputEntry
}

type inputEntry struct {
	tick   Tick
	inputs map[PlayerID]PlayerInput
}

func (b *inputBuffer) add(tick Tick, player PlayerID, input PlayerInput) {
	i := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].tick >= tick })
	if i < len(b.entries) && b.entries[i].tick == tick {
		b.entries[i].inputs[player] = input
		return
	}
	e := inputEntry{tick: tick, inputs: map[PlayerID]PlayerInput{player: input}}
	b.entries = append(b.entries, inputEntry{})
	copy(b.entries[i+1:], b.entries[i:])
	b.entries[i] = e
}

// forTick returns the input for the tick, falling back to the nearest
// earlier tick. Sparse input streams repeat the last known input.
func (b *inputBuffer) forTick(tick Tick) (map[PlayerID]PlayerInput, bool) {
	i := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].tick > tick })
	if i == 0 {
		return nil, false
	}
	return b.entries[i-1].inputs, true
}

// pruneBelow drops all entries strictly older than the tick. The entry at
// the tick itself is kept: it may still serve as the nearest-earlier
// fallback.
func (b *inputBuffer) pruneBelow(tick Tick) {
	i := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].tick >= tick })
	if i == 0 {
		return
	}
	n := copy(b.entries, b.entries[i:])
	for j := n; j < len(b.entries); j++ {
		b.entries[j] = inputEntry{}
	}
	b.entries = b.entries[:n]
}

func (b *inputBuffer) len() int { return len(b.entries) }
