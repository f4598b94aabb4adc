package netplay

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInputBufferNearestEarlierFallback(t *testing.T) {
	var b inputBuffer
	b.add(10, 1, PlayerInput{Version: 1})
	b.add(13, 1, PlayerInput{Version: 2})

	_, ok := b.forTick(9)
	require.False(t, ok)

	inputs, ok := b.forTick(10)
	require.True(t, ok)
	require.Equal(t, uint64(1), inputs[1].Version)

	// ticks without own input repeat the last known one
	inputs, ok = b.forTick(12)
	require.True(t, ok)
	require.Equal(t, uint64(1), inputs[1].Version)

	inputs, ok = b.forTick(20)
	require.True(t, ok)
	require.Equal(t, uint64(2), inputs[1].Version)
}

func TestInputBufferOutOfOrderInsert(t *testing.T) {
	var b inputBuffer
	b.add(12, 1, PlayerInput{Version: 2})
	b.add(10, 1, PlayerInput{Version: 1})

	inputs, ok := b.forTick(11)
	require.True(t, ok)
	require.Equal(t, uint64(1), inputs[1].Version)
}

func TestInputBufferMergesPlayersPerTick(t *testing.T) {
	var b inputBuffer
	b.add(10, 1, PlayerInput{Version: 1})
	b.add(10, 2, PlayerInput{Version: 5})
	require.Equal(t, 1, b.len())

	inputs, ok := b.forTick(10)
	require.True(t, ok)
	require.Len(t, inputs, 2)

	// a newer input for the same tick and player replaces the old one
	b.add(10, 1, PlayerInput{Version: 2})
	inputs, _ = b.forTick(10)
	require.Equal(t, uint64(2), inputs[1].Version)
}

func TestInputBufferPruneKeepsBoundaryTick(t *testing.T) {
	var b inputBuffer
	b.add(10, 1, PlayerInput{Version: 1})
	b.add(11, 1, PlayerInput{Version: 2})
	b.add(14, 1, PlayerInput{Version: 3})

	b.pruneBelow(11)
	require.Equal(t, 2, b.len())

	inputs, ok := b.forTick(12)
	require.True(t, ok)
	require.Equal(t, uint64(2), inputs[1].Version)

	b.pruneBelow(100)
	require.Zero(t, b.len())
	_, ok = b.forTick(100)
	require.False(t, ok)
}
