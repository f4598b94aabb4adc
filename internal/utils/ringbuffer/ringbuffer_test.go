package ringbuffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushFrontOrdering(t *testing.T) {
	var r RingBuffer[int]
	require.True(t, r.Empty())
	require.Zero(t, r.Len())

	r.PushFront(1)
	r.PushFront(2)
	r.PushFront(3)
	require.Equal(t, 3, r.Len())
	require.Equal(t, 3, *r.Front())
	require.Equal(t, 3, *r.At(0))
	require.Equal(t, 2, *r.At(1))
	require.Equal(t, 1, *r.At(2))
}

func TestTruncateFromBack(t *testing.T) {
	var r RingBuffer[int]
	for i := 1; i <= 5; i++ {
		r.PushFront(i)
	}
	r.Truncate(2)
	require.Equal(t, 2, r.Len())
	require.Equal(t, 5, *r.At(0))
	require.Equal(t, 4, *r.At(1))

	// truncating to a larger size is a no-op
	r.Truncate(10)
	require.Equal(t, 2, r.Len())

	r.Truncate(0)
	require.True(t, r.Empty())
}

func TestMutationThroughPointers(t *testing.T) {
	var r RingBuffer[int]
	r.Init(4)
	r.PushFront(10)
	*r.Front() += 5
	require.Equal(t, 15, *r.At(0))
}

func TestGrowKeepsOrder(t *testing.T) {
	var r RingBuffer[int]
	r.Init(2)
	for i := 1; i <= 7; i++ {
		r.PushFront(i)
	}
	require.Equal(t, 7, r.Len())
	for i := 0; i < 7; i++ {
		require.Equal(t, 7-i, *r.At(i))
	}
}

func TestReuseAfterTruncate(t *testing.T) {
	var r RingBuffer[int]
	r.Init(3)
	for i := 1; i <= 3; i++ {
		r.PushFront(i)
	}
	r.Truncate(1)
	r.PushFront(4)
	r.PushFront(5)
	require.Equal(t, 3, r.Len())
	require.Equal(t, 5, *r.At(0))
	require.Equal(t, 4, *r.At(1))
	require.Equal(t, 3, *r.At(2))
}

func TestClear(t *testing.T) {
	var r RingBuffer[int]
	r.PushFront(1)
	r.PushFront(2)
	r.Clear()
	require.True(t, r.Empty())
	r.PushFront(3)
	require.Equal(t, 3, *r.Front())
}

func TestPanicsOnInvalidAccess(t *testing.T) {
	var r RingBuffer[int]
	require.Panics(t, func() { r.Front() })
	r.PushFront(1)
	require.Panics(t, func() { r.At(1) })
	require.Panics(t, func() { r.At(-1) })
}
