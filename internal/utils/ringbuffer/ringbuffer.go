// Package ringbuffer provides a ring buffer with front-insertion semantics,
// used for the per-second sample windows of the prediction timer.
package ringbuffer

// A RingBuffer with the newest element at the front.
// Elements are added with PushFront and discarded from the back with
// Truncate, so index 0 is always the most recent element.
type RingBuffer[T any] struct {
	ring    []T
	headPos int
	length  int
}

// Init preallocates a buffer with a capacity of size.
func (r *RingBuffer[T]) Init(size int) {
	r.ring = make([]T, size)
}

// Len returns the number of elements in the buffer.
func (r *RingBuffer[T]) Len() int { return r.length }

// Empty says if the buffer is empty.
func (r *RingBuffer[T]) Empty() bool { return r.length == 0 }

// PushFront adds a new element to the front of the buffer.
func (r *RingBuffer[T]) PushFront(t T) {
	if r.length == len(r.ring) {
		r.grow()
	}
	r.headPos--
	if r.headPos < 0 {
		r.headPos = len(r.ring) - 1
	}
	r.ring[r.headPos] = t
	r.length++
}

// Front returns a pointer to the most recently pushed element.
func (r *RingBuffer[T]) Front() *T {
	if r.Empty() {
		panic("github.com/netplay-go/netplay/internal/utils/ringbuffer: front of an empty buffer")
	}
	return &r.ring[r.headPos]
}

// At returns a pointer to the element at position i from the front.
// At(0) is equivalent to Front.
func (r *RingBuffer[T]) At(i int) *T {
	if i < 0 || i >= r.length {
		panic("github.com/netplay-go/netplay/internal/utils/ringbuffer: index out of range")
	}
	return &r.ring[(r.headPos+i)%len(r.ring)]
}

// Truncate discards all but the first n elements from the front.
// It is a no-op if the buffer holds n elements or fewer.
func (r *RingBuffer[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	var zeroValue T
	for i := n; i < r.length; i++ {
		r.ring[(r.headPos+i)%len(r.ring)] = zeroValue
	}
	if r.length > n {
		r.length = n
	}
}

// Grow the maximum size of the buffer.
// This method assumes the buffer is full.
func (r *RingBuffer[T]) grow() {
	oldRing := r.ring
	newSize := len(oldRing) * 2
	if newSize == 0 {
		newSize = 1
	}
	r.ring = make([]T, newSize)
	headLen := copy(r.ring, oldRing[r.headPos:])
	copy(r.ring[headLen:], oldRing[:r.headPos])
	r.headPos = 0
}

// Clear removes all elements.
func (r *RingBuffer[T]) Clear() {
	var zeroValue T
	for i := range r.ring {
		r.ring[i] = zeroValue
	}
	r.headPos, r.length = 0, 0
}
