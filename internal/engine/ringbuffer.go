package engine

// RingBuffer is a fixed-capacity FIFO. Pushing into a full buffer evicts the
// oldest item. It is not safe for concurrent use; owners guard it.
type RingBuffer[T any] struct {
	items []T
	start int
	count int
}

// NewRingBuffer creates a RingBuffer holding at most capacity items.
// A capacity below one is treated as one.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer[T]{items: make([]T, capacity)}
}

// Push appends item. If the buffer was full, the evicted item is returned
// with ok set to true.
func (r *RingBuffer[T]) Push(item T) (evicted T, ok bool) {
	size := len(r.items)
	if r.count < size {
		r.items[(r.start+r.count)%size] = item
		r.count++
		return evicted, false
	}
	evicted = r.items[r.start]
	r.items[r.start] = item
	r.start = (r.start + 1) % size
	return evicted, true
}

// Len returns the number of stored items.
func (r *RingBuffer[T]) Len() int {
	return r.count
}

// Cap returns the maximum number of items.
func (r *RingBuffer[T]) Cap() int {
	return len(r.items)
}

// Items returns a copy of the stored items, oldest first.
func (r *RingBuffer[T]) Items() []T {
	out := make([]T, r.count)
	for i := range out {
		out[i] = r.items[(r.start+i)%len(r.items)]
	}
	return out
}

// Newest returns the most recently pushed item.
func (r *RingBuffer[T]) Newest() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	return r.items[(r.start+r.count-1)%len(r.items)], true
}
