package waitq

import "fmt"

// Ring is a fixed-capacity circular FIFO store. Memory is allocated
// once at construction; pushing and popping never allocate.
//
// Pushing to a full ring overwrites the oldest unread element. That is
// the intended contract for this store, not an error: the oldest data
// is dropped and the surviving elements keep their relative order.
type Ring[T any] struct {
	buf   []T
	head  int
	count int
}

// NewRingStore returns a Ring holding at most capacity elements.
// It panics if capacity is not positive.
func NewRingStore[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("waitq: ring capacity must be positive, got %d", capacity))
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// PushBack appends v, overwriting the oldest element if the ring is
// full.
func (r *Ring[T]) PushBack(v T) {
	tail := (r.head + r.count) % len(r.buf)
	r.buf[tail] = v
	if r.count == len(r.buf) {
		// full: the slot just written was the oldest element
		r.head = (r.head + 1) % len(r.buf)
		return
	}
	r.count++
}

// PopFront removes and returns the oldest element, or false if empty.
func (r *Ring[T]) PopFront() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	v := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = (r.head + 1) % len(r.buf)
	r.count--
	return v, true
}

// Len returns the number of stored elements, never more than Cap.
func (r *Ring[T]) Len() int {
	return r.count
}

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// Do calls f once per element in FIFO order.
func (r *Ring[T]) Do(f func(T)) {
	for i := 0; i < r.count; i++ {
		f(r.buf[(r.head+i)%len(r.buf)])
	}
}
