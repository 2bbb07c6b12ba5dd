// Package waitq provides a thread-safe FIFO queue for transferring data
// between goroutines, with blocking and non-blocking pops and an
// open/close lifecycle.
//
// Multiple producer and consumer goroutines can share one Queue. When a
// value is pushed, one waiting consumer is woken to take it. Calling
// Close wakes every goroutine blocked in WaitPop; each observes an empty
// result once remaining elements are drained, and subsequent Push calls
// return false until Open is called again.
//
// The queue is generic over its backing Store. The default store is an
// unbounded Deque; a fixed-capacity Ring store overwrites the oldest
// unread element when full rather than growing or blocking.
//
// Basic usage:
//
//	wq := waitq.New[int]()
//
//	// producer goroutine
//	wq.Push(42)
//	// ...
//	wq.Close()
//
//	// consumer goroutine
//	val, ok := wq.WaitPop()
//	if !ok {
//	    // queue closed and drained, time to shut down
//	}
package waitq

import "sync"

// Store is the backing container contract for a Queue. Implementations
// need not be safe for concurrent use; the Queue serializes all access.
type Store[T any] interface {
	// PushBack appends an element.
	PushBack(T)

	// PopFront removes and returns the oldest element.
	// It returns false if the store is empty.
	PopFront() (T, bool)

	// Len returns the number of stored elements.
	Len() int

	// Do calls f once per element in FIFO order without removing any.
	Do(f func(T))
}

// Queue is a multi-producer multi-consumer FIFO queue.
//
// All methods are safe for concurrent use. A Queue must not be copied
// after first use.
type Queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	closed bool
	store  Store[T]
}

// New returns an open Queue backed by an unbounded Deque.
func New[T any]() *Queue[T] {
	return NewWithStore[T](new(Deque[T]))
}

// NewRing returns an open Queue backed by a fixed-capacity ring store.
// Pushing to a full ring overwrites the oldest unread element.
// It panics if capacity is not positive.
func NewRing[T any](capacity int) *Queue[T] {
	return NewWithStore[T](NewRingStore[T](capacity))
}

// NewWithStore returns an open Queue backed by the given store. The
// store must not be used directly once handed to the Queue.
func NewWithStore[T any](s Store[T]) *Queue[T] {
	q := &Queue[T]{store: s}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push inserts val at the back of the queue, waking one waiting
// consumer if any. It returns false, without inserting, if the queue is
// closed.
func (q *Queue[T]) Push(val T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.store.PushBack(val)
	q.cond.Signal()
	return true
}

// PushFunc inserts the value built by construct, waking one waiting
// consumer if any. The construct function is only invoked if the queue
// is open, so no value is built just to be discarded; it runs under the
// queue's internal lock and must not call back into the queue.
// It returns false if the queue is closed.
func (q *Queue[T]) PushFunc(construct func() T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.store.PushBack(construct())
	q.cond.Signal()
	return true
}

// TryPop removes and returns the oldest element. It returns false
// immediately if the queue is empty, whether open or closed.
func (q *Queue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.store.PopFront()
}

// WaitPop removes and returns the oldest element, blocking until one is
// available. It returns false only when the queue is closed and empty;
// elements remaining after Close are still delivered. If the queue is
// already closed and empty, WaitPop returns false without blocking.
func (q *Queue[T]) WaitPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.store.Len() == 0 && !q.closed {
		q.cond.Wait()
	}
	return q.store.PopFront()
}

// Close marks the queue closed and wakes every goroutine blocked in
// WaitPop. Subsequent Push calls return false. Elements already in the
// queue remain poppable. Close is idempotent.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
}

// Open reopens a closed queue, permitting pushes again. Existing
// elements are unaffected. The initial state of a Queue is open.
func (q *Queue[T]) Open() {
	q.mu.Lock()
	q.closed = false
	q.mu.Unlock()
}

// IsClosed reports whether Close has been called without a subsequent
// Open.
func (q *Queue[T]) IsClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Empty reports whether the queue holds no elements. Under concurrent
// use the answer may be stale by the time it is observed.
func (q *Queue[T]) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.store.Len() == 0
}

// Len returns the number of queued elements. Under concurrent use the
// answer may be stale by the time it is observed.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.store.Len()
}

// Apply calls f once per queued element in FIFO order without removing
// any. The queue's lock is held for the duration, so f should be quick
// and must not call back into the queue.
func (q *Queue[T]) Apply(f func(T)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.store.Do(f)
}
