package waitq

// Deque is an unbounded slice-backed FIFO store. The zero value is
// ready to use.
//
// Popped slots are released eagerly so element values do not outlive
// their time in the queue, and the backing slice slides down once the
// dead prefix grows large enough, amortising memory reuse.
type Deque[T any] struct {
	elems []T
	off   int
}

// slideAt is the dead-prefix length at which PushBack compacts the
// backing slice instead of letting it keep growing.
const slideAt = 32

// PushBack appends v.
func (d *Deque[T]) PushBack(v T) {
	if d.off >= slideAt && d.off >= len(d.elems)/2 {
		n := copy(d.elems, d.elems[d.off:])
		clear(d.elems[n:])
		d.elems = d.elems[:n]
		d.off = 0
	}
	d.elems = append(d.elems, v)
}

// PopFront removes and returns the oldest element, or false if empty.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.off >= len(d.elems) {
		return zero, false
	}
	v := d.elems[d.off]
	d.elems[d.off] = zero
	d.off++
	if d.off == len(d.elems) {
		d.elems = d.elems[:0]
		d.off = 0
	}
	return v, true
}

// Len returns the number of stored elements.
func (d *Deque[T]) Len() int {
	return len(d.elems) - d.off
}

// Do calls f once per element in FIFO order.
func (d *Deque[T]) Do(f func(T)) {
	for _, v := range d.elems[d.off:] {
		f(v)
	}
}
