package marshall

import "fmt"

// Buffer is the contract for byte storage targeted by the marshalling
// functions: resizable contiguous bytes. Any type satisfying it can
// serve as a marshalling target; DynamicBuffer, FixedBuffer and
// MutableSharedBuffer are provided.
type Buffer interface {
	// Size returns the current number of bytes.
	Size() int

	// Resize sets the size to n. Growing zero-fills the new region.
	// Fixed-capacity implementations panic if n exceeds capacity.
	Resize(n int)

	// Data returns the current contents as a mutable slice. The slice
	// is invalidated by any subsequent Resize or Clear.
	Data() []byte

	// Clear resets the size to zero, keeping capacity where possible.
	Clear()
}

// DynamicBuffer is a growable heap-backed Buffer. The zero value is an
// empty buffer ready to use.
type DynamicBuffer struct {
	buf []byte
}

// NewDynamicBuffer returns an empty DynamicBuffer.
func NewDynamicBuffer() *DynamicBuffer {
	return new(DynamicBuffer)
}

// Size returns the current number of bytes.
func (b *DynamicBuffer) Size() int { return len(b.buf) }

// Resize sets the size to n, growing the backing storage as needed.
// New bytes are zero.
func (b *DynamicBuffer) Resize(n int) {
	if n <= cap(b.buf) {
		old := len(b.buf)
		b.buf = b.buf[:n]
		if n > old {
			clear(b.buf[old:])
		}
		return
	}
	nb := make([]byte, n, 2*cap(b.buf)+n)
	copy(nb, b.buf)
	b.buf = nb
}

// Data returns the current contents.
func (b *DynamicBuffer) Data() []byte { return b.buf }

// Clear resets the buffer to empty, keeping capacity.
func (b *DynamicBuffer) Clear() { b.buf = b.buf[:0] }

// FixedBuffer is a Buffer with capacity fixed at construction. It never
// allocates after construction; resizing past the capacity is a
// contract violation and panics. Callers must size it correctly up
// front.
type FixedBuffer struct {
	buf []byte
	n   int
}

// NewFixedBuffer returns an empty FixedBuffer with the given capacity.
func NewFixedBuffer(capacity int) *FixedBuffer {
	return &FixedBuffer{buf: make([]byte, capacity)}
}

// Size returns the current number of bytes.
func (b *FixedBuffer) Size() int { return b.n }

// Capacity returns the fixed capacity.
func (b *FixedBuffer) Capacity() int { return len(b.buf) }

// Resize sets the size to n, zero-filling any newly exposed bytes.
// It panics if n exceeds the fixed capacity.
func (b *FixedBuffer) Resize(n int) {
	if n > len(b.buf) {
		panic(fmt.Sprintf("marshall: fixed buffer resize to %d exceeds capacity %d", n, len(b.buf)))
	}
	if n > b.n {
		clear(b.buf[b.n:n])
	}
	b.n = n
}

// Data returns the current contents.
func (b *FixedBuffer) Data() []byte { return b.buf[:b.n] }

// Clear resets the buffer to empty.
func (b *FixedBuffer) Clear() { b.n = 0 }
