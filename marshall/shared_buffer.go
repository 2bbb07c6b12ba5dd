package marshall

import "bytes"

// MutableSharedBuffer is a modifiable byte buffer with shared
// ownership: copies of a MutableSharedBuffer refer to the same
// underlying storage, so bytes written through one handle are visible
// through every other. It satisfies Buffer and so can be used directly
// as a marshalling target.
//
// A buffer is typically built up by one writer and then converted, by
// ownership transfer, into a ConstSharedBuffer for read-only
// distribution without copying (for example as the element type of a
// waitq.Queue feeding multiple consumers).
type MutableSharedBuffer struct {
	data *[]byte
}

// NewMutableSharedBuffer returns an empty MutableSharedBuffer.
func NewMutableSharedBuffer() MutableSharedBuffer {
	return MutableSharedBuffer{data: new([]byte)}
}

// NewMutableSharedBufferSize returns a MutableSharedBuffer of n zero
// bytes.
func NewMutableSharedBufferSize(n int) MutableSharedBuffer {
	d := make([]byte, n)
	return MutableSharedBuffer{data: &d}
}

// MutableSharedBufferOf returns a MutableSharedBuffer holding a copy of
// bs.
func MutableSharedBufferOf(bs []byte) MutableSharedBuffer {
	d := append([]byte(nil), bs...)
	return MutableSharedBuffer{data: &d}
}

// Size returns the current number of bytes.
func (m MutableSharedBuffer) Size() int { return len(*m.data) }

// Empty reports whether the buffer holds no bytes.
func (m MutableSharedBuffer) Empty() bool { return len(*m.data) == 0 }

// Resize sets the size to n, zero-filling any new region.
func (m MutableSharedBuffer) Resize(n int) {
	d := *m.data
	if n <= cap(d) {
		old := len(d)
		d = d[:n]
		if n > old {
			clear(d[old:])
		}
		*m.data = d
		return
	}
	nd := make([]byte, n, 2*cap(d)+n)
	copy(nd, d)
	*m.data = nd
}

// Data returns the current contents as a mutable slice. The slice is
// invalidated by any call that changes the size.
func (m MutableSharedBuffer) Data() []byte { return *m.data }

// Clear resets the buffer to empty, keeping capacity.
func (m MutableSharedBuffer) Clear() { *m.data = (*m.data)[:0] }

// Append appends a copy of bs and returns the buffer for chaining.
func (m MutableSharedBuffer) Append(bs []byte) MutableSharedBuffer {
	*m.data = append(*m.data, bs...)
	return m
}

// AppendByte appends a single byte and returns the buffer for chaining.
func (m MutableSharedBuffer) AppendByte(b byte) MutableSharedBuffer {
	*m.data = append(*m.data, b)
	return m
}

// AppendString appends the raw bytes of s and returns the buffer for
// chaining.
func (m MutableSharedBuffer) AppendString(s string) MutableSharedBuffer {
	*m.data = append(*m.data, s...)
	return m
}

// Equal reports whether two buffers hold the same bytes.
func (m MutableSharedBuffer) Equal(o MutableSharedBuffer) bool {
	return bytes.Equal(*m.data, *o.data)
}

// IntoConst transfers ownership of the contents into a
// ConstSharedBuffer without copying. The mutable buffer, and every
// handle sharing its storage, is left empty.
func (m MutableSharedBuffer) IntoConst() ConstSharedBuffer {
	d := *m.data
	*m.data = nil
	return ConstSharedBuffer{data: d}
}

// ConstSharedBuffer is an immutable byte buffer with shared ownership,
// safe to hand to any number of concurrent readers. Copies share the
// same underlying bytes; none of them may be modified.
type ConstSharedBuffer struct {
	data []byte
}

// ConstSharedBufferOf returns a ConstSharedBuffer holding a copy of bs.
func ConstSharedBufferOf(bs []byte) ConstSharedBuffer {
	return ConstSharedBuffer{data: append([]byte(nil), bs...)}
}

// Size returns the number of bytes.
func (c ConstSharedBuffer) Size() int { return len(c.data) }

// Empty reports whether the buffer holds no bytes.
func (c ConstSharedBuffer) Empty() bool { return len(c.data) == 0 }

// Data returns the contents. Callers must treat the slice as read-only.
func (c ConstSharedBuffer) Data() []byte { return c.data }

// Equal reports whether two buffers hold the same bytes.
func (c ConstSharedBuffer) Equal(o ConstSharedBuffer) bool {
	return bytes.Equal(c.data, o.data)
}
