package marshall

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Unmarshaller is the read-side counterpart of Marshaller: a
// user-defined aggregate type reads its fields back from a Cursor in
// the order and widths they were written.
type Unmarshaller interface {
	UnmarshallFrom(*Cursor)
}

// Cursor tracks a read position over a marshalled byte stream. Buffers
// do not self-track a read position; every Unmarshall call consumes
// bytes through a Cursor, advancing it by the number consumed.
//
// Reading past the end of the data is a contract violation between
// writer and reader and panics. When the input is untrusted, callers
// should bound-check with Remaining before extracting.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor returns a Cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the number of bytes consumed so far.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

// Skip advances the cursor by n bytes without decoding them.
func (c *Cursor) Skip(n int) {
	c.take(n)
}

// take consumes the next n bytes.
func (c *Cursor) take(n int) []byte {
	if c.pos+n > len(c.data) {
		panic(fmt.Sprintf("marshall: extract past end of buffer, need %d bytes with %d remaining", n, len(c.data)-c.pos))
	}
	s := c.data[c.pos : c.pos+n]
	c.pos += n
	return s
}

// Unmarshall extracts a value of wire width W from c, big-endian,
// advancing the cursor. As on the write side, the wire width is named
// explicitly at the call site; callers convert the result to the
// native type themselves.
//
//	distance := int(marshall.Unmarshall[uint32](cur))
func Unmarshall[W constraints.Integer](c *Cursor) W {
	return ExtractVal[W](c.take(widthOf[W]()))
}

// UnmarshallBool extracts a boolean encoded in wire width W. Any
// non-zero value reads as true.
func UnmarshallBool[W constraints.Integer](c *Cursor) bool {
	return Unmarshall[W](c) != 0
}

// UnmarshallVarInt extracts a variable-length unsigned integer,
// advancing the cursor past every byte consumed.
func UnmarshallVarInt[T constraints.Unsigned](c *Cursor) T {
	var v uint64
	for i := 0; ; i++ {
		b := c.take(1)[0]
		v |= uint64(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			break
		}
	}
	return T(v)
}

// UnmarshallOptional extracts a presence flag in width PW and, only if
// it is set, a payload in width W. An absent optional consumes exactly
// the presence flag.
func UnmarshallOptional[PW, W constraints.Integer](c *Cursor) (W, bool) {
	if !UnmarshallBool[PW](c) {
		var zero W
		return zero, false
	}
	return Unmarshall[W](c), true
}

// UnmarshallOptionalValue extracts a presence flag in width PW and,
// only if it is set, reads the payload into val. It reports whether the
// payload was present.
func UnmarshallOptionalValue[PW constraints.Integer](c *Cursor, val Unmarshaller) bool {
	if !UnmarshallBool[PW](c) {
		return false
	}
	val.UnmarshallFrom(c)
	return true
}

// UnmarshallSequence extracts a count in width CW followed by that many
// elements in width EW.
func UnmarshallSequence[CW, EW constraints.Integer](c *Cursor) []EW {
	n := int(Unmarshall[CW](c))
	vals := make([]EW, n)
	for i := range vals {
		vals[i] = Unmarshall[EW](c)
	}
	return vals
}

// UnmarshallSequenceFunc extracts a count in width CW and calls elem
// that many times, once per element in sequence order. It is the read
// path for sequences of user-defined types.
func UnmarshallSequenceFunc[CW constraints.Integer](c *Cursor, elem func(*Cursor)) {
	n := int(Unmarshall[CW](c))
	for i := 0; i < n; i++ {
		elem(c)
	}
}

// UnmarshallString extracts a byte length in width CW followed by that
// many raw bytes, returned as a string.
func UnmarshallString[CW constraints.Integer](c *Cursor) string {
	n := int(Unmarshall[CW](c))
	return string(c.take(n))
}

// UnmarshallBytes extracts a byte length in width CW followed by that
// many raw bytes. The returned slice is a copy.
func UnmarshallBytes[CW constraints.Integer](c *Cursor) []byte {
	n := int(Unmarshall[CW](c))
	return append([]byte(nil), c.take(n)...)
}
