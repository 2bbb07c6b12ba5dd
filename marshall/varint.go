package marshall

import "golang.org/x/exp/constraints"

// MaxVarIntLen is the largest number of bytes AppendVarInt emits:
// a 64-bit value at 7 payload bits per byte.
const MaxVarIntLen = 10

// VarIntLen returns the number of bytes AppendVarInt will emit for val:
// 1 for values up to 127, growing by one byte per additional 7 bits.
func VarIntLen[T constraints.Unsigned](val T) int {
	n := 1
	for v := uint64(val) >> 7; v > 0; v >>= 7 {
		n++
	}
	return n
}

// AppendVarInt writes val to the front of buf in variable-length
// format and returns the number of bytes written. Each byte carries the
// next 7 bits of the value, least-significant group first, with the
// high bit set on every byte except the last.
//
// The buffer must have room for VarIntLen(val) bytes.
func AppendVarInt[T constraints.Unsigned](buf []byte, val T) int {
	v := uint64(val)
	n := 0
	for v >= 0x80 {
		buf[n] = byte(v) | 0x80
		v >>= 7
		n++
	}
	buf[n] = byte(v)
	return n + 1
}

// ExtractVarInt reads up to n bytes of variable-length format from the
// front of buf, stopping early at the first byte with the high bit
// clear, and returns the decoded value.
func ExtractVarInt[T constraints.Unsigned](buf []byte, n int) T {
	var v uint64
	for i := 0; i < n; i++ {
		b := buf[i]
		v |= uint64(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			break
		}
	}
	return T(v)
}
