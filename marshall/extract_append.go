// Package marshall transforms native values into a byte stream in
// network (big endian) order and the converse.
//
// The low layer is AppendVal / ExtractVal, converting fixed-width
// integers to and from big-endian bytes, and AppendVarInt /
// ExtractVarInt for variable-length unsigned integers. The upper layer
// is the Marshall / Unmarshall family, which appends values to a
// growable Buffer (or reads them through a Cursor) with the wire width
// named explicitly at every call site, plus composition rules for
// booleans, optional values, counted sequences, strings and
// user-defined aggregate types.
//
// Only integral types are supported. Floating point values are not:
// byte-swapping a float can produce NaN bit patterns, so floats must be
// converted to a string or scaled integer representation first.
package marshall

import (
	"fmt"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// HostBigEndian reports whether the host stores multi-byte integers in
// big-endian order. It is detected once at startup by inspecting the
// in-memory bytes of a known 32-bit pattern and never changes.
//
// The codec below builds wire bytes with explicit shifts, which yields
// big-endian output on any host, so no call path branches on this flag;
// it is exported for diagnostics and tests.
var HostBigEndian = detectBigEndian()

func detectBigEndian() bool {
	pattern := uint32(0xDDCCBBAA)
	return *(*byte)(unsafe.Pointer(&pattern)) == 0xDD
}

// AppendVal writes val to the front of buf in big-endian byte order,
// regardless of host endianness, and returns the number of bytes
// written (always the byte width of T). One-byte values are written as
// is; there is nothing to swap.
//
// The buffer must already have room for the value's full width.
func AppendVal[T constraints.Integer](buf []byte, val T) int {
	switch unsafe.Sizeof(val) {
	case 1:
		buf[0] = byte(val)
		return 1
	case 2:
		v := uint16(val)
		buf[0] = byte(v >> 8)
		buf[1] = byte(v)
		return 2
	case 4:
		v := uint32(val)
		buf[0] = byte(v >> 24)
		buf[1] = byte(v >> 16)
		buf[2] = byte(v >> 8)
		buf[3] = byte(v)
		return 4
	case 8:
		v := uint64(val)
		buf[0] = byte(v >> 56)
		buf[1] = byte(v >> 48)
		buf[2] = byte(v >> 40)
		buf[3] = byte(v >> 32)
		buf[4] = byte(v >> 24)
		buf[5] = byte(v >> 16)
		buf[6] = byte(v >> 8)
		buf[7] = byte(v)
		return 8
	default:
		panic(fmt.Sprintf("marshall: unsupported integer width %d", unsafe.Sizeof(val)))
	}
}

// ExtractVal reads the byte width of T from the front of buf, assumed
// big-endian, and returns the value in native form. Signed types are
// reconstructed as two's complement.
//
// The buffer must hold at least the value's full width.
func ExtractVal[T constraints.Integer](buf []byte) T {
	var val T
	switch unsafe.Sizeof(val) {
	case 1:
		return T(buf[0])
	case 2:
		v := uint16(buf[0])<<8 | uint16(buf[1])
		return T(v)
	case 4:
		v := uint32(buf[0])<<24 | uint32(buf[1])<<16 |
			uint32(buf[2])<<8 | uint32(buf[3])
		return T(v)
	case 8:
		v := uint64(buf[0])<<56 | uint64(buf[1])<<48 |
			uint64(buf[2])<<40 | uint64(buf[3])<<32 |
			uint64(buf[4])<<24 | uint64(buf[5])<<16 |
			uint64(buf[6])<<8 | uint64(buf[7])
		return T(v)
	default:
		panic(fmt.Sprintf("marshall: unsupported integer width %d", unsafe.Sizeof(val)))
	}
}

// widthOf returns the wire width of the integer type T in bytes.
func widthOf[T constraints.Integer]() int {
	var v T
	return int(unsafe.Sizeof(v))
}
