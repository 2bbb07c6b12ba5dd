package marshall

import "golang.org/x/exp/constraints"

// Marshaller is implemented by user-defined aggregate types so they can
// be embedded in optionals and sequences without duplicating codec
// calls. Implementations append their fields with the Marshall family
// and return the buffer for chaining:
//
//	func (h Hike) MarshallTo(b marshall.Buffer) marshall.Buffer {
//	    b = marshall.Marshall[uint16](b, h.Distance)
//	    b = marshall.MarshallBool[uint8](b, h.Shelter)
//	    return marshall.MarshallString[uint16](b, h.Name)
//	}
type Marshaller interface {
	MarshallTo(Buffer) Buffer
}

// grow extends b by n bytes and returns the slice covering the new
// region.
func grow(b Buffer, n int) []byte {
	old := b.Size()
	b.Resize(old + n)
	return b.Data()[old:]
}

// Marshall appends val to b in wire width W, big-endian. The wire width
// is always named explicitly at the call site; the value is converted
// to W before encoding, so encoding a wide native value into a narrower
// wire type is a visible decision, never an accident.
//
//	marshall.Marshall[uint32](buf, distance)
func Marshall[W constraints.Integer, T constraints.Integer](b Buffer, val T) Buffer {
	AppendVal(grow(b, widthOf[W]()), W(val))
	return b
}

// MarshallBool appends v to b as a 1 or 0 in wire width W.
func MarshallBool[W constraints.Integer](b Buffer, v bool) Buffer {
	var w W
	if v {
		w = 1
	}
	return Marshall[W](b, w)
}

// MarshallVarInt appends val to b in variable-length format (see
// AppendVarInt).
func MarshallVarInt[T constraints.Unsigned](b Buffer, val T) Buffer {
	AppendVarInt(grow(b, VarIntLen(val)), val)
	return b
}

// MarshallOptional appends a presence flag in width PW followed, only
// if present is true, by val in width W.
func MarshallOptional[PW, W constraints.Integer, T constraints.Integer](b Buffer, present bool, val T) Buffer {
	b = MarshallBool[PW](b, present)
	if present {
		b = Marshall[W](b, val)
	}
	return b
}

// MarshallOptionalValue appends a presence flag in width PW followed,
// only if present is true, by the user-defined value.
func MarshallOptionalValue[PW constraints.Integer](b Buffer, present bool, val Marshaller) Buffer {
	b = MarshallBool[PW](b, present)
	if present {
		b = val.MarshallTo(b)
	}
	return b
}

// MarshallSequence appends the element count in width CW followed by
// each element in width EW.
func MarshallSequence[CW, EW constraints.Integer, T constraints.Integer](b Buffer, vals []T) Buffer {
	b = Marshall[CW](b, len(vals))
	for _, v := range vals {
		b = Marshall[EW](b, v)
	}
	return b
}

// MarshallSequenceOf appends the element count in width CW followed by
// each user-defined element.
func MarshallSequenceOf[CW constraints.Integer, T Marshaller](b Buffer, vals []T) Buffer {
	b = Marshall[CW](b, len(vals))
	for _, v := range vals {
		b = v.MarshallTo(b)
	}
	return b
}

// MarshallString appends the byte length of s in width CW followed by
// its raw bytes, unconverted.
func MarshallString[CW constraints.Integer](b Buffer, s string) Buffer {
	b = Marshall[CW](b, len(s))
	copy(grow(b, len(s)), s)
	return b
}

// MarshallBytes appends the length of bs in width CW followed by its
// raw bytes.
func MarshallBytes[CW constraints.Integer](b Buffer, bs []byte) Buffer {
	b = Marshall[CW](b, len(bs))
	copy(grow(b, len(bs)), bs)
	return b
}
