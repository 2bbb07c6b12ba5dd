package marshall_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/connectivecpp/utility-rack/marshall"
)

func TestMutableSharedBufferAppend(t *testing.T) {
	b := marshall.NewMutableSharedBuffer()
	require.True(t, b.Empty())

	b.Append([]byte{1, 2}).AppendByte(3).AppendString("hi")
	require.Equal(t, 5, b.Size())
	require.Equal(t, []byte{1, 2, 3, 'h', 'i'}, b.Data())
}

func TestMutableSharedBufferSharing(t *testing.T) {
	a := marshall.MutableSharedBufferOf([]byte{1, 2, 3})
	b := a // handles share storage

	b.Append([]byte{4})
	require.Equal(t, 4, a.Size())
	require.True(t, a.Equal(b))

	// sharing survives reallocation of the underlying storage
	b.Resize(4096)
	require.Equal(t, 4096, a.Size())
	require.Equal(t, byte(1), a.Data()[0])
}

func TestMutableSharedBufferOfCopies(t *testing.T) {
	src := []byte{9, 9, 9}
	b := marshall.MutableSharedBufferOf(src)
	src[0] = 0
	require.Equal(t, []byte{9, 9, 9}, b.Data())
}

func TestIntoConstTransfersOwnership(t *testing.T) {
	m := marshall.NewMutableSharedBuffer()
	m.Append([]byte{1, 2, 3})
	other := m // second handle on the same storage

	c := m.IntoConst()
	require.Equal(t, []byte{1, 2, 3}, c.Data())
	require.Equal(t, 3, c.Size())

	// the transfer empties the mutable buffer and every sharing handle
	require.True(t, m.Empty())
	require.True(t, other.Empty())
}

func TestConstSharedBufferEqual(t *testing.T) {
	a := marshall.ConstSharedBufferOf([]byte{1, 2})
	b := marshall.ConstSharedBufferOf([]byte{1, 2})
	c := marshall.ConstSharedBufferOf([]byte{1, 3})
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Empty())
}

func TestSharedBufferAsMarshallTarget(t *testing.T) {
	b := marshall.NewMutableSharedBuffer()
	marshall.Marshall[uint32](b, 0x04030201)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b.Data())
}
