package marshall_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/connectivecpp/utility-rack/marshall"
)

func TestDynamicBuffer(t *testing.T) {
	b := marshall.NewDynamicBuffer()
	require.Equal(t, 0, b.Size())

	b.Resize(4)
	require.Equal(t, 4, b.Size())
	require.Equal(t, []byte{0, 0, 0, 0}, b.Data())

	copy(b.Data(), []byte{1, 2, 3, 4})
	b.Resize(2)
	b.Resize(4)
	// bytes exposed by regrowth are zero again
	require.Equal(t, []byte{1, 2, 0, 0}, b.Data())

	b.Clear()
	require.Equal(t, 0, b.Size())
}

func TestDynamicBufferGrowth(t *testing.T) {
	b := marshall.NewDynamicBuffer()
	b.Resize(3)
	copy(b.Data(), []byte{7, 8, 9})

	// growth past capacity must preserve existing contents
	b.Resize(4096)
	require.Equal(t, 4096, b.Size())
	require.Equal(t, []byte{7, 8, 9, 0}, b.Data()[:4])
}

func TestFixedBuffer(t *testing.T) {
	b := marshall.NewFixedBuffer(8)
	require.Equal(t, 0, b.Size())
	require.Equal(t, 8, b.Capacity())

	b.Resize(8)
	require.Equal(t, 8, b.Size())

	b.Clear()
	require.Equal(t, 0, b.Size())
	require.Equal(t, 8, b.Capacity())
}

func TestFixedBufferOvergrowPanics(t *testing.T) {
	b := marshall.NewFixedBuffer(4)
	require.Panics(t, func() { b.Resize(5) })
}
