package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferAlignment(t *testing.T) {
	t.Run("new", func(t *testing.T) {
		for _, n := range []int{1, 3, 17, 1000} {
			require.True(t, New[int64](n).IsAligned())
			require.True(t, New[uint8](n).IsAligned())
		}
	})

	t.Run("after growth", func(t *testing.T) {
		var b Buffer[int32]
		for i := range 10_000 {
			b.Push(int32(i))
			require.True(t, b.IsAligned())
		}
		require.Equal(t, 10_000, b.Len())
		require.Equal(t, int32(9_999), b.At(9_999))
	})

	t.Run("capacity padded to alignment", func(t *testing.T) {
		b := WithCapacity[uint16](3)
		require.Equal(t, 0, b.Len())
		require.Equal(t, 0, (b.Cap()*2)%Alignment)
	})

	t.Run("empty", func(t *testing.T) {
		var b Buffer[float64]
		require.True(t, b.IsAligned())
		require.Empty(t, b.Bytes())
	})
}

func TestBufferReserveGrowth(t *testing.T) {
	b := WithCapacity[byte](64)
	b.Resize(64, 0)
	b.Reserve(1)
	require.Equal(t, 128, b.Cap())

	big := WithCapacity[byte](1024 * 128)
	big.Resize(big.Cap(), 1)
	before := big.Cap()
	big.Reserve(1)
	require.Equal(t, before+before/4, big.Cap())
	require.Equal(t, byte(1), big.At(before-1))
}

func TestBufferResize(t *testing.T) {
	b := FromSlice([]int16{1, 2, 3})
	b.Resize(5, 7)
	require.Equal(t, []int16{1, 2, 3, 7, 7}, b.Values())

	b.Resize(2, 0)
	require.Equal(t, []int16{1, 2}, b.Values())

	b.Resize(4, 0)
	require.Equal(t, []int16{1, 2, 0, 0}, b.Values())

	require.Panics(t, func() { b.Resize(-1, 0) })
}

func TestBufferSplice(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		repl       []byte
		want       string
	}{
		{"same length", 2, 4, []byte("XY"), "abXYef"},
		{"grow", 2, 3, []byte("XYZ"), "abXYZdef"},
		{"shrink", 1, 5, []byte("Q"), "aQf"},
		{"insert", 3, 3, []byte("--"), "abc--def"},
		{"delete", 0, 2, nil, "cdef"},
		{"append at end", 6, 6, []byte("!"), "abcdef!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromSlice([]byte("abcdef"))
			b.Splice(tt.start, tt.end, tt.repl)
			require.Equal(t, tt.want, string(b.Values()))
		})
	}

	require.Panics(t, func() { FromSlice([]byte("ab")).Splice(1, 3, nil) })
}

func TestBufferBytes(t *testing.T) {
	b := FromSlice([]uint32{1, 2})
	require.Len(t, b.Bytes(), 8)

	b.Bytes()[0] = 9
	require.NotEqual(t, uint32(1), b.At(0))
	require.Equal(t, uint32(2), b.At(1))
}

func TestBufferSliceAndClone(t *testing.T) {
	b := FromSlice([]float32{1, 2, 3, 4})

	s := b.Slice(1, 2)
	require.Equal(t, []float32{2, 3}, s.Values())
	require.True(t, s.IsAligned())

	s.SetAt(0, 10)
	require.Equal(t, float32(2), b.At(1))

	c := b.Clone()
	require.True(t, c.Equal(b))
	c.Push(5)
	require.False(t, c.Equal(b))

	require.Panics(t, func() { b.Slice(3, 2) })
}

func TestBufferTruncateReset(t *testing.T) {
	b := FromSlice([]uint64{1, 2, 3})
	b.Truncate(5)
	require.Equal(t, 3, b.Len())
	b.Truncate(1)
	require.Equal(t, []uint64{1}, b.Values())
	b.Reset()
	require.Equal(t, 0, b.Len())
	require.Positive(t, b.Cap())
}
