package array

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	a := NewIntegerArray([]int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, nil)
	a.SetNull(3)

	w := NewWindow[int32](a, 2, 5)
	require.Equal(t, 5, w.Len())
	require.Equal(t, 2, w.Offset())
	require.Same(t, a, w.Array())
	require.Equal(t, 1, w.NullCount())

	v, ok := w.Get(0)
	require.True(t, ok)
	require.Equal(t, int32(2), v)
	_, ok = w.Get(1)
	require.False(t, ok)
	_, ok = w.Get(5)
	require.False(t, ok)

	sub := w.Sub(2, 2)
	require.Equal(t, 4, sub.Offset())
	v, _ = sub.Get(1)
	require.Equal(t, int32(5), v)

	m := w.Materialize()
	require.Equal(t, []int32{2, 0, 4, 5, 6}, m.Values())
	require.Equal(t, 1, m.NullCount())

	var idx []int
	for i, v := range w.All() {
		idx = append(idx, i)
		require.Equal(t, int32(i+2), v)
	}
	require.Equal(t, []int{0, 2, 3, 4}, idx)

	require.Panics(t, func() { NewWindow[int32](a, 8, 3) })
	require.Panics(t, func() { w.Sub(4, 2) })
}

func TestWindowStrings(t *testing.T) {
	s := NewStringArray[uint32]([]string{"a", "b", "c"}, nil)
	w := NewWindow[string](s, 1, 2)
	require.Equal(t, 0, w.NullCount())
	require.Equal(t, []string{"b", "c"}, w.Materialize().Strings())

	// a window reflects later in-place writes to the array
	s.SetString(1, "B")
	v, _ := w.Get(0)
	require.Equal(t, "B", v)
}
