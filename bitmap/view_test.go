package bitmap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	bools := randomBools(r, 150)
	b := FromBools(bools)

	for _, w := range []struct{ off, n int }{{0, 150}, {3, 20}, {8, 64}, {13, 0}, {149, 1}} {
		v := b.View(w.off, w.n)
		require.Equal(t, w.n, v.Len())
		require.Equal(t, w.off, v.Offset())
		require.Same(t, b, v.Bitmap())

		ones := 0
		for i := range w.n {
			require.Equal(t, bools[w.off+i], v.Get(i))
			if bools[w.off+i] {
				ones++
			}
		}
		require.Equal(t, ones, v.CountOnes())
		require.Equal(t, w.n-ones, v.CountZeros())
		require.True(t, v.ToBitmap().Equal(b.SliceClone(w.off, w.n)))
	}

	v := b.View(10, 5)
	require.Panics(t, func() { v.Get(5) })
	require.Panics(t, func() { b.View(140, 11) })
}
