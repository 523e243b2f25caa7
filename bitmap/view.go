package bitmap

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/bitutil"
)

// View is a read-only window of n bits starting at an offset into a Bitmap.
// It does not copy; the window stays valid while the bitmap is not mutated.
type View struct {
	bm  *Bitmap
	off int
	n   int
}

// View returns a zero-copy window over bits [off, off+n). It panics if the
// window is out of range.
func (b *Bitmap) View(off, n int) View {
	b.checkWindow(off, n)
	return View{bm: b, off: off, n: n}
}

// Len returns the number of bits in the window.
func (v View) Len() int {
	return v.n
}

// Offset returns the position of the window's first bit in the bitmap.
func (v View) Offset() int {
	return v.off
}

// Bitmap returns the bitmap the window points into.
func (v View) Bitmap() *Bitmap {
	return v.bm
}

// Get returns bit i of the window. It panics if i is out of range.
func (v View) Get(i int) bool {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("bitmap: view index %d out of range with length %d", i, v.n))
	}

	return v.bm.GetUnchecked(v.off + i)
}

// CountOnes returns the number of set bits in the window.
func (v View) CountOnes() int {
	return bitutil.CountSetBits(v.bm.bits.Values(), v.off, v.n)
}

// CountZeros returns the number of cleared bits in the window.
func (v View) CountZeros() int {
	return v.n - v.CountOnes()
}

// ToBitmap copies the window into a new bitmap.
func (v View) ToBitmap() *Bitmap {
	return v.bm.SliceClone(v.off, v.n)
}
