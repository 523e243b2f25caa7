package array

import (
	"iter"

	"github.com/arloliu/colmem/bitmap"
)

// Viewable is implemented by every array a Window can alias.
type Viewable[V, A any] interface {
	Len() int
	Get(i int) (V, bool)
	NullMask() *bitmap.Bitmap
	SliceClone(off, n int) A
}

// Window is a non-owning (array, offset, length) view over elements
// [Offset, Offset+Len) of an array. It never copies; Materialize does.
// A window stays valid as long as the array is not mutated.
type Window[V any, A Viewable[V, A]] struct {
	array A
	off   int
	n     int
}

// NewWindow returns a view of n elements of a starting at off. It panics if
// the window is out of range.
func NewWindow[V any, A Viewable[V, A]](a A, off, n int) Window[V, A] {
	checkWindow(off, n, a.Len())
	return Window[V, A]{array: a, off: off, n: n}
}

// Array returns the aliased array.
func (w Window[V, A]) Array() A {
	return w.array
}

// Offset returns the index of the first element of the window in the array.
func (w Window[V, A]) Offset() int {
	return w.off
}

// Len returns the number of elements in the window.
func (w Window[V, A]) Len() int {
	return w.n
}

// Get returns element i of the window and whether it is present.
func (w Window[V, A]) Get(i int) (V, bool) {
	if i < 0 || i >= w.n {
		var zero V
		return zero, false
	}

	return w.array.Get(w.off + i)
}

// NullCount returns the number of nulls inside the window.
func (w Window[V, A]) NullCount() int {
	mask := w.array.NullMask()
	if mask == nil {
		return 0
	}

	return mask.View(w.off, w.n).CountZeros()
}

// Sub returns a window of n elements starting at off relative to w.
func (w Window[V, A]) Sub(off, n int) Window[V, A] {
	checkWindow(off, n, w.n)
	return Window[V, A]{array: w.array, off: w.off + off, n: n}
}

// Materialize copies the window into a new array.
func (w Window[V, A]) Materialize() A {
	return w.array.SliceClone(w.off, w.n)
}

// All yields the valid window elements with their window-relative index.
// Nulls are skipped.
func (w Window[V, A]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i := range w.n {
			v, ok := w.array.Get(w.off + i)
			if !ok {
				continue
			}
			if !yield(i, v) {
				return
			}
		}
	}
}
