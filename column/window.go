package column

import "fmt"

// Window is a non-owning (array, offset, length) view into an Array. It does
// not hold a counted reference; the Array must outlive it.
type Window struct {
	array Array
	off   int
	n     int
}

// Array returns the aliased array.
func (w Window) Array() Array {
	return w.array
}

// Offset returns the index of the first element of the window.
func (w Window) Offset() int {
	return w.off
}

// Len returns the number of elements in the window.
func (w Window) Len() int {
	return w.n
}

// Kind returns the kind of the aliased array.
func (w Window) Kind() Kind {
	return w.array.kind
}

// IsNull reports whether window element i is null. It panics if i is out of
// range.
func (w Window) IsNull(i int) bool {
	if i < 0 || i >= w.n {
		panic(fmt.Sprintf("column: window index %d out of range with length %d", i, w.n))
	}

	return w.array.IsNull(w.off + i)
}

// NullCount returns the number of nulls inside the window.
func (w Window) NullCount() int {
	mask := w.array.NullMask()
	if mask == nil {
		return 0
	}

	return mask.View(w.off, w.n).CountZeros()
}

// Sub returns a window of n elements starting at off relative to w.
func (w Window) Sub(off, n int) Window {
	if off < 0 || n < 0 || off+n > w.n {
		panic(fmt.Sprintf("column: window [%d, %d) out of range with length %d", off, off+n, w.n))
	}

	return Window{array: w.array, off: w.off + off, n: n}
}

// Materialize copies the window into a new Array.
func (w Window) Materialize() Array {
	return w.array.SliceClone(w.off, w.n)
}
