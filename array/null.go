package array

import "github.com/arloliu/colmem/bitmap"

// NullArray is an array whose every element is null. It stores only its
// length.
type NullArray struct {
	n int
}

// NewNullArray returns an all-null array of n elements.
func NewNullArray(n int) *NullArray {
	if n < 0 {
		panic(indexOutOfRange(n, 0))
	}

	return &NullArray{n: n}
}

// Len returns the number of elements.
func (a *NullArray) Len() int {
	return a.n
}

// IsEmpty reports whether the array has no elements.
func (a *NullArray) IsEmpty() bool {
	return a.n == 0
}

// Get always reports an absent element.
func (a *NullArray) Get(int) (struct{}, bool) {
	return struct{}{}, false
}

// IsNull reports true for every index in range. It panics otherwise.
func (a *NullArray) IsNull(i int) bool {
	checkIndex(i, a.n)
	return true
}

// PushNull appends one element.
func (a *NullArray) PushNull() {
	a.n++
}

// PushNulls appends n elements.
func (a *NullArray) PushNulls(n int) {
	a.n += n
}

// NullMask returns a cleared bitmap of Len bits.
func (a *NullArray) NullMask() *bitmap.Bitmap {
	return bitmap.New(a.n)
}

// NullCount returns Len.
func (a *NullArray) NullCount() int {
	return a.n
}

// SliceClone returns a null array of n elements. It panics if the window is
// out of range.
func (a *NullArray) SliceClone(off, n int) *NullArray {
	checkWindow(off, n, a.n)
	return &NullArray{n: n}
}

// Append adds the length of other.
func (a *NullArray) Append(other *NullArray) {
	a.n += other.n
}

// Clone returns a copy.
func (a *NullArray) Clone() *NullArray {
	return &NullArray{n: a.n}
}
