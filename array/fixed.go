package array

import (
	"github.com/arloliu/colmem/bitmap"
	"github.com/arloliu/colmem/buffer"
)

// fixed is the storage shared by the fixed-width arrays: one aligned value
// buffer plus the optional validity mask. Null slots hold the zero value.
type fixed[T buffer.Elem] struct {
	data buffer.Buffer[T]
	validity
}

func newFixed[T buffer.Elem](values []T, mask *bitmap.Bitmap) fixed[T] {
	f := fixed[T]{data: *buffer.FromSlice(values)}
	f.setMask(len(values), mask)

	return f
}

// Len returns the number of elements, nulls included.
func (f *fixed[T]) Len() int {
	return f.data.Len()
}

// IsEmpty reports whether the array has no elements.
func (f *fixed[T]) IsEmpty() bool {
	return f.data.Len() == 0
}

// Get returns element i and whether it is present. Nulls and out of range
// indices report false.
func (f *fixed[T]) Get(i int) (T, bool) {
	if i < 0 || i >= f.data.Len() || f.isNull(i) {
		var zero T
		return zero, false
	}

	return f.data.At(i), true
}

// Value returns element i regardless of validity. It panics if i is out of
// range.
func (f *fixed[T]) Value(i int) T {
	return f.data.At(i)
}

// Set overwrites element i and marks it valid.
func (f *fixed[T]) Set(i int, v T) {
	checkIndex(i, f.data.Len())
	f.data.SetAt(i, v)
	f.setValid(i)
}

// Push appends a valid element.
func (f *fixed[T]) Push(v T) {
	f.data.Push(v)
	f.pushValid()
}

// Extend appends valid elements.
func (f *fixed[T]) Extend(values ...T) {
	f.data.Extend(values...)
	if f.mask != nil {
		f.mask.AppendCount(len(values), true)
	}
}

// PushNull appends a null element.
func (f *fixed[T]) PushNull() {
	n := f.data.Len()
	f.data.Push(0)
	f.pushNull(n)
}

// PushNulls appends n null elements.
func (f *fixed[T]) PushNulls(n int) {
	cur := f.data.Len()
	f.data.Resize(cur+n, 0)
	f.pushNulls(cur, n)
}

// SetNull marks element i as null and zeroes its slot.
func (f *fixed[T]) SetNull(i int) {
	checkIndex(i, f.data.Len())
	f.data.SetAt(i, 0)
	f.setNull(f.data.Len(), i)
}

// IsNull reports whether element i is null. It panics if i is out of range.
func (f *fixed[T]) IsNull(i int) bool {
	checkIndex(i, f.data.Len())
	return f.isNull(i)
}

// NullMask returns the validity bitmap, or nil when every element is valid.
func (f *fixed[T]) NullMask() *bitmap.Bitmap {
	return f.mask
}

// SetNullMask replaces the validity bitmap with a copy of mask. A nil mask
// marks every element valid. It panics if the mask length differs from Len.
func (f *fixed[T]) SetNullMask(mask *bitmap.Bitmap) {
	f.setMask(f.data.Len(), mask)
}

// NullCount returns the number of null elements.
func (f *fixed[T]) NullCount() int {
	return f.nullCount()
}

// Resize sets the length to n, filling new slots with valid copies of v.
func (f *fixed[T]) Resize(n int, v T) {
	f.data.Resize(n, v)
	f.resize(n)
}

// Values returns the raw value buffer, null slots included. The slice aliases
// the array storage.
func (f *fixed[T]) Values() []T {
	return f.data.Values()
}

// Buffer returns the aligned value buffer.
func (f *fixed[T]) Buffer() *buffer.Buffer[T] {
	return &f.data
}

func (f *fixed[T]) sliceClone(off, n int) fixed[T] {
	checkWindow(off, n, f.data.Len())

	return fixed[T]{
		data:     *f.data.Slice(off, n),
		validity: f.validity.sliceClone(off, n),
	}
}

func (f *fixed[T]) clone() fixed[T] {
	return fixed[T]{data: *f.data.Clone(), validity: f.validity.clone()}
}

func (f *fixed[T]) appendFrom(other *fixed[T]) {
	if other == f {
		c := other.clone()
		other = &c
	}

	n := f.data.Len()
	f.data.Extend(other.data.Values()...)
	f.appendMask(n, &other.validity, other.data.Len())
}
