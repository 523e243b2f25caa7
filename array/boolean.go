package array

import (
	"github.com/arloliu/colmem/bitmap"
)

// BooleanArray is a nullable array of booleans, bit-packed LSB first.
type BooleanArray struct {
	values bitmap.Bitmap
	validity
}

// NewBooleanArray builds an array from copies of values and mask. mask may be
// nil, meaning every element is valid; otherwise its length must match values.
func NewBooleanArray(values []bool, mask *bitmap.Bitmap) *BooleanArray {
	a := &BooleanArray{values: *bitmap.FromBools(values)}
	a.setMask(len(values), mask)

	return a
}

// NewBooleanArrayFromBitmap builds an array over a copy of packed values.
func NewBooleanArrayFromBitmap(values *bitmap.Bitmap, mask *bitmap.Bitmap) *BooleanArray {
	a := &BooleanArray{values: *values.Clone()}
	a.setMask(values.Len(), mask)

	return a
}

// Len returns the number of elements, nulls included.
func (a *BooleanArray) Len() int {
	return a.values.Len()
}

// IsEmpty reports whether the array has no elements.
func (a *BooleanArray) IsEmpty() bool {
	return a.values.Len() == 0
}

// Get returns element i and whether it is present.
func (a *BooleanArray) Get(i int) (bool, bool) {
	if i < 0 || i >= a.values.Len() || a.isNull(i) {
		return false, false
	}

	return a.values.GetUnchecked(i), true
}

// Set overwrites element i and marks it valid.
func (a *BooleanArray) Set(i int, v bool) {
	a.values.Set(i, v)
	a.setValid(i)
}

// Push appends a valid element.
func (a *BooleanArray) Push(v bool) {
	a.values.Append(v)
	a.pushValid()
}

// PushNull appends a null element.
func (a *BooleanArray) PushNull() {
	n := a.values.Len()
	a.values.Append(false)
	a.pushNull(n)
}

// PushNulls appends n null elements.
func (a *BooleanArray) PushNulls(n int) {
	cur := a.values.Len()
	a.values.AppendCount(n, false)
	a.pushNulls(cur, n)
}

// SetNull marks element i as null and clears its value bit.
func (a *BooleanArray) SetNull(i int) {
	a.values.Set(i, false)
	a.setNull(a.values.Len(), i)
}

// IsNull reports whether element i is null. It panics if i is out of range.
func (a *BooleanArray) IsNull(i int) bool {
	checkIndex(i, a.values.Len())
	return a.isNull(i)
}

// NullMask returns the validity bitmap, or nil when every element is valid.
func (a *BooleanArray) NullMask() *bitmap.Bitmap {
	return a.mask
}

// SetNullMask replaces the validity bitmap with a copy of mask. It panics if
// the mask length differs from Len.
func (a *BooleanArray) SetNullMask(mask *bitmap.Bitmap) {
	a.setMask(a.values.Len(), mask)
}

// NullCount returns the number of null elements.
func (a *BooleanArray) NullCount() int {
	return a.nullCount()
}

// Resize sets the length to n, filling new slots with valid copies of v.
func (a *BooleanArray) Resize(n int, v bool) {
	a.values.Resize(n, v)
	a.resize(n)
}

// Values returns the packed value bits. Null slots hold false.
func (a *BooleanArray) Values() *bitmap.Bitmap {
	return &a.values
}

// TrueCount returns the number of valid true elements.
func (a *BooleanArray) TrueCount() int {
	if a.mask == nil {
		return a.values.CountOnes()
	}

	return a.values.Intersect(a.mask).CountOnes()
}

// SliceClone copies elements [off, off+n) into a new array.
func (a *BooleanArray) SliceClone(off, n int) *BooleanArray {
	checkWindow(off, n, a.values.Len())

	return &BooleanArray{
		values:   *a.values.SliceClone(off, n),
		validity: a.validity.sliceClone(off, n),
	}
}

// Append concatenates other onto a.
func (a *BooleanArray) Append(other *BooleanArray) {
	if other == a {
		other = other.Clone()
	}

	n := a.values.Len()
	a.values.ExtendFromBitmap(&other.values)
	a.appendMask(n, &other.validity, other.values.Len())
}

// Clone returns a deep copy.
func (a *BooleanArray) Clone() *BooleanArray {
	return &BooleanArray{values: *a.values.Clone(), validity: a.validity.clone()}
}
