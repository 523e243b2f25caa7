// Package array implements the typed nullable arrays of colmem.
//
// Every array keeps its values in 64-byte aligned buffers and an optional
// validity bitmap. The bitmap is only allocated once the first null is
// written, so arrays that never hold a null carry no mask at all. All arrays
// satisfy MaskedArray, the shared contract generic code is written against.
//
// Arrays are not safe for concurrent mutation. Concurrent reads are fine, and
// the Parallel* helpers split read-only scans across goroutines.
package array

import (
	"github.com/arloliu/colmem/bitmap"
)

// Signed is the set of signed integer element types.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer element types.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integer is the set of integer element types.
type Integer interface {
	Signed | Unsigned
}

// Float is the set of floating point element types.
type Float interface {
	~float32 | ~float64
}

// Numeric is the set of integer and floating point element types.
type Numeric interface {
	Integer | Float
}

// Offset is the set of string offset widths.
type Offset interface {
	~uint32 | ~uint64
}

// Code is the set of categorical code widths.
type Code interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Temporal is the set of datetime storage widths.
type Temporal interface {
	~int32 | ~int64
}

// MaskedArray is the contract shared by every nullable array. V is the element
// type handed in and out, A the concrete array type.
//
// When a mask is present its length always equals Len. Get reports false for
// an index that is out of range or null. Mutating methods panic when given an
// out of range index.
type MaskedArray[V any, A any] interface {
	// Len returns the number of elements, nulls included.
	Len() int
	// IsEmpty reports whether Len is zero.
	IsEmpty() bool
	// Get returns element i and whether it is present.
	Get(i int) (V, bool)
	// Set overwrites element i and marks it valid.
	Set(i int, v V)
	// Push appends a valid element.
	Push(v V)
	// PushNull appends a null element.
	PushNull()
	// PushNulls appends n null elements.
	PushNulls(n int)
	// SetNull marks element i as null.
	SetNull(i int)
	// IsNull reports whether element i is null.
	IsNull(i int) bool
	// NullMask returns the validity bitmap, or nil when every element is valid.
	NullMask() *bitmap.Bitmap
	// NullCount returns the number of null elements.
	NullCount() int
	// Resize sets the length to n, filling new slots with valid copies of v.
	Resize(n int, v V)
	// SliceClone copies elements [off, off+n) into a new array.
	SliceClone(off, n int) A
	// Append concatenates other onto the array.
	Append(other A)
	// Clone returns a deep copy.
	Clone() A
}

var (
	_ MaskedArray[int32, *IntegerArray[int32]]      = (*IntegerArray[int32])(nil)
	_ MaskedArray[float64, *FloatArray[float64]]    = (*FloatArray[float64])(nil)
	_ MaskedArray[bool, *BooleanArray]              = (*BooleanArray)(nil)
	_ MaskedArray[int64, *DatetimeArray[int64]]     = (*DatetimeArray[int64])(nil)
	_ MaskedArray[string, *StringArray[uint32]]     = (*StringArray[uint32])(nil)
	_ MaskedArray[string, *CategoricalArray[uint8]] = (*CategoricalArray[uint8])(nil)
)

// validity holds the optional mask shared by every array kind and implements
// the mask half of the contract.
type validity struct {
	mask *bitmap.Bitmap
}

// materialize allocates an all-valid mask of n bits if none exists yet.
func (v *validity) materialize(n int) {
	if v.mask == nil {
		v.mask = bitmap.NewSetAll(n, true)
	}
}

func (v *validity) pushValid() {
	if v.mask != nil {
		v.mask.Append(true)
	}
}

// pushNull records one null appended after n existing elements.
func (v *validity) pushNull(n int) {
	v.materialize(n)
	v.mask.Append(false)
}

func (v *validity) pushNulls(n, count int) {
	v.materialize(n)
	v.mask.AppendCount(count, false)
}

func (v *validity) setValid(i int) {
	if v.mask != nil {
		v.mask.SetUnchecked(i, true)
	}
}

func (v *validity) setNull(n, i int) {
	v.materialize(n)
	v.mask.SetUnchecked(i, false)
}

func (v *validity) isNull(i int) bool {
	return v.mask != nil && !v.mask.GetUnchecked(i)
}

func (v *validity) nullCount() int {
	if v.mask == nil {
		return 0
	}

	return v.mask.CountZeros()
}

func (v *validity) resize(n int) {
	if v.mask != nil {
		v.mask.Resize(n, true)
	}
}

func (v *validity) sliceClone(off, n int) validity {
	if v.mask == nil {
		return validity{}
	}

	return validity{mask: v.mask.SliceClone(off, n)}
}

func (v *validity) clone() validity {
	if v.mask == nil {
		return validity{}
	}

	return validity{mask: v.mask.Clone()}
}

// appendMask concatenates the masks of two arrays of length n and m.
func (v *validity) appendMask(n int, other *validity, m int) {
	switch {
	case v.mask == nil && other.mask == nil:
	case other.mask == nil:
		v.mask.AppendCount(m, true)
	case v.mask == nil:
		v.mask = bitmap.NewSetAll(n, true)
		v.mask.ExtendFromBitmap(other.mask)
	default:
		v.mask.ExtendFromBitmap(other.mask)
	}
}

// setMask installs a copy of mask for an array of length n. A nil mask
// removes it.
func (v *validity) setMask(n int, mask *bitmap.Bitmap) {
	if mask == nil {
		v.mask = nil
		return
	}
	if mask.Len() != n {
		panic(lengthMismatch(n, mask.Len()))
	}
	v.mask = mask.Clone()
}

func checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(indexOutOfRange(i, n))
	}
}

func checkWindow(off, n, length int) {
	if off < 0 || n < 0 || off+n > length {
		panic(windowOutOfRange(off, n, length))
	}
}
