package array

import "github.com/arloliu/colmem/bitmap"

// IntegerArray is a nullable array of integers of width T.
type IntegerArray[T Integer] struct {
	fixed[T]
}

// NewIntegerArray builds an array from copies of values and mask. mask may be
// nil, meaning every element is valid; otherwise its length must match values.
func NewIntegerArray[T Integer](values []T, mask *bitmap.Bitmap) *IntegerArray[T] {
	return &IntegerArray[T]{fixed: newFixed(values, mask)}
}

// IntegerWithCapacity returns an empty array able to hold n elements without
// reallocating.
func IntegerWithCapacity[T Integer](n int) *IntegerArray[T] {
	a := &IntegerArray[T]{}
	a.data.Reserve(n)

	return a
}

// SliceClone copies elements [off, off+n) into a new array.
func (a *IntegerArray[T]) SliceClone(off, n int) *IntegerArray[T] {
	return &IntegerArray[T]{fixed: a.sliceClone(off, n)}
}

// Append concatenates other onto a.
func (a *IntegerArray[T]) Append(other *IntegerArray[T]) {
	a.appendFrom(&other.fixed)
}

// Clone returns a deep copy.
func (a *IntegerArray[T]) Clone() *IntegerArray[T] {
	return &IntegerArray[T]{fixed: a.clone()}
}
