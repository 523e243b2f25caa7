package array

import (
	"math"

	"github.com/arloliu/colmem/bitmap"
)

// FloatArray is a nullable array of floating point values of width T.
type FloatArray[T Float] struct {
	fixed[T]
}

// NewFloatArray builds an array from copies of values and mask. mask may be
// nil, meaning every element is valid; otherwise its length must match values.
func NewFloatArray[T Float](values []T, mask *bitmap.Bitmap) *FloatArray[T] {
	return &FloatArray[T]{fixed: newFixed(values, mask)}
}

// FloatWithCapacity returns an empty array able to hold n elements without
// reallocating.
func FloatWithCapacity[T Float](n int) *FloatArray[T] {
	a := &FloatArray[T]{}
	a.data.Reserve(n)

	return a
}

// SliceClone copies elements [off, off+n) into a new array.
func (a *FloatArray[T]) SliceClone(off, n int) *FloatArray[T] {
	return &FloatArray[T]{fixed: a.sliceClone(off, n)}
}

// Append concatenates other onto a.
func (a *FloatArray[T]) Append(other *FloatArray[T]) {
	a.appendFrom(&other.fixed)
}

// Clone returns a deep copy.
func (a *FloatArray[T]) Clone() *FloatArray[T] {
	return &FloatArray[T]{fixed: a.clone()}
}

// NaNCount returns the number of valid elements holding NaN.
func (a *FloatArray[T]) NaNCount() int {
	count := 0
	for i, v := range a.data.Values() {
		if math.IsNaN(float64(v)) && !a.isNull(i) {
			count++
		}
	}

	return count
}
