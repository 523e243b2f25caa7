package pool

import "sync"

// SlicePool recycles slices of T. It is used for scratch slices whose
// contents are copied out before the slice is returned, such as decoded
// dictionary values.
type SlicePool[T any] struct {
	pool sync.Pool
}

// NewSlicePool returns an empty pool.
func NewSlicePool[T any]() *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{New: func() any { return &[]T{} }},
	}
}

// Get returns a slice of exactly size elements and a cleanup function that
// must be called (typically with defer) to return it to the pool. The
// elements are not cleared.
//
//	values, cleanup := strings.Get(n)
//	defer cleanup()
func (p *SlicePool[T]) Get(size int) ([]T, func()) {
	ptr, _ := p.pool.Get().(*[]T)
	slice := *ptr

	if cap(slice) < size {
		slice = make([]T, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() {
		clear(*ptr)
		p.pool.Put(ptr)
	}
}

var stringSlicePool = NewSlicePool[string]()

// GetStringSlice retrieves a string slice of the given size from the shared
// pool. Strings are cleared on cleanup so the pool does not pin them.
func GetStringSlice(size int) ([]string, func()) {
	return stringSlicePool.Get(size)
}
