package buffer

import "sync/atomic"

// Cloner is implemented by payloads that can produce a deep copy of themselves.
type Cloner[T any] interface {
	Clone() T
}

// Shared is a reference counted handle to a payload of type T.
//
// Handles obtained through Retain share one payload. Reading through any
// handle is always allowed; mutating requires MakeMut, which copies the
// payload first unless the handle is its only owner. The counter is atomic so
// handles may be retained and released from different goroutines.
//
// The zero value holds no payload.
type Shared[T Cloner[T]] struct {
	c *cell[T]
}

type cell[T any] struct {
	refs atomic.Int64
	v    T
}

// NewShared wraps v in a handle with a reference count of one.
func NewShared[T Cloner[T]](v T) Shared[T] {
	c := &cell[T]{v: v}
	c.refs.Store(1)

	return Shared[T]{c: c}
}

// Valid reports whether the handle holds a payload.
func (s Shared[T]) Valid() bool {
	return s.c != nil
}

// Get returns the payload for reading.
func (s Shared[T]) Get() T {
	return s.c.v
}

// Retain increments the reference count and returns a new handle to the same
// payload.
func (s Shared[T]) Retain() Shared[T] {
	s.c.refs.Add(1)
	return s
}

// Release drops this handle's reference. The handle is empty afterwards.
func (s *Shared[T]) Release() {
	if s.c == nil {
		return
	}
	if s.c.refs.Add(-1) < 0 {
		panic("buffer: shared payload released too many times")
	}
	s.c = nil
}

// RefCount returns the number of live handles to the payload.
func (s Shared[T]) RefCount() int64 {
	if s.c == nil {
		return 0
	}

	return s.c.refs.Load()
}

// IsUnique reports whether this handle is the only owner of its payload.
func (s Shared[T]) IsUnique() bool {
	return s.RefCount() == 1
}

// MakeMut returns the payload for in-place mutation. When the payload is
// shared it is cloned first and this handle is detached onto the copy, so
// other holders keep observing the original.
func (s *Shared[T]) MakeMut() T {
	if s.c.refs.Load() == 1 {
		return s.c.v
	}

	v := s.c.v.Clone()
	s.c.refs.Add(-1)
	*s = NewShared(v)

	return v
}
