// Package buffer provides the storage primitives behind every colmem array:
// a 64-byte aligned growable buffer of fixed-width values, and a reference
// counted copy-on-write handle used to share array payloads.
package buffer

import (
	"fmt"
	"unsafe"

	"github.com/arloliu/colmem/internal/unsafecast"
)

// Alignment is the byte alignment of every buffer allocation. It matches the
// Arrow recommendation so buffers can be handed to SIMD kernels and exported
// without copying.
const Alignment = 64

const (
	// minGrowBytes is the smallest growth step of a non-empty buffer.
	minGrowBytes = 64
	// doublingLimit is the capacity in bytes up to which a buffer doubles on
	// growth. Larger buffers grow by 25% of their capacity.
	doublingLimit = 1024 * 64
)

// Elem is the set of fixed-width element types a Buffer may hold.
type Elem interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Buffer is a contiguous, 64-byte aligned, growable sequence of T.
//
// The zero value is an empty buffer ready to use. A Buffer is not safe for
// concurrent mutation.
type Buffer[T Elem] struct {
	data []T
}

// New returns a buffer of n zero values.
func New[T Elem](n int) *Buffer[T] {
	return &Buffer[T]{data: alloc[T](n, n)}
}

// WithCapacity returns an empty buffer able to hold c values without
// reallocating.
func WithCapacity[T Elem](c int) *Buffer[T] {
	return &Buffer[T]{data: alloc[T](0, c)}
}

// FromSlice returns a buffer holding a copy of values.
func FromSlice[T Elem](values []T) *Buffer[T] {
	b := &Buffer[T]{data: alloc[T](len(values), len(values))}
	copy(b.data, values)

	return b
}

// Len returns the number of values in the buffer.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Cap returns the number of values the buffer can hold without reallocating.
func (b *Buffer[T]) Cap() int {
	return cap(b.data)
}

// Values returns the buffer contents. The slice aliases the buffer storage and
// is valid until the next operation that may reallocate.
func (b *Buffer[T]) Values() []T {
	return b.data
}

// Bytes returns the buffer contents reinterpreted as bytes without copying.
// The slice is in host byte order and aliases the buffer storage.
func (b *Buffer[T]) Bytes() []byte {
	return unsafecast.Slice[T, byte](b.data)
}

// At returns the value at index i. It panics if i is out of range.
func (b *Buffer[T]) At(i int) T {
	return b.data[i]
}

// SetAt overwrites the value at index i. It panics if i is out of range.
func (b *Buffer[T]) SetAt(i int, v T) {
	b.data[i] = v
}

// Push appends v.
func (b *Buffer[T]) Push(v T) {
	b.Reserve(1)
	b.data = append(b.data, v)
}

// Extend appends values.
func (b *Buffer[T]) Extend(values ...T) {
	b.Reserve(len(values))
	b.data = append(b.data, values...)
}

// Resize sets the length to n. New slots are filled with v.
func (b *Buffer[T]) Resize(n int, v T) {
	if n < 0 {
		panic(fmt.Sprintf("buffer: negative length %d", n))
	}

	cur := len(b.data)
	if n <= cur {
		b.data = b.data[:n]
		return
	}

	b.Reserve(n - cur)
	b.data = b.data[:n]
	if v != 0 {
		for i := cur; i < n; i++ {
			b.data[i] = v
		}
	} else {
		clear(b.data[cur:n])
	}
}

// Truncate shortens the buffer to n values. It is a no-op when n >= Len.
func (b *Buffer[T]) Truncate(n int) {
	if n < len(b.data) {
		b.data = b.data[:n]
	}
}

// Reset empties the buffer and keeps its storage.
func (b *Buffer[T]) Reset() {
	b.data = b.data[:0]
}

// Splice replaces the values in [start, end) with repl, shifting the tail.
// It panics if the range is invalid.
func (b *Buffer[T]) Splice(start, end int, repl []T) {
	if start < 0 || end < start || end > len(b.data) {
		panic(fmt.Sprintf("buffer: invalid splice range [%d, %d) with length %d", start, end, len(b.data)))
	}

	delta := len(repl) - (end - start)
	if delta > 0 {
		b.Reserve(delta)
	}

	oldLen := len(b.data)
	newLen := oldLen + delta
	if delta > 0 {
		b.data = b.data[:newLen]
	}
	copy(b.data[start+len(repl):newLen], b.data[end:oldLen])
	copy(b.data[start:], repl)
	b.data = b.data[:newLen]
}

// Reserve ensures the buffer can take extra more values without reallocating.
//
// Buffers up to 64KiB double their capacity; larger buffers grow by 25% of
// their capacity, or by exactly what is needed if that is more.
func (b *Buffer[T]) Reserve(extra int) {
	need := len(b.data) + extra
	if need <= cap(b.data) {
		return
	}

	size := int(unsafecast.Sizeof[T]())
	curCap := cap(b.data)
	growBy := curCap
	if curCap*size > doublingLimit {
		growBy = curCap / 4
	}
	if minElems := minGrowBytes / size; growBy < minElems {
		growBy = minElems
	}

	newCap := curCap + growBy
	if newCap < need {
		newCap = need
	}

	data := alloc[T](len(b.data), newCap)
	copy(data, b.data)
	b.data = data
}

// Clone returns a deep copy of the buffer.
func (b *Buffer[T]) Clone() *Buffer[T] {
	return FromSlice(b.data)
}

// Slice returns a new buffer holding a copy of the n values starting at off.
// It panics if the window is out of range.
func (b *Buffer[T]) Slice(off, n int) *Buffer[T] {
	if off < 0 || n < 0 || off+n > len(b.data) {
		panic(fmt.Sprintf("buffer: slice [%d, %d) out of range with length %d", off, off+n, len(b.data)))
	}

	return FromSlice(b.data[off : off+n])
}

// IsAligned reports whether the storage starts on an Alignment boundary.
// An empty buffer with no storage is considered aligned.
func (b *Buffer[T]) IsAligned() bool {
	return unsafecast.Addr(b.data)%Alignment == 0
}

// Equal reports whether both buffers hold the same values.
func (b *Buffer[T]) Equal(other *Buffer[T]) bool {
	if len(b.data) != len(other.data) {
		return false
	}
	for i, v := range b.data {
		if other.data[i] != v {
			return false
		}
	}

	return true
}

// alloc returns a slice of length n and capacity at least c whose first element
// sits on an Alignment boundary. Capacity is padded to a multiple of Alignment
// bytes.
func alloc[T Elem](n, c int) []T {
	if c == 0 {
		return nil
	}

	size := int(unsafecast.Sizeof[T]())
	nbytes := (c*size + Alignment - 1) &^ (Alignment - 1)
	raw := make([]byte, nbytes+Alignment)

	off := 0
	if rem := unsafecast.Addr(raw) % Alignment; rem != 0 {
		off = Alignment - int(rem)
	}

	ptr := (*T)(unsafe.Pointer(&raw[off]))

	return unsafe.Slice(ptr, nbytes/size)[:n]
}
