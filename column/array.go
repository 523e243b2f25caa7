// Package column provides the type-erased layer of colmem.
//
// Array is a tagged union over every concrete array in package array. It is
// passed through generic code by value, shares its payload through a
// reference counted copy-on-write handle, and gives back the concrete payload
// with Inner or InnerCheck without copying. Column pairs an Array with the
// Field describing it.
package column

import (
	"fmt"

	"github.com/arloliu/colmem/array"
	"github.com/arloliu/colmem/bitmap"
	"github.com/arloliu/colmem/buffer"
	"github.com/arloliu/colmem/errs"
)

// Payload is the constraint satisfied by every concrete array an Array can
// hold.
type Payload[P any] interface {
	buffer.Cloner[P]
	Len() int
	NullMask() *bitmap.Bitmap
	NullCount() int
	IsNull(i int) bool
	SliceClone(off, n int) P
	Append(other P)
}

// payload is the type-erased view of a slot.
type payload interface {
	length() int
	mask() *bitmap.Bitmap
	nulls() int
	null(i int) bool
	sliceClone(off, n int) payload
	concat(other payload) payload
	retain() payload
	release()
	refCount() int64
}

// slot holds one shared concrete payload.
type slot[P Payload[P]] struct {
	h buffer.Shared[P]
}

func newSlot[P Payload[P]](p P) slot[P] {
	return slot[P]{h: buffer.NewShared(p)}
}

func (s slot[P]) get() P               { return s.h.Get() }
func (s slot[P]) length() int          { return s.h.Get().Len() }
func (s slot[P]) mask() *bitmap.Bitmap { return s.h.Get().NullMask() }
func (s slot[P]) nulls() int           { return s.h.Get().NullCount() }
func (s slot[P]) null(i int) bool      { return s.h.Get().IsNull(i) }
func (s slot[P]) retain() payload      { return slot[P]{h: s.h.Retain()} }
func (s slot[P]) refCount() int64      { return s.h.RefCount() }
func (s slot[P]) release()             { s.h.Release() }
func (s slot[P]) sliceClone(off, n int) payload {
	return newSlot(s.h.Get().SliceClone(off, n))
}

func (s slot[P]) concat(other payload) payload {
	h := s.h
	h.MakeMut().Append(other.(slot[P]).get())

	return slot[P]{h: h}
}

// Array is a tagged union over the concrete arrays of package array.
//
// The active Kind always matches the payload type. Copying an Array value
// shares the payload without touching the reference count; use Clone to take
// a counted reference that makes later in-place writes copy first. The zero
// value is an empty Null array.
type Array struct {
	kind Kind
	p    payload
}

var emptyNull payload = newSlot(array.NewNullArray(0))

// New wraps p in an Array. The Array takes ownership of p; p must not be
// mutated directly afterwards. It panics if P is not one of the supported
// concrete arrays.
func New[P Payload[P]](p P) Array {
	return Array{kind: kindOf(any(p)), p: newSlot(p)}
}

// NewNull returns an all-null Array of n elements.
func NewNull(n int) Array {
	return New(array.NewNullArray(n))
}

func kindOf(p any) Kind {
	switch p.(type) {
	case *array.NullArray:
		return KindNull
	case *array.BooleanArray:
		return KindBoolean
	case *array.IntegerArray[int8]:
		return KindInt8
	case *array.IntegerArray[int16]:
		return KindInt16
	case *array.IntegerArray[int32]:
		return KindInt32
	case *array.IntegerArray[int64]:
		return KindInt64
	case *array.IntegerArray[uint8]:
		return KindUInt8
	case *array.IntegerArray[uint16]:
		return KindUInt16
	case *array.IntegerArray[uint32]:
		return KindUInt32
	case *array.IntegerArray[uint64]:
		return KindUInt64
	case *array.FloatArray[float32]:
		return KindFloat32
	case *array.FloatArray[float64]:
		return KindFloat64
	case *array.StringArray[uint32]:
		return KindString32
	case *array.StringArray[uint64]:
		return KindString64
	case *array.CategoricalArray[uint8]:
		return KindCategorical8
	case *array.CategoricalArray[uint16]:
		return KindCategorical16
	case *array.CategoricalArray[uint32]:
		return KindCategorical32
	case *array.CategoricalArray[uint64]:
		return KindCategorical64
	case *array.DatetimeArray[int32]:
		return KindDatetime32
	case *array.DatetimeArray[int64]:
		return KindDatetime64
	default:
		panic(fmt.Errorf("%w: %T", errs.ErrUnsupportedKind, p))
	}
}

func (a Array) payload() payload {
	if a.p == nil {
		return emptyNull
	}

	return a.p
}

// Kind returns the active variant.
func (a Array) Kind() Kind {
	return a.kind
}

// Len returns the number of elements.
func (a Array) Len() int {
	return a.payload().length()
}

// IsEmpty reports whether the array has no elements.
func (a Array) IsEmpty() bool {
	return a.Len() == 0
}

// NullMask returns the validity bitmap of the payload, or nil when every
// element is valid. A Null array returns a cleared bitmap.
func (a Array) NullMask() *bitmap.Bitmap {
	return a.payload().mask()
}

// NullCount returns the number of null elements.
func (a Array) NullCount() int {
	return a.payload().nulls()
}

// IsNull reports whether element i is null. It panics if i is out of range.
func (a Array) IsNull(i int) bool {
	return a.payload().null(i)
}

// Clone returns a new reference to the same payload. It is O(1); the payload
// is copied lazily on the first in-place write through either reference.
func (a Array) Clone() Array {
	if a.p == nil {
		return a
	}

	return Array{kind: a.kind, p: a.p.retain()}
}

// Release drops this reference to the payload and empties a.
func (a *Array) Release() {
	if a.p != nil {
		a.p.release()
	}
	*a = Array{}
}

// RefCount returns the number of references sharing the payload.
func (a Array) RefCount() int64 {
	if a.p == nil {
		return 0
	}

	return a.p.refCount()
}

// IsUnique reports whether a is the only reference to its payload.
func (a Array) IsUnique() bool {
	return a.RefCount() == 1
}

// SliceClone copies elements [off, off+n) into a new Array of the same kind.
// It panics if the window is out of range.
func (a Array) SliceClone(off, n int) Array {
	return Array{kind: a.kind, p: a.payload().sliceClone(off, n)}
}

// ConcatArray appends other to a in place. When the payload of a is shared it
// is copied first, so other references keep their contents. It panics with an
// incompatible type error if the kinds differ, including when a is the zero
// value and other is not Null.
func (a *Array) ConcatArray(other Array) {
	if a.kind != other.kind {
		panic(errs.Incompatible(a.kind.String(), other.kind.String(), "cannot concatenate arrays of different kinds"))
	}
	a.own()
	a.p = a.p.concat(other.payload())
}

// own gives the zero value a payload of its own so it can be written to.
func (a *Array) own() {
	if a.p == nil {
		a.p = newSlot(array.NewNullArray(0))
	}
}

// Window returns a non-owning view of n elements starting at off. It panics
// if the window is out of range.
func (a Array) Window(off, n int) Window {
	if off < 0 || n < 0 || off+n > a.Len() {
		panic(fmt.Sprintf("column: window [%d, %d) out of range with length %d", off, off+n, a.Len()))
	}

	return Window{array: a, off: off, n: n}
}

// String returns a short description such as "Int32(len=3, nulls=1)".
func (a Array) String() string {
	return fmt.Sprintf("%s(len=%d, nulls=%d)", a.kind, a.Len(), a.NullCount())
}

// Inner returns the concrete payload of a. It panics with an incompatible
// type error if P does not match the active kind.
//
// The payload is shared: it must be treated as read-only. Use InnerMut for
// writes.
func Inner[P Payload[P]](a Array) P {
	p, ok := InnerCheck[P](a)
	if !ok {
		panic(errs.Incompatible(a.kind.String(), typeName[P](), "payload type mismatch"))
	}

	return p
}

// InnerCheck returns the concrete payload of a and true, or the zero value
// and false if P does not match the active kind.
//
// Parameters:
//   - a: Array to reinterpret
//
// Returns:
//   - P: Shared payload, read-only
//   - bool: Whether P matches the active kind
func InnerCheck[P Payload[P]](a Array) (P, bool) {
	s, ok := a.payload().(slot[P])
	if !ok {
		var zero P
		return zero, false
	}

	return s.get(), true
}

// InnerMut returns the concrete payload of a for in-place mutation, copying
// it first if it is shared. It panics with an incompatible type error if P
// does not match the active kind.
func InnerMut[P Payload[P]](a *Array) P {
	a.own()
	s, ok := a.p.(slot[P])
	if !ok {
		panic(errs.Incompatible(a.kind.String(), typeName[P](), "payload type mismatch"))
	}

	h := s.h
	p := h.MakeMut()
	a.p = slot[P]{h: h}

	return p
}

func typeName[P any]() string {
	var zero P
	return fmt.Sprintf("%T", zero)
}
