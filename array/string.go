package array

import (
	"math"
	"strings"

	"github.com/arloliu/colmem/bitmap"
	"github.com/arloliu/colmem/buffer"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/internal/unsafecast"
)

// StringArray is a nullable array of UTF-8 strings stored as one contiguous
// byte buffer plus Len+1 offsets of width O. Element i spans
// data[offsets[i]:offsets[i+1]]. Offsets start at zero, never decrease, and
// the last offset equals the byte length.
//
// With O = uint32 the layout matches Arrow utf8, with O = uint64 it matches
// Arrow large_utf8. Offsets never exceed the signed maximum of their width.
type StringArray[O Offset] struct {
	offsets buffer.Buffer[O]
	data    buffer.Buffer[byte]
	validity
}

// NewStringArray builds an array from copies of values and mask. mask may be
// nil, meaning every element is valid; otherwise its length must match values.
func NewStringArray[O Offset](values []string, mask *bitmap.Bitmap) *StringArray[O] {
	total := 0
	for _, v := range values {
		total += len(v)
	}

	a := StringWithCapacity[O](len(values), total)
	for _, v := range values {
		a.PushString(v)
	}
	a.setMask(len(values), mask)

	return a
}

// NewStringArrayFromBuffers builds an array from raw offsets and bytes. The
// slices and mask are copied. It returns errs.ErrInvalidBufferLayout if the offsets
// are not a valid layout for data.
func NewStringArrayFromBuffers[O Offset](offsets []O, data []byte, mask *bitmap.Bitmap) (*StringArray[O], error) {
	if err := validateOffsets(offsets, len(data)); err != nil {
		return nil, err
	}
	if mask != nil && mask.Len() != len(offsets)-1 {
		return nil, errs.ErrLengthMismatch
	}

	a := &StringArray[O]{
		offsets: *buffer.FromSlice(offsets),
		data:    *buffer.FromSlice(data),
	}
	a.setMask(len(offsets)-1, mask)

	return a, nil
}

// StringWithCapacity returns an empty array able to hold n strings totalling
// nbytes bytes without reallocating.
func StringWithCapacity[O Offset](n, nbytes int) *StringArray[O] {
	a := &StringArray[O]{}
	a.offsets.Reserve(n + 1)
	a.offsets.Push(0)
	a.data.Reserve(nbytes)

	return a
}

func validateOffsets[O Offset](offsets []O, dataLen int) error {
	if len(offsets) == 0 || offsets[0] != 0 {
		return errs.ErrInvalidBufferLayout
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return errs.ErrInvalidBufferLayout
		}
	}
	if uint64(offsets[len(offsets)-1]) != uint64(dataLen) || uint64(dataLen) > maxOffset[O]() {
		return errs.ErrInvalidBufferLayout
	}

	return nil
}

// maxOffset is the largest byte length an O offset may address.
func maxOffset[O Offset]() uint64 {
	if unsafecast.Sizeof[O]() == 4 {
		return math.MaxInt32
	}

	return math.MaxInt64
}

func (a *StringArray[O]) init() {
	if a.offsets.Len() == 0 {
		a.offsets.Push(0)
	}
}

func (a *StringArray[O]) checkCapacity(extra int) {
	if uint64(a.data.Len())+uint64(extra) > maxOffset[O]() {
		panic(errs.Overflow(a.data.Len()+extra, offsetName[O]()))
	}
}

func offsetName[O Offset]() string {
	if unsafecast.Sizeof[O]() == 4 {
		return "String32 offset"
	}

	return "String64 offset"
}

// Len returns the number of elements, nulls included.
func (a *StringArray[O]) Len() int {
	if a.offsets.Len() == 0 {
		return 0
	}

	return a.offsets.Len() - 1
}

// IsEmpty reports whether the array has no elements.
func (a *StringArray[O]) IsEmpty() bool {
	return a.Len() == 0
}

// Get returns a copy of element i and whether it is present.
func (a *StringArray[O]) Get(i int) (string, bool) {
	b, ok := a.GetBytes(i)
	if !ok {
		return "", false
	}

	return string(b), true
}

// GetBytes returns element i as a slice borrowed from the array storage. The
// slice is valid until the next mutation of the array and must not be
// modified.
func (a *StringArray[O]) GetBytes(i int) ([]byte, bool) {
	if i < 0 || i >= a.Len() || a.isNull(i) {
		return nil, false
	}

	return a.bytesAt(i), true
}

func (a *StringArray[O]) bytesAt(i int) []byte {
	offs := a.offsets.Values()
	return a.data.Values()[offs[i]:offs[i+1]]
}

// Value returns element i regardless of validity. It panics if i is out of
// range.
func (a *StringArray[O]) Value(i int) string {
	checkIndex(i, a.Len())
	return string(a.bytesAt(i))
}

// Set overwrites element i with v and marks it valid.
func (a *StringArray[O]) Set(i int, v string) {
	a.SetString(i, v)
}

// SetString overwrites element i with s and marks it valid. A value of a
// different byte length is spliced in and every following offset is shifted.
func (a *StringArray[O]) SetString(i int, s string) {
	checkIndex(i, a.Len())

	offs := a.offsets.Values()
	start, end := int(offs[i]), int(offs[i+1])
	delta := len(s) - (end - start)
	if delta == 0 {
		copy(a.data.Values()[start:end], s)
		a.setValid(i)

		return
	}

	if delta > 0 {
		a.checkCapacity(delta)
	}
	a.data.Splice(start, end, []byte(s))
	offs = a.offsets.Values()
	for j := i + 1; j < len(offs); j++ {
		offs[j] = O(int64(offs[j]) + int64(delta))
	}
	a.setValid(i)
}

// Push appends a valid element.
func (a *StringArray[O]) Push(v string) {
	a.PushString(v)
}

// PushString appends s as a valid element. It panics with an overflow error
// if the byte length would exceed what O can address.
func (a *StringArray[O]) PushString(s string) {
	a.init()
	a.checkCapacity(len(s))
	a.appendString(s)
	a.offsets.Push(O(a.data.Len()))
	a.pushValid()
}

func (a *StringArray[O]) appendString(s string) {
	n := a.data.Len()
	a.data.Resize(n+len(s), 0)
	copy(a.data.Values()[n:], s)
}

// PushBytes appends b as a valid element.
func (a *StringArray[O]) PushBytes(b []byte) {
	a.init()
	a.checkCapacity(len(b))
	a.data.Extend(b...)
	a.offsets.Push(O(a.data.Len()))
	a.pushValid()
}

// PushNull appends a null element.
func (a *StringArray[O]) PushNull() {
	a.init()
	n := a.Len()
	a.offsets.Push(O(a.data.Len()))
	a.pushNull(n)
}

// PushNulls appends n null elements.
func (a *StringArray[O]) PushNulls(n int) {
	a.init()
	cur := a.Len()
	a.offsets.Resize(cur+1+n, O(a.data.Len()))
	a.pushNulls(cur, n)
}

// SetNull marks element i as null. The bytes of the element are removed.
func (a *StringArray[O]) SetNull(i int) {
	checkIndex(i, a.Len())
	a.SetString(i, "")
	a.setNull(a.Len(), i)
}

// IsNull reports whether element i is null. It panics if i is out of range.
func (a *StringArray[O]) IsNull(i int) bool {
	checkIndex(i, a.Len())
	return a.isNull(i)
}

// NullMask returns the validity bitmap, or nil when every element is valid.
func (a *StringArray[O]) NullMask() *bitmap.Bitmap {
	return a.mask
}

// SetNullMask replaces the validity bitmap with a copy of mask. It panics if
// the mask length differs from Len.
func (a *StringArray[O]) SetNullMask(mask *bitmap.Bitmap) {
	a.setMask(a.Len(), mask)
}

// NullCount returns the number of null elements.
func (a *StringArray[O]) NullCount() int {
	return a.nullCount()
}

// Resize sets the length to n. New slots hold valid copies of v.
func (a *StringArray[O]) Resize(n int, v string) {
	a.init()
	cur := a.Len()
	if n < 0 {
		panic(indexOutOfRange(n, cur))
	}
	if n <= cur {
		a.offsets.Truncate(n + 1)
		a.data.Truncate(int(a.offsets.At(n)))
		a.resize(n)

		return
	}

	a.checkCapacity((n - cur) * len(v))
	for range n - cur {
		a.appendString(v)
		a.offsets.Push(O(a.data.Len()))
	}
	a.resize(n)
}

// Offsets returns the raw offsets, Len+1 entries. The slice aliases the array
// storage.
func (a *StringArray[O]) Offsets() []O {
	a.init()
	return a.offsets.Values()
}

// Data returns the raw UTF-8 bytes. The slice aliases the array storage.
func (a *StringArray[O]) Data() []byte {
	return a.data.Values()
}

// OffsetsBuffer returns the aligned offset buffer.
func (a *StringArray[O]) OffsetsBuffer() *buffer.Buffer[O] {
	a.init()
	return &a.offsets
}

// DataBuffer returns the aligned byte buffer.
func (a *StringArray[O]) DataBuffer() *buffer.Buffer[byte] {
	return &a.data
}

// Strings returns a copy of every element. Nulls become "".
func (a *StringArray[O]) Strings() []string {
	out := make([]string, a.Len())
	for i := range out {
		if !a.isNull(i) {
			out[i] = string(a.bytesAt(i))
		}
	}

	return out
}

// SliceClone copies elements [off, off+n) into a new array whose offsets are
// re-based to start at zero.
func (a *StringArray[O]) SliceClone(off, n int) *StringArray[O] {
	checkWindow(off, n, a.Len())
	a.init()

	offs := a.offsets.Values()[off : off+n+1]
	base := offs[0]
	out := &StringArray[O]{
		data:     *a.data.Slice(int(base), int(offs[n]-base)),
		validity: a.validity.sliceClone(off, n),
	}
	out.offsets.Reserve(n + 1)
	for _, o := range offs {
		out.offsets.Push(o - base)
	}

	return out
}

// Append concatenates other onto a. It panics with an overflow error if the
// combined byte length exceeds what O can address.
func (a *StringArray[O]) Append(other *StringArray[O]) {
	if other == a {
		other = other.Clone()
	}
	a.init()
	other.init()

	n := a.Len()
	a.checkCapacity(other.data.Len())
	shift := O(a.data.Len())
	a.data.Extend(other.data.Values()...)
	a.offsets.Reserve(other.Len())
	for _, o := range other.offsets.Values()[1:] {
		a.offsets.Push(o + shift)
	}
	a.appendMask(n, &other.validity, other.Len())
}

// Clone returns a deep copy.
func (a *StringArray[O]) Clone() *StringArray[O] {
	a.init()

	return &StringArray[O]{
		offsets:  *a.offsets.Clone(),
		data:     *a.data.Clone(),
		validity: a.validity.clone(),
	}
}

// String renders the array for debugging, nulls as "null".
func (a *StringArray[O]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range a.Len() {
		if i > 0 {
			sb.WriteString(", ")
		}
		if a.isNull(i) {
			sb.WriteString("null")
			continue
		}
		sb.WriteByte('"')
		sb.Write(a.bytesAt(i))
		sb.WriteByte('"')
	}
	sb.WriteByte(']')

	return sb.String()
}
