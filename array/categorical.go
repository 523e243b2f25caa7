package array

import (
	"fmt"

	"github.com/arloliu/colmem/bitmap"
	"github.com/arloliu/colmem/buffer"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/internal/intern"
	"github.com/arloliu/colmem/internal/unsafecast"
)

// CategoricalArray is a nullable dictionary-encoded string array. Each
// element is a code of width C indexing an ordered dictionary of unique
// strings. Every valid code is smaller than the dictionary length; null
// elements hold code zero.
type CategoricalArray[C Code] struct {
	codes buffer.Buffer[C]
	dict  *intern.Dictionary
	validity
}

// NewCategoricalArray builds an array from codes and an ordered dictionary.
// Both are copied, as is mask. It returns errs.ErrInvalidBufferLayout if the
// dictionary holds duplicates or a valid code points past its end.
func NewCategoricalArray[C Code](codes []C, dictionary []string, mask *bitmap.Bitmap) (*CategoricalArray[C], error) {
	if mask != nil && mask.Len() != len(codes) {
		return nil, errs.ErrLengthMismatch
	}

	dict, dropped := intern.FromValues(dictionary)
	if dropped {
		return nil, fmt.Errorf("%w: duplicate dictionary value", errs.ErrInvalidBufferLayout)
	}
	if !fitsCodes[C](dict.Len()) {
		return nil, errs.Overflow(dict.Len(), codeName[C]())
	}
	for i, c := range codes {
		if uint64(c) >= uint64(dict.Len()) && (mask == nil || mask.GetUnchecked(i)) {
			return nil, fmt.Errorf("%w: code %d at %d outside dictionary of %d", errs.ErrInvalidBufferLayout, c, i, dict.Len())
		}
	}

	a := &CategoricalArray[C]{codes: *buffer.FromSlice(codes), dict: dict}
	a.setMask(len(codes), mask)

	return a, nil
}

// NewCategoricalFromStrings encodes values, assigning codes in first
// appearance order. Null rows get code zero without touching the
// dictionary. It returns an overflow error if the number of unique values
// does not fit C.
func NewCategoricalFromStrings[C Code](values []string, mask *bitmap.Bitmap) (*CategoricalArray[C], error) {
	if mask != nil && mask.Len() != len(values) {
		return nil, errs.ErrLengthMismatch
	}

	a := CategoricalWithCapacity[C](len(values))
	for i, v := range values {
		if mask != nil && !mask.GetUnchecked(i) {
			a.PushNull()
			continue
		}
		if _, err := a.PushString(v); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// CategoricalWithCapacity returns an empty array able to hold n codes without
// reallocating.
func CategoricalWithCapacity[C Code](n int) *CategoricalArray[C] {
	a := &CategoricalArray[C]{dict: intern.New()}
	a.codes.Reserve(n)

	return a
}

// maxCode is the largest code C can hold.
func maxCode[C Code]() uint64 {
	return uint64(^C(0))
}

// fitsCodes reports whether a dictionary of n values is addressable by C.
func fitsCodes[C Code](n int) bool {
	return n == 0 || uint64(n-1) <= maxCode[C]()
}

func codeName[C Code]() string {
	return fmt.Sprintf("Categorical%d code", unsafecast.Sizeof[C]()*8)
}

func (a *CategoricalArray[C]) dictionary() *intern.Dictionary {
	if a.dict == nil {
		a.dict = intern.New()
	}

	return a.dict
}

// intern returns the code of s, adding it to the dictionary when absent.
func (a *CategoricalArray[C]) intern(s string) (C, error) {
	d := a.dictionary()
	if idx, ok := d.Lookup(s); ok {
		return C(idx), nil
	}
	if uint64(d.Len()) > maxCode[C]() {
		return 0, errs.Overflow(d.Len(), codeName[C]())
	}
	idx, _ := d.Intern(s)

	return C(idx), nil
}

func (a *CategoricalArray[C]) mustIntern(s string) C {
	c, err := a.intern(s)
	if err != nil {
		panic(err)
	}

	return c
}

// Len returns the number of elements, nulls included.
func (a *CategoricalArray[C]) Len() int {
	return a.codes.Len()
}

// IsEmpty reports whether the array has no elements.
func (a *CategoricalArray[C]) IsEmpty() bool {
	return a.codes.Len() == 0
}

// Get returns the string of element i and whether it is present. The string
// is shared with the dictionary.
func (a *CategoricalArray[C]) Get(i int) (string, bool) {
	if i < 0 || i >= a.codes.Len() || a.isNull(i) {
		return "", false
	}

	return a.dict.Value(int(a.codes.At(i))), true
}

// Code returns the code of element i and whether it is present.
func (a *CategoricalArray[C]) Code(i int) (C, bool) {
	if i < 0 || i >= a.codes.Len() || a.isNull(i) {
		return 0, false
	}

	return a.codes.At(i), true
}

// Set overwrites element i with v and marks it valid. It panics with an
// overflow error if v is new and the dictionary is full.
func (a *CategoricalArray[C]) Set(i int, v string) {
	checkIndex(i, a.codes.Len())
	a.codes.SetAt(i, a.mustIntern(v))
	a.setValid(i)
}

// Push appends v as a valid element. It panics with an overflow error if v
// is new and the dictionary is full; use PushString to get the error instead.
func (a *CategoricalArray[C]) Push(v string) {
	if _, err := a.PushString(v); err != nil {
		panic(err)
	}
}

// PushString appends s as a valid element and returns the code used, reusing
// the existing code when s is already in the dictionary.
func (a *CategoricalArray[C]) PushString(s string) (C, error) {
	c, err := a.intern(s)
	if err != nil {
		return 0, err
	}
	a.codes.Push(c)
	a.pushValid()

	return c, nil
}

// PushNull appends a null element with code zero.
func (a *CategoricalArray[C]) PushNull() {
	n := a.codes.Len()
	a.codes.Push(0)
	a.pushNull(n)
}

// PushNulls appends n null elements.
func (a *CategoricalArray[C]) PushNulls(n int) {
	cur := a.codes.Len()
	a.codes.Resize(cur+n, 0)
	a.pushNulls(cur, n)
}

// SetNull marks element i as null and resets its code to zero.
func (a *CategoricalArray[C]) SetNull(i int) {
	checkIndex(i, a.codes.Len())
	a.codes.SetAt(i, 0)
	a.setNull(a.codes.Len(), i)
}

// IsNull reports whether element i is null. It panics if i is out of range.
func (a *CategoricalArray[C]) IsNull(i int) bool {
	checkIndex(i, a.codes.Len())
	return a.isNull(i)
}

// NullMask returns the validity bitmap, or nil when every element is valid.
func (a *CategoricalArray[C]) NullMask() *bitmap.Bitmap {
	return a.mask
}

// SetNullMask replaces the validity bitmap with a copy of mask. It panics if
// the mask length differs from Len.
func (a *CategoricalArray[C]) SetNullMask(mask *bitmap.Bitmap) {
	a.setMask(a.codes.Len(), mask)
}

// NullCount returns the number of null elements.
func (a *CategoricalArray[C]) NullCount() int {
	return a.nullCount()
}

// Resize sets the length to n. New slots hold valid copies of v.
func (a *CategoricalArray[C]) Resize(n int, v string) {
	var c C
	if n > a.codes.Len() {
		c = a.mustIntern(v)
	}
	a.codes.Resize(n, c)
	a.resize(n)
}

// Codes returns the raw codes, null slots included. The slice aliases the
// array storage.
func (a *CategoricalArray[C]) Codes() []C {
	return a.codes.Values()
}

// CodesBuffer returns the aligned code buffer.
func (a *CategoricalArray[C]) CodesBuffer() *buffer.Buffer[C] {
	return &a.codes
}

// Dictionary returns the ordered unique values. The slice must not be
// modified.
func (a *CategoricalArray[C]) Dictionary() []string {
	return a.dictionary().Values()
}

// SliceClone copies elements [off, off+n) into a new array. The dictionary is
// copied whole so codes stay unchanged.
func (a *CategoricalArray[C]) SliceClone(off, n int) *CategoricalArray[C] {
	checkWindow(off, n, a.codes.Len())

	return &CategoricalArray[C]{
		codes:    *a.codes.Slice(off, n),
		dict:     a.dictionary().Clone(),
		validity: a.validity.sliceClone(off, n),
	}
}

// Append concatenates other onto a. Values of other are re-interned into the
// dictionary of a, so codes of other are remapped rather than copied. It
// panics with an overflow error if the merged dictionary does not fit C, in
// which case a is left unchanged.
func (a *CategoricalArray[C]) Append(other *CategoricalArray[C]) {
	if other == a {
		other = other.Clone()
	}

	src := other.dictionary()
	used := make([]bool, src.Len())
	for i, c := range other.codes.Values() {
		if !other.isNull(i) {
			used[c] = true
		}
	}

	d := a.dictionary()
	fresh := 0
	for c, ok := range used {
		if !ok {
			continue
		}
		if _, found := d.Lookup(src.Value(c)); !found {
			fresh++
		}
	}
	if !fitsCodes[C](d.Len() + fresh) {
		panic(errs.Overflow(d.Len()+fresh, codeName[C]()))
	}

	remap := make([]C, src.Len())
	for c, ok := range used {
		if ok {
			remap[c] = a.mustIntern(src.Value(c))
		}
	}

	n := a.codes.Len()
	a.codes.Reserve(other.codes.Len())
	for i, c := range other.codes.Values() {
		if other.isNull(i) {
			a.codes.Push(0)
			continue
		}
		a.codes.Push(remap[c])
	}
	a.appendMask(n, &other.validity, other.codes.Len())
}

// Clone returns a deep copy.
func (a *CategoricalArray[C]) Clone() *CategoricalArray[C] {
	return &CategoricalArray[C]{
		codes:    *a.codes.Clone(),
		dict:     a.dictionary().Clone(),
		validity: a.validity.clone(),
	}
}
