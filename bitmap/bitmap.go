// Package bitmap implements the bit-packed validity and boolean bitmap used by
// every colmem array.
//
// Bits are packed least-significant-bit first: bit i lives in byte i/8 at
// position i%8. A set bit means valid (or true). The backing storage is
// exactly ceil(Len/8) bytes and bits past Len in the final byte are always
// zero, which is the layout the Arrow C data interface expects.
package bitmap

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/bitutil"

	"github.com/arloliu/colmem/buffer"
)

// MaxChunkBits is the largest number of bits SetBitsChunk and AppendBitsChunk
// accept in one call.
const MaxChunkBits = 64

// Bitmap is a growable LSB-first bit sequence.
//
// The zero value is an empty bitmap ready to use.
type Bitmap struct {
	bits buffer.Buffer[byte]
	n    int
}

// New returns a bitmap of n cleared bits.
func New(n int) *Bitmap {
	return NewSetAll(n, false)
}

// NewSetAll returns a bitmap of n bits all set to v.
func NewSetAll(n int, v bool) *Bitmap {
	b := &Bitmap{}
	b.Resize(n, v)

	return b
}

// WithCapacity returns an empty bitmap able to hold n bits without
// reallocating.
func WithCapacity(n int) *Bitmap {
	b := &Bitmap{}
	b.bits.Reserve(byteLen(n))

	return b
}

// FromBools builds a bitmap from one bool per bit.
func FromBools(values []bool) *Bitmap {
	b := New(len(values))
	data := b.bits.Values()
	for i, v := range values {
		if v {
			data[i>>3] |= 1 << (i & 7)
		}
	}

	return b
}

// FromBytes builds a bitmap of n bits from packed bytes. The bytes are copied
// and bits past n are cleared. It panics if src holds fewer than n bits.
func FromBytes(src []byte, n int) *Bitmap {
	if n < 0 || len(src)*8 < n {
		panic(fmt.Sprintf("bitmap: %d bytes cannot hold %d bits", len(src), n))
	}

	b := &Bitmap{bits: *buffer.FromSlice(src[:byteLen(n)]), n: n}
	b.maskTrailing()

	return b
}

// Len returns the number of bits.
func (b *Bitmap) Len() int {
	return b.n
}

// Bytes returns the packed bits. The slice aliases the bitmap storage and is
// valid until the next mutation.
func (b *Bitmap) Bytes() []byte {
	return b.bits.Values()
}

// Get returns bit i. It panics if i is out of range.
func (b *Bitmap) Get(i int) bool {
	b.checkIndex(i)
	return b.GetUnchecked(i)
}

// GetUnchecked returns bit i without bounds checking against Len.
func (b *Bitmap) GetUnchecked(i int) bool {
	return b.bits.At(i>>3)&(1<<(i&7)) != 0
}

// Set sets bit i to v. It panics if i is out of range.
func (b *Bitmap) Set(i int, v bool) {
	b.checkIndex(i)
	b.SetUnchecked(i, v)
}

// SetUnchecked sets bit i to v without bounds checking against Len.
func (b *Bitmap) SetUnchecked(i int, v bool) {
	data := b.bits.Values()
	if v {
		data[i>>3] |= 1 << (i & 7)
	} else {
		data[i>>3] &^= 1 << (i & 7)
	}
}

// Append adds one bit.
func (b *Bitmap) Append(v bool) {
	if b.n&7 == 0 {
		b.bits.Push(0)
	}
	b.n++
	if v {
		b.SetUnchecked(b.n-1, true)
	}
}

// AppendCount adds n bits all set to v.
func (b *Bitmap) AppendCount(n int, v bool) {
	b.Resize(b.n+n, v)
}

// Resize sets the length to n. New bits are set to v.
func (b *Bitmap) Resize(n int, v bool) {
	if n < 0 {
		panic(fmt.Sprintf("bitmap: negative length %d", n))
	}

	old := b.n
	b.bits.Resize(byteLen(n), 0)
	b.n = n
	if n <= old {
		b.maskTrailing()
		return
	}

	if v {
		b.setRange(old, n)
	}
}

// Fill sets every bit to v.
func (b *Bitmap) Fill(v bool) {
	data := b.bits.Values()
	fill := byte(0)
	if v {
		fill = 0xff
	}
	for i := range data {
		data[i] = fill
	}
	b.maskTrailing()
}

// SetBitsChunk writes the low n bits of word starting at bit start, bit 0 of
// word landing at start. It panics if n exceeds MaxChunkBits or the range is
// out of bounds.
func (b *Bitmap) SetBitsChunk(start int, word uint64, n int) {
	if n < 0 || n > MaxChunkBits {
		panic(fmt.Sprintf("bitmap: chunk of %d bits exceeds %d", n, MaxChunkBits))
	}
	if start < 0 || start+n > b.n {
		panic(fmt.Sprintf("bitmap: chunk [%d, %d) out of range with length %d", start, start+n, b.n))
	}

	data := b.bits.Values()
	for n > 0 {
		pos := start & 7
		take := min(8-pos, n)
		mask := byte((1<<take)-1) << pos
		data[start>>3] = data[start>>3]&^mask | byte(word<<pos)&mask
		word >>= take
		start += take
		n -= take
	}
}

// AppendBitsChunk appends the low n bits of word, bit 0 first.
func (b *Bitmap) AppendBitsChunk(word uint64, n int) {
	start := b.n
	b.AppendCount(n, false)
	b.SetBitsChunk(start, word, n)
}

// CountOnes returns the number of set bits.
func (b *Bitmap) CountOnes() int {
	return bitutil.CountSetBits(b.bits.Values(), 0, b.n)
}

// CountZeros returns the number of cleared bits. For a validity bitmap this
// is the null count.
func (b *Bitmap) CountZeros() int {
	return b.n - b.CountOnes()
}

// AllSet reports whether every bit is set. It is true for an empty bitmap.
func (b *Bitmap) AllSet() bool {
	return b.CountOnes() == b.n
}

// AllUnset reports whether no bit is set. It is true for an empty bitmap.
func (b *Bitmap) AllUnset() bool {
	for _, v := range b.bits.Values() {
		if v != 0 {
			return false
		}
	}

	return true
}

// Invert returns a new bitmap with every bit flipped.
func (b *Bitmap) Invert() *Bitmap {
	out := New(b.n)
	if b.n > 0 {
		bitutil.InvertBitmap(b.bits.Values(), 0, b.n, out.bits.Values(), 0)
		out.maskTrailing()
	}

	return out
}

// Union returns the bitwise OR of two bitmaps of equal length.
func (b *Bitmap) Union(other *Bitmap) *Bitmap {
	return b.combine(other, bitutil.BitmapOr)
}

// Intersect returns the bitwise AND of two bitmaps of equal length.
func (b *Bitmap) Intersect(other *Bitmap) *Bitmap {
	return b.combine(other, bitutil.BitmapAnd)
}

type bitmapOp func(left, right []byte, lOffset, rOffset int64, out []byte, outOffset int64, length int64)

func (b *Bitmap) combine(other *Bitmap, op bitmapOp) *Bitmap {
	if b.n != other.n {
		panic(fmt.Sprintf("bitmap: length mismatch %d != %d", b.n, other.n))
	}

	out := New(b.n)
	if b.n > 0 {
		op(b.bits.Values(), other.bits.Values(), 0, 0, out.bits.Values(), 0, int64(b.n))
	}

	return out
}

// SliceClone returns a new bitmap holding bits [off, off+n), re-based to start
// at bit zero. It panics if the window is out of range.
func (b *Bitmap) SliceClone(off, n int) *Bitmap {
	b.checkWindow(off, n)

	out := New(n)
	if n > 0 {
		bitutil.CopyBitmap(b.bits.Values(), off, n, out.bits.Values(), 0)
	}

	return out
}

// ExtendFromBitmap appends every bit of other.
func (b *Bitmap) ExtendFromBitmap(other *Bitmap) {
	b.appendPacked(other.bits.Values(), other.n)
}

// ExtendFromBytes appends the first n bits of the packed bytes src. It panics
// if src holds fewer than n bits.
func (b *Bitmap) ExtendFromBytes(src []byte, n int) {
	if n < 0 || len(src)*8 < n {
		panic(fmt.Sprintf("bitmap: %d bytes cannot hold %d bits", len(src), n))
	}
	b.appendPacked(src, n)
}

func (b *Bitmap) appendPacked(src []byte, n int) {
	if n == 0 {
		return
	}

	shift := b.n & 7
	srcBytes := byteLen(n)
	if shift == 0 {
		b.bits.Extend(src[:srcBytes]...)
		b.n += n
		b.maskTrailing()

		return
	}

	base := b.n >> 3
	newLen := b.n + n
	b.bits.Resize(byteLen(newLen), 0)
	dst := b.bits.Values()
	for i := range srcBytes {
		v := src[i]
		dst[base+i] |= v << shift
		if base+i+1 < len(dst) {
			dst[base+i+1] |= v >> (8 - shift)
		}
	}
	b.n = newLen
	b.maskTrailing()
}

// IterSet yields the index of every set bit in ascending order.
func (b *Bitmap) IterSet() iter.Seq[int] {
	return b.iterBits(false)
}

// IterCleared yields the index of every cleared bit in ascending order.
func (b *Bitmap) IterCleared() iter.Seq[int] {
	return b.iterBits(true)
}

func (b *Bitmap) iterBits(invert bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		data := b.bits.Values()
		for i, v := range data {
			if invert {
				v = ^v
			}
			for v != 0 {
				idx := i<<3 + bits.TrailingZeros8(v)
				if idx >= b.n {
					return
				}
				if !yield(idx) {
					return
				}
				v &= v - 1
			}
		}
	}
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{bits: *b.bits.Clone(), n: b.n}
}

// Equal reports whether both bitmaps have the same length and bits.
func (b *Bitmap) Equal(other *Bitmap) bool {
	return b.n == other.n && b.bits.Equal(&other.bits)
}

// ToBools unpacks the bitmap into one bool per bit.
func (b *Bitmap) ToBools() []bool {
	out := make([]bool, b.n)
	for i := range out {
		out[i] = b.GetUnchecked(i)
	}

	return out
}

// String renders the bits in logical order, for example "1011".
func (b *Bitmap) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := range b.n {
		if b.GetUnchecked(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

func (b *Bitmap) setRange(from, to int) {
	if to > from {
		bitutil.SetBitsTo(b.bits.Values(), int64(from), int64(to-from), true)
	}
}

func (b *Bitmap) maskTrailing() {
	if rem := b.n & 7; rem != 0 {
		data := b.bits.Values()
		data[len(data)-1] &= byte(1<<rem) - 1
	}
}

func (b *Bitmap) checkIndex(i int) {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("bitmap: index %d out of range with length %d", i, b.n))
	}
}

func (b *Bitmap) checkWindow(off, n int) {
	if off < 0 || n < 0 || off+n > b.n {
		panic(fmt.Sprintf("bitmap: window [%d, %d) out of range with length %d", off, off+n, b.n))
	}
}

func byteLen(n int) int {
	return (n + 7) >> 3
}
