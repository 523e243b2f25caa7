package array

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colmem/bitmap"
	"github.com/arloliu/colmem/errs"
)

func TestCategoricalPushString(t *testing.T) {
	a := CategoricalWithCapacity[uint8](4)

	c, err := a.PushString("red")
	require.NoError(t, err)
	require.Equal(t, uint8(0), c)

	c, err = a.PushString("blue")
	require.NoError(t, err)
	require.Equal(t, uint8(1), c)

	c, err = a.PushString("red")
	require.NoError(t, err)
	require.Equal(t, uint8(0), c)

	a.PushNull()

	require.Equal(t, []uint8{0, 1, 0, 0}, a.Codes())
	require.Equal(t, []string{"red", "blue"}, a.Dictionary())
	require.Equal(t, 1, a.NullCount())

	v, ok := a.Get(1)
	require.True(t, ok)
	require.Equal(t, "blue", v)
	_, ok = a.Get(3)
	require.False(t, ok)
	_, ok = a.Code(3)
	require.False(t, ok)
}

func TestCategoricalDictionaryOverflow(t *testing.T) {
	a := CategoricalWithCapacity[uint8](0)
	for i := range 256 {
		_, err := a.PushString(fmt.Sprintf("v%d", i))
		require.NoError(t, err)
	}

	_, err := a.PushString("one too many")
	require.ErrorIs(t, err, errs.ErrOverflow)
	require.Equal(t, 256, a.Len())

	_, err = a.PushString("v7")
	require.NoError(t, err)

	require.Panics(t, func() { a.Push("another") })
}

func TestCategoricalAppendOverflowLeavesArrayIntact(t *testing.T) {
	a := CategoricalWithCapacity[uint8](0)
	for i := range 250 {
		_, err := a.PushString(fmt.Sprintf("a%d", i))
		require.NoError(t, err)
	}
	a.PushNull()

	b := CategoricalWithCapacity[uint8](0)
	_, err := b.PushString("a3")
	require.NoError(t, err)
	for i := range 10 {
		_, err := b.PushString(fmt.Sprintf("b%d", i))
		require.NoError(t, err)
	}
	b.PushNull()

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		require.ErrorIs(t, err, errs.ErrOverflow)
		require.Equal(t, 251, a.Len())
		require.Equal(t, a.Len(), a.NullMask().Len())
		require.Len(t, a.Dictionary(), 250)
	}()
	a.Append(b)
}

func TestCategoricalAppendFitsExactly(t *testing.T) {
	a := CategoricalWithCapacity[uint8](0)
	for i := range 250 {
		_, err := a.PushString(fmt.Sprintf("v%d", i))
		require.NoError(t, err)
	}

	b := CategoricalWithCapacity[uint8](0)
	for i := 245; i < 256; i++ {
		_, err := b.PushString(fmt.Sprintf("v%d", i))
		require.NoError(t, err)
	}

	a.Append(b)
	require.Equal(t, 261, a.Len())
	require.Len(t, a.Dictionary(), 256)
	v, ok := a.Get(260)
	require.True(t, ok)
	require.Equal(t, "v255", v)
}

func TestNewCategoricalArray(t *testing.T) {
	a, err := NewCategoricalArray([]uint16{1, 0, 1}, []string{"x", "y"}, nil)
	require.NoError(t, err)
	v, _ := a.Get(0)
	require.Equal(t, "y", v)

	_, err = NewCategoricalArray([]uint16{2}, []string{"x", "y"}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidBufferLayout)

	// out of range codes are allowed under a null
	_, err = NewCategoricalArray([]uint16{5}, []string{"x"}, bitmap.New(1))
	require.NoError(t, err)

	_, err = NewCategoricalArray([]uint16{0}, []string{"x", "x"}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidBufferLayout)

	_, err = NewCategoricalArray([]uint16{0}, []string{"x"}, bitmap.New(2))
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

func TestNewCategoricalFromStrings(t *testing.T) {
	mask := bitmap.FromBools([]bool{true, false, true, true})
	a, err := NewCategoricalFromStrings[uint32]([]string{"b", "ignored", "a", "b"}, mask)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, a.Dictionary())
	require.Equal(t, []uint32{0, 0, 1, 0}, a.Codes())
	require.True(t, a.IsNull(1))
}

// TestCategoricalAppendRemapsCodes verifies that appending re-interns values
// into the receiving dictionary instead of copying foreign codes.
func TestCategoricalAppendRemapsCodes(t *testing.T) {
	a, err := NewCategoricalFromStrings[uint8]([]string{"a", "b"}, nil)
	require.NoError(t, err)
	b, err := NewCategoricalFromStrings[uint8]([]string{"c", "a", "c"}, nil)
	require.NoError(t, err)
	b.PushNull()

	a.Append(b)
	require.Equal(t, []string{"a", "b", "c"}, a.Dictionary())
	require.Equal(t, []uint8{0, 1, 2, 0, 2, 0}, a.Codes())
	require.Equal(t, "111110", a.NullMask().String())

	for i, want := range []string{"a", "b", "c", "a", "c"} {
		v, ok := a.Get(i)
		require.True(t, ok)
		require.Equal(t, want, v)
	}

	a.Append(a)
	require.Equal(t, 12, a.Len())
	require.Equal(t, 3, len(a.Dictionary()))
}

func TestCategoricalSetAndSliceClone(t *testing.T) {
	a, err := NewCategoricalFromStrings[uint8]([]string{"x", "y", "z"}, nil)
	require.NoError(t, err)

	a.Set(0, "w")
	require.Equal(t, []uint8{3, 1, 2}, a.Codes())

	a.SetNull(1)
	require.Equal(t, uint8(0), a.Codes()[1])

	s := a.SliceClone(1, 2)
	require.Equal(t, []uint8{0, 2}, s.Codes())
	require.Equal(t, a.Dictionary(), s.Dictionary())
	require.Equal(t, "01", s.NullMask().String())

	s.Push("new")
	require.Len(t, a.Dictionary(), 4)
	require.Len(t, s.Dictionary(), 5)
}

func TestCategoricalResize(t *testing.T) {
	a := CategoricalWithCapacity[uint16](0)
	a.Resize(3, "q")
	require.Equal(t, []uint16{0, 0, 0}, a.Codes())
	require.Equal(t, []string{"q"}, a.Dictionary())
	a.Resize(1, "")
	require.Equal(t, 1, a.Len())
	require.Equal(t, []string{"q"}, a.Dictionary())
}

func TestCategoricalZeroValue(t *testing.T) {
	var a CategoricalArray[uint8]
	require.Empty(t, a.Dictionary())
	a.Push("k")
	v, ok := a.Get(0)
	require.True(t, ok)
	require.Equal(t, "k", v)
}
