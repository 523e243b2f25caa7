package array

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colmem/bitmap"
	"github.com/arloliu/colmem/errs"
)

// requireOffsetsValid checks the offsets layout of a string array.
func requireOffsetsValid[O Offset](t *testing.T, a *StringArray[O]) {
	t.Helper()

	offs := a.Offsets()
	require.Len(t, offs, a.Len()+1)
	require.Zero(t, offs[0])
	for i := 1; i < len(offs); i++ {
		require.LessOrEqual(t, offs[i-1], offs[i])
	}
	require.Equal(t, uint64(len(a.Data())), uint64(offs[len(offs)-1]))
}

func TestStringPushAndGet(t *testing.T) {
	a := NewStringArray[uint32]([]string{"ab", "", "cde"}, nil)
	a.PushNull()
	a.PushString("f")

	require.Equal(t, 5, a.Len())
	require.Equal(t, []uint32{0, 2, 2, 5, 5, 6}, a.Offsets())
	require.Equal(t, "abcdef", string(a.Data()))
	requireOffsetsValid(t, a)

	v, ok := a.Get(2)
	require.True(t, ok)
	require.Equal(t, "cde", v)

	v, ok = a.Get(1)
	require.True(t, ok)
	require.Equal(t, "", v)

	_, ok = a.Get(3)
	require.False(t, ok)
	_, ok = a.Get(5)
	require.False(t, ok)

	b, ok := a.GetBytes(0)
	require.True(t, ok)
	require.Equal(t, []byte("ab"), b)

	require.Equal(t, []string{"ab", "", "cde", "", "f"}, a.Strings())
	require.Equal(t, `["ab", "", "cde", null, "f"]`, a.String())
}

func TestStringZeroValue(t *testing.T) {
	var a StringArray[uint64]
	require.Equal(t, 0, a.Len())
	require.Equal(t, []uint64{0}, a.Offsets())

	a.PushBytes([]byte("xy"))
	a.PushNulls(2)
	require.Equal(t, 3, a.Len())
	require.Equal(t, 2, a.NullCount())
	requireOffsetsValid(t, &a)
}

func TestStringSetString(t *testing.T) {
	tests := []struct {
		name    string
		idx     int
		value   string
		want    []string
		offsets []uint32
	}{
		{"same length", 1, "XY", []string{"a", "XY", "cde"}, []uint32{0, 1, 3, 6}},
		{"longer", 0, "AAAA", []string{"AAAA", "bb", "cde"}, []uint32{0, 4, 6, 9}},
		{"shorter", 2, "c", []string{"a", "bb", "c"}, []uint32{0, 1, 3, 4}},
		{"empty", 1, "", []string{"a", "", "cde"}, []uint32{0, 1, 1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewStringArray[uint32]([]string{"a", "bb", "cde"}, nil)
			a.SetString(tt.idx, tt.value)
			require.Equal(t, tt.want, a.Strings())
			require.Equal(t, tt.offsets, a.Offsets())
			requireOffsetsValid(t, a)
		})
	}

	a := NewStringArray[uint32]([]string{"a"}, nil)
	require.Panics(t, func() { a.SetString(1, "x") })
}

func TestStringSetNull(t *testing.T) {
	a := NewStringArray[uint32]([]string{"a", "bb", "c"}, nil)
	a.SetNull(1)
	require.True(t, a.IsNull(1))
	require.Equal(t, "ac", string(a.Data()))
	requireOffsetsValid(t, a)

	a.Set(1, "zz")
	require.False(t, a.IsNull(1))
	require.Equal(t, []string{"a", "zz", "c"}, a.Strings())
}

func TestStringSliceClone(t *testing.T) {
	a := NewStringArray[uint64]([]string{"one", "two", "three", "four"}, nil)
	a.SetNull(1)

	s := a.SliceClone(1, 3)
	require.Equal(t, 3, s.Len())
	require.Equal(t, uint64(0), s.Offsets()[0])
	require.Equal(t, "threefour", string(s.Data()))
	require.Equal(t, "011", s.NullMask().String())
	requireOffsetsValid(t, s)

	v, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, "three", v)

	full := a.SliceClone(0, a.Len())
	require.Equal(t, a.Offsets(), full.Offsets())
	require.Equal(t, a.Data(), full.Data())

	empty := a.SliceClone(4, 0)
	require.Equal(t, 0, empty.Len())
	requireOffsetsValid(t, empty)

	require.Panics(t, func() { a.SliceClone(2, 3) })
}

func TestStringAppend(t *testing.T) {
	a := NewStringArray[uint32]([]string{"x", "yy"}, nil)
	b := NewStringArray[uint32]([]string{"zzz"}, nil)
	b.PushNull()

	a.Append(b)
	require.Equal(t, []uint32{0, 1, 3, 6, 6}, a.Offsets())
	require.Equal(t, "1110", a.NullMask().String())
	requireOffsetsValid(t, a)

	a.Append(a)
	require.Equal(t, 8, a.Len())
	require.Equal(t, []string{"x", "yy", "zzz", "", "x", "yy", "zzz", ""}, a.Strings())
	requireOffsetsValid(t, a)
}

func TestStringResize(t *testing.T) {
	a := NewStringArray[uint32]([]string{"a", "b", "c"}, nil)
	a.Resize(1, "")
	require.Equal(t, []string{"a"}, a.Strings())
	require.Equal(t, "a", string(a.Data()))

	a.Resize(3, "zz")
	require.Equal(t, []string{"a", "zz", "zz"}, a.Strings())
	requireOffsetsValid(t, a)
}

func TestStringFromBuffers(t *testing.T) {
	a, err := NewStringArrayFromBuffers([]uint32{0, 1, 3}, []byte("abc"), nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "bc"}, a.Strings())

	tests := []struct {
		name    string
		offsets []uint32
		data    string
	}{
		{"empty offsets", nil, ""},
		{"non-zero start", []uint32{1, 2}, "ab"},
		{"decreasing", []uint32{0, 2, 1}, "ab"},
		{"wrong end", []uint32{0, 1}, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStringArrayFromBuffers(tt.offsets, []byte(tt.data), nil)
			require.ErrorIs(t, err, errs.ErrInvalidBufferLayout)
		})
	}

	_, err = NewStringArrayFromBuffers([]uint32{0, 1}, []byte("a"), bitmap.New(2))
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

func TestStringClone(t *testing.T) {
	a := NewStringArray[uint32]([]string{"a"}, nil)
	c := a.Clone()
	c.SetString(0, "bbb")
	require.Equal(t, []string{"a"}, a.Strings())
	require.True(t, c.DataBuffer().IsAligned())
	require.True(t, c.OffsetsBuffer().IsAligned())
}

func TestStringNullSliceClone(t *testing.T) {
	a := StringWithCapacity[uint32](3, 0)
	a.PushString("ab")
	a.PushNull()
	a.PushString("c")
	require.Len(t, a.Data(), 3)
	requireOffsetsValid(t, a)

	s := a.SliceClone(1, 2)
	_, ok := s.Get(0)
	require.False(t, ok)
	v, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, "c", v)
	requireOffsetsValid(t, s)
}
