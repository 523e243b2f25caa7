package column

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colmem/array"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/format"
)

func TestNewKinds(t *testing.T) {
	cat, err := array.NewCategoricalFromStrings[uint16]([]string{"a"}, nil)
	require.NoError(t, err)

	tests := []struct {
		arr  Array
		kind Kind
	}{
		{NewNull(2), KindNull},
		{New(array.NewBooleanArray([]bool{true}, nil)), KindBoolean},
		{New(array.NewIntegerArray([]int8{1}, nil)), KindInt8},
		{New(array.NewIntegerArray([]int16{1}, nil)), KindInt16},
		{New(array.NewIntegerArray([]int32{1}, nil)), KindInt32},
		{New(array.NewIntegerArray([]int64{1}, nil)), KindInt64},
		{New(array.NewIntegerArray([]uint8{1}, nil)), KindUInt8},
		{New(array.NewIntegerArray([]uint16{1}, nil)), KindUInt16},
		{New(array.NewIntegerArray([]uint32{1}, nil)), KindUInt32},
		{New(array.NewIntegerArray([]uint64{1}, nil)), KindUInt64},
		{New(array.NewFloatArray([]float32{1}, nil)), KindFloat32},
		{New(array.NewFloatArray([]float64{1}, nil)), KindFloat64},
		{New(array.NewStringArray[uint32]([]string{"x"}, nil)), KindString32},
		{New(array.NewStringArray[uint64]([]string{"x"}, nil)), KindString64},
		{New(cat), KindCategorical16},
		{New(array.NewDatetimeArray([]int32{1}, nil, format.UnitDays)), KindDatetime32},
		{New(array.NewDatetimeArray([]int64{1}, nil, format.UnitMilliseconds)), KindDatetime64},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			require.Equal(t, tt.kind, tt.arr.Kind())
			require.True(t, tt.arr.Kind().Accepts(tt.kind.DefaultType()))
			require.Positive(t, tt.arr.Len())
		})
	}
}

type otherArray struct{ array.NullArray }

func (o *otherArray) Clone() *otherArray              { return o }
func (o *otherArray) SliceClone(int, int) *otherArray { return o }
func (o *otherArray) Append(*otherArray)              {}

func TestNewUnsupportedPanics(t *testing.T) {
	require.PanicsWithError(t, errs.ErrUnsupportedKind.Error()+": *column.otherArray", func() {
		New(&otherArray{})
	})
}

func TestZeroArray(t *testing.T) {
	var a Array
	require.Equal(t, KindNull, a.Kind())
	require.Equal(t, 0, a.Len())
	require.True(t, a.IsEmpty())
	require.Equal(t, 0, a.NullCount())
	require.Equal(t, int64(0), a.RefCount())

	nulls, ok := InnerCheck[*array.NullArray](a)
	require.True(t, ok)
	require.Equal(t, 0, nulls.Len())
	require.NotPanics(t, func() { Inner[*array.NullArray](a) })

	_, ok = InnerCheck[*array.IntegerArray[int32]](a)
	require.False(t, ok)

	var b Array
	InnerMut[*array.NullArray](&b).PushNulls(2)
	require.Equal(t, 2, b.Len())
	require.Equal(t, 0, a.Len())
	require.Equal(t, 0, Array{}.Len())

	a.ConcatArray(NewNull(3))
	require.Equal(t, KindNull, a.Kind())
	require.Equal(t, 3, a.Len())
	require.Equal(t, 3, a.NullCount())
}

func TestConcatEmptyNullMismatchPanics(t *testing.T) {
	ints := New(array.NewIntegerArray([]int32{1, 2}, nil))

	for name, base := range map[string]Array{"zero": {}, "empty": NewNull(0)} {
		t.Run(name, func(t *testing.T) {
			a := base
			defer func() {
				err, ok := recover().(error)
				require.True(t, ok)
				require.ErrorIs(t, err, errs.ErrIncompatibleType)
				require.Equal(t, KindNull, a.Kind())
			}()
			a.ConcatArray(ints)
		})
	}
}

func TestInner(t *testing.T) {
	ints := array.NewIntegerArray([]int32{1, 2, 3}, nil)
	a := New(ints)

	require.Same(t, ints, Inner[*array.IntegerArray[int32]](a))

	got, ok := InnerCheck[*array.IntegerArray[int32]](a)
	require.True(t, ok)
	require.Same(t, ints, got)

	_, ok = InnerCheck[*array.IntegerArray[int64]](a)
	require.False(t, ok)

	_, ok = InnerCheck[*array.FloatArray[float64]](a)
	require.False(t, ok)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, isErr := r.(error)
		require.True(t, isErr)
		require.ErrorIs(t, err, errs.ErrIncompatibleType)

		var convErr *errs.ConversionError
		require.True(t, errors.As(err, &convErr))
		require.Equal(t, "Int32", convErr.From)
	}()
	Inner[*array.IntegerArray[int64]](a)
}

// TestCopyOnWrite verifies that shared payloads are copied before in-place
// writes and that unique payloads are mutated directly.
func TestCopyOnWrite(t *testing.T) {
	a := New(array.NewIntegerArray([]int64{1, 2}, nil))
	require.True(t, a.IsUnique())

	b := a.Clone()
	require.Equal(t, int64(2), a.RefCount())
	require.Same(t, Inner[*array.IntegerArray[int64]](a), Inner[*array.IntegerArray[int64]](b))

	mut := InnerMut[*array.IntegerArray[int64]](&b)
	mut.Set(0, 100)

	require.True(t, a.IsUnique())
	require.True(t, b.IsUnique())
	require.Equal(t, []int64{1, 2}, Inner[*array.IntegerArray[int64]](a).Values())
	require.Equal(t, []int64{100, 2}, Inner[*array.IntegerArray[int64]](b).Values())

	orig := Inner[*array.IntegerArray[int64]](a)
	require.Same(t, orig, InnerMut[*array.IntegerArray[int64]](&a))

	require.Panics(t, func() { InnerMut[*array.FloatArray[float32]](&a) })
}

func TestRelease(t *testing.T) {
	a := New(array.NewIntegerArray([]int64{1}, nil))
	b := a.Clone()
	b.Release()
	require.True(t, a.IsUnique())
	require.Equal(t, KindNull, b.Kind())
	require.Equal(t, 0, b.Len())
}

func TestArraySliceClone(t *testing.T) {
	s := array.NewStringArray[uint32]([]string{"a", "b", "c", "d"}, nil)
	s.SetNull(2)
	a := New(s)

	full := a.SliceClone(0, a.Len())
	require.Equal(t, a.Kind(), full.Kind())
	require.Equal(t, s.Strings(), Inner[*array.StringArray[uint32]](full).Strings())
	require.Equal(t, 1, full.NullCount())

	part := a.SliceClone(1, 2)
	require.Equal(t, 2, part.Len())
	require.True(t, part.IsNull(1))
	require.True(t, part.IsUnique())

	require.Panics(t, func() { a.SliceClone(3, 2) })
}

func TestConcatArray(t *testing.T) {
	left := New(array.NewIntegerArray([]int32{1, 2}, nil))
	shared := left.Clone()

	rightInts := array.NewIntegerArray([]int32{3}, nil)
	rightInts.PushNull()
	left.ConcatArray(New(rightInts))

	require.Equal(t, []int32{1, 2, 3, 0}, Inner[*array.IntegerArray[int32]](left).Values())
	require.Equal(t, 1, left.NullCount())
	require.Equal(t, []int32{1, 2}, Inner[*array.IntegerArray[int32]](shared).Values())

	// concatenating with a shared copy of itself copies first
	before := Inner[*array.IntegerArray[int32]](left)
	left.ConcatArray(left.Clone())
	require.Equal(t, 8, left.Len())
	require.NotSame(t, before, Inner[*array.IntegerArray[int32]](left))

	unique := New(array.NewIntegerArray([]int32{7}, nil))
	p := Inner[*array.IntegerArray[int32]](unique)
	unique.ConcatArray(New(array.NewIntegerArray([]int32{8}, nil)))
	require.Same(t, p, Inner[*array.IntegerArray[int32]](unique))
	require.Equal(t, []int32{7, 8}, p.Values())
}

func TestConcatArrayMismatchPanics(t *testing.T) {
	a := New(array.NewIntegerArray([]int32{1}, nil))
	b := New(array.NewIntegerArray([]int64{1}, nil))

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		require.ErrorIs(t, err, errs.ErrIncompatibleType)
	}()
	a.ConcatArray(b)
}

func TestConcatCategoricalRemaps(t *testing.T) {
	x, err := array.NewCategoricalFromStrings[uint8]([]string{"a", "b"}, nil)
	require.NoError(t, err)
	y, err := array.NewCategoricalFromStrings[uint8]([]string{"b", "c"}, nil)
	require.NoError(t, err)

	a := New(x)
	a.ConcatArray(New(y))

	got := Inner[*array.CategoricalArray[uint8]](a)
	require.Equal(t, []uint8{0, 1, 1, 2}, got.Codes())
	require.Equal(t, []string{"a", "b", "c"}, got.Dictionary())
}

func TestArrayWindow(t *testing.T) {
	ints := array.NewIntegerArray([]int64{1, 2, 3, 4, 5}, nil)
	ints.SetNull(2)
	a := New(ints)

	w := a.Window(1, 3)
	require.Equal(t, 3, w.Len())
	require.Equal(t, 1, w.Offset())
	require.Equal(t, KindInt64, w.Kind())
	require.Equal(t, 1, w.NullCount())
	require.True(t, w.IsNull(1))
	require.False(t, w.IsNull(0))
	require.Equal(t, int64(1), a.RefCount())

	m := w.Materialize()
	require.Equal(t, []int64{2, 0, 4}, Inner[*array.IntegerArray[int64]](m).Values())

	sub := w.Sub(1, 2)
	require.Equal(t, 2, sub.Offset())
	require.Equal(t, 1, sub.NullCount())

	require.Panics(t, func() { a.Window(4, 2) })
	require.Panics(t, func() { w.IsNull(3) })
	require.Panics(t, func() { w.Sub(2, 2) })
}

func TestArrayString(t *testing.T) {
	a := New(array.NewFloatArray([]float64{1, 2}, nil))
	require.Equal(t, "Float64(len=2, nulls=0)", a.String())
}
