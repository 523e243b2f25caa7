package column

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colmem/array"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/format"
)

func nullableInts(t *testing.T, values []int32, nullAt ...int) Array {
	t.Helper()

	a := array.NewIntegerArray(values, nil)
	for _, i := range nullAt {
		a.SetNull(i)
	}

	return New(a)
}

func TestNewColumn(t *testing.T) {
	field, err := NewField("n", format.TypeInt32, true)
	require.NoError(t, err)

	col, err := NewColumn(field, nullableInts(t, []int32{1, 2, 3}, 1))
	require.NoError(t, err)
	require.Equal(t, "n", col.Name())
	require.Equal(t, 3, col.Len())
	require.Equal(t, 1, col.NullCount())
	require.Equal(t, "n: Int32? Int32(len=3, nulls=1)", col.String())
}

func TestNewColumnErrors(t *testing.T) {
	intField, err := NewField("n", format.TypeInt64, false)
	require.NoError(t, err)

	_, err = NewColumn(intField, nullableInts(t, []int32{1}))
	require.ErrorIs(t, err, errs.ErrTypeError)

	strict, err := NewField("n", format.TypeInt32, false)
	require.NoError(t, err)
	_, err = NewColumn(strict, nullableInts(t, []int32{1, 2}, 0))
	require.ErrorIs(t, err, errs.ErrNullableMismatch)

	ms, err := NewField("ts", format.TypeTimestamp, false, WithTimeUnit(format.UnitMilliseconds))
	require.NoError(t, err)
	_, err = NewColumn(ms, New(array.NewDatetimeArray([]int64{1}, nil, format.UnitSeconds)))
	require.ErrorIs(t, err, errs.ErrTypeError)

	// a Null payload fits any field type
	_, err = NewColumn(intField, NewNull(0))
	require.NoError(t, err)
}

func TestColumnRenameAndClone(t *testing.T) {
	col, err := NewColumnFromArray("a", nullableInts(t, []int32{1, 2}))
	require.NoError(t, err)

	renamed := col.Rename("b")
	require.Equal(t, "b", renamed.Name())
	require.Equal(t, "a", col.Name())
	require.Equal(t, int64(2), col.Array().RefCount())

	clone := col.Clone()
	require.Equal(t, int64(3), col.Array().RefCount())

	clone.Release()
	renamed.Release()
	require.True(t, col.Array().IsUnique())
	require.Equal(t, 0, clone.Len())
}

func TestColumnSliceCloneAndWindow(t *testing.T) {
	col, err := NewColumnFromArray("a", nullableInts(t, []int32{1, 2, 3, 4}, 2))
	require.NoError(t, err)

	part := col.SliceClone(1, 2)
	require.Equal(t, col.Field(), part.Field())
	require.Equal(t, 1, part.NullCount())
	require.Equal(t, []int32{2, 0}, Inner[*array.IntegerArray[int32]](part.Array()).Values())

	w := col.Window(2, 2)
	require.Equal(t, 1, w.NullCount())
	require.True(t, w.IsNull(0))
}

func TestColumnConcat(t *testing.T) {
	a, err := NewColumnFromArray("a", nullableInts(t, []int32{1, 2}), WithNullable(true))
	require.NoError(t, err)
	b, err := NewColumnFromArray("b", nullableInts(t, []int32{3, 4}, 0))
	require.NoError(t, err)

	require.NoError(t, a.Concat(b))
	require.Equal(t, 4, a.Len())
	require.Equal(t, 1, a.NullCount())
	require.Equal(t, []int32{1, 2, 0, 4}, Inner[*array.IntegerArray[int32]](a.Array()).Values())

	strict, err := NewColumnFromArray("s", nullableInts(t, []int32{1}))
	require.NoError(t, err)
	require.ErrorIs(t, strict.Concat(b), errs.ErrNullableMismatch)
	require.Equal(t, 1, strict.Len())

	wide, err := NewColumnFromArray("w", New(array.NewIntegerArray([]int64{1}, nil)))
	require.NoError(t, err)
	require.ErrorIs(t, a.Concat(wide), errs.ErrIncompatibleType)
}

func TestColumnArrayBorrowAndSnapshot(t *testing.T) {
	tail, err := NewColumnFromArray("b", nullableInts(t, []int32{3}))
	require.NoError(t, err)

	t.Run("borrow sees concat", func(t *testing.T) {
		col, err := NewColumnFromArray("a", nullableInts(t, []int32{1, 2}))
		require.NoError(t, err)

		borrowed := col.Array()
		require.NoError(t, col.Concat(tail))
		require.Equal(t, 3, col.Len())
		require.Equal(t, 3, borrowed.Len())
	})

	t.Run("snapshot is kept", func(t *testing.T) {
		col, err := NewColumnFromArray("a", nullableInts(t, []int32{1, 2}))
		require.NoError(t, err)

		snapshot := col.Array().Clone()
		require.NoError(t, col.Concat(tail))
		require.Equal(t, 3, col.Len())
		require.Equal(t, []int32{1, 2}, Inner[*array.IntegerArray[int32]](snapshot).Values())
		require.True(t, snapshot.IsUnique())
	})
}

func TestColumnRefreshNullCount(t *testing.T) {
	col, err := NewColumnFromArray("a", nullableInts(t, []int32{1, 2}), WithNullable(true))
	require.NoError(t, err)

	arr := col.Array()
	InnerMut[*array.IntegerArray[int32]](&arr).SetNull(0)
	col.array = arr

	require.Equal(t, 0, col.NullCount())
	require.Equal(t, 1, col.RefreshNullCount())
}
