package array

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colmem/errs"
)

func TestParallelSum(t *testing.T) {
	values := make([]int64, 100_000)
	var want int64
	for i := range values {
		values[i] = int64(i)
		if i%7 != 0 {
			want += int64(i)
		}
	}
	a := NewIntegerArray(values, nil)
	for i := 0; i < len(values); i += 7 {
		a.SetNull(i)
	}

	got, err := ParallelSum[int64](a, WithChunkSize(1000), WithWorkers(4))
	require.NoError(t, err)
	require.Equal(t, want, got)

	single, err := ParallelSum[int64](a, WithChunkSize(len(values)))
	require.NoError(t, err)
	require.Equal(t, want, single)
}

func TestParallelFilterOrder(t *testing.T) {
	values := make([]float64, 10_000)
	for i := range values {
		values[i] = float64(i % 10)
	}
	a := NewFloatArray(values, nil)

	idx, err := ParallelFilter[float64](a, func(v float64) bool { return v == 3 }, WithChunkSize(97))
	require.NoError(t, err)
	require.Len(t, idx, 1000)
	for i, v := range idx {
		require.Equal(t, i*10+3, v)
	}

	count, err := ParallelCount[float64](a, func(v float64) bool { return v > 7 }, WithChunkSize(333))
	require.NoError(t, err)
	require.Equal(t, 2000, count)
}

func TestParallelOverStrings(t *testing.T) {
	s := StringWithCapacity[uint32](5000, 0)
	for i := range 5000 {
		if i%2 == 0 {
			s.PushString("even")
		} else {
			s.PushNull()
		}
	}

	count, err := ParallelCount[string](s, func(v string) bool { return v == "even" }, WithChunkSize(128))
	require.NoError(t, err)
	require.Equal(t, 2500, count)

	w := NewWindow[string](s, 100, 1000)
	count, err = ParallelCount[string](w, func(string) bool { return true }, WithChunkSize(64))
	require.NoError(t, err)
	require.Equal(t, 500, count)
}

func TestParallelEmpty(t *testing.T) {
	var a IntegerArray[int32]
	sum, err := ParallelSum[int32](&a)
	require.NoError(t, err)
	require.Zero(t, sum)
}

func TestParallelInvalidOptions(t *testing.T) {
	a := NewIntegerArray([]int32{1}, nil)

	_, err := ParallelSum[int32](a, WithWorkers(0))
	require.ErrorIs(t, err, errs.ErrInvalidOption)

	_, err = ParallelSum[int32](a, WithChunkSize(-1))
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}
