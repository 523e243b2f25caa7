package array

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/format"
)

func TestDatetimeAsTime(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		unit format.TimeUnit
		v    int64
		want time.Time
	}{
		{format.UnitSeconds, ts.Unix(), ts},
		{format.UnitMilliseconds, ts.UnixMilli(), ts},
		{format.UnitMicroseconds, ts.UnixMicro(), ts},
		{format.UnitNanoseconds, ts.UnixNano(), ts},
		{format.UnitDays, 19783, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			a := NewDatetimeArray([]int64{tt.v}, nil, tt.unit)
			got, ok := a.AsTime(0)
			require.True(t, ok)
			require.True(t, tt.want.Equal(got), "got %s", got)
			require.Equal(t, tt.unit, a.Unit())
			require.Equal(t, tt.v, FromTime(tt.want, tt.unit))
		})
	}
}

func TestDatetimeFromTimeDaysBeforeEpoch(t *testing.T) {
	before := time.Date(1969, 12, 31, 23, 0, 0, 0, time.UTC)
	require.Equal(t, int64(-1), FromTime(before, format.UnitDays))
}

func TestDatetimePushTime(t *testing.T) {
	a := DatetimeWithCapacity[int32](2, format.UnitDays)
	a.PushTime(time.Date(1970, 1, 11, 0, 0, 0, 0, time.UTC))
	a.PushNull()
	require.Equal(t, []int32{10, 0}, a.Values())

	_, ok := a.AsTime(1)
	require.False(t, ok)

	s := DatetimeWithCapacity[int32](1, format.UnitSeconds)
	require.Panics(t, func() { s.PushTime(time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)) })
}

func TestDatetimeConvertUnit(t *testing.T) {
	a := NewDatetimeArray([]int64{1_500, -1_500}, nil, format.UnitMilliseconds)

	s, err := a.ConvertUnit(format.UnitSeconds)
	require.NoError(t, err)
	require.Equal(t, []int64{1, -1}, s.Values())
	require.Equal(t, format.UnitSeconds, s.Unit())

	us, err := a.ConvertUnit(format.UnitMicroseconds)
	require.NoError(t, err)
	require.Equal(t, []int64{1_500_000, -1_500_000}, us.Values())
	require.Equal(t, []int64{1_500, -1_500}, a.Values())
}

func TestDatetimeConvertUnitOverflow(t *testing.T) {
	narrow := NewDatetimeArray([]int32{1, 3_000_000}, nil, format.UnitSeconds)
	_, err := narrow.ConvertUnit(format.UnitMilliseconds)
	require.ErrorIs(t, err, errs.ErrOverflow)

	wide := NewDatetimeArray([]int64{math.MaxInt64 / 10, math.MinInt64 / 10}, nil, format.UnitSeconds)
	_, err = wide.ConvertUnit(format.UnitNanoseconds)
	require.ErrorIs(t, err, errs.ErrOverflow)

	nulls := NewDatetimeArray([]int32{3_000_000, 2}, nil, format.UnitSeconds)
	nulls.SetNull(0)
	ms, err := nulls.ConvertUnit(format.UnitMilliseconds)
	require.NoError(t, err)
	require.Equal(t, []int32{0, 2_000}, ms.Values())
	require.Equal(t, 1, ms.NullCount())
}

func TestDatetimeAppendOverflowPanics(t *testing.T) {
	a := NewDatetimeArray([]int32{5}, nil, format.UnitMilliseconds)
	b := NewDatetimeArray([]int32{3_000_000}, nil, format.UnitSeconds)

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		require.ErrorIs(t, err, errs.ErrOverflow)
		require.Equal(t, []int32{5}, a.Values())
	}()
	a.Append(b)
}

func TestDatetimeAppendRescales(t *testing.T) {
	a := NewDatetimeArray([]int64{1}, nil, format.UnitSeconds)
	b := NewDatetimeArray([]int64{2_000}, nil, format.UnitMilliseconds)
	b.PushNull()

	a.Append(b)
	require.Equal(t, []int64{1, 2, 0}, a.Values())
	require.Equal(t, "110", a.NullMask().String())

	s := a.SliceClone(1, 2)
	require.Equal(t, format.UnitSeconds, s.Unit())
	require.Equal(t, 1, s.NullCount())
}

func TestDatetimeInvalidUnit(t *testing.T) {
	require.Panics(t, func() { NewDatetimeArray([]int64{1}, nil, format.TimeUnit(0)) })
}
