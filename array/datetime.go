package array

import (
	"fmt"
	"math"
	"time"

	"github.com/arloliu/colmem/bitmap"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/format"
)

// DatetimeArray is a nullable array of temporal values stored as integer
// counts of Unit since the Unix epoch (or since midnight for time-of-day
// fields).
type DatetimeArray[T Temporal] struct {
	fixed[T]
	unit format.TimeUnit
}

// NewDatetimeArray builds an array from copies of values and mask in the given
// unit. mask may be nil, meaning every element is valid. It panics on an
// unknown unit.
func NewDatetimeArray[T Temporal](values []T, mask *bitmap.Bitmap, unit format.TimeUnit) *DatetimeArray[T] {
	if !unit.Valid() {
		panic(fmt.Sprintf("array: invalid time unit %d", unit))
	}

	return &DatetimeArray[T]{fixed: newFixed(values, mask), unit: unit}
}

// DatetimeWithCapacity returns an empty array in unit able to hold n elements
// without reallocating.
func DatetimeWithCapacity[T Temporal](n int, unit format.TimeUnit) *DatetimeArray[T] {
	a := NewDatetimeArray[T](nil, nil, unit)
	a.data.Reserve(n)

	return a
}

// Unit returns the time unit of the stored values.
func (a *DatetimeArray[T]) Unit() format.TimeUnit {
	return a.unit
}

// AsTime returns element i as a UTC time.Time.
func (a *DatetimeArray[T]) AsTime(i int) (time.Time, bool) {
	v, ok := a.Get(i)
	if !ok {
		return time.Time{}, false
	}

	return ToTime(int64(v), a.unit), true
}

// PushTime appends t converted to the array unit. It panics with an overflow
// error if the value does not fit T.
func (a *DatetimeArray[T]) PushTime(t time.Time) {
	v := FromTime(t, a.unit)
	c, err := CastInteger[T](v)
	if err != nil {
		panic(err)
	}
	a.Push(c)
}

// SliceClone copies elements [off, off+n) into a new array.
func (a *DatetimeArray[T]) SliceClone(off, n int) *DatetimeArray[T] {
	return &DatetimeArray[T]{fixed: a.sliceClone(off, n), unit: a.unit}
}

// Append concatenates other onto a. Values of other are rescaled when the
// units differ. It panics with an overflow error if a rescaled value does not
// fit T; a is left unchanged in that case.
func (a *DatetimeArray[T]) Append(other *DatetimeArray[T]) {
	if other.unit != a.unit {
		var err error
		if other, err = other.ConvertUnit(a.unit); err != nil {
			panic(err)
		}
	}
	a.appendFrom(&other.fixed)
}

// Clone returns a deep copy.
func (a *DatetimeArray[T]) Clone() *DatetimeArray[T] {
	return &DatetimeArray[T]{fixed: a.clone(), unit: a.unit}
}

// ConvertUnit returns a copy of a with every value rescaled to unit.
// Conversions to a coarser unit truncate toward zero. A valid value that
// does not fit T in the finer unit returns an overflow error; null slots are
// zeroed.
func (a *DatetimeArray[T]) ConvertUnit(unit format.TimeUnit) (*DatetimeArray[T], error) {
	out := a.Clone()
	out.unit = unit
	if unit == a.unit {
		return out, nil
	}

	values := out.data.Values()
	for i, v := range values {
		if out.isNull(i) {
			values[i] = 0
			continue
		}
		r, ok := rescale(int64(v), a.unit, unit)
		if !ok {
			return nil, fmt.Errorf("element %d: %w", i, errs.Overflow(fmt.Sprintf("%d %s", v, a.unit), typeName[T]()+"["+unit.String()+"]"))
		}
		c, err := CastInteger[T](r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		values[i] = c
	}

	return out, nil
}

// unitNanos is the length of one unit in nanoseconds.
func unitNanos(u format.TimeUnit) int64 {
	switch u {
	case format.UnitSeconds:
		return int64(time.Second)
	case format.UnitMilliseconds:
		return int64(time.Millisecond)
	case format.UnitMicroseconds:
		return int64(time.Microsecond)
	case format.UnitDays:
		return int64(24 * time.Hour)
	default:
		return 1
	}
}

// rescale converts v between units, reporting false if the product
// overflows int64.
func rescale(v int64, from, to format.TimeUnit) (int64, bool) {
	f, t := unitNanos(from), unitNanos(to)
	if f < t {
		return v / (t / f), true
	}

	m := f / t
	if v > math.MaxInt64/m || v < math.MinInt64/m {
		return 0, false
	}

	return v * m, true
}

// ToTime converts a count of unit since the Unix epoch to a UTC time.Time.
func ToTime(v int64, unit format.TimeUnit) time.Time {
	switch unit {
	case format.UnitSeconds:
		return time.Unix(v, 0).UTC()
	case format.UnitMilliseconds:
		return time.UnixMilli(v).UTC()
	case format.UnitMicroseconds:
		return time.UnixMicro(v).UTC()
	case format.UnitDays:
		return time.Unix(v*86400, 0).UTC()
	default:
		return time.Unix(0, v).UTC()
	}
}

// FromTime converts t to a count of unit since the Unix epoch. Conversion to
// days floors toward negative infinity.
func FromTime(t time.Time, unit format.TimeUnit) int64 {
	switch unit {
	case format.UnitSeconds:
		return t.Unix()
	case format.UnitMilliseconds:
		return t.UnixMilli()
	case format.UnitMicroseconds:
		return t.UnixMicro()
	case format.UnitDays:
		s := t.Unix()
		d := s / 86400
		if s%86400 < 0 {
			d--
		}

		return d
	default:
		return t.UnixNano()
	}
}
