package column

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/colmem/array"
	"github.com/arloliu/colmem/bitmap"
	"github.com/arloliu/colmem/format"
)

// The accessors in this file convert an Array into another family on a best
// effort basis. The null mask of the source is preserved, and a value that
// cannot be converted becomes the zero value and null.

// Num returns a numeric view of a.
//
//   - Integer and float arrays are returned as is (a new reference).
//   - Boolean becomes Int32 with 1 and 0.
//   - Datetime32 and Datetime64 become Int32 and Int64 holding the raw counts.
//   - String32 and Categorical8/16/32 are parsed as base-10 Int32;
//     String64 and Categorical64 as Int64.
//   - Null stays Null.
func (a Array) Num() Array {
	if a.kind.IsNumeric() || a.kind == KindNull {
		return a.Clone()
	}

	switch p := a.payload().(type) {
	case slot[*array.BooleanArray]:
		return New(array.BoolToInteger[int32](p.get()))
	case slot[*array.DatetimeArray[int32]]:
		d := p.get()
		return New(array.NewIntegerArray(d.Values(), cloneMask(d.NullMask())))
	case slot[*array.DatetimeArray[int64]]:
		d := p.get()
		return New(array.NewIntegerArray(d.Values(), cloneMask(d.NullMask())))
	case slot[*array.StringArray[uint32]]:
		return New(parseIntegers[int32](p.get(), 32))
	case slot[*array.StringArray[uint64]]:
		return New(parseIntegers[int64](p.get(), 64))
	case slot[*array.CategoricalArray[uint8]]:
		return New(parseIntegers[int32](p.get(), 32))
	case slot[*array.CategoricalArray[uint16]]:
		return New(parseIntegers[int32](p.get(), 32))
	case slot[*array.CategoricalArray[uint32]]:
		return New(parseIntegers[int32](p.get(), 32))
	case slot[*array.CategoricalArray[uint64]]:
		return New(parseIntegers[int64](p.get(), 64))
	default:
		return NewNull(a.Len())
	}
}

// Str returns a string view of a.
//
//   - String arrays are returned as is (a new reference).
//   - Categorical8/16/32 are materialized as String32, Categorical64 as
//     String64.
//   - Numbers and datetime counts are formatted in base 10; booleans become
//     "true" or "false". Nulls hold "".
//   - Null stays Null.
func (a Array) Str() Array {
	if a.kind.IsString() || a.kind == KindNull {
		return a.Clone()
	}

	switch p := a.payload().(type) {
	case slot[*array.CategoricalArray[uint8]]:
		return categoricalToString(p.get())
	case slot[*array.CategoricalArray[uint16]]:
		return categoricalToString(p.get())
	case slot[*array.CategoricalArray[uint32]]:
		return categoricalToString(p.get())
	case slot[*array.CategoricalArray[uint64]]:
		s, _ := array.ToStringArray[uint64](p.get())
		return New(s)
	case slot[*array.IntegerArray[int8]]:
		return New(formatEach(p.get(), formatSigned[int8]))
	case slot[*array.IntegerArray[int16]]:
		return New(formatEach(p.get(), formatSigned[int16]))
	case slot[*array.IntegerArray[int32]]:
		return New(formatEach(p.get(), formatSigned[int32]))
	case slot[*array.IntegerArray[int64]]:
		return New(formatEach(p.get(), formatSigned[int64]))
	case slot[*array.IntegerArray[uint8]]:
		return New(formatEach(p.get(), formatUnsigned[uint8]))
	case slot[*array.IntegerArray[uint16]]:
		return New(formatEach(p.get(), formatUnsigned[uint16]))
	case slot[*array.IntegerArray[uint32]]:
		return New(formatEach(p.get(), formatUnsigned[uint32]))
	case slot[*array.IntegerArray[uint64]]:
		return New(formatEach(p.get(), formatUnsigned[uint64]))
	case slot[*array.FloatArray[float32]]:
		return New(formatEach(p.get(), func(v float32) string { return strconv.FormatFloat(float64(v), 'f', -1, 32) }))
	case slot[*array.FloatArray[float64]]:
		return New(formatEach(p.get(), func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }))
	case slot[*array.BooleanArray]:
		return New(formatEach(p.get(), strconv.FormatBool))
	case slot[*array.DatetimeArray[int32]]:
		return New(formatEach(p.get(), formatSigned[int32]))
	case slot[*array.DatetimeArray[int64]]:
		return New(formatEach(p.get(), formatSigned[int64]))
	default:
		return NewNull(a.Len())
	}
}

// Bool returns a boolean view of a.
//
//   - Boolean is returned as is (a new reference).
//   - Numbers are true when non-zero.
//   - Datetime values become their validity: true when present, false when
//     null, with no nulls in the result.
//   - Strings are false for "", "0", "false" and "f" (case-insensitive) and
//     true otherwise.
//   - Null stays Null.
func (a Array) Bool() Array {
	if a.kind == KindBoolean || a.kind == KindNull {
		return a.Clone()
	}

	switch p := a.payload().(type) {
	case slot[*array.IntegerArray[int8]]:
		return New(array.IntegerToBool(p.get()))
	case slot[*array.IntegerArray[int16]]:
		return New(array.IntegerToBool(p.get()))
	case slot[*array.IntegerArray[int32]]:
		return New(array.IntegerToBool(p.get()))
	case slot[*array.IntegerArray[int64]]:
		return New(array.IntegerToBool(p.get()))
	case slot[*array.IntegerArray[uint8]]:
		return New(array.IntegerToBool(p.get()))
	case slot[*array.IntegerArray[uint16]]:
		return New(array.IntegerToBool(p.get()))
	case slot[*array.IntegerArray[uint32]]:
		return New(array.IntegerToBool(p.get()))
	case slot[*array.IntegerArray[uint64]]:
		return New(array.IntegerToBool(p.get()))
	case slot[*array.FloatArray[float32]]:
		return New(array.FloatToBool(p.get()))
	case slot[*array.FloatArray[float64]]:
		return New(array.FloatToBool(p.get()))
	case slot[*array.DatetimeArray[int32]], slot[*array.DatetimeArray[int64]]:
		return New(validityToBool(a))
	case slot[*array.StringArray[uint32]]:
		return New(parseBools(p.get()))
	case slot[*array.StringArray[uint64]]:
		return New(parseBools(p.get()))
	case slot[*array.CategoricalArray[uint8]]:
		return New(parseBools(p.get()))
	case slot[*array.CategoricalArray[uint16]]:
		return New(parseBools(p.get()))
	case slot[*array.CategoricalArray[uint32]]:
		return New(parseBools(p.get()))
	case slot[*array.CategoricalArray[uint64]]:
		return New(parseBools(p.get()))
	default:
		return NewNull(a.Len())
	}
}

// Dt returns a datetime view of a.
//
//   - Datetime arrays are returned as is (a new reference).
//   - Numbers become Datetime64 milliseconds; floats are truncated, and NaN,
//     infinities or out of range values become null.
//   - Strings are parsed as RFC 3339, "2006-01-02 15:04:05", "2006-01-02" or
//     a base-10 count of milliseconds into Datetime64 milliseconds.
//   - Boolean and Null become Null.
func (a Array) Dt() Array {
	if a.kind.IsTemporal() || a.kind == KindNull {
		return a.Clone()
	}

	switch p := a.payload().(type) {
	case slot[*array.IntegerArray[int8]]:
		return New(integersToMillis(p.get()))
	case slot[*array.IntegerArray[int16]]:
		return New(integersToMillis(p.get()))
	case slot[*array.IntegerArray[int32]]:
		return New(integersToMillis(p.get()))
	case slot[*array.IntegerArray[int64]]:
		return New(integersToMillis(p.get()))
	case slot[*array.IntegerArray[uint8]]:
		return New(integersToMillis(p.get()))
	case slot[*array.IntegerArray[uint16]]:
		return New(integersToMillis(p.get()))
	case slot[*array.IntegerArray[uint32]]:
		return New(integersToMillis(p.get()))
	case slot[*array.IntegerArray[uint64]]:
		return New(integersToMillis(p.get()))
	case slot[*array.FloatArray[float32]]:
		return New(floatsToMillis(p.get()))
	case slot[*array.FloatArray[float64]]:
		return New(floatsToMillis(p.get()))
	case slot[*array.StringArray[uint32]]:
		return New(parseDatetimes(p.get()))
	case slot[*array.StringArray[uint64]]:
		return New(parseDatetimes(p.get()))
	case slot[*array.CategoricalArray[uint8]]:
		return New(parseDatetimes(p.get()))
	case slot[*array.CategoricalArray[uint16]]:
		return New(parseDatetimes(p.get()))
	case slot[*array.CategoricalArray[uint32]]:
		return New(parseDatetimes(p.get()))
	case slot[*array.CategoricalArray[uint64]]:
		return New(parseDatetimes(p.get()))
	default:
		return NewNull(a.Len())
	}
}

func cloneMask(m *bitmap.Bitmap) *bitmap.Bitmap {
	if m == nil {
		return nil
	}

	return m.Clone()
}

func formatSigned[T array.Signed](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

func formatUnsigned[T array.Unsigned](v T) string {
	return strconv.FormatUint(uint64(v), 10)
}

func formatEach[V any](src array.Indexed[V], f func(V) string) *array.StringArray[uint32] {
	out := array.StringWithCapacity[uint32](src.Len(), 0)
	for i := range src.Len() {
		v, ok := src.Get(i)
		if !ok {
			out.PushNull()
			continue
		}
		out.PushString(f(v))
	}

	return out
}

func categoricalToString[C array.Code](c *array.CategoricalArray[C]) Array {
	if s, err := array.ToStringArray[uint32](c); err == nil {
		return New(s)
	}
	s, _ := array.ToStringArray[uint64](c)

	return New(s)
}

func parseIntegers[T array.Signed](src array.Indexed[string], bitSize int) *array.IntegerArray[T] {
	out := array.IntegerWithCapacity[T](src.Len())
	for i := range src.Len() {
		s, ok := src.Get(i)
		if !ok {
			out.PushNull()
			continue
		}
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, bitSize)
		if err != nil {
			out.PushNull()
			continue
		}
		out.Push(T(v))
	}

	return out
}

func parseBools(src array.Indexed[string]) *array.BooleanArray {
	out := array.NewBooleanArray(nil, nil)
	for i := range src.Len() {
		s, ok := src.Get(i)
		if !ok {
			out.PushNull()
			continue
		}
		out.Push(parseBool(s))
	}

	return out
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "f":
		return false
	default:
		return true
	}
}

func validityToBool(a Array) *array.BooleanArray {
	mask := a.NullMask()
	if mask == nil {
		return array.NewBooleanArrayFromBitmap(bitmap.NewSetAll(a.Len(), true), nil)
	}

	return array.NewBooleanArrayFromBitmap(mask, nil)
}

func integersToMillis[T array.Integer](src *array.IntegerArray[T]) *array.DatetimeArray[int64] {
	out := array.DatetimeWithCapacity[int64](src.Len(), format.UnitMilliseconds)
	for i := range src.Len() {
		v, ok := src.Get(i)
		if !ok {
			out.PushNull()
			continue
		}
		ms, err := array.CastInteger[int64](v)
		if err != nil {
			out.PushNull()
			continue
		}
		out.Push(ms)
	}

	return out
}

func floatsToMillis[T array.Float](src *array.FloatArray[T]) *array.DatetimeArray[int64] {
	out := array.DatetimeWithCapacity[int64](src.Len(), format.UnitMilliseconds)
	for i := range src.Len() {
		v, ok := src.Get(i)
		if !ok {
			out.PushNull()
			continue
		}
		ms, err := array.FloatToInteger[int64](math.Trunc(float64(v)))
		if err != nil {
			out.PushNull()
			continue
		}
		out.Push(ms)
	}

	return out
}

var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDatetime parses s into milliseconds since the Unix epoch using the
// layouts accepted by Dt. Layouts without a zone are read as UTC.
func ParseDatetime(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, true
	}

	return 0, false
}

func parseDatetimes(src array.Indexed[string]) *array.DatetimeArray[int64] {
	out := array.DatetimeWithCapacity[int64](src.Len(), format.UnitMilliseconds)
	for i := range src.Len() {
		s, ok := src.Get(i)
		if !ok {
			out.PushNull()
			continue
		}
		ms, ok := ParseDatetime(s)
		if !ok {
			out.PushNull()
			continue
		}
		out.Push(ms)
	}

	return out
}
