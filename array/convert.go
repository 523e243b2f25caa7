package array

import (
	"fmt"
	"math"

	"github.com/arloliu/colmem/bitmap"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/internal/unsafecast"
)

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// CastInteger converts v to D, returning an overflow error instead of
// truncating or wrapping.
func CastInteger[D Integer, S Integer](v S) (D, error) {
	d := D(v)
	if S(d) != v || (v < 0) != (d < 0) {
		return 0, errs.Overflow(v, typeName[D]())
	}

	return d, nil
}

// integerBounds returns the half-open float range [lo, hi) of values whose
// truncation fits D.
func integerBounds[D Integer]() (float64, float64) {
	bits := float64(unsafecast.Sizeof[D]() * 8)
	if ^D(0) < 0 {
		half := math.Exp2(bits - 1)
		return -half, half
	}

	return 0, math.Exp2(bits)
}

// FloatToInteger converts v to D. A value with a fractional part, NaN or an
// infinity returns a lossy cast error; a whole value outside the range of D
// returns an overflow error.
func FloatToInteger[D Integer, S Float](v S) (D, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errs.LossyCast(v, typeName[S](), typeName[D]())
	}

	lo, hi := integerBounds[D]()
	if f < lo || f >= hi {
		return 0, errs.Overflow(v, typeName[D]())
	}

	return D(f), nil
}

// IntegerToFloat converts v to D, returning a lossy cast error when D cannot
// represent v exactly.
func IntegerToFloat[D Float, S Integer](v S) (D, error) {
	d := D(v)
	lo, hi := integerBounds[S]()
	f := float64(d)
	if f < lo || f >= hi || S(d) != v {
		return 0, errs.LossyCast(v, typeName[S](), typeName[D]())
	}

	return d, nil
}

// CastIntegerArray converts every valid element of a to D. Nulls are kept.
func CastIntegerArray[D Integer, S Integer](a *IntegerArray[S]) (*IntegerArray[D], error) {
	out := IntegerWithCapacity[D](a.Len())
	for i, v := range a.Values() {
		if a.isNull(i) {
			out.PushNull()
			continue
		}
		d, err := CastInteger[D](v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Push(d)
	}

	return out, nil
}

// FloatToIntegerArray converts every valid element of a to D. Nulls are kept.
func FloatToIntegerArray[D Integer, S Float](a *FloatArray[S]) (*IntegerArray[D], error) {
	out := IntegerWithCapacity[D](a.Len())
	for i, v := range a.Values() {
		if a.isNull(i) {
			out.PushNull()
			continue
		}
		d, err := FloatToInteger[D](v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Push(d)
	}

	return out, nil
}

// IntegerToFloatArray converts every valid element of a to D. Nulls are kept.
func IntegerToFloatArray[D Float, S Integer](a *IntegerArray[S]) (*FloatArray[D], error) {
	out := FloatWithCapacity[D](a.Len())
	for i, v := range a.Values() {
		if a.isNull(i) {
			out.PushNull()
			continue
		}
		d, err := IntegerToFloat[D](v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Push(d)
	}

	return out, nil
}

// CastFloatArray converts a to D, rounding to the nearest representable
// value.
func CastFloatArray[D Float, S Float](a *FloatArray[S]) *FloatArray[D] {
	values := make([]D, a.Len())
	for i, v := range a.Values() {
		values[i] = D(v)
	}

	return NewFloatArray(values, a.validity.clone().mask)
}

// BoolToInteger converts a to 1 and 0 values. Nulls are kept.
func BoolToInteger[T Integer](a *BooleanArray) *IntegerArray[T] {
	values := make([]T, a.Len())
	for i := range a.Values().IterSet() {
		values[i] = 1
	}

	return NewIntegerArray(values, a.validity.clone().mask)
}

// IntegerToBool converts a to booleans, true for every non-zero element.
// Nulls are kept.
func IntegerToBool[T Integer](a *IntegerArray[T]) *BooleanArray {
	return numericToBool(a.Values(), &a.validity)
}

// FloatToBool converts a to booleans, true for every non-zero element. NaN
// counts as non-zero. Nulls are kept.
func FloatToBool[T Float](a *FloatArray[T]) *BooleanArray {
	return numericToBool(a.Values(), &a.validity)
}

func numericToBool[T Numeric](values []T, v *validity) *BooleanArray {
	out := &BooleanArray{values: *bitmap.New(len(values)), validity: v.clone()}
	for i, x := range values {
		if x != 0 {
			out.values.SetUnchecked(i, true)
		}
	}

	return out
}

// CastDatetime converts a to storage width D, keeping its unit.
func CastDatetime[D Temporal, S Temporal](a *DatetimeArray[S]) (*DatetimeArray[D], error) {
	out := DatetimeWithCapacity[D](a.Len(), a.unit)
	for i, v := range a.Values() {
		if a.isNull(i) {
			out.PushNull()
			continue
		}
		d, err := CastInteger[D](v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Push(d)
	}

	return out, nil
}

// ConvertOffsets changes the offset width of a. Narrowing returns an
// overflow error when the byte length does not fit D.
func ConvertOffsets[D Offset, S Offset](a *StringArray[S]) (*StringArray[D], error) {
	if uint64(a.data.Len()) > maxOffset[D]() {
		return nil, errs.Overflow(a.data.Len(), offsetName[D]())
	}

	offs := a.Offsets()
	out := &StringArray[D]{
		data:     *a.data.Clone(),
		validity: a.validity.clone(),
	}
	out.offsets.Reserve(len(offs))
	for _, o := range offs {
		out.offsets.Push(D(o))
	}

	return out, nil
}

// CastCodes changes the code width of a. Narrowing returns an overflow error
// when the dictionary does not fit D.
func CastCodes[D Code, S Code](a *CategoricalArray[S]) (*CategoricalArray[D], error) {
	dict := a.dictionary()
	if !fitsCodes[D](dict.Len()) {
		return nil, errs.Overflow(dict.Len(), codeName[D]())
	}

	out := &CategoricalArray[D]{dict: dict.Clone(), validity: a.validity.clone()}
	out.codes.Reserve(a.codes.Len())
	for _, c := range a.codes.Values() {
		out.codes.Push(D(c))
	}

	return out, nil
}

// ToCategorical dictionary-encodes a in one pass. Codes follow first
// appearance order; nulls get code zero without being interned. It returns
// an overflow error if the unique values do not fit C.
//
// Parameters:
//   - a: String array to encode
//
// Returns:
//   - *CategoricalArray[C]: Encoded array with the mask of a copied
//   - error: errs.ErrOverflow if the dictionary outgrows C
func ToCategorical[C Code, O Offset](a *StringArray[O]) (*CategoricalArray[C], error) {
	out := CategoricalWithCapacity[C](a.Len())
	for i := range a.Len() {
		if a.isNull(i) {
			out.PushNull()
			continue
		}
		if _, err := out.PushString(string(a.bytesAt(i))); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// ToStringArray materializes every element of a as a string. It returns an
// overflow error if the total byte length does not fit O.
func ToStringArray[O Offset, C Code](a *CategoricalArray[C]) (*StringArray[O], error) {
	dict := a.dictionary()
	total := uint64(0)
	for i, c := range a.codes.Values() {
		if !a.isNull(i) {
			total += uint64(len(dict.Value(int(c))))
		}
	}
	if total > maxOffset[O]() {
		return nil, errs.Overflow(total, offsetName[O]())
	}

	out := StringWithCapacity[O](a.Len(), int(total))
	for i, c := range a.codes.Values() {
		if a.isNull(i) {
			out.PushNull()
			continue
		}
		out.PushString(dict.Value(int(c)))
	}

	return out, nil
}
