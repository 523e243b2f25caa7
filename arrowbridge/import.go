package arrowbridge

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	carray "github.com/arloliu/colmem/array"
	"github.com/arloliu/colmem/bitmap"
	"github.com/arloliu/colmem/column"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/format"
)

// Import copies arr into a new column.Array. Slices are honored. Rows whose
// dictionary value is null import as null.
//
// Parameters:
//   - arr: Arrow array of a supported type
//
// Returns:
//   - column.Array: Copy of arr
//   - error: errs.ErrUnsupportedKind for unsupported Arrow types
func Import(arr arrow.Array) (column.Array, error) {
	switch a := arr.(type) {
	case *array.Null:
		return column.NewNull(a.Len()), nil
	case *array.Boolean:
		out := carray.NewBooleanArray(nil, nil)
		for i := range a.Len() {
			if a.IsNull(i) {
				out.PushNull()
				continue
			}
			out.Push(a.Value(i))
		}
		return column.New(out), nil
	case *array.Int8:
		return column.New(importIntegers(a.Int8Values(), a)), nil
	case *array.Int16:
		return column.New(importIntegers(a.Int16Values(), a)), nil
	case *array.Int32:
		return column.New(importIntegers(a.Int32Values(), a)), nil
	case *array.Int64:
		return column.New(importIntegers(a.Int64Values(), a)), nil
	case *array.Uint8:
		return column.New(importIntegers(a.Uint8Values(), a)), nil
	case *array.Uint16:
		return column.New(importIntegers(a.Uint16Values(), a)), nil
	case *array.Uint32:
		return column.New(importIntegers(a.Uint32Values(), a)), nil
	case *array.Uint64:
		return column.New(importIntegers(a.Uint64Values(), a)), nil
	case *array.Float32:
		return column.New(importFloats(a.Float32Values(), a)), nil
	case *array.Float64:
		return column.New(importFloats(a.Float64Values(), a)), nil
	case *array.String:
		return column.New(importStrings[uint32](a)), nil
	case *array.LargeString:
		return column.New(importStrings[uint64](a)), nil
	case *array.Date32:
		return column.New(importTemporal[int32](a.Date32Values(), a, format.UnitDays)), nil
	case *array.Date64:
		return column.New(importTemporal[int64](a.Date64Values(), a, format.UnitMilliseconds)), nil
	case *array.Time32:
		unit := fromArrowUnit(a.DataType().(*arrow.Time32Type).Unit)
		return column.New(importTemporal[int32](a.Time32Values(), a, unit)), nil
	case *array.Time64:
		unit := fromArrowUnit(a.DataType().(*arrow.Time64Type).Unit)
		return column.New(importTemporal[int64](a.Time64Values(), a, unit)), nil
	case *array.Timestamp:
		unit := fromArrowUnit(a.DataType().(*arrow.TimestampType).Unit)
		return column.New(importTemporal[int64](a.TimestampValues(), a, unit)), nil
	case *array.Duration:
		unit := fromArrowUnit(a.DataType().(*arrow.DurationType).Unit)
		return column.New(importTemporal[int64](a.DurationValues(), a, unit)), nil
	case *array.Dictionary:
		return importDictionary(a)
	default:
		return column.Array{}, fmt.Errorf("%w: arrow type %s", errs.ErrUnsupportedKind, arr.DataType())
	}
}

// ImportColumn copies arr into a column described by f. Field metadata is
// carried over.
func ImportColumn(f arrow.Field, arr arrow.Array) (*column.Column, error) {
	a, err := Import(arr)
	if err != nil {
		return nil, err
	}

	typ, unit, err := FieldType(arr.DataType())
	if err != nil {
		return nil, err
	}

	var opts []column.FieldOption
	if unit != 0 {
		opts = append(opts, column.WithTimeUnit(unit))
	}
	if f.HasMetadata() {
		md := make(map[string]string, f.Metadata.Len())
		for i, k := range f.Metadata.Keys() {
			md[k] = f.Metadata.Values()[i]
		}
		opts = append(opts, column.WithMetadata(md))
	}

	field, err := column.NewField(f.Name, typ, f.Nullable, opts...)
	if err != nil {
		return nil, err
	}

	return column.NewColumn(field, a)
}

// ImportRecord copies every column of rec.
func ImportRecord(rec arrow.RecordBatch) ([]*column.Column, error) {
	schema := rec.Schema()
	cols := make([]*column.Column, 0, rec.NumCols())
	for i, arr := range rec.Columns() {
		c, err := ImportColumn(schema.Field(i), arr)
		if err != nil {
			return nil, fmt.Errorf("import column %q: %w", schema.Field(i).Name, err)
		}
		cols = append(cols, c)
	}

	return cols, nil
}

type nullable interface {
	Len() int
	NullN() int
	IsNull(i int) bool
}

func markNulls(src nullable, setNull func(i int)) {
	if src.NullN() == 0 {
		return
	}
	for i := range src.Len() {
		if src.IsNull(i) {
			setNull(i)
		}
	}
}

func importIntegers[T carray.Integer](values []T, src nullable) *carray.IntegerArray[T] {
	out := carray.NewIntegerArray(values, nil)
	markNulls(src, out.SetNull)

	return out
}

func importFloats[T carray.Float](values []T, src nullable) *carray.FloatArray[T] {
	out := carray.NewFloatArray(values, nil)
	markNulls(src, out.SetNull)

	return out
}

func importTemporal[D, S carray.Temporal](values []S, src nullable, unit format.TimeUnit) *carray.DatetimeArray[D] {
	converted := make([]D, len(values))
	for i, v := range values {
		converted[i] = D(v)
	}
	out := carray.NewDatetimeArray(converted, nil, unit)
	markNulls(src, out.SetNull)

	return out
}

type stringValues interface {
	nullable
	Value(i int) string
}

func importStrings[O carray.Offset](src stringValues) *carray.StringArray[O] {
	out := carray.StringWithCapacity[O](src.Len(), 0)
	for i := range src.Len() {
		if src.IsNull(i) {
			out.PushNull()
			continue
		}
		out.PushString(src.Value(i))
	}

	return out
}

func importDictionary(d *array.Dictionary) (column.Array, error) {
	values, ok := d.Dictionary().(stringValues)
	if !ok {
		return column.Array{}, fmt.Errorf("%w: dictionary of %s", errs.ErrUnsupportedKind, d.Dictionary().DataType())
	}

	switch d.DataType().(*arrow.DictionaryType).IndexType.ID() {
	case arrow.UINT8, arrow.INT8:
		return importCodes[uint8](d, values)
	case arrow.UINT16, arrow.INT16:
		return importCodes[uint16](d, values)
	case arrow.UINT32, arrow.INT32:
		return importCodes[uint32](d, values)
	default:
		return importCodes[uint64](d, values)
	}
}

func importCodes[C carray.Code](d *array.Dictionary, values stringValues) (column.Array, error) {
	n := d.Len()
	codes := make([]C, n)
	mask := bitmap.NewSetAll(n, true)
	nulls := 0
	for i := range n {
		if d.IsNull(i) || values.IsNull(d.GetValueIndex(i)) {
			mask.SetUnchecked(i, false)
			nulls++
			continue
		}
		codes[i] = C(d.GetValueIndex(i))
	}
	if nulls == 0 {
		mask = nil
	}

	dict := make([]string, values.Len())
	for i := range dict {
		if !values.IsNull(i) {
			dict[i] = values.Value(i)
		}
	}

	c, err := carray.NewCategoricalArray(codes, dict, mask)
	if err == nil {
		return column.New(c), nil
	}

	// duplicate values (or several null entries) in the Arrow dictionary
	resolved := make([]string, n)
	for i, code := range codes {
		resolved[i] = dict[code]
	}
	var resolvedMask *bitmap.Bitmap
	if mask != nil {
		resolvedMask = mask.Clone()
	}
	c, err = carray.NewCategoricalFromStrings[C](resolved, resolvedMask)
	if err != nil {
		return column.Array{}, err
	}

	return column.New(c), nil
}
