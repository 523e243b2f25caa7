package arrowbridge

import (
	"fmt"
	"maps"
	"slices"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	carray "github.com/arloliu/colmem/array"
	"github.com/arloliu/colmem/bitmap"
	"github.com/arloliu/colmem/buffer"
	"github.com/arloliu/colmem/column"
	"github.com/arloliu/colmem/endian"
	"github.com/arloliu/colmem/errs"
)

// Export wraps a as an Arrow array without copying its buffers. The Arrow
// type is inferred the same way column.FieldFromArray infers a field.
// Categorical dictionaries are the only part copied.
//
// Parameters:
//   - a: Array to export; it must outlive the result
//
// Returns:
//   - arrow.Array: Arrow array aliasing the payload buffers
//   - error: errs.ErrUnsupportedKind, or errs.ErrNativeEndianRequired on big-endian hosts
func Export(a column.Array) (arrow.Array, error) {
	f, err := column.FieldFromArray("value", a)
	if err != nil {
		return nil, err
	}

	return exportArray(f, a)
}

// ExportWindow exports the elements covered by w as a zero-copy Arrow slice.
func ExportWindow(w column.Window) (arrow.Array, error) {
	full, err := Export(w.Array())
	if err != nil {
		return nil, err
	}
	defer full.Release()

	return array.NewSlice(full, int64(w.Offset()), int64(w.Offset()+w.Len())), nil
}

// ExportColumn exports the array of c under the Arrow type its field
// describes, along with the matching Arrow field.
func ExportColumn(c *column.Column) (arrow.Array, arrow.Field, error) {
	f := c.Field()
	arr, err := exportArray(f, c.Array())
	if err != nil {
		return nil, arrow.Field{}, err
	}

	af := arrow.Field{Name: f.Name, Type: arr.DataType(), Nullable: f.Nullable}
	if len(f.Metadata) > 0 {
		keys := slices.Sorted(maps.Keys(f.Metadata))
		values := make([]string, len(keys))
		for i, k := range keys {
			values[i] = f.Metadata[k]
		}
		af.Metadata = arrow.NewMetadata(keys, values)
	}

	return arr, af, nil
}

// ExportRecord exports cols as one Arrow record batch. Every column must have
// the same length.
func ExportRecord(cols ...*column.Column) (arrow.RecordBatch, error) {
	fields := make([]arrow.Field, 0, len(cols))
	arrs := make([]arrow.Array, 0, len(cols))
	defer func() {
		for _, a := range arrs {
			a.Release()
		}
	}()

	rows := -1
	for _, c := range cols {
		if rows >= 0 && c.Len() != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", errs.ErrLengthMismatch, c.Name(), c.Len(), rows)
		}
		rows = c.Len()

		arr, f, err := ExportColumn(c)
		if err != nil {
			return nil, fmt.Errorf("export column %q: %w", c.Name(), err)
		}
		arrs = append(arrs, arr)
		fields = append(fields, f)
	}

	return array.NewRecordBatch(arrow.NewSchema(fields, nil), arrs, int64(max(rows, 0))), nil
}

func exportArray(f column.Field, a column.Array) (arrow.Array, error) {
	if !endian.IsNativeLittleEndian() {
		return nil, errs.ErrNativeEndianRequired
	}

	dt, err := DataType(f, a.Kind())
	if err != nil {
		return nil, err
	}

	data := exportData(dt, a)
	defer data.Release()

	return array.MakeFromData(data), nil
}

func exportData(dt arrow.DataType, a column.Array) *array.Data {
	validity := validityBuffer(a.NullMask())
	nulls := a.NullCount()

	switch a.Kind() {
	case column.KindNull:
		return array.NewData(dt, a.Len(), []*memory.Buffer{nil}, nil, a.Len(), 0)
	case column.KindBoolean:
		b := column.Inner[*carray.BooleanArray](a)
		return array.NewData(dt, b.Len(), []*memory.Buffer{validity, memory.NewBufferBytes(b.Values().Bytes())}, nil, nulls, 0)
	case column.KindInt8:
		return fixedData(dt, validity, nulls, column.Inner[*carray.IntegerArray[int8]](a).Buffer())
	case column.KindInt16:
		return fixedData(dt, validity, nulls, column.Inner[*carray.IntegerArray[int16]](a).Buffer())
	case column.KindInt32:
		return fixedData(dt, validity, nulls, column.Inner[*carray.IntegerArray[int32]](a).Buffer())
	case column.KindInt64:
		return fixedData(dt, validity, nulls, column.Inner[*carray.IntegerArray[int64]](a).Buffer())
	case column.KindUInt8:
		return fixedData(dt, validity, nulls, column.Inner[*carray.IntegerArray[uint8]](a).Buffer())
	case column.KindUInt16:
		return fixedData(dt, validity, nulls, column.Inner[*carray.IntegerArray[uint16]](a).Buffer())
	case column.KindUInt32:
		return fixedData(dt, validity, nulls, column.Inner[*carray.IntegerArray[uint32]](a).Buffer())
	case column.KindUInt64:
		return fixedData(dt, validity, nulls, column.Inner[*carray.IntegerArray[uint64]](a).Buffer())
	case column.KindFloat32:
		return fixedData(dt, validity, nulls, column.Inner[*carray.FloatArray[float32]](a).Buffer())
	case column.KindFloat64:
		return fixedData(dt, validity, nulls, column.Inner[*carray.FloatArray[float64]](a).Buffer())
	case column.KindDatetime32:
		return fixedData(dt, validity, nulls, column.Inner[*carray.DatetimeArray[int32]](a).Buffer())
	case column.KindDatetime64:
		return fixedData(dt, validity, nulls, column.Inner[*carray.DatetimeArray[int64]](a).Buffer())
	case column.KindString32:
		return stringData(dt, validity, nulls, column.Inner[*carray.StringArray[uint32]](a))
	case column.KindString64:
		return stringData(dt, validity, nulls, column.Inner[*carray.StringArray[uint64]](a))
	case column.KindCategorical8:
		return dictionaryData(dt, validity, nulls, column.Inner[*carray.CategoricalArray[uint8]](a))
	case column.KindCategorical16:
		return dictionaryData(dt, validity, nulls, column.Inner[*carray.CategoricalArray[uint16]](a))
	case column.KindCategorical32:
		return dictionaryData(dt, validity, nulls, column.Inner[*carray.CategoricalArray[uint32]](a))
	default:
		return dictionaryData(dt, validity, nulls, column.Inner[*carray.CategoricalArray[uint64]](a))
	}
}

func validityBuffer(mask *bitmap.Bitmap) *memory.Buffer {
	if mask == nil {
		return nil
	}

	return memory.NewBufferBytes(mask.Bytes())
}

func fixedData[T buffer.Elem](dt arrow.DataType, validity *memory.Buffer, nulls int, b *buffer.Buffer[T]) *array.Data {
	return array.NewData(dt, b.Len(), []*memory.Buffer{validity, memory.NewBufferBytes(b.Bytes())}, nil, nulls, 0)
}

func stringData[O carray.Offset](dt arrow.DataType, validity *memory.Buffer, nulls int, s *carray.StringArray[O]) *array.Data {
	buffers := []*memory.Buffer{
		validity,
		memory.NewBufferBytes(s.OffsetsBuffer().Bytes()),
		memory.NewBufferBytes(s.DataBuffer().Bytes()),
	}

	return array.NewData(dt, s.Len(), buffers, nil, nulls, 0)
}

func dictionaryData[C carray.Code](dt arrow.DataType, validity *memory.Buffer, nulls int, c *carray.CategoricalArray[C]) *array.Data {
	values := carray.NewStringArray[uint32](c.Dictionary(), nil)
	dict := stringData(arrow.BinaryTypes.String, nil, 0, values)
	defer dict.Release()

	buffers := []*memory.Buffer{validity, memory.NewBufferBytes(c.CodesBuffer().Bytes())}

	return array.NewDataWithDictionary(dt, c.Len(), buffers, nulls, 0, dict)
}
