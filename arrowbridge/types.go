// Package arrowbridge hands colmem columns to and from apache/arrow-go.
//
// Export wraps the aligned buffers of a column.Array in Arrow array data
// without copying; the Arrow array aliases the payload, so the payload must
// not be modified while the Arrow array is in use. Import copies Arrow data
// into freshly allocated colmem arrays.
//
// Zero-copy export relies on the in-memory layout matching Arrow's
// little-endian layout, so Export fails with errs.ErrNativeEndianRequired on
// big-endian hosts.
package arrowbridge

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/arloliu/colmem/column"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/format"
)

var arrowUnits = map[format.TimeUnit]arrow.TimeUnit{
	format.UnitSeconds:      arrow.Second,
	format.UnitMilliseconds: arrow.Millisecond,
	format.UnitMicroseconds: arrow.Microsecond,
	format.UnitNanoseconds:  arrow.Nanosecond,
}

func toArrowUnit(u format.TimeUnit) (arrow.TimeUnit, error) {
	au, ok := arrowUnits[u]
	if !ok {
		return 0, fmt.Errorf("%w: %s has no arrow equivalent", errs.ErrInvalidTimeUnit, u)
	}

	return au, nil
}

func fromArrowUnit(u arrow.TimeUnit) format.TimeUnit {
	switch u {
	case arrow.Second:
		return format.UnitSeconds
	case arrow.Millisecond:
		return format.UnitMilliseconds
	case arrow.Microsecond:
		return format.UnitMicroseconds
	default:
		return format.UnitNanoseconds
	}
}

// DataType returns the Arrow type describing a payload of kind k under field
// f. Temporal fields pick the Arrow temporal type matching f.Type and f.Unit.
func DataType(f column.Field, k column.Kind) (arrow.DataType, error) {
	if !k.Accepts(f.Type) {
		return nil, errs.TypeError(k.String(), f.Type.String(), "field type does not describe kind")
	}
	if k == column.KindNull {
		return arrow.Null, nil
	}

	switch f.Type {
	case format.TypeBoolean:
		return arrow.FixedWidthTypes.Boolean, nil
	case format.TypeInt8:
		return arrow.PrimitiveTypes.Int8, nil
	case format.TypeInt16:
		return arrow.PrimitiveTypes.Int16, nil
	case format.TypeInt32:
		return arrow.PrimitiveTypes.Int32, nil
	case format.TypeInt64:
		return arrow.PrimitiveTypes.Int64, nil
	case format.TypeUInt8:
		return arrow.PrimitiveTypes.Uint8, nil
	case format.TypeUInt16:
		return arrow.PrimitiveTypes.Uint16, nil
	case format.TypeUInt32:
		return arrow.PrimitiveTypes.Uint32, nil
	case format.TypeUInt64:
		return arrow.PrimitiveTypes.Uint64, nil
	case format.TypeFloat32:
		return arrow.PrimitiveTypes.Float32, nil
	case format.TypeFloat64:
		return arrow.PrimitiveTypes.Float64, nil
	case format.TypeString:
		return arrow.BinaryTypes.String, nil
	case format.TypeLargeString:
		return arrow.BinaryTypes.LargeString, nil
	case format.TypeDictionary8:
		return dictionaryOf(arrow.PrimitiveTypes.Uint8), nil
	case format.TypeDictionary16:
		return dictionaryOf(arrow.PrimitiveTypes.Uint16), nil
	case format.TypeDictionary32:
		return dictionaryOf(arrow.PrimitiveTypes.Uint32), nil
	case format.TypeDictionary64:
		return dictionaryOf(arrow.PrimitiveTypes.Uint64), nil
	case format.TypeDate32:
		if f.Unit != format.UnitDays {
			return nil, fmt.Errorf("%w: Date32 requires days, got %s", errs.ErrInvalidTimeUnit, f.Unit)
		}
		return arrow.FixedWidthTypes.Date32, nil
	case format.TypeDate64:
		if f.Unit != format.UnitMilliseconds {
			return nil, fmt.Errorf("%w: Date64 requires ms, got %s", errs.ErrInvalidTimeUnit, f.Unit)
		}
		return arrow.FixedWidthTypes.Date64, nil
	case format.TypeTime32:
		if f.Unit != format.UnitSeconds && f.Unit != format.UnitMilliseconds {
			return nil, fmt.Errorf("%w: Time32 requires s or ms, got %s", errs.ErrInvalidTimeUnit, f.Unit)
		}
		return &arrow.Time32Type{Unit: arrowUnits[f.Unit]}, nil
	case format.TypeTime64:
		if f.Unit != format.UnitMicroseconds && f.Unit != format.UnitNanoseconds {
			return nil, fmt.Errorf("%w: Time64 requires us or ns, got %s", errs.ErrInvalidTimeUnit, f.Unit)
		}
		return &arrow.Time64Type{Unit: arrowUnits[f.Unit]}, nil
	case format.TypeTimestamp:
		u, err := toArrowUnit(f.Unit)
		if err != nil {
			return nil, err
		}
		return &arrow.TimestampType{Unit: u, TimeZone: "UTC"}, nil
	case format.TypeDuration64:
		u, err := toArrowUnit(f.Unit)
		if err != nil {
			return nil, err
		}
		return &arrow.DurationType{Unit: u}, nil
	default:
		return nil, fmt.Errorf("%w: %s has no arrow equivalent", errs.ErrUnsupportedKind, f.Type)
	}
}

func dictionaryOf(index arrow.DataType) *arrow.DictionaryType {
	return &arrow.DictionaryType{IndexType: index, ValueType: arrow.BinaryTypes.String}
}

// FieldType maps an Arrow type back to a logical type and time unit.
func FieldType(dt arrow.DataType) (format.Type, format.TimeUnit, error) {
	switch t := dt.(type) {
	case *arrow.Time32Type:
		return format.TypeTime32, fromArrowUnit(t.Unit), nil
	case *arrow.Time64Type:
		return format.TypeTime64, fromArrowUnit(t.Unit), nil
	case *arrow.TimestampType:
		return format.TypeTimestamp, fromArrowUnit(t.Unit), nil
	case *arrow.DurationType:
		return format.TypeDuration64, fromArrowUnit(t.Unit), nil
	case *arrow.DictionaryType:
		switch t.IndexType.ID() {
		case arrow.UINT8, arrow.INT8:
			return format.TypeDictionary8, 0, nil
		case arrow.UINT16, arrow.INT16:
			return format.TypeDictionary16, 0, nil
		case arrow.UINT32, arrow.INT32:
			return format.TypeDictionary32, 0, nil
		default:
			return format.TypeDictionary64, 0, nil
		}
	}

	switch dt.ID() {
	case arrow.NULL:
		return format.TypeNull, 0, nil
	case arrow.BOOL:
		return format.TypeBoolean, 0, nil
	case arrow.INT8:
		return format.TypeInt8, 0, nil
	case arrow.INT16:
		return format.TypeInt16, 0, nil
	case arrow.INT32:
		return format.TypeInt32, 0, nil
	case arrow.INT64:
		return format.TypeInt64, 0, nil
	case arrow.UINT8:
		return format.TypeUInt8, 0, nil
	case arrow.UINT16:
		return format.TypeUInt16, 0, nil
	case arrow.UINT32:
		return format.TypeUInt32, 0, nil
	case arrow.UINT64:
		return format.TypeUInt64, 0, nil
	case arrow.FLOAT32:
		return format.TypeFloat32, 0, nil
	case arrow.FLOAT64:
		return format.TypeFloat64, 0, nil
	case arrow.STRING:
		return format.TypeString, 0, nil
	case arrow.LARGE_STRING:
		return format.TypeLargeString, 0, nil
	case arrow.DATE32:
		return format.TypeDate32, format.UnitDays, nil
	case arrow.DATE64:
		return format.TypeDate64, format.UnitMilliseconds, nil
	default:
		return 0, 0, fmt.Errorf("%w: arrow type %s", errs.ErrUnsupportedKind, dt)
	}
}
