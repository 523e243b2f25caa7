// Package colmem provides in-memory columnar arrays with an Arrow-compatible
// layout, schema-tagged columns, and a compact binary frame format for
// persisting them.
//
// # Core Features
//
//   - Typed arrays (integers, floats, booleans, datetimes, strings and
//     dictionary-encoded categoricals) over 64-byte aligned buffers
//   - Validity bitmaps with LSB-first bit order, exactly as Arrow lays them out
//   - Reference-counted, copy-on-write array payloads behind column.Array
//   - Lossy conversions (Num, Str, Bool, Dt) that turn failures into nulls
//   - Zero-copy Arrow export through the arrowbridge package
//   - Frames with optional compression (Zstd, S2, LZ4) and xxHash64 checksums
//
// # Basic Usage
//
// Building columns and writing them as frames:
//
//	ids, _ := colmem.Ints("id", []int64{1, 2, 3})
//	hosts, _ := colmem.Categories("host", []string{"a", "b", "a"})
//
//	data, _ := colmem.Encode(ids, hosts)
//
// Reading them back:
//
//	cols, _ := colmem.Decode(data)
//	for _, c := range cols {
//	    fmt.Println(c)
//	}
//
// # Package Structure
//
// This package holds convenience wrappers over column, array and frame. Use
// those packages directly for finer control, for example to build arrays
// element by element or to choose the frame byte order.
package colmem

import (
	"errors"
	"time"

	"github.com/arloliu/colmem/array"
	"github.com/arloliu/colmem/column"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/format"
	"github.com/arloliu/colmem/frame"
	"github.com/arloliu/colmem/internal/hash"
)

var defaultEncoderOptions = []frame.EncoderOption{
	frame.WithLittleEndian(),
	frame.WithCompression(format.CompressionZstd),
	frame.WithChecksum(true),
}

// Ints builds a non-nullable integer column holding a copy of values.
func Ints[T array.Integer](name string, values []T, opts ...column.FieldOption) (*column.Column, error) {
	return column.NewColumnFromArray(name, column.New(array.NewIntegerArray(values, nil)), opts...)
}

// Floats builds a float column holding a copy of values.
func Floats[T array.Float](name string, values []T, opts ...column.FieldOption) (*column.Column, error) {
	return column.NewColumnFromArray(name, column.New(array.NewFloatArray(values, nil)), opts...)
}

// Bools builds a boolean column.
func Bools(name string, values []bool, opts ...column.FieldOption) (*column.Column, error) {
	return column.NewColumnFromArray(name, column.New(array.NewBooleanArray(values, nil)), opts...)
}

// Strings builds a string column with 32-bit offsets.
func Strings(name string, values []string, opts ...column.FieldOption) (*column.Column, error) {
	return column.NewColumnFromArray(name, column.New(array.NewStringArray[uint32](values, nil)), opts...)
}

// Categories dictionary-encodes values using the narrowest code width able
// to index every distinct value.
//
// Example:
//
//	c, _ := colmem.Categories("level", []string{"info", "warn", "info"})
//	c.Array().Kind() // column.KindCategorical8
//
// Parameters:
//   - name: Column name
//   - values: Values to encode
//   - opts: Field options
//
// Returns:
//   - *column.Column: Categorical8, Categorical16 or Categorical32 column
//   - error: Field or column construction error
func Categories(name string, values []string, opts ...column.FieldOption) (*column.Column, error) {
	arr, err := categories(values)
	if err != nil {
		return nil, err
	}

	return column.NewColumnFromArray(name, arr, opts...)
}

func categories(values []string) (column.Array, error) {
	if c8, err := array.NewCategoricalFromStrings[uint8](values, nil); err == nil {
		return column.New(c8), nil
	} else if !errors.Is(err, errs.ErrOverflow) {
		return column.Array{}, err
	}

	if c16, err := array.NewCategoricalFromStrings[uint16](values, nil); err == nil {
		return column.New(c16), nil
	} else if !errors.Is(err, errs.ErrOverflow) {
		return column.Array{}, err
	}

	c32, err := array.NewCategoricalFromStrings[uint32](values, nil)
	if err != nil {
		return column.Array{}, err
	}

	return column.New(c32), nil
}

// Times builds a timestamp column counting unit since the Unix epoch. Days
// are not a timestamp unit.
//
// Parameters:
//   - name: Column name
//   - values: Instants to store
//   - unit: Storage unit (seconds, milliseconds, microseconds or nanoseconds)
//   - opts: Field options
//
// Returns:
//   - *column.Column: Datetime64 column typed as a timestamp
//   - error: errs.ErrInvalidTimeUnit for days or an unknown unit
func Times(name string, values []time.Time, unit format.TimeUnit, opts ...column.FieldOption) (*column.Column, error) {
	if !unit.Valid() || unit == format.UnitDays {
		return nil, errs.ErrInvalidTimeUnit
	}

	counts := make([]int64, len(values))
	for i, t := range values {
		counts[i] = array.FromTime(t, unit)
	}

	return column.NewColumnFromArray(name, column.New(array.NewDatetimeArray(counts, nil, unit)), opts...)
}

// NewEncoder creates a frame encoder. Without options frames are
// little-endian, uncompressed and checksummed.
//
// Available options:
//   - frame.WithLittleEndian() / frame.WithBigEndian()
//   - frame.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - frame.WithChecksum(true|false)
func NewEncoder(opts ...frame.EncoderOption) (*frame.Encoder, error) {
	return frame.NewEncoder(opts...)
}

// NewDefaultEncoder creates a frame encoder with recommended settings:
// little-endian, Zstd compression and checksums.
func NewDefaultEncoder() (*frame.Encoder, error) {
	return frame.NewEncoder(defaultEncoderOptions...)
}

// NewDecoder creates a decoder for the first frame in data.
func NewDecoder(data []byte, opts ...frame.DecoderOption) (*frame.Decoder, error) {
	return frame.NewDecoder(data, opts...)
}

// Encode writes cols as consecutive frames using the default encoder.
//
// Parameters:
//   - cols: Columns to encode
//
// Returns:
//   - []byte: Concatenated frames, one per column
//   - error: First encoding error
func Encode(cols ...*column.Column) ([]byte, error) {
	enc, err := NewDefaultEncoder()
	if err != nil {
		return nil, err
	}

	return enc.EncodeAll(cols...)
}

// Decode reads every frame in data.
//
// Parameters:
//   - data: Concatenated frames, as produced by Encode
//   - opts: Decoder options
//
// Returns:
//   - []*column.Column: Decoded columns
//   - error: First decoding error
func Decode(data []byte, opts ...frame.DecoderOption) ([]*column.Column, error) {
	return frame.DecodeAll(data, opts...)
}

// ColumnID returns the 64-bit xxHash of a column name. It is stable across
// processes and suitable as a lookup key.
func ColumnID(name string) uint64 {
	return hash.ID(name)
}
