// Package errs defines the sentinel errors shared by every colmem package.
//
// Callers compare against the sentinels with errors.Is. Conversion failures
// carry extra detail in a *ConversionError, which unwraps to its sentinel.
package errs

import "errors"

// Conversion errors.
var (
	// ErrOverflow is returned when a value does not fit the target type.
	ErrOverflow = errors.New("value overflows target type")
	// ErrLossyCast is returned when a conversion would lose information.
	ErrLossyCast = errors.New("lossy cast")
	// ErrTypeError is returned for a general type mismatch or invalid cast.
	ErrTypeError = errors.New("type error")
	// ErrIncompatibleType is returned when two arrays or an array and a
	// requested payload type do not match.
	ErrIncompatibleType = errors.New("incompatible types")
	// ErrNull is returned when a required value is null.
	ErrNull = errors.New("unexpected null value")
)

// Field and column errors.
var (
	ErrUnnamedField     = errors.New("field name is empty and no namer was supplied")
	ErrLengthMismatch   = errors.New("column length mismatch")
	ErrNullableMismatch = errors.New("non-nullable field holds an array with nulls")
	ErrUnsupportedKind  = errors.New("unsupported array kind")
	ErrInvalidTimeUnit  = errors.New("invalid time unit")
	ErrInvalidOption    = errors.New("invalid option")
)

// Frame errors.
var (
	ErrInvalidHeaderSize    = errors.New("invalid frame header size")
	ErrInvalidMagicNumber   = errors.New("invalid frame magic number")
	ErrInvalidHeaderFlags   = errors.New("invalid frame header flags")
	ErrInvalidPayloadSize   = errors.New("invalid frame payload size")
	ErrChecksumMismatch     = errors.New("frame checksum mismatch")
	ErrInvalidCompression   = errors.New("invalid compression type")
	ErrInvalidBufferLayout  = errors.New("invalid buffer layout")
	ErrNativeEndianRequired = errors.New("zero-copy export requires a little-endian host")
)
