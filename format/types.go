// Package format defines the type tags shared across colmem: logical data
// types carried by fields, time units of temporal arrays, and the compression
// types understood by the frame codec.
package format

type (
	// Type is the logical data type of a field.
	Type uint8
	// TimeUnit is the resolution of a temporal value.
	TimeUnit uint8
	// CompressionType identifies the codec applied to a frame payload.
	CompressionType uint8
)

const (
	TypeNull         Type = 0x00
	TypeBoolean      Type = 0x01
	TypeInt8         Type = 0x02
	TypeInt16        Type = 0x03
	TypeInt32        Type = 0x04
	TypeInt64        Type = 0x05
	TypeUInt8        Type = 0x06
	TypeUInt16       Type = 0x07
	TypeUInt32       Type = 0x08
	TypeUInt64       Type = 0x09
	TypeFloat32      Type = 0x0a
	TypeFloat64      Type = 0x0b
	TypeString       Type = 0x0c // TypeString has 32-bit offsets.
	TypeLargeString  Type = 0x0d // TypeLargeString has 64-bit offsets.
	TypeDictionary8  Type = 0x0e
	TypeDictionary16 Type = 0x0f
	TypeDictionary32 Type = 0x10
	TypeDictionary64 Type = 0x11
	TypeDate32       Type = 0x12 // TypeDate32 counts days since the epoch.
	TypeDate64       Type = 0x13 // TypeDate64 counts milliseconds since the epoch.
	TypeTime32       Type = 0x14
	TypeTime64       Type = 0x15
	TypeTimestamp    Type = 0x16
	TypeDuration32   Type = 0x17
	TypeDuration64   Type = 0x18
)

const (
	UnitSeconds      TimeUnit = 0x1
	UnitMilliseconds TimeUnit = 0x2
	UnitMicroseconds TimeUnit = 0x3
	UnitNanoseconds  TimeUnit = 0x4
	UnitDays         TimeUnit = 0x5
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

var typeNames = [...]string{
	TypeNull:         "Null",
	TypeBoolean:      "Boolean",
	TypeInt8:         "Int8",
	TypeInt16:        "Int16",
	TypeInt32:        "Int32",
	TypeInt64:        "Int64",
	TypeUInt8:        "UInt8",
	TypeUInt16:       "UInt16",
	TypeUInt32:       "UInt32",
	TypeUInt64:       "UInt64",
	TypeFloat32:      "Float32",
	TypeFloat64:      "Float64",
	TypeString:       "String",
	TypeLargeString:  "LargeString",
	TypeDictionary8:  "Dictionary8",
	TypeDictionary16: "Dictionary16",
	TypeDictionary32: "Dictionary32",
	TypeDictionary64: "Dictionary64",
	TypeDate32:       "Date32",
	TypeDate64:       "Date64",
	TypeTime32:       "Time32",
	TypeTime64:       "Time64",
	TypeTimestamp:    "Timestamp",
	TypeDuration32:   "Duration32",
	TypeDuration64:   "Duration64",
}

func (t Type) String() string {
	if int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}

	return "Unknown"
}

// Valid reports whether t is a known type tag.
func (t Type) Valid() bool {
	return int(t) < len(typeNames)
}

// IsTemporal reports whether t is a date, time, timestamp or duration type.
func (t Type) IsTemporal() bool {
	return t >= TypeDate32 && t <= TypeDuration64
}

// IsDictionary reports whether t is a dictionary-encoded string type.
func (t Type) IsDictionary() bool {
	return t >= TypeDictionary8 && t <= TypeDictionary64
}

// DefaultUnit returns the unit implied by t, or 0 when t carries no fixed unit.
func (t Type) DefaultUnit() TimeUnit {
	switch t {
	case TypeDate32:
		return UnitDays
	case TypeDate64:
		return UnitMilliseconds
	default:
		return 0
	}
}

func (u TimeUnit) String() string {
	switch u {
	case UnitSeconds:
		return "s"
	case UnitMilliseconds:
		return "ms"
	case UnitMicroseconds:
		return "us"
	case UnitNanoseconds:
		return "ns"
	case UnitDays:
		return "d"
	default:
		return "Unknown"
	}
}

// Valid reports whether u is a known time unit.
func (u TimeUnit) Valid() bool {
	return u >= UnitSeconds && u <= UnitDays
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
