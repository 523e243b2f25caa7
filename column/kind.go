package column

import "github.com/arloliu/colmem/format"

// Kind identifies the physical payload held by an Array.
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindFloat32
	KindFloat64
	KindString32
	KindString64
	KindCategorical8
	KindCategorical16
	KindCategorical32
	KindCategorical64
	KindDatetime32
	KindDatetime64
	numKinds
)

type kindInfo struct {
	name string
	typ  format.Type // default logical type
}

var kinds = [numKinds]kindInfo{
	KindNull:          {"Null", format.TypeNull},
	KindBoolean:       {"Boolean", format.TypeBoolean},
	KindInt8:          {"Int8", format.TypeInt8},
	KindInt16:         {"Int16", format.TypeInt16},
	KindInt32:         {"Int32", format.TypeInt32},
	KindInt64:         {"Int64", format.TypeInt64},
	KindUInt8:         {"UInt8", format.TypeUInt8},
	KindUInt16:        {"UInt16", format.TypeUInt16},
	KindUInt32:        {"UInt32", format.TypeUInt32},
	KindUInt64:        {"UInt64", format.TypeUInt64},
	KindFloat32:       {"Float32", format.TypeFloat32},
	KindFloat64:       {"Float64", format.TypeFloat64},
	KindString32:      {"String32", format.TypeString},
	KindString64:      {"String64", format.TypeLargeString},
	KindCategorical8:  {"Categorical8", format.TypeDictionary8},
	KindCategorical16: {"Categorical16", format.TypeDictionary16},
	KindCategorical32: {"Categorical32", format.TypeDictionary32},
	KindCategorical64: {"Categorical64", format.TypeDictionary64},
	KindDatetime32:    {"Datetime32", format.TypeDate32},
	KindDatetime64:    {"Datetime64", format.TypeTimestamp},
}

func (k Kind) String() string {
	if k < numKinds {
		return kinds[k].name
	}

	return "Unknown"
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k < numKinds
}

// IsInteger reports whether k holds signed or unsigned integers.
func (k Kind) IsInteger() bool {
	return k >= KindInt8 && k <= KindUInt64
}

// IsFloat reports whether k holds floating point values.
func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// IsNumeric reports whether k holds integers or floats.
func (k Kind) IsNumeric() bool {
	return k.IsInteger() || k.IsFloat()
}

// IsString reports whether k holds offset-encoded strings.
func (k Kind) IsString() bool {
	return k == KindString32 || k == KindString64
}

// IsCategorical reports whether k holds dictionary-encoded strings.
func (k Kind) IsCategorical() bool {
	return k >= KindCategorical8 && k <= KindCategorical64
}

// IsText reports whether k holds strings in either encoding.
func (k Kind) IsText() bool {
	return k.IsString() || k.IsCategorical()
}

// IsTemporal reports whether k holds datetime values.
func (k Kind) IsTemporal() bool {
	return k == KindDatetime32 || k == KindDatetime64
}

// DefaultType returns the logical type a field gets when inferred from k.
func (k Kind) DefaultType() format.Type {
	if k < numKinds {
		return kinds[k].typ
	}

	return format.TypeNull
}

// Accepts reports whether a field of logical type t may describe a payload of
// kind k. A Null payload is accepted by every type.
func (k Kind) Accepts(t format.Type) bool {
	switch k {
	case KindNull:
		return t.Valid()
	case KindDatetime32:
		return t == format.TypeDate32 || t == format.TypeTime32 || t == format.TypeDuration32
	case KindDatetime64:
		return t == format.TypeDate64 || t == format.TypeTime64 ||
			t == format.TypeTimestamp || t == format.TypeDuration64
	default:
		return k.DefaultType() == t
	}
}
