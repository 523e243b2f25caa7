package frame

import "math"

const (
	// Options bit masks
	ValidityMask     = 0x0001 // bit 0: validity section present
	EndiannessMask   = 0x0002 // bit 1: 0=little, 1=big
	ChecksumMask     = 0x0004 // bit 2: checksum present
	NullableMask     = 0x0008 // bit 3: field is nullable
	MagicNumberMask  = 0xFFF0 // bits 4-15
	flagBitsMask     = ValidityMask | EndiannessMask | ChecksumMask | NullableMask
	MagicColumnV1Opt = 0xC010 // column frame format v1
)

const (
	HeaderSize = 40 // fixed header size in bytes

	// DefaultMaxPayloadSize bounds the decompressed payload accepted by a
	// Decoder unless overridden with WithMaxPayloadSize.
	DefaultMaxPayloadSize = 1 << 30

	maxRows = math.MaxInt32 * 8
)
