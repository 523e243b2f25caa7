package frame

import (
	"fmt"

	"github.com/arloliu/colmem/compress"
	"github.com/arloliu/colmem/endian"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/format"
)

// Flag is the packed options word and compression byte of a header.
type Flag struct {
	Options     uint16
	Compression uint8
}

// NewFlag returns a little-endian flag with the v1 magic number and no
// compression.
func NewFlag() Flag {
	return Flag{
		Options:     MagicColumnV1Opt,
		Compression: uint8(format.CompressionNone),
	}
}

// HasValidity reports whether a validity section follows the metadata.
func (f Flag) HasValidity() bool {
	return f.Options&ValidityMask != 0
}

// SetValidity records whether a validity section is present.
func (f *Flag) SetValidity(present bool) {
	f.set(ValidityMask, present)
}

// HasChecksum reports whether the header carries a payload checksum.
func (f Flag) HasChecksum() bool {
	return f.Options&ChecksumMask != 0
}

// SetChecksum records whether the header carries a payload checksum.
func (f *Flag) SetChecksum(enabled bool) {
	f.set(ChecksumMask, enabled)
}

// IsNullable reports whether the encoded field is nullable.
func (f Flag) IsNullable() bool {
	return f.Options&NullableMask != 0
}

// SetNullable records the nullability of the encoded field.
func (f *Flag) SetNullable(nullable bool) {
	f.set(NullableMask, nullable)
}

// IsLittleEndian reports whether fixed-width words are little-endian.
func (f Flag) IsLittleEndian() bool {
	return f.Options&EndiannessMask == 0
}

// IsBigEndian reports whether fixed-width words are big-endian.
func (f Flag) IsBigEndian() bool {
	return f.Options&EndiannessMask != 0
}

// WithLittleEndian selects little-endian words.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian selects big-endian words.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetEndianEngine returns the engine matching the endianness bit.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// GetMagicNumber returns the magic number bits.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// CompressionType returns the payload compression.
func (f Flag) CompressionType() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// SetCompression sets the payload compression.
func (f *Flag) SetCompression(ct format.CompressionType) {
	f.Compression = uint8(ct)
}

// Validate checks the magic number and compression type.
func (f Flag) Validate() error {
	if f.GetMagicNumber() != MagicColumnV1Opt {
		return fmt.Errorf("%w: %#04x", errs.ErrInvalidMagicNumber, f.GetMagicNumber())
	}
	if _, err := compress.GetCodec(f.CompressionType()); err != nil {
		return err
	}

	return nil
}

func (f *Flag) set(mask uint16, on bool) {
	if on {
		f.Options |= mask
	} else {
		f.Options &^= mask
	}
}
