// Package endian selects the byte order used when colmem buffers leave the
// process.
//
// In-memory buffers are always in host order. Zero-copy hand-off (Arrow
// export) is only valid when the host is little-endian, which is what
// IsNativeLittleEndian checks. The frame codec writes headers through an
// EndianEngine so that both orders can be produced and read back:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, rows)
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness returns the byte order of the host.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether buffers can be shared as-is with
// little-endian consumers such as Arrow.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// IsNativeBigEndian reports whether the host is big-endian.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host order, in which
// case fixed-width payloads can be written without swapping.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// SwapInPlace reverses the byte order of every width-byte word in b. It
// panics if len(b) is not a multiple of width. Widths of 1 leave b unchanged.
func SwapInPlace(b []byte, width int) {
	if width <= 1 {
		return
	}
	if len(b)%width != 0 {
		panic("endian: buffer length is not a multiple of the word width")
	}

	for w := 0; w < len(b); w += width {
		word := b[w : w+width]
		for i, j := 0, width-1; i < j; i, j = i+1, j-1 {
			word[i], word[j] = word[j], word[i]
		}
	}
}
