package frame

import (
	"fmt"

	"github.com/arloliu/colmem/column"
	"github.com/arloliu/colmem/compress"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/format"
)

// Header is the fixed-size header at the start of every frame.
type Header struct {
	Flag       Flag            // byte offset 0-2
	Kind       column.Kind     // byte offset 3
	Type       format.Type     // byte offset 4
	Unit       format.TimeUnit // byte offset 5
	Rows       uint64          // byte offset 8-15
	RawSize    uint64          // byte offset 16-23
	StoredSize uint64          // byte offset 24-31
	Checksum   uint64          // byte offset 32-39
}

// Size returns the total frame size: header plus stored payload.
func (h *Header) Size() uint64 {
	return HeaderSize + h.StoredSize
}

// Stats reports the compression achieved on the payload.
func (h *Header) Stats() compress.CompressionStats {
	return compress.CompressionStats{
		Algorithm:      h.Flag.CompressionType(),
		OriginalSize:   int64(h.RawSize),
		CompressedSize: int64(h.StoredSize),
	}
}

// Parse parses the header from exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// the options word is always little-endian so the byte order can be read
	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.Compression = data[2]
	h.Kind = column.Kind(data[3])
	h.Type = format.Type(data[4])
	h.Unit = format.TimeUnit(data[5])

	if err := h.Flag.Validate(); err != nil {
		return err
	}
	if data[6] != 0 || data[7] != 0 {
		return fmt.Errorf("%w: reserved bytes set", errs.ErrInvalidHeaderFlags)
	}

	engine := h.Flag.GetEndianEngine()
	h.Rows = engine.Uint64(data[8:16])
	h.RawSize = engine.Uint64(data[16:24])
	h.StoredSize = engine.Uint64(data[24:32])
	h.Checksum = engine.Uint64(data[32:40])

	return h.validate()
}

func (h *Header) validate() error {
	if !h.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %d", errs.ErrInvalidHeaderFlags, h.Kind)
	}
	if !h.Kind.Accepts(h.Type) {
		return fmt.Errorf("%w: kind %s cannot hold %s", errs.ErrInvalidHeaderFlags, h.Kind, h.Type)
	}
	if h.Kind == column.KindNull && h.Flag.HasValidity() {
		return fmt.Errorf("%w: null kind with validity section", errs.ErrInvalidHeaderFlags)
	}
	if h.Unit != 0 && !h.Unit.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidTimeUnit, h.Unit)
	}
	if h.Kind.IsTemporal() && !h.Unit.Valid() {
		return fmt.Errorf("%w: temporal kind %s without unit", errs.ErrInvalidTimeUnit, h.Kind)
	}
	if h.Rows > maxRows {
		return fmt.Errorf("%w: %d rows", errs.ErrInvalidPayloadSize, h.Rows)
	}
	if !h.Flag.HasChecksum() && h.Checksum != 0 {
		return fmt.Errorf("%w: checksum without checksum flag", errs.ErrInvalidHeaderFlags)
	}

	return nil
}

// AppendTo appends the serialized header to dst.
func (h *Header) AppendTo(dst []byte) []byte {
	engine := h.Flag.GetEndianEngine()

	dst = append(dst,
		byte(h.Flag.Options), byte(h.Flag.Options>>8),
		h.Flag.Compression,
		byte(h.Kind),
		byte(h.Type),
		byte(h.Unit),
		0, 0,
	)
	dst = engine.AppendUint64(dst, h.Rows)
	dst = engine.AppendUint64(dst, h.RawSize)
	dst = engine.AppendUint64(dst, h.StoredSize)
	dst = engine.AppendUint64(dst, h.Checksum)

	return dst
}

// Bytes serializes the header into a new slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// ParseHeader parses the header at the start of data.
//
// Parameters:
//   - data: Buffer holding at least HeaderSize bytes
//
// Returns:
//   - Header: Parsed and validated header
//   - error: errs.ErrInvalidHeaderSize if data is short, or a validation error
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
