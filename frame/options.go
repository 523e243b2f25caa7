package frame

import (
	"fmt"

	"github.com/arloliu/colmem/compress"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/format"
	"github.com/arloliu/colmem/internal/options"
)

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithCompression selects the payload codec. The default is no compression.
func WithCompression(ct format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return err
		}
		e.codec = codec
		e.flag.SetCompression(ct)

		return nil
	})
}

// WithLittleEndian writes fixed-width words little-endian. This is the
// default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.flag.WithLittleEndian()
	})
}

// WithBigEndian writes fixed-width words big-endian.
func WithBigEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.flag.WithBigEndian()
	})
}

// WithChecksum enables or disables the payload checksum. It is enabled by
// default.
func WithChecksum(enabled bool) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.flag.SetChecksum(enabled)
	})
}

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*Decoder]

// WithMaxPayloadSize bounds the decompressed payload size the decoder
// accepts.
func WithMaxPayloadSize(n uint64) DecoderOption {
	return options.New(func(d *Decoder) error {
		if n == 0 {
			return fmt.Errorf("%w: max payload size must be positive", errs.ErrInvalidOption)
		}
		d.maxPayload = n

		return nil
	})
}

// WithVerifyChecksum enables or disables checksum verification. It is
// enabled by default; frames without a checksum are never verified.
func WithVerifyChecksum(enabled bool) DecoderOption {
	return options.NoError(func(d *Decoder) {
		d.verify = enabled
	})
}
