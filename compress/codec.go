package compress

import (
	"fmt"

	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/format"
)

// Compressor compresses one block.
//
// The returned slice is owned by the caller. The input is not modified, but
// a codec may return it as-is (None does).
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm. It returns an
// error if data is corrupted or was produced by another algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor is implemented by codecs whose block format does not
// record the decompressed size. Callers that know the size should prefer it.
type SizedDecompressor interface {
	DecompressSize(data []byte, size int) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats summarizes one compression.
type CompressionStats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size, or 0 for empty
// input. Values below 1 mean the codec saved space.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec returns a new codec for compressionType. target names the data
// being compressed in the error message.
//
// Parameters:
//   - compressionType: Compression algorithm
//   - target: Name of the data being compressed, used in error messages
//
// Returns:
//   - Codec: New codec instance
//   - error: errs.ErrInvalidCompression for an unknown algorithm
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s compression %s", errs.ErrInvalidCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in codec for compressionType.
//
// Parameters:
//   - compressionType: Compression algorithm
//
// Returns:
//   - Codec: Shared codec, safe for concurrent use
//   - error: errs.ErrInvalidCompression for an unknown algorithm
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}

// Decompress decompresses data with codec, using the known decompressed size
// when the codec can take advantage of it.
//
// Parameters:
//   - codec: Codec the data was compressed with
//   - data: Compressed block
//   - size: Expected decompressed size
//
// Returns:
//   - []byte: Decompressed data
//   - error: Decompression error if any
func Decompress(codec Decompressor, data []byte, size int) ([]byte, error) {
	if sd, ok := codec.(SizedDecompressor); ok && size >= 0 {
		return sd.DecompressSize(data, size)
	}

	return codec.Decompress(data)
}
