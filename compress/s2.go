package compress

import "github.com/klauspost/compress/s2"

// S2Compressor is the klauspost S2 codec.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor returns an S2 codec.
//
// Returns:
//   - S2Compressor: New S2 codec instance
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data with S2.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed block (nil if input is empty)
//   - error: Always nil
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses an S2 block.
//
// Parameters:
//   - data: Compressed block
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: s2.ErrCorrupt or s2.ErrTooLarge on invalid input
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
