package compress

// ZstdCompressor is the Zstandard codec. It trades encoding speed for the
// best ratio of the built-in codecs.
//
// The default build uses klauspost/compress/zstd. Building with
// -tags gozstd (and cgo enabled) switches to the valyala/gozstd bindings.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor returns a Zstd codec at the default level.
//
// Returns:
//   - ZstdCompressor: New Zstd codec instance
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
