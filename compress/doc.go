// Package compress provides the block codecs used by the frame format.
//
// Four algorithms are available, selected by format.CompressionType:
//
//   - None: returns its input unchanged
//   - Zstd: best ratio; pure Go by default, cgo gozstd with the gozstd build tag
//   - S2: klauspost S2, fastest to encode and decode
//   - LZ4: pierrec LZ4 block format
//
// Frame payloads are buffers of fixed-width values, string bytes and packed
// bitmaps. Sorted or low-cardinality columns compress well under every codec;
// high-entropy floats usually do not, in which case None avoids the cost.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//		return err
//	}
//	packed, err := codec.Compress(payload)
//
// Codecs returned by GetCodec are shared and safe for concurrent use.
package compress
