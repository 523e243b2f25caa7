// Package frame serializes one column.Column into a self-describing binary
// frame and back.
//
// # Layout
//
// A frame is a fixed 40-byte header followed by the stored payload:
//
//	+-------------------+----------------------------------------------+
//	| Header (40 bytes) | Payload (StoredSize bytes, maybe compressed) |
//	+-------------------+----------------------------------------------+
//
// Header fields:
//
//	0-1   Options      flags + magic number, always little-endian
//	2     Compression  format.CompressionType of the payload
//	3     Kind         column.Kind of the array
//	4     Type         format.Type of the field
//	5     Unit         format.TimeUnit of the field, 0 if not temporal
//	6-7   Reserved     must be zero
//	8-15  Rows         number of elements
//	16-23 RawSize      payload size before compression
//	24-31 StoredSize   payload size as stored
//	32-39 Checksum     xxHash64 of the stored payload, 0 if disabled
//
// Options bits: 0 validity present, 1 big-endian, 2 checksum present,
// 3 nullable field, 4-15 magic number 0xC01.
//
// The decompressed payload is a sequence of sections. Each section is a
// uvarint length followed by that many bytes:
//
//	name, metadata, [validity], array buffers...
//
// Metadata is a uvarint pair count followed by key and value strings in key
// order. The array buffers depend on the kind: one values section for
// fixed-width and boolean arrays, offsets then bytes for strings, and codes
// then a dictionary (count plus strings) for categorical arrays. Fixed-width
// words are written in the byte order recorded in the header.
//
// Frames can be concatenated; DecodeAll reads them back in order.
package frame
