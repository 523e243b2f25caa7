package frame

import (
	"encoding/binary"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/arloliu/colmem/array"
	"github.com/arloliu/colmem/bitmap"
	"github.com/arloliu/colmem/buffer"
	"github.com/arloliu/colmem/column"
	"github.com/arloliu/colmem/compress"
	"github.com/arloliu/colmem/endian"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/internal/hash"
	"github.com/arloliu/colmem/internal/options"
	"github.com/arloliu/colmem/internal/pool"
)

// Encoder writes columns as frames. An Encoder holds no per-column state
// and is safe for concurrent use once configured.
type Encoder struct {
	flag  Flag
	codec compress.Codec
}

// NewEncoder returns an encoder producing little-endian, uncompressed,
// checksummed frames unless configured otherwise.
//
// Parameters:
//   - opts: Encoder options (WithCompression, WithLittleEndian, WithBigEndian, WithChecksum)
//
// Returns:
//   - *Encoder: Encoder ready for use, safe for concurrent Encode calls
//   - error: First option error, e.g. errs.ErrInvalidCompression
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		flag:  NewFlag(),
		codec: compress.NewNoOpCompressor(),
	}
	e.flag.SetChecksum(true)

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Encode serializes c into a new frame.
func (e *Encoder) Encode(c *column.Column) ([]byte, error) {
	return e.AppendEncode(nil, c)
}

// AppendEncode appends the frame of c to dst and returns the extended slice.
//
// Parameters:
//   - dst: Buffer to append to (may be nil)
//   - c: Column to encode
//
// Returns:
//   - []byte: dst extended with one frame
//   - error: errs.ErrUnsupportedKind or a header/compression error
func (e *Encoder) AppendEncode(dst []byte, c *column.Column) ([]byte, error) {
	err := e.encode(c, func(h *Header, stored []byte) error {
		dst = slices.Grow(dst, HeaderSize+len(stored))
		dst = h.AppendTo(dst)
		dst = append(dst, stored...)

		return nil
	})

	return dst, err
}

// EncodeTo writes the frame of c to w and returns the number of bytes
// written.
//
// Parameters:
//   - w: Destination writer
//   - c: Column to encode
//
// Returns:
//   - int64: Number of bytes written
//   - error: Encoding error or the first write error
func (e *Encoder) EncodeTo(w io.Writer, c *column.Column) (int64, error) {
	var written int64
	err := e.encode(c, func(h *Header, stored []byte) error {
		hb := pool.GetHeaderBuffer()
		defer pool.PutHeaderBuffer(hb)

		hb.B = h.AppendTo(hb.B)
		n, err := hb.WriteTo(w)
		written += n
		if err != nil {
			return err
		}

		m, err := w.Write(stored)
		written += int64(m)

		return err
	})

	return written, err
}

// encode builds the header and stored payload of c and hands them to emit.
// stored is only valid during the call.
func (e *Encoder) encode(c *column.Column, emit func(h *Header, stored []byte) error) error {
	f := c.Field()
	arr := c.Array()

	h := Header{
		Flag: e.flag,
		Kind: arr.Kind(),
		Type: f.Type,
		Unit: f.Unit,
		Rows: uint64(arr.Len()),
	}
	h.Flag.SetNullable(f.Nullable)

	mask := arr.NullMask()
	hasValidity := arr.Kind() != column.KindNull && mask != nil
	h.Flag.SetValidity(hasValidity)

	if err := h.validate(); err != nil {
		return err
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	w := sectionWriter{buf: buf, swap: !endian.CompareNativeEndian(h.Flag.GetEndianEngine())}
	w.string(f.Name)
	w.metadata(f.Metadata)
	if hasValidity {
		w.bitmap(mask)
	}
	if err := w.array(arr); err != nil {
		return err
	}

	stored, err := e.codec.Compress(buf.Bytes())
	if err != nil {
		return fmt.Errorf("compress %s payload: %w", h.Flag.CompressionType(), err)
	}

	h.RawSize = uint64(buf.Len())
	h.StoredSize = uint64(len(stored))
	if h.Flag.HasChecksum() {
		h.Checksum = hash.Checksum(stored)
	}

	return emit(&h, stored)
}

// EncodeAll concatenates the frames of cols.
func (e *Encoder) EncodeAll(cols ...*column.Column) ([]byte, error) {
	var out []byte
	for _, c := range cols {
		var err error
		if out, err = e.AppendEncode(out, c); err != nil {
			return nil, fmt.Errorf("encode column %q: %w", c.Name(), err)
		}
	}

	return out, nil
}

type sectionWriter struct {
	buf  *pool.ByteBuffer
	swap bool
}

func (w *sectionWriter) uvarint(v uint64) {
	w.buf.B = binary.AppendUvarint(w.buf.B, v)
}

func (w *sectionWriter) section(b []byte) {
	w.uvarint(uint64(len(b)))
	w.buf.MustWrite(b)
}

func (w *sectionWriter) string(s string) {
	w.uvarint(uint64(len(s)))
	w.buf.B = append(w.buf.B, s...)
}

func (w *sectionWriter) metadata(md map[string]string) {
	w.uvarint(uint64(len(md)))
	for _, k := range slices.Sorted(maps.Keys(md)) {
		w.string(k)
		w.string(md[k])
	}
}

func (w *sectionWriter) bitmap(b *bitmap.Bitmap) {
	w.section(b.Bytes()[:bitmapBytes(b.Len())])
}

// fixed writes the raw words of b in the frame byte order.
func (w *sectionWriter) fixed(b []byte, width int) {
	w.uvarint(uint64(len(b)))
	start := w.buf.Len()
	w.buf.ExtendOrGrow(len(b))
	copy(w.buf.B[start:], b)
	if w.swap {
		endian.SwapInPlace(w.buf.B[start:], width)
	}
}

func (w *sectionWriter) array(a column.Array) error {
	switch a.Kind() {
	case column.KindNull:
	case column.KindBoolean:
		w.bitmap(column.Inner[*array.BooleanArray](a).Values())
	case column.KindInt8:
		writeFixed(w, column.Inner[*array.IntegerArray[int8]](a).Buffer())
	case column.KindInt16:
		writeFixed(w, column.Inner[*array.IntegerArray[int16]](a).Buffer())
	case column.KindInt32:
		writeFixed(w, column.Inner[*array.IntegerArray[int32]](a).Buffer())
	case column.KindInt64:
		writeFixed(w, column.Inner[*array.IntegerArray[int64]](a).Buffer())
	case column.KindUInt8:
		writeFixed(w, column.Inner[*array.IntegerArray[uint8]](a).Buffer())
	case column.KindUInt16:
		writeFixed(w, column.Inner[*array.IntegerArray[uint16]](a).Buffer())
	case column.KindUInt32:
		writeFixed(w, column.Inner[*array.IntegerArray[uint32]](a).Buffer())
	case column.KindUInt64:
		writeFixed(w, column.Inner[*array.IntegerArray[uint64]](a).Buffer())
	case column.KindFloat32:
		writeFixed(w, column.Inner[*array.FloatArray[float32]](a).Buffer())
	case column.KindFloat64:
		writeFixed(w, column.Inner[*array.FloatArray[float64]](a).Buffer())
	case column.KindDatetime32:
		writeFixed(w, column.Inner[*array.DatetimeArray[int32]](a).Buffer())
	case column.KindDatetime64:
		writeFixed(w, column.Inner[*array.DatetimeArray[int64]](a).Buffer())
	case column.KindString32:
		writeStrings(w, column.Inner[*array.StringArray[uint32]](a))
	case column.KindString64:
		writeStrings(w, column.Inner[*array.StringArray[uint64]](a))
	case column.KindCategorical8:
		writeCategorical(w, column.Inner[*array.CategoricalArray[uint8]](a))
	case column.KindCategorical16:
		writeCategorical(w, column.Inner[*array.CategoricalArray[uint16]](a))
	case column.KindCategorical32:
		writeCategorical(w, column.Inner[*array.CategoricalArray[uint32]](a))
	case column.KindCategorical64:
		writeCategorical(w, column.Inner[*array.CategoricalArray[uint64]](a))
	default:
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedKind, a.Kind())
	}

	return nil
}

func writeFixed[T buffer.Elem](w *sectionWriter, b *buffer.Buffer[T]) {
	w.fixed(b.Bytes(), widthOf[T]())
}

func writeStrings[O array.Offset](w *sectionWriter, s *array.StringArray[O]) {
	writeFixed(w, s.OffsetsBuffer())
	w.section(s.Data())
}

func writeCategorical[C array.Code](w *sectionWriter, c *array.CategoricalArray[C]) {
	writeFixed(w, c.CodesBuffer())

	dict := c.Dictionary()
	w.uvarint(uint64(len(dict)))
	for _, v := range dict {
		w.string(v)
	}
}

func bitmapBytes(n int) int {
	return (n + 7) / 8
}
