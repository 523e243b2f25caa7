package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/colmem/array"
	"github.com/arloliu/colmem/bitmap"
	"github.com/arloliu/colmem/buffer"
	"github.com/arloliu/colmem/column"
	"github.com/arloliu/colmem/compress"
	"github.com/arloliu/colmem/endian"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/format"
	"github.com/arloliu/colmem/internal/hash"
	"github.com/arloliu/colmem/internal/options"
	"github.com/arloliu/colmem/internal/pool"
	"github.com/arloliu/colmem/internal/unsafecast"
)

// Decoder reads one frame. The input is never retained by the decoded
// column: every buffer is copied out.
type Decoder struct {
	data       []byte
	header     Header
	maxPayload uint64
	verify     bool
}

// NewDecoder parses the header at the start of data and checks that the
// stored payload is present. Bytes past the frame are ignored.
//
// Parameters:
//   - data: Buffer starting with a frame header
//   - opts: Decoder options (WithMaxPayloadSize, WithVerifyChecksum)
//
// Returns:
//   - *Decoder: Decoder positioned on the frame
//   - error: errs.ErrInvalidHeaderSize, errs.ErrInvalidMagicNumber, errs.ErrInvalidHeaderFlags,
//     errs.ErrInvalidTimeUnit or errs.ErrInvalidPayloadSize
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	d := &Decoder{
		maxPayload: DefaultMaxPayloadSize,
		verify:     true,
	}
	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if h.StoredSize > uint64(len(data)-HeaderSize) {
		return nil, fmt.Errorf("%w: stored size %d exceeds %d available bytes",
			errs.ErrInvalidPayloadSize, h.StoredSize, len(data)-HeaderSize)
	}
	if h.RawSize > d.maxPayload {
		return nil, fmt.Errorf("%w: raw size %d exceeds limit %d", errs.ErrInvalidPayloadSize, h.RawSize, d.maxPayload)
	}
	if h.Flag.CompressionType() == format.CompressionNone && h.RawSize != h.StoredSize {
		return nil, fmt.Errorf("%w: uncompressed frame with raw size %d and stored size %d",
			errs.ErrInvalidPayloadSize, h.RawSize, h.StoredSize)
	}

	d.header = h
	d.data = data[:h.Size()]

	return d, nil
}

// Header returns the parsed header.
func (d *Decoder) Header() Header {
	return d.header
}

// Size returns the frame size in bytes.
func (d *Decoder) Size() int {
	return len(d.data)
}

// Decode verifies the checksum, decompresses the payload and rebuilds the
// column.
func (d *Decoder) Decode() (*column.Column, error) {
	h := d.header
	stored := d.data[HeaderSize:]

	if d.verify && h.Flag.HasChecksum() {
		if sum := hash.Checksum(stored); sum != h.Checksum {
			return nil, fmt.Errorf("%w: got %#016x, want %#016x", errs.ErrChecksumMismatch, sum, h.Checksum)
		}
	}

	codec, err := compress.GetCodec(h.Flag.CompressionType())
	if err != nil {
		return nil, err
	}
	raw, err := compress.Decompress(codec, stored, int(h.RawSize))
	if err != nil {
		return nil, fmt.Errorf("decompress %s payload: %w", h.Flag.CompressionType(), err)
	}
	if uint64(len(raw)) != h.RawSize {
		return nil, fmt.Errorf("%w: decompressed %d bytes, want %d", errs.ErrInvalidPayloadSize, len(raw), h.RawSize)
	}

	r := sectionReader{buf: raw, swap: !endian.CompareNativeEndian(h.Flag.GetEndianEngine())}
	c, err := d.decodeColumn(&r)
	if err != nil {
		return nil, err
	}
	if r.off != len(r.buf) {
		c.Release()
		return nil, fmt.Errorf("%w: %d trailing payload bytes", errs.ErrInvalidBufferLayout, len(r.buf)-r.off)
	}

	return c, nil
}

func (d *Decoder) decodeColumn(r *sectionReader) (*column.Column, error) {
	h := d.header
	rows := int(h.Rows)

	name, err := r.string()
	if err != nil {
		return nil, fmt.Errorf("read name: %w", err)
	}
	md, err := r.metadata()
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var mask *bitmap.Bitmap
	if h.Flag.HasValidity() {
		if mask, err = r.bitmap(rows); err != nil {
			return nil, fmt.Errorf("read validity: %w", err)
		}
	}

	arr, err := r.array(h.Kind, rows, mask, h.Unit)
	if err != nil {
		return nil, fmt.Errorf("read %s values: %w", h.Kind, err)
	}

	var opts []column.FieldOption
	if h.Unit != 0 {
		opts = append(opts, column.WithTimeUnit(h.Unit))
	}
	if len(md) > 0 {
		opts = append(opts, column.WithMetadata(md))
	}
	field, err := column.NewField(name, h.Type, h.Flag.IsNullable(), opts...)
	if err != nil {
		arr.Release()
		return nil, err
	}

	c, err := column.NewColumn(field, arr)
	if err != nil {
		arr.Release()
		return nil, err
	}

	return c, nil
}

// DecodeAll decodes every frame in data, in order.
//
// Parameters:
//   - data: Concatenated frames
//   - opts: Decoder options applied to every frame
//
// Returns:
//   - []*column.Column: Decoded columns in frame order
//   - error: First decoding error, prefixed with the frame index. Columns decoded
//     before the failure are released.
func DecodeAll(data []byte, opts ...DecoderOption) ([]*column.Column, error) {
	var cols []*column.Column
	for len(data) > 0 {
		d, err := NewDecoder(data, opts...)
		if err != nil {
			releaseAll(cols)
			return nil, fmt.Errorf("frame %d: %w", len(cols), err)
		}
		c, err := d.Decode()
		if err != nil {
			releaseAll(cols)
			return nil, fmt.Errorf("frame %d: %w", len(cols), err)
		}
		cols = append(cols, c)
		data = data[d.Size():]
	}

	return cols, nil
}

func releaseAll(cols []*column.Column) {
	for _, c := range cols {
		c.Release()
	}
}

type sectionReader struct {
	buf  []byte
	off  int
	swap bool
}

func (r *sectionReader) uvarint() (uint64, error) {
	v, n := binary.Uvarint(r.buf[r.off:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: bad length prefix at offset %d", errs.ErrInvalidBufferLayout, r.off)
	}
	r.off += n

	return v, nil
}

func (r *sectionReader) section() ([]byte, error) {
	n, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(r.buf)-r.off) {
		return nil, fmt.Errorf("%w: section of %d bytes at offset %d overruns payload", errs.ErrInvalidBufferLayout, n, r.off)
	}
	s := r.buf[r.off : r.off+int(n)]
	r.off += int(n)

	return s, nil
}

func (r *sectionReader) sizedSection(want int) ([]byte, error) {
	s, err := r.section()
	if err != nil {
		return nil, err
	}
	if len(s) != want {
		return nil, fmt.Errorf("%w: section holds %d bytes, want %d", errs.ErrInvalidBufferLayout, len(s), want)
	}

	return s, nil
}

func (r *sectionReader) string() (string, error) {
	s, err := r.section()
	return string(s), err
}

// count reads an element count that cannot exceed the remaining bytes, each
// element taking at least one byte.
func (r *sectionReader) count() (int, error) {
	n, err := r.uvarint()
	if err != nil {
		return 0, err
	}
	if n > uint64(len(r.buf)-r.off) {
		return 0, fmt.Errorf("%w: count %d overruns payload", errs.ErrInvalidBufferLayout, n)
	}

	return int(n), nil
}

func (r *sectionReader) metadata() (map[string]string, error) {
	n, err := r.count()
	if err != nil || n == 0 {
		return nil, err
	}

	md := make(map[string]string, n)
	for range n {
		k, err := r.string()
		if err != nil {
			return nil, err
		}
		v, err := r.string()
		if err != nil {
			return nil, err
		}
		if _, dup := md[k]; dup {
			return nil, fmt.Errorf("%w: duplicate metadata key %q", errs.ErrInvalidBufferLayout, k)
		}
		md[k] = v
	}

	return md, nil
}

func (r *sectionReader) bitmap(rows int) (*bitmap.Bitmap, error) {
	s, err := r.sizedSection(bitmapBytes(rows))
	if err != nil {
		return nil, err
	}

	return bitmap.FromBytes(s, rows), nil
}

func (r *sectionReader) array(k column.Kind, rows int, mask *bitmap.Bitmap, unit format.TimeUnit) (column.Array, error) {
	switch k {
	case column.KindNull:
		return column.NewNull(rows), nil
	case column.KindBoolean:
		values, err := r.bitmap(rows)
		if err != nil {
			return column.Array{}, err
		}
		return column.New(array.NewBooleanArrayFromBitmap(values, mask)), nil
	case column.KindInt8:
		return readIntegers[int8](r, rows, mask)
	case column.KindInt16:
		return readIntegers[int16](r, rows, mask)
	case column.KindInt32:
		return readIntegers[int32](r, rows, mask)
	case column.KindInt64:
		return readIntegers[int64](r, rows, mask)
	case column.KindUInt8:
		return readIntegers[uint8](r, rows, mask)
	case column.KindUInt16:
		return readIntegers[uint16](r, rows, mask)
	case column.KindUInt32:
		return readIntegers[uint32](r, rows, mask)
	case column.KindUInt64:
		return readIntegers[uint64](r, rows, mask)
	case column.KindFloat32:
		return readFloats[float32](r, rows, mask)
	case column.KindFloat64:
		return readFloats[float64](r, rows, mask)
	case column.KindDatetime32:
		return readDatetimes[int32](r, rows, mask, unit)
	case column.KindDatetime64:
		return readDatetimes[int64](r, rows, mask, unit)
	case column.KindString32:
		return readStrings[uint32](r, rows, mask)
	case column.KindString64:
		return readStrings[uint64](r, rows, mask)
	case column.KindCategorical8:
		return readCategorical[uint8](r, rows, mask)
	case column.KindCategorical16:
		return readCategorical[uint16](r, rows, mask)
	case column.KindCategorical32:
		return readCategorical[uint32](r, rows, mask)
	case column.KindCategorical64:
		return readCategorical[uint64](r, rows, mask)
	default:
		return column.Array{}, fmt.Errorf("%w: %s", errs.ErrUnsupportedKind, k)
	}
}

func widthOf[T buffer.Elem]() int {
	return int(unsafecast.Sizeof[T]())
}

// readFixed copies n words out of the next section into host order.
func readFixed[T buffer.Elem](r *sectionReader, n int) ([]T, error) {
	width := widthOf[T]()
	s, err := r.sizedSection(n * width)
	if err != nil {
		return nil, err
	}

	values := make([]T, n)
	raw := unsafecast.Slice[T, byte](values)
	copy(raw, s)
	if r.swap {
		endian.SwapInPlace(raw, width)
	}

	return values, nil
}

func readIntegers[T array.Integer](r *sectionReader, rows int, mask *bitmap.Bitmap) (column.Array, error) {
	values, err := readFixed[T](r, rows)
	if err != nil {
		return column.Array{}, err
	}

	return column.New(array.NewIntegerArray(values, mask)), nil
}

func readFloats[T array.Float](r *sectionReader, rows int, mask *bitmap.Bitmap) (column.Array, error) {
	values, err := readFixed[T](r, rows)
	if err != nil {
		return column.Array{}, err
	}

	return column.New(array.NewFloatArray(values, mask)), nil
}

func readDatetimes[T array.Temporal](r *sectionReader, rows int, mask *bitmap.Bitmap, unit format.TimeUnit) (column.Array, error) {
	values, err := readFixed[T](r, rows)
	if err != nil {
		return column.Array{}, err
	}

	return column.New(array.NewDatetimeArray(values, mask, unit)), nil
}

func readStrings[O array.Offset](r *sectionReader, rows int, mask *bitmap.Bitmap) (column.Array, error) {
	offsets, err := readFixed[O](r, rows+1)
	if err != nil {
		return column.Array{}, err
	}
	data, err := r.section()
	if err != nil {
		return column.Array{}, err
	}

	s, err := array.NewStringArrayFromBuffers(offsets, data, mask)
	if err != nil {
		return column.Array{}, err
	}

	return column.New(s), nil
}

func readCategorical[C array.Code](r *sectionReader, rows int, mask *bitmap.Bitmap) (column.Array, error) {
	codes, err := readFixed[C](r, rows)
	if err != nil {
		return column.Array{}, err
	}

	n, err := r.count()
	if err != nil {
		return column.Array{}, err
	}
	dict, cleanup := pool.GetStringSlice(n)
	defer cleanup()
	for i := range dict {
		if dict[i], err = r.string(); err != nil {
			return column.Array{}, err
		}
	}

	c, err := array.NewCategoricalArray(codes, dict, mask)
	if err != nil {
		return column.Array{}, err
	}

	return column.New(c), nil
}
