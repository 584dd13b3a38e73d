package codec

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/jeffro256/epee/bridge"
	"github.com/jeffro256/epee/errs"
	"github.com/jeffro256/epee/format"
	"github.com/jeffro256/epee/internal/keytrack"
	"github.com/jeffro256/epee/varint"
)

var _ bridge.Source = (*Decoder)(nil)

// Decoder drives a byte source through EPEE's tag/length/payload
// grammar one frame at a time, the read-side counterpart of Encoder.
// It holds the entire input in memory rather than buffering
// incrementally off an io.Reader, matching how EPEE payloads are
// handled in practice: a P2P message is framed and fully received
// before it is ever handed to the portable-storage parser.
type Decoder struct {
	cfg  *decoderConfig
	data []byte
	pos  int

	stack       []frame
	keyTrackers []*keytrack.Tracker // parallel to stack; non-nil only for section frames under WithStrictKeys

	done bool
}

// NewDecoder constructs a Decoder reading from data.
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	cfg, err := newDecoderConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg, data: data, stack: make([]frame, 0, 4), keyTrackers: make([]*keytrack.Tracker, 0, 4)}, nil
}

func (d *Decoder) top() *frame {
	if len(d.stack) == 0 {
		return nil
	}

	return &d.stack[len(d.stack)-1]
}

func (d *Decoder) push(f frame, tr *keytrack.Tracker) {
	d.stack = append(d.stack, f)
	d.keyTrackers = append(d.keyTrackers, tr)
}

func (d *Decoder) pop() frame {
	f := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	d.keyTrackers = d.keyTrackers[:len(d.keyTrackers)-1]

	return f
}

func (d *Decoder) curKeyTracker() *keytrack.Tracker {
	if len(d.keyTrackers) == 0 {
		return nil
	}

	return d.keyTrackers[len(d.keyTrackers)-1]
}

func (d *Decoder) readByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, io.ErrUnexpectedEOF
	}

	b := d.data[d.pos]
	d.pos++

	return b, nil
}

func (d *Decoder) readBytes(n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.data) {
		return nil, io.ErrUnexpectedEOF
	}

	b := d.data[d.pos : d.pos+n]
	d.pos += n

	return b, nil
}

func (d *Decoder) readVarint() (uint64, error) {
	v, n, err := varint.Decode(d.data[d.pos:])
	if err != nil {
		return 0, err
	}

	d.pos += n

	return v, nil
}

// PeekTag reports the scalar type and array flag of the byte at the
// current read position without consuming it.
func (d *Decoder) PeekTag() (format.ScalarType, bool, error) {
	if d.pos >= len(d.data) {
		return 0, false, io.ErrUnexpectedEOF
	}

	t, isArray := format.Split(d.data[d.pos])
	if !t.Valid() {
		return 0, false, fmt.Errorf("%w: %d", errs.ErrBadTypeCode, byte(t))
	}

	return t, isArray, nil
}

// expectTag runs the schema checks every entry value is subject to and,
// for a section parent, consumes and validates the entry's tag byte.
// Array and Packed bodies carry no per-element tag, so only the count
// bookkeeping applies for those parents.
func (d *Decoder) expectTag(parent *frame, t format.ScalarType, isArray bool) error {
	if parent == nil {
		return nil
	}

	switch parent.kind {
	case frameSection:
		if parent.inKey {
			return fmt.Errorf("%w: expected a key, not a value", errs.ErrNotExpectingScalar)
		}
		if parent.remaining() <= 0 {
			return fmt.Errorf("%w: section declared %d field(s)", errs.ErrSizeHintMismatch, parent.declared)
		}

		tagByte, err := d.readByte()
		if err != nil {
			return err
		}

		gotType, gotArray := format.Split(tagByte)
		if !gotType.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrBadTypeCode, byte(gotType))
		}
		if gotArray != isArray {
			if isArray {
				return fmt.Errorf("%w: wire entry is a scalar", errs.ErrExpectedArray)
			}

			return fmt.Errorf("%w: wire entry is an array", errs.ErrExpectedScalar)
		}
		if gotType != t {
			return fmt.Errorf("%w: expected %s, got %s", errs.ErrTypeMismatch, t, gotType)
		}

	case frameArray:
		if isArray {
			return fmt.Errorf("%w: an array element cannot itself be an array", errs.ErrNestedArrays)
		}
		if parent.remaining() <= 0 {
			return fmt.Errorf("%w: array declared %d element(s)", errs.ErrSizeHintMismatch, parent.declared)
		}
		if err := parent.checkElemType(t); err != nil {
			return err
		}

	case framePacked:
		if parent.remaining() <= 0 {
			return fmt.Errorf("%w: packed frame declared %d element(s)", errs.ErrSizeHintMismatch, parent.declared)
		}
	}

	return nil
}

func (d *Decoder) endValue() {
	parent := d.top()
	if parent == nil {
		return
	}

	parent.seen++
	if parent.kind == frameSection {
		parent.inKey = true
	}
}

// BeginSection reads a section's prologue and declared field count.
// The first BeginSection call expects the format signature instead of
// a tag byte.
func (d *Decoder) BeginSection() (int, error) {
	if d.done {
		return 0, fmt.Errorf("%w: decoder already finished", errs.ErrExpectedEnd)
	}

	parent := d.top()
	if parent == nil {
		sig, err := d.readBytes(len(format.Signature))
		if err != nil {
			return 0, err
		}
		if !bytes.Equal(sig, format.Signature[:]) {
			return 0, errs.ErrExpectedFormatSignature
		}
	} else if err := d.expectTag(parent, format.TypeObject, false); err != nil {
		return 0, err
	}

	n64, err := d.readVarint()
	if err != nil {
		return 0, err
	}
	if n64 > format.MaxSectionFields {
		return 0, fmt.Errorf("%w: %d exceeds %d", errs.ErrTooManySectionFields, n64, format.MaxSectionFields)
	}
	if d.cfg.maxSectionFields > 0 && int(n64) > d.cfg.maxSectionFields {
		return 0, fmt.Errorf("%w: %d exceeds configured max %d", errs.ErrTooManySectionFields, n64, d.cfg.maxSectionFields)
	}

	n := int(n64)

	var tr *keytrack.Tracker
	if d.cfg.strictKeys {
		tr = keytrack.New(n)
	}

	d.push(newSectionFrame(parent == nil, n), tr)

	return n, nil
}

// EndSection closes the innermost section frame, which must have
// yielded exactly as many (key, value) pairs as it declared.
func (d *Decoder) EndSection() error {
	cur := d.top()
	if cur == nil || cur.kind != frameSection {
		return fmt.Errorf("%w: no open section", errs.ErrNotExpectingSection)
	}
	if cur.remaining() != 0 {
		return fmt.Errorf("%w: section declared %d field(s), read %d", errs.ErrSizeHintMismatch, cur.declared, cur.seen)
	}

	closed := d.pop()
	d.endValue()

	if closed.root {
		d.done = true
	}

	return nil
}

// BeginArray reads an array's tag and declared element count, and
// reports the element scalar type carried by the tag.
func (d *Decoder) BeginArray() (format.ScalarType, int, error) {
	parent := d.top()
	if parent == nil {
		return 0, 0, fmt.Errorf("%w: array cannot be the root value", errs.ErrNotExpectingArray)
	}

	elemType, isArray, err := d.PeekTag()
	if err != nil {
		return 0, 0, err
	}
	if !isArray {
		return 0, 0, fmt.Errorf("%w: wire entry is a scalar", errs.ErrExpectedArray)
	}

	if err := d.expectTag(parent, elemType, true); err != nil {
		return 0, 0, err
	}

	n64, err := d.readVarint()
	if err != nil {
		return 0, 0, err
	}
	if n64 > format.MaxStringLen {
		return 0, 0, fmt.Errorf("%w: %d exceeds %d", errs.ErrArrayTooLong, n64, format.MaxStringLen)
	}

	n := int(n64)
	d.push(newArrayFrame(elemType, n), nil)

	return elemType, n, nil
}

// EndArray closes the innermost array frame, which must have yielded
// exactly as many elements as it declared.
func (d *Decoder) EndArray() error {
	cur := d.top()
	if cur == nil || cur.kind != frameArray {
		return fmt.Errorf("%w: no open array", errs.ErrNotExpectingArray)
	}
	if cur.remaining() != 0 {
		return fmt.Errorf("%w: array declared %d element(s), read %d", errs.ErrSizeHintMismatch, cur.declared, cur.seen)
	}

	d.pop()
	d.endValue()

	return nil
}

// BeginPacked opens a Packed frame of n elements; n is supplied by the
// caller since a Packed frame carries no length of its own. Only valid
// nested inside an array frame.
func (d *Decoder) BeginPacked(n int) error {
	parent := d.top()
	if parent == nil || parent.kind != frameArray {
		return fmt.Errorf("%w: packed frame must be nested in an array", errs.ErrNotExpectingScalar)
	}
	if n < 0 {
		return fmt.Errorf("%w: negative packed length", errs.ErrTupleTooLong)
	}

	d.push(newPackedFrame(n), nil)

	return nil
}

// EndPacked closes the innermost Packed frame, which must have yielded
// exactly as many elements as it declared.
func (d *Decoder) EndPacked() error {
	cur := d.top()
	if cur == nil || cur.kind != framePacked {
		return fmt.Errorf("%w: no open packed frame", errs.ErrNotExpectingScalar)
	}
	if cur.remaining() != 0 {
		return fmt.Errorf("%w: packed frame declared %d element(s), read %d", errs.ErrSizeHintMismatch, cur.declared, cur.seen)
	}

	d.pop()
	d.endValue()

	return nil
}

// Key reads a section-key string. It must be called once before every
// entry value in a section.
func (d *Decoder) Key() (string, error) {
	parent := d.top()
	if parent == nil || parent.kind != frameSection {
		return "", fmt.Errorf("%w: not inside a section", errs.ErrNotExpectingScalar)
	}
	if !parent.inKey {
		return "", fmt.Errorf("%w: a key was already read for this entry", errs.ErrNotExpectingScalar)
	}
	if parent.remaining() <= 0 {
		return "", fmt.Errorf("%w: section declared %d field(s)", errs.ErrSizeHintMismatch, parent.declared)
	}

	klen, err := d.readByte()
	if err != nil {
		return "", err
	}
	if klen == 0 {
		return "", errs.ErrEmptySectionKey
	}

	kb, err := d.readBytes(int(klen))
	if err != nil {
		return "", err
	}
	key := string(kb)

	if tr := d.curKeyTracker(); tr != nil {
		if err := tr.See(key); err != nil {
			return "", err
		}
	}

	parent.inKey = false

	return key, nil
}

func (d *Decoder) readFixed(t format.ScalarType, width int) ([]byte, error) {
	if err := d.expectTag(d.top(), t, false); err != nil {
		return nil, err
	}

	b, err := d.readBytes(width)
	if err != nil {
		return nil, err
	}

	d.endValue()

	return b, nil
}

// GetInt64 reads a signed 64-bit value.
func (d *Decoder) GetInt64() (int64, error) {
	b, err := d.readFixed(format.TypeInt64, 8)
	if err != nil {
		return 0, err
	}

	return int64(byteOrder.Uint64(b)), nil
}

// GetInt32 reads a signed 32-bit value.
func (d *Decoder) GetInt32() (int32, error) {
	b, err := d.readFixed(format.TypeInt32, 4)
	if err != nil {
		return 0, err
	}

	return int32(byteOrder.Uint32(b)), nil
}

// GetInt16 reads a signed 16-bit value.
func (d *Decoder) GetInt16() (int16, error) {
	b, err := d.readFixed(format.TypeInt16, 2)
	if err != nil {
		return 0, err
	}

	return int16(byteOrder.Uint16(b)), nil
}

// GetInt8 reads a signed 8-bit value.
func (d *Decoder) GetInt8() (int8, error) {
	b, err := d.readFixed(format.TypeInt8, 1)
	if err != nil {
		return 0, err
	}

	return int8(b[0]), nil
}

// GetUint64 reads an unsigned 64-bit value.
func (d *Decoder) GetUint64() (uint64, error) {
	b, err := d.readFixed(format.TypeUint64, 8)
	if err != nil {
		return 0, err
	}

	return byteOrder.Uint64(b), nil
}

// GetUint32 reads an unsigned 32-bit value.
func (d *Decoder) GetUint32() (uint32, error) {
	b, err := d.readFixed(format.TypeUint32, 4)
	if err != nil {
		return 0, err
	}

	return byteOrder.Uint32(b), nil
}

// GetUint16 reads an unsigned 16-bit value.
func (d *Decoder) GetUint16() (uint16, error) {
	b, err := d.readFixed(format.TypeUint16, 2)
	if err != nil {
		return 0, err
	}

	return byteOrder.Uint16(b), nil
}

// GetUint8 reads an unsigned 8-bit value.
func (d *Decoder) GetUint8() (uint8, error) {
	b, err := d.readFixed(format.TypeUint8, 1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// GetDouble reads an IEEE-754 double-precision float.
func (d *Decoder) GetDouble() (float64, error) {
	b, err := d.readFixed(format.TypeDouble, 8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(byteOrder.Uint64(b)), nil
}

// GetBool reads a boolean, encoded as a single byte.
func (d *Decoder) GetBool() (bool, error) {
	b, err := d.readFixed(format.TypeBool, 1)
	if err != nil {
		return false, err
	}

	return b[0] != 0, nil
}

func (d *Decoder) readStringLike() ([]byte, error) {
	parent := d.top()
	if parent != nil && parent.kind == frameSection && parent.inKey {
		return nil, fmt.Errorf("%w: use Key to read a section key", errs.ErrKeyBadType)
	}

	if err := d.expectTag(parent, format.TypeString, false); err != nil {
		return nil, err
	}

	n64, err := d.readVarint()
	if err != nil {
		return nil, err
	}
	if err := checkStringLen(int(n64)); err != nil {
		return nil, err
	}

	data, err := d.readBytes(int(n64))
	if err != nil {
		return nil, err
	}

	d.endValue()

	return data, nil
}

// GetString reads a string payload.
func (d *Decoder) GetString() (string, error) {
	b, err := d.readStringLike()
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// GetBytes reads a blob payload. Blobs and strings share the same
// wire type code; GetBytes exists so callers that want raw bytes
// (hashes, public keys) can avoid a round trip through string.
func (d *Decoder) GetBytes() ([]byte, error) {
	return d.readStringLike()
}

// DecodeFromBytes reads a root EPEE section from data and decodes it
// into out, which must be a pointer to a value bridge.Decode can
// describe, or implement bridge.Decodable itself.
func DecodeFromBytes(data []byte, out any, opts ...DecoderOption) error {
	dec, err := NewDecoder(data, opts...)
	if err != nil {
		return err
	}

	if err := bridge.Decode(dec, out); err != nil {
		return err
	}

	if dec.pos != len(dec.data) {
		return fmt.Errorf("%w: %d trailing byte(s)", errs.ErrExpectedEnd, len(dec.data)-dec.pos)
	}

	return nil
}

// Decode reads all of r and decodes it as a root EPEE section, for
// callers with an io.Reader instead of an in-memory buffer.
func Decode(r io.Reader, out any, opts ...DecoderOption) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	return DecodeFromBytes(data, out, opts...)
}
