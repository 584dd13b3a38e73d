package codec

import (
	"fmt"
	"io"
	"math"

	"github.com/jeffro256/epee/bridge"
	"github.com/jeffro256/epee/endian"
	"github.com/jeffro256/epee/errs"
	"github.com/jeffro256/epee/format"
	"github.com/jeffro256/epee/internal/pool"
	"github.com/jeffro256/epee/varint"
)

// byteOrder is the engine every fixed-width Put/Get method writes and
// reads through. The wire format never varies by host byte order, so
// this is fixed at package init rather than threaded through as config.
var byteOrder = endian.GetLittleEndianEngine()

var _ bridge.Sink = (*Encoder)(nil)

// Encoder drives a byte sink through EPEE's tag/length/payload grammar
// one frame at a time. Its Begin/End/Key/Put methods are the bridge
// package's primary target; section.Section drives an Encoder
// directly, since it implements bridge.Encodable itself.
//
// The root value must be a section: the first call on a fresh Encoder
// must be BeginSection, and Finish requires every opened frame to have
// been closed.
type Encoder struct {
	cfg   *encoderConfig
	buf   *pool.ByteBuffer
	stack []frame
	done  bool
}

// NewEncoder constructs an Encoder ready to begin a root section.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg, err := newEncoderConfig(opts)
	if err != nil {
		return nil, err
	}

	var buf *pool.ByteBuffer
	if cfg.bufPool != nil {
		buf = cfg.bufPool.Get()
	} else {
		buf = pool.Get()
	}
	buf.Reset()

	return &Encoder{cfg: cfg, buf: buf, stack: make([]frame, 0, 4)}, nil
}

// Finish returns the bytes written so far. It fails if any frame is
// still open. The returned slice is owned by the Encoder's scratch
// buffer; callers that retain it past the next call to Release must
// copy it first.
func (e *Encoder) Finish() ([]byte, error) {
	if len(e.stack) != 0 {
		return nil, fmt.Errorf("%w: %d frame(s) still open", errs.ErrNoLength, len(e.stack))
	}

	return e.buf.Bytes(), nil
}

// Release returns the Encoder's scratch buffer to its pool. Callers
// must not use the Encoder, or any slice returned by Finish, after
// calling Release.
func (e *Encoder) Release() {
	if e.buf == nil {
		return
	}

	if e.cfg.bufPool != nil {
		e.cfg.bufPool.Put(e.buf)
	} else {
		pool.Put(e.buf)
	}

	e.buf = nil
}

func (e *Encoder) top() *frame {
	if len(e.stack) == 0 {
		return nil
	}

	return &e.stack[len(e.stack)-1]
}

func (e *Encoder) push(f frame) {
	e.stack = append(e.stack, f)
}

func (e *Encoder) pop() frame {
	f := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]

	return f
}

func (e *Encoder) writeVarint(v uint64) error {
	b, err := varint.AppendTo(e.buf.B, v)
	if err != nil {
		return err
	}

	e.buf.B = b

	return nil
}

func (e *Encoder) writeTag(t format.ScalarType, isArray bool) {
	e.buf.MustWriteByte(format.Tag(t, isArray))
}

// beginValue runs the schema checks every entry value (scalar or
// compound) is subject to, and writes the value's tag byte when the
// parent frame is a section. Array and Packed bodies carry no
// per-element tag, so nothing is written for those parents.
func (e *Encoder) beginValue(parent *frame, t format.ScalarType, isArray bool) error {
	if parent == nil {
		return fmt.Errorf("%w: no open frame to write a value into", errs.ErrExpectedEnd)
	}

	switch parent.kind {
	case frameSection:
		if parent.inKey {
			return fmt.Errorf("%w: expected a key, not a value", errs.ErrNotExpectingScalar)
		}
		if parent.remaining() <= 0 {
			return fmt.Errorf("%w: section declared %d field(s)", errs.ErrSizeHintMismatch, parent.declared)
		}
		e.writeTag(t, isArray)

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

// endValue records that the value beginValue just cleared has been
// fully written, advancing the parent frame's iteration state. Called
// with the frame now on top of the stack: directly after a scalar
// write, or after popping the child frame a compound value closed.
func (e *Encoder) endValue() {
	parent := e.top()
	if parent == nil {
		return
	}

	parent.seen++
	if parent.kind == frameSection {
		parent.inKey = true
	}
}

// BeginSection opens a section frame declaring n (key, entry) pairs.
// The first BeginSection call on a fresh Encoder opens the root
// section and writes the format signature instead of an object tag.
func (e *Encoder) BeginSection(n int) error {
	if e.done {
		return fmt.Errorf("%w: encoder already finished", errs.ErrExpectedEnd)
	}
	if n < 0 || n > format.MaxSectionFields {
		return fmt.Errorf("%w: %d exceeds %d", errs.ErrTooManySectionFields, n, format.MaxSectionFields)
	}

	parent := e.top()
	if parent == nil {
		e.buf.MustWrite(format.Signature[:])
		e.push(newSectionFrame(true, n))

		return e.writeVarint(uint64(n))
	}

	if err := e.beginValue(parent, format.TypeObject, false); err != nil {
		return err
	}

	e.push(newSectionFrame(false, n))

	return e.writeVarint(uint64(n))
}

// EndSection closes the innermost section frame, which must have
// received exactly as many (key, value) pairs as it declared.
func (e *Encoder) EndSection() error {
	cur := e.top()
	if cur == nil || cur.kind != frameSection {
		return fmt.Errorf("%w: no open section", errs.ErrNotExpectingSection)
	}
	if cur.remaining() != 0 {
		return fmt.Errorf("%w: section declared %d field(s), wrote %d", errs.ErrSizeHintMismatch, cur.declared, cur.seen)
	}

	closed := e.pop()
	e.endValue()

	if closed.root {
		e.done = true
	}

	return nil
}

// BeginArray opens an array frame of n elements, all of scalar type
// elem. elem may be format.TypeObject for an array of sections.
func (e *Encoder) BeginArray(elem format.ScalarType, n int) error {
	if !elem.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrBadTypeCode, byte(elem))
	}
	if n < 0 {
		return fmt.Errorf("%w: negative array length", errs.ErrArrayTooLong)
	}

	parent := e.top()
	if parent == nil {
		return fmt.Errorf("%w: array cannot be the root value", errs.ErrNotExpectingArray)
	}

	if err := e.beginValue(parent, elem, true); err != nil {
		return err
	}

	e.push(newArrayFrame(elem, n))

	return e.writeVarint(uint64(n))
}

// EndArray closes the innermost array frame, which must have received
// exactly as many elements as it declared.
func (e *Encoder) EndArray() error {
	cur := e.top()
	if cur == nil || cur.kind != frameArray {
		return fmt.Errorf("%w: no open array", errs.ErrNotExpectingArray)
	}
	if cur.remaining() != 0 {
		return fmt.Errorf("%w: array declared %d element(s), wrote %d", errs.ErrSizeHintMismatch, cur.declared, cur.seen)
	}

	e.pop()
	e.endValue()

	return nil
}

// BeginPacked opens a Packed frame of n elements: a fixed-arity
// sequence of bare payloads with no tag or length of its own, used as
// the element body of an array the caller drives manually instead of
// through BeginArray's per-element calls. Only valid nested inside an
// array frame, whose own header already carries the element type and
// count that make the unframed bytes decodable.
func (e *Encoder) BeginPacked(n int) error {
	parent := e.top()
	if parent == nil || parent.kind != frameArray {
		return fmt.Errorf("%w: packed frame must be nested in an array", errs.ErrNotExpectingScalar)
	}
	if n < 0 {
		return fmt.Errorf("%w: negative packed length", errs.ErrTupleTooLong)
	}

	e.push(newPackedFrame(n))

	return nil
}

// EndPacked closes the innermost Packed frame, which must have
// received exactly as many elements as it declared.
func (e *Encoder) EndPacked() error {
	cur := e.top()
	if cur == nil || cur.kind != framePacked {
		return fmt.Errorf("%w: no open packed frame", errs.ErrNotExpectingScalar)
	}
	if cur.remaining() != 0 {
		return fmt.Errorf("%w: packed frame declared %d element(s), wrote %d", errs.ErrSizeHintMismatch, cur.declared, cur.seen)
	}

	e.pop()
	e.endValue()

	return nil
}

// Key writes a section-key string. It must be called once before
// every entry value in a section, and never inside an array or packed
// frame (array elements and tuple slots have no keys).
func (e *Encoder) Key(s string) error {
	parent := e.top()
	if parent == nil || parent.kind != frameSection {
		return fmt.Errorf("%w: not inside a section", errs.ErrNotExpectingScalar)
	}
	if !parent.inKey {
		return fmt.Errorf("%w: a key was already written for this entry", errs.ErrNotExpectingScalar)
	}
	if parent.remaining() <= 0 {
		return fmt.Errorf("%w: section declared %d field(s)", errs.ErrSizeHintMismatch, parent.declared)
	}
	if len(s) == 0 {
		return errs.ErrEmptySectionKey
	}
	if len(s) > format.MaxSectionKeySize {
		return fmt.Errorf("%w: key length %d exceeds %d", errs.ErrKeyTooLong, len(s), format.MaxSectionKeySize)
	}

	e.buf.MustWriteByte(byte(len(s)))
	e.buf.MustWrite([]byte(s))
	parent.inKey = false

	return nil
}

func (e *Encoder) putFixed(t format.ScalarType, width int, write func([]byte)) error {
	parent := e.top()
	if err := e.beginValue(parent, t, false); err != nil {
		return err
	}

	start := len(e.buf.B)
	e.buf.ExtendOrGrow(width)
	write(e.buf.B[start:])

	e.endValue()

	return nil
}

// PutInt64 writes a signed 64-bit value.
func (e *Encoder) PutInt64(v int64) error {
	return e.putFixed(format.TypeInt64, 8, func(b []byte) { byteOrder.PutUint64(b, uint64(v)) })
}

// PutInt32 writes a signed 32-bit value.
func (e *Encoder) PutInt32(v int32) error {
	return e.putFixed(format.TypeInt32, 4, func(b []byte) { byteOrder.PutUint32(b, uint32(v)) })
}

// PutInt16 writes a signed 16-bit value.
func (e *Encoder) PutInt16(v int16) error {
	return e.putFixed(format.TypeInt16, 2, func(b []byte) { byteOrder.PutUint16(b, uint16(v)) })
}

// PutInt8 writes a signed 8-bit value.
func (e *Encoder) PutInt8(v int8) error {
	return e.putFixed(format.TypeInt8, 1, func(b []byte) { b[0] = byte(v) })
}

// PutUint64 writes an unsigned 64-bit value.
func (e *Encoder) PutUint64(v uint64) error {
	return e.putFixed(format.TypeUint64, 8, func(b []byte) { byteOrder.PutUint64(b, v) })
}

// PutUint32 writes an unsigned 32-bit value.
func (e *Encoder) PutUint32(v uint32) error {
	return e.putFixed(format.TypeUint32, 4, func(b []byte) { byteOrder.PutUint32(b, v) })
}

// PutUint16 writes an unsigned 16-bit value.
func (e *Encoder) PutUint16(v uint16) error {
	return e.putFixed(format.TypeUint16, 2, func(b []byte) { byteOrder.PutUint16(b, v) })
}

// PutUint8 writes an unsigned 8-bit value.
func (e *Encoder) PutUint8(v uint8) error {
	return e.putFixed(format.TypeUint8, 1, func(b []byte) { b[0] = v })
}

// PutDouble writes an IEEE-754 double-precision float.
func (e *Encoder) PutDouble(v float64) error {
	return e.putFixed(format.TypeDouble, 8, func(b []byte) { byteOrder.PutUint64(b, math.Float64bits(v)) })
}

// PutBool writes a boolean, encoded as a single byte (0 or 1).
func (e *Encoder) PutBool(v bool) error {
	return e.putFixed(format.TypeBool, 1, func(b []byte) {
		if v {
			b[0] = 1
		} else {
			b[0] = 0
		}
	})
}

// checkStringLen enforces the wire limit on string/blob payload
// lengths. Split out from putStringLike so it can be exercised at its
// exact boundary without materializing a multi-gigabyte buffer.
func checkStringLen(n int) error {
	if n > format.MaxStringLen {
		return fmt.Errorf("%w: %d exceeds %d", errs.ErrStringTooLong, n, format.MaxStringLen)
	}

	return nil
}

func (e *Encoder) putStringLike(data []byte) error {
	if err := checkStringLen(len(data)); err != nil {
		return err
	}

	parent := e.top()
	if parent != nil && parent.kind == frameSection && parent.inKey {
		return fmt.Errorf("%w: use Key to write a section key", errs.ErrKeyBadType)
	}

	if err := e.beginValue(parent, format.TypeString, false); err != nil {
		return err
	}

	if err := e.writeVarint(uint64(len(data))); err != nil {
		return err
	}
	e.buf.MustWrite(data)

	e.endValue()

	return nil
}

// PutString writes a UTF-8 string payload.
func (e *Encoder) PutString(v string) error {
	return e.putStringLike([]byte(v))
}

// PutBytes writes an opaque blob payload. Blobs and strings share the
// same wire type code; PutBytes exists so callers with raw []byte
// values (hashes, public keys) can avoid a string conversion.
func (e *Encoder) PutBytes(v []byte) error {
	return e.putStringLike(v)
}

// Encode encodes v as a root EPEE section and writes the result to w.
// v may implement bridge.Encodable directly (section.Section does) or
// be a struct or pointer-to-struct that the bridge package's
// reflect-based walker can describe; see bridge.Encode.
func Encode(w io.Writer, v any, opts ...EncoderOption) error {
	enc, err := NewEncoder(opts...)
	if err != nil {
		return err
	}
	defer enc.Release()

	if err := bridge.Encode(enc, v); err != nil {
		return err
	}

	out, err := enc.Finish()
	if err != nil {
		return err
	}

	_, err = w.Write(out)

	return err
}

// EncodeToBytes encodes v and returns the result as a freshly
// allocated byte slice.
func EncodeToBytes(v any, opts ...EncoderOption) ([]byte, error) {
	enc, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}
	defer enc.Release()

	if err := bridge.Encode(enc, v); err != nil {
		return nil, err
	}

	out, err := enc.Finish()
	if err != nil {
		return nil, err
	}

	cp := make([]byte, len(out))
	copy(cp, out)

	return cp, nil
}

// SerializedSize returns the number of bytes Encode would write for v,
// without retaining the encoded bytes. It runs the same encode path
// through a pooled buffer and reports its length, rather than
// maintaining a separate tag/length-only accounting pass, since the
// format's VarInt lengths are cheap to compute but easy to get subtly
// wrong if duplicated.
func SerializedSize(v any, opts ...EncoderOption) (int, error) {
	enc, err := NewEncoder(opts...)
	if err != nil {
		return 0, err
	}
	defer enc.Release()

	if err := bridge.Encode(enc, v); err != nil {
		return 0, err
	}

	out, err := enc.Finish()
	if err != nil {
		return 0, err
	}

	return len(out), nil
}
