// Package varint implements EPEE's 2-bit-discriminated variable-length
// integer encoding — the length prefix used for section field counts,
// array element counts, and string/blob lengths throughout the format.
//
// A value is shifted left by 2 bits; the low 2 bits of the first byte
// carry a size discriminant m selecting the total encoded width:
//
//	m=0 -> 1 byte  (values 0..63)
//	m=1 -> 2 bytes (values 0..16383)
//	m=2 -> 4 bytes (values 0..1073741823)
//	m=3 -> 8 bytes (values 0..4611686018427387903)
//
// Encoding always picks the smallest width that fits the value, so a
// given value maps to exactly one byte sequence. Decoding accepts any
// width, including non-canonical ones (a small value encoded with a
// wider discriminant than necessary) and yields the shifted value —
// the format's contract requires canonical encoding but not
// canonical-only decoding.
//
// The bit-packed discriminant-in-the-low-bits scheme mirrors the tag
// and value length prefixes of binpack (see
// creachadair-binpack/binpack.go for the analogous 2-bit/3-tier
// layout); EPEE's scheme differs only in using 4 width tiers instead
// of binpack's 3 and in shifting by 2 bits rather than 1.
package varint

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jeffro256/epee/errs"
)

// MaxValue is the largest value representable as a VarInt (2^62 - 1).
const MaxValue = 1<<62 - 1

// widths, indexed by the 2-bit discriminant m.
var widths = [4]int{1, 2, 4, 8}

// widthFor returns the discriminant and byte width needed to encode v
// canonically.
func widthFor(v uint64) (m int, width int) {
	switch {
	case v <= 1<<6-1:
		return 0, 1
	case v <= 1<<14-1:
		return 1, 2
	case v <= 1<<30-1:
		return 2, 4
	default:
		return 3, 8
	}
}

// Len returns the number of bytes Write/AppendTo will emit for v
// without doing the encoding, so callers can size a length-prefixed
// compound ahead of time.
func Len(v uint64) (int, error) {
	if v > MaxValue {
		return 0, fmt.Errorf("%w: %d exceeds %d", errs.ErrVarIntTooBig, v, MaxValue)
	}

	_, width := widthFor(v)

	return width, nil
}

// AppendTo appends the canonical encoding of v to buf and returns the
// extended slice. This is the allocation-free path used by the
// encoder's hot loop, grounded on the pooled-buffer append idiom in
// tag.go/varstring.go.
func AppendTo(buf []byte, v uint64) ([]byte, error) {
	if v > MaxValue {
		return buf, fmt.Errorf("%w: %d exceeds %d", errs.ErrVarIntTooBig, v, MaxValue)
	}

	m, width := widthFor(v)
	packed := v<<2 | uint64(m)

	start := len(buf)
	for range width {
		buf = append(buf, 0)
	}

	switch width {
	case 1:
		buf[start] = byte(packed)
	case 2:
		binary.LittleEndian.PutUint16(buf[start:], uint16(packed))
	case 4:
		binary.LittleEndian.PutUint32(buf[start:], uint32(packed))
	case 8:
		binary.LittleEndian.PutUint64(buf[start:], packed)
	}

	return buf, nil
}

// Write encodes v and writes it to w.
func Write(w io.Writer, v uint64) error {
	buf, err := AppendTo(make([]byte, 0, 8), v)
	if err != nil {
		return err
	}

	_, err = w.Write(buf)

	return err
}

// Read decodes a VarInt from r: it reads one byte to learn the size
// discriminant, then reads the remaining bytes of that width and
// right-shifts the assembled little-endian word by 2.
func Read(r io.Reader) (uint64, error) {
	var first [1]byte
	if _, err := io.ReadFull(r, first[:]); err != nil {
		return 0, err
	}

	m := first[0] & 0x3
	width := widths[m]

	if width == 1 {
		return uint64(first[0]) >> 2, nil
	}

	rest := make([]byte, width)
	rest[0] = first[0]
	if _, err := io.ReadFull(r, rest[1:]); err != nil {
		return 0, err
	}

	var packed uint64
	switch width {
	case 2:
		packed = uint64(binary.LittleEndian.Uint16(rest))
	case 4:
		packed = uint64(binary.LittleEndian.Uint32(rest))
	case 8:
		packed = binary.LittleEndian.Uint64(rest)
	}

	return packed >> 2, nil
}

// Decode reads a VarInt from the front of buf, returning the value and
// the number of bytes consumed.
func Decode(buf []byte) (uint64, int, error) {
	if len(buf) == 0 {
		return 0, 0, io.ErrUnexpectedEOF
	}

	m := buf[0] & 0x3
	width := widths[m]

	if len(buf) < width {
		return 0, 0, io.ErrUnexpectedEOF
	}

	if width == 1 {
		return uint64(buf[0]) >> 2, 1, nil
	}

	var packed uint64
	switch width {
	case 2:
		packed = uint64(binary.LittleEndian.Uint16(buf))
	case 4:
		packed = uint64(binary.LittleEndian.Uint32(buf))
	case 8:
		packed = binary.LittleEndian.Uint64(buf)
	}

	return packed >> 2, width, nil
}
