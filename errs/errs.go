// Package errs defines the sentinel errors returned by the codec,
// varint, bridge, and section packages.
//
// Every error a caller can programmatically branch on is a package-level
// sentinel; call sites wrap it with fmt.Errorf("%w: ...", errs.ErrXxx, ...)
// to attach context without losing errors.Is-comparability. Callers must
// not reuse an Encoder or Decoder after it has returned an error.
package errs

import "errors"

// I/O errors: the underlying source or sink failed. The codec does not
// wrap io errors in a sentinel of its own; callers compare against the
// stdlib io sentinels (io.EOF, io.ErrUnexpectedEOF) or their own
// wrapped errors as usual.

// Format errors: the byte stream does not describe a well-formed EPEE
// value.
var (
	// ErrExpectedFormatSignature is returned when a root section's
	// first 9 bytes do not match the EPEE portable-storage signature.
	ErrExpectedFormatSignature = errors.New("epee: expected format signature")

	// ErrBadTypeCode is returned when an entry's low 7 tag bits are 0
	// or greater than 12.
	ErrBadTypeCode = errors.New("epee: bad type code")

	// ErrEmptySectionKey is returned when a section key's length byte
	// is 0.
	ErrEmptySectionKey = errors.New("epee: empty section key")

	// ErrStringBadEncoding is returned by callers that require valid
	// UTF-8 from a string payload that decoded as raw bytes instead.
	ErrStringBadEncoding = errors.New("epee: string is not valid UTF-8")

	// ErrBadUnicodeScalar is returned when a char field's uint32
	// payload is not a valid Unicode scalar value.
	ErrBadUnicodeScalar = errors.New("epee: not a valid unicode scalar value")
)

// Limit errors: a value exceeds one of the format's hard limits.
var (
	// ErrTooManySectionFields is returned when a section's field-count
	// varint exceeds format.MaxSectionFields.
	ErrTooManySectionFields = errors.New("epee: too many section fields")

	// ErrKeyTooLong is returned when a section key exceeds
	// format.MaxSectionKeySize bytes.
	ErrKeyTooLong = errors.New("epee: section key too long")

	// ErrStringTooLong is returned when a string/blob payload's length
	// exceeds format.MaxStringLen.
	ErrStringTooLong = errors.New("epee: string or blob too long")

	// ErrArrayTooLong is returned when an array's element count
	// exceeds format.MaxStringLen (the same varint ceiling governs
	// both, per the wire grammar in spec.md §6).
	ErrArrayTooLong = errors.New("epee: array too long")

	// ErrTupleTooLong is returned when a Packed (fixed tuple) frame's
	// declared arity does not fit the wire representation it was
	// constructed with.
	ErrTupleTooLong = errors.New("epee: tuple too long")

	// ErrVarIntTooBig is returned when a value exceeds 2^62-1 and
	// cannot be represented as a VarInt.
	ErrVarIntTooBig = errors.New("epee: value too big for varint")
)

// Schema-mismatch errors: the wire data and the caller's expectations
// disagree.
var (
	// ErrTypeMismatch is returned when a caller-declared scalar type
	// does not match the wire scalar code.
	ErrTypeMismatch = errors.New("epee: type mismatch")

	// ErrExpectedArray is returned when a caller expects an array but
	// the entry's array flag is clear.
	ErrExpectedArray = errors.New("epee: expected array")

	// ErrExpectedScalar is returned when a caller expects a scalar but
	// the entry's array flag is set.
	ErrExpectedScalar = errors.New("epee: expected scalar")

	// ErrNotExpectingArray is returned when the bridge is asked to
	// begin an array in a context that cannot hold one.
	ErrNotExpectingArray = errors.New("epee: not expecting array here")

	// ErrNotExpectingScalar is returned when the bridge is asked to
	// write a scalar in a context that requires a compound value.
	ErrNotExpectingScalar = errors.New("epee: not expecting scalar here")

	// ErrNotExpectingSection is returned when the bridge is asked to
	// begin a section in a context that cannot hold one.
	ErrNotExpectingSection = errors.New("epee: not expecting section here")

	// ErrArrayMixedTypes is returned when an array element's wire type
	// code differs from the element type the array was declared with.
	ErrArrayMixedTypes = errors.New("epee: array elements have mixed types")

	// ErrNestedArrays is returned when an array element is itself an
	// array; the wire format forbids nesting arrays.
	ErrNestedArrays = errors.New("epee: arrays cannot nest")

	// ErrSizeHintMismatch is returned when a compound value's declared
	// length does not match the number of elements actually written.
	ErrSizeHintMismatch = errors.New("epee: declared length does not match elements written")

	// ErrExpectedEnd is returned when a decode is attempted after the
	// root section has already been fully consumed.
	ErrExpectedEnd = errors.New("epee: expected end of stream")

	// ErrDuplicateKey is returned by a Decoder built with
	// codec.WithStrictKeys when a section repeats a key, whatever the
	// decode target; without that option both struct and section.Section
	// targets keep the last occurrence.
	ErrDuplicateKey = errors.New("epee: duplicate section key")
)

// Caller-misuse errors: the codec was asked to do something the format
// or the bridge cannot express.
var (
	// ErrNoLength is returned when a compound value (section or array)
	// cannot report its length before its first element is written.
	// The format requires every compound to be length-prefixed; buffer
	// the value or use SerializedSize instead of streaming it directly.
	ErrNoLength = errors.New("epee: compound value has unknown length")

	// ErrCompoundMissingArrayType is returned when an array is begun
	// without a declared element scalar type.
	ErrCompoundMissingArrayType = errors.New("epee: array missing element type")

	// ErrKeyBadType is returned when a non-string value is written in
	// map-key position.
	ErrKeyBadType = errors.New("epee: key must be a string")

	// ErrUnsupportedModel is returned when the bridge is asked to
	// encode or decode a Go value shape the format has no
	// representation for (tagged unions, bare interfaces, channels,
	// functions).
	ErrUnsupportedModel = errors.New("epee: value shape has no epee representation")
)
