// Package bridge defines the narrow interfaces that connect the codec
// package's streaming Encoder/Decoder to arbitrary Go values.
//
// Sink and Source are the write and read sides of that connection;
// *codec.Encoder and *codec.Decoder satisfy them structurally, so
// neither this package nor codec needs to import the other's concrete
// types. A value that implements Encodable/Decodable drives a Sink or
// Source directly (section.Section does); everything else goes
// through the reflect-based walker in encode.go and decode.go, which maps Go
// structs, slices, fixed arrays, and the twelve scalar kinds onto the
// same calls.
package bridge

import "github.com/jeffro256/epee/format"

// Sink is the write-side surface a compound Go value is encoded onto.
// Every Begin call must be matched by exactly one End call once its
// declared count of children has been written; every section entry
// must be preceded by exactly one Key call.
type Sink interface {
	BeginSection(n int) error
	EndSection() error
	BeginArray(elem format.ScalarType, n int) error
	EndArray() error
	BeginPacked(n int) error
	EndPacked() error
	Key(s string) error

	PutInt64(v int64) error
	PutInt32(v int32) error
	PutInt16(v int16) error
	PutInt8(v int8) error
	PutUint64(v uint64) error
	PutUint32(v uint32) error
	PutUint16(v uint16) error
	PutUint8(v uint8) error
	PutDouble(v float64) error
	PutBool(v bool) error
	PutString(v string) error
	PutBytes(v []byte) error
}

// Source is the read-side counterpart of Sink. BeginSection and
// BeginArray report the declared count read from the wire instead of
// taking one as a parameter; BeginPacked takes the arity as a
// parameter since a Packed frame carries no length of its own and
// relies on the caller already knowing it from context (typically the
// enclosing array's own declared count).
type Source interface {
	BeginSection() (n int, err error)
	EndSection() error
	BeginArray() (elem format.ScalarType, n int, err error)
	EndArray() error
	BeginPacked(n int) error
	EndPacked() error
	Key() (string, error)

	// PeekTag reports the scalar type and array flag of the next entry
	// value without consuming it, for callers (section.Section's
	// dynamic decode) that dispatch on wire type rather than expecting
	// one ahead of time.
	PeekTag() (t format.ScalarType, isArray bool, err error)

	GetInt64() (int64, error)
	GetInt32() (int32, error)
	GetInt16() (int16, error)
	GetInt8() (int8, error)
	GetUint64() (uint64, error)
	GetUint32() (uint32, error)
	GetUint16() (uint16, error)
	GetUint8() (uint8, error)
	GetDouble() (float64, error)
	GetBool() (bool, error)
	GetString() (string, error)
	GetBytes() ([]byte, error)
}

// Encodable is implemented by types that know how to drive a Sink
// directly, bypassing the reflect-based walker.
type Encodable interface {
	EncodeEPEE(Sink) error
}

// Decodable is implemented by types that know how to drive a Source
// directly, bypassing the reflect-based walker.
type Decodable interface {
	DecodeEPEE(Source) error
}
