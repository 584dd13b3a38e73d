// Package endian provides the byte-order engine used for EPEE's
// fixed-width scalar payloads.
//
// The wire format is unconditionally little-endian regardless of host
// byte order (spec Non-goals: no big-endian wire optimization), so
// this package does not expose a big-endian engine or host-endianness
// detection — there is no code path that would ever use them.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian, making it fully
// compatible with existing Go code while providing access to both
// read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used for all
// multi-byte scalar payloads on the wire.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
