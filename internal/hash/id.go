// Package hash provides the xxHash64 primitive used for content-addressing
// encoded sections.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Bytes computes the xxHash64 of the given byte slice.
//
// Used by section.Section.Hash to content-address a section by its
// canonical encoding, rather than a name string as ID does.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
