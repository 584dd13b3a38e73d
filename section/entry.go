// Package section provides Section, a reflective container mirroring
// the EPEE wire model 1:1 for callers with no static record type.
package section

import "github.com/jeffro256/epee/format"

// Entry is a tagged union over the 12 scalar variants and 12 array
// variants the wire format allows. Rather than generating 24 concrete
// variant types, a single struct carries a kind byte (the wire tag,
// format.ScalarType optionally OR'd with format.ArrayFlag) plus an
// untyped payload, matching the "tagged struct over generated variants"
// tradeoff already made for codec's frame type.
type Entry struct {
	tag     byte
	payload any
}

// Type returns the entry's scalar type and whether it is an array.
func (e Entry) Type() (format.ScalarType, bool) {
	return format.Split(e.tag)
}

func newScalarEntry(t format.ScalarType, v any) Entry {
	return Entry{tag: format.Tag(t, false), payload: v}
}

func newArrayEntry(t format.ScalarType, v any) Entry {
	return Entry{tag: format.Tag(t, true), payload: v}
}
