package section

import (
	"fmt"

	"github.com/jeffro256/epee/bridge"
	"github.com/jeffro256/epee/errs"
	"github.com/jeffro256/epee/format"
	"github.com/jeffro256/epee/internal/hash"
)

// entryPair is one (key, Entry) slot in a Section's insertion-ordered
// backing slice.
type entryPair struct {
	key   string
	entry Entry
}

// Section is an ordered mapping from string key to Entry, mirroring
// the wire model for callers with no static Go record type. Lookup is
// O(1) via an index map, keyed by the section key string, kept
// alongside the insertion-ordered slice.
//
// A Section is not safe for concurrent use.
type Section struct {
	entries []entryPair
	index   map[string]int
}

var (
	_ bridge.Encodable = (*Section)(nil)
	_ bridge.Decodable = (*Section)(nil)
)

// New returns an empty Section.
func New() *Section {
	return &Section{index: make(map[string]int)}
}

// Len returns the number of entries currently in the section.
func (s *Section) Len() int {
	return len(s.entries)
}

// Keys returns the section's keys in insertion order.
func (s *Section) Keys() []string {
	keys := make([]string, len(s.entries))
	for i, p := range s.entries {
		keys[i] = p.key
	}

	return keys
}

// Get returns the raw Entry stored at key, and whether it was present.
func (s *Section) Get(key string) (Entry, bool) {
	i, ok := s.index[key]
	if !ok {
		return Entry{}, false
	}

	return s.entries[i].entry, true
}

// Delete removes key from the section, reporting whether it was
// present. Remaining entries keep their relative order.
func (s *Section) Delete(key string) bool {
	i, ok := s.index[key]
	if !ok {
		return false
	}

	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	delete(s.index, key)
	for k, idx := range s.index {
		if idx > i {
			s.index[k] = idx - 1
		}
	}

	return true
}

// set stores e at key, overwriting any existing entry for that key in
// place (last-wins), matching the ordered-mapping duplicate-key policy
// decided for Section.
func (s *Section) set(key string, e Entry) {
	if i, ok := s.index[key]; ok {
		s.entries[i].entry = e
		return
	}

	s.index[key] = len(s.entries)
	s.entries = append(s.entries, entryPair{key: key, entry: e})
}

// Clone returns a deep-enough copy of s: the entry slice and index are
// copied, and nested *Section values (object/object-array entries) are
// cloned recursively.
func (s *Section) Clone() *Section {
	out := &Section{
		entries: make([]entryPair, len(s.entries)),
		index:   make(map[string]int, len(s.index)),
	}
	for k, v := range s.index {
		out.index[k] = v
	}
	for i, p := range s.entries {
		out.entries[i] = entryPair{key: p.key, entry: cloneEntry(p.entry)}
	}

	return out
}

func cloneEntry(e Entry) Entry {
	switch v := e.payload.(type) {
	case *Section:
		return Entry{tag: e.tag, payload: v.Clone()}
	case []*Section:
		cp := make([]*Section, len(v))
		for i, sec := range v {
			cp[i] = sec.Clone()
		}
		return Entry{tag: e.tag, payload: cp}
	default:
		return e
	}
}

// Hash returns the xxHash64 of the section's canonical encoding, for
// cheap equality probes and cache/log correlation keys when sections
// are deduplicated across peers.
func (s *Section) Hash() (uint64, error) {
	b, err := s.encodeBytes()
	if err != nil {
		return 0, err
	}

	return hash.Bytes(b), nil
}

// encodeBytes drives a throwaway codec.Encoder via EncodeEPEE. It
// delegates to encodeSectionBytes in hash.go to keep the codec import
// isolated to the one feature that needs it; EncodeEPEE/DecodeEPEE
// themselves only ever touch bridge.
func (s *Section) encodeBytes() ([]byte, error) {
	return encodeSectionBytes(s)
}

// EncodeEPEE drives sink directly: it writes the section header with a
// foreknown field count, then each (key, entry) pair in insertion
// order.
func (s *Section) EncodeEPEE(sink bridge.Sink) error {
	if err := sink.BeginSection(len(s.entries)); err != nil {
		return err
	}

	for _, p := range s.entries {
		if err := sink.Key(p.key); err != nil {
			return err
		}
		if err := encodeEntry(sink, p.entry); err != nil {
			return err
		}
	}

	return sink.EndSection()
}

// DecodeEPEE walks a Source and rebuilds entries by inspecting the
// wire tag of each value, which is how a schema-less consumer has to
// work: it cannot ask the Source to validate against an expected type,
// since there is none.
func (s *Section) DecodeEPEE(src bridge.Source) error {
	n, err := src.BeginSection()
	if err != nil {
		return err
	}

	s.entries = make([]entryPair, 0, n)
	s.index = make(map[string]int, n)

	for range n {
		key, err := src.Key()
		if err != nil {
			return err
		}

		entry, err := decodeEntry(src)
		if err != nil {
			return err
		}

		s.set(key, entry)
	}

	return src.EndSection()
}

func encodeEntry(sink bridge.Sink, e Entry) error {
	t, isArray := e.Type()
	if !isArray {
		return encodeScalar(sink, t, e.payload)
	}

	return encodeArray(sink, t, e.payload)
}

func encodeScalar(sink bridge.Sink, t format.ScalarType, payload any) error {
	switch t {
	case format.TypeInt64:
		return sink.PutInt64(payload.(int64))
	case format.TypeInt32:
		return sink.PutInt32(payload.(int32))
	case format.TypeInt16:
		return sink.PutInt16(payload.(int16))
	case format.TypeInt8:
		return sink.PutInt8(payload.(int8))
	case format.TypeUint64:
		return sink.PutUint64(payload.(uint64))
	case format.TypeUint32:
		return sink.PutUint32(payload.(uint32))
	case format.TypeUint16:
		return sink.PutUint16(payload.(uint16))
	case format.TypeUint8:
		return sink.PutUint8(payload.(uint8))
	case format.TypeDouble:
		return sink.PutDouble(payload.(float64))
	case format.TypeString:
		return sink.PutString(payload.(string))
	case format.TypeBool:
		return sink.PutBool(payload.(bool))
	case format.TypeObject:
		return payload.(*Section).EncodeEPEE(sink)
	default:
		return fmt.Errorf("%w: %d", errs.ErrBadTypeCode, t)
	}
}

func encodeArray(sink bridge.Sink, t format.ScalarType, payload any) error {
	if t == format.TypeObject {
		secs := payload.([]*Section)
		if err := sink.BeginArray(format.TypeObject, len(secs)); err != nil {
			return err
		}
		for _, sec := range secs {
			if err := sec.EncodeEPEE(sink); err != nil {
				return err
			}
		}

		return sink.EndArray()
	}

	return encodeScalarArray(sink, t, payload)
}

func encodeScalarArray(sink bridge.Sink, t format.ScalarType, payload any) error {
	switch v := payload.(type) {
	case []int64:
		return putArray(sink, format.TypeInt64, len(v), func(i int) error { return sink.PutInt64(v[i]) })
	case []int32:
		return putArray(sink, format.TypeInt32, len(v), func(i int) error { return sink.PutInt32(v[i]) })
	case []int16:
		return putArray(sink, format.TypeInt16, len(v), func(i int) error { return sink.PutInt16(v[i]) })
	case []int8:
		return putArray(sink, format.TypeInt8, len(v), func(i int) error { return sink.PutInt8(v[i]) })
	case []uint64:
		return putArray(sink, format.TypeUint64, len(v), func(i int) error { return sink.PutUint64(v[i]) })
	case []uint32:
		return putArray(sink, format.TypeUint32, len(v), func(i int) error { return sink.PutUint32(v[i]) })
	case []uint16:
		return putArray(sink, format.TypeUint16, len(v), func(i int) error { return sink.PutUint16(v[i]) })
	case []uint8:
		return putArray(sink, format.TypeUint8, len(v), func(i int) error { return sink.PutUint8(v[i]) })
	case []float64:
		return putArray(sink, format.TypeDouble, len(v), func(i int) error { return sink.PutDouble(v[i]) })
	case []string:
		return putArray(sink, format.TypeString, len(v), func(i int) error { return sink.PutString(v[i]) })
	case []bool:
		return putArray(sink, format.TypeBool, len(v), func(i int) error { return sink.PutBool(v[i]) })
	default:
		return fmt.Errorf("%w: %d", errs.ErrBadTypeCode, t)
	}
}

func putArray(sink bridge.Sink, t format.ScalarType, n int, put func(i int) error) error {
	if err := sink.BeginArray(t, n); err != nil {
		return err
	}
	for i := range n {
		if err := put(i); err != nil {
			return err
		}
	}

	return sink.EndArray()
}

func decodeEntry(src bridge.Source) (Entry, error) {
	t, isArray, err := src.PeekTag()
	if err != nil {
		return Entry{}, err
	}
	if !isArray {
		payload, err := decodeScalar(src, t)
		if err != nil {
			return Entry{}, err
		}

		return newScalarEntry(t, payload), nil
	}

	payload, err := decodeArray(src, t)
	if err != nil {
		return Entry{}, err
	}

	return newArrayEntry(t, payload), nil
}

func decodeScalar(src bridge.Source, t format.ScalarType) (any, error) {
	switch t {
	case format.TypeInt64:
		return src.GetInt64()
	case format.TypeInt32:
		return src.GetInt32()
	case format.TypeInt16:
		return src.GetInt16()
	case format.TypeInt8:
		return src.GetInt8()
	case format.TypeUint64:
		return src.GetUint64()
	case format.TypeUint32:
		return src.GetUint32()
	case format.TypeUint16:
		return src.GetUint16()
	case format.TypeUint8:
		return src.GetUint8()
	case format.TypeDouble:
		return src.GetDouble()
	case format.TypeString:
		return src.GetString()
	case format.TypeBool:
		return src.GetBool()
	case format.TypeObject:
		sub := New()
		if err := sub.DecodeEPEE(src); err != nil {
			return nil, err
		}

		return sub, nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrBadTypeCode, t)
	}
}

func decodeArray(src bridge.Source, t format.ScalarType) (any, error) {
	if t == format.TypeObject {
		_, n, err := src.BeginArray()
		if err != nil {
			return nil, err
		}
		secs := make([]*Section, n)
		for i := range n {
			secs[i] = New()
			if err := secs[i].DecodeEPEE(src); err != nil {
				return nil, err
			}
		}

		return secs, src.EndArray()
	}

	return decodeScalarArray(src, t)
}

func decodeScalarArray(src bridge.Source, t format.ScalarType) (any, error) {
	elem, n, err := src.BeginArray()
	if err != nil {
		return nil, err
	}
	if elem != t {
		return nil, fmt.Errorf("%w: expected %s, got %s", errs.ErrTypeMismatch, t, elem)
	}

	var payload any
	switch t {
	case format.TypeInt64:
		v := make([]int64, n)
		for i := range v {
			if v[i], err = src.GetInt64(); err != nil {
				return nil, err
			}
		}
		payload = v
	case format.TypeInt32:
		v := make([]int32, n)
		for i := range v {
			if v[i], err = src.GetInt32(); err != nil {
				return nil, err
			}
		}
		payload = v
	case format.TypeInt16:
		v := make([]int16, n)
		for i := range v {
			if v[i], err = src.GetInt16(); err != nil {
				return nil, err
			}
		}
		payload = v
	case format.TypeInt8:
		v := make([]int8, n)
		for i := range v {
			if v[i], err = src.GetInt8(); err != nil {
				return nil, err
			}
		}
		payload = v
	case format.TypeUint64:
		v := make([]uint64, n)
		for i := range v {
			if v[i], err = src.GetUint64(); err != nil {
				return nil, err
			}
		}
		payload = v
	case format.TypeUint32:
		v := make([]uint32, n)
		for i := range v {
			if v[i], err = src.GetUint32(); err != nil {
				return nil, err
			}
		}
		payload = v
	case format.TypeUint16:
		v := make([]uint16, n)
		for i := range v {
			if v[i], err = src.GetUint16(); err != nil {
				return nil, err
			}
		}
		payload = v
	case format.TypeUint8:
		v := make([]uint8, n)
		for i := range v {
			if v[i], err = src.GetUint8(); err != nil {
				return nil, err
			}
		}
		payload = v
	case format.TypeDouble:
		v := make([]float64, n)
		for i := range v {
			if v[i], err = src.GetDouble(); err != nil {
				return nil, err
			}
		}
		payload = v
	case format.TypeString:
		v := make([]string, n)
		for i := range v {
			if v[i], err = src.GetString(); err != nil {
				return nil, err
			}
		}
		payload = v
	case format.TypeBool:
		v := make([]bool, n)
		for i := range v {
			if v[i], err = src.GetBool(); err != nil {
				return nil, err
			}
		}
		payload = v
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrBadTypeCode, t)
	}

	return payload, src.EndArray()
}
