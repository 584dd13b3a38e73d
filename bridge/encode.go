package bridge

import (
	"fmt"
	"reflect"

	"github.com/jeffro256/epee/errs"
	"github.com/jeffro256/epee/format"
)

// tagName is the struct tag key used to override a field's section
// key; a field without one uses its Go name unchanged.
const tagName = "epee"

// Encode writes v onto s. v may implement Encodable directly; anything
// else must reflect as a struct or pointer-to-struct, since the root
// value is always a section. Its fields may be any of the twelve scalar
// kinds, structs, or slices and fixed arrays of those.
func Encode(s Sink, v any) error {
	if e, ok := v.(Encodable); ok {
		return e.EncodeEPEE(s)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return fmt.Errorf("%w: nil pointer", errs.ErrUnsupportedModel)
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: root value must be a struct, got %s", errs.ErrUnsupportedModel, rv.Kind())
	}

	return encodeStruct(s, rv)
}

type structField struct {
	key string
	val reflect.Value
}

func exportedFields(rv reflect.Value) []structField {
	rt := rv.Type()
	fields := make([]structField, 0, rt.NumField())

	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		key := sf.Name
		if tag, ok := sf.Tag.Lookup(tagName); ok && tag != "" {
			if tag == "-" {
				continue
			}
			key = tag
		}

		fields = append(fields, structField{key: key, val: rv.Field(i)})
	}

	return fields
}

func encodeStruct(s Sink, rv reflect.Value) error {
	fields := exportedFields(rv)

	if err := s.BeginSection(len(fields)); err != nil {
		return err
	}

	for _, f := range fields {
		if err := s.Key(f.key); err != nil {
			return err
		}
		if err := encodeValue(s, f.val); err != nil {
			return err
		}
	}

	return s.EndSection()
}

func encodeValue(s Sink, rv reflect.Value) error {
	if e, ok := asEncodable(rv); ok {
		return e.EncodeEPEE(s)
	}

	switch rv.Kind() {
	case reflect.Int64:
		return s.PutInt64(rv.Int())
	case reflect.Int32:
		return s.PutInt32(int32(rv.Int()))
	case reflect.Int16:
		return s.PutInt16(int16(rv.Int()))
	case reflect.Int8:
		return s.PutInt8(int8(rv.Int()))
	case reflect.Int:
		return s.PutInt64(rv.Int())
	case reflect.Uint64:
		return s.PutUint64(rv.Uint())
	case reflect.Uint32:
		return s.PutUint32(uint32(rv.Uint()))
	case reflect.Uint16:
		return s.PutUint16(uint16(rv.Uint()))
	case reflect.Uint8:
		return s.PutUint8(uint8(rv.Uint()))
	case reflect.Uint:
		return s.PutUint64(rv.Uint())
	case reflect.Float64, reflect.Float32:
		return s.PutDouble(rv.Float())
	case reflect.Bool:
		return s.PutBool(rv.Bool())
	case reflect.String:
		return s.PutString(rv.String())
	case reflect.Struct:
		return encodeStruct(s, rv)
	case reflect.Pointer:
		if rv.IsNil() {
			return fmt.Errorf("%w: nil pointer field", errs.ErrUnsupportedModel)
		}
		return encodeValue(s, rv.Elem())
	case reflect.Slice, reflect.Array:
		return encodeSequence(s, rv)
	default:
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedModel, rv.Kind())
	}
}

// encodeSequence handles both slices and fixed arrays. A []byte slice
// is written as a single blob entry (variable-length binary payloads:
// transaction blobs, arbitrary buffers); a [N]byte fixed array is
// written as an array of uint8 elements instead, matching how fixed
// hash and key fields (crypto::hash, 32 raw bytes) appear on the wire.
func encodeSequence(s Sink, rv reflect.Value) error {
	elemType := rv.Type().Elem()

	if elemType.Kind() == reflect.Uint8 && rv.Kind() == reflect.Slice {
		return s.PutBytes(rv.Bytes())
	}

	n := rv.Len()
	scalar, err := elemScalarType(elemType)
	if err != nil {
		return err
	}

	if err := s.BeginArray(scalar, n); err != nil {
		return err
	}

	for i := range n {
		if err := encodeValue(s, rv.Index(i)); err != nil {
			return err
		}
	}

	return s.EndArray()
}

// elemScalarType reports the wire scalar type an array/slice element
// type maps to, dereferencing pointer element types and resolving
// struct element kinds to Object.
func elemScalarType(t reflect.Type) (format.ScalarType, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Int64, reflect.Int:
		return format.TypeInt64, nil
	case reflect.Int32:
		return format.TypeInt32, nil
	case reflect.Int16:
		return format.TypeInt16, nil
	case reflect.Int8:
		return format.TypeInt8, nil
	case reflect.Uint64, reflect.Uint:
		return format.TypeUint64, nil
	case reflect.Uint32:
		return format.TypeUint32, nil
	case reflect.Uint16:
		return format.TypeUint16, nil
	case reflect.Uint8:
		return format.TypeUint8, nil
	case reflect.Float64, reflect.Float32:
		return format.TypeDouble, nil
	case reflect.Bool:
		return format.TypeBool, nil
	case reflect.String:
		return format.TypeString, nil
	case reflect.Struct:
		return format.TypeObject, nil
	default:
		return 0, fmt.Errorf("%w: array element kind %s", errs.ErrUnsupportedModel, t.Kind())
	}
}

func asEncodable(rv reflect.Value) (Encodable, bool) {
	if !rv.CanInterface() {
		return nil, false
	}

	e, ok := rv.Interface().(Encodable)

	return e, ok
}
