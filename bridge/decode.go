package bridge

import (
	"fmt"
	"reflect"

	"github.com/jeffro256/epee/errs"
	"github.com/jeffro256/epee/format"
)

// Decode reads a root section off s into out. out may implement
// Decodable directly; anything else must be a non-nil pointer to a
// struct, decoded field-by-field using the same struct-tag rules as
// Encode. A wire field with no matching struct field is consumed and
// discarded rather than rejected, so peers can add fields without
// breaking older decoders.
func Decode(s Source, out any) error {
	if d, ok := out.(Decodable); ok {
		return d.DecodeEPEE(s)
	}

	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: decode target must be a non-nil pointer", errs.ErrUnsupportedModel)
	}

	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("%w: decode target must point to a struct, got %s", errs.ErrUnsupportedModel, elem.Kind())
	}

	return decodeStruct(s, elem)
}

func decodeStruct(s Source, rv reflect.Value) error {
	fields := exportedFields(rv)

	byKey := make(map[string]reflect.Value, len(fields))
	for _, f := range fields {
		byKey[f.key] = f.val
	}

	n, err := s.BeginSection()
	if err != nil {
		return err
	}

	for range n {
		key, err := s.Key()
		if err != nil {
			return err
		}

		target, ok := byKey[key]
		if !ok {
			if err := skipValue(s); err != nil {
				return err
			}

			continue
		}

		if err := decodeValue(s, target); err != nil {
			return err
		}
	}

	return s.EndSection()
}

func decodeValue(s Source, rv reflect.Value) error {
	if rv.CanAddr() {
		if d, ok := rv.Addr().Interface().(Decodable); ok {
			return d.DecodeEPEE(s)
		}
	}

	switch rv.Kind() {
	case reflect.Int64, reflect.Int:
		v, err := s.GetInt64()
		if err != nil {
			return err
		}
		rv.SetInt(v)
	case reflect.Int32:
		v, err := s.GetInt32()
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
	case reflect.Int16:
		v, err := s.GetInt16()
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
	case reflect.Int8:
		v, err := s.GetInt8()
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
	case reflect.Uint64, reflect.Uint:
		v, err := s.GetUint64()
		if err != nil {
			return err
		}
		rv.SetUint(v)
	case reflect.Uint32:
		v, err := s.GetUint32()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
	case reflect.Uint16:
		v, err := s.GetUint16()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
	case reflect.Uint8:
		v, err := s.GetUint8()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
	case reflect.Float64, reflect.Float32:
		// The wire carries a double; a float32 field receives it rounded
		// to float32 precision by SetFloat, so the narrowing is lossy.
		v, err := s.GetDouble()
		if err != nil {
			return err
		}
		rv.SetFloat(v)
	case reflect.Bool:
		v, err := s.GetBool()
		if err != nil {
			return err
		}
		rv.SetBool(v)
	case reflect.String:
		v, err := s.GetString()
		if err != nil {
			return err
		}
		rv.SetString(v)
	case reflect.Struct:
		return decodeStruct(s, rv)
	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}

		return decodeValue(s, rv.Elem())
	case reflect.Slice, reflect.Array:
		return decodeSequence(s, rv)
	default:
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedModel, rv.Kind())
	}

	return nil
}

func decodeSequence(s Source, rv reflect.Value) error {
	elemType := rv.Type().Elem()

	if elemType.Kind() == reflect.Uint8 && rv.Kind() == reflect.Slice {
		b, err := s.GetBytes()
		if err != nil {
			return err
		}

		cp := make([]byte, len(b))
		copy(cp, b)
		rv.SetBytes(cp)

		return nil
	}

	_, n, err := s.BeginArray()
	if err != nil {
		return err
	}

	if rv.Kind() == reflect.Slice {
		rv.Set(reflect.MakeSlice(rv.Type(), n, n))
	} else if n != rv.Len() {
		return fmt.Errorf("%w: array field has %d element(s), wire has %d", errs.ErrSizeHintMismatch, rv.Len(), n)
	}

	for i := range n {
		if err := decodeValue(s, rv.Index(i)); err != nil {
			return err
		}
	}

	return s.EndArray()
}

// skipValue consumes and discards one entry value of whatever shape
// its tag describes, for section fields the decode target doesn't
// have a matching struct field for.
func skipValue(s Source) error {
	t, isArray, err := s.PeekTag()
	if err != nil {
		return err
	}

	if isArray {
		return skipArray(s)
	}

	return skipScalar(s, t)
}

func skipScalar(s Source, t format.ScalarType) error {
	var err error

	switch t {
	case format.TypeInt64:
		_, err = s.GetInt64()
	case format.TypeInt32:
		_, err = s.GetInt32()
	case format.TypeInt16:
		_, err = s.GetInt16()
	case format.TypeInt8:
		_, err = s.GetInt8()
	case format.TypeUint64:
		_, err = s.GetUint64()
	case format.TypeUint32:
		_, err = s.GetUint32()
	case format.TypeUint16:
		_, err = s.GetUint16()
	case format.TypeUint8:
		_, err = s.GetUint8()
	case format.TypeDouble:
		_, err = s.GetDouble()
	case format.TypeBool:
		_, err = s.GetBool()
	case format.TypeString:
		_, err = s.GetBytes()
	case format.TypeObject:
		err = skipSection(s)
	default:
		err = fmt.Errorf("%w: %d", errs.ErrBadTypeCode, byte(t))
	}

	return err
}

func skipSection(s Source) error {
	n, err := s.BeginSection()
	if err != nil {
		return err
	}

	for range n {
		if _, err := s.Key(); err != nil {
			return err
		}
		if err := skipValue(s); err != nil {
			return err
		}
	}

	return s.EndSection()
}

func skipArray(s Source) error {
	elem, n, err := s.BeginArray()
	if err != nil {
		return err
	}

	for range n {
		if elem == format.TypeObject {
			if err := skipSection(s); err != nil {
				return err
			}
		} else if err := skipScalar(s, elem); err != nil {
			return err
		}
	}

	return s.EndArray()
}
