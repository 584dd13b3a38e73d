package section

import "github.com/jeffro256/epee/format"

// This file provides the typed getter/setter surface over Entry: one
// Set/Get pair per scalar type and one SetArray/GetArray pair per
// array-of-that-scalar flavor. Get* fails soft: a missing key or a
// key holding a different wire type returns the zero value and false,
// rather than an error, since a schema-less caller is expected to
// probe for a type rather than assert one.

func setScalar[T any](s *Section, key string, t format.ScalarType, v T) {
	s.set(key, newScalarEntry(t, v))
}

func getScalar[T any](s *Section, key string, t format.ScalarType) (T, bool) {
	var zero T

	e, ok := s.Get(key)
	if !ok {
		return zero, false
	}

	st, isArray := e.Type()
	if isArray || st != t {
		return zero, false
	}

	v, ok := e.payload.(T)
	if !ok {
		return zero, false
	}

	return v, true
}

func setArray[T any](s *Section, key string, t format.ScalarType, v []T) {
	s.set(key, newArrayEntry(t, v))
}

func getArray[T any](s *Section, key string, t format.ScalarType) ([]T, bool) {
	e, ok := s.Get(key)
	if !ok {
		return nil, false
	}

	st, isArray := e.Type()
	if !isArray || st != t {
		return nil, false
	}

	v, ok := e.payload.([]T)
	if !ok {
		return nil, false
	}

	return v, true
}

func (s *Section) SetInt64(key string, v int64) { setScalar(s, key, format.TypeInt64, v) }
func (s *Section) GetInt64(key string) (int64, bool) {
	return getScalar[int64](s, key, format.TypeInt64)
}

func (s *Section) SetInt32(key string, v int32) { setScalar(s, key, format.TypeInt32, v) }
func (s *Section) GetInt32(key string) (int32, bool) {
	return getScalar[int32](s, key, format.TypeInt32)
}

func (s *Section) SetInt16(key string, v int16) { setScalar(s, key, format.TypeInt16, v) }
func (s *Section) GetInt16(key string) (int16, bool) {
	return getScalar[int16](s, key, format.TypeInt16)
}

func (s *Section) SetInt8(key string, v int8) { setScalar(s, key, format.TypeInt8, v) }
func (s *Section) GetInt8(key string) (int8, bool) {
	return getScalar[int8](s, key, format.TypeInt8)
}

func (s *Section) SetUint64(key string, v uint64) { setScalar(s, key, format.TypeUint64, v) }
func (s *Section) GetUint64(key string) (uint64, bool) {
	return getScalar[uint64](s, key, format.TypeUint64)
}

func (s *Section) SetUint32(key string, v uint32) { setScalar(s, key, format.TypeUint32, v) }
func (s *Section) GetUint32(key string) (uint32, bool) {
	return getScalar[uint32](s, key, format.TypeUint32)
}

func (s *Section) SetUint16(key string, v uint16) { setScalar(s, key, format.TypeUint16, v) }
func (s *Section) GetUint16(key string) (uint16, bool) {
	return getScalar[uint16](s, key, format.TypeUint16)
}

func (s *Section) SetUint8(key string, v uint8) { setScalar(s, key, format.TypeUint8, v) }
func (s *Section) GetUint8(key string) (uint8, bool) {
	return getScalar[uint8](s, key, format.TypeUint8)
}

func (s *Section) SetDouble(key string, v float64) { setScalar(s, key, format.TypeDouble, v) }
func (s *Section) GetDouble(key string) (float64, bool) {
	return getScalar[float64](s, key, format.TypeDouble)
}

func (s *Section) SetString(key string, v string) { setScalar(s, key, format.TypeString, v) }
func (s *Section) GetString(key string) (string, bool) {
	return getScalar[string](s, key, format.TypeString)
}

func (s *Section) SetBool(key string, v bool) { setScalar(s, key, format.TypeBool, v) }
func (s *Section) GetBool(key string) (bool, bool) {
	return getScalar[bool](s, key, format.TypeBool)
}

func (s *Section) SetObject(key string, v *Section) { setScalar(s, key, format.TypeObject, v) }
func (s *Section) GetObject(key string) (*Section, bool) {
	return getScalar[*Section](s, key, format.TypeObject)
}

func (s *Section) SetInt64Array(key string, v []int64) { setArray(s, key, format.TypeInt64, v) }
func (s *Section) GetInt64Array(key string) ([]int64, bool) {
	return getArray[int64](s, key, format.TypeInt64)
}

func (s *Section) SetInt32Array(key string, v []int32) { setArray(s, key, format.TypeInt32, v) }
func (s *Section) GetInt32Array(key string) ([]int32, bool) {
	return getArray[int32](s, key, format.TypeInt32)
}

func (s *Section) SetInt16Array(key string, v []int16) { setArray(s, key, format.TypeInt16, v) }
func (s *Section) GetInt16Array(key string) ([]int16, bool) {
	return getArray[int16](s, key, format.TypeInt16)
}

func (s *Section) SetInt8Array(key string, v []int8) { setArray(s, key, format.TypeInt8, v) }
func (s *Section) GetInt8Array(key string) ([]int8, bool) {
	return getArray[int8](s, key, format.TypeInt8)
}

func (s *Section) SetUint64Array(key string, v []uint64) { setArray(s, key, format.TypeUint64, v) }
func (s *Section) GetUint64Array(key string) ([]uint64, bool) {
	return getArray[uint64](s, key, format.TypeUint64)
}

func (s *Section) SetUint32Array(key string, v []uint32) { setArray(s, key, format.TypeUint32, v) }
func (s *Section) GetUint32Array(key string) ([]uint32, bool) {
	return getArray[uint32](s, key, format.TypeUint32)
}

func (s *Section) SetUint16Array(key string, v []uint16) { setArray(s, key, format.TypeUint16, v) }
func (s *Section) GetUint16Array(key string) ([]uint16, bool) {
	return getArray[uint16](s, key, format.TypeUint16)
}

func (s *Section) SetUint8Array(key string, v []uint8) { setArray(s, key, format.TypeUint8, v) }
func (s *Section) GetUint8Array(key string) ([]uint8, bool) {
	return getArray[uint8](s, key, format.TypeUint8)
}

func (s *Section) SetDoubleArray(key string, v []float64) { setArray(s, key, format.TypeDouble, v) }
func (s *Section) GetDoubleArray(key string) ([]float64, bool) {
	return getArray[float64](s, key, format.TypeDouble)
}

func (s *Section) SetStringArray(key string, v []string) { setArray(s, key, format.TypeString, v) }
func (s *Section) GetStringArray(key string) ([]string, bool) {
	return getArray[string](s, key, format.TypeString)
}

func (s *Section) SetBoolArray(key string, v []bool) { setArray(s, key, format.TypeBool, v) }
func (s *Section) GetBoolArray(key string) ([]bool, bool) {
	return getArray[bool](s, key, format.TypeBool)
}

func (s *Section) SetObjectArray(key string, v []*Section) { setArray(s, key, format.TypeObject, v) }
func (s *Section) GetObjectArray(key string) ([]*Section, bool) {
	return getArray[*Section](s, key, format.TypeObject)
}
