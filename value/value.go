package value

import (
	"bytes"
	"fmt"
	"math"

	"github.com/kbukum/smcemu/errors"
)

// Value is an immutable, typed payload.
type Value struct {
	typ     Type
	payload any
}

// New builds a Value, deriving its tag from the payload's Go type.
//
// string -> STRING, []byte -> BYTES, int8/int16/int32 (and int within the
// int32 range) -> INTEGER, int64 (and larger int) -> LONG, float32/float64 ->
// DOUBLE, bool -> BOOLEAN, *ObjectArray -> OBJECT_ARRAY. A Value passed in is
// returned unchanged.
func New(payload any) (Value, error) {
	switch p := payload.(type) {
	case Value:
		if !p.typ.Valid() {
			return Value{}, errors.InvalidValueType(payload)
		}
		return p, nil
	case string:
		return Value{typ: TypeString, payload: p}, nil
	case []byte:
		return Value{typ: TypeBytes, payload: bytes.Clone(p)}, nil
	case int8:
		return Value{typ: TypeInteger, payload: int32(p)}, nil
	case int16:
		return Value{typ: TypeInteger, payload: int32(p)}, nil
	case int32:
		return Value{typ: TypeInteger, payload: p}, nil
	case int:
		if p >= math.MinInt32 && p <= math.MaxInt32 {
			return Value{typ: TypeInteger, payload: int32(p)}, nil
		}
		return Value{typ: TypeLong, payload: int64(p)}, nil
	case int64:
		return Value{typ: TypeLong, payload: p}, nil
	case float32:
		return Value{typ: TypeDouble, payload: float64(p)}, nil
	case float64:
		return Value{typ: TypeDouble, payload: p}, nil
	case bool:
		return Value{typ: TypeBoolean, payload: p}, nil
	case *ObjectArray:
		if p == nil {
			return Value{}, errors.InvalidValueType(payload)
		}
		return Value{typ: TypeObjectArray, payload: p.Clone()}, nil
	default:
		return Value{}, errors.InvalidValueType(payload)
	}
}

// NewTyped builds a Value with an explicit tag, converting numeric payloads
// to the tag's representation. A payload that cannot be represented under
// the tag fails with INVALID_VALUE_TYPE.
func NewTyped(t Type, payload any) (Value, error) {
	derived, err := New(payload)
	if err != nil {
		return Value{}, err
	}
	if derived.typ == t {
		return derived, nil
	}

	switch t {
	case TypeInteger:
		if n, ok := derived.AsInt64(); ok && n >= math.MinInt32 && n <= math.MaxInt32 {
			return Value{typ: TypeInteger, payload: int32(n)}, nil
		}
	case TypeLong:
		if n, ok := derived.AsInt64(); ok {
			return Value{typ: TypeLong, payload: n}, nil
		}
	case TypeDouble:
		if f, ok := derived.AsFloat64(); ok {
			return Value{typ: TypeDouble, payload: f}, nil
		}
	case TypeBytes:
		if s, ok := derived.AsString(); ok {
			return Value{typ: TypeBytes, payload: []byte(s)}, nil
		}
	}
	return Value{}, errors.InvalidValueType(payload).
		WithDetail("requested", t.String())
}

// MustNew is like New but panics on an unsupported payload.
func MustNew(payload any) Value {
	v, err := New(payload)
	if err != nil {
		panic(err)
	}
	return v
}

// FromSlice converts every payload with New.
func FromSlice(payloads []any) ([]Value, error) {
	values := make([]Value, 0, len(payloads))
	for _, p := range payloads {
		v, err := New(p)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Type returns the tag.
func (v Value) Type() Type { return v.typ }

// Value returns the payload in its normalized Go representation.
func (v Value) Value() any {
	switch p := v.payload.(type) {
	case []byte:
		return bytes.Clone(p)
	case *ObjectArray:
		return p.Clone()
	}
	return v.payload
}

// IsEmpty reports whether the payload carries nothing: the zero Value, an
// empty string, an empty byte slice or an empty object array.
func (v Value) IsEmpty() bool {
	switch p := v.payload.(type) {
	case nil:
		return true
	case string:
		return p == ""
	case []byte:
		return len(p) == 0
	case *ObjectArray:
		return p.Len() == 0
	default:
		return false
	}
}

// AsString returns the payload of a STRING value.
func (v Value) AsString() (string, bool) {
	s, ok := v.payload.(string)
	return s, ok
}

// AsBytes returns a copy of the payload of a BYTES value.
func (v Value) AsBytes() ([]byte, bool) {
	b, ok := v.payload.([]byte)
	if !ok {
		return nil, false
	}
	return bytes.Clone(b), true
}

// AsInt64 returns the payload of an INTEGER or LONG value.
func (v Value) AsInt64() (int64, bool) {
	switch p := v.payload.(type) {
	case int32:
		return int64(p), true
	case int64:
		return p, true
	default:
		return 0, false
	}
}

// AsFloat64 returns the payload of any numeric value as a float64.
func (v Value) AsFloat64() (float64, bool) {
	if f, ok := v.payload.(float64); ok {
		return f, true
	}
	if n, ok := v.AsInt64(); ok {
		return float64(n), true
	}
	return 0, false
}

// AsBool returns the payload of a BOOLEAN value.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.payload.(bool)
	return b, ok
}

// AsObjectArray returns a copy of the payload of an OBJECT_ARRAY value.
func (v Value) AsObjectArray() (*ObjectArray, bool) {
	a, ok := v.payload.(*ObjectArray)
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// Equal reports whether two values have the same tag and payload.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch p := v.payload.(type) {
	case []byte:
		o, _ := other.payload.([]byte)
		return bytes.Equal(p, o)
	case *ObjectArray:
		o, _ := other.payload.(*ObjectArray)
		return p.Equal(o)
	default:
		return v.payload == other.payload
	}
}

// String formats the payload for logs and control-message text.
func (v Value) String() string {
	switch p := v.payload.(type) {
	case nil:
		return ""
	case string:
		return p
	case []byte:
		return fmt.Sprintf("%x", p)
	default:
		return fmt.Sprint(p)
	}
}
