package value

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/kbukum/smcemu/errors"
)

// ObjectType is the element type of an ObjectArray or the type of an ObjectField.
type ObjectType int

const (
	ObjectTypeObjectArray ObjectType = iota + 1
	ObjectTypeObjectElement
	ObjectTypeValueAny
	ObjectTypeString
	ObjectTypeBytes
	ObjectTypeInteger
	ObjectTypeLong
	ObjectTypeDouble
	ObjectTypeBoolean
)

func (t ObjectType) String() string {
	switch t {
	case ObjectTypeObjectArray:
		return "OBJECT_ARRAY"
	case ObjectTypeObjectElement:
		return "OBJECT_ELEMENT"
	case ObjectTypeValueAny:
		return "VALUE_ANY"
	case ObjectTypeString:
		return "STRING"
	case ObjectTypeBytes:
		return "BYTES"
	case ObjectTypeInteger:
		return "INTEGER"
	case ObjectTypeLong:
		return "LONG"
	case ObjectTypeDouble:
		return "DOUBLE"
	case ObjectTypeBoolean:
		return "BOOLEAN"
	default:
		return "UNKNOWN"
	}
}

// objectTypeOf derives the object type of a payload.
func objectTypeOf(obj any) (ObjectType, bool) {
	switch obj.(type) {
	case *ObjectArray:
		return ObjectTypeObjectArray, true
	case *ObjectElement:
		return ObjectTypeObjectElement, true
	}
	v, err := New(obj)
	if err != nil {
		return 0, false
	}
	switch v.Type() {
	case TypeString:
		return ObjectTypeString, true
	case TypeBytes:
		return ObjectTypeBytes, true
	case TypeInteger:
		return ObjectTypeInteger, true
	case TypeLong:
		return ObjectTypeLong, true
	case TypeDouble:
		return ObjectTypeDouble, true
	case TypeBoolean:
		return ObjectTypeBoolean, true
	}
	return 0, false
}

// ObjectArray is an ordered, homogeneously typed list of objects.
// An array of type VALUE_ANY accepts any scalar payload.
type ObjectArray struct {
	typ     ObjectType
	objects []any
}

// NewObjectArray builds an array of the given type from objects.
func NewObjectArray(t ObjectType, objects ...any) (*ObjectArray, error) {
	a := &ObjectArray{typ: t, objects: make([]any, 0, len(objects))}
	for _, obj := range objects {
		if err := a.Add(obj); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Type returns the element type.
func (a *ObjectArray) Type() ObjectType { return a.typ }

// Len returns the number of objects; a nil array is empty.
func (a *ObjectArray) Len() int {
	if a == nil {
		return 0
	}
	return len(a.objects)
}

// Get returns the object at index id.
func (a *ObjectArray) Get(id int) (any, error) {
	if id < 0 || id >= a.Len() {
		return nil, errors.InvalidIndex("object", id, a.Len())
	}
	return a.objects[id], nil
}

// Add appends an object whose type matches the array type.
func (a *ObjectArray) Add(obj any) error {
	t, ok := objectTypeOf(obj)
	if !ok {
		return errors.InvalidValueType(obj)
	}
	if a.typ == ObjectTypeValueAny {
		if t == ObjectTypeObjectArray || t == ObjectTypeObjectElement {
			return errors.InvalidValueType(obj).WithDetail("array_type", a.typ.String())
		}
	} else if t != a.typ {
		return errors.InvalidValueType(obj).WithDetail("array_type", a.typ.String())
	}
	a.objects = append(a.objects, obj)
	return nil
}

// Clone returns a deep copy of the array. Nested arrays, elements and byte
// slices are copied.
func (a *ObjectArray) Clone() *ObjectArray {
	if a == nil {
		return nil
	}
	c := &ObjectArray{typ: a.typ, objects: make([]any, len(a.objects))}
	for i, obj := range a.objects {
		c.objects[i] = cloneObject(obj)
	}
	return c
}

func cloneObject(obj any) any {
	switch o := obj.(type) {
	case *ObjectArray:
		return o.Clone()
	case *ObjectElement:
		return o.Clone()
	case []byte:
		return bytes.Clone(o)
	}
	return obj
}

// HasPath reports whether any element of the array carries the dotted field
// path, descending through nested elements and arrays.
func (a *ObjectArray) HasPath(path string) bool {
	if a == nil || path == "" {
		return false
	}
	return hasPath(a, strings.Split(path, "."))
}

func hasPath(obj any, parts []string) bool {
	if len(parts) == 0 {
		return true
	}
	switch o := obj.(type) {
	case *ObjectArray:
		for _, item := range o.objects {
			if hasPath(item, parts) {
				return true
			}
		}
	case *ObjectElement:
		if f, ok := o.Field(parts[0]); ok {
			return hasPath(f.Value, parts[1:])
		}
	}
	return false
}

// Equal compares two arrays structurally.
func (a *ObjectArray) Equal(other *ObjectArray) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.typ != other.typ || len(a.objects) != len(other.objects) {
		return false
	}
	for i := range a.objects {
		if fmt.Sprint(a.objects[i]) != fmt.Sprint(other.objects[i]) {
			return false
		}
	}
	return true
}

func (a *ObjectArray) String() string {
	parts := make([]string, len(a.objects))
	for i, obj := range a.objects {
		parts[i] = fmt.Sprint(obj)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectField is a named, typed member of an ObjectElement.
type ObjectField struct {
	Name  string
	Type  ObjectType
	Value any
}

// NewObjectField builds a field, deriving its type from the value.
func NewObjectField(name string, v any) (ObjectField, error) {
	t, ok := objectTypeOf(v)
	if !ok {
		return ObjectField{}, errors.InvalidValueType(v).WithDetail("field", name)
	}
	return ObjectField{Name: name, Type: t, Value: v}, nil
}

// ObjectElement is an ordered set of named fields.
type ObjectElement struct {
	fields []ObjectField
}

// NewObjectElement builds an element from fields.
func NewObjectElement(fields ...ObjectField) *ObjectElement {
	return &ObjectElement{fields: append([]ObjectField(nil), fields...)}
}

// Clone returns a deep copy of the element.
func (e *ObjectElement) Clone() *ObjectElement {
	if e == nil {
		return nil
	}
	c := &ObjectElement{fields: make([]ObjectField, len(e.fields))}
	for i, f := range e.fields {
		f.Value = cloneObject(f.Value)
		c.fields[i] = f
	}
	return c
}

// Fields returns the element's fields in order.
func (e *ObjectElement) Fields() []ObjectField {
	return append([]ObjectField(nil), e.fields...)
}

// Field returns the first field with the given name.
func (e *ObjectElement) Field(name string) (ObjectField, bool) {
	for _, f := range e.fields {
		if f.Name == name {
			return f, true
		}
	}
	return ObjectField{}, false
}

func (e *ObjectElement) String() string {
	parts := make([]string, len(e.fields))
	for i, f := range e.fields {
		parts[i] = fmt.Sprintf("%s=%v", f.Name, f.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
