package value

import "strings"

// Type is the tag of a Value.
type Type int

const (
	TypeString Type = iota + 1
	TypeBytes
	TypeInteger
	TypeLong
	TypeDouble
	TypeBoolean
	TypeObjectArray
)

var typeNames = map[Type]string{
	TypeString:      "STRING",
	TypeBytes:       "BYTES",
	TypeInteger:     "INTEGER",
	TypeLong:        "LONG",
	TypeDouble:      "DOUBLE",
	TypeBoolean:     "BOOLEAN",
	TypeObjectArray: "OBJECT_ARRAY",
}

// String returns the wire name of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether t is one of the declared tags.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// IsNumber reports whether t holds a numeric payload.
func (t Type) IsNumber() bool {
	return t == TypeInteger || t == TypeLong || t == TypeDouble
}

// ParseType resolves a type by its wire name, case-insensitively.
func ParseType(name string) (Type, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == upper {
			return t, true
		}
	}
	return 0, false
}
