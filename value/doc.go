// Package value implements the typed payload carried by every message.
//
// A Value is a closed tagged union over STRING, BYTES, INTEGER, LONG,
// DOUBLE, BOOLEAN and OBJECT_ARRAY. The tag is derived from the payload's Go
// type by New, or supplied explicitly with NewTyped; any other payload fails
// with an INVALID_VALUE_TYPE error. Values are immutable once built.
package value
