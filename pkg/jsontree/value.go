// Package jsontree provides an immutable, order-preserving JSON tree.
//
// A Value is one of null, bool, number, string, array or object. Object
// members keep the order in which they were parsed or constructed so that
// documents re-encode predictably, while equality treats objects as
// unordered collections of unique keys.
//
// Values are parsed and printed with the token-level API of
// github.com/go-json-experiment/json/jsontext and can be bridged to and from
// gopkg.in/yaml.v3 nodes.
package jsontree

import (
	"slices"
	"strconv"
)

// Kind identifies the type of a JSON value.
type Kind uint8

const (
	// KindNull is the JSON null literal. It is the kind of the zero Value.
	KindNull Kind = iota
	// KindBool is true or false.
	KindBool
	// KindNumber is a JSON number, stored as float64.
	KindNumber
	// KindString is a JSON string.
	KindString
	// KindArray is an ordered list of values.
	KindArray
	// KindObject is an ordered list of uniquely named members.
	KindObject
)

// String returns the JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Member is a single name/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value. The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	str     string
	elems   []Value
	members []Member
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number returns a JSON number. NaN and infinities cannot be marshaled.
func Number(n float64) Value { return Value{kind: KindNumber, number: n} }

// String returns a JSON string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns a JSON array holding a copy of elems.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, elems: slices.Clone(elems)}
}

// Object returns a JSON object holding a copy of members.
// Keys are expected to be unique; Marshal rejects duplicates.
func Object(members ...Member) Value {
	return Value{kind: KindObject, members: slices.Clone(members)}
}

// Kind reports the type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null literal.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.boolean, v.kind == KindBool }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) { return v.number, v.kind == KindNumber }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// Elements returns the elements of an array, or nil for any other kind.
// The returned slice is shared and must not be modified.
func (v Value) Elements() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.elems
}

// Members returns the members of an object in order, or nil for any other
// kind. The returned slice is shared and must not be modified.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return v.members
}

// Len returns the number of elements or members, and 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.elems)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Get looks up an object member by key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// String returns the compact JSON encoding of v, or an empty string if v
// holds a number that JSON cannot represent.
func (v Value) String() string {
	b, err := Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Equal reports whether a and b hold the same JSON value.
// Object member order is not significant; array element order is.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolean == b.boolean
	case KindNumber:
		return a.number == b.number
	case KindString:
		return a.str == b.str
	case KindArray:
		return slices.EqualFunc(a.elems, b.elems, Equal)
	case KindObject:
		return equalMembers(a.members, b.members)
	default:
		return false
	}
}

// EqualMembers reports whether two member lists describe the same object.
func EqualMembers(a, b []Member) bool {
	return equalMembers(a, b)
}

func equalMembers(a, b []Member) bool {
	if len(a) != len(b) {
		return false
	}
	for _, m := range a {
		idx := slices.IndexFunc(b, func(o Member) bool { return o.Key == m.Key })
		if idx < 0 || !Equal(m.Value, b[idx].Value) {
			return false
		}
	}
	return true
}
