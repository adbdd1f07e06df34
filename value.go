// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package millijson

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

// Type is the type tag of a JSON value.
type Type byte

// Constants defining the valid Type values.
const (
	Invalid          Type = iota // not a valid type
	TypeNumber                   // number, as float64
	TypeNumberString             // number, as its input text
	TypeString                   // quoted string
	TypeBoolean                  // true or false
	TypeNothing                  // null
	TypeArray                    // [ ... ]
	TypeObject                   // { ... }
)

var typeStr = [...]string{
	Invalid:          "invalid",
	TypeNumber:       "number",
	TypeNumberString: "number-as-string",
	TypeString:       "string",
	TypeBoolean:      "boolean",
	TypeNothing:      "nothing",
	TypeArray:        "array",
	TypeObject:       "object",
}

func (t Type) String() string {
	v := int(t)
	if v >= len(typeStr) {
		return typeStr[Invalid]
	}
	return typeStr[v]
}

// A Value is a JSON value. The concrete type is one of Number, NumberString,
// String, Bool, Null, *Array, or *Object.
type Value interface {
	// Type reports the type tag of the value.
	Type() Type

	// JSON returns the compact JSON encoding of the value.
	JSON() string
}

// A Number is a numeric value converted to floating point. The conversion
// keeps the sign of a negative zero, and a zero mantissa with a huge exponent
// (such as 0e400) yields NaN.
type Number float64

func (Number) Type() Type { return TypeNumber }

// JSON satisfies the Value interface. Values that have no JSON encoding
// (infinities and NaN) are encoded as null.
func (n Number) JSON() string {
	f := float64(n)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "null"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// A NumberString is a numeric value retaining the exact text of its input.
// The parser produces these when Options.NumberAsString is set.
type NumberString string

func (NumberString) Type() Type { return TypeNumberString }

// JSON satisfies the Value interface.
func (n NumberString) JSON() string { return string(n) }

// Float64 converts n to floating point.
func (n NumberString) Float64() (float64, error) { return strconv.ParseFloat(string(n), 64) }

// A String is a string value with its escapes decoded.
type String string

func (String) Type() Type { return TypeString }

// JSON satisfies the Value interface.
func (s String) JSON() string { return Quote(string(s)) }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) Type() Type { return TypeBoolean }

// JSON satisfies the Value interface.
func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

// Null represents the null constant.
type Null struct{}

func (Null) Type() Type { return TypeNothing }

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

// An Array is an ordered sequence of values.
type Array struct {
	Values []Value
}

func (*Array) Type() Type { return TypeArray }

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.Values) }

// JSON satisfies the Value interface.
func (a *Array) JSON() string {
	buf := []byte{'['}
	for i, v := range a.Values {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, v.JSON()...)
	}
	return string(append(buf, ']'))
}

// An Object is a collection of values indexed by unique string keys.
type Object struct {
	Members map[string]Value
}

func (*Object) Type() Type { return TypeObject }

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.Members) }

// Find returns the value of o with the given key, or nil.
func (o *Object) Find(key string) Value { return o.Members[key] }

// Keys returns the keys of o in lexicographic order.
func (o *Object) Keys() []string { return slices.Sorted(maps.Keys(o.Members)) }

// JSON satisfies the Value interface. Members are encoded in key order.
func (o *Object) JSON() string {
	buf := []byte{'{'}
	for i, key := range o.Keys() {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, Quote(key)...)
		buf = append(buf, ':')
		buf = append(buf, o.Members[key].JSON()...)
	}
	return string(append(buf, '}'))
}

// AsNumber returns the value of v, which must be a Number.
// It panics if v has any other type.
func AsNumber(v Value) float64 { return float64(as[Number](v)) }

// AsString returns the value of v, which must be a String.
// It panics if v has any other type.
func AsString(v Value) string { return string(as[String](v)) }

// AsBool returns the value of v, which must be a Bool.
// It panics if v has any other type.
func AsBool(v Value) bool { return bool(as[Bool](v)) }

// AsArray returns the elements of v, which must be an *Array.
// It panics if v has any other type.
func AsArray(v Value) []Value { return as[*Array](v).Values }

// AsObject returns the members of v, which must be an *Object.
// It panics if v has any other type.
func AsObject(v Value) map[string]Value { return as[*Object](v).Members }

func as[T Value](v Value) T {
	t, ok := v.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("value is %T, not %T", v, zero))
	}
	return t
}
