// Package object implements the value model of a dynamically-typed host
// environment: primitives, callables, and objects that delegate to at most
// one parent.
package object

import (
	"fmt"
	"math"
	"strconv"
)

// Kind classifies a Value.
type Kind int

// Value kinds.
const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindNative
	KindFunction
	KindObject
)

var kindNames = map[Kind]string{
	KindUndefined: "undefined",
	KindNull:      "null",
	KindBool:      "boolean",
	KindNumber:    "number",
	KindString:    "string",
	KindNative:    "native",
	KindFunction:  "function",
	KindObject:    "object",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a datum of the host environment.
// The set of implementations is closed; it is one of Undefined, Null, Bool,
// Number, String, Native, *Function, or *Object.
type Value interface {
	Kind() Kind
	isValue()
}

type undefined struct{}

func (undefined) Kind() Kind     { return KindUndefined }
func (undefined) isValue()       {}
func (undefined) String() string { return "undefined" }

type null struct{}

func (null) Kind() Kind     { return KindNull }
func (null) isValue()       {}
func (null) String() string { return "null" }

var (
	// Undefined is the value of absent properties.
	Undefined Value = undefined{}
	// Null is the null value.
	Null Value = null{}
)

// Bool is a boolean primitive.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (Bool) isValue()   {}

// Number is a numeric primitive.
type Number float64

func (Number) Kind() Kind { return KindNumber }
func (Number) isValue()   {}

func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String is a textual primitive.
type String string

func (String) Kind() Kind { return KindString }
func (String) isValue()   {}

// Native carries an opaque Go value. It behaves as a primitive: it is never
// traversed and is copied by value.
type Native struct {
	Payload any
}

func (Native) Kind() Kind { return KindNative }
func (Native) isValue()   {}

// IsPrimitive reports whether v is a primitive, i.e. neither a callable nor an object.
// A nil Value is treated as a primitive.
func IsPrimitive(v Value) bool {
	if v == nil {
		return true
	}
	switch v.Kind() {
	case KindFunction, KindObject:
		return false
	}
	return true
}
