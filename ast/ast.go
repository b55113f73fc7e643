// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines generic JSON values, and a parser that materializes
// them incrementally from JSON or JSON5 source text.
package ast

import (
	"math"

	"github.com/creachadair/jstream"
)

// A Value is an arbitrary JSON value. The concrete type of a Value is one of
// Null, Bool, Number, String, *Object, or *Array.
type Value interface{ Span() jstream.Span }

// span records the location of a value in its source text. Values that were
// not parsed from source have an empty span.
type span struct{ pos, end int }

// Span satisfies the Value interface.
func (s span) Span() jstream.Span { return jstream.Span{Pos: s.pos, End: s.end} }

// Null represents the null constant.
type Null struct{ span }

// A Bool is a Boolean constant, true or false.
type Bool struct {
	span
	value bool
}

// NewBool returns a Bool with value b.
func NewBool(b bool) Bool { return Bool{value: b} }

// Value returns the value of b.
func (b Bool) Value() bool { return b.value }

// A Number is a numeric value. Its value is decoded from the source text
// when the number is complete.
type Number struct {
	span
	text  string
	value float64
	z     int64
	isInt bool // z holds the exact value
}

// NewFloat returns a Number with value f.
func NewFloat(f float64) Number { return Number{value: f} }

// NewInt returns a Number with integer value z.
func NewInt(z int64) Number { return Number{value: float64(z), z: z, isInt: true} }

// Float64 returns the value of n as a float64. Integers too large to be
// represented exactly are rounded.
func (n Number) Float64() float64 { return n.value }

// Int64 returns the value of n as an int64, and reports whether n is an
// integer exactly representable as an int64.
func (n Number) Int64() (int64, bool) {
	if n.isInt {
		return n.z, true
	}
	if n.value == math.Trunc(n.value) && math.Abs(n.value) < 1<<53 {
		return int64(n.value), true
	}
	return 0, false
}

// Text returns the source text of n, or "" if n was not parsed.
func (n Number) Text() string { return n.text }

// A String is a string value.
type String struct {
	span
	value string
}

// NewString returns a String with value s.
func NewString(s string) String { return String{value: s} }

// Value returns the decoded content of s.
func (s String) Value() string { return s.value }

// An Object is an ordered collection of key-value members. Duplicate keys
// are preserved in input order.
type Object struct {
	span
	Members []*Member
}

// Find returns the last member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for i := len(o.Members) - 1; i >= 0; i-- {
		if m := o.Members[i]; m.Key == key {
			return m
		}
	}
	return nil
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field returns a new Member with the given key and value.
func Field(key string, v Value) *Member { return &Member{Key: key, Value: v} }

// An Array is a sequence of values.
type Array struct {
	span
	Values []Value
}

// ToAny converts v into plain Go values: nil, bool, float64, string,
// map[string]any, and []any. If an object has duplicate keys, the last one
// wins.
func ToAny(v Value) any {
	switch t := v.(type) {
	case Bool:
		return t.value
	case Number:
		return t.value
	case String:
		return t.value
	case *Object:
		m := make(map[string]any, len(t.Members))
		for _, mbr := range t.Members {
			m[mbr.Key] = ToAny(mbr.Value)
		}
		return m
	case *Array:
		vs := make([]any, len(t.Values))
		for i, elt := range t.Values {
			vs[i] = ToAny(elt)
		}
		return vs
	}
	return nil
}
