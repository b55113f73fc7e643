// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package event

import (
	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/ast"
)

// Kind identifies the type of value a Receiver accepts.
type Kind byte

// Constants defining the valid Kind values.
const (
	KindAny Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

var kindStr = [...]string{
	KindAny:    "any",
	KindNull:   "null",
	KindBool:   "boolean",
	KindNumber: "number",
	KindString: "string",
	KindObject: "object",
	KindArray:  "array",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return "invalid kind"
}

// kindOf reports the kind of value begun by tok.
func kindOf(tok jstream.Token) Kind {
	switch tok.Type {
	case jstream.Null:
		return KindNull
	case jstream.True, jstream.False:
		return KindBool
	case jstream.Number:
		return KindNumber
	case jstream.String, jstream.Identifier:
		return KindString
	case jstream.Object:
		return KindObject
	case jstream.Array:
		return KindArray
	}
	return KindAny
}

// Hooks are the lifecycle callbacks common to all receivers. Each hook is
// optional; a nil hook is not called. If a hook reports an error, the
// emitter stops and returns that error.
type Hooks struct {
	// Start is called with the first token of the value.
	Start func(jstream.Token) error

	// Feed is called with every token of the value, in order, including the
	// first and last, and any whitespace and comments inside it. Tokens that
	// belong to a nested value are fed to that value's receiver instead.
	// Whitespace and comments before or after the root value, and the end of
	// input, are not fed to any receiver.
	Feed func(jstream.Token) error

	// End is called with the token that completed the value. For a number,
	// this is the token following its last character.
	End func(jstream.Token) error

	// Save is called with the completed value. A receiver that defines Save
	// causes its value, and everything nested in it, to be retained.
	Save func(ast.Value) error
}

// overlay returns a copy of h with nil hooks filled from base.
func (h Hooks) overlay(base Hooks) Hooks {
	if h.Start == nil {
		h.Start = base.Start
	}
	if h.Feed == nil {
		h.Feed = base.Feed
	}
	if h.End == nil {
		h.End = base.End
	}
	if h.Save == nil {
		h.Save = base.Save
	}
	return h
}

// A Receiver describes how to react to the construction of one JSON value.
// The concrete type of a Receiver is one of *Any, *Null, *Bool, *Number,
// *String, *Object, or *Array.
type Receiver interface {
	Kind() Kind
	hooks() Hooks
}

// Any is a Receiver for a value of any type. When the type of the value is
// known, Any is resolved to the receiver for that type given by the
// corresponding field. If that field is nil, a receiver with the hooks of Any
// is used; otherwise any nil hooks of the selected receiver are filled from
// the hooks of Any.
type Any struct {
	Hooks

	Null   *Null
	Bool   *Bool
	Number *Number
	String *String
	Object *Object
	Array  *Array
}

// Null is a Receiver for the constant null.
type Null struct{ Hooks }

// Bool is a Receiver for the constants true and false.
type Bool struct{ Hooks }

// Number is a Receiver for a number.
type Number struct{ Hooks }

// String is a Receiver for a string. Unquoted object keys are reported as
// strings, with a synthesized start and end token.
type String struct {
	Hooks

	// Append, if set, is called with the decoded content of the string in
	// order, as it becomes available.
	Append func(string) error
}

// Object is a Receiver for an object.
type Object struct {
	Hooks

	// Key, if set, receives each member key.
	Key *String

	// Subscribe is consulted in order for the receiver of each member value,
	// given its key. The first non-nil result is used. If there is none, the
	// member value is received by an empty Any.
	Subscribe []func(key string) Receiver
}

// Array is a Receiver for an array.
type Array struct {
	Hooks

	// Subscribe is consulted in order for the receiver of each element, given
	// its 0-based index. The first non-nil result is used. If there is none,
	// the element is received by an empty Any.
	Subscribe []func(index int) Receiver
}

func (*Any) Kind() Kind    { return KindAny }
func (*Null) Kind() Kind   { return KindNull }
func (*Bool) Kind() Kind   { return KindBool }
func (*Number) Kind() Kind { return KindNumber }
func (*String) Kind() Kind { return KindString }
func (*Object) Kind() Kind { return KindObject }
func (*Array) Kind() Kind  { return KindArray }

func (r *Any) hooks() Hooks    { return r.Hooks }
func (r *Null) hooks() Hooks   { return r.Hooks }
func (r *Bool) hooks() Hooks   { return r.Hooks }
func (r *Number) hooks() Hooks { return r.Hooks }
func (r *String) hooks() Hooks { return r.Hooks }
func (r *Object) hooks() Hooks { return r.Hooks }
func (r *Array) hooks() Hooks  { return r.Hooks }

// resolve returns the concrete receiver a uses for a value of kind k.
func (a *Any) resolve(k Kind) Receiver {
	switch k {
	case KindNull:
		return &Null{Hooks: pick(a.Null, func(r *Null) Hooks { return r.Hooks }).overlay(a.Hooks)}
	case KindBool:
		return &Bool{Hooks: pick(a.Bool, func(r *Bool) Hooks { return r.Hooks }).overlay(a.Hooks)}
	case KindNumber:
		return &Number{Hooks: pick(a.Number, func(r *Number) Hooks { return r.Hooks }).overlay(a.Hooks)}
	case KindString:
		var r String
		if a.String != nil {
			r = *a.String
		}
		r.Hooks = r.Hooks.overlay(a.Hooks)
		return &r
	case KindObject:
		var r Object
		if a.Object != nil {
			r = *a.Object
		}
		r.Hooks = r.Hooks.overlay(a.Hooks)
		return &r
	case KindArray:
		var r Array
		if a.Array != nil {
			r = *a.Array
		}
		r.Hooks = r.Hooks.overlay(a.Hooks)
		return &r
	}
	return a
}

// pick returns the hooks of r, or empty hooks if r is nil.
func pick[T any](r *T, get func(*T) Hooks) Hooks {
	if r == nil {
		return Hooks{}
	}
	return get(r)
}

func (o *Object) child(key string) Receiver {
	for _, f := range o.Subscribe {
		if r := f(key); r != nil {
			return r
		}
	}
	return new(Any)
}

func (a *Array) child(index int) Receiver {
	for _, f := range a.Subscribe {
		if r := f(index); r != nil {
			return r
		}
	}
	return new(Any)
}
