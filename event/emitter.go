// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package event

import (
	"errors"
	"fmt"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/ast"
	"github.com/creachadair/jstream/internal/escape"
)

// ErrMismatch is the underlying error reported when a value does not match
// the kind of its receiver.
var ErrMismatch = errors.New("receiver kind mismatch")

// MismatchError is the concrete type of errors reported when a value does
// not match the kind of its receiver.
type MismatchError struct {
	Want Kind // the kind of the receiver
	Got  Kind // the kind of the value
}

func (m *MismatchError) Error() string {
	return fmt.Sprintf("%v receiver got %v value", m.Want, m.Got)
}

// Unwrap reports ErrMismatch, so that errors.Is works.
func (m *MismatchError) Unwrap() error { return ErrMismatch }

// An Emitter routes the tokens produced by a jstream.Tokenizer to a tree of
// receivers. Values are retained only where some receiver asks to save them.
type Emitter struct {
	root  Receiver
	stk   []*frame
	value ast.Value
	done  bool
	err   error

	retained int // characters and elements retained for saving
}

// A frame records the value currently being received at one level.
type frame struct {
	recv  Receiver // concrete, never *Any
	kind  Kind
	h     Hooks
	save  bool
	key   bool // the value is an object key
	ident bool // the key is an unquoted identifier
	truth bool // the value is the constant true

	text []byte // decoded string content, or raw number text
	dec  escape.Builder

	mem   []*ast.Member
	elts  []ast.Value
	name  string // key of the member whose value is pending
	index int    // index of the next array element
}

// NewEmitter constructs an Emitter that delivers the root value to root. If
// root == nil, the value is received by an empty Any.
func NewEmitter(root Receiver) *Emitter {
	if root == nil {
		root = new(Any)
	}
	return &Emitter{root: root}
}

// Done reports whether the end of input has been delivered to e.
func (e *Emitter) Done() bool { return e.done }

// Value returns the root value, if the root receiver (or a hook it inherits)
// requested that it be saved. Otherwise it returns nil.
func (e *Emitter) Value() ast.Value { return e.value }

// Feed delivers tok to e. Feed reports an error if a receiver does not match
// the kind of its value, or if a hook fails. Errors are fatal: once Feed has
// reported an error, it reports the same error for all subsequent calls.
func (e *Emitter) Feed(tok jstream.Token) error {
	if e.err != nil {
		return e.err
	}
	if err := e.feed(tok); err != nil {
		e.err = err
		return err
	}
	return nil
}

func (e *Emitter) top() *frame {
	if n := len(e.stk); n > 0 {
		return e.stk[n-1]
	}
	return nil
}

func (e *Emitter) feed(tok jstream.Token) error {
	for {
		f := e.top()
		if f == nil {
			if tok.Type == jstream.End {
				e.done = true
				return nil
			} else if kindOf(tok) == KindAny {
				return nil // whitespace or comment outside the root value
			}
			return e.begin(e.root, tok, false, false)
		}
		again, err := e.step(f, tok)
		if err != nil || !again {
			return err
		}
	}
}

// begin pushes a frame for a value received by r, whose first token is tok.
func (e *Emitter) begin(r Receiver, tok jstream.Token, save, key bool) error {
	k := kindOf(tok)
	if a, ok := r.(*Any); ok {
		r = a.resolve(k)
	} else if r.Kind() != k {
		return &MismatchError{Want: r.Kind(), Got: k}
	}
	f := &frame{
		recv:  r,
		kind:  k,
		h:     r.hooks(),
		key:   key,
		ident: tok.Type == jstream.Identifier,
		truth: tok.Type == jstream.True,
	}
	f.save = save || f.h.Save != nil
	e.stk = append(e.stk, f)

	if f.ident {
		start := jstream.Token{Loc: tok.Loc, Type: jstream.String, Sub: jstream.StringStart, Char: tok.Char}
		if err := e.start(f, start); err != nil {
			return err
		}
		return e.content(f, identAsString(tok))
	}
	if err := e.start(f, tok); err != nil {
		return err
	}
	if k == KindNumber {
		e.appendText(f, tok.Char)
	}
	return nil
}

func (e *Emitter) start(f *frame, tok jstream.Token) error {
	if f.h.Start != nil {
		if err := f.h.Start(tok); err != nil {
			return err
		}
	}
	return f.forward(tok)
}

func (f *frame) forward(tok jstream.Token) error {
	if f.h.Feed != nil {
		return f.h.Feed(tok)
	}
	return nil
}

// step handles tok for frame f, and reports whether tok must be handled
// again by the enclosing frame.
func (e *Emitter) step(f *frame, tok jstream.Token) (bool, error) {
	switch f.kind {
	case KindNull, KindBool:
		if err := f.forward(tok); err != nil {
			return false, err
		}
		if tok.Done {
			return false, e.complete(f, tok)
		}
		return false, nil

	case KindNumber:
		if tok.Type != jstream.Number {
			return true, e.complete(f, tok)
		}
		if err := f.forward(tok); err != nil {
			return false, err
		}
		e.appendText(f, tok.Char)
		return false, nil

	case KindString:
		if f.ident {
			if tok.Type != jstream.Identifier {
				end := jstream.Token{Loc: tok.Loc, Type: jstream.String, Sub: jstream.StringEnd, Char: tok.Char}
				if err := f.forward(end); err != nil {
					return false, err
				} else if err := e.flush(f); err != nil {
					return false, err
				}
				return true, e.complete(f, end)
			}
			return false, e.content(f, identAsString(tok))
		}
		if tok.Sub == jstream.StringEnd {
			if err := f.forward(tok); err != nil {
				return false, err
			} else if err := e.flush(f); err != nil {
				return false, err
			}
			return false, e.complete(f, tok)
		}
		return false, e.content(f, tok)

	case KindObject:
		switch {
		case tok.Sub == jstream.ObjectEnd:
			if err := f.forward(tok); err != nil {
				return false, err
			}
			return false, e.complete(f, tok)
		case tok.Loc == jstream.Key && (tok.Type == jstream.String || tok.Type == jstream.Identifier):
			obj := f.recv.(*Object)
			kr := obj.Key
			if kr == nil {
				kr = new(String)
			}
			keep := f.save || len(obj.Subscribe) != 0
			return false, e.begin(kr, tok, keep, true)
		case kindOf(tok) != KindAny:
			return false, e.begin(f.recv.(*Object).child(f.name), tok, f.save, false)
		}
		return false, f.forward(tok)

	case KindArray:
		switch {
		case tok.Sub == jstream.ArrayEnd:
			if err := f.forward(tok); err != nil {
				return false, err
			}
			return false, e.complete(f, tok)
		case kindOf(tok) != KindAny:
			return false, e.begin(f.recv.(*Array).child(f.index), tok, f.save, false)
		}
		return false, f.forward(tok)
	}
	panic(fmt.Sprintf("unexpected frame kind %v", f.kind))
}

// content handles a token inside a string.
func (e *Emitter) content(f *frame, tok jstream.Token) error {
	if err := f.forward(tok); err != nil {
		return err
	}
	r, ok := tok.Decoded()
	if !ok {
		return nil
	}
	app := f.recv.(*String).Append
	if app == nil && !f.save {
		return nil
	}
	n := len(f.text)
	f.text = f.dec.Append(f.text, r)
	if !f.save {
		defer func() { f.text = f.text[:0] }()
	} else if !f.key {
		e.retained += len(f.text) - n
	}
	if app != nil && len(f.text) > n {
		return app(string(f.text[n:]))
	}
	return nil
}

// flush delivers a pending unpaired surrogate at the end of a string.
func (e *Emitter) flush(f *frame) error {
	if !f.dec.Pending() {
		return nil
	}
	n := len(f.text)
	f.text = f.dec.Flush(f.text)
	if f.save && !f.key {
		e.retained += len(f.text) - n
	}
	if app := f.recv.(*String).Append; app != nil {
		return app(string(f.text[n:]))
	}
	return nil
}

func (e *Emitter) appendText(f *frame, ch rune) {
	if f.save {
		f.text = append(f.text, string(ch)...)
		e.retained++
	}
}

// complete finishes the value of frame f, which ended at tok, and attaches
// it to the enclosing frame.
func (e *Emitter) complete(f *frame, tok jstream.Token) error {
	if f.h.End != nil {
		if err := f.h.End(tok); err != nil {
			return err
		}
	}

	var v ast.Value
	if f.save {
		var err error
		v, err = f.value()
		if err != nil {
			return err
		}
		if f.h.Save != nil {
			if err := f.h.Save(v); err != nil {
				return err
			}
		}
	}
	e.stk = e.stk[:len(e.stk)-1]

	parent := e.top()
	switch {
	case parent == nil:
		e.value = v
	case f.key:
		if v != nil {
			parent.name = v.(ast.String).Value()
		} else {
			parent.name = ""
		}
	case parent.kind == KindObject:
		if parent.save {
			parent.mem = append(parent.mem, ast.Field(parent.name, v))
			e.retained++
		}
	case parent.kind == KindArray:
		if parent.save {
			parent.elts = append(parent.elts, v)
			e.retained++
		}
		parent.index++
	}
	return nil
}

// value constructs the saved value of f.
func (f *frame) value() (ast.Value, error) {
	switch f.kind {
	case KindNull:
		return ast.Null{}, nil
	case KindBool:
		return ast.NewBool(f.truth), nil
	case KindNumber:
		return ast.ParseNumber(string(f.text))
	case KindString:
		return ast.NewString(string(f.text)), nil
	case KindObject:
		return &ast.Object{Members: f.mem}, nil
	case KindArray:
		return &ast.Array{Values: f.elts}, nil
	}
	return nil, fmt.Errorf("unexpected value kind %v", f.kind)
}

// identAsString converts an identifier token to the equivalent string token.
func identAsString(tok jstream.Token) jstream.Token {
	tok.Type = jstream.String
	switch tok.Sub {
	case jstream.IdentifierNormal:
		tok.Sub = jstream.StringNormal
	case jstream.IdentifierEscapeStart:
		tok.Sub = jstream.StringEscapeStart
	case jstream.IdentifierEscapeU:
		tok.Sub = jstream.StringEscapeUnicode
	case jstream.IdentifierEscapeHex:
		tok.Sub = jstream.StringEscapeUnicodeHex
	}
	return tok
}
