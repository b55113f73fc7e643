// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"io"
	"unicode/utf8"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/internal/escape"
)

// ErrIncomplete is reported by Parser.Get if the end of input has not been
// reached.
var ErrIncomplete = errors.New("parse is not complete")

// Parse parses and returns the single JSON value in s, using the grammar
// selected by cfg.
func Parse(s string, cfg jstream.Config) (Value, error) {
	p := NewParser(cfg)
	if err := p.Feed(s); err != nil {
		return nil, err
	} else if err := p.End(); err != nil {
		return nil, err
	}
	return p.Get()
}

// ParseReader parses and returns the single JSON value read from r, using
// the grammar selected by cfg.
func ParseReader(r io.Reader, cfg jstream.Config) (Value, error) {
	p := NewParser(cfg)
	if err := p.FeedReader(r); err != nil {
		return nil, err
	} else if err := p.End(); err != nil {
		return nil, err
	}
	return p.Get()
}

// A Parser materializes a JSON value from input delivered incrementally: one
// character, one chunk, or one reader at a time. Every value in the input is
// retained.
//
// Errors are fatal: once a Parser reports an error, it reports the same error
// for all subsequent calls.
type Parser struct {
	tok  *jstream.Tokenizer
	stk  []*frame
	root Value
	done bool
	err  error
}

// A frame records a value under construction.
type frame struct {
	typ   jstream.Type // String, Number, Null, True, False, Object, or Array
	pos   int
	key   bool // the frame is an object key
	ident bool // the key is an unquoted identifier

	text []byte // decoded string content, or raw number text
	dec  escape.Builder

	obj     *Object
	arr     *Array
	pending string // key of the member whose value is in progress
}

// NewParser constructs a new Parser that accepts the grammar selected by cfg.
func NewParser(cfg jstream.Config) *Parser {
	return &Parser{tok: jstream.NewTokenizer(cfg)}
}

// Pos returns the number of characters consumed by p.
func (p *Parser) Pos() int { return p.tok.Pos() }

// Line returns the 1-based line number of the next character.
func (p *Parser) Line() int { return p.tok.Line() }

// Column returns the 1-based column of the next character.
func (p *Parser) Column() int { return p.tok.Column() }

// Feed feeds the characters of s to the parser.
func (p *Parser) Feed(s string) error {
	for _, ch := range s {
		if err := p.FeedRune(ch); err != nil {
			return err
		}
	}
	return nil
}

// FeedReader feeds all the characters read from r to the parser. It does not
// end the input.
func (p *Parser) FeedReader(r io.Reader) error {
	if p.err != nil {
		return p.err
	}
	pos := p.tok.Pos()
	err := p.tok.FeedReader(r, func(tok jstream.Token) error {
		err := p.apply(tok, pos)
		pos = p.tok.Pos()
		return err
	})
	if err != nil {
		p.err = err
	}
	return err
}

// FeedRune feeds the single character ch to the parser.
func (p *Parser) FeedRune(ch rune) error {
	if p.err != nil {
		return p.err
	}
	pos := p.tok.Pos()
	tok, err := p.tok.Feed(ch)
	if err == nil {
		err = p.apply(tok, pos)
	}
	if err != nil {
		p.err = err
	}
	return err
}

// End signals the end of the input.
func (p *Parser) End() error { return p.FeedRune(jstream.EOF) }

// Get returns the complete value. It reports ErrIncomplete if End has not
// been called successfully. If the configuration allows an empty document
// and the input had no value, Get returns nil, nil.
func (p *Parser) Get() (Value, error) {
	if p.err != nil {
		return nil, p.err
	} else if !p.done {
		return nil, ErrIncomplete
	}
	return p.root, nil
}

func (p *Parser) top() *frame {
	if n := len(p.stk); n > 0 {
		return p.stk[n-1]
	}
	return nil
}

func (p *Parser) push(f *frame) { p.stk = append(p.stk, f) }

// apply updates the parser state for tok, whose character was at offset pos.
func (p *Parser) apply(tok jstream.Token, pos int) error {
	for {
		f := p.top()
		if f == nil || f.obj != nil || f.arr != nil {
			return p.structure(tok, pos)
		}
		switch f.typ {
		case jstream.Number:
			if tok.Type == jstream.Number {
				f.text = utf8.AppendRune(f.text, tok.Char)
				return nil
			}
			n, err := ParseNumber(string(f.text))
			if err != nil {
				return err
			}
			n.span = span{f.pos, pos}
			p.pop(n)
			continue // tok follows the number

		case jstream.String:
			if f.ident && tok.Type != jstream.Identifier {
				p.pop(String{span: span{f.pos, pos}, value: string(f.dec.Flush(f.text))})
				continue // tok follows the key
			}
			if r, ok := tok.Decoded(); ok {
				f.text = f.dec.Append(f.text, r)
			} else if tok.Sub == jstream.StringEnd {
				p.pop(String{span: span{f.pos, pos + 1}, value: string(f.dec.Flush(f.text))})
			}
			return nil

		default: // null, true, false
			if tok.Done {
				sp := span{f.pos, pos + 1}
				switch f.typ {
				case jstream.Null:
					p.pop(Null{span: sp})
				default:
					p.pop(Bool{span: sp, value: f.typ == jstream.True})
				}
			}
			return nil
		}
	}
}

// structure handles a token when no scalar value is in progress.
func (p *Parser) structure(tok jstream.Token, pos int) error {
	switch tok.Type {
	case jstream.Object:
		if tok.Sub == jstream.ObjectStart {
			p.push(&frame{typ: jstream.Object, pos: pos, obj: new(Object)})
		} else {
			obj := p.top().obj
			obj.span = span{p.top().pos, pos + 1}
			p.pop(obj)
		}
	case jstream.Array:
		if tok.Sub == jstream.ArrayStart {
			p.push(&frame{typ: jstream.Array, pos: pos, arr: new(Array)})
		} else {
			arr := p.top().arr
			arr.span = span{p.top().pos, pos + 1}
			p.pop(arr)
		}
	case jstream.String:
		p.push(&frame{typ: jstream.String, pos: pos, key: tok.Loc == jstream.Key})
	case jstream.Identifier:
		f := &frame{typ: jstream.String, pos: pos, key: true, ident: true}
		if r, ok := tok.Decoded(); ok {
			f.text = f.dec.Append(f.text, r)
		}
		p.push(f)
	case jstream.Number:
		p.push(&frame{typ: jstream.Number, pos: pos, text: utf8.AppendRune(nil, tok.Char)})
	case jstream.Null, jstream.True, jstream.False:
		p.push(&frame{typ: tok.Type, pos: pos})
	case jstream.End:
		p.done = true
	}
	return nil
}

// pop removes the top frame, whose completed value is v, and attaches v to
// the enclosing frame or makes it the root.
func (p *Parser) pop(v Value) {
	f := p.top()
	p.stk = p.stk[:len(p.stk)-1]
	parent := p.top()
	switch {
	case parent == nil:
		p.root = v
	case f.key:
		parent.pending = v.(String).value
	case parent.obj != nil:
		parent.obj.Members = append(parent.obj.Members, &Member{Key: parent.pending, Value: v})
	case parent.arr != nil:
		parent.arr.Values = append(parent.arr.Values, v)
	}
}
