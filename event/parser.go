// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package event implements a push-style JSON and JSON5 parser that reports
// the construction of values to a tree of typed receivers.
//
// Each value in the input is delivered to a Receiver. The root value goes to
// the receiver passed to NewParser; the members of an object and the elements
// of an array go to receivers chosen by the Subscribe functions of the
// enclosing receiver. Only values whose receiver (or an enclosing receiver)
// defines a Save hook are retained in memory, so a document of any size can
// be processed with memory proportional to its nesting depth:
//
//	var names []string
//	root := &event.Array{
//	   Subscribe: []func(int) event.Receiver{
//	      func(int) event.Receiver {
//	         return &event.Object{
//	            Subscribe: []func(string) event.Receiver{
//	               func(key string) event.Receiver {
//	                  if key != "name" {
//	                     return nil
//	                  }
//	                  return &event.String{Hooks: event.Hooks{
//	                     Save: func(v ast.Value) error {
//	                        names = append(names, v.(ast.String).Value())
//	                        return nil
//	                     },
//	                  }}
//	               },
//	            },
//	         }
//	      },
//	   },
//	}
//	err := event.Parse(input, jstream.JSON5, root)
package event

import (
	"io"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/ast"
)

// Parse parses the single JSON value in s using the grammar selected by cfg,
// and delivers it to root.
func Parse(s string, cfg jstream.Config, root Receiver) error {
	p := NewParser(cfg, root)
	if err := p.Feed(s); err != nil {
		return err
	}
	return p.End()
}

// A Parser couples a jstream.Tokenizer to an Emitter.
type Parser struct {
	tok *jstream.Tokenizer
	em  *Emitter
	err error
}

// NewParser constructs a Parser that accepts the grammar selected by cfg and
// delivers the root value to root.
func NewParser(cfg jstream.Config, root Receiver) *Parser {
	return &Parser{tok: jstream.NewTokenizer(cfg), em: NewEmitter(root)}
}

// Pos returns the number of characters consumed by p.
func (p *Parser) Pos() int { return p.tok.Pos() }

// Line returns the 1-based line number of the next character.
func (p *Parser) Line() int { return p.tok.Line() }

// Column returns the 1-based column of the next character.
func (p *Parser) Column() int { return p.tok.Column() }

// Value returns the root value, if it was saved, or nil.
func (p *Parser) Value() ast.Value { return p.em.Value() }

// Feed feeds the characters of s to the parser.
func (p *Parser) Feed(s string) error {
	for _, ch := range s {
		if err := p.FeedRune(ch); err != nil {
			return err
		}
	}
	return nil
}

// FeedRune feeds the single character ch to the parser.
func (p *Parser) FeedRune(ch rune) error {
	if p.err != nil {
		return p.err
	}
	tok, err := p.tok.Feed(ch)
	if err == nil {
		err = p.em.Feed(tok)
	}
	p.err = err
	return err
}

// FeedReader feeds all the characters read from r to the parser. It does not
// end the input.
func (p *Parser) FeedReader(r io.Reader) error {
	if p.err != nil {
		return p.err
	}
	p.err = p.tok.FeedReader(r, p.em.Feed)
	return p.err
}

// End signals the end of the input.
func (p *Parser) End() error { return p.FeedRune(jstream.EOF) }
