// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import "github.com/creachadair/jstream"

// ANSI terminal escape sequences.
const (
	reset      = "\033[0m"
	red        = "\033[31m"
	green      = "\033[32m"
	yellow     = "\033[33m"
	blue       = "\033[34m"
	magenta    = "\033[35m"
	cyan       = "\033[36m"
	dimWhite   = "\033[2;37m"
	brightBlue = "\033[1;34m"
)

// A palette assigns terminal colors to output. A nil *palette produces
// uncolored output.
type palette struct {
	ok, fail string
	types    map[jstream.Type]string
}

var defaultPalette = palette{
	ok:   green,
	fail: red,
	types: map[jstream.Type]string{
		jstream.Whitespace: dimWhite,
		jstream.Comment:    dimWhite,
		jstream.Null:       magenta,
		jstream.True:       magenta,
		jstream.False:      magenta,
		jstream.String:     green,
		jstream.Number:     yellow,
		jstream.Identifier: brightBlue,
		jstream.Object:     cyan,
		jstream.Array:      cyan,
		jstream.Colon:      blue,
		jstream.Comma:      blue,
	},
}

func (p *palette) good(s string) string {
	if p == nil {
		return s
	}
	return p.wrap(p.ok, s)
}

func (p *palette) bad(s string) string {
	if p == nil {
		return s
	}
	return p.wrap(p.fail, s)
}

func (p *palette) forType(t jstream.Type) string {
	if p == nil {
		return ""
	}
	return p.types[t]
}

// wrap returns s bracketed by code and a reset, or s alone if p is nil or
// code is empty.
func (p *palette) wrap(code, s string) string {
	if p == nil || code == "" {
		return s
	}
	return code + s + reset
}
