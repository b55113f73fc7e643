// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package pointer implements JSON Pointer (RFC 6901) and Relative JSON
// Pointer addressing over values materialized by package ast.
package pointer

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go4.org/mem"
)

/*
Grammar:

  pointer  = *( "/" token )
  token    = *( unescaped / "~0" / "~1" )
  relative = UINT [ ("+" / "-") UINT ] ( "#" / pointer )

  UINT = "0" / %x31-39 *DIGIT

Source:
  https://www.rfc-editor.org/rfc/rfc6901
  https://datatracker.ietf.org/doc/html/draft-hha-relative-json-pointer
*/

var (
	// ErrSyntax is the underlying error reported for a malformed pointer.
	ErrSyntax = errors.New("invalid pointer syntax")

	// ErrNotFound is the underlying error reported when a pointer does not
	// address a value.
	ErrNotFound = errors.New("value not found")
)

// A Pointer is a parsed JSON Pointer. Each element is an unescaped reference
// token. The empty Pointer addresses the root value.
type Pointer []string

// Parse parses s as a JSON Pointer.
func Parse(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	t, ok := strings.CutPrefix(s, "/")
	if !ok {
		return nil, fmt.Errorf("%w: %q does not begin with /", ErrSyntax, s)
	}
	parts := strings.Split(t, "/")
	p := make(Pointer, len(parts))
	for i, part := range parts {
		tok, err := unescape(mem.S(part))
		if err != nil {
			return nil, fmt.Errorf("%w: token %d of %q: %v", ErrSyntax, i+1, s, err)
		}
		p[i] = tok
	}
	return p, nil
}

// MustParse parses s as a JSON Pointer, and panics if it is not valid.
func MustParse(s string) Pointer {
	p, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("pointer.MustParse: %v", err))
	}
	return p
}

// FromSegments returns a Pointer with the given unescaped reference tokens.
func FromSegments(segs ...string) Pointer { return slices.Clone(Pointer(segs)) }

var escaper = strings.NewReplacer("~", "~0", "/", "~1")

// String returns the escaped string form of p.
func (p Pointer) String() string {
	var buf strings.Builder
	for _, tok := range p {
		buf.WriteByte('/')
		escaper.WriteString(&buf, tok)
	}
	return buf.String()
}

// unescape decodes the escape sequences of a single reference token.
func unescape(m mem.RO) (string, error) {
	if mem.IndexByte(m, '~') < 0 {
		return m.StringCopy(), nil
	}
	var buf strings.Builder
	for i := 0; i < m.Len(); i++ {
		c := m.At(i)
		if c != '~' {
			buf.WriteByte(c)
			continue
		}
		i++
		if i == m.Len() {
			return "", errors.New("incomplete escape")
		}
		switch m.At(i) {
		case '0':
			buf.WriteByte('~')
		case '1':
			buf.WriteByte('/')
		default:
			return "", fmt.Errorf("invalid escape ~%c", m.At(i))
		}
	}
	return buf.String(), nil
}

// A Relative is a parsed Relative JSON Pointer. It is resolved against a
// base pointer: Up levels are removed from the base, then Offset is added to
// the last token of the result, which must be an array index. Finally, if
// Hash is set, the pointer addresses the key or index of the resulting
// location; otherwise Path is appended to it.
type Relative struct {
	Up     int
	Offset int
	Hash   bool
	Path   Pointer
}

// ParseRelative parses s as a Relative JSON Pointer.
func ParseRelative(s string) (Relative, error) {
	m := mem.S(s)
	up, rest, ok := parseUint(m)
	if !ok {
		return Relative{}, fmt.Errorf("%w: %q lacks a level count", ErrSyntax, s)
	}
	r := Relative{Up: up}
	if rest.Len() != 0 && (rest.At(0) == '+' || rest.At(0) == '-') {
		sign := rest.At(0)
		off, tail, ok := parseUint(rest.SliceFrom(1))
		if !ok {
			return Relative{}, fmt.Errorf("%w: %q has an invalid index offset", ErrSyntax, s)
		}
		if sign == '-' {
			off = -off
		}
		r.Offset, rest = off, tail
	}
	if rest.EqualString("#") {
		r.Hash = true
		return r, nil
	}
	p, err := Parse(rest.StringCopy())
	if err != nil {
		return Relative{}, err
	}
	r.Path = p
	return r, nil
}

// parseUint parses a non-negative decimal integer without leading zeroes
// from the front of m, and returns the remainder.
func parseUint(m mem.RO) (int, mem.RO, bool) {
	n := 0
	for n < m.Len() && m.At(n) >= '0' && m.At(n) <= '9' {
		n++
	}
	if n == 0 || (n > 1 && m.At(0) == '0') {
		return 0, m, false
	}
	v, err := mem.ParseInt(m.SliceTo(n), 10, 0)
	if err != nil {
		return 0, m, false
	}
	return int(v), m.SliceFrom(n), true
}

// String returns the string form of r.
func (r Relative) String() string {
	s := strconv.Itoa(r.Up)
	if r.Offset > 0 {
		s += "+" + strconv.Itoa(r.Offset)
	} else if r.Offset < 0 {
		s += strconv.Itoa(r.Offset)
	}
	if r.Hash {
		return s + "#"
	}
	return s + r.Path.String()
}

// Resolve returns the absolute pointer for the location of r relative to
// base. If r.Hash is set, the result addresses the value whose key or index
// is reported, and r.Path is ignored.
func (r Relative) Resolve(base Pointer) (Pointer, error) {
	if r.Up > len(base) {
		return nil, fmt.Errorf("up %d from %q: %w", r.Up, base.String(), ErrNotFound)
	}
	q := slices.Clone(base[:len(base)-r.Up])
	if r.Offset != 0 {
		if len(q) == 0 {
			return nil, fmt.Errorf("offset %d at the root: %w", r.Offset, ErrNotFound)
		}
		last := len(q) - 1
		i, err := parseIndex(q[last])
		if err != nil {
			return nil, fmt.Errorf("offset %d from %q: %w", r.Offset, q[last], ErrNotFound)
		}
		if i += r.Offset; i < 0 {
			return nil, fmt.Errorf("offset %d from %q: %w", r.Offset, q[last], ErrNotFound)
		}
		q[last] = strconv.Itoa(i)
	}
	if !r.Hash {
		q = append(q, r.Path...)
	}
	return q, nil
}

// parseIndex parses tok as an array index.
func parseIndex(tok string) (int, error) {
	v, rest, ok := parseUint(mem.S(tok))
	if !ok || rest.Len() != 0 {
		return 0, fmt.Errorf("%w: invalid array index %q", ErrSyntax, tok)
	}
	return v, nil
}
