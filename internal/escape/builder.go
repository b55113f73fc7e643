// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape assembles the decoded text of JSON strings from the
// characters reported by a tokenizer.
package escape

import (
	"unicode/utf16"
	"unicode/utf8"
)

// A Builder decodes a sequence of characters and UTF-16 code units into
// UTF-8 text. A high surrogate followed by a low surrogate is combined into
// a single rune; an unpaired surrogate is replaced by utf8.RuneError.
//
// The zero value is ready for use.
type Builder struct {
	hi rune // pending high surrogate, or 0
}

func isHigh(r rune) bool { return 0xd800 <= r && r < 0xdc00 }
func isLow(r rune) bool  { return 0xdc00 <= r && r < 0xe000 }

// Append appends the encoding of r to dst and returns the extended slice.
// If r is a high surrogate, nothing is appended until the next call.
func (b *Builder) Append(dst []byte, r rune) []byte {
	if b.hi != 0 {
		hi := b.hi
		b.hi = 0
		if isLow(r) {
			return utf8.AppendRune(dst, utf16.DecodeRune(hi, r))
		}
		dst = utf8.AppendRune(dst, utf8.RuneError)
	}
	if isHigh(r) {
		b.hi = r
		return dst
	}
	return utf8.AppendRune(dst, r)
}

// Pending reports whether b is holding an unpaired high surrogate.
func (b *Builder) Pending() bool { return b.hi != 0 }

// Flush appends the replacement for a pending high surrogate, if any, to dst
// and resets b.
func (b *Builder) Flush(dst []byte) []byte {
	if b.hi != 0 {
		b.hi = 0
		return utf8.AppendRune(dst, utf8.RuneError)
	}
	return dst
}
