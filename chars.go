// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import "unicode"

// EOF is the sentinel character that marks the end of the input.
// Tokenizer.End feeds it; it may also be passed to Feed directly.
const EOF rune = -1

const (
	lineSeparator      = '\u2028'
	paragraphSeparator = '\u2029'
	zwnj               = '\u200c'
	zwj                = '\u200d'
)

// isSpace reports whether ch is whitespace. Standard JSON allows only space,
// tab, LF and CR; JSON5 adds the remaining ECMAScript whitespace and line
// terminator characters.
func isSpace(ch rune, json5 bool) bool {
	switch ch {
	case ' ', '\t', '\n', '\r':
		return true
	}
	if !json5 {
		return false
	}
	switch ch {
	case '\v', '\f', '\u00a0', '\ufeff', lineSeparator, paragraphSeparator:
		return true
	}
	return unicode.Is(unicode.Zs, ch)
}

// isControl reports whether ch is a control character that may not appear
// unescaped inside a string.
func isControl(ch rune) bool { return ch >= 0 && ch < ' ' }

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

// isRadixDigit reports whether ch is a digit in the given base (2, 8 or 16).
func isRadixDigit(ch rune, base int) bool {
	switch base {
	case 2:
		return ch == '0' || ch == '1'
	case 8:
		return '0' <= ch && ch <= '7'
	}
	return isHexDigit(ch)
}

func hexValue(ch rune) rune {
	switch {
	case isDigit(ch):
		return ch - '0'
	case 'a' <= ch && ch <= 'f':
		return ch - 'a' + 10
	}
	return ch - 'A' + 10
}

// isLineTerminator reports whether ch ends a line.
func isLineTerminator(ch rune) bool {
	return ch == '\n' || ch == '\r' || ch == lineSeparator || ch == paragraphSeparator
}

// isIdentStart reports whether ch may begin an ECMAScript identifier name.
func isIdentStart(ch rune) bool {
	if ch == '$' || ch == '_' {
		return true
	}
	return unicode.In(ch, unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl)
}

// isIdentContinue reports whether ch may continue an ECMAScript identifier
// name after its first character.
func isIdentContinue(ch rune) bool {
	if isIdentStart(ch) || ch == zwnj || ch == zwj {
		return true
	}
	return unicode.In(ch, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}

// isNumberEnd reports whether ch may immediately follow the last character
// of a number.
func isNumberEnd(ch rune, json5 bool) bool {
	switch ch {
	case EOF, ',', ']', '}', '/':
		return true
	}
	return isSpace(ch, json5)
}
