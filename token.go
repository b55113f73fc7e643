// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import "fmt"

// Loc is the coarse grammatical location of a token.
type Loc byte

// Constants defining the valid Loc values.
const (
	Root    Loc = iota // the top-level value, or outside any value
	Key                // an object key, or between members
	Value              // an object member value
	Element            // an array element
)

var locStr = [...]string{Root: "root", Key: "key", Value: "value", Element: "element"}

func (l Loc) String() string {
	if int(l) < len(locStr) {
		return locStr[l]
	}
	return "invalid location"
}

// Type is the type of a token, naming the construct the token's character
// belongs to.
type Type byte

// Constants defining the valid Type values.
const (
	Whitespace Type = iota // insignificant whitespace
	Comment                // part of a line or block comment
	Null                   // part of the constant null
	True                   // part of the constant true
	False                  // part of the constant false
	String                 // part of a quoted string
	Number                 // part of a number, including NaN and Infinity
	Identifier             // part of an unquoted object key
	Object                 // an object brace
	Array                  // an array bracket
	Colon                  // a colon separating a key from its value
	Comma                  // a comma separating members or elements
	End                    // the end of input
)

var typeStr = [...]string{
	Whitespace: "whitespace",
	Comment:    "comment",
	Null:       "null",
	True:       "true",
	False:      "false",
	String:     "string",
	Number:     "number",
	Identifier: "identifier",
	Object:     "object",
	Array:      "array",
	Colon:      "colon",
	Comma:      "comma",
	End:        "end",
}

func (t Type) String() string {
	if int(t) < len(typeStr) {
		return typeStr[t]
	}
	return "invalid type"
}

// Sub is the subtype of a token, identifying the role of the token's
// character within its construct.
type Sub byte

// Constants defining the valid Sub values. Types with a single role, such as
// Whitespace, Null or Colon, use None.
const (
	None Sub = iota

	ObjectStart // {
	ObjectEnd   // }
	ArrayStart  // [
	ArrayEnd    // ]

	StringStart            // opening quote
	StringNormal           // unescaped content character
	StringEscapeStart      // backslash
	StringEscape           // character following a backslash in a short escape
	StringEscapeUnicode    // the u of a \uXXXX escape
	StringEscapeUnicodeHex // one of the four digits of a \uXXXX escape
	StringEscapeHex        // the x of a \xHH escape
	StringEscapeHexDigit   // one of the two digits of a \xHH escape
	StringContinuation     // a line terminator following a backslash
	StringEnd              // closing quote

	NumberSign           // leading + or -
	NumberIntegerDigit   // digit of the integer part
	NumberFractionStart  // decimal point
	NumberFractionDigit  // digit of the fraction part
	NumberExponentStart  // e or E
	NumberExponentSign   // sign of the exponent
	NumberExponentDigit  // digit of the exponent
	NumberRadixPrefix    // x, o or b following a leading 0
	NumberRadixDigit     // digit of a hexadecimal, octal or binary integer
	NumberNaN            // one of the characters of NaN
	NumberInfinity       // one of the characters of Infinity

	CommentMayStart   // the slash that may begin a comment
	LineCommentStart  // the second slash of //
	LineComment       // content of a line comment
	BlockCommentStart // the star of /*
	BlockComment      // content of a block comment
	BlockCommentStar  // a star that may end a block comment
	BlockCommentEnd   // the slash of */

	IdentifierNormal      // unescaped identifier character
	IdentifierEscapeStart // backslash
	IdentifierEscapeU     // the u of a \uXXXX escape
	IdentifierEscapeHex   // one of the four digits of a \uXXXX escape
)

var subStr = [...]string{
	None:                   "",
	ObjectStart:            "start",
	ObjectEnd:              "end",
	ArrayStart:             "start",
	ArrayEnd:               "end",
	StringStart:            "start",
	StringNormal:           "normal",
	StringEscapeStart:      "escape-start",
	StringEscape:           "escape",
	StringEscapeUnicode:    "escape-unicode",
	StringEscapeUnicodeHex: "escape-unicode-hex",
	StringEscapeHex:        "escape-hex",
	StringEscapeHexDigit:   "escape-hex-digit",
	StringContinuation:     "continuation",
	StringEnd:              "end",
	NumberSign:             "sign",
	NumberIntegerDigit:     "integer-digit",
	NumberFractionStart:    "fraction-start",
	NumberFractionDigit:    "fraction-digit",
	NumberExponentStart:    "exponent-start",
	NumberExponentSign:     "exponent-sign",
	NumberExponentDigit:    "exponent-digit",
	NumberRadixPrefix:      "radix-prefix",
	NumberRadixDigit:       "radix-digit",
	NumberNaN:              "nan",
	NumberInfinity:         "infinity",
	CommentMayStart:        "may-start",
	LineCommentStart:       "line-start",
	LineComment:            "line",
	BlockCommentStart:      "block-start",
	BlockComment:           "block",
	BlockCommentStar:       "block-star",
	BlockCommentEnd:        "block-end",
	IdentifierNormal:       "normal",
	IdentifierEscapeStart:  "escape-start",
	IdentifierEscapeU:      "escape-unicode",
	IdentifierEscapeHex:    "escape-unicode-hex",
}

func (s Sub) String() string {
	if int(s) < len(subStr) {
		return subStr[s]
	}
	return "invalid subtype"
}

// A Token reports the effect of a single input character, or of the end of
// input. Tokens are plain values; the tokenizer does not retain them.
type Token struct {
	Loc  Loc  // grammatical location of the token
	Type Type // construct the character belongs to
	Sub  Sub  // role of the character within its construct

	// Index is the offset of the character within a fixed-length construct:
	// the letters of null, true, false, NaN and Infinity, or the digits of a
	// \uXXXX or \xHH escape.
	Index int

	// Done reports whether this is the last character of a fixed-length
	// construct (a literal, a \uXXXX escape, or a \xHH escape).
	Done bool

	// Escaped is the decoded character of a completed escape sequence. It is
	// set for StringEscape, and for the final digit of a \uXXXX or \xHH
	// escape (including in identifiers). A \uXXXX escape yields a single
	// UTF-16 code unit, which may be half of a surrogate pair.
	Escaped rune

	// Char is the input character, or EOF.
	Char rune
}

// Decoded reports the content character, if any, that t contributes to the
// decoded text of a string or identifier key.
func (t Token) Decoded() (rune, bool) {
	switch t.Sub {
	case StringNormal, IdentifierNormal:
		return t.Char, true
	case StringEscape:
		return t.Escaped, true
	case StringEscapeUnicodeHex, StringEscapeHexDigit, IdentifierEscapeHex:
		return t.Escaped, t.Done
	}
	return 0, false
}

// indexed reports whether t is part of a fixed-length construct.
func (t Token) indexed() bool {
	switch t.Type {
	case Null, True, False:
		return true
	}
	switch t.Sub {
	case NumberNaN, NumberInfinity, StringEscapeUnicodeHex, StringEscapeHexDigit, IdentifierEscapeHex:
		return true
	}
	return false
}

// String renders t in a compact human-readable form, for diagnostics.
func (t Token) String() string {
	name := t.Type.String()
	if t.Sub != None {
		name += "/" + t.Sub.String()
	}
	ch := "EOF"
	if t.Char != EOF {
		ch = fmt.Sprintf("%q", t.Char)
	}
	s := fmt.Sprintf("%s %s %s", t.Loc, name, ch)
	if t.indexed() {
		s += fmt.Sprintf(" #%d", t.Index)
	}
	if t.Done {
		s += " done"
		if r, ok := t.Decoded(); ok {
			s += fmt.Sprintf(" %U", r)
		}
	} else if t.Sub == StringEscape {
		s += fmt.Sprintf(" %U", t.Escaped)
	}
	return s
}
