// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

// Config is a set of independent feature flags controlling which extensions
// to the JSON grammar a Tokenizer accepts. The zero Config accepts exactly
// the standard JSON grammar. Every flag is permissive: enabling a flag never
// causes an input that was previously accepted to be rejected.
//
// A Config is copied into the tokenizer when it is constructed, so changes
// made to a Config after that point do not affect existing tokenizers.
type Config struct {
	TrailingCommaArray  bool // allow one trailing comma in an array: [1,] and [,]
	TrailingCommaObject bool // allow one trailing comma in an object: {"a":1,} and {,}

	IdentifierKeys   bool // allow ECMAScript identifier names as object keys
	SingleQuote      bool // allow 'single-quoted' strings
	MultilineStrings bool // allow backslash-newline line continuations in strings
	JSON5Escapes     bool // allow the escapes \v, \0, \' and \xHH

	LeadingPlus   bool // allow a leading + sign on numbers
	EmptyInteger  bool // allow numbers with an empty integer part: .5
	EmptyFraction bool // allow numbers with an empty fraction part: 5.
	NaN           bool // allow NaN
	Infinity      bool // allow Infinity, +Infinity and -Infinity

	HexIntegers    bool // allow hexadecimal integers: 0x1F
	OctalIntegers  bool // allow octal integers: 0o17
	BinaryIntegers bool // allow binary integers: 0b101

	LineComments    bool // allow // line comments
	BlockComments   bool // allow /* block */ comments
	JSON5Whitespace bool // allow the additional whitespace characters of JSON5

	// EmptyDocument allows an input that contains no value at all, only
	// whitespace and comments. It is not enabled by any preset.
	EmptyDocument bool
}

// Comments is a preset that enables line and block comments only.
var Comments = Config{
	LineComments:  true,
	BlockComments: true,
}

// JSON5 is a preset that enables the complete JSON5 grammar, plus octal and
// binary integer literals. It is a superset of Comments.
var JSON5 = Config{
	TrailingCommaArray:  true,
	TrailingCommaObject: true,
	IdentifierKeys:      true,
	SingleQuote:         true,
	MultilineStrings:    true,
	JSON5Escapes:        true,
	LeadingPlus:         true,
	EmptyInteger:        true,
	EmptyFraction:       true,
	NaN:                 true,
	Infinity:            true,
	HexIntegers:         true,
	OctalIntegers:       true,
	BinaryIntegers:      true,
	LineComments:        true,
	BlockComments:       true,
	JSON5Whitespace:     true,
}

// commentsAllowed reports whether any comment syntax is enabled.
func (c Config) commentsAllowed() bool { return c.LineComments || c.BlockComments }

// radixAllowed reports whether the integer prefix letter ch is enabled,
// and if so returns the base it selects.
func (c Config) radixAllowed(ch rune) (int, bool) {
	switch ch {
	case 'x', 'X':
		return 16, c.HexIntegers
	case 'o', 'O':
		return 8, c.OctalIntegers
	case 'b', 'B':
		return 2, c.BinaryIntegers
	}
	return 0, false
}
