// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import "fmt"

// Reason is the category of a syntax error. Reason values satisfy the error
// interface, so that a caller can check the category of an error with
// errors.Is:
//
//	if errors.Is(err, jstream.LeadingZero) { ... }
type Reason byte

// Constants defining the valid Reason values.
const (
	UnexpectedChar Reason = iota + 1 // a character not valid at this point
	UnexpectedEOF                    // end of input inside a value
	AfterEnd                         // input after the end of input
	TrailingContent                  // content after the complete value
	EmptyDocument                    // no value in the input

	WrongBracket    // mismatched closing bracket
	EmptyValue      // a member with no value
	MissingColon    // a key not followed by a colon
	RepeatedColon   // a second colon after a key
	UnexpectedComma // a comma where no comma may appear
	TrailingComma   // a trailing comma when they are disabled

	BadEscape          // an unknown character after a backslash
	BadUnicodeEscape   // a non-hex digit in a \uXXXX escape
	BadHexEscape       // a non-hex digit in a \xHH escape
	ControlChar        // an unescaped control character in a string
	SingleQuote        // a single-quoted string when they are disabled
	UnterminatedString // end of input inside a string

	LeadingZero        // a leading zero followed by another digit
	EmptyInteger       // a number with no integer digits
	EmptyFraction      // a decimal point with no fraction digits
	EmptyExponent      // an exponent marker with no digits
	UnexpectedInNumber // a character that cannot continue or end a number
	RadixFraction      // a decimal point after a radix-prefixed integer
	RadixExponent      // an exponent after a radix-prefixed integer
	LoneDecimalPoint   // a decimal point with no digits on either side

	BadIdentifierChar        // a character not valid in an identifier key
	BadIdentifierEscapeStart // a backslash in an identifier not followed by u
	BadIdentifierEscapeDigit // a non-hex digit in an identifier escape

	CommentForbidden    // a comment when comments are disabled
	UnterminatedComment // end of input inside a block comment
)

var reasonStr = [...]string{
	UnexpectedChar:  "unexpected character",
	UnexpectedEOF:   "unexpected end of input",
	AfterEnd:        "input after end of input",
	TrailingContent: "unexpected content after value",
	EmptyDocument:   "no value in input",

	WrongBracket:    "mismatched closing bracket",
	EmptyValue:      "missing value",
	MissingColon:    "expected colon after key",
	RepeatedColon:   "repeated colon",
	UnexpectedComma: "unexpected comma",
	TrailingComma:   "trailing comma not allowed",

	BadEscape:          "invalid escape sequence",
	BadUnicodeEscape:   "invalid digit in unicode escape",
	BadHexEscape:       "invalid digit in hex escape",
	ControlChar:        "unescaped control character in string",
	SingleQuote:        "single-quoted strings not allowed",
	UnterminatedString: "unterminated string",

	LeadingZero:        "extra leading zero in number",
	EmptyInteger:       "integer part cannot be empty",
	EmptyFraction:      "fraction part cannot be empty",
	EmptyExponent:      "exponent part cannot be empty",
	UnexpectedInNumber: "unexpected character in number",
	RadixFraction:      "fraction not allowed after radix prefix",
	RadixExponent:      "exponent not allowed after radix prefix",
	LoneDecimalPoint:   "decimal point without digits",

	BadIdentifierChar:        "invalid character in identifier",
	BadIdentifierEscapeStart: "invalid escape in identifier",
	BadIdentifierEscapeDigit: "invalid digit in identifier escape",

	CommentForbidden:    "comments not allowed",
	UnterminatedComment: "unterminated block comment",
}

// Error satisfies the error interface.
func (r Reason) Error() string {
	if r > 0 && int(r) < len(reasonStr) {
		return reasonStr[r]
	}
	return "unknown syntax error"
}

// SyntaxError is the concrete type of errors reported by the tokenizer.
type SyntaxError struct {
	Reason   Reason  // the category of the error
	Char     rune    // the offending character, or EOF
	Pos      int     // the offset of the offending character, 0-based
	Location LineCol // the line and column of the offending character
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	if e.Char == EOF {
		return fmt.Sprintf("at %s: %v at end of input", e.Location, e.Reason)
	}
	return fmt.Sprintf("at %s: %v (got %q)", e.Location, e.Reason, e.Char)
}

// Unwrap reports the Reason of e.
func (e *SyntaxError) Unwrap() error { return e.Reason }
