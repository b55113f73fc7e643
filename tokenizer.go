// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"bufio"
	"io"
	"iter"
)

// Stage reports the progress of a Tokenizer through its input.
type Stage byte

// Constants defining the valid Stage values.
const (
	NotStarted Stage = iota // no input has been fed
	Parsing                 // some input has been fed, but not the end of input
	Ended                   // the end of input has been fed
)

var stageStr = [...]string{NotStarted: "not started", Parsing: "parsing", Ended: "ended"}

func (s Stage) String() string {
	if int(s) < len(stageStr) {
		return stageStr[s]
	}
	return "invalid stage"
}

// where is the position in the grammar at which the next character is
// expected, when no value is in progress.
type where byte

const (
	atRootStart    where = iota // before the top-level value
	atRootEnd                   // after the top-level value
	atKeyFirst                  // after {
	atKey                       // after a comma in an object
	atKeyEnd                    // after a key, before the colon
	atValueStart                // after a colon
	atValueEnd                  // after a member value
	atElementFirst              // after [
	atElement                   // after a comma in an array
	atElementEnd                // after an array element
	atEnd                       // after the end of input
	atEmptyObject               // after {, when only } may follow
	atEmptyArray                // after [, when only ] may follow
)

func (w where) loc() Loc {
	switch w {
	case atKeyFirst, atKey, atKeyEnd, atEmptyObject:
		return Key
	case atValueStart, atValueEnd:
		return Value
	case atElementFirst, atElement, atElementEnd, atEmptyArray:
		return Element
	}
	return Root
}

// A valueState describes a multi-character construct in progress. Each
// concrete type carries only the fields relevant to that construct. A nil
// valueState means no construct is in progress.
type valueState interface{ isValueState() }

// inLiteral is a fixed spelling: null, true, false, NaN or Infinity.
type inLiteral struct {
	typ   Type
	sub   Sub
	text  string
	index int // offset of the next expected character
}

type strPhase byte

const (
	strNormal  strPhase = iota
	strEscape           // after a backslash
	strUnicode          // reading the digits of \uXXXX
	strHex              // reading the digits of \xHH
	strCR               // after a backslash and CR, where LF may follow
)

type inString struct {
	single bool // single-quoted
	phase  strPhase
	digits int  // digits read so far in the current escape
	acc    rune // value of the digits read so far
}

type numPhase byte

const (
	numSign       numPhase = iota // after a leading sign
	numZero                       // after a leading 0
	numInt                        // in the integer part
	numFracStart                  // after the decimal point
	numFrac                       // in the fraction part
	numExpStart                   // after e or E
	numExpSign                    // after the sign of the exponent
	numExp                        // in the exponent
	numRadixStart                 // after 0x, 0o or 0b
	numRadix                      // in the digits of a radix-prefixed integer
)

type inNumber struct {
	phase    numPhase
	intEmpty bool // the integer part has no digits
	base     int  // the base of a radix-prefixed integer
}

type commentPhase byte

const (
	cmMayStart  commentPhase = iota // after /
	cmLine                          // inside a line comment
	cmBlock                         // inside a block comment
	cmBlockStar                     // after * inside a block comment
)

type inComment struct{ phase commentPhase }

type identPhase byte

const (
	idNormal      identPhase = iota
	idEscapeStart            // after a backslash
	idEscapeHex              // reading the digits of \uXXXX
)

type inIdent struct {
	phase  identPhase
	first  bool // no character of the identifier has been completed
	digits int
	acc    rune
}

func (inLiteral) isValueState() {}
func (inString) isValueState()  {}
func (inNumber) isValueState()  {}
func (inComment) isValueState() {}
func (inIdent) isValueState()   {}

// A Tokenizer is an incremental JSON tokenizer. Each call to Feed consumes
// exactly one character and reports exactly one Token describing it. The
// tokenizer never buffers the input text: apart from a stack of saved
// locations that grows with the nesting depth of the input, its state is of
// constant size.
//
// Any error reported by Feed is fatal: the tokenizer reports the same error
// for all subsequent calls. Use Clone to checkpoint a tokenizer before
// feeding input that may be invalid.
//
// A Tokenizer is not safe for concurrent use without external
// synchronization.
type Tokenizer struct {
	cfg   Config
	pos   position
	stage Stage
	err   error

	where where
	vs    valueState
	stack []where // saved locations of enclosing containers
}

// NewTokenizer constructs a new Tokenizer that accepts the grammar selected
// by cfg.
func NewTokenizer(cfg Config) *Tokenizer {
	return &Tokenizer{cfg: cfg, pos: newPosition()}
}

// Config returns the configuration of t.
func (t *Tokenizer) Config() Config { return t.cfg }

// Pos returns the number of characters consumed by t, which is also the
// offset of the next character.
func (t *Tokenizer) Pos() int { return t.pos.pos }

// Line returns the 1-based line number of the next character.
func (t *Tokenizer) Line() int { return t.pos.line }

// Column returns the 1-based column of the next character.
func (t *Tokenizer) Column() int { return t.pos.col }

// LineCol returns the line and column of the next character.
func (t *Tokenizer) LineCol() LineCol { return t.pos.lineCol() }

// Stage reports the progress of t through its input.
func (t *Tokenizer) Stage() Stage { return t.stage }

// Location reports the coarse grammatical location of the next character.
func (t *Tokenizer) Location() Loc { return t.where.loc() }

// Depth reports the number of objects and arrays enclosing the next
// character.
func (t *Tokenizer) Depth() int { return len(t.stack) }

// Err reports the error that stopped t, if any.
func (t *Tokenizer) Err() error { return t.err }

// Clone returns an independent copy of t. Feeding either tokenizer does not
// affect the other.
func (t *Tokenizer) Clone() *Tokenizer {
	c := *t
	c.stack = append([]where(nil), t.stack...)
	return &c
}

// Feed consumes the character ch and returns the token describing it.
// Passing EOF is equivalent to calling End.
func (t *Tokenizer) Feed(ch rune) (Token, error) {
	if t.err != nil {
		return Token{Char: ch}, t.err
	}
	if t.stage == Ended {
		return Token{Char: ch}, t.setErr(t.fail(AfterEnd, ch))
	}
	t.stage = Parsing
	tok, err := t.step(ch)
	if err != nil {
		return Token{Char: ch}, t.setErr(err)
	}
	tok.Char = ch
	t.pos.advance(ch)
	if ch == EOF {
		t.stage = Ended
	}
	return tok, nil
}

// End signals the end of the input and returns the token describing it.
// End reports an error if the input ended inside a value.
func (t *Tokenizer) End() (Token, error) { return t.Feed(EOF) }

// FeedString feeds each character of s to t. If f != nil, it is called with
// each token in order. FeedString stops and returns the first error reported
// by t or by f. FeedString does not end the input.
func (t *Tokenizer) FeedString(s string, f func(Token) error) error {
	for _, ch := range s {
		tok, err := t.Feed(ch)
		if err != nil {
			return err
		}
		if f != nil {
			if err := f(tok); err != nil {
				return err
			}
		}
	}
	return nil
}

// FeedReader feeds each character read from r to t, with the same behavior
// as FeedString. FeedReader returns nil when r is exhausted; it does not end
// the input.
func (t *Tokenizer) FeedReader(r io.Reader, f func(Token) error) error {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	for {
		ch, _, err := br.ReadRune()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		tok, err := t.Feed(ch)
		if err != nil {
			return err
		}
		if f != nil {
			if err := f(tok); err != nil {
				return err
			}
		}
	}
}

// All returns an iterator over the tokens for the characters of s. If an
// error occurs, it is yielded with a zero token and iteration stops.
func (t *Tokenizer) All(s string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for _, ch := range s {
			tok, err := t.Feed(ch)
			if err != nil {
				yield(Token{}, err)
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

func (t *Tokenizer) setErr(err error) error {
	t.err = err
	return err
}

func (t *Tokenizer) fail(reason Reason, ch rune) error {
	return &SyntaxError{Reason: reason, Char: ch, Pos: t.pos.pos, Location: t.pos.lineCol()}
}

// unexpected reports an error for a character that is not valid at this
// point, distinguishing the end of input from other characters.
func (t *Tokenizer) unexpected(ch rune) error {
	if ch == EOF {
		return t.fail(UnexpectedEOF, ch)
	}
	return t.fail(UnexpectedChar, ch)
}

func (t *Tokenizer) tok(typ Type, sub Sub) Token {
	return Token{Loc: t.where.loc(), Type: typ, Sub: sub}
}

func (t *Tokenizer) step(ch rune) (Token, error) {
	switch vs := t.vs.(type) {
	case inLiteral:
		return t.literal(vs, ch)
	case inString:
		return t.str(vs, ch)
	case inNumber:
		return t.number(vs, ch)
	case inComment:
		return t.comment(vs, ch)
	case inIdent:
		return t.ident(vs, ch)
	}
	return t.structure(ch)
}

// structure handles a character when no construct is in progress.
func (t *Tokenizer) structure(ch rune) (Token, error) {
	if isSpace(ch, t.cfg.JSON5Whitespace) {
		return t.tok(Whitespace, None), nil
	}
	if ch == '/' {
		if !t.cfg.commentsAllowed() {
			return Token{}, t.fail(CommentForbidden, ch)
		}
		tok := t.tok(Comment, CommentMayStart)
		t.vs = inComment{phase: cmMayStart}
		return tok, nil
	}

	switch t.where {
	case atRootStart:
		if ch == EOF {
			if !t.cfg.EmptyDocument {
				return Token{}, t.fail(EmptyDocument, ch)
			}
			t.where = atEnd
			return t.tok(End, None), nil
		}
		return t.beginValue(ch, atRootEnd)

	case atRootEnd:
		if ch == EOF {
			t.where = atEnd
			return t.tok(End, None), nil
		}
		return Token{}, t.fail(TrailingContent, ch)

	case atKeyFirst, atKey:
		switch ch {
		case '"', '\'':
			return t.beginString(ch, atKeyEnd)
		case '}':
			if t.where == atKey && !t.cfg.TrailingCommaObject {
				return Token{}, t.fail(TrailingComma, ch)
			}
			return t.close(Object, ObjectEnd), nil
		case ',':
			if t.where == atKeyFirst && t.cfg.TrailingCommaObject {
				tok := t.tok(Comma, None)
				t.where = atEmptyObject
				return tok, nil
			}
			return Token{}, t.fail(UnexpectedComma, ch)
		case ']':
			return Token{}, t.fail(WrongBracket, ch)
		}
		if t.cfg.IdentifierKeys && (ch == '\\' || isIdentStart(ch)) {
			t.where = atKeyEnd
			return t.ident(inIdent{first: true}, ch)
		}
		return Token{}, t.unexpected(ch)

	case atKeyEnd:
		if ch == ':' {
			tok := t.tok(Colon, None)
			t.where = atValueStart
			return tok, nil
		} else if ch == EOF {
			return Token{}, t.unexpected(ch)
		}
		return Token{}, t.fail(MissingColon, ch)

	case atValueStart:
		switch ch {
		case ':':
			return Token{}, t.fail(RepeatedColon, ch)
		case ',', '}':
			return Token{}, t.fail(EmptyValue, ch)
		}
		return t.beginValue(ch, atValueEnd)

	case atValueEnd:
		switch ch {
		case ',':
			tok := t.tok(Comma, None)
			t.where = atKey
			return tok, nil
		case '}':
			return t.close(Object, ObjectEnd), nil
		case ']':
			return Token{}, t.fail(WrongBracket, ch)
		}
		return Token{}, t.unexpected(ch)

	case atElementFirst, atElement:
		switch ch {
		case ']':
			if t.where == atElement && !t.cfg.TrailingCommaArray {
				return Token{}, t.fail(TrailingComma, ch)
			}
			return t.close(Array, ArrayEnd), nil
		case ',':
			if t.where == atElementFirst && t.cfg.TrailingCommaArray {
				tok := t.tok(Comma, None)
				t.where = atEmptyArray
				return tok, nil
			}
			return Token{}, t.fail(UnexpectedComma, ch)
		case '}':
			return Token{}, t.fail(WrongBracket, ch)
		}
		return t.beginValue(ch, atElementEnd)

	case atElementEnd:
		switch ch {
		case ',':
			tok := t.tok(Comma, None)
			t.where = atElement
			return tok, nil
		case ']':
			return t.close(Array, ArrayEnd), nil
		case '}':
			return Token{}, t.fail(WrongBracket, ch)
		}
		return Token{}, t.unexpected(ch)

	case atEmptyObject, atEmptyArray:
		want, other := '}', ']'
		typ, sub := Object, ObjectEnd
		if t.where == atEmptyArray {
			want, other = ']', '}'
			typ, sub = Array, ArrayEnd
		}
		switch ch {
		case want:
			return t.close(typ, sub), nil
		case other:
			return Token{}, t.fail(WrongBracket, ch)
		case ',':
			return Token{}, t.fail(UnexpectedComma, ch)
		}
		return Token{}, t.unexpected(ch)
	}
	return Token{}, t.fail(AfterEnd, ch)
}

// close ends the innermost object or array, restoring the location that was
// saved when it began.
func (t *Tokenizer) close(typ Type, sub Sub) Token {
	n := len(t.stack)
	t.where = t.stack[n-1]
	t.stack = t.stack[:n-1]
	return t.tok(typ, sub)
}

// beginValue handles the first character of a value. The location becomes
// next once the value is complete.
func (t *Tokenizer) beginValue(ch rune, next where) (Token, error) {
	loc := t.where.loc()
	literal := func(typ Type, sub Sub, text string) (Token, error) {
		t.where = next
		t.vs = inLiteral{typ: typ, sub: sub, text: text, index: 1}
		return Token{Loc: loc, Type: typ, Sub: sub}, nil
	}
	number := func(vs inNumber, sub Sub) (Token, error) {
		t.where = next
		t.vs = vs
		return Token{Loc: loc, Type: Number, Sub: sub}, nil
	}

	switch {
	case ch == '{':
		t.stack = append(t.stack, next)
		t.where = atKeyFirst
		return Token{Loc: loc, Type: Object, Sub: ObjectStart}, nil
	case ch == '[':
		t.stack = append(t.stack, next)
		t.where = atElementFirst
		return Token{Loc: loc, Type: Array, Sub: ArrayStart}, nil
	case ch == '"' || ch == '\'':
		return t.beginString(ch, next)
	case ch == 'n':
		return literal(Null, None, "null")
	case ch == 't':
		return literal(True, None, "true")
	case ch == 'f':
		return literal(False, None, "false")
	case ch == 'N' && t.cfg.NaN:
		return literal(Number, NumberNaN, "NaN")
	case ch == 'I' && t.cfg.Infinity:
		return literal(Number, NumberInfinity, "Infinity")
	case ch == '-' || (ch == '+' && t.cfg.LeadingPlus):
		return number(inNumber{phase: numSign}, NumberSign)
	case ch == '0':
		return number(inNumber{phase: numZero}, NumberIntegerDigit)
	case isDigit(ch):
		return number(inNumber{phase: numInt}, NumberIntegerDigit)
	case ch == '.' && t.cfg.EmptyInteger:
		return number(inNumber{phase: numFracStart, intEmpty: true}, NumberFractionStart)
	}
	return Token{}, t.unexpected(ch)
}

func (t *Tokenizer) beginString(ch rune, next where) (Token, error) {
	if ch == '\'' && !t.cfg.SingleQuote {
		return Token{}, t.fail(SingleQuote, ch)
	}
	tok := t.tok(String, StringStart)
	t.where = next
	t.vs = inString{single: ch == '\''}
	return tok, nil
}

func (t *Tokenizer) literal(vs inLiteral, ch rune) (Token, error) {
	if ch != rune(vs.text[vs.index]) {
		return Token{}, t.unexpected(ch)
	}
	tok := Token{Loc: t.where.loc(), Type: vs.typ, Sub: vs.sub, Index: vs.index}
	vs.index++
	if vs.index == len(vs.text) {
		tok.Done = true
		t.vs = nil
	} else {
		t.vs = vs
	}
	return tok, nil
}

// shortEscape reports the character denoted by a single-character escape.
func (t *Tokenizer) shortEscape(ch rune) (rune, bool) {
	switch ch {
	case '"', '\\', '/':
		return ch, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	if t.cfg.JSON5Escapes {
		switch ch {
		case 'v':
			return '\v', true
		case '0':
			return 0, true
		case '\'':
			return '\'', true
		}
	}
	return 0, false
}

func (t *Tokenizer) str(vs inString, ch rune) (Token, error) {
	tok := t.tok(String, StringNormal)
	switch vs.phase {
	case strNormal:
		switch {
		case ch == EOF:
			return Token{}, t.fail(UnterminatedString, ch)
		case (ch == '"' && !vs.single) || (ch == '\'' && vs.single):
			tok.Sub = StringEnd
			t.vs = nil
			return tok, nil
		case ch == '\\':
			tok.Sub = StringEscapeStart
			vs.phase = strEscape
		case isControl(ch):
			return Token{}, t.fail(ControlChar, ch)
		}

	case strEscape:
		if r, ok := t.shortEscape(ch); ok {
			tok.Sub = StringEscape
			tok.Escaped = r
			vs.phase = strNormal
			break
		}
		switch {
		case ch == 'u':
			tok.Sub = StringEscapeUnicode
			vs.phase = strUnicode
		case ch == 'x' && t.cfg.JSON5Escapes:
			tok.Sub = StringEscapeHex
			vs.phase = strHex
		case isLineTerminator(ch) && t.cfg.MultilineStrings:
			tok.Sub = StringContinuation
			vs.phase = strNormal
			if ch == '\r' {
				vs.phase = strCR
			}
		case ch == EOF:
			return Token{}, t.fail(UnterminatedString, ch)
		default:
			return Token{}, t.fail(BadEscape, ch)
		}

	case strUnicode, strHex:
		width, reason, sub := 4, BadUnicodeEscape, StringEscapeUnicodeHex
		if vs.phase == strHex {
			width, reason, sub = 2, BadHexEscape, StringEscapeHexDigit
		}
		if ch == EOF {
			return Token{}, t.fail(UnterminatedString, ch)
		} else if !isHexDigit(ch) {
			return Token{}, t.fail(reason, ch)
		}
		tok.Sub = sub
		tok.Index = vs.digits
		vs.acc = vs.acc<<4 | hexValue(ch)
		vs.digits++
		if vs.digits == width {
			tok.Done = true
			tok.Escaped = vs.acc
			vs = inString{single: vs.single}
		}

	case strCR:
		vs.phase = strNormal
		if ch != '\n' {
			return t.str(vs, ch)
		}
		tok.Sub = StringContinuation
		tok.Index = 1
	}
	t.vs = vs
	return tok, nil
}

func (t *Tokenizer) number(vs inNumber, ch rune) (Token, error) {
	tok := t.tok(Number, None)
	next := func(phase numPhase, sub Sub) (Token, error) {
		vs.phase = phase
		t.vs = vs
		tok.Sub = sub
		return tok, nil
	}
	// end completes the number and handles ch as the character following it.
	end := func(reason Reason) (Token, error) {
		if !isNumberEnd(ch, t.cfg.JSON5Whitespace) {
			return Token{}, t.fail(reason, ch)
		}
		t.vs = nil
		return t.structure(ch)
	}

	switch vs.phase {
	case numSign:
		switch {
		case ch == '0':
			return next(numZero, NumberIntegerDigit)
		case isDigit(ch):
			return next(numInt, NumberIntegerDigit)
		case ch == '.' && t.cfg.EmptyInteger:
			vs.intEmpty = true
			return next(numFracStart, NumberFractionStart)
		case ch == 'I' && t.cfg.Infinity:
			t.vs = inLiteral{typ: Number, sub: NumberInfinity, text: "Infinity", index: 1}
			tok.Sub = NumberInfinity
			return tok, nil
		}
		return Token{}, t.fail(EmptyInteger, ch)

	case numZero, numInt:
		switch {
		case isDigit(ch):
			if vs.phase == numZero {
				return Token{}, t.fail(LeadingZero, ch)
			}
			return next(numInt, NumberIntegerDigit)
		case ch == '.':
			return next(numFracStart, NumberFractionStart)
		case ch == 'e' || ch == 'E':
			return next(numExpStart, NumberExponentStart)
		}
		if vs.phase == numZero {
			if base, ok := t.cfg.radixAllowed(ch); ok {
				vs.base = base
				return next(numRadixStart, NumberRadixPrefix)
			}
		}
		return end(UnexpectedInNumber)

	case numFracStart:
		if isDigit(ch) {
			return next(numFrac, NumberFractionDigit)
		} else if vs.intEmpty {
			return Token{}, t.fail(LoneDecimalPoint, ch)
		} else if !t.cfg.EmptyFraction {
			return Token{}, t.fail(EmptyFraction, ch)
		} else if ch == 'e' || ch == 'E' {
			return next(numExpStart, NumberExponentStart)
		}
		return end(UnexpectedInNumber)

	case numFrac:
		if isDigit(ch) {
			return next(numFrac, NumberFractionDigit)
		} else if ch == 'e' || ch == 'E' {
			return next(numExpStart, NumberExponentStart)
		}
		return end(UnexpectedInNumber)

	case numExpStart:
		if ch == '+' || ch == '-' {
			return next(numExpSign, NumberExponentSign)
		} else if isDigit(ch) {
			return next(numExp, NumberExponentDigit)
		}
		return Token{}, t.fail(EmptyExponent, ch)

	case numExpSign:
		if isDigit(ch) {
			return next(numExp, NumberExponentDigit)
		}
		return Token{}, t.fail(EmptyExponent, ch)

	case numExp:
		if isDigit(ch) {
			return next(numExp, NumberExponentDigit)
		}
		return end(UnexpectedInNumber)

	case numRadixStart:
		if isRadixDigit(ch, vs.base) {
			return next(numRadix, NumberRadixDigit)
		}
		return Token{}, t.fail(EmptyInteger, ch)

	case numRadix:
		switch {
		case isRadixDigit(ch, vs.base):
			return next(numRadix, NumberRadixDigit)
		case ch == '.':
			return Token{}, t.fail(RadixFraction, ch)
		case ch == 'e' || ch == 'E':
			return Token{}, t.fail(RadixExponent, ch)
		}
		return end(UnexpectedInNumber)
	}
	panic("unreachable")
}

func (t *Tokenizer) comment(vs inComment, ch rune) (Token, error) {
	tok := t.tok(Comment, None)
	switch vs.phase {
	case cmMayStart:
		switch {
		case ch == '/' && t.cfg.LineComments:
			tok.Sub = LineCommentStart
			vs.phase = cmLine
		case ch == '*' && t.cfg.BlockComments:
			tok.Sub = BlockCommentStart
			vs.phase = cmBlock
		case ch == '/' || ch == '*':
			return Token{}, t.fail(CommentForbidden, ch)
		default:
			return Token{}, t.unexpected(ch)
		}

	case cmLine:
		if ch == EOF || ch == '\n' || ch == '\r' || (t.cfg.JSON5Whitespace && isLineTerminator(ch)) {
			t.vs = nil
			return t.structure(ch)
		}
		tok.Sub = LineComment

	case cmBlock, cmBlockStar:
		switch {
		case ch == EOF:
			return Token{}, t.fail(UnterminatedComment, ch)
		case ch == '*':
			tok.Sub = BlockCommentStar
			vs.phase = cmBlockStar
		case ch == '/' && vs.phase == cmBlockStar:
			tok.Sub = BlockCommentEnd
			t.vs = nil
			return tok, nil
		default:
			tok.Sub = BlockComment
			vs.phase = cmBlock
		}
	}
	t.vs = vs
	return tok, nil
}

func (t *Tokenizer) ident(vs inIdent, ch rune) (Token, error) {
	tok := Token{Loc: Key, Type: Identifier}
	switch vs.phase {
	case idNormal:
		switch {
		case ch == '\\':
			tok.Sub = IdentifierEscapeStart
			vs.phase = idEscapeStart
		case vs.first && isIdentStart(ch), !vs.first && isIdentContinue(ch):
			tok.Sub = IdentifierNormal
			vs.first = false
		case vs.first:
			return Token{}, t.fail(BadIdentifierChar, ch)
		default:
			// The identifier is complete; ch follows the key.
			t.vs = nil
			return t.structure(ch)
		}

	case idEscapeStart:
		if ch == EOF {
			return Token{}, t.unexpected(ch)
		} else if ch != 'u' {
			return Token{}, t.fail(BadIdentifierEscapeStart, ch)
		}
		tok.Sub = IdentifierEscapeU
		vs.phase = idEscapeHex

	case idEscapeHex:
		if ch == EOF {
			return Token{}, t.unexpected(ch)
		} else if !isHexDigit(ch) {
			return Token{}, t.fail(BadIdentifierEscapeDigit, ch)
		}
		tok.Sub = IdentifierEscapeHex
		tok.Index = vs.digits
		vs.acc = vs.acc<<4 | hexValue(ch)
		vs.digits++
		if vs.digits == 4 {
			if (vs.first && !isIdentStart(vs.acc)) || (!vs.first && !isIdentContinue(vs.acc)) {
				return Token{}, t.fail(BadIdentifierChar, ch)
			}
			tok.Done = true
			tok.Escaped = vs.acc
			vs = inIdent{}
		}
	}
	t.vs = vs
	return tok, nil
}
