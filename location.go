// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import "fmt"

// A Span describes a contiguous span of a source input, measured in
// characters.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// A LineCol describes the line number and column of a location in source
// text. Both are 1-based and count characters.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // character offset of column in line, 1-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// position tracks the offset, line, and column of the next input character.
// The sequences CR, LF, CR LF, U+2028 and U+2029 each count as exactly one
// line break.
type position struct {
	pos, line, col int
	afterCR        bool
}

func newPosition() position { return position{line: 1, col: 1} }

// advance updates p to account for consuming ch.
func (p *position) advance(ch rune) {
	if ch == EOF {
		return
	}
	p.pos++
	switch {
	case ch == '\n' && p.afterCR:
		// The LF of a CR LF pair; the line break was counted at the CR.
	case isLineTerminator(ch):
		p.line++
		p.col = 1
	default:
		p.col++
	}
	p.afterCR = ch == '\r'
}

func (p position) lineCol() LineCol { return LineCol{Line: p.line, Column: p.col} }
