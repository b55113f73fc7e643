// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"go4.org/mem"
)

// ParseNumber decodes the complete source text of a number. The text may
// carry a leading sign, and may be a hexadecimal (0x), octal (0o), or binary
// (0b) integer, NaN, Infinity, or a decimal number with an empty integer or
// fraction part.
func ParseNumber(text string) (Number, error) {
	return parseNumber(mem.S(text))
}

func parseNumber(m mem.RO) (Number, error) {
	if m.Len() == 0 {
		return Number{}, errors.New("empty number")
	}
	n := Number{text: m.StringCopy()}
	digits, neg := m, false
	if c := m.At(0); c == '+' || c == '-' {
		digits, neg = m.SliceFrom(1), c == '-'
	}

	if base := radixOf(digits); base != 0 {
		body := digits.SliceFrom(2)
		if z, err := mem.ParseInt(body, base, 64); err == nil {
			if neg {
				z = -z
			}
			n.value, n.z, n.isInt = float64(z), z, true
			return n, nil
		}

		// Too large for an int64; the float64 value is rounded.
		var b big.Int
		if _, ok := b.SetString(body.StringCopy(), base); !ok {
			return Number{}, fmt.Errorf("invalid base-%d integer %q", base, n.text)
		}
		if neg {
			b.Neg(&b)
		}
		n.value, _ = new(big.Float).SetInt(&b).Float64()
		return n, nil
	}

	f, err := mem.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Number{}, fmt.Errorf("invalid number %q: %w", n.text, err)
	}
	n.value = f
	if isDecimalInteger(digits) {
		if z, err := mem.ParseInt(m, 10, 64); err == nil {
			n.z, n.isInt = z, true
		}
	}
	return n, nil
}

// radixOf reports the base selected by a 0x, 0o, or 0b prefix of m, or 0.
func radixOf(m mem.RO) int {
	if m.Len() < 2 || m.At(0) != '0' {
		return 0
	}
	switch m.At(1) {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

func isDecimalInteger(m mem.RO) bool {
	if m.Len() == 0 {
		return false
	}
	for i := 0; i < m.Len(); i++ {
		if c := m.At(i); c < '0' || c > '9' {
			return false
		}
	}
	return true
}
