// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import "testing"

func TestClassifiers(t *testing.T) {
	type pred struct {
		name string
		f    func(rune) bool
	}
	preds := []pred{
		{"space", func(r rune) bool { return isSpace(r, false) }},
		{"space5", func(r rune) bool { return isSpace(r, true) }},
		{"control", isControl},
		{"hex", isHexDigit},
		{"octal", func(r rune) bool { return isRadixDigit(r, 8) }},
		{"binary", func(r rune) bool { return isRadixDigit(r, 2) }},
		{"lineterm", isLineTerminator},
		{"identStart", isIdentStart},
		{"identContinue", isIdentContinue},
		{"numberEnd", func(r rune) bool { return isNumberEnd(r, false) }},
	}
	tests := []struct {
		ch   rune
		want []string // predicates that hold for ch
	}{
		{' ', []string{"space", "space5", "numberEnd"}},
		{'\t', []string{"space", "space5", "control", "numberEnd"}},
		{'\n', []string{"space", "space5", "control", "lineterm", "numberEnd"}},
		{'\r', []string{"space", "space5", "control", "lineterm", "numberEnd"}},
		{'\v', []string{"space5", "control"}},
		{'\u00a0', []string{"space5"}},
		{'\ufeff', []string{"space5"}},
		{'\u2028', []string{"space5", "lineterm"}},
		{'\u3000', []string{"space5"}},
		{'0', []string{"hex", "octal", "binary", "identContinue"}},
		{'7', []string{"hex", "octal", "identContinue"}},
		{'9', []string{"hex", "identContinue"}},
		{'f', []string{"hex", "identStart", "identContinue"}},
		{'G', []string{"identStart", "identContinue"}},
		{'$', []string{"identStart", "identContinue"}},
		{'_', []string{"identStart", "identContinue"}},
		{'\u00e9', []string{"identStart", "identContinue"}},
		{'\u0301', []string{"identContinue"}}, // combining acute accent
		{'\u200d', []string{"identContinue"}}, // zero width joiner
		{',', []string{"numberEnd"}},
		{']', []string{"numberEnd"}},
		{'}', []string{"numberEnd"}},
		{'/', []string{"numberEnd"}},
		{EOF, []string{"numberEnd"}},
		{'-', nil},
	}
	for _, tc := range tests {
		want := make(map[string]bool)
		for _, name := range tc.want {
			want[name] = true
		}
		for _, p := range preds {
			if got := p.f(tc.ch); got != want[p.name] {
				t.Errorf("%s(%q): got %v, want %v", p.name, tc.ch, got, want[p.name])
			}
		}
	}
}

func TestHexValue(t *testing.T) {
	for i, ch := range "0123456789abcdef" {
		if got := hexValue(ch); got != rune(i) {
			t.Errorf("hexValue(%q): got %d, want %d", ch, got, i)
		}
	}
	for i, ch := range "ABCDEF" {
		if got := hexValue(ch); got != rune(10+i) {
			t.Errorf("hexValue(%q): got %d, want %d", ch, got, 10+i)
		}
	}
}
