// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"math"
	"testing"

	"github.com/creachadair/jstream/ast"
	"github.com/google/go-cmp/cmp"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		text  string
		want  float64
		z     int64
		isInt bool
	}{
		{"0", 0, 0, true},
		{"12", 12, 12, true},
		{"-7", -7, -7, true},
		{"+7", 7, 7, true},
		{"1.5", 1.5, 0, false},
		{"1e3", 1000, 1000, true},
		{".5", 0.5, 0, false},
		{"5.", 5, 5, true},
		{"0x1F", 31, 31, true},
		{"-0X10", -16, -16, true},
		{"0o17", 15, 15, true},
		{"0b101", 5, 5, true},
		{"9007199254740993", 9007199254740992, 9007199254740993, true},
		{"0x10000000000000000", 1 << 64, 0, false},
		{"Infinity", math.Inf(1), 0, false},
		{"-Infinity", math.Inf(-1), 0, false},
		{"1e400", math.Inf(1), 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			n, err := ast.ParseNumber(tc.text)
			if err != nil {
				t.Fatalf("ParseNumber: unexpected error: %v", err)
			}
			if got := n.Float64(); got != tc.want {
				t.Errorf("Float64: got %v, want %v", got, tc.want)
			}
			z, ok := n.Int64()
			if ok != tc.isInt || (ok && z != tc.z) {
				t.Errorf("Int64: got %v, %v; want %v, %v", z, ok, tc.z, tc.isInt)
			}
			if got := n.Text(); got != tc.text {
				t.Errorf("Text: got %q, want %q", got, tc.text)
			}
		})
	}

	t.Run("NaN", func(t *testing.T) {
		n, err := ast.ParseNumber("NaN")
		if err != nil {
			t.Fatalf("ParseNumber: unexpected error: %v", err)
		}
		if !math.IsNaN(n.Float64()) {
			t.Errorf("Float64: got %v, want NaN", n.Float64())
		}
	})

	for _, bad := range []string{"", "abc", "0xZZ", "1.2.3"} {
		if n, err := ast.ParseNumber(bad); err == nil {
			t.Errorf("ParseNumber(%q): got %v, want error", bad, n.Float64())
		}
	}
}

func TestConstructors(t *testing.T) {
	obj := &ast.Object{Members: []*ast.Member{
		ast.Field("n", ast.NewInt(3)),
		ast.Field("f", ast.NewFloat(0.5)),
		ast.Field("s", ast.NewString("hi")),
		ast.Field("b", ast.NewBool(true)),
		ast.Field("z", ast.Null{}),
		ast.Field("a", &ast.Array{Values: []ast.Value{ast.NewInt(-1)}}),
	}}
	want := map[string]any{
		"n": 3.0, "f": 0.5, "s": "hi", "b": true, "z": nil, "a": []any{-1.0},
	}
	if diff := cmp.Diff(want, ast.ToAny(obj)); diff != "" {
		t.Errorf("ToAny (-want, +got):\n%s", diff)
	}
	if z, ok := ast.NewInt(3).Int64(); !ok || z != 3 {
		t.Errorf("NewInt(3).Int64(): got %v, %v", z, ok)
	}
	if m := obj.Find("nonesuch"); m != nil {
		t.Errorf("Find(nonesuch): got %v, want nil", m)
	}
	if sp := obj.Span(); sp.Pos != 0 || sp.End != 0 {
		t.Errorf("Span of constructed value: got %v, want empty", sp)
	}
}
