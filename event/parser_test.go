// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package event_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/ast"
	"github.com/creachadair/jstream/event"
	"github.com/google/go-cmp/cmp"
)

func saveTo(v *ast.Value) event.Hooks {
	return event.Hooks{Save: func(got ast.Value) error { *v = got; return nil }}
}

func TestSaveRoot(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{`null`, nil},
		{`true`, true},
		{`-12.5e1`, -125.0},
		{`"a\tb"`, "a\tb"},
		{`[]`, []any{}},
		{`{}`, map[string]any{}},
		{`{"a": [1, "x", null, false], "b": {"c": {}}}`, map[string]any{
			"a": []any{1.0, "x", nil, false},
			"b": map[string]any{"c": map[string]any{}},
		}},
		{`{unquoted: 'single', trailing: [1,],}`, map[string]any{
			"unquoted": "single", "trailing": []any{1.0},
		}},
		{`[0x1F, +1, .5, 5., Infinity] // done`, []any{31.0, 1.0, 0.5, 5.0, math.Inf(1)}},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			var got ast.Value
			p := event.NewParser(jstream.JSON5, &event.Any{Hooks: saveTo(&got)})
			if err := p.Feed(tc.input); err != nil {
				t.Fatalf("Feed: unexpected error: %v", err)
			}
			if err := p.End(); err != nil {
				t.Fatalf("End: unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, ast.ToAny(got)); diff != "" {
				t.Errorf("Saved value (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.want, ast.ToAny(p.Value())); diff != "" {
				t.Errorf("Parser value (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestSubscribe(t *testing.T) {
	const input = `[
  {"name": "alice", "age": 31, "tags": ["x"]},
  {"age": 29, "name": "bob"},
  {"nick": "carol"}
]`
	var names []string
	var ages []float64
	var indexes []int
	root := &event.Array{
		Subscribe: []func(int) event.Receiver{
			func(i int) event.Receiver {
				indexes = append(indexes, i)
				return &event.Object{
					Subscribe: []func(string) event.Receiver{
						func(key string) event.Receiver {
							if key != "name" {
								return nil
							}
							return &event.String{Hooks: event.Hooks{
								Save: func(v ast.Value) error {
									names = append(names, v.(ast.String).Value())
									return nil
								},
							}}
						},
						func(key string) event.Receiver {
							if key != "age" {
								return nil
							}
							return &event.Number{Hooks: event.Hooks{
								Save: func(v ast.Value) error {
									ages = append(ages, v.(ast.Number).Float64())
									return nil
								},
							}}
						},
					},
				}
			},
		},
	}
	if err := event.Parse(input, jstream.Config{}, root); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"alice", "bob"}, names); diff != "" {
		t.Errorf("Names (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{31, 29}, ages); diff != "" {
		t.Errorf("Ages (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, indexes); diff != "" {
		t.Errorf("Indexes (-want, +got):\n%s", diff)
	}
}

func TestSubscribeOrder(t *testing.T) {
	var log []string
	sub := func(tag string, match bool) func(int) event.Receiver {
		return func(int) event.Receiver {
			log = append(log, tag)
			if !match {
				return nil
			}
			return &event.Any{}
		}
	}
	root := &event.Array{Subscribe: []func(int) event.Receiver{
		sub("a", false), sub("b", true), sub("c", true),
	}}
	if err := event.Parse(`[1]`, jstream.Config{}, root); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, log); diff != "" {
		t.Errorf("Subscribers consulted (-want, +got):\n%s", diff)
	}
}

func TestAnySpecialization(t *testing.T) {
	var log []string
	logger := func(tag string) func(jstream.Token) error {
		return func(jstream.Token) error { log = append(log, tag); return nil }
	}
	root := &event.Array{
		Subscribe: []func(int) event.Receiver{
			func(int) event.Receiver {
				return &event.Any{
					Hooks: event.Hooks{
						Start: logger("any.start"),
						End:   logger("any.end"),
					},
					String: &event.String{Hooks: event.Hooks{
						Start: logger("string.start"),
					}},
				}
			},
		},
	}
	if err := event.Parse(`["s", null]`, jstream.Config{}, root); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	want := []string{
		"string.start", "any.end", // specific start, generic end
		"any.start", "any.end", // no specific receiver for null
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("Hooks called (-want, +got):\n%s", diff)
	}
}

func TestMismatch(t *testing.T) {
	tests := []struct {
		input string
		root  event.Receiver
		want  event.MismatchError
	}{
		{`[1]`, &event.Object{}, event.MismatchError{Want: event.KindObject, Got: event.KindArray}},
		{`"s"`, &event.Number{}, event.MismatchError{Want: event.KindNumber, Got: event.KindString}},
		{`{"a": true}`, &event.Object{Subscribe: []func(string) event.Receiver{
			func(string) event.Receiver { return &event.Null{} },
		}}, event.MismatchError{Want: event.KindNull, Got: event.KindBool}},
		{`[[], {}]`, &event.Array{Subscribe: []func(int) event.Receiver{
			func(i int) event.Receiver {
				if i == 1 {
					return &event.Array{}
				}
				return nil
			},
		}}, event.MismatchError{Want: event.KindArray, Got: event.KindObject}},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			p := event.NewParser(jstream.Config{}, tc.root)
			err := p.Feed(tc.input)
			if !errors.Is(err, event.ErrMismatch) {
				t.Fatalf("Feed: got error %v, want %v", err, event.ErrMismatch)
			}
			var me *event.MismatchError
			if !errors.As(err, &me) {
				t.Fatalf("Feed: error %T is not a MismatchError", err)
			}
			if diff := cmp.Diff(tc.want, *me); diff != "" {
				t.Errorf("Mismatch (-want, +got):\n%s", diff)
			}

			// Errors are sticky.
			if err2 := p.End(); err2 != err {
				t.Errorf("End: got %v, want %v", err2, err)
			}
		})
	}
}

func TestIdentifierKey(t *testing.T) {
	var subs []jstream.Sub
	var pieces []string
	var saved ast.Value
	root := &event.Object{
		Key: &event.String{
			Hooks: event.Hooks{
				Feed: func(tok jstream.Token) error { subs = append(subs, tok.Sub); return nil },
			},
			Append: func(s string) error { pieces = append(pieces, s); return nil },
		},
		Hooks: saveTo(&saved),
	}
	if err := event.Parse(`{a\u0062c: 1}`, jstream.JSON5, root); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	want := []jstream.Sub{
		jstream.StringStart,
		jstream.StringNormal,
		jstream.StringEscapeStart,
		jstream.StringEscapeUnicode,
		jstream.StringEscapeUnicodeHex,
		jstream.StringEscapeUnicodeHex,
		jstream.StringEscapeUnicodeHex,
		jstream.StringEscapeUnicodeHex,
		jstream.StringNormal,
		jstream.StringEnd,
	}
	if diff := cmp.Diff(want, subs); diff != "" {
		t.Errorf("Key tokens (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, pieces); diff != "" {
		t.Errorf("Key content (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"abc": 1.0}, ast.ToAny(saved)); diff != "" {
		t.Errorf("Saved value (-want, +got):\n%s", diff)
	}
}

func TestStringAppend(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`""`, nil},
		{`"abc"`, []string{"a", "b", "c"}},
		{`"é\n"`, []string{"é", "\n"}},
		{`"😀!"`, []string{"\U0001f600", "!"}},
		{`"\ud83dx"`, []string{"\ufffdx"}},
		{`"\ud83d"`, []string{"\ufffd"}},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			var got []string
			root := &event.String{Append: func(s string) error { got = append(got, s); return nil }}
			if err := event.Parse(tc.input, jstream.Config{}, root); err != nil {
				t.Fatalf("Parse: unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Pieces (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestNumberEnd(t *testing.T) {
	var ends []jstream.Type
	root := &event.Array{Subscribe: []func(int) event.Receiver{
		func(int) event.Receiver {
			return &event.Number{Hooks: event.Hooks{
				End: func(tok jstream.Token) error { ends = append(ends, tok.Type); return nil },
			}}
		},
	}}
	if err := event.Parse(`[1,2 ,3]`, jstream.Config{}, root); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	want := []jstream.Type{jstream.Comma, jstream.Whitespace, jstream.Array}
	if diff := cmp.Diff(want, ends); diff != "" {
		t.Errorf("End tokens (-want, +got):\n%s", diff)
	}
}

func TestHookError(t *testing.T) {
	errStop := errors.New("stop")
	root := &event.Array{Subscribe: []func(int) event.Receiver{
		func(i int) event.Receiver {
			return &event.Any{Hooks: event.Hooks{
				Start: func(jstream.Token) error {
					if i == 2 {
						return errStop
					}
					return nil
				},
			}}
		},
	}}
	p := event.NewParser(jstream.Config{}, root)
	if err := p.Feed(`[0, 1, 2, 3]`); !errors.Is(err, errStop) {
		t.Fatalf("Feed: got %v, want %v", err, errStop)
	}
	if got, want := p.Pos(), 8; got != want {
		t.Errorf("Pos: got %d, want %d", got, want)
	}
}

func TestSyntaxError(t *testing.T) {
	err := event.Parse(`[1, 2`, jstream.Config{}, nil)
	if !errors.Is(err, jstream.UnexpectedEOF) {
		t.Errorf("Parse: got %v, want %v", err, jstream.UnexpectedEOF)
	}
}

func TestFeedReader(t *testing.T) {
	var got ast.Value
	p := event.NewParser(jstream.Comments, &event.Any{Hooks: saveTo(&got)})
	if err := p.FeedReader(strings.NewReader("/* c */ [\n  1, // one\n  2\n]\n")); err != nil {
		t.Fatalf("FeedReader: unexpected error: %v", err)
	}
	if err := p.End(); err != nil {
		t.Fatalf("End: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]any{1.0, 2.0}, ast.ToAny(got)); diff != "" {
		t.Errorf("Value (-want, +got):\n%s", diff)
	}
	if got, want := p.Line(), 5; got != want {
		t.Errorf("Line: got %d, want %d", got, want)
	}
}
