// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package event

import (
	"strings"
	"testing"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/ast"
	"github.com/google/go-cmp/cmp"
)

// feedAll runs the tokens of input through an emitter for root.
func feedAll(t *testing.T, cfg jstream.Config, input string, root Receiver) *Emitter {
	t.Helper()
	em := NewEmitter(root)
	tok := jstream.NewTokenizer(cfg)
	if err := tok.FeedString(input, em.Feed); err != nil {
		t.Fatalf("Feed %q: unexpected error: %v", input, err)
	}
	end, err := tok.End()
	if err != nil {
		t.Fatalf("End: unexpected error: %v", err)
	}
	if err := em.Feed(end); err != nil {
		t.Fatalf("Feed end: unexpected error: %v", err)
	}
	if !em.Done() {
		t.Error("Emitter is not done after end of input")
	}
	return em
}

func TestNothingRetained(t *testing.T) {
	big := `{"a": [1, 2, 3, "` + strings.Repeat("x", 500) + `"], "b": {"c": [true, null, -3.5e9]}}`

	var starts int
	root := &Any{Hooks: Hooks{
		Start: func(jstream.Token) error { starts++; return nil },
	}}
	em := feedAll(t, jstream.JSON5, big, root)

	if em.retained != 0 {
		t.Errorf("Retained %d items, want 0", em.retained)
	}
	if v := em.Value(); v != nil {
		t.Errorf("Value: got %v, want nil", v)
	}
	if starts != 1 {
		t.Errorf("Root started %d times, want 1", starts)
	}
}

// countingAny returns a receiver that records every token fed to it, or to
// any receiver of a value nested inside it, including object keys.
func countingAny(buf *strings.Builder) *Any {
	hooks := Hooks{Feed: func(tok jstream.Token) error {
		buf.WriteRune(tok.Char)
		return nil
	}}
	return &Any{
		Hooks: hooks,
		Object: &Object{
			Key: &String{Hooks: hooks},
			Subscribe: []func(string) Receiver{
				func(string) Receiver { return countingAny(buf) },
			},
		},
		Array: &Array{
			Subscribe: []func(int) Receiver{
				func(int) Receiver { return countingAny(buf) },
			},
		},
	}
}

func TestFeedCoversEveryToken(t *testing.T) {
	tests := []struct {
		name  string
		cfg   jstream.Config
		input string
	}{
		{"Scalar", jstream.Config{}, `-12.5e3`},
		{"String", jstream.Config{}, `"a\u0062\n"`},
		{"Mixed", jstream.Config{}, `[1, "ab", [true, null], {"k": 2.5}]`},
		{"Nested", jstream.Config{}, `{"a": {"b": [[], {}, [0]]}, "c": "x"}`},
		{"Comments", jstream.JSON5, `[1 /* one */, 'ab', // end
 {"k": 0x2F,},]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got strings.Builder
			em := feedAll(t, tc.cfg, " \n"+tc.input+"\t ", countingAny(&got))

			// Whitespace outside the root value is not fed to any receiver.
			if diff := cmp.Diff(tc.input, got.String()); diff != "" {
				t.Errorf("Fed characters (-want, +got):\n%s", diff)
			}
			if em.retained != 0 {
				t.Errorf("Retained %d items, want 0", em.retained)
			}
			if v := em.Value(); v != nil {
				t.Errorf("Value: got %v, want nil", v)
			}
		})
	}
}

func TestSelectiveRetention(t *testing.T) {
	const input = `[{"skip": "` + "aaaaaaaaaaaaaaaa" + `"}, 25, ["also", "skipped"]]`

	var saved []ast.Value
	root := &Array{
		Subscribe: []func(int) Receiver{
			func(i int) Receiver {
				if i != 1 {
					return nil
				}
				return &Number{Hooks: Hooks{
					Save: func(v ast.Value) error { saved = append(saved, v); return nil },
				}}
			},
		},
	}
	em := feedAll(t, jstream.Config{}, input, root)

	// Only the two digits of the selected number are retained.
	if em.retained != 2 {
		t.Errorf("Retained %d items, want 2", em.retained)
	}
	if len(saved) != 1 {
		t.Fatalf("Saved %d values, want 1", len(saved))
	}
	if got, ok := saved[0].(ast.Number).Int64(); !ok || got != 25 {
		t.Errorf("Saved value: got %v, %v; want 25", got, ok)
	}
}

func TestRetainedOnSave(t *testing.T) {
	const input = `["ab", [1, 2]]`

	root := &Any{Hooks: Hooks{Save: func(ast.Value) error { return nil }}}
	em := feedAll(t, jstream.Config{}, input, root)

	// "ab" (2) + "1" (1) + "2" (1) + elements of the inner array (2) + elements
	// of the outer array (2).
	if em.retained != 8 {
		t.Errorf("Retained %d items, want 8", em.retained)
	}
	if diff := cmp.Diff([]any{"ab", []any{1.0, 2.0}}, ast.ToAny(em.Value())); diff != "" {
		t.Errorf("Saved value (-want, +got):\n%s", diff)
	}
}

func TestRootFeed(t *testing.T) {
	var subs []jstream.Sub
	var types []jstream.Type
	root := &Any{Hooks: Hooks{
		Feed: func(tok jstream.Token) error {
			types = append(types, tok.Type)
			subs = append(subs, tok.Sub)
			return nil
		},
	}}
	feedAll(t, jstream.Config{}, ` [1, 2] `, root)

	// Tokens of the elements, and whitespace outside the root, are not fed to
	// the root receiver.
	wantTypes := []jstream.Type{jstream.Array, jstream.Comma, jstream.Whitespace, jstream.Array}
	if diff := cmp.Diff(wantTypes, types); diff != "" {
		t.Errorf("Fed types (-want, +got):\n%s", diff)
	}
	wantSubs := []jstream.Sub{jstream.ArrayStart, jstream.None, jstream.None, jstream.ArrayEnd}
	if diff := cmp.Diff(wantSubs, subs); diff != "" {
		t.Errorf("Fed subtypes (-want, +got):\n%s", diff)
	}
}
