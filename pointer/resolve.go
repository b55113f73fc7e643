// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package pointer

import (
	"fmt"
	"strconv"

	"github.com/creachadair/jstream/ast"
)

// Get returns the value addressed by the JSON Pointer path within root.
func Get(root ast.Value, path string) (ast.Value, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return p.Get(root)
}

// Set replaces or adds the value addressed by the JSON Pointer path within
// root, and returns the updated root.
func Set(root ast.Value, path string, v ast.Value) (ast.Value, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return p.Set(root, v)
}

// GetRelative returns the value addressed by the Relative JSON Pointer rel
// from the location base within root.
func GetRelative(root ast.Value, base, rel string) (ast.Value, error) {
	b, err := Parse(base)
	if err != nil {
		return nil, err
	}
	r, err := ParseRelative(rel)
	if err != nil {
		return nil, err
	}
	return r.Get(root, b)
}

// SetRelative replaces or adds the value addressed by the Relative JSON
// Pointer rel from the location base within root, and returns the updated
// root.
func SetRelative(root ast.Value, base, rel string, v ast.Value) (ast.Value, error) {
	b, err := Parse(base)
	if err != nil {
		return nil, err
	}
	r, err := ParseRelative(rel)
	if err != nil {
		return nil, err
	}
	return r.Set(root, b, v)
}

// Get returns the value addressed by p within root.
func (p Pointer) Get(root ast.Value) (ast.Value, error) {
	path, err := p.walk(root)
	if err != nil {
		return nil, err
	}
	return path[len(path)-1], nil
}

// walk returns the sequence of values from root to the value addressed by p.
func (p Pointer) walk(root ast.Value) ([]ast.Value, error) {
	path := []ast.Value{root}
	cur := root
	for i, tok := range p {
		switch t := cur.(type) {
		case *ast.Object:
			m := t.Find(tok)
			if m == nil {
				return nil, fmt.Errorf("at %q: key %q: %w", p[:i].String(), tok, ErrNotFound)
			}
			cur = m.Value

		case *ast.Array:
			j, err := parseIndex(tok)
			if err != nil {
				return nil, fmt.Errorf("at %q: %w", p[:i].String(), err)
			} else if j >= len(t.Values) {
				return nil, fmt.Errorf("at %q: index %d out of bounds (n=%d): %w",
					p[:i].String(), j, len(t.Values), ErrNotFound)
			}
			cur = t.Values[j]

		default:
			return nil, fmt.Errorf("at %q: cannot traverse %T with %q: %w", p[:i].String(), cur, tok, ErrNotFound)
		}
		path = append(path, cur)
	}
	return path, nil
}

// Set replaces or adds the value addressed by p within root, and returns the
// updated root. If p is empty, Set returns v. Otherwise, the parent of the
// addressed location must exist. An object member is replaced if present and
// added if not. An array element is replaced if its index is in range; the
// index "-", or an index equal to the length of the array, appends v.
func (p Pointer) Set(root, v ast.Value) (ast.Value, error) {
	if len(p) == 0 {
		return v, nil
	}
	up, last := p[:len(p)-1], p[len(p)-1]
	parent, err := up.Get(root)
	if err != nil {
		return nil, err
	}
	switch t := parent.(type) {
	case *ast.Object:
		if m := t.Find(last); m != nil {
			m.Value = v
		} else {
			t.Members = append(t.Members, ast.Field(last, v))
		}

	case *ast.Array:
		n := len(t.Values)
		j := n
		if last != "-" {
			j, err = parseIndex(last)
			if err != nil {
				return nil, fmt.Errorf("at %q: %w", up.String(), err)
			}
		}
		switch {
		case j < n:
			t.Values[j] = v
		case j == n:
			t.Values = append(t.Values, v)
		default:
			return nil, fmt.Errorf("at %q: index %d out of bounds (n=%d): %w", up.String(), j, n, ErrNotFound)
		}

	default:
		return nil, fmt.Errorf("at %q: cannot set %q in %T: %w", up.String(), last, parent, ErrNotFound)
	}
	return root, nil
}

// Get returns the value addressed by r from the location base within root.
// If r.Hash is set, the result is the key (an ast.String) or index (an
// ast.Number) of the location.
func (r Relative) Get(root ast.Value, base Pointer) (ast.Value, error) {
	q, err := r.resolveIn(root, base)
	if err != nil {
		return nil, err
	}
	path, err := q.walk(root)
	if err != nil {
		return nil, err
	}
	if !r.Hash {
		return path[len(path)-1], nil
	}
	if len(q) == 0 {
		return nil, fmt.Errorf("the root has no key or index: %w", ErrNotFound)
	}
	last := q[len(q)-1]
	if _, ok := path[len(path)-2].(*ast.Array); ok {
		j, _ := strconv.Atoi(last) // validated by walk
		return ast.NewInt(int64(j)), nil
	}
	return ast.NewString(last), nil
}

// Set replaces or adds the value addressed by r from the location base within
// root, and returns the updated root. It reports an error if r.Hash is set.
func (r Relative) Set(root ast.Value, base Pointer, v ast.Value) (ast.Value, error) {
	if r.Hash {
		return nil, fmt.Errorf("%w: cannot set through %q", ErrSyntax, r.String())
	}
	q, err := r.resolveIn(root, base)
	if err != nil {
		return nil, err
	}
	return q.Set(root, v)
}

// resolveIn resolves r against base within root. An index offset is only
// valid when the location it adjusts is an array element.
func (r Relative) resolveIn(root ast.Value, base Pointer) (Pointer, error) {
	q, err := r.Resolve(base)
	if err != nil || r.Offset == 0 {
		return q, err
	}
	at := base[:len(base)-r.Up]
	path, err := at.walk(root)
	if err != nil {
		return nil, err
	}
	if _, ok := path[len(path)-2].(*ast.Array); !ok {
		return nil, fmt.Errorf("offset %d from %q: not an array element: %w", r.Offset, at.String(), ErrNotFound)
	}
	return q, nil
}
