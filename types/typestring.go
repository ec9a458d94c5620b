/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package types holds the scalar helpers the codec layer needs but that do
// not belong to any single column type: the recursive type-string grammar,
// 128/256-bit integer encode/decode, decimal scaling, and IP address
// parsing.
package types

import (
	"fmt"
	"strings"
)

// TupleElem is one element of a Tuple or Nested type expression. Name is
// empty for unnamed tuple elements.
type TupleElem struct {
	Name string
	Type *Type
}

// Type is a parsed node of the recursive type-string grammar. Only the
// fields relevant to Name are populated.
type Type struct {
	Name  string // e.g. "UInt8", "Array", "Map", "Tuple", "Nullable", ...
	Args  []string
	Inner *Type       // Nullable(T), Array(T), LowCardinality(T)
	Key   *Type       // Map(K,V)
	Value *Type       // Map(K,V)
	Elems []TupleElem // Tuple(...), Nested(...)
	Alts  []*Type     // Variant(...)
}

// String reconstructs the canonical type string for t. parse(unparse(t)) ==
// t holds for every type synthesized by this parser (testable property §8).
func (t *Type) String() string {
	if t == nil {
		return ""
	}
	switch t.Name {
	case "Nullable", "Array", "LowCardinality":
		return fmt.Sprintf("%s(%s)", t.Name, t.Inner.String())
	case "Map":
		return fmt.Sprintf("Map(%s,%s)", t.Key.String(), t.Value.String())
	case "Tuple", "Nested":
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			if e.Name != "" {
				parts[i] = e.Name + " " + e.Type.String()
			} else {
				parts[i] = e.Type.String()
			}
		}
		return fmt.Sprintf("%s(%s)", t.Name, strings.Join(parts, ","))
	case "Variant":
		parts := make([]string, len(t.Alts))
		for i, a := range t.Alts {
			parts[i] = a.String()
		}
		return fmt.Sprintf("Variant(%s)", strings.Join(parts, ","))
	default:
		if len(t.Args) == 0 {
			return t.Name
		}
		return fmt.Sprintf("%s(%s)", t.Name, strings.Join(t.Args, ","))
	}
}

// ParseType parses a type string into its recursive tree. Unknown type
// *names* are not rejected here — that is the factory's job (ErrUnknownType)
// — this stage only rejects malformed grammar (unbalanced parens, missing
// Map arguments, etc).
func ParseType(s string) (*Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("types: empty type string")
	}
	idx := strings.IndexByte(s, '(')
	if idx < 0 {
		return &Type{Name: s}, nil
	}
	if s[len(s)-1] != ')' {
		return nil, fmt.Errorf("types: unbalanced parens in %q", s)
	}
	name := s[:idx]
	inner := s[idx+1 : len(s)-1]
	parts := splitTopLevel(inner)

	switch name {
	case "Nullable", "Array", "LowCardinality":
		if len(parts) != 1 {
			return nil, fmt.Errorf("types: %s expects exactly one argument, got %d", name, len(parts))
		}
		innerType, err := ParseType(parts[0])
		if err != nil {
			return nil, err
		}
		return &Type{Name: name, Inner: innerType}, nil
	case "Map":
		if len(parts) != 2 {
			return nil, fmt.Errorf("types: Map expects exactly two arguments, got %d", len(parts))
		}
		k, err := ParseType(parts[0])
		if err != nil {
			return nil, err
		}
		v, err := ParseType(parts[1])
		if err != nil {
			return nil, err
		}
		return &Type{Name: "Map", Key: k, Value: v}, nil
	case "Tuple", "Nested":
		elems := make([]TupleElem, len(parts))
		for i, p := range parts {
			e, err := parseTupleElement(p)
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return &Type{Name: name, Elems: elems}, nil
	case "Variant":
		alts := make([]*Type, len(parts))
		for i, p := range parts {
			a, err := ParseType(p)
			if err != nil {
				return nil, err
			}
			alts[i] = a
		}
		return &Type{Name: "Variant", Alts: alts}, nil
	default:
		args := make([]string, len(parts))
		for i, p := range parts {
			args[i] = strings.TrimSpace(p)
		}
		return &Type{Name: name, Args: args}, nil
	}
}

// parseTupleElement parses one Tuple/Nested element, which is either
// "Type" or "name Type" (a top-level space separates the two — a space
// nested inside a child type's parens, e.g. "Tuple(a UInt8)", does not
// count).
func parseTupleElement(s string) (TupleElem, error) {
	s = strings.TrimSpace(s)
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ' ', '\t':
			if depth == 0 {
				name := s[:i]
				rest := strings.TrimSpace(s[i+1:])
				if rest == "" {
					break
				}
				t, err := ParseType(rest)
				if err != nil {
					return TupleElem{}, err
				}
				return TupleElem{Name: name, Type: t}, nil
			}
		}
	}
	t, err := ParseType(s)
	if err != nil {
		return TupleElem{}, err
	}
	return TupleElem{Type: t}, nil
}

// splitTopLevel splits s on commas that occur at paren depth 0.
func splitTopLevel(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
