package lv

import "strings"

// Template has the same shape as a Tuple, but each position is either a
// literal Value or a typed wildcard (§3/§4.3). Templates are built with
// NewTemplate, mixing bare literal Values with Type[T]()/TypeOf(k)
// wildcards at the positions that should bind loosely.
type Template struct {
	parts []Value
}

// NewTemplate constructs a Template from a variadic list of parts, each
// either a literal Value or a typed wildcard produced by Type[T]() /
// TypeOf(k). This mirrors the original's variadic builder that accepts
// either literal values or its ldb::type<T> stub at each position
// (SPEC_FULL.md, "Tuple builder DSL").
func NewTemplate(parts ...Value) Template {
	cp := make([]Value, len(parts))
	copy(cp, parts)
	return Template{parts: cp}
}

// Arity returns the number of positions in the template.
func (t Template) Arity() int { return len(t.parts) }

// At returns the template part at position i.
func (t Template) At(i int) Value { return t.parts[i] }

// Match implements §4.3's Template.match(Tuple) → Outcome:
//  1. differing arity → Less/Greater by which is shorter
//  2. scan positions left to right, stopping at the first non-Equal
//     outcome (propagating Incomparable as-is)
//  3. all positions Equal → Equal
func (t Template) Match(tuple Tuple) Outcome {
	if len(t.parts) != tuple.Arity() {
		if len(t.parts) < tuple.Arity() {
			return MatchLess
		}
		return MatchGreater
	}
	for i, part := range t.parts {
		switch o := MatchValue(part, tuple.At(i)); o {
		case MatchEqual:
			continue
		default:
			return o
		}
	}
	return MatchEqual
}

// PrimaryKey returns the template's first position, used by the index
// to choose a bounding key for tree descent (§4.5). A zero-arity
// template has no first position; it returns the invalid zero Value,
// which sorts before every constructed Value (KindInvalid < all other
// Kinds) and so gives every empty tuple a single, shared bucket at the
// low end of the tree.
func (t Template) PrimaryKey() Value {
	if len(t.parts) == 0 {
		return Value{}
	}
	return t.parts[0]
}

func (t Template) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range t.parts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	return b.String()
}
