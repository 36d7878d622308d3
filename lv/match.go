package lv

// Outcome is the four-valued result of comparing a template position (or
// whole template) against a concrete value/tuple, per §3/§4.3. The
// Incomparable case is the one that makes wildcards work inside a BST
// index: it tells the index "this tuple is neither less nor greater than
// the template along this key, descend as if equal and let the Payload
// check the full pattern" (§4.3).
type Outcome int

// Outcome constants. Named Match* rather than bare Equal/Less/Greater to
// avoid colliding with the package-level Value comparison helpers
// (Compare, Equal) that already use those names.
const (
	MatchEqual Outcome = iota
	MatchLess
	MatchGreater
	MatchIncomparable
)

func (o Outcome) String() string {
	switch o {
	case MatchEqual:
		return "equal"
	case MatchLess:
		return "less"
	case MatchGreater:
		return "greater"
	case MatchIncomparable:
		return "incomparable"
	default:
		return "unknown"
	}
}

// MatchValue implements §4.1's match(template_value, concrete):
//   - if v is a literal, delegate to Compare
//   - if v is a typed wildcard with tag t, return MatchEqual iff the
//     concrete value's tag is t; otherwise MatchIncomparable (never
//     less/greater on wildcards)
func MatchValue(tmpl, concrete Value) Outcome {
	if tmpl.IsWildcard() {
		if concrete.kind == tmpl.refOf {
			return MatchEqual
		}
		return MatchIncomparable
	}
	switch c := Compare(tmpl, concrete); {
	case c == 0:
		return MatchEqual
	case c < 0:
		return MatchLess
	default:
		return MatchGreater
	}
}
