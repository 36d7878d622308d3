package lv

import "fmt"

// CallHolder pairs a registered function name with an argument Tuple,
// the call-holder variant of Value (§3, wire tag 9). It is the storage
// shape consumed by the out-of-scope eval front-end; ldb only carries it
// through comparison, hashing, and serialization.
//
// Ported from the original's fn_call_holder: equality and ordering are
// by function name alone — two call-holders with the same name compare
// equal regardless of their argument tuples. See SPEC_FULL.md.
type CallHolder struct {
	name string
	args Tuple
}

// NewCallHolder constructs a CallHolder for the named function with the
// given argument tuple.
func NewCallHolder(name string, args Tuple) CallHolder {
	return CallHolder{name: name, args: args.Clone()}
}

// Name returns the registered function name.
func (h CallHolder) Name() string { return h.name }

// Args returns the argument tuple.
func (h CallHolder) Args() Tuple { return h.args }

func (h CallHolder) String() string {
	return fmt.Sprintf("[fn call object: %s]", h.name)
}

func compareCallHolder(a, b CallHolder) int {
	return cmpString(a.name, b.name)
}
