// Package index implements the T-tree ordered index of §4.4/§4.5: a
// balanced binary tree of fixed-capacity sorted Payload buckets, keyed
// on a tuple's primary (first) position.
//
// Per the Design Notes this collapses the original's three payload
// flavors (scalar, key-value vector, value-set) into the single
// value-set variant the tuple space actually needs — a tuple multiset
// is its own key, so there is no separate value to carry alongside it.
package index

import (
	"sort"

	"github.com/lindadb/ldb/lv"
)

// DefaultCapacity is K from §4.4: the T-tree core's bucket capacity.
const DefaultCapacity = 16

// InsertStatus is the three-way result of Payload.TryInsert, per §4.4.
// Updated never occurs for the value-set variant implemented here — a
// tuple multiset has no key-value identity to update, only entries to
// append — but the enum is kept for fidelity with the original's
// kv-payload flavor and to leave room for it.
type InsertStatus int

const (
	InsertSuccess InsertStatus = iota
	InsertFull
	InsertUpdated
)

// Payload is a capacity-bounded, sorted bucket of tuples. Entries are
// kept sorted ascending by PrimaryKey(); entries sharing a primary key
// are kept in insertion order among themselves (§4.4).
type Payload struct {
	entries  []lv.Tuple
	capacity int
}

// NewPayload constructs an empty Payload with the given capacity.
func NewPayload(capacity int) *Payload {
	if capacity < 1 {
		capacity = 1
	}
	return &Payload{capacity: capacity}
}

// Len returns the number of entries currently held.
func (p *Payload) Len() int { return len(p.entries) }

// Full reports whether the payload is at capacity.
func (p *Payload) Full() bool { return len(p.entries) >= p.capacity }

// Bounds returns (min_key, max_key) in O(1); undefined when empty.
func (p *Payload) Bounds() (min, max lv.Value) {
	if len(p.entries) == 0 {
		return lv.Value{}, lv.Value{}
	}
	return p.entries[0].PrimaryKey(), p.entries[len(p.entries)-1].PrimaryKey()
}

// CompareToKey implements compare_to_key(k) from §4.4, generalized to
// accept a template position that may be a typed wildcard (used by
// Tree.Search, §4.5) as well as a literal (used by Tree.Insert).
//
// For a literal key: MatchLess if max_key < k (the bucket is to the
// left of k — descend right to find k); MatchGreater if k < min_key
// (descend left); MatchEqual otherwise (k falls within the bucket's
// range — check its entries).
//
// For a typed wildcard standing for kind t: since Value's total order
// sorts primarily by Kind, the set of nodes that could hold a value of
// kind t is contiguous. MatchLess means t sorts above the bucket's kind
// range (descend right), MatchGreater that it sorts below it (descend
// left), as for a literal key; MatchIncomparable means t overlaps the
// bucket's range, so descend as if equal and let TryGet filter by
// actual dynamic type (§4.3's rationale for Incomparable).
func (p *Payload) CompareToKey(k lv.Value) lv.Outcome {
	min, max := p.Bounds()
	if k.IsWildcard() {
		t := k.RefKind()
		switch {
		case t > max.Kind():
			return lv.MatchLess
		case t < min.Kind():
			return lv.MatchGreater
		default:
			return lv.MatchIncomparable
		}
	}
	switch {
	case lv.Compare(max, k) < 0:
		return lv.MatchLess
	case lv.Compare(k, min) < 0:
		return lv.MatchGreater
	default:
		return lv.MatchEqual
	}
}

func (p *Payload) sortedIndex(key lv.Value) int {
	return sort.Search(len(p.entries), func(i int) bool {
		return lv.Compare(p.entries[i].PrimaryKey(), key) >= 0
	})
}

// TryInsert inserts t in sorted position if the payload isn't full.
func (p *Payload) TryInsert(t lv.Tuple) InsertStatus {
	if p.Full() {
		return InsertFull
	}
	p.insertAt(p.sortedIndex(t.PrimaryKey()), t)
	return InsertSuccess
}

func (p *Payload) insertAt(idx int, t lv.Tuple) {
	p.entries = append(p.entries, lv.Tuple{})
	copy(p.entries[idx+1:], p.entries[idx:])
	p.entries[idx] = t
}

// InsertAndSpillLower inserts t; if the payload is full, it first evicts
// the smallest (lowest-keyed) entry and returns it as the spill, per
// §4.4/§4.5's insert path.
func (p *Payload) InsertAndSpillLower(t lv.Tuple) (status InsertStatus, spilled lv.Tuple, didSpill bool) {
	if !p.Full() {
		p.insertAt(p.sortedIndex(t.PrimaryKey()), t)
		return InsertSuccess, lv.Tuple{}, false
	}
	spilled = p.entries[0]
	p.entries = p.entries[1:]
	p.insertAt(p.sortedIndex(t.PrimaryKey()), t)
	return InsertSuccess, spilled, true
}

// InsertAndSpillUpper is the symmetric upper-eviction variant.
func (p *Payload) InsertAndSpillUpper(t lv.Tuple) (status InsertStatus, spilled lv.Tuple, didSpill bool) {
	if !p.Full() {
		p.insertAt(p.sortedIndex(t.PrimaryKey()), t)
		return InsertSuccess, lv.Tuple{}, false
	}
	last := len(p.entries) - 1
	spilled = p.entries[last]
	p.entries = p.entries[:last]
	p.insertAt(p.sortedIndex(t.PrimaryKey()), t)
	return InsertSuccess, spilled, true
}

// TryGet scans the payload's entries in sorted order and returns the
// first one the full template matches. It does not binary-search for a
// starting position; the payload is capacity-bounded by a small
// constant (K), so the linear scan remains O(K) regardless of tree size.
func (p *Payload) TryGet(tpl lv.Template) (lv.Tuple, bool) {
	for _, t := range p.entries {
		if tpl.Match(t) == lv.MatchEqual {
			return t, true
		}
	}
	return lv.Tuple{}, false
}

// Remove finds the first entry the template matches and deletes it,
// shifting the remaining entries down. May leave the payload empty.
func (p *Payload) Remove(tpl lv.Template) (lv.Tuple, bool) {
	for i, t := range p.entries {
		if tpl.Match(t) == lv.MatchEqual {
			removed := t
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			return removed, true
		}
	}
	return lv.Tuple{}, false
}

// Merge moves all of other's entries into self if they all fit;
// atomic — either every entry moves, or none do.
func (p *Payload) Merge(other *Payload) bool {
	if len(p.entries)+len(other.entries) > p.capacity {
		return false
	}
	for _, t := range other.entries {
		p.insertAt(p.sortedIndex(t.PrimaryKey()), t)
	}
	other.entries = nil
	return true
}

// MergeUntilFull moves as many of other's entries into self as fit,
// in ascending key order; other retains whatever didn't fit.
func (p *Payload) MergeUntilFull(other *Payload) {
	for len(p.entries) < p.capacity && len(other.entries) > 0 {
		t := other.entries[0]
		other.entries = other.entries[1:]
		p.insertAt(p.sortedIndex(t.PrimaryKey()), t)
	}
}

// Entries returns the payload's tuples in sorted order. Used by the
// tree's in-order traversal (Tree.Walk) and tests.
func (p *Payload) Entries() []lv.Tuple {
	out := make([]lv.Tuple, len(p.entries))
	copy(out, p.entries)
	return out
}
