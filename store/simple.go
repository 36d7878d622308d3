// Package store implements the tuple space's operational surface of
// §4.6: out/in/rd and their non-blocking inp/rdp variants, plus eval,
// layered over the T-tree index (package index).
package store

import (
	"github.com/lindadb/ldb/index"
	"github.com/lindadb/ldb/lv"
)

// Simple is the unlocked core: a single T-tree with no concurrency
// control, broadcast, or caching. It exists on its own, per the
// Design Notes' simple_store/store split, so the index algorithms can
// be exercised (and embedded, e.g. in a single-goroutine CLI tool)
// without pulling in the concurrent Store's machinery.
type Simple struct {
	tree *index.Tree
}

// NewSimple constructs a Simple store with the given per-node T-tree
// capacity (index.DefaultCapacity if capacity <= 0).
func NewSimple(capacity int) *Simple {
	return &Simple{tree: index.NewTree(capacity)}
}

// Insert adds tuple to the space.
func (s *Simple) Insert(tuple lv.Tuple) { s.tree.Insert(tuple) }

// Search returns the first tuple the template matches, without
// removing it.
func (s *Simple) Search(tpl lv.Template) (lv.Tuple, bool) { return s.tree.Search(tpl) }

// Remove finds and deletes the first tuple the template matches.
func (s *Simple) Remove(tpl lv.Template) (lv.Tuple, bool) { return s.tree.Remove(tpl) }

// Len returns the number of tuples currently stored.
func (s *Simple) Len() int { return s.tree.Len() }

// Walk visits every tuple in ascending primary-key order.
func (s *Simple) Walk(visit func(lv.Tuple) bool) { s.tree.Walk(visit) }
