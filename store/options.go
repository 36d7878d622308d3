package store

import (
	"github.com/lindadb/ldb/fn"
)

// Option configures a Store at construction.
type Option func(*Store)

// WithCapacity sets the T-tree's per-node capacity (index.DefaultCapacity
// if never set).
func WithCapacity(k int) Option {
	return func(s *Store) { s.capacity = k }
}

// WithSink installs the broadcast/await seam (bcast.NoopSink by default).
func WithSink(sink SinkAwaiter) Option {
	return func(s *Store) { s.sink = sink }
}

// WithRegistry installs the function registry eval() dispatches
// through (an empty fn.Registry by default).
func WithRegistry(reg *fn.Registry) Option {
	return func(s *Store) { s.registry = reg }
}

// WithCacheSize sets the point-read cache's capacity (see store.go's
// doc comment on cacheGet/cachePut); 0 disables caching entirely.
func WithCacheSize(n int) Option {
	return func(s *Store) { s.cacheSize = n }
}

// WithSpace sets the space name attached to every bcast.Event this
// Store publishes (default "default").
func WithSpace(name string) Option {
	return func(s *Store) { s.space = name }
}
