package store

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/golang/snappy"

	"github.com/lindadb/ldb/bcast"
	"github.com/lindadb/ldb/cache"
	"github.com/lindadb/ldb/co"
	"github.com/lindadb/ldb/fn"
	"github.com/lindadb/ldb/index"
	"github.com/lindadb/ldb/log"
	"github.com/lindadb/ldb/lv"
	"github.com/lindadb/ldb/wire"
)

// SinkAwaiter is the combined broadcast/await seam a Store talks to —
// most callers hand in the same value for both halves (a replicator is
// naturally both), so Store takes one interface rather than two.
type SinkAwaiter interface {
	bcast.Sink
	bcast.Awaiter
}

// Store is the concurrent, blocking-capable tuple space of §4.6: a
// Simple core behind a RWMutex, woken by a co.Signal broadcast on every
// successful out()/eval() so blocked in()/rd() callers never miss a
// wakeup, and fronted by a small point-read cache invalidated on every
// mutation.
type Store struct {
	mu     sync.RWMutex
	simple *Simple
	signal co.Signal
	goes   co.Goes

	sink      SinkAwaiter
	registry  *fn.Registry
	space     string
	capacity  int
	cacheSize int
	cache     *cache.LRU
	cacheStat cache.Stats
}

// New constructs a Store, applying opts over these defaults: T-tree
// capacity index.DefaultCapacity, bcast.NoopSink, an empty fn.Registry,
// space "default", and a 256-entry point-read cache.
func New(opts ...Option) *Store {
	s := &Store{
		sink:      bcast.NoopSink{},
		registry:  fn.NewRegistry(),
		space:     "default",
		capacity:  index.DefaultCapacity,
		cacheSize: 256,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.simple = NewSimple(s.capacity)
	if s.cacheSize > 0 {
		s.cache = cache.NewLRU(s.cacheSize)
	}
	return s
}

// cacheGet/cachePut/invalidateCache implement a tiny optimization for
// repeated rd()/rdp() point-reads: the cache is keyed on the template's
// first position, and a cached tuple that the full template matches is
// returned without walking the T-tree at all. Any mutation (out, a
// successful in/inp, or an eval result landing) invalidates the whole cache rather than tracking
// which entries it could have affected — the tree is already O(log n)
// per lookup, so a blunt invalidation is cheap compared to a subtle
// staleness bug.
func (s *Store) cacheGet(tpl lv.Template) (lv.Tuple, bool) {
	if s.cache == nil || tpl.Arity() == 0 {
		return lv.Tuple{}, false
	}
	v, ok := s.cache.Get(lv.Hash(tpl.At(0)))
	if !ok {
		s.cacheStat.Miss()
		return lv.Tuple{}, false
	}
	tup, ok := v.(lv.Tuple)
	if !ok || tpl.Match(tup) != lv.MatchEqual {
		s.cacheStat.Miss()
		return lv.Tuple{}, false
	}
	s.cacheStat.Hit()
	return tup, true
}

// CacheStats reports the point-read cache's cumulative hit/miss counts.
func (s *Store) CacheStats() (hits, misses int64) {
	_, hits, misses = s.cacheStat.Stats()
	return hits, misses
}

func (s *Store) cachePut(tpl lv.Template, tuple lv.Tuple) {
	if s.cache == nil || tpl.Arity() == 0 {
		return
	}
	s.cache.Add(lv.Hash(tpl.At(0)), tuple)
}

func (s *Store) invalidateCache() {
	if s.cache == nil {
		return
	}
	s.cache.Purge()
}

// Out inserts tuple, wakes any blocked in()/rd() callers, and publishes
// the mutation to the broadcast seam.
func (s *Store) Out(ctx context.Context, tuple lv.Tuple) error {
	s.mu.Lock()
	s.simple.Insert(tuple)
	s.invalidateCache()
	s.mu.Unlock()

	s.signal.Broadcast()
	return s.sink.Publish(ctx, bcast.Event{Space: s.space, Insert: true, Tuple: tuple})
}

// Inp is the non-blocking take: it removes and returns the first
// matching tuple, or reports false immediately if none match.
func (s *Store) Inp(tpl lv.Template) (lv.Tuple, bool) {
	s.mu.Lock()
	tuple, ok := s.simple.Remove(tpl)
	if ok {
		s.invalidateCache()
	}
	s.mu.Unlock()
	return tuple, ok
}

// Rdp is the non-blocking read: like Inp, but leaves the tuple in place.
func (s *Store) Rdp(tpl lv.Template) (lv.Tuple, bool) {
	if tuple, ok := s.cacheGet(tpl); ok {
		return tuple, true
	}
	s.mu.RLock()
	tuple, ok := s.simple.Search(tpl)
	if ok {
		s.cachePut(tpl, tuple)
	}
	s.mu.RUnlock()
	return tuple, ok
}

// In is the blocking take of §4.6: it retries Inp until it succeeds or
// ctx is canceled, taking a Signal Waiter before each check so a
// concurrent Out can never land in the gap between "check" and
// "sleep" and be missed.
func (s *Store) In(ctx context.Context, tpl lv.Template) (lv.Tuple, error) {
	for {
		waiter := s.signal.NewWaiter()
		if tuple, ok := s.Inp(tpl); ok {
			return tuple, nil
		}
		select {
		case <-ctx.Done():
			return lv.Tuple{}, ctx.Err()
		case <-waiter.C():
		}
	}
}

// Rd is the blocking read of §4.6: identical to In's wait loop, but
// via Rdp so the tuple is left in place.
func (s *Store) Rd(ctx context.Context, tpl lv.Template) (lv.Tuple, error) {
	for {
		waiter := s.signal.NewWaiter()
		if tuple, ok := s.Rdp(tpl); ok {
			return tuple, nil
		}
		select {
		case <-ctx.Done():
			return lv.Tuple{}, ctx.Err()
		case <-waiter.C():
		}
	}
}

// Eval implements Linda's eval(): the call is dispatched asynchronously
// against the registry, and its result tuple is inserted via Out once
// it completes. Eval returns immediately; a failed call is logged and
// nothing is inserted (per §7, a logic error here must not wedge a
// caller blocked on a template that will now never materialize — it
// is left to them to time out via ctx).
func (s *Store) Eval(ctx context.Context, h lv.CallHolder) {
	s.goes.Go(func() {
		result, err := s.registry.Call(h)
		if err != nil {
			log.Error("store: eval failed", "fn", h.Name(), "err", err)
			return
		}
		if err := s.Out(ctx, result); err != nil {
			log.Error("store: eval result publish failed", "fn", h.Name(), "err", err)
		}
	})
}

// Len returns the number of tuples currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.simple.Len()
}

// Snapshot returns every stored tuple in ascending primary-key order.
func (s *Store) Snapshot() []lv.Tuple {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []lv.Tuple
	s.simple.Walk(func(t lv.Tuple) bool {
		out = append(out, t)
		return true
	})
	return out
}

// DebugDump wire-encodes every tuple in the space (length-prefixed,
// see package wire) and snappy-compresses the result — the format the
// admin package's /admin/debug/snapshot endpoint serves.
func (s *Store) DebugDump() []byte {
	tuples := s.Snapshot()
	var buf []byte
	var lenbuf [4]byte
	for _, t := range tuples {
		enc := wire.Encode(t)
		binary.LittleEndian.PutUint32(lenbuf[:], uint32(len(enc)))
		buf = append(buf, lenbuf[:]...)
		buf = append(buf, enc...)
	}
	return snappy.Encode(nil, buf)
}

// Close waits for any in-flight Eval goroutines to finish. Callers
// shutting down should cancel any contexts passed to In/Rd first, then
// call Close.
func (s *Store) Close() {
	s.goes.Wait()
}
