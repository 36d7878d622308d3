// Package bcast implements the pluggable broadcast/await seam the
// Design Notes describe: the core Store never knows whether it's
// running standalone or replicated. It calls Sink.Publish after every
// successful out(), and is handed a no-op implementation of both Sink
// and Awaiter by default. Store's in()/rd() wait loops do not call
// Awaiter.Await.
package bcast

import (
	"context"

	"github.com/lindadb/ldb/lv"
)

// Event is what Publish ships to peers: an insert or a remove of a
// single tuple, tagged with the space it affects so a multi-space
// deployment can share one transport.
type Event struct {
	Space  string
	Insert bool
	Tuple  lv.Tuple
}

// Sink is notified of every local mutation. Implementations must not
// block the caller for long — Store holds no lock across Publish.
type Sink interface {
	Publish(ctx context.Context, ev Event) error
}

// Awaiter is the await half of the seam: Await blocks until the
// implementation's peers have had a chance to act, or ctx ends. Store
// takes an Awaiter as part of its SinkAwaiter but its in()/rd() loops
// do not call Await. The default NoopSink's Await always returns
// immediately.
type Awaiter interface {
	Await(ctx context.Context) error
}

// NoopSink is the zero-cost default seam: Publish is a no-op and
// Await returns immediately.
type NoopSink struct{}

func (NoopSink) Publish(context.Context, Event) error { return nil }
func (NoopSink) Await(context.Context) error          { return nil }
