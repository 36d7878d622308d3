// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co collects small concurrency primitives layered on top of
// goroutines and channels: a broadcast Signal, a goroutine-group Goes,
// a bounded worker-queue Parallel, and a stoppable goroutine group
// Choes. Store (package store) uses Signal to wake blocked readers and
// takers without missing a wakeup (§4.6/§5).
package co

import "sync"

// Signal is a one-shot-per-generation broadcast: NewWaiter hands out a
// channel that closes the next time Broadcast is called. A Waiter
// obtained before a Broadcast call observes it; one obtained after
// does not — it waits for the following Broadcast. This is the
// "sync counter" pattern: callers that want to never miss a wakeup
// must take their Waiter before checking the condition they're
// waiting on, not after.
type Signal struct {
	lock sync.Mutex
	c    chan struct{}
}

// Waiter is a single observer of a Signal's next Broadcast.
type Waiter struct {
	c chan struct{}
}

// C returns the channel that closes on the next Broadcast.
func (w Waiter) C() <-chan struct{} { return w.c }

// NewWaiter returns a Waiter for the next Broadcast call.
func (s *Signal) NewWaiter() Waiter {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.c == nil {
		s.c = make(chan struct{})
	}
	return Waiter{c: s.c}
}

// Broadcast wakes every Waiter obtained since the last Broadcast (or
// since construction) by closing their shared channel, then rolls over
// to a fresh channel for the next generation.
func (s *Signal) Broadcast() {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.c != nil {
		close(s.c)
	}
	s.c = make(chan struct{})
}
