// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Goes is a simple goroutine group: Go spawns a tracked goroutine,
// Wait blocks until all of them return, and Done reports completion as
// a channel for select-based callers.
type Goes struct {
	wg   sync.WaitGroup
	once sync.Once
	done chan struct{}
}

// Go spawns f as a tracked goroutine.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f()
	}()
}

// Wait blocks until every goroutine spawned via Go has returned.
func (g *Goes) Wait() {
	g.wg.Wait()
}

func (g *Goes) ensureDone() {
	g.once.Do(func() {
		g.done = make(chan struct{})
		go func() {
			g.wg.Wait()
			close(g.done)
		}()
	})
}

// Done returns a channel that closes once every goroutine spawned via
// Go (so far) has returned; safe to select on before or after Wait.
func (g *Goes) Done() <-chan struct{} {
	g.ensureDone()
	return g.done
}
