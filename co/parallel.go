// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "runtime"

// Parallel runs jobs fed through the queue across GOMAXPROCS worker
// goroutines and returns a channel that closes once enq has returned
// and every queued job has completed. Parallel closes the queue itself
// once enq returns, so enq must not close it.
func Parallel(enq func(queue chan<- func())) <-chan struct{} {
	nWorkers := runtime.GOMAXPROCS(0)
	if nWorkers < 1 {
		nWorkers = 1
	}
	queue := make(chan func())
	done := make(chan struct{})

	var wg Goes
	for i := 0; i < nWorkers; i++ {
		wg.Go(func() {
			for job := range queue {
				job()
			}
		})
	}

	go func() {
		enq(queue)
		close(queue)
	}()

	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}
