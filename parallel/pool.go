// Package parallel runs independent tasks on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

type Pool struct {
	wg      sync.WaitGroup
	workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

// Start creates a pool of numWorkers goroutines. A value of 1 or less runs
// every task inline on the caller's goroutine, in submission order.
func Start(numWorkers int) *Pool {
	pool := &Pool{
		workers: 1,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}
	if numWorkers <= 1 {
		return pool
	}

	pool.workers = numWorkers
	workChan := make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range workChan {
				f()
			}
		})
	}

	pool.Do = func(f func()) {
		workChan <- f
	}
	pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	pool.Wait = func(done bool) {
		if done {
			pool.Cancel()
		}
		pool.wg.Wait()
	}

	return pool
}

// Workers reports how many goroutines serve the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// NumWorkers resolves a requested worker count, 0 meaning one per CPU.
func NumWorkers(requested int) int {
	if requested == 0 {
		return runtime.GOMAXPROCS(0)
	}
	if requested < 1 {
		return 1
	}
	return requested
}
