// Package parallel provides a small worker pool for index-parallel work.
//
// Cost computation is embarrassingly parallel across scanline pixels, so the
// pool only needs one primitive: run f(i) for i in [0, n) across a fixed set
// of workers and wait. Work is handed out in chunks to keep channel traffic
// low when n is large and the per-item cost is small.
package parallel

import (
	"runtime"
	"sync"
)

// Pool is a fixed set of worker goroutines executing index ranges.
//
// Thread safety: ExecuteN may be called from multiple goroutines at once;
// Close must not race with ExecuteN.
type Pool struct {
	workers int
	jobs    chan job
	done    chan struct{}
	wg      sync.WaitGroup
	closed  sync.Once
}

// job is a contiguous index range to run through fn.
type job struct {
	lo, hi int
	fn     func(i int)
	wg     *sync.WaitGroup
}

// New creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		jobs:    make(chan job, workers*2),
		done:    make(chan struct{}),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// worker is the main loop of each worker goroutine.
func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case j := <-p.jobs:
			for i := j.lo; i < j.hi; i++ {
				j.fn(i)
			}
			j.wg.Done()
		}
	}
}

// ExecuteN runs fn(i) for every i in [0, n) across the pool and waits for
// completion. fn must be safe to call concurrently. A closed pool runs the
// work on the calling goroutine so callers never deadlock.
func (p *Pool) ExecuteN(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	// Aim for a few chunks per worker so slow chunks even out.
	chunk := n / (p.workers * 4)
	if chunk < 1 {
		chunk = 1
	}

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		select {
		case p.jobs <- job{lo: lo, hi: hi, fn: fn, wg: &wg}:
		case <-p.done:
			for i := lo; i < hi; i++ {
				fn(i)
			}
			wg.Done()
		}
	}
	wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Close stops the workers and waits for them to exit. ExecuteN calls made
// after Close run their work on the calling goroutine. Close is safe to call
// multiple times.
func (p *Pool) Close() {
	p.closed.Do(func() {
		close(p.done)
		p.wg.Wait()
	})
}
