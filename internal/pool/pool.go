package pool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool dispatches batches of work units across a bounded number of
// goroutines. A Pool holds no goroutines between batches and may be reused.
type Pool struct {
	workers int
}

// New creates a pool with the given worker limit. Non-positive sizes fall
// back to GOMAXPROCS.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the concurrency limit.
func (p *Pool) Workers() int {
	return p.workers
}

// Run invokes fn once for every unit index in [0, units) and blocks until
// all invocations have returned. The first non-nil error is returned after
// the batch drains; units not yet started when it occurs are skipped.
func (p *Pool) Run(units int, fn func(unit int) error) error {
	if units <= 0 {
		return nil
	}
	if units == 1 {
		return fn(0)
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(min(p.workers, units))
	for i := 0; i < units; i++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return fn(i)
		})
	}
	return g.Wait()
}
