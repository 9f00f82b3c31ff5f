// Package workers runs batches of independent tasks with bounded
// concurrency.
package workers

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task processes the i-th item of a batch.
type Task func(ctx context.Context, i int) error

// Pool runs at most Limit tasks at a time.
type Pool struct {
	limit int
}

// NewPool returns a Pool running up to limit tasks concurrently. A limit
// below one is treated as one.
func NewPool(limit int) *Pool {
	if limit < 1 {
		limit = 1
	}
	return &Pool{limit: limit}
}

// Limit reports the concurrency bound.
func (p *Pool) Limit() int {
	return p.limit
}

// Run calls task for every index in [0, n). The first failure cancels the
// context passed to the remaining tasks and is returned once all started
// tasks have finished. Tasks must only touch their own index of any shared
// slice.
func (p *Pool) Run(ctx context.Context, n int, task Task) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := task(gctx, i); err != nil {
				return fmt.Errorf("task %d: %w", i, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
