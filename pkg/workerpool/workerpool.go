// Package workerpool runs bounded concurrent work.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every item with at most workerCount goroutines and returns the
// results in item order. The first error cancels the remaining work and is returned.
func Map[T, R any](
	ctx context.Context,
	workerCount int,
	items []T,
	fn func(context.Context, T) (R, error),
) ([]R, error) {
	if workerCount < 1 {
		workerCount = 1
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)

	results := make([]R, len(items))
	for i, item := range items {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			result, err := fn(gCtx, item)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
