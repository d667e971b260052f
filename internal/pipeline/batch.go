package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunBatch processes independent images concurrently with at most workers
// runs in flight. Results line up with paths. The first failure cancels the
// remaining runs and is returned.
func RunBatch(ctx context.Context, c *Coordinator, paths []string, workers int) ([]*Result, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]*Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			res, err := c.Run(gctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
