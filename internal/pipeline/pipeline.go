package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"popstats/internal/engine"
)

// Config controls the job pipeline.
type Config struct {
	Threads int // concurrent jobs (>=1)
}

type indexed struct {
	seq int
	res engine.Result
}

// ForEachResult computes every job and calls visit with the results in job
// order, buffering results that finish early. It returns the first error
// (including context cancellation); visit is not called for any job after
// the failing one.
func ForEachResult(
	ctx context.Context,
	cfg Config,
	jobs []Job,
	c Computer,
	visit func(engine.Result) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	work := make(chan int, cfg.Threads*2)
	results := make(chan indexed, cfg.Threads*2)

	// Feed
	g.Go(func() error {
		defer close(work)
		for i := range jobs {
			select {
			case work <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	// Workers
	workers, wctx := errgroup.WithContext(gctx)
	for range cfg.Threads {
		workers.Go(func() error {
			for i := range work {
				if err := wctx.Err(); err != nil {
					return err
				}
				j := jobs[i]
				res, err := c.Compute(wctx, j.Family, j.Index, j.Regions)
				if err != nil {
					return err
				}
				res.Source = j.Source
				select {
				case results <- indexed{seq: i, res: res}:
				case <-wctx.Done():
					return wctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return workers.Wait()
	})

	// Collector: release results strictly in job order.
	g.Go(func() error {
		pending := make(map[int]engine.Result)
		next := 0
		for r := range results {
			pending[r.seq] = r.res
			for {
				res, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if err := visit(res); err != nil {
					for range results {
					}
					return err
				}
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
