// Package bootstrap estimates a statistic's standard error by resampling
// its measurements with replacement.
//
// The caller supplies the sample, a point estimator and a Source. Run
// computes the estimate on the full sample, then on Replicates resamples of
// the same size, and reports the per-element sample standard deviation of
// the replicates as the standard error. Replicate r always draws from
// Source.Stream(r), so the result does not depend on Threads.
package bootstrap

import (
	"context"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/hyp3rd/ewrap"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"popstats/internal/sentinel"
	"popstats/internal/telemetry"
)

// Estimator computes a statistic (a scalar is a 1-vector) from a sample.
// It must not retain or modify the sample.
type Estimator[S any] func(sample []S) ([]float64, error)

// Config controls one bootstrap run.
type Config struct {
	Replicates int    // number of resamples (>0)
	Threads    int    // worker goroutines; <1 means 1
	Source     Source // randomness; required
	Name       string // statistic name for errors and spans
}

// Estimate is a statistic's point estimate and standard error.
type Estimate struct {
	Mean []float64
	SE   []float64
}

// Scalar returns the first element of a scalar estimate.
func (e Estimate) Scalar() (mean, se float64) { return e.Mean[0], e.SE[0] }

// Slice returns elements [lo, hi) of a vector estimate.
func (e Estimate) Slice(lo, hi int) Estimate {
	return Estimate{Mean: e.Mean[lo:hi], SE: e.SE[lo:hi]}
}

// Run bootstraps est over data.
func Run[S any](ctx context.Context, cfg Config, data []S, est Estimator[S]) (_ Estimate, err error) {
	if cfg.Replicates <= 0 {
		return Estimate{}, ewrap.Wrapf(sentinel.ErrInvalidParameter, "%s: replicate count must be > 0, got %d", cfg.Name, cfg.Replicates)
	}
	if cfg.Source == nil {
		return Estimate{}, ewrap.Wrapf(sentinel.ErrInvalidParameter, "%s: no random source", cfg.Name)
	}
	if len(data) == 0 {
		return Estimate{}, ewrap.Wrap(sentinel.ErrEmptyPopulation, cfg.Name)
	}

	ctx, span := telemetry.Start(ctx, "bootstrap."+cfg.Name,
		attribute.Int("replicates", cfg.Replicates),
		attribute.Int("sample_size", len(data)),
	)
	defer func() { telemetry.End(span, err) }()

	mean, err := est(data)
	if err != nil {
		return Estimate{}, err
	}

	reps, err := replicate(ctx, cfg, data, len(mean), est)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{Mean: mean, SE: standardErrors(reps, len(mean))}, nil
}

// replicate runs the resampling loop on a worker pool. Each worker owns one
// resample buffer; results land at their replicate index.
func replicate[S any](ctx context.Context, cfg Config, data []S, width int, est Estimator[S]) ([][]float64, error) {
	threads := min(max(cfg.Threads, 1), cfg.Replicates)
	reps := make([][]float64, cfg.Replicates)

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int, threads*2)

	g.Go(func() error {
		defer close(jobs)
		for r := range cfg.Replicates {
			select {
			case jobs <- r:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for range threads {
		g.Go(func() error {
			buf := make([]S, len(data))
			for r := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				rng := cfg.Source.Stream(r)
				for i := range buf {
					buf[i] = data[rng.IntN(len(data))]
				}
				v, err := est(buf)
				if err != nil {
					return ewrap.Wrapf(err, "%s: replicate %d", cfg.Name, r)
				}
				if len(v) != width {
					return ewrap.Wrapf(sentinel.ErrInvalidParameter, "%s: replicate %d has %d values, want %d", cfg.Name, r, len(v), width)
				}
				reps[r] = v
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reps, nil
}

// standardErrors returns the per-element sample standard deviation of the
// finite replicate values. An element with a single finite value has SE 0;
// one with none is NaN.
func standardErrors(reps [][]float64, width int) []float64 {
	se := make([]float64, width)
	col := make([]float64, 0, len(reps))
	for j := range width {
		col = col[:0]
		for _, v := range reps {
			if !math.IsNaN(v[j]) {
				col = append(col, v[j])
			}
		}
		se[j] = stats.StdDev(col)
	}
	return se
}
