package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyp3rd/ewrap"
	"go.opentelemetry.io/otel/attribute"

	"popstats/internal/binning"
	"popstats/internal/bootstrap"
	"popstats/internal/estimate"
	"popstats/internal/region"
	"popstats/internal/sentinel"
	"popstats/internal/telemetry"
)

// Config holds the estimation parameters shared by every population.
type Config struct {
	Replicates int // bootstrap replicates per statistic
	Threads    int // replicate workers per statistic
	SFSBins    int
	PhysEdges  []float64 // r² bins; nil derives LDBins bins from the data
	GenEdges   []float64 // D′ bins; nil derives LDBins bins from the data
	LDBins     int
	Source     bootstrap.Source
}

// Engine computes statistic families. It is safe for concurrent use.
type Engine struct {
	cfg      Config
	sfsEdges binning.Edges
	phys     *binning.Edges
	gen      *binning.Edges
}

// New validates c and returns an Engine.
func New(c Config) (*Engine, error) {
	if c.Replicates <= 0 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidParameter, "replicates must be > 0, got %d", c.Replicates)
	}
	if c.SFSBins <= 0 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidParameter, "sfs bins must be > 0, got %d", c.SFSBins)
	}
	if c.Source == nil {
		return nil, ewrap.Wrap(sentinel.ErrInvalidParameter, "no random source")
	}
	sfs, err := binning.Uniform(c.SFSBins, 0, 1)
	if err != nil {
		return nil, err
	}
	e := &Engine{cfg: c, sfsEdges: sfs}

	if e.phys, err = fixedEdges("physical distance", c.PhysEdges, c.LDBins); err != nil {
		return nil, err
	}
	if e.gen, err = fixedEdges("genetic distance", c.GenEdges, c.LDBins); err != nil {
		return nil, err
	}
	return e, nil
}

// fixedEdges returns the configured edges, or nil when they are to be
// derived from each population's data.
func fixedEdges(what string, bounds []float64, derivedBins int) (*binning.Edges, error) {
	if len(bounds) == 0 {
		if derivedBins <= 0 {
			return nil, ewrap.Wrapf(sentinel.ErrInvalidParameter, "%s: no edges given and ld bins is %d", what, derivedBins)
		}
		return nil, nil
	}
	e, err := binning.New(bounds)
	if err != nil {
		return nil, ewrap.Wrap(err, what)
	}
	return &e, nil
}

func (e *Engine) boot(src bootstrap.Source, fam Family, stat string) bootstrap.Config {
	return bootstrap.Config{
		Replicates: e.cfg.Replicates,
		Threads:    e.cfg.Threads,
		Source:     src.Derive(stat),
		Name:       string(fam) + "." + stat,
	}
}

func (e *Engine) source(fam Family, idx int) bootstrap.Source {
	return e.cfg.Source.Derive(fmt.Sprintf("%s/%d", fam, idx))
}

func scalar[S any](f func([]S) (float64, error)) bootstrap.Estimator[S] {
	return func(s []S) ([]float64, error) {
		v, err := f(s)
		if err != nil {
			return nil, err
		}
		return []float64{v}, nil
	}
}

// Freqs estimates π (resampling regions) and the SFS with its ancestral
// proportions (resampling sites) for population idx.
func (e *Engine) Freqs(ctx context.Context, idx int, regions []region.Region) (res Result, err error) {
	ctx, span := telemetry.Start(ctx, "engine.freqs", attribute.Int("population", idx))
	defer func() { telemetry.End(span, err) }()

	weighted, err := region.WeightedView(regions)
	if err != nil {
		return Result{}, ewrap.Wrapf(err, "freqs %d", idx)
	}
	sites, err := region.Sites(regions)
	if err != nil {
		return Result{}, ewrap.Wrapf(err, "freqs %d", idx)
	}

	src := e.source(Freqs, idx)
	pi, err := bootstrap.Run(ctx, e.boot(src, Freqs, "pi"), weighted, scalar(estimate.Diversity))
	if err != nil {
		return Result{}, ewrap.Wrapf(err, "freqs %d", idx)
	}

	// SFS and ancestral proportion share a resample of sites.
	edges := e.sfsEdges
	spec, err := bootstrap.Run(ctx, e.boot(src, Freqs, "sfs"), sites, func(s []region.SiteRecord) ([]float64, error) {
		sfs, anc, err := estimate.FreqSpectrum(s, edges)
		if err != nil {
			return nil, err
		}
		return append(sfs, anc...), nil
	})
	if err != nil {
		return Result{}, ewrap.Wrapf(err, "freqs %d", idx)
	}

	n := edges.Bins()
	return Result{
		Family:  Freqs,
		Index:   idx,
		Regions: len(regions),
		Units:   len(sites),
		Pi:      pi,
		SFS:     spec.Slice(0, n),
		Anc:     spec.Slice(n, 2*n),
	}, nil
}

// LD estimates r² decay over physical distance and D′ decay over genetic
// distance for population idx, resampling SNP pairs. When no pair carries
// a D′ value the D′ estimate is empty and r² is still reported.
func (e *Engine) LD(ctx context.Context, idx int, regions []region.Region) (res Result, err error) {
	ctx, span := telemetry.Start(ctx, "engine.ld", attribute.Int("population", idx))
	defer func() { telemetry.End(span, err) }()

	wrap := func(err error) error { return ewrap.Wrapf(err, "ld %d", idx) }

	pairs, err := region.Pairs(regions)
	if err != nil {
		return Result{}, wrap(err)
	}
	dpairs, err := region.DPrimePairs(regions)
	if err != nil && !errors.Is(err, sentinel.ErrEmptyPopulation) {
		return Result{}, wrap(err)
	}

	phys, err := e.edgesFor(e.phys, pairs, func(p region.SitePairRecord) float64 { return p.PhysDist })
	if err != nil {
		return Result{}, wrap(err)
	}

	src := e.source(LD, idx)
	r2, err := bootstrap.Run(ctx, e.boot(src, LD, "r2"), pairs, func(s []region.SitePairRecord) ([]float64, error) {
		return estimate.R2Decay(s, phys)
	})
	if err != nil {
		return Result{}, wrap(err)
	}

	res = Result{
		Family:    LD,
		Index:     idx,
		Regions:   len(regions),
		Units:     len(pairs),
		R2:        r2,
		DPrime:    bootstrap.Estimate{Mean: []float64{}, SE: []float64{}},
		PhysEdges: phys.Bounds(),
	}
	if len(dpairs) == 0 {
		span.SetAttributes(attribute.Bool("dprime.empty", true))
		return res, nil
	}

	gen, err := e.edgesFor(e.gen, dpairs, func(p region.SitePairRecord) float64 { return p.GenDist })
	if err != nil {
		return Result{}, wrap(err)
	}
	res.DPrime, err = bootstrap.Run(ctx, e.boot(src, LD, "dprime"), dpairs, func(s []region.SitePairRecord) ([]float64, error) {
		return estimate.DPrimeDecay(s, gen)
	})
	if err != nil {
		return Result{}, wrap(err)
	}
	res.GenEdges = gen.Bounds()
	return res, nil
}

// edgesFor returns fixed, or edges spanning the full (non-resampled) data.
func (e *Engine) edgesFor(fixed *binning.Edges, pairs []region.SitePairRecord, key func(region.SitePairRecord) float64) (binning.Edges, error) {
	if fixed != nil {
		return *fixed, nil
	}
	vals := make([]float64, len(pairs))
	for i, p := range pairs {
		vals[i] = key(p)
	}
	return binning.FromData(vals, e.cfg.LDBins)
}

// Fst estimates mean Fst for comparison idx, resampling SNPs.
func (e *Engine) Fst(ctx context.Context, idx int, regions []region.Region) (res Result, err error) {
	ctx, span := telemetry.Start(ctx, "engine.fst", attribute.Int("comparison", idx))
	defer func() { telemetry.End(span, err) }()

	vals, err := region.FstValues(regions)
	if err != nil {
		return Result{}, ewrap.Wrapf(err, "fst %d", idx)
	}
	fst, err := bootstrap.Run(ctx, e.boot(e.source(Fst, idx), Fst, "mean"), vals, scalar(estimate.FstMean))
	if err != nil {
		return Result{}, ewrap.Wrapf(err, "fst %d", idx)
	}
	return Result{
		Family:  Fst,
		Index:   idx,
		Regions: len(regions),
		Units:   len(vals),
		Fst:     fst,
	}, nil
}

// Compute dispatches to the method for fam.
func (e *Engine) Compute(ctx context.Context, fam Family, idx int, regions []region.Region) (Result, error) {
	switch fam {
	case Freqs:
		return e.Freqs(ctx, idx, regions)
	case LD:
		return e.LD(ctx, idx, regions)
	case Fst:
		return e.Fst(ctx, idx, regions)
	}
	return Result{}, ewrap.Wrapf(sentinel.ErrInvalidParameter, "unknown statistic family %q", fam)
}
