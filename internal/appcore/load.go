package appcore

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"popstats/internal/engine"
	"popstats/internal/pipeline"
	"popstats/internal/popfile"
	"popstats/internal/region"
)

var readers = map[engine.Family]func(string) ([]region.Region, error){
	engine.Freqs: popfile.ReadFreqs,
	engine.LD:    popfile.ReadLD,
	engine.Fst:   popfile.ReadFst,
}

var describe = map[engine.Family]string{
	engine.Freqs: "allele frequency statistics",
	engine.LD:    "linkage disequilibrium statistics",
	engine.Fst:   "population differentiation statistics",
}

// Inputs lists the input files per family, in population (or pair) order.
type Inputs map[engine.Family][]string

func (in Inputs) count() int {
	n := 0
	for _, fam := range engine.Families {
		n += len(in[fam])
	}
	return n
}

// load reads every input file before any estimation starts and returns the
// jobs in report order: freqs, then ld, then fst, each by index.
func load(ctx context.Context, in Inputs, threads int, log *slog.Logger) ([]pipeline.Job, error) {
	var jobs []pipeline.Job
	for _, fam := range engine.Families {
		for i, path := range in[fam] {
			jobs = append(jobs, pipeline.Job{Family: fam, Index: i, Source: path})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(threads, 1))
	for k := range jobs {
		j := &jobs[k]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log.Info("reading "+describe[j.Family], slog.String("file", j.Source), slog.Int("index", j.Index))
			regions, err := readers[j.Family](j.Source)
			if err != nil {
				return err
			}
			j.Regions = regions
			log.Debug("loaded", slog.String("file", j.Source), slog.Int("regions", len(regions)), slog.Int("records", records(regions)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return jobs, nil
}

func records(rs []region.Region) int {
	n := 0
	for _, r := range rs {
		n += len(r.Sites) + len(r.Pairs) + len(r.Fst)
	}
	return n
}
