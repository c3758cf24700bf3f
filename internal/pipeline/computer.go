package pipeline

import (
	"context"

	"popstats/internal/engine"
	"popstats/internal/region"
)

// Computer is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Computer interface {
	Compute(ctx context.Context, fam engine.Family, idx int, regions []region.Region) (engine.Result, error)
}

// Job is one population's (or pair's) already-loaded input for a family.
type Job struct {
	Family  engine.Family
	Index   int
	Source  string
	Regions []region.Region
}
