package engine

import "popstats/internal/bootstrap"

// Family names a group of statistics computed from one input file.
type Family string

const (
	Freqs Family = "freqs" // π, SFS, ancestral proportion
	LD    Family = "ld"    // r² and D′ decay
	Fst   Family = "fst"   // mean Fst of a population pair
)

// Families lists the families in report order.
var Families = []Family{Freqs, LD, Fst}

// Result holds one population's (or pair's) estimates for a family.
// Only the estimates belonging to Family are set.
type Result struct {
	Family  Family
	Index   int    // population index; comparison index for Fst
	Source  string // input file the regions came from
	Regions int
	Units   int // resampled records (sites, pairs or Fst values)

	Pi  bootstrap.Estimate
	SFS bootstrap.Estimate
	Anc bootstrap.Estimate

	R2        bootstrap.Estimate
	DPrime    bootstrap.Estimate
	PhysEdges []float64
	GenEdges  []float64

	Fst bootstrap.Estimate
}
