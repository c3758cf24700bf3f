// Package region models the neutral genomic regions that measurements are
// collected over, and flattens them into the views the estimators resample.
package region

// Region is one contiguous neutral interval. Regions are read-only once
// built by the file reader.
type Region struct {
	Length      int     // sequence length in bp
	PiNumerator float64 // summed pairwise differences over the region
	Sites       []SiteRecord
	Pairs       []SitePairRecord
	Fst         []FstRecord
}

// SiteRecord is one SNP's allele counts.
type SiteRecord struct {
	Derived   int
	Ancestral int
	Region    int // index of the owning region
}

// Total returns the number of sampled chromosomes at the site.
func (s SiteRecord) Total() int { return s.Derived + s.Ancestral }

// Frequency returns the derived-allele frequency.
func (s SiteRecord) Frequency() float64 {
	return float64(s.Derived) / float64(s.Total())
}

// SitePairRecord is one SNP pair's linkage measurements.
// HasDPrime is false when the input carried no D′ for the pair.
type SitePairRecord struct {
	R2        float64
	PhysDist  float64
	DPrime    float64
	GenDist   float64
	HasDPrime bool
	Region    int
}

// FstRecord is one SNP's Fst for a population pair.
type FstRecord struct {
	Value  float64
	Region int
}

// Weighted is one region in the region-weighted view.
type Weighted struct {
	Value  float64
	Length int
}
