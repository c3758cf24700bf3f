package estimate

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/hyp3rd/ewrap"

	"popstats/internal/binning"
	"popstats/internal/region"
	"popstats/internal/sentinel"
)

// Undefined marks a bin whose ancestral proportion has no observations.
var Undefined = math.NaN()

// IsUndefined reports whether v is the Undefined marker.
func IsUndefined(v float64) bool { return math.IsNaN(v) }

// Diversity returns Σ numerator / Σ length over the sampled regions.
func Diversity(sample []region.Weighted) (float64, error) {
	if len(sample) == 0 {
		return 0, ewrap.Wrap(sentinel.ErrEmptyPopulation, "diversity")
	}
	var num float64
	var length int
	for _, w := range sample {
		num += w.Value
		length += w.Length
	}
	if length == 0 {
		return 0, ewrap.Wrap(sentinel.ErrZeroLength, "diversity")
	}
	return num / float64(length), nil
}

// FreqSpectrum bins sites by derived-allele frequency. sfs[b] is the share
// of sampled sites in bin b; anc[b] is Σ ancestral / Σ total allele counts
// in bin b, or Undefined when the bin is empty.
func FreqSpectrum(sample []region.SiteRecord, e binning.Edges) (sfs, anc []float64, err error) {
	if len(sample) == 0 {
		return nil, nil, ewrap.Wrap(sentinel.ErrEmptyPopulation, "frequency spectrum")
	}
	n := e.Bins()
	if n == 0 {
		return nil, nil, ewrap.Wrap(sentinel.ErrInvalidParameter, "frequency spectrum has no bins")
	}
	count := make([]int, n)
	ancSum := make([]int, n)
	totSum := make([]int, n)
	binned := 0
	for _, s := range sample {
		if s.Total() <= 0 {
			return nil, nil, ewrap.Wrap(sentinel.ErrBadInput, "site with no sampled alleles")
		}
		b, ok := e.Locate(s.Frequency())
		if !ok {
			continue
		}
		count[b]++
		ancSum[b] += s.Ancestral
		totSum[b] += s.Total()
		binned++
	}
	if binned == 0 {
		return nil, nil, ewrap.Wrap(sentinel.ErrEmptyPopulation, "no sites inside the frequency bins")
	}

	sfs = make([]float64, n)
	anc = make([]float64, n)
	for b := range n {
		sfs[b] = float64(count[b]) / float64(binned)
		if totSum[b] == 0 {
			anc[b] = Undefined
			continue
		}
		anc[b] = float64(ancSum[b]) / float64(totSum[b])
	}
	return sfs, anc, nil
}

// R2Decay returns mean r² per physical-distance bin.
func R2Decay(sample []region.SitePairRecord, e binning.Edges) ([]float64, error) {
	return decay(sample, e, "r2 decay", func(p region.SitePairRecord) (float64, float64, bool) {
		return p.PhysDist, p.R2, true
	})
}

// DPrimeDecay returns mean D′ per genetic-distance bin. Pairs without a D′
// value are skipped.
func DPrimeDecay(sample []region.SitePairRecord, e binning.Edges) ([]float64, error) {
	return decay(sample, e, "D' decay", func(p region.SitePairRecord) (float64, float64, bool) {
		return p.GenDist, p.DPrime, p.HasDPrime
	})
}

// decay averages values per distance bin, with a pseudo-count of 1 for
// empty bins so every replicate yields a defined vector.
func decay(sample []region.SitePairRecord, e binning.Edges, what string, pick func(region.SitePairRecord) (key, v float64, ok bool)) ([]float64, error) {
	if len(sample) == 0 {
		return nil, ewrap.Wrap(sentinel.ErrEmptyPopulation, what)
	}
	if e.Bins() == 0 {
		return nil, ewrap.Wrap(sentinel.ErrInvalidParameter, what+" has no bins")
	}
	h := binning.NewHistogram(e)
	for _, p := range sample {
		if key, v, ok := pick(p); ok {
			h.Observe(e, key, v)
		}
	}
	return h.PseudoCountMeans(), nil
}

// FstMean returns the mean Fst of the sample.
func FstMean(sample []region.FstRecord) (float64, error) {
	if len(sample) == 0 {
		return 0, ewrap.Wrap(sentinel.ErrEmptyPopulation, "fst")
	}
	xs := make([]float64, len(sample))
	for i, f := range sample {
		xs[i] = f.Value
	}
	return stats.Mean(xs), nil
}
