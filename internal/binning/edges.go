// Package binning holds fixed histogram bin boundaries and per-bin
// accumulators. Edges are built once, before any estimation, and are
// never re-derived from resampled data.
package binning

import (
	"math"
	"slices"
	"sort"

	"github.com/hyp3rd/ewrap"

	"popstats/internal/sentinel"
)

// Edges are ordered bin boundaries b0 < b1 < ... < bn defining n bins
// [b_i, b_i+1). When closed, the last bin also includes bn.
type Edges struct {
	bounds []float64
	closed bool
}

// New builds half-open edges from explicit boundaries.
func New(bounds []float64) (Edges, error) {
	if len(bounds) < 2 {
		return Edges{}, ewrap.Wrapf(sentinel.ErrInvalidParameter, "need at least 2 bin edges, got %d", len(bounds))
	}
	for i, b := range bounds {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return Edges{}, ewrap.Wrapf(sentinel.ErrInvalidParameter, "bin edge %d is not finite", i)
		}
		if i > 0 && b <= bounds[i-1] {
			return Edges{}, ewrap.Wrapf(sentinel.ErrInvalidParameter, "bin edges must increase (edge %d)", i)
		}
	}
	return Edges{bounds: slices.Clone(bounds)}, nil
}

// Uniform builds n equal-width bins over [lo, hi].
func Uniform(n int, lo, hi float64) (Edges, error) {
	if n <= 0 {
		return Edges{}, ewrap.Wrapf(sentinel.ErrInvalidParameter, "bin count must be > 0, got %d", n)
	}
	if !(hi > lo) {
		return Edges{}, ewrap.Wrapf(sentinel.ErrInvalidParameter, "empty bin range [%g, %g]", lo, hi)
	}
	// Edge i is lo + (hi-lo)*i/n, so a frequency k/m equal to i/n sits
	// exactly on it (3/10 and 6/20 both hit 0.3).
	b := make([]float64, n+1)
	for i := range b {
		b[i] = lo + (hi-lo)*float64(i)/float64(n)
	}
	b[n] = hi
	return Edges{bounds: b, closed: true}, nil
}

// FromData builds n equal-width bins spanning the observed values. It must
// be called on the full dataset, never on a bootstrap replicate.
func FromData(values []float64, n int) (Edges, error) {
	if len(values) == 0 {
		return Edges{}, ewrap.Wrap(sentinel.ErrEmptyPopulation, "no values to derive bin edges from")
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return Uniform(n, lo, hi)
}

// Bins returns the number of bins.
func (e Edges) Bins() int {
	if len(e.bounds) == 0 {
		return 0
	}
	return len(e.bounds) - 1
}

// Bounds returns a copy of the boundaries.
func (e Edges) Bounds() []float64 { return slices.Clone(e.bounds) }

// Locate returns the bin holding x, or false when x is outside the edges.
func (e Edges) Locate(x float64) (int, bool) {
	n := e.Bins()
	if n == 0 || math.IsNaN(x) || x < e.bounds[0] {
		return 0, false
	}
	last := e.bounds[n]
	if x >= last {
		if x == last && e.closed {
			return n - 1, true
		}
		return 0, false
	}
	i := sort.SearchFloat64s(e.bounds, x)
	if e.bounds[i] == x {
		return i, true
	}
	return i - 1, true
}
