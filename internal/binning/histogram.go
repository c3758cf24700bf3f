package binning

// Histogram accumulates a numerator and an observation count per bin.
type Histogram struct {
	Sum   []float64
	Count []int
}

// NewHistogram returns an empty histogram over e.
func NewHistogram(e Edges) Histogram {
	n := e.Bins()
	return Histogram{Sum: make([]float64, n), Count: make([]int, n)}
}

// Observe adds v to the bin holding key. Keys outside the edges are ignored;
// the return value reports whether the observation was binned.
func (h *Histogram) Observe(e Edges, key, v float64) bool {
	b, ok := e.Locate(key)
	if !ok {
		return false
	}
	h.Sum[b] += v
	h.Count[b]++
	return true
}

// PseudoCountMeans returns Sum/Count per bin, with an empty bin's count
// replaced by 1. An empty bin therefore reads 0.
func (h Histogram) PseudoCountMeans() []float64 {
	out := make([]float64, len(h.Sum))
	for i, s := range h.Sum {
		d := h.Count[i]
		if d == 0 {
			d = 1
		}
		out[i] = s / float64(d)
	}
	return out
}
