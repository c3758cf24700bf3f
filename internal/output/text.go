package output

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"popstats/internal/engine"
)

// FormatFloat renders v in shortest round-trip form; NaN is "nan".
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatVector renders xs as "[a, b, c]".
func FormatVector(xs []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range xs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(FormatFloat(x))
	}
	b.WriteByte(']')
	return b.String()
}

// TextLines returns the report lines for one result:
//
//	freqs: index, "pi\tse", sfs mean, sfs se, anc mean, anc se
//	ld:    index, r2 mean, r2 se, dprime mean, dprime se
//	fst:   "index\tmean\tse"
func TextLines(r engine.Result) []string {
	idx := strconv.Itoa(r.Index)
	switch r.Family {
	case engine.Freqs:
		pi, se := r.Pi.Scalar()
		return []string{
			idx,
			FormatFloat(pi) + "\t" + FormatFloat(se),
			FormatVector(r.SFS.Mean),
			FormatVector(r.SFS.SE),
			FormatVector(r.Anc.Mean),
			FormatVector(r.Anc.SE),
		}
	case engine.LD:
		return []string{
			idx,
			FormatVector(r.R2.Mean),
			FormatVector(r.R2.SE),
			FormatVector(r.DPrime.Mean),
			FormatVector(r.DPrime.SE),
		}
	case engine.Fst:
		m, se := r.Fst.Scalar()
		return []string{idx + "\t" + FormatFloat(m) + "\t" + FormatFloat(se)}
	}
	return nil
}

// StreamText writes each result as it arrives. Lines are appended only.
func StreamText(w io.Writer, in <-chan engine.Result) error {
	bw := bufio.NewWriter(w)
	for r := range in {
		for _, line := range TextLines(r) {
			if _, err := bw.WriteString(line + "\n"); err != nil {
				drain(in)
				return err
			}
		}
	}
	return bw.Flush()
}

func drain(in <-chan engine.Result) {
	for range in {
	}
}
