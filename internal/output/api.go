package output

import (
	"math"

	"popstats/internal/bootstrap"
	"popstats/internal/engine"
	"popstats/pkg/api"
)

// ToAPIRecord converts a domain Result to the stable wire schema (v1).
func ToAPIRecord(r engine.Result) api.RecordV1 {
	v := api.RecordV1{
		Section: string(r.Family),
		Index:   r.Index,
		Source:  r.Source,
		Regions: r.Regions,
		Units:   r.Units,
	}
	switch r.Family {
	case engine.Freqs:
		v.Pi = toAPIEstimate(r.Pi)
		v.SFS = toAPIEstimate(r.SFS)
		v.Anc = toAPIEstimate(r.Anc)
	case engine.LD:
		v.R2 = toAPIEstimate(r.R2)
		v.DPrime = toAPIEstimate(r.DPrime)
		v.PhysEdges = append([]float64(nil), r.PhysEdges...)
		v.GenEdges = append([]float64(nil), r.GenEdges...)
	case engine.Fst:
		v.Fst = toAPIEstimate(r.Fst)
	}
	return v
}

// ToAPIReport wraps results, already in report order, with run metadata.
func ToAPIReport(info RunInfo, list []engine.Result) api.ReportV1 {
	rep := api.ReportV1{
		RunID:      info.RunID,
		Replicates: info.Replicates,
		Seed:       info.Seed,
		Records:    make([]api.RecordV1, 0, len(list)),
	}
	for _, r := range list {
		rep.Records = append(rep.Records, ToAPIRecord(r))
	}
	return rep
}

func toAPIEstimate(e bootstrap.Estimate) *api.EstimateV1 {
	return &api.EstimateV1{Mean: nullable(e.Mean), SE: nullable(e.SE)}
}

// nullable maps NaN to nil; JSON has no NaN.
func nullable(xs []float64) []*float64 {
	out := make([]*float64, len(xs))
	for i, x := range xs {
		if !math.IsNaN(x) {
			out[i] = &x
		}
	}
	return out
}
