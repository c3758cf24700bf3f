package region

import (
	"github.com/hyp3rd/ewrap"

	"popstats/internal/sentinel"
)

// WeightedView returns one (π numerator, length) entry per region, in input order.
func WeightedView(regions []Region) ([]Weighted, error) {
	if len(regions) == 0 {
		return nil, ewrap.Wrap(sentinel.ErrEmptyPopulation, "no regions")
	}
	out := make([]Weighted, len(regions))
	for i, r := range regions {
		out[i] = Weighted{Value: r.PiNumerator, Length: r.Length}
	}
	return out, nil
}

// Sites concatenates the site records of all regions.
func Sites(regions []Region) ([]SiteRecord, error) {
	return flatten(regions, "sites", func(r Region) []SiteRecord { return r.Sites })
}

// Pairs concatenates the SNP-pair records of all regions.
func Pairs(regions []Region) ([]SitePairRecord, error) {
	return flatten(regions, "site pairs", func(r Region) []SitePairRecord { return r.Pairs })
}

// DPrimePairs concatenates the SNP-pair records that carry a D′ value.
func DPrimePairs(regions []Region) ([]SitePairRecord, error) {
	return flatten(regions, "D' site pairs", func(r Region) []SitePairRecord {
		var keep []SitePairRecord
		for _, p := range r.Pairs {
			if p.HasDPrime {
				keep = append(keep, p)
			}
		}
		return keep
	})
}

// FstValues concatenates the Fst records of all regions.
func FstValues(regions []Region) ([]FstRecord, error) {
	return flatten(regions, "Fst values", func(r Region) []FstRecord { return r.Fst })
}

func flatten[T any](regions []Region, what string, pick func(Region) []T) ([]T, error) {
	if len(regions) == 0 {
		return nil, ewrap.Wrap(sentinel.ErrEmptyPopulation, "no regions")
	}
	n := 0
	for _, r := range regions {
		n += len(pick(r))
	}
	if n == 0 {
		return nil, ewrap.Wrap(sentinel.ErrEmptyPopulation, "no "+what)
	}
	out := make([]T, 0, n)
	for _, r := range regions {
		out = append(out, pick(r)...)
	}
	return out, nil
}
