// Package popfile reads the per-population measurement files into regions.
//
// Files are line-oriented: whitespace-separated fields, '#' comments and
// blank lines ignored, gzip accepted. An "R" line opens a region and the
// record lines that follow belong to it:
//
//	freqs:  R <length> <pi_numerator>   S <derived> <ancestral>
//	ld:     R <length>                  P <phys_dist> <r2> <gen_dist> <dprime|NA>
//	fst:    R <length>                  F <fst>
package popfile

import (
	"bufio"
	"math"
	"strconv"
	"strings"

	"github.com/hyp3rd/ewrap"

	"popstats/internal/region"
	"popstats/internal/sentinel"
)

// lineParser handles one non-region line; regions is never empty.
type lineParser func(f []string, regions []region.Region) error

type format struct {
	regionFields int
	records      map[string]lineParser
}

// ReadFreqs reads a frequency file.
func ReadFreqs(path string) ([]region.Region, error) {
	return read(path, format{
		regionFields: 3,
		records: map[string]lineParser{
			"S": func(f []string, rs []region.Region) error {
				if len(f) != 3 {
					return errFields
				}
				d, err := count(f[1])
				if err != nil {
					return err
				}
				a, err := count(f[2])
				if err != nil {
					return err
				}
				if d+a == 0 {
					return ewrap.New("site has no sampled chromosomes")
				}
				cur := &rs[len(rs)-1]
				cur.Sites = append(cur.Sites, region.SiteRecord{Derived: d, Ancestral: a, Region: len(rs) - 1})
				return nil
			},
		},
	})
}

// ReadLD reads an LD file. A D′ of "NA" marks a pair usable for r² only.
func ReadLD(path string) ([]region.Region, error) {
	return read(path, format{
		regionFields: 2,
		records: map[string]lineParser{
			"P": func(f []string, rs []region.Region) error {
				if len(f) != 5 {
					return errFields
				}
				var p region.SitePairRecord
				var err error
				if p.PhysDist, err = finite(f[1]); err != nil {
					return err
				}
				if p.R2, err = finite(f[2]); err != nil {
					return err
				}
				if p.GenDist, err = finite(f[3]); err != nil {
					return err
				}
				if f[4] != "NA" {
					if p.DPrime, err = finite(f[4]); err != nil {
						return err
					}
					p.HasDPrime = true
				}
				p.Region = len(rs) - 1
				cur := &rs[len(rs)-1]
				cur.Pairs = append(cur.Pairs, p)
				return nil
			},
		},
	})
}

// ReadFst reads a per-SNP Fst file for one population pair.
func ReadFst(path string) ([]region.Region, error) {
	return read(path, format{
		regionFields: 2,
		records: map[string]lineParser{
			"F": func(f []string, rs []region.Region) error {
				if len(f) != 2 {
					return errFields
				}
				v, err := finite(f[1])
				if err != nil {
					return err
				}
				cur := &rs[len(rs)-1]
				cur.Fst = append(cur.Fst, region.FstRecord{Value: v, Region: len(rs) - 1})
				return nil
			},
		},
	})
}

var errFields = ewrap.New("bad field count")

func read(path string, fm format) ([]region.Region, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var regions []region.Region
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 64<<10), 1<<20)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if f[0] == "R" {
			r, err := parseRegion(f, fm.regionFields)
			if err != nil {
				return nil, ewrap.Wrapf(sentinel.ErrBadInput, "%s:%d %v", path, ln, err)
			}
			regions = append(regions, r)
			continue
		}
		parse, ok := fm.records[f[0]]
		if !ok {
			return nil, ewrap.Wrapf(sentinel.ErrBadInput, "%s:%d unknown record %q", path, ln, f[0])
		}
		if len(regions) == 0 {
			return nil, ewrap.Wrapf(sentinel.ErrBadInput, "%s:%d %s record before the first region", path, ln, f[0])
		}
		if err := parse(f, regions); err != nil {
			return nil, ewrap.Wrapf(sentinel.ErrBadInput, "%s:%d %v", path, ln, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, ewrap.Wrapf(sentinel.ErrBadInput, "%s: %v", path, err)
	}
	return regions, nil
}

func parseRegion(f []string, want int) (region.Region, error) {
	if len(f) != want {
		return region.Region{}, errFields
	}
	n, err := strconv.Atoi(f[1])
	if err != nil || n <= 0 {
		return region.Region{}, ewrap.Wrapf(errBadNumber, "region length %q", f[1])
	}
	r := region.Region{Length: n}
	if want == 3 {
		if r.PiNumerator, err = finite(f[2]); err != nil {
			return region.Region{}, err
		}
		if r.PiNumerator < 0 {
			return region.Region{}, ewrap.Wrapf(errBadNumber, "negative diversity numerator %q", f[2])
		}
	}
	return r, nil
}

var errBadNumber = ewrap.New("bad number")

func count(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, ewrap.Wrapf(errBadNumber, "allele count %q", s)
	}
	return n, nil
}

func finite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ewrap.Wrapf(errBadNumber, "%q", s)
	}
	return v, nil
}
