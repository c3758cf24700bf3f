package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/hyp3rd/ewrap"

	"popstats/internal/clibase"
	"popstats/internal/cliutil"
	"popstats/internal/sentinel"
)

// TargetStatsOptions holds the target-stats command's flags and arguments.
type TargetStatsOptions struct {
	clibase.Common

	Tpeds   []string
	Recom   string
	Regions string
	Out     string

	Freqs bool
	LD    bool
	Fst   bool
	Run   bool
}

// NewTargetStatsFlagSet registers the target-stats flags on a new FlagSet.
func NewTargetStatsFlagSet(o *TargetStatsOptions) *flag.FlagSet {
	fs := NewFlagSet("target-stats")
	clibase.Register(fs, &o.Common)
	fs.BoolVar(&o.Freqs, "freqs", false, "within-population allele frequency statistics")
	fs.BoolVar(&o.LD, "ld", false, "within-population linkage disequilibrium statistics")
	fs.BoolVar(&o.Fst, "fst", false, "between-population Fst for every pair")
	fs.BoolVar(&o.Run, "run", false, "execute the commands instead of printing them")

	clibase.UsageCommon(fs, "target-stats", "plan per-site calculations for each population", func(out io.Writer, _ func(string) string) {
		fmt.Fprintln(out, "Usage: popstats target-stats [flags] <tped,tped,...> <recom-map> <regions> <out-prefix>")
		fmt.Fprintln(out, "\nStatistics:")
		fmt.Fprintln(out, "      --freqs                 Allele frequency statistics per population")
		fmt.Fprintln(out, "      --ld                    Linkage disequilibrium statistics per population")
		fmt.Fprintln(out, "      --fst                   Fst for every population pair")
		fmt.Fprintln(out, "\nExecution:")
		fmt.Fprintln(out, "      --run                   Execute the commands (default: print them)")
	})
	return fs
}

// ParseTargetStats parses argv for the target-stats command.
func ParseTargetStats(fs *flag.FlagSet, o *TargetStatsOptions, argv []string) error {
	pos, err := parse(fs, &o.Common, argv)
	if err != nil {
		return err
	}
	if len(pos) != 4 {
		return ewrap.Wrapf(sentinel.ErrInvalidParameter, "want 4 arguments (tpeds recom regions out), got %d", len(pos))
	}
	o.Tpeds = cliutil.SplitList(pos[0])
	o.Recom, o.Regions, o.Out = pos[1], pos[2], pos[3]
	if len(o.Tpeds) == 0 {
		return ewrap.Wrap(sentinel.ErrInvalidParameter, "no tped files given")
	}
	if !o.Freqs && !o.LD && !o.Fst {
		return ewrap.Wrap(sentinel.ErrInvalidParameter, "select at least one of --freqs, --ld, --fst")
	}
	return nil
}
