package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/hyp3rd/ewrap"

	"popstats/internal/clibase"
	"popstats/internal/sentinel"
)

// PointOptions holds the point command's flags and arguments.
type PointOptions struct {
	clibase.Common

	ParamFile string
	Reps      int
	OutputDir string

	CosiBuild           string
	DropSings           float64
	HasDropSings        bool
	GenmapRandomRegions bool
	StopAfterMinutes    int
	Run                 bool
}

// NewPointFlagSet registers the point flags on a new FlagSet.
func NewPointFlagSet(o *PointOptions) *flag.FlagSet {
	fs := NewFlagSet("point")
	clibase.Register(fs, &o.Common)
	fs.StringVar(&o.CosiBuild, "cosi-build", "coalescent", "coalescent simulator binary")
	fs.Float64Var(&o.DropSings, "drop-sings", 0, "randomly thin global singletons at this rate")
	fs.BoolVar(&o.GenmapRandomRegions, "genmap-random-regions", false, "sub-sample the genetic map randomly")
	fs.IntVar(&o.StopAfterMinutes, "stop-after-minutes", 0, "stop simulating after this many minutes (0=never)")
	fs.BoolVar(&o.Run, "run", false, "execute the simulator instead of printing the command")

	clibase.UsageCommon(fs, "point", "simulate one point in parameter space", func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage: popstats point [flags] <param-file> <n-reps> <output-dir>")
		fmt.Fprintln(out, "\nWrites <output-dir>/n<n-reps>stats.txt.")
		fmt.Fprintln(out, "\nSimulator:")
		fmt.Fprintf(out, "      --cosi-build path       Coalescent simulator binary [%s]\n", def("cosi-build"))
		fmt.Fprintln(out, "      --drop-sings float      Randomly thin global singletons at this rate")
		fmt.Fprintln(out, "      --genmap-random-regions Sub-sample the genetic map randomly")
		fmt.Fprintln(out, "      --stop-after-minutes n  Stop simulating after n minutes")
		fmt.Fprintln(out, "      --run                   Execute the simulator (default: print the command)")
	})
	return fs
}

// ParsePoint parses argv for the point command.
func ParsePoint(fs *flag.FlagSet, o *PointOptions, argv []string) error {
	pos, err := parse(fs, &o.Common, argv)
	if err != nil {
		return err
	}
	if len(pos) != 3 {
		return ewrap.Wrapf(sentinel.ErrInvalidParameter, "want 3 arguments (param-file n-reps output-dir), got %d", len(pos))
	}
	o.ParamFile, o.OutputDir = pos[0], pos[2]
	if o.Reps, err = strconv.Atoi(pos[1]); err != nil || o.Reps <= 0 {
		return ewrap.Wrapf(sentinel.ErrInvalidParameter, "n-reps must be a positive integer, got %q", pos[1])
	}
	o.HasDropSings = clibase.Visited(fs)["drop-sings"]
	if o.HasDropSings && (o.DropSings < 0 || o.DropSings > 1) {
		return ewrap.Wrapf(sentinel.ErrInvalidParameter, "--drop-sings must be in [0, 1], got %g", o.DropSings)
	}
	if o.StopAfterMinutes < 0 {
		return ewrap.Wrap(sentinel.ErrInvalidParameter, "--stop-after-minutes must be ≥ 0")
	}
	return nil
}
