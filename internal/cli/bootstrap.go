package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/hyp3rd/ewrap"

	"popstats/internal/clibase"
	"popstats/internal/cliutil"
	"popstats/internal/config"
	"popstats/internal/sentinel"
)

// BootstrapOptions holds the bootstrap command's flags and arguments.
type BootstrapOptions struct {
	clibase.Common

	Replicates int
	InFreqs    cliutil.List
	InLD       cliutil.List
	InFst      cliutil.List

	SFSBins   int
	LDBins    int
	PhysEdges cliutil.Floats
	GenEdges  cliutil.Floats
	Seed      int64
	Format    string
	Trace     string
	Out       string // report path prefix

	set map[string]bool
}

// NewBootstrapFlagSet registers the bootstrap flags on a new FlagSet.
func NewBootstrapFlagSet(o *BootstrapOptions) *flag.FlagSet {
	fs := NewFlagSet("bootstrap")
	clibase.Register(fs, &o.Common)

	fs.IntVar(&o.Replicates, "replicates", 0, "bootstrap replicates per statistic [*]")
	fs.IntVar(&o.Replicates, "n", 0, "alias of --replicates")
	fs.Var(&o.InFreqs, "in-freqs", "frequency file per population (comma list, repeatable)")
	fs.Var(&o.InLD, "in-ld", "LD file per population (comma list, repeatable)")
	fs.Var(&o.InFst, "in-fst", "Fst file per population pair (comma list, repeatable)")

	d := config.Default()
	fs.IntVar(&o.SFSBins, "sfs-bins", d.SFSBins, "frequency spectrum bins")
	fs.IntVar(&o.LDBins, "ld-bins", d.LDBins, "LD distance bins when edges are not given")
	fs.Var(&o.PhysEdges, "phys-edges", "r² physical distance bin edges (comma list)")
	fs.Var(&o.GenEdges, "gen-edges", "D′ genetic distance bin edges (comma list)")
	fs.Int64Var(&o.Seed, "seed", d.Seed, "random seed (<0 = fresh seed)")
	fs.StringVar(&o.Format, "format", d.Format, "report format: text | json | jsonl | msgpack")
	fs.StringVar(&o.Format, "f", d.Format, "alias of --format")
	fs.StringVar(&o.Trace, "trace", "", "write tracing spans as JSON lines to file (- = stderr)")
	fs.StringVar(&o.Out, "out", "", "report path prefix")
	fs.StringVar(&o.Out, "o", "", "alias of --out")

	clibase.UsageCommon(fs, "bootstrap", "bootstrap standard errors of population summary statistics", func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage: popstats bootstrap [flags] [<replicates>] <out-prefix>")
		fmt.Fprintln(out, "\nWrites <out-prefix>_bootstrap_n<replicates>.<ext>.")
		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "      --in-freqs files        Frequency file per population (comma list, repeatable)")
		fmt.Fprintln(out, "      --in-ld files           LD file per population (comma list, repeatable)")
		fmt.Fprintln(out, "      --in-fst files          Fst file per population pair (comma list, repeatable)")
		fmt.Fprintln(out, "\nEstimation:")
		fmt.Fprintln(out, "  -n, --replicates int        Bootstrap replicates per statistic [*]")
		fmt.Fprintf(out, "      --sfs-bins int          Frequency spectrum bins [%s]\n", def("sfs-bins"))
		fmt.Fprintf(out, "      --ld-bins int           LD distance bins when edges are not given [%s]\n", def("ld-bins"))
		fmt.Fprintln(out, "      --phys-edges list       r² physical distance bin edges")
		fmt.Fprintln(out, "      --gen-edges list        D′ genetic distance bin edges")
		fmt.Fprintf(out, "      --seed int              Random seed (<0 = fresh seed) [%s]\n", def("seed"))
		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -f, --format string         text | json | jsonl | msgpack [%s]\n", def("format"))
		fmt.Fprintln(out, "  -o, --out prefix            Report path prefix")
		fmt.Fprintln(out, "      --trace file            Write tracing spans as JSON lines (- = stderr)")
	})
	return fs
}

// ParseBootstrap parses argv for the bootstrap command. Positionals are
// "[<replicates>] <out-prefix>".
func ParseBootstrap(fs *flag.FlagSet, o *BootstrapOptions, argv []string) error {
	pos, err := parse(fs, &o.Common, argv)
	if err != nil {
		return err
	}
	o.set = clibase.Visited(fs)

	switch len(pos) {
	case 0:
	case 1:
		o.Out = pos[0]
	case 2:
		n, err := strconv.Atoi(pos[0])
		if err != nil {
			return ewrap.Wrapf(sentinel.ErrInvalidParameter, "replicates %q is not an integer", pos[0])
		}
		o.Replicates = n
		o.set["replicates"] = true
		o.Out = pos[1]
	default:
		return ewrap.Wrapf(sentinel.ErrInvalidParameter, "unexpected arguments %v", pos[2:])
	}

	if o.Out == "" {
		return ewrap.Wrap(sentinel.ErrInvalidParameter, "an output prefix is required (--out or positional)")
	}
	if len(o.InFreqs)+len(o.InLD)+len(o.InFst) == 0 {
		return ewrap.Wrap(sentinel.ErrInvalidParameter, "provide at least one of --in-freqs, --in-ld, --in-fst")
	}
	for _, l := range []*cliutil.List{&o.InFreqs, &o.InLD, &o.InFst} {
		exp, err := cliutil.ExpandPaths(*l)
		if err != nil {
			return err
		}
		*l = exp
	}
	return nil
}

// Apply overrides cfg with the flags set on the command line.
func (o *BootstrapOptions) Apply(cfg *config.Config) {
	if o.set["replicates"] {
		cfg.Replicates = o.Replicates
	}
	if o.set["sfs-bins"] {
		cfg.SFSBins = o.SFSBins
	}
	if o.set["ld-bins"] {
		cfg.LDBins = o.LDBins
	}
	if o.set["phys-edges"] {
		cfg.PhysEdges = o.PhysEdges
	}
	if o.set["gen-edges"] {
		cfg.GenEdges = o.GenEdges
	}
	if o.set["seed"] {
		cfg.Seed = o.Seed
	}
	if o.set["format"] {
		cfg.Format = o.Format
	}
	if o.set["trace"] {
		cfg.Trace = o.Trace
	}
	if o.set["threads"] {
		cfg.Threads = o.Threads
	}
	if o.set["log-level"] {
		cfg.Logging.Level = o.LogLevel
	}
	if o.set["quiet"] {
		cfg.Logging.Quiet = o.Quiet
	}
}
