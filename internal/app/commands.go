package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/hyp3rd/ewrap"

	"popstats/internal/appcore"
	"popstats/internal/cli"
	"popstats/internal/clibase"
	"popstats/internal/config"
	"popstats/internal/engine"
	"popstats/internal/logging"
	"popstats/internal/runplan"
	"popstats/internal/writers"
)

func usageOf(fs *flag.FlagSet) func(io.Writer) {
	return func(w io.Writer) {
		fs.SetOutput(w)
		fs.Usage()
	}
}

func bootstrapUsage(w io.Writer) {
	var o cli.BootstrapOptions
	usageOf(cli.NewBootstrapFlagSet(&o))(w)
}

func targetStatsUsage(w io.Writer) {
	var o cli.TargetStatsOptions
	usageOf(cli.NewTargetStatsFlagSet(&o))(w)
}

func pointUsage(w io.Writer) {
	var o cli.PointOptions
	usageOf(cli.NewPointFlagSet(&o))(w)
}

// fail reports err and maps it to an exit code.
func fail(log *slog.Logger, stderr io.Writer, err error) int {
	if log != nil {
		log.Error("failed", slog.Any("error", err))
	} else {
		_, _ = fmt.Fprintln(stderr, "error:", err)
	}
	return appcore.ExitCode(err)
}

// sharedLogger builds the logger of a command that only takes the shared
// flags: settings file and environment first, then the command line.
func sharedLogger(c clibase.Common, set map[string]bool, stderr io.Writer) (*slog.Logger, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if set["log-level"] {
		cfg.Logging.Level = c.LogLevel
	}
	if set["quiet"] {
		cfg.Logging.Quiet = c.Quiet
	}
	return logging.New(stderr, cfg.Logging.Level, cfg.Logging.Quiet)
}

func threadsOr(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

func runBootstrap(ctx context.Context, argv []string, outw, stderr io.Writer) int {
	var o cli.BootstrapOptions
	fs := cli.NewBootstrapFlagSet(&o)
	if err := cli.ParseBootstrap(fs, &o, argv); err != nil {
		return parseFailed(fs, err, outw, stderr)
	}

	cfg, err := config.Load(o.Config)
	if err != nil {
		return fail(nil, stderr, err)
	}
	o.Apply(&cfg)
	if err := cfg.Validate(writers.Formats()); err != nil {
		return fail(nil, stderr, err)
	}
	log, err := logging.New(stderr, cfg.Logging.Level, cfg.Logging.Quiet)
	if err != nil {
		return fail(nil, stderr, err)
	}

	path, err := appcore.Run(ctx, appcore.Options{
		Config: cfg,
		Inputs: appcore.Inputs{
			engine.Freqs: o.InFreqs,
			engine.LD:    o.InLD,
			engine.Fst:   o.InFst,
		},
		Out: o.Out,
		Log: log,
	})
	if err != nil {
		return fail(log, stderr, err)
	}
	_, _ = fmt.Fprintln(outw, path)
	return appcore.ExitOK
}

func runTargetStats(ctx context.Context, argv []string, outw, stderr io.Writer) int {
	var o cli.TargetStatsOptions
	fs := cli.NewTargetStatsFlagSet(&o)
	if err := cli.ParseTargetStats(fs, &o, argv); err != nil {
		return parseFailed(fs, err, outw, stderr)
	}
	log, err := sharedLogger(o.Common, clibase.Visited(fs), stderr)
	if err != nil {
		return fail(nil, stderr, err)
	}

	plan := runplan.TargetStats{
		Tpeds:   o.Tpeds,
		Recom:   o.Recom,
		Regions: o.Regions,
		Out:     o.Out,
		Freqs:   o.Freqs,
		LD:      o.LD,
		Fst:     o.Fst,
	}
	cmds := plan.Commands()
	log.Info("planned summary statistic calculations",
		slog.Int("populations", len(o.Tpeds)),
		slog.Int("commands", len(cmds)))

	if !o.Run {
		for _, c := range cmds {
			_, _ = fmt.Fprintln(outw, c.String())
		}
		return appcore.ExitOK
	}
	r := runplan.Runner{Threads: threadsOr(o.Threads), Stderr: stderr, Log: log}
	if err := r.Run(ctx, cmds); err != nil {
		return fail(log, stderr, err)
	}
	return appcore.ExitOK
}

func runPoint(ctx context.Context, argv []string, outw, stderr io.Writer) int {
	var o cli.PointOptions
	fs := cli.NewPointFlagSet(&o)
	if err := cli.ParsePoint(fs, &o, argv); err != nil {
		return parseFailed(fs, err, outw, stderr)
	}
	log, err := sharedLogger(o.Common, clibase.Visited(fs), stderr)
	if err != nil {
		return fail(nil, stderr, err)
	}

	p := runplan.Point{
		Simulator:           o.CosiBuild,
		ParamFile:           o.ParamFile,
		Reps:                o.Reps,
		OutputDir:           o.OutputDir,
		GenmapRandomRegions: o.GenmapRandomRegions,
		StopAfterMinutes:    o.StopAfterMinutes,
	}
	if o.HasDropSings {
		p.DropSings = &o.DropSings
	}
	cmd := p.Command()

	if !o.Run {
		_, _ = fmt.Fprintln(outw, cmd.String())
		return appcore.ExitOK
	}
	if err := os.MkdirAll(o.OutputDir, 0o755); err != nil {
		return fail(log, stderr, ewrap.Wrapf(err, "create %s", o.OutputDir))
	}
	r := runplan.Runner{Threads: 1, Stderr: stderr, Log: log}
	if err := r.Run(ctx, []runplan.Command{cmd}); err != nil {
		return fail(log, stderr, err)
	}
	_, _ = fmt.Fprintln(outw, p.StatsFile())
	return appcore.ExitOK
}
