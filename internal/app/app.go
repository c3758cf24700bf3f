// Package app dispatches popstats sub-commands.
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"

	"github.com/hyp3rd/ewrap"

	"popstats/internal/appcore"
	"popstats/internal/sentinel"
	"popstats/internal/version"
	"popstats/internal/writers"
)

// command is one entry of the dispatch table.
type command struct {
	summary string
	run     func(ctx context.Context, argv []string, outw io.Writer, stderr io.Writer) int
	usage   func(w io.Writer)
}

// commands is the closed set of sub-commands; filled in init to break the
// reference cycle through help.
var commands map[string]command

func init() {
	commands = map[string]command{
		"bootstrap":    {summary: "bootstrap standard errors of population summary statistics", run: runBootstrap, usage: bootstrapUsage},
		"target-stats": {summary: "plan (or run) per-site calculations for each population", run: runTargetStats, usage: targetStatsUsage},
		"point":        {summary: "simulate one point in parameter space", run: runPoint, usage: pointUsage},
		"version":      {summary: "print version and exit", run: runVersion},
		"help":         {summary: "show help for a command", run: runHelp},
	}
}

func names() []string {
	out := make([]string, 0, len(commands))
	for n := range commands {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

func overview(w io.Writer) {
	_, _ = fmt.Fprintf(w, "popstats – population summary statistics and bootstrap standard errors\n")
	_, _ = fmt.Fprintf(w, "Version: %s\n\n", version.Version)
	_, _ = fmt.Fprintln(w, "Usage: popstats <command> [flags] [arguments]")
	_, _ = fmt.Fprintln(w, "\nCommands:")
	for _, n := range names() {
		_, _ = fmt.Fprintf(w, "  %-14s %s\n", n, commands[n].summary)
	}
	_, _ = fmt.Fprintln(w, "\nRun 'popstats help <command>' for the command's flags.")
}

// RunContext runs one popstats invocation and returns its exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	if len(argv) == 0 {
		overview(outw)
		return finish(outw, stderr, appcore.ExitOK)
	}
	switch argv[0] {
	case "-h", "-help", "--help":
		overview(outw)
		return finish(outw, stderr, appcore.ExitOK)
	case "-v", "-version", "--version":
		return finish(outw, stderr, runVersion(parent, nil, outw, stderr))
	}

	cmd, ok := commands[argv[0]]
	if !ok {
		err := ewrap.Wrapf(sentinel.ErrUnknownCommand, "%q", argv[0])
		_, _ = fmt.Fprintln(stderr, "error:", err)
		overview(outw)
		return finish(outw, stderr, appcore.ExitCode(err))
	}
	return finish(outw, stderr, cmd.run(parent, argv[1:], outw, stderr))
}

// Run is RunContext without cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// finish flushes stdout; a closed pipe downstream is not an error.
func finish(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return code
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return appcore.ExitRuntime
	}
	return code
}

// parseFailed handles a parser error: help goes to stdout with status 0,
// anything else is reported with the command's usage.
func parseFailed(fs *flag.FlagSet, err error, outw, stderr io.Writer) int {
	fs.SetOutput(outw)
	if errors.Is(err, flag.ErrHelp) {
		fs.Usage()
		return appcore.ExitOK
	}
	_, _ = fmt.Fprintln(stderr, "error:", err)
	fs.Usage()
	return appcore.ExitCode(err)
}

func runVersion(_ context.Context, _ []string, outw, _ io.Writer) int {
	_, _ = fmt.Fprintf(outw, "popstats version %s\n", version.Version)
	return appcore.ExitOK
}

func runHelp(_ context.Context, argv []string, outw, stderr io.Writer) int {
	if len(argv) == 0 {
		overview(outw)
		return appcore.ExitOK
	}
	cmd, ok := commands[argv[0]]
	if !ok {
		err := ewrap.Wrapf(sentinel.ErrUnknownCommand, "%q", argv[0])
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return appcore.ExitCode(err)
	}
	if cmd.usage == nil {
		_, _ = fmt.Fprintf(outw, "popstats %s – %s\n", argv[0], cmd.summary)
		return appcore.ExitOK
	}
	cmd.usage(outw)
	return appcore.ExitOK
}
