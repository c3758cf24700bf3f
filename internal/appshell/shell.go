// Package appshell turns a run function into a process: signals cancel
// the run and the exit code becomes the process status.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs run with the process arguments and exits.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"help"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	// An interrupted run exits 130 even when it had nothing left to do.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}

	stop()
	os.Exit(code)
}
