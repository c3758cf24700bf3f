package runplan

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/hyp3rd/ewrap"
	"golang.org/x/sync/errgroup"

	"popstats/internal/logging"
	"popstats/internal/sentinel"
)

// Runner executes commands with at most Threads running at once.
type Runner struct {
	Threads int
	Stderr  io.Writer // commands' stderr; nil discards
	Log     *slog.Logger
}

// Run executes cmds and returns the first failure; the remaining commands
// are cancelled. A command whose binary cannot be found is a missing input.
func (r Runner) Run(ctx context.Context, cmds []Command) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Threads, 1))
	for _, c := range cmds {
		g.Go(func() error { return r.run(gctx, c) })
	}
	return g.Wait()
}

func (r Runner) run(ctx context.Context, c Command) (err error) {
	path, err := exec.LookPath(c.Name)
	if err != nil {
		return ewrap.Wrapf(sentinel.ErrMissingInput, "%s: %v", c.Name, err)
	}
	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Stderr = r.Stderr

	if c.Stdout != "" {
		fh, ferr := os.Create(c.Stdout)
		if ferr != nil {
			return ewrap.Wrapf(ferr, "create %s", c.Stdout)
		}
		defer func() {
			if cerr := fh.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		cmd.Stdout = fh
	}

	log := r.Log
	if log == nil {
		log = logging.Discard()
	}
	start := time.Now()
	log.Info("running", slog.String("command", c.String()))
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ewrap.Wrapf(err, "%s", c.String())
	}
	log.Debug("finished", slog.String("command", c.Name), slog.Duration("elapsed", time.Since(start)))
	return nil
}
