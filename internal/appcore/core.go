// Package appcore runs a bootstrap report end to end: load inputs, estimate
// every population on the pipeline, stream results to the report writer and
// commit the report file.
package appcore

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/hyp3rd/ewrap"
	"go.opentelemetry.io/otel/attribute"

	"popstats/internal/bootstrap"
	"popstats/internal/config"
	"popstats/internal/engine"
	"popstats/internal/logging"
	"popstats/internal/output"
	"popstats/internal/pipeline"
	"popstats/internal/telemetry"
	"popstats/internal/writers"
)

// Options describe one bootstrap run. Config must already be validated.
type Options struct {
	Config config.Config
	Inputs Inputs
	Out    string // report path prefix
	Log    *slog.Logger

	// Source overrides the source derived from Config.Seed (tests).
	Source bootstrap.Source
}

// ReportPath returns "<prefix>_bootstrap_n<R>.<ext>".
func ReportPath(prefix string, replicates int, ext string) string {
	return fmt.Sprintf("%s_bootstrap_n%d.%s", prefix, replicates, ext)
}

// Run executes the run and returns the report path. On any failure no
// report file is left behind.
func Run(ctx context.Context, o Options) (_ string, err error) {
	cfg := o.Config
	log := o.Log
	if log == nil {
		log = logging.Discard()
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	jobWorkers, replicateWorkers := splitThreads(threads, o.Inputs.count())

	src := o.Source
	if src == nil {
		if cfg.Seed >= 0 {
			src = bootstrap.NewSource(uint64(cfg.Seed))
		} else {
			src = bootstrap.RandomSource()
		}
	}
	var seed uint64
	if s, ok := src.(bootstrap.SeededSource); ok {
		seed = s.Seed()
	}

	eng, err := engine.New(engine.Config{
		Replicates: cfg.Replicates,
		Threads:    replicateWorkers,
		SFSBins:    cfg.SFSBins,
		PhysEdges:  cfg.PhysEdges,
		GenEdges:   cfg.GenEdges,
		LDBins:     cfg.LDBins,
		Source:     src,
	})
	if err != nil {
		return "", err
	}

	info := output.RunInfo{RunID: uuid.NewString(), Replicates: cfg.Replicates, Seed: seed}
	wf := NewReportWriterFactory(cfg.Format, info)
	if _, err := writers.Lookup(cfg.Format); err != nil {
		return "", err
	}

	if cfg.Trace != "" {
		stop, err := startTracing(cfg.Trace, info.RunID)
		if err != nil {
			return "", err
		}
		defer func() {
			if err := stop(); err != nil {
				log.Warn("flushing trace", slog.String("path", cfg.Trace), slog.Any("error", err))
			}
		}()
	}
	ctx, span := telemetry.Start(ctx, "appcore.run",
		attribute.String("run_id", info.RunID),
		attribute.Int("replicates", cfg.Replicates))
	defer func() { telemetry.End(span, err) }()

	log.Info("running bootstrap estimates of summary statistics",
		slog.String("run_id", info.RunID),
		slog.Int("replicates", cfg.Replicates),
		slog.Uint64("seed", seed),
		slog.Int("threads", threads),
		slog.Int("job_workers", jobWorkers),
		slog.Int("replicate_workers", replicateWorkers))

	jobs, err := load(ctx, o.Inputs, threads, log)
	if err != nil {
		return "", err
	}

	path := ReportPath(o.Out, cfg.Replicates, wf.Extension())
	if err := writeReport(ctx, path, wf, func(send func(engine.Result) error) error {
		return pipeline.ForEachResult(ctx, pipeline.Config{Threads: jobWorkers}, jobs, eng, send)
	}, log); err != nil {
		return "", err
	}
	log.Info("wrote report", slog.String("path", path), slog.Int("records", len(jobs)))
	return path, nil
}

// splitThreads shares the thread budget between concurrent jobs and the
// replicate workers inside each job, so at most threads goroutines compute.
func splitThreads(threads, jobs int) (jobWorkers, replicateWorkers int) {
	jobWorkers = max(1, min(threads, jobs))
	return jobWorkers, max(1, threads/jobWorkers)
}

// startTracing exports spans as JSON lines to path ("-" is stderr).
func startTracing(path, runID string) (stop func() error, err error) {
	w, closeFn := io.Writer(os.Stderr), func() error { return nil }
	if path != "-" {
		fh, err := os.Create(path)
		if err != nil {
			return nil, ewrap.Wrapf(err, "create trace %s", path)
		}
		w, closeFn = fh, fh.Close
	}
	shutdown, err := telemetry.Setup(w, attribute.String("run_id", runID))
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	return func() error {
		serr := shutdown(context.Background())
		if cerr := closeFn(); serr == nil {
			serr = cerr
		}
		return serr
	}, nil
}

// writeReport streams results produced by produce into a temporary file
// next to path and renames it to path once everything succeeded.
func writeReport(ctx context.Context, path string, wf WriterFactory, produce func(send func(engine.Result) error) error, log *slog.Logger) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return ewrap.Wrapf(err, "create report %s", path)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	in, done := wf.Start(bw, 16)

	started := time.Now()
	perr := produce(func(r engine.Result) error {
		if r.Family == engine.LD && len(r.DPrime.Mean) == 0 {
			log.Warn("no pair carries a D′ value; D′ decay left empty",
				slog.Int("index", r.Index), slog.String("file", r.Source))
		}
		log.Info("estimated",
			slog.String("family", string(r.Family)),
			slog.Int("index", r.Index),
			slog.Int("regions", r.Regions),
			slog.Int("units", r.Units),
			slog.Duration("elapsed", time.Since(started)))
		select {
		case in <- r:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	close(in)
	werr := <-done

	switch {
	case perr != nil:
		return perr
	case werr != nil:
		return ewrap.Wrapf(werr, "write report %s", path)
	}
	if err := bw.Flush(); err != nil {
		return ewrap.Wrapf(err, "write report %s", path)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return ewrap.Wrapf(err, "write report %s", path)
	}
	if err := tmp.Close(); err != nil {
		return ewrap.Wrapf(err, "write report %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return ewrap.Wrapf(err, "commit report %s", path)
	}
	return nil
}
