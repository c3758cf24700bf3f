package appcore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popstats/internal/config"
	"popstats/internal/engine"
	"popstats/internal/sentinel"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func settings(reps, threads int) config.Config {
	c := config.Default()
	c.Replicates = reps
	c.Threads = threads
	c.SFSBins = 2
	c.LDBins = 2
	c.Seed = 11
	return c
}

func TestReportPath(t *testing.T) {
	assert.Equal(t, "out/x_bootstrap_n100.txt", ReportPath("out/x", 100, "txt"))
}

func TestRunWritesTextReport(t *testing.T) {
	dir := t.TempDir()
	in := Inputs{
		engine.Freqs: {
			write(t, dir, "f0.txt", "R 100 2\nS 1 9\nR 200 4\nS 5 5\nS 9 1\n"),
		},
		engine.Fst: {
			write(t, dir, "fst01.txt", "R 10\nF 0.1\nF 0.3\n"),
		},
	}
	prefix := filepath.Join(dir, "model")

	path, err := Run(context.Background(), Options{Config: settings(20, 2), Inputs: in, Out: prefix})
	require.NoError(t, err)
	assert.Equal(t, prefix+"_bootstrap_n20.txt", path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "0", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0.02\t"), lines[1])
	assert.Equal(t, "[0.3333333333333333, 0.6666666666666666]", lines[2])
	fst := strings.Split(lines[6], "\t")
	require.Len(t, fst, 3)
	assert.Equal(t, "0", fst[0])

	leftovers, _ := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
	assert.Empty(t, leftovers)
}

func TestRunIsIndependentOfThreads(t *testing.T) {
	dir := t.TempDir()
	in := Inputs{
		engine.Freqs: {
			write(t, dir, "f0.txt", "R 100 2\nS 1 9\nS 4 6\nR 200 4\nS 5 5\nS 9 1\n"),
			write(t, dir, "f1.txt", "R 50 1\nS 2 8\nR 70 3\nS 3 7\n"),
		},
		engine.LD: {
			write(t, dir, "ld0.txt", "R 1000\nP 10 0.9 0.001 1\nP 500 0.2 0.01 0.4\nP 900 0.1 0.02 NA\n"),
		},
	}
	run := func(threads int, name string) string {
		path, err := Run(context.Background(), Options{Config: settings(50, threads), Inputs: in, Out: filepath.Join(dir, name)})
		require.NoError(t, err)
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		return string(b)
	}
	assert.Equal(t, run(1, "serial"), run(8, "parallel"))
}

func TestRunFailureLeavesNoReport(t *testing.T) {
	dir := t.TempDir()
	in := Inputs{
		engine.Freqs: {
			write(t, dir, "f0.txt", "R 100 2\nS 1 9\n"),
			filepath.Join(dir, "missing.txt"),
		},
	}
	prefix := filepath.Join(dir, "model")
	_, err := Run(context.Background(), Options{Config: settings(5, 1), Inputs: in, Out: prefix})
	assert.True(t, errors.Is(err, sentinel.ErrMissingInput))
	assert.Equal(t, ExitRuntime, ExitCode(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the input file remains")
}

func TestRunEmptyPopulation(t *testing.T) {
	dir := t.TempDir()
	in := Inputs{engine.LD: {write(t, dir, "ld.txt", "# nothing\n")}}
	_, err := Run(context.Background(), Options{Config: settings(5, 1), Inputs: in, Out: filepath.Join(dir, "m")})
	assert.True(t, errors.Is(err, sentinel.ErrEmptyPopulation))
	_, statErr := os.Stat(filepath.Join(dir, "m_bootstrap_n5.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitCanceled, ExitCode(context.Canceled))
	assert.Equal(t, ExitUsage, ExitCode(sentinel.ErrInvalidParameter))
	assert.Equal(t, ExitUsage, ExitCode(sentinel.ErrUnknownFormat))
	assert.Equal(t, ExitRuntime, ExitCode(sentinel.ErrBadInput))
}

func TestSplitThreads(t *testing.T) {
	cases := []struct{ threads, jobs, jobWorkers, replicateWorkers int }{
		{8, 1, 1, 8},
		{8, 2, 2, 4},
		{8, 3, 3, 2},
		{8, 20, 8, 1},
		{1, 5, 1, 1},
		{4, 0, 1, 4},
	}
	for _, c := range cases {
		j, r := splitThreads(c.threads, c.jobs)
		assert.Equal(t, c.jobWorkers, j, "%+v", c)
		assert.Equal(t, c.replicateWorkers, r, "%+v", c)
		assert.LessOrEqual(t, j*r, c.threads)
	}
}

func TestRunExportsTrace(t *testing.T) {
	dir := t.TempDir()
	in := Inputs{engine.Fst: {write(t, dir, "fst.txt", "R 10\nF 0.1\nF 0.3\n")}}
	cfg := settings(5, 1)
	cfg.Trace = filepath.Join(dir, "spans.jsonl")

	_, err := Run(context.Background(), Options{Config: cfg, Inputs: in, Out: filepath.Join(dir, "t")})
	require.NoError(t, err)

	b, err := os.ReadFile(cfg.Trace)
	require.NoError(t, err)
	for _, name := range []string{"appcore.run", "engine.fst", "bootstrap.fst.mean"} {
		assert.Contains(t, string(b), `"Name":"`+name+`"`)
	}
}

func TestRunReportsLDWithoutDPrime(t *testing.T) {
	dir := t.TempDir()
	in := Inputs{engine.LD: {write(t, dir, "ld.txt", "R 1000\nP 10 0.9 0.001 NA\nP 500 0.3 0.01 NA\n")}}
	path, err := Run(context.Background(), Options{Config: settings(5, 1), Inputs: in, Out: filepath.Join(dir, "n")})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "[0.9, 0.3]", lines[1])
	assert.Equal(t, "[]", lines[3])
	assert.Equal(t, "[]", lines[4])
}
