package cliutil

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popstats/internal/sentinel"
)

func TestSplitFlagsAndPositionals(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var b bool
	var n int
	fs.BoolVar(&b, "bool", false, "")
	fs.IntVar(&n, "n", 0, "")
	flagArgs, posArgs := SplitFlagsAndPositionals(fs, []string{"100", "--bool", "out", "-n", "5", "-3", "--", "--pos"})
	assert.Equal(t, []string{"--bool", "-n", "5"}, flagArgs)
	assert.Equal(t, []string{"100", "out", "-3", "--pos"}, posArgs)
}

func TestListFlag(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var l List
	fs.Var(&l, "in", "")
	require.NoError(t, fs.Parse([]string{"--in", "a.txt,b.txt", "--in", " c.txt ,"}))
	assert.Equal(t, List{"a.txt", "b.txt", "c.txt"}, l)
}

func TestFloatsFlag(t *testing.T) {
	var f Floats
	require.NoError(t, f.Set("0, 1e3,5000.5"))
	assert.Equal(t, Floats{0, 1000, 5000.5}, f)
	assert.Equal(t, "0,1000,5000.5", f.String())

	err := f.Set("1,x")
	assert.True(t, errors.Is(err, sentinel.ErrInvalidParameter))
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"pop1.txt", "pop0.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("R 1 0\n"), 0o644))
	}
	got, err := ExpandPaths([]string{"first.txt", filepath.Join(dir, "pop*.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{"first.txt", filepath.Join(dir, "pop0.txt"), filepath.Join(dir, "pop1.txt")}, got)

	_, err = ExpandPaths([]string{filepath.Join(dir, "*.gz")})
	assert.True(t, errors.Is(err, sentinel.ErrMissingInput))
}
