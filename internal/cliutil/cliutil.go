// Package cliutil holds argument helpers shared by the sub-command parsers.
package cliutil

import (
	"flag"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hyp3rd/ewrap"

	"popstats/internal/sentinel"
)

// BoolFlags returns names of flags that don't require a value.
func BoolFlags(fs *flag.FlagSet) map[string]bool {
	m := map[string]bool{}
	fs.VisitAll(func(f *flag.Flag) {
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			m[f.Name] = true
		}
	})
	return m
}

// SplitFlagsAndPositionals separates flag-like args from positionals so
// flags may follow positionals. "--" ends flag parsing; a lone "-" and
// negative numbers are positionals. Use before fs.Parse(flagArgs).
func SplitFlagsAndPositionals(fs *flag.FlagSet, argv []string) (flagArgs, posArgs []string) {
	boolFlags := BoolFlags(fs)
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--":
			return flagArgs, append(posArgs, argv[i+1:]...)
		case arg == "-" || !strings.HasPrefix(arg, "-") || isNumber(arg):
			posArgs = append(posArgs, arg)
		case strings.Contains(arg, "="):
			flagArgs = append(flagArgs, arg)
		default:
			flagArgs = append(flagArgs, arg)
			if !boolFlags[strings.TrimLeft(arg, "-")] && i+1 < len(argv) {
				flagArgs = append(flagArgs, argv[i+1])
				i++
			}
		}
	}
	return flagArgs, posArgs
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// List is a repeatable flag whose values may also be comma-separated:
// "--in a,b --in c" yields [a b c].
type List []string

func (l *List) String() string { return strings.Join(*l, ",") }

func (l *List) Set(v string) error {
	*l = append(*l, SplitList(v)...)
	return nil
}

// SplitList splits a comma-separated list, dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Floats is a comma-separated list of numbers, e.g. bin edges.
type Floats []float64

func (f *Floats) String() string {
	parts := make([]string, len(*f))
	for i, v := range *f {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (f *Floats) Set(v string) error {
	var out []float64
	for _, p := range SplitList(v) {
		x, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return ewrap.Wrapf(sentinel.ErrInvalidParameter, "bad number %q", p)
		}
		out = append(out, x)
	}
	*f = out
	return nil
}

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPaths expands globs in place, keeping the given order; matches of
// one pattern are sorted. A pattern matching nothing is a missing input.
func ExpandPaths(paths []string) ([]string, error) {
	var out []string
	for _, a := range paths {
		if !hasGlobMeta(a) {
			out = append(out, a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, ewrap.Wrapf(sentinel.ErrInvalidParameter, "bad glob %q: %v", a, err)
		}
		if len(m) == 0 {
			return nil, ewrap.Wrapf(sentinel.ErrMissingInput, "no input matched %q", a)
		}
		out = append(out, m...)
	}
	return out, nil
}
