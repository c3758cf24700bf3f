// Package cli parses the arguments of each sub-command into its options.
package cli

import (
	"errors"
	"flag"
	"io"

	"github.com/hyp3rd/ewrap"

	"popstats/internal/clibase"
	"popstats/internal/cliutil"
	"popstats/internal/sentinel"
)

// NewFlagSet returns a clean FlagSet with ContinueOnError.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parse splits argv, parses the flags and returns the positionals. A help
// request returns flag.ErrHelp; flag syntax errors are parameter errors.
func parse(fs *flag.FlagSet, c *clibase.Common, argv []string) ([]string, error) {
	flagArgs, pos := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, ewrap.Wrap(sentinel.ErrInvalidParameter, err.Error())
	}
	if c.Help {
		return nil, flag.ErrHelp
	}
	return append(pos, fs.Args()...), clibase.Validate(c)
}
