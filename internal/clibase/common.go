// Package clibase holds the flags and help layout shared by every
// sub-command.
package clibase

import (
	"flag"

	"github.com/hyp3rd/ewrap"

	"popstats/internal/sentinel"
)

// Common holds CLI fields shared by the sub-commands.
type Common struct {
	Threads  int
	Config   string
	LogLevel string
	Quiet    bool
	Help     bool
}

// Register wires shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.IntVar(&c.Threads, "threads", 0, "worker threads (0=all CPUs) [0]")
	fs.IntVar(&c.Threads, "t", 0, "alias of --threads")
	fs.StringVar(&c.Config, "config", "", "YAML settings file")
	fs.StringVar(&c.LogLevel, "log-level", "", "debug | info | warn | error [info]")
	fs.BoolVar(&c.Quiet, "quiet", false, "only log warnings and errors [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Help, "help", false, "show this help and exit")
	fs.BoolVar(&c.Help, "h", false, "alias of --help")
}

// Validate applies shared CLI invariants used by all sub-commands.
func Validate(c *Common) error {
	if c.Threads < 0 {
		return ewrap.Wrap(sentinel.ErrInvalidParameter, "--threads must be ≥ 0")
	}
	return nil
}

// aliases maps a short flag to the long name it stands for.
var aliases = map[string]string{
	"t": "threads",
	"q": "quiet",
	"h": "help",
	"n": "replicates",
	"o": "out",
	"f": "format",
}

// Visited returns the long names of the flags set on the command line.
func Visited(fs *flag.FlagSet) map[string]bool {
	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := aliases[name]; ok {
			name = long
		}
		seen[name] = true
	})
	return seen
}
