package clibase

import (
	"flag"
	"fmt"
	"io"

	"popstats/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs. extra prints the
// command's synopsis and its own flag sections.
func UsageCommon(fs *flag.FlagSet, name, summary string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "popstats %s – %s\n", name, summary)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -t, --threads int           Worker threads (0=all CPUs) [%s]\n", def("threads"))
		fmt.Fprintln(out, "      --config file           YAML settings file (also POPSTATS_CONFIG)")
		fmt.Fprintln(out, "      --log-level string      debug | info | warn | error [info]")
		fmt.Fprintf(out, "  -q, --quiet                 Only log warnings and errors [%s]\n", def("quiet"))
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
