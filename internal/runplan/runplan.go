// Package runplan builds the external commands behind target-stats and
// point, and runs them.
package runplan

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Per-site calculators invoked by target-stats.
const (
	FreqCalculator = "bootstrap_freq_popstats_regions"
	LDCalculator   = "bootstrap_ld_popstats_regions"
	FstCalculator  = "bootstrap_fst_popstats_regions"
)

// Command is one external invocation. Stdout, when set, is the file the
// command's standard output is redirected to.
type Command struct {
	Name   string
	Args   []string
	Stdout string
}

// String renders the command as a shell line.
func (c Command) String() string {
	parts := append([]string{c.Name}, c.Args...)
	for i, p := range parts {
		parts[i] = quote(p)
	}
	s := strings.Join(parts, " ")
	if c.Stdout != "" {
		s += " > " + quote(c.Stdout)
	}
	return s
}

func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`*?[]#&;|<>()") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// TargetStats describes a target-stats run.
type TargetStats struct {
	Tpeds   []string // one per population, in population order
	Recom   string
	Regions string
	Out     string
	Freqs   bool
	LD      bool
	Fst     bool
}

// Commands lists the calculator invocations: per population i the freqs
// and LD commands, then Fst for every later population j.
func (t TargetStats) Commands() []Command {
	var out []Command
	for i, tped := range t.Tpeds {
		if t.Freqs {
			out = append(out, Command{Name: FreqCalculator, Args: []string{tped, t.Recom, t.Regions, fmt.Sprintf("%s_freqs_%d", t.Out, i)}})
		}
		if t.LD {
			out = append(out, Command{Name: LDCalculator, Args: []string{tped, t.Recom, t.Regions, fmt.Sprintf("%s_ld_%d", t.Out, i)}})
		}
		if t.Fst {
			for j := i + 1; j < len(t.Tpeds); j++ {
				out = append(out, Command{Name: FstCalculator, Args: []string{tped, t.Tpeds[j], t.Recom, t.Regions, fmt.Sprintf("%s_fst_%d_%d", t.Out, i, j)}})
			}
		}
	}
	return out
}

// Point describes one simulated point in parameter space.
type Point struct {
	Simulator           string
	ParamFile           string
	Reps                int
	OutputDir           string
	DropSings           *float64
	GenmapRandomRegions bool
	StopAfterMinutes    int
}

// StatsFile is where the simulator's summary statistics are written.
func (p Point) StatsFile() string {
	return filepath.Join(p.OutputDir, fmt.Sprintf("n%dstats.txt", p.Reps))
}

// Command returns the simulator invocation.
func (p Point) Command() Command {
	args := []string{"-p", p.ParamFile, "-n", strconv.Itoa(p.Reps)}
	if p.DropSings != nil {
		args = append(args, "--drop-singletons", strconv.FormatFloat(*p.DropSings, 'g', -1, 64))
	}
	if p.GenmapRandomRegions {
		args = append(args, "--genmapRandomRegions")
	}
	if p.StopAfterMinutes > 0 {
		args = append(args, "--stop-after-minutes", strconv.Itoa(p.StopAfterMinutes))
	}
	args = append(args, "--custom-stats")
	return Command{Name: p.Simulator, Args: args, Stdout: p.StatsFile()}
}
