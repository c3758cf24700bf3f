package runplan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popstats/internal/sentinel"
)

func TestTargetStatsCommands(t *testing.T) {
	ts := TargetStats{
		Tpeds:   []string{"p0.tped", "p1.tped", "p2.tped"},
		Recom:   "recom.txt",
		Regions: "neutral.tsv",
		Out:     "out/pop",
		Freqs:   true,
		Fst:     true,
	}
	var got []string
	for _, c := range ts.Commands() {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{
		"bootstrap_freq_popstats_regions p0.tped recom.txt neutral.tsv out/pop_freqs_0",
		"bootstrap_fst_popstats_regions p0.tped p1.tped recom.txt neutral.tsv out/pop_fst_0_1",
		"bootstrap_fst_popstats_regions p0.tped p2.tped recom.txt neutral.tsv out/pop_fst_0_2",
		"bootstrap_freq_popstats_regions p1.tped recom.txt neutral.tsv out/pop_freqs_1",
		"bootstrap_fst_popstats_regions p1.tped p2.tped recom.txt neutral.tsv out/pop_fst_1_2",
		"bootstrap_freq_popstats_regions p2.tped recom.txt neutral.tsv out/pop_freqs_2",
	}, got)
}

func TestPointCommand(t *testing.T) {
	drop := 0.1
	p := Point{Simulator: "coalescent", ParamFile: "my model.par", Reps: 50, OutputDir: "sims", DropSings: &drop, GenmapRandomRegions: true}
	assert.Equal(t,
		"coalescent -p 'my model.par' -n 50 --drop-singletons 0.1 --genmapRandomRegions --custom-stats > sims/n50stats.txt",
		p.Command().String())

	p = Point{Simulator: "cosi", ParamFile: "m.par", Reps: 1, OutputDir: "/tmp/x/", StopAfterMinutes: 30}
	assert.Equal(t, "cosi -p m.par -n 1 --stop-after-minutes 30 --custom-stats > /tmp/x/n1stats.txt", p.Command().String())
}

func TestRunnerRedirectsStdout(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stats.txt")
	err := Runner{Threads: 2}.Run(context.Background(), []Command{
		{Name: "sh", Args: []string{"-c", "echo simulated"}, Stdout: out},
	})
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "simulated\n", string(b))
}

func TestRunnerErrors(t *testing.T) {
	err := Runner{}.Run(context.Background(), []Command{{Name: "popstats-no-such-binary"}})
	assert.True(t, errors.Is(err, sentinel.ErrMissingInput))

	err = Runner{}.Run(context.Background(), []Command{{Name: "sh", Args: []string{"-c", "exit 3"}}})
	require.Error(t, err)
	assert.False(t, errors.Is(err, sentinel.ErrMissingInput))
}
