package popfile

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popstats/internal/region"
	"popstats/internal/sentinel"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

const freqs = `# pop 0
R 100 2
S 1 9
S 5 5

R	200	4
S	9	1
`

func TestReadFreqs(t *testing.T) {
	got, err := ReadFreqs(writeFile(t, "f.txt", freqs))
	require.NoError(t, err)
	want := []region.Region{
		{Length: 100, PiNumerator: 2, Sites: []region.SiteRecord{{Derived: 1, Ancestral: 9}, {Derived: 5, Ancestral: 5}}},
		{Length: 200, PiNumerator: 4, Sites: []region.SiteRecord{{Derived: 9, Ancestral: 1, Region: 1}}},
	}
	assert.Equal(t, want, got)
}

func TestReadFreqsGzip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "f.txt.gz")
	fh, err := os.Create(p)
	require.NoError(t, err)
	zw := gzip.NewWriter(fh)
	_, err = zw.Write([]byte(freqs))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, fh.Close())

	got, err := ReadFreqs(p)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestReadLD(t *testing.T) {
	got, err := ReadLD(writeFile(t, "ld.txt", "R 5000\nP 120 0.8 0.0012 0.95\nP 3000 0.1 0.03 NA\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []region.SitePairRecord{
		{PhysDist: 120, R2: 0.8, GenDist: 0.0012, DPrime: 0.95, HasDPrime: true},
		{PhysDist: 3000, R2: 0.1, GenDist: 0.03},
	}, got[0].Pairs)
}

func TestReadFst(t *testing.T) {
	got, err := ReadFst(writeFile(t, "fst.txt", "R 10\nF 0.1\nF 0.2\nR 10\nF -0.01\n"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []region.FstRecord{{Value: -0.01, Region: 1}}, got[1].Fst)
}

func TestMissingFile(t *testing.T) {
	_, err := ReadFreqs(filepath.Join(t.TempDir(), "absent.txt"))
	assert.True(t, errors.Is(err, sentinel.ErrMissingInput))
}

func TestBadInputReportsLine(t *testing.T) {
	cases := map[string]struct {
		read func(string) ([]region.Region, error)
		body string
		line string
	}{
		"site before region": {ReadFreqs, "# x\nS 1 2\n", ":2"},
		"field count":        {ReadFreqs, "R 100 1\nS 1\n", ":2"},
		"negative count":     {ReadFreqs, "R 100 1\nS -1 3\n", ":2"},
		"empty site":         {ReadFreqs, "R 100 1\nS 0 0\n", ":2"},
		"zero length":        {ReadFreqs, "R 0 1\n", ":1"},
		"unknown tag":        {ReadLD, "R 10\nQ 1 2 3 4\n", ":2"},
		"non-finite r2":      {ReadLD, "R 10\nP 1 nan 0.1 0.5\n", ":2"},
		"fst in freqs file":  {ReadFreqs, "R 10 1\nF 0.1\n", ":2"},
		"region fields":      {ReadFst, "R 10 1\n", ":1"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := writeFile(t, "in.txt", tc.body)
			_, err := tc.read(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, sentinel.ErrBadInput), "got %v", err)
			assert.True(t, strings.Contains(err.Error(), p+tc.line), "got %v", err)
		})
	}
}
