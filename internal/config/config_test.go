package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popstats/internal/sentinel"
)

var formats = []string{"json", "jsonl", "msgpack", "text"}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "popstats.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POPSTATS_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileThenEnvironment(t *testing.T) {
	p := writeYAML(t, `
replicates: 200
sfs_bins: 5
phys_edges: [0, 1000, 5000]
logging:
  level: debug
`)
	t.Setenv("POPSTATS_SFS_BINS", "8")
	t.Setenv("POPSTATS_GEN_EDGES", "0,0.01,0.05")
	t.Setenv("POPSTATS_LOGGING_QUIET", "true")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Replicates)
	assert.Equal(t, 8, cfg.SFSBins, "environment wins over the file")
	assert.Equal(t, []float64{0, 1000, 5000}, cfg.PhysEdges)
	assert.Equal(t, []float64{0, 0.01, 0.05}, cfg.GenEdges)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Quiet)
	assert.Equal(t, "text", cfg.Format, "untouched keys keep their defaults")
}

func TestLoadConfigFromEnvironmentPath(t *testing.T) {
	t.Setenv("POPSTATS_CONFIG", writeYAML(t, "replicates: 3\n"))
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Replicates)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("POPSTATS_CONFIG", "")
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, sentinel.ErrMissingInput))

	_, err = Load(writeYAML(t, "replicate: 3\n"))
	assert.True(t, errors.Is(err, sentinel.ErrInvalidParameter), "unknown keys are rejected")

	t.Setenv("POPSTATS_REPLICATES", "many")
	_, err = Load("")
	assert.True(t, errors.Is(err, sentinel.ErrInvalidParameter))
}

func TestValidate(t *testing.T) {
	ok := Default()
	ok.Replicates = 10
	require.NoError(t, ok.Validate(formats))

	bad := map[string]func(*Config){
		"replicates": func(c *Config) { c.Replicates = 0 },
		"sfs bins":   func(c *Config) { c.SFSBins = -1 },
		"ld bins":    func(c *Config) { c.LDBins = 0 },
		"threads":    func(c *Config) { c.Threads = -2 },
	}
	for name, mutate := range bad {
		t.Run(name, func(t *testing.T) {
			c := ok
			mutate(&c)
			assert.True(t, errors.Is(c.Validate(formats), sentinel.ErrInvalidParameter))
		})
	}

	c := ok
	c.Format = "csv"
	assert.True(t, errors.Is(c.Validate(formats), sentinel.ErrUnknownFormat))

	c = ok
	c.LDBins = 0
	c.PhysEdges = []float64{0, 1}
	c.GenEdges = []float64{0, 1}
	assert.NoError(t, c.Validate(formats), "explicit edges need no ld bins")
}
